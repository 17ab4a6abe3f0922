// Package cli implements the cobra commands of the image-unshred binary.
//
// Each subcommand (shred, unshred, detect, test, compare) lives in its own
// file. This file defines the root command, the global flags and the shared
// output helpers.
package cli

import (
	"encoding/json"
	"fmt"
	"image"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/ironsheep/image-unshred/internal/config"
	"github.com/ironsheep/image-unshred/internal/imaging"
)

// Global flag state. cobra rebinds these to their defaults each time
// NewRootCommand runs.
var (
	jsonOutput bool
	verbose    bool
	configPath string

	// cfg is loaded in the root PersistentPreRunE.
	cfg *config.Config
)

// Build information, injected from main via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// NewRootCommand creates the root command with every subcommand registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "image-unshred",
		Short: "Reassemble images cut into shuffled vertical strips",
		Long: `image-unshred restores the original column order of an image that was cut
into equal-width vertical strips and shuffled.

The strip width is detected from color discontinuities unless given with
--width. Strips are chained greedily by comparing the U/V chroma of their
edge columns.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path := configPath
			if path == "" {
				path = os.Getenv(config.EnvConfigPath)
			}
			loaded, err := config.Load(path)
			if err != nil {
				return WrapCLIError(ExitUsageError, "failed to load configuration", err)
			}
			if verbose {
				loaded.LogLevel = "debug"
			}
			cfg = loaded

			log.SetOutput(cmd.ErrOrStderr())
			log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
			debugf("config: strip_width=%d default_strip_width=%d parallel=%v relaxation=%+v",
				cfg.StripWidth, cfg.DefaultStripWidth, cfg.Parallel, cfg.Relaxation)
			return nil
		},
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf("image-unshred %s\n  Build time: %s\n  Git commit: %s\n",
		Version, BuildTime, GitCommit))

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to a YAML configuration file (default $"+config.EnvConfigPath+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging on stderr")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false,
		"Print results as JSON")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return WrapCLIError(ExitUsageError, "invalid flags", err)
	})

	rootCmd.AddCommand(NewShredCommand())
	rootCmd.AddCommand(NewUnshredCommand())
	rootCmd.AddCommand(NewDetectCommand())
	rootCmd.AddCommand(NewTestCommand())
	rootCmd.AddCommand(NewCompareCommand())

	return rootCmd
}

// Execute runs rootCmd, reports any error on stderr and returns the exit
// code for main to pass to os.Exit.
func Execute(rootCmd *cobra.Command) int {
	err := rootCmd.Execute()
	if err == nil {
		return int(ExitSuccess)
	}
	if cliErr, ok := err.(*CLIError); ok {
		printError(os.Stderr, cliErr.Message, cliErr.Err)
	} else {
		printError(os.Stderr, err.Error(), nil)
	}
	return int(ExitCodeOf(err))
}

// printError writes an error in the format selected by --json.
func printError(w io.Writer, message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"message": message,
		}
		if underlying != nil {
			errObj["detail"] = underlying.Error()
		}
		data, _ := json.MarshalIndent(map[string]interface{}{"error": errObj}, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}
	if underlying != nil {
		fmt.Fprintf(w, "Error: %s: %v\n", message, underlying)
	} else {
		fmt.Fprintf(w, "Error: %s\n", message)
	}
}

// debugf logs only when the effective log level is debug.
func debugf(format string, args ...interface{}) {
	if cfg != nil && cfg.Debug() {
		log.Printf("[DEBUG] "+format, args...)
	}
}

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return WrapCLIError(ExitGeneralError, "failed to encode output", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// usageArgs turns a positional argument validation failure into a usage
// error.
func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return WrapCLIError(ExitUsageError, "invalid arguments", err)
		}
		return nil
	}
}

// loadImage decodes the image at path.
func loadImage(path string) (image.Image, error) {
	if !imaging.IsSupported(path) {
		return nil, NewCLIError(ExitUsageError, fmt.Sprintf("unsupported image format: %s", path))
	}
	cache := imaging.NewImageCache()
	img, err := cache.Load(path)
	if err != nil {
		return nil, WrapCLIError(ExitGeneralError, fmt.Sprintf("failed to load %s", path), err)
	}
	debugf("loaded %s: %dx%d %T", path, img.Bounds().Dx(), img.Bounds().Dy(), img)
	return img, nil
}
