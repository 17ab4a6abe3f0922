package cli

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/ironsheep/image-unshred/internal/batch"
	"github.com/ironsheep/image-unshred/internal/imaging"
	"github.com/ironsheep/image-unshred/internal/unshred"
)

type unshredOutput struct {
	Input  string `json:"input"`
	Output string `json:"output"`
	*unshred.Result
	ElapsedMS int64 `json:"elapsed_ms"`
}

// NewUnshredCommand creates the "unshred" command.
func NewUnshredCommand() *cobra.Command {
	var (
		width   int
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "unshred <image>",
		Short: "Restore the strip order of a shredded image",
		Long: `Restore the original column order of an image cut into equal-width vertical
strips and shuffled.

Without --width the strip width is detected. When detection finds no
boundary the default width (32, or default_strip_width from the config) is
used and a warning is logged.

The result is written as <name>.reconstructed.<ext> unless --out is given;
JPEG and GIF input is written as PNG so the pixels match the reconstruction.
Its left-to-right orientation is not guaranteed.

Examples:
  image-unshred unshred shredded.png
  image-unshred unshred --width 32 --out fixed.png shredded.png
  image-unshred unshred --json shredded.png`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cfg.UnshredOptions()
			if cmd.Flags().Changed("width") {
				if width < 0 {
					return NewCLIError(ExitUsageError, fmt.Sprintf("width must not be negative, got %d", width))
				}
				opts.StripWidth = width
			}
			return runUnshred(cmd, args[0], outPath, opts)
		},
	}

	cmd.Flags().IntVarP(&width, "width", "w", 0, "Strip width in pixels (default: detect)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output path (default <name>.reconstructed.<ext>, PNG for JPEG/GIF input)")

	return cmd
}

func runUnshred(cmd *cobra.Command, path, outPath string, opts unshred.Options) error {
	img, err := loadImage(path)
	if err != nil {
		return err
	}

	start := time.Now()
	res, err := unshred.Reconstruct(img, opts)
	if err != nil {
		return reconstructionError(fmt.Sprintf("failed to unshred %s", path), err)
	}
	elapsed := time.Since(start)

	if res.Fallback {
		log.Printf("No strip boundary detected in %s; using default strip width %d", path, res.StripWidth)
	}
	debugf("order %v, seams %v", res.Order, res.Seams)

	if outPath == "" {
		outPath = imaging.DerivedPath(imaging.LosslessPath(path), batch.TagReconstructed)
	}
	if err := imaging.Save(res.Image, outPath); err != nil {
		return WrapCLIError(ExitGeneralError, "failed to write reconstructed image", err)
	}

	if jsonOutput {
		return writeJSON(cmd.OutOrStdout(), unshredOutput{
			Input:     path,
			Output:    outPath,
			Result:    res,
			ElapsedMS: elapsed.Milliseconds(),
		})
	}

	w := cmd.OutOrStdout()
	source := "given"
	switch {
	case res.Fallback:
		source = "default"
	case res.Detected:
		source = "detected"
	}
	fmt.Fprintf(w, "Strip width: %dpx (%s)\n", res.StripWidth, source)
	fmt.Fprintf(w, "Strips:      %d\n", len(res.Order))
	fmt.Fprintf(w, "Order:       %v\n", res.Order)
	fmt.Fprintf(w, "Time:        %s\n", elapsed.Round(time.Millisecond))
	fmt.Fprintf(w, "Output:      %s\n", outPath)
	return nil
}
