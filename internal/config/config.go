// Package config loads settings for the unshred CLI and MCP server.
//
// Settings come from three layers, later ones winning:
//
//  1. Built-in defaults (Default)
//  2. An optional YAML file
//  3. Environment variables (IMAGE_UNSHRED_*)
//
// Command-line flags are applied on top by the CLI itself.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ironsheep/image-unshred/internal/unshred"
)

// Environment variable names.
const (
	EnvConfigPath = "IMAGE_UNSHRED_CONFIG"
	EnvLogLevel   = "IMAGE_UNSHRED_LOG_LEVEL"
	EnvStripWidth = "IMAGE_UNSHRED_STRIP_WIDTH"
)

// Relaxation mirrors unshred.DetectOptions' threshold schedule.
type Relaxation struct {
	Start float64 `yaml:"start"`
	Step  float64 `yaml:"step"`
	Floor float64 `yaml:"floor"`
}

// Config holds all tunable settings.
type Config struct {
	// StripWidth is the known strip width. Zero means detect it.
	StripWidth int `yaml:"strip_width"`

	// DefaultStripWidth is used when detection finds nothing.
	DefaultStripWidth int `yaml:"default_strip_width"`

	// Relaxation is the width detector's threshold schedule.
	Relaxation Relaxation `yaml:"relaxation"`

	// Parallel enables parallel scoring.
	Parallel bool `yaml:"parallel"`

	// LogLevel is "info" or "debug".
	LogLevel string `yaml:"log_level"`

	// Seed seeds the shredder. Zero means seed from the clock.
	Seed int64 `yaml:"seed"`
}

// Default returns the built-in configuration.
func Default() *Config {
	d := unshred.DefaultDetectOptions()
	return &Config{
		DefaultStripWidth: d.DefaultWidth,
		Relaxation: Relaxation{
			Start: d.RelaxStart,
			Step:  d.RelaxStep,
			Floor: d.RelaxFloor,
		},
		Parallel: true,
		LogLevel: "info",
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty) and the environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv(EnvStripWidth); v != "" {
		w, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvStripWidth, v, err)
		}
		c.StripWidth = w
	}
	return nil
}

// Validate checks the configuration for values the unshredder would reject.
func (c *Config) Validate() error {
	if c.StripWidth < 0 {
		return fmt.Errorf("strip_width must not be negative, got %d", c.StripWidth)
	}
	switch c.LogLevel {
	case "info", "debug":
	default:
		return fmt.Errorf("log_level must be info or debug, got %q", c.LogLevel)
	}
	if err := c.DetectOptions().Validate(); err != nil {
		return errors.Join(errors.New("invalid relaxation settings"), err)
	}
	return nil
}

// Debug reports whether debug logging is enabled.
func (c *Config) Debug() bool {
	return c.LogLevel == "debug"
}

// DetectOptions maps the config onto the width detector's options.
func (c *Config) DetectOptions() unshred.DetectOptions {
	return unshred.DetectOptions{
		RelaxStart:   c.Relaxation.Start,
		RelaxStep:    c.Relaxation.Step,
		RelaxFloor:   c.Relaxation.Floor,
		DefaultWidth: c.DefaultStripWidth,
		Parallel:     c.Parallel,
	}
}

// UnshredOptions maps the config onto reconstruction options.
func (c *Config) UnshredOptions() unshred.Options {
	return unshred.Options{
		StripWidth: c.StripWidth,
		Detect:     c.DetectOptions(),
		Parallel:   c.Parallel,
	}
}
