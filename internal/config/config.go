// Package config loads the h5struct command line configuration.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
)

// Config holds the CLI settings. Command line flags override file values.
type Config struct {
	// LogLevel is a zerolog level name ("debug", "info", "warn", ...).
	LogLevel string
	// MaxDepth limits tree output; 0 means unlimited.
	MaxDepth int
	// MaxElements limits how many values cat prints; 0 means all.
	MaxElements int
	// JSON selects JSON output.
	JSON bool
}

type fileConfig struct {
	LogLevel    string `toml:"log_level"`
	MaxDepth    int    `toml:"max_depth"`
	MaxElements int    `toml:"max_elements"`
	JSON        bool   `toml:"json"`
}

// Default returns the settings used without a config file.
func Default() Config {
	return Config{
		LogLevel:    "warn",
		MaxDepth:    0,
		MaxElements: 64,
	}
}

// Load reads a TOML file on top of Default. Keys missing from the file keep
// their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("load config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	if meta.IsDefined("max_depth") {
		cfg.MaxDepth = raw.MaxDepth
	}
	if meta.IsDefined("max_elements") {
		cfg.MaxElements = raw.MaxElements
	}
	if meta.IsDefined("json") {
		cfg.JSON = raw.JSON
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges and the log level name.
func (c Config) Validate() error {
	var errs []error
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	if c.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("max_depth must be >= 0, got %d", c.MaxDepth))
	}
	if c.MaxElements < 0 {
		errs = append(errs, fmt.Errorf("max_elements must be >= 0, got %d", c.MaxElements))
	}
	return errors.Join(errs...)
}

// Level returns the parsed log level, falling back to warn.
func (c Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.WarnLevel
	}
	return lvl
}
