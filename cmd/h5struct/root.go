package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/scigolib/hdf5struct"
	"github.com/scigolib/hdf5struct/internal/config"
)

var (
	// Global flags
	verbose    bool
	jsonOut    bool
	configPath string

	cfg    = config.Default()
	logger = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "h5struct",
	Short: "Navigate groups and datasets of HDF5 containers",
	Long: `h5struct lists, searches and reads the group and dataset hierarchy of
HDF5 files. Entries are resolved lazily, so commands that touch a few datasets
stay fast on large files.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return setup(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a TOML config file")
}

// setup loads the config file and lets explicit flags override it.
func setup(cmd *cobra.Command) error {
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("json") {
		cfg.JSON = jsonOut
	}
	jsonOut = cfg.JSON
	if verbose {
		cfg.LogLevel = zerolog.LevelDebugValue
	}

	logger = newLogger(cfg.Level())
	logger.Debug().Str("config", configPath).Msg("configuration loaded")
	return nil
}

func newLogger(level zerolog.Level) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).Level(level).With().Timestamp().Str("app", "h5struct").Logger()
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func openContainer(location string) (*hdf5struct.Container, error) {
	c, err := hdf5struct.Open(location, hdf5struct.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	return c, nil
}

// printInfo prints a line of regular output.
func printInfo(format string, args ...any) {
	fmt.Fprintf(os.Stdout, format, args...)
}

// printJSON outputs data as indented JSON.
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
