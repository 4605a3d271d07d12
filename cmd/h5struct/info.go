package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file> <path>",
		Short: "Show metadata and attributes of an entry",
		Long: `The info command prints the kind, shape, element type and attributes
of a group or dataset.

Example:
  h5struct info recording.h5 /run1/voltage
  h5struct info recording.h5 / --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return runInfo(args)
		},
	}
}

type attributer interface {
	Attributes() (map[string]any, error)
}

func runInfo(args []string) error {
	c, err := openContainer(args[0])
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	e, err := c.Lookup(args[1])
	if err != nil {
		return err
	}
	if e == nil {
		return fmt.Errorf("no entry at %q", args[1])
	}

	info := describe(e)
	attrs, err := e.(attributer).Attributes()
	if err != nil {
		logger.Warn().Err(err).Str("path", e.Path()).Msg("attributes unavailable")
	} else if len(attrs) > 0 {
		info.Attrs = attrs
	}

	if jsonOut {
		return printJSON(info)
	}

	printInfo("Path: %s\n", info.Path)
	printInfo("Kind: %s\n", info.Kind)
	if info.Kind == "dataset" {
		printInfo("Type: %s\n", info.Type)
		printInfo("Rank: %d\n", len(info.Dims))
		printInfo("Dimensions: %s\n", formatDims(info.Dims))
	} else {
		printInfo("Entries: %d\n", info.Children)
	}

	names := make([]string, 0, len(info.Attrs))
	for name := range info.Attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		printInfo("Attribute %s: %v\n", name, info.Attrs[name])
	}
	return nil
}
