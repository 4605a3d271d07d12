package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newLsCmd())
}

func newLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls <file> [group-path]",
		Short: "List the entries of a group",
		Long: `The ls command lists the immediate children of a group, the root
group by default, with the shape and element type of each dataset.

Example:
  h5struct ls recording.h5
  h5struct ls recording.h5 /run1 --json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(_ *cobra.Command, args []string) error {
			return runLs(args)
		},
	}
}

func runLs(args []string) error {
	groupPath := "/"
	if len(args) > 1 {
		groupPath = args[1]
	}

	c, err := openContainer(args[0])
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	g, err := lookupGroup(c, groupPath)
	if err != nil {
		return err
	}

	entries, err := g.Entries()
	if err != nil {
		return fmt.Errorf("list %s: %w", g.Path(), err)
	}

	infos := make([]entryInfo, len(entries))
	for i, e := range entries {
		infos[i] = describe(e)
	}

	if jsonOut {
		return printJSON(infos)
	}
	for _, info := range infos {
		printInfo("%s\n", info.line())
	}
	return nil
}
