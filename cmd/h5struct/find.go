package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scigolib/hdf5struct"
)

var findGroup bool

func init() {
	cmd := newFindCmd()
	cmd.Flags().BoolVar(&findGroup, "group", false, "Search for a group instead of a dataset")
	rootCmd.AddCommand(cmd)
}

func newFindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find <file> <name>",
		Short: "Find the first dataset or group with a name",
		Long: `The find command searches the whole file for an entry by name.
Children of a group are checked before any deeper entry, and subtrees are
searched in storage order; the first match is printed.

Example:
  h5struct find recording.h5 voltage
  h5struct find recording.h5 run1 --group`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return runFind(args)
		},
	}
}

func runFind(args []string) error {
	name := args[1]

	c, err := openContainer(args[0])
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	var found hdf5struct.Entry
	if findGroup {
		g, err := c.FindGroup(name)
		if err != nil {
			return err
		}
		if g != nil {
			found = g
		}
	} else {
		ds, err := c.FindDataset(name)
		if err != nil {
			return err
		}
		if ds != nil {
			found = ds
		}
	}

	if found == nil {
		kind := "dataset"
		if findGroup {
			kind = "group"
		}
		return fmt.Errorf("no %s named %q", kind, name)
	}

	if jsonOut {
		return printJSON(describe(found))
	}
	printInfo("%s\n", found.Path())
	return nil
}
