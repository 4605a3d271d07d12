package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newSelectCmd())
}

func newSelectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select <file> <expression>",
		Short: "List datasets matching an expression",
		Long: `The select command prints every dataset for which the expression is
true. Expressions use the expr language and see the variables name, path,
rank, dims, type and elements.

Example:
  h5struct select recording.h5 'type == "float64" && rank == 2'
  h5struct select recording.h5 'elements > 1000 && name startsWith "raw"'`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return runSelect(args)
		},
	}
}

func runSelect(args []string) error {
	c, err := openContainer(args[0])
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	found, err := c.Select(args[1])
	if err != nil {
		return err
	}

	if jsonOut {
		infos := make([]entryInfo, len(found))
		for i, ds := range found {
			infos[i] = describe(ds)
		}
		return printJSON(infos)
	}
	for _, ds := range found {
		printInfo("%s %s %s\n", ds.Path(), ds.ElementType(), formatDims(ds.Dims()))
	}
	return nil
}
