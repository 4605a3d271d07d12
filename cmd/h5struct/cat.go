package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scigolib/hdf5struct"
	"github.com/scigolib/hdf5struct/backend"
)

var catMax int

func init() {
	cmd := newCatCmd()
	cmd.Flags().IntVar(&catMax, "max", -1, "Maximum number of elements to print (0 for all, default from config)")
	rootCmd.AddCommand(cmd)
}

func newCatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cat <file> <dataset-path>",
		Short: "Print the values of a dataset",
		Long: `The cat command reads a dataset and prints its values. float64 and
int32 datasets of rank 1 are printed one value per line, rank 2 datasets one
row per line. String and compound datasets are printed one element per line.

Example:
  h5struct cat recording.h5 /run1/voltage
  h5struct cat recording.h5 /run1/labels --max 10`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return runCat(args)
		},
	}
}

// catOutput is the JSON form of the cat output.
type catOutput struct {
	Path      string `json:"path"`
	Type      string `json:"type"`
	Dims      []int  `json:"dims"`
	Truncated bool   `json:"truncated,omitempty"`
	Values    any    `json:"values"`
}

func runCat(args []string) error {
	limit := cfg.MaxElements
	if catMax >= 0 {
		limit = catMax
	}

	c, err := openContainer(args[0])
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	ds, err := lookupDataset(c, args[1])
	if err != nil {
		return err
	}

	values, rows, err := readValues(ds)
	if err != nil {
		return err
	}

	out := catOutput{
		Path: ds.Path(),
		Type: ds.ElementType().String(),
		Dims: ds.Dims(),
	}
	shown := len(rows)
	if limit > 0 && shown > limit {
		shown = limit
		out.Truncated = true
	}

	if jsonOut {
		out.Values = values(shown)
		return printJSON(out)
	}
	for _, row := range rows[:shown] {
		printInfo("%s\n", row)
	}
	if out.Truncated {
		printInfo("... %d more\n", len(rows)-shown)
	}
	return nil
}

// readValues reads ds according to its type and rank. It returns the
// printed rows and a function that yields the first n values for JSON.
func readValues(ds *hdf5struct.Dataset) (func(n int) any, []string, error) {
	switch {
	case ds.ElementType() == backend.Float64 && ds.Rank() == 1:
		v, err := ds.ReadFloat64()
		return head(v), lines(v), err
	case ds.ElementType() == backend.Float64 && ds.Rank() == 2:
		v, err := ds.ReadFloat64Matrix()
		return head(v), lines(v), err
	case ds.ElementType() == backend.Int32 && ds.Rank() == 1:
		v, err := ds.ReadInt32()
		return head(v), lines(v), err
	case ds.ElementType() == backend.Int32 && ds.Rank() == 2:
		v, err := ds.ReadInt32Matrix()
		return head(v), lines(v), err
	case ds.ElementType() == backend.String:
		v, err := ds.ReadStrings()
		return head(v), lines(v), err
	case ds.ElementType() == backend.Compound:
		v, err := ds.ReadCompound()
		return head(v), lines(v), err
	default:
		return nil, nil, fmt.Errorf("cannot print %s dataset of rank %d at %s", ds.ElementType(), ds.Rank(), ds.Path())
	}
}

func head[T any](values []T) func(n int) any {
	return func(n int) any { return values[:n] }
}

func lines[T any](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = fmt.Sprint(v)
	}
	return out
}
