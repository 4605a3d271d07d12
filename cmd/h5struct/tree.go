package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/scigolib/hdf5struct"
)

var treeDepth int

func init() {
	cmd := newTreeCmd()
	cmd.Flags().IntVar(&treeDepth, "depth", -1, "Maximum depth (0 for unlimited, default from config)")
	rootCmd.AddCommand(cmd)
}

func newTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tree <file> [group-path]",
		Short: "Display the hierarchy",
		Long: `The tree command prints the group hierarchy below a group, the root
group by default, depth-first with datasets annotated by shape and type.

Example:
  h5struct tree recording.h5
  h5struct tree recording.h5 /run1 --depth 2`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(_ *cobra.Command, args []string) error {
			return runTree(args)
		},
	}
}

// treeNode is the JSON form of the tree output.
type treeNode struct {
	entryInfo
	Entries []*treeNode `json:"entries,omitempty"`
}

func runTree(args []string) error {
	groupPath := "/"
	if len(args) > 1 {
		groupPath = args[1]
	}
	depth := cfg.MaxDepth
	if treeDepth >= 0 {
		depth = treeDepth
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

	root := &treeNode{entryInfo: describe(g)}
	nodes := map[string]*treeNode{g.Path(): root}
	base := pathDepth(g.Path())

	err = g.Walk(func(path string, e hdf5struct.Entry) error {
		if path == g.Path() {
			return nil
		}
		level := pathDepth(path) - base
		if depth > 0 && level > depth {
			return hdf5struct.SkipGroup
		}

		node := &treeNode{entryInfo: describe(e)}
		parent := nodes[parentPath(path)]
		parent.Entries = append(parent.Entries, node)
		nodes[path] = node

		if !jsonOut {
			printInfo("%s%s\n", strings.Repeat("  ", level-1), node.line())
		}
		if depth > 0 && level == depth && e.IsGroup() {
			return hdf5struct.SkipGroup
		}
		return nil
	})
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(root)
	}
	return nil
}

func pathDepth(path string) int {
	if path == "/" {
		return 0
	}
	return strings.Count(path, "/")
}

func parentPath(path string) string {
	i := strings.LastIndex(path, "/")
	if i <= 0 {
		return "/"
	}
	return path[:i]
}
