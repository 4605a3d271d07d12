package main

import (
	"fmt"
	"strings"

	"github.com/scigolib/hdf5struct"
)

// entryInfo is the JSON and text view of one entry.
type entryInfo struct {
	Name     string         `json:"name"`
	Path     string         `json:"path"`
	Kind     string         `json:"kind"`
	Dims     []int          `json:"dims,omitempty"`
	Type     string         `json:"type,omitempty"`
	Children int            `json:"children,omitempty"`
	Attrs    map[string]any `json:"attributes,omitempty"`
}

func describe(e hdf5struct.Entry) entryInfo {
	info := entryInfo{Name: e.Name(), Path: e.Path(), Kind: e.Kind().String()}
	switch e := e.(type) {
	case *hdf5struct.Group:
		info.Children = e.Len()
	case *hdf5struct.Dataset:
		info.Dims = e.Dims()
		info.Type = e.ElementType().String()
	}
	return info
}

func (i entryInfo) line() string {
	if i.Kind == "group" {
		return fmt.Sprintf("%s/ (%d entries)", i.Name, i.Children)
	}
	return fmt.Sprintf("%s %s %s", i.Name, i.Type, formatDims(i.Dims))
}

func formatDims(dims []int) string {
	parts := make([]string, len(dims))
	for i, d := range dims {
		parts[i] = fmt.Sprint(d)
	}
	return "[" + strings.Join(parts, " x ") + "]"
}

// lookupGroup resolves a group path, reporting a missing or non-group path.
func lookupGroup(c *hdf5struct.Container, path string) (*hdf5struct.Group, error) {
	e, err := c.Lookup(path)
	if err != nil {
		return nil, err
	}
	g, ok := e.(*hdf5struct.Group)
	if !ok {
		return nil, fmt.Errorf("no group at %q", path)
	}
	return g, nil
}

// lookupDataset resolves a dataset path, reporting a missing or non-dataset path.
func lookupDataset(c *hdf5struct.Container, path string) (*hdf5struct.Dataset, error) {
	e, err := c.Lookup(path)
	if err != nil {
		return nil, err
	}
	ds, ok := e.(*hdf5struct.Dataset)
	if !ok {
		return nil, fmt.Errorf("no dataset at %q", path)
	}
	return ds, nil
}
