// Copyright (c) 2025 SciGo HDF5 Library Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.

package hdf5struct

import (
	"fmt"
	"iter"
	"slices"
	"sync"

	"github.com/scigolib/hdf5struct/backend"
	"github.com/scigolib/hdf5struct/internal/utils"
)

// Group is a named container of child entries.
//
// The child names are captured from the backend when the group is first
// reached; children added to the backend afterwards are not seen. Each child
// is resolved into a *Group or *Dataset on first access and the result is
// kept for the lifetime of the group, so repeated lookups return the same
// value and cost one backend kind query per name at most.
type Group struct {
	c    *Container
	path string

	names []string
	index map[string]int

	mu    sync.Mutex
	slots []Entry // nil means unresolved
}

func newGroup(c *Container, path string) (*Group, error) {
	listed, err := c.b.ListChildren(path)
	if err != nil {
		return nil, utils.WrapPathError("list children", path, err)
	}

	names := make([]string, 0, len(listed))
	index := make(map[string]int, len(listed))
	for _, name := range listed {
		if _, dup := index[name]; dup {
			continue
		}
		index[name] = len(names)
		names = append(names, name)
	}

	return &Group{
		c:     c,
		path:  path,
		names: names,
		index: index,
		slots: make([]Entry, len(names)),
	}, nil
}

func (g *Group) isEntry() {}

// Path returns the absolute path of the group.
func (g *Group) Path() string { return g.path }

// Name returns the last path component, or "/" for the root.
func (g *Group) Name() string { return baseName(g.path) }

// Kind returns backend.KindGroup.
func (g *Group) Kind() backend.Kind { return backend.KindGroup }

// IsGroup returns true.
func (g *Group) IsGroup() bool { return true }

// IsDataset returns false.
func (g *Group) IsDataset() bool { return !g.IsGroup() }

// Names returns the child names in the order the backend reported them.
func (g *Group) Names() []string { return slices.Clone(g.names) }

// Len returns the number of children.
func (g *Group) Len() int { return len(g.names) }

// GetEntry returns the immediate child called name, or nil if there is none.
func (g *Group) GetEntry(name string) (Entry, error) {
	if err := g.c.checkOpen(); err != nil {
		return nil, err
	}
	i, ok := g.index[name]
	if !ok {
		return nil, nil
	}
	return g.resolve(i)
}

// GetGroup returns the immediate child group called name. It returns nil
// when the name is absent or names a dataset.
func (g *Group) GetGroup(name string) (*Group, error) {
	e, err := g.GetEntry(name)
	if err != nil {
		return nil, err
	}
	grp, _ := e.(*Group)
	return grp, nil
}

// GetDataset returns the immediate child dataset called name. It returns nil
// when the name is absent or names a group.
func (g *Group) GetDataset(name string) (*Dataset, error) {
	e, err := g.GetEntry(name)
	if err != nil {
		return nil, err
	}
	ds, _ := e.(*Dataset)
	return ds, nil
}

// Entries resolves every child and returns them in listing order.
func (g *Group) Entries() ([]Entry, error) {
	if err := g.c.checkOpen(); err != nil {
		return nil, err
	}
	out := make([]Entry, len(g.names))
	for i := range g.names {
		e, err := g.resolve(i)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

// All returns an iterator over (name, entry) pairs. Every child is resolved
// before All returns, so iteration itself cannot fail.
func (g *Group) All() (iter.Seq2[string, Entry], error) {
	entries, err := g.Entries()
	if err != nil {
		return nil, err
	}
	return func(yield func(string, Entry) bool) {
		for i, e := range entries {
			if !yield(g.names[i], e) {
				return
			}
		}
	}, nil
}

// Attributes returns the attributes attached to the group.
func (g *Group) Attributes() (map[string]any, error) {
	return attributes(g.c, g.path)
}

// String renders a short human-readable summary.
func (g *Group) String() string {
	return fmt.Sprintf("Path: %s\n\tNumber of entries: %d\n\tEntries: %v", g.path, len(g.names), g.names)
}

// resolve returns the entry in slot i, constructing it on first use. A failed
// construction leaves the slot unresolved.
func (g *Group) resolve(i int) (Entry, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if e := g.slots[i]; e != nil {
		return e, nil
	}

	path := backend.Join(g.path, g.names[i])
	kind, err := g.c.b.Kind(path)
	if err != nil {
		return nil, utils.WrapPathError("resolve entry", path, err)
	}

	var e Entry
	switch kind {
	case backend.KindGroup:
		grp, err := newGroup(g.c, path)
		if err != nil {
			return nil, err
		}
		e = grp
	case backend.KindDataset:
		ds, err := newDataset(g.c, path)
		if err != nil {
			return nil, err
		}
		e = ds
	default:
		return nil, utils.WrapPathError("resolve entry", path, fmt.Errorf("unsupported kind %s", kind))
	}

	g.slots[i] = e
	g.c.log.Debug().Str("path", path).Stringer("kind", kind).Msg("entry resolved")
	return e, nil
}
