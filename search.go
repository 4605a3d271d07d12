package hdf5struct

import (
	"errors"
	"strings"

	"github.com/scigolib/hdf5struct/backend"
)

// FindGroup searches the subtree below g for a group called name. Immediate
// children are checked first, then each child group is searched in the
// order the backend lists them; the first hit wins. It returns nil when
// nothing matches.
func (g *Group) FindGroup(name string) (*Group, error) {
	e, err := g.find(name, backend.KindGroup)
	if err != nil || e == nil {
		return nil, err
	}
	return e.(*Group), nil
}

// FindDataset is FindGroup for datasets.
func (g *Group) FindDataset(name string) (*Dataset, error) {
	e, err := g.find(name, backend.KindDataset)
	if err != nil || e == nil {
		return nil, err
	}
	return e.(*Dataset), nil
}

func (g *Group) find(name string, kind backend.Kind) (Entry, error) {
	e, err := g.GetEntry(name)
	if err != nil {
		return nil, err
	}
	if e != nil && e.Kind() == kind {
		return e, nil
	}

	for i := range g.names {
		child, err := g.resolve(i)
		if err != nil {
			return nil, err
		}
		sub, ok := child.(*Group)
		if !ok {
			continue
		}
		hit, err := sub.find(name, kind)
		if err != nil || hit != nil {
			return hit, err
		}
	}
	return nil, nil
}

// Lookup resolves a slash-separated path relative to g. Empty components are
// ignored, so "a/b", "/a/b" and "a//b/" are equivalent, and an empty path
// returns g itself. It returns nil if any component is missing or an
// intermediate component is a dataset.
func (g *Group) Lookup(path string) (Entry, error) {
	if err := g.c.checkOpen(); err != nil {
		return nil, err
	}

	var cur Entry = g
	for _, name := range strings.Split(path, "/") {
		if name == "" || name == "." {
			continue
		}
		grp, ok := cur.(*Group)
		if !ok {
			return nil, nil
		}
		next, err := grp.GetEntry(name)
		if err != nil || next == nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

// WalkFunc is called by Walk for each entry. Returning SkipGroup from a
// group visit skips its descendants, and from a dataset visit skips the
// remaining entries of the enclosing group. Any other error stops the walk
// and is returned by Walk.
type WalkFunc func(path string, e Entry) error

// Walk visits g and every entry below it depth-first, parents before
// children, siblings in the order the backend lists them.
func (g *Group) Walk(fn WalkFunc) error {
	if err := g.c.checkOpen(); err != nil {
		return err
	}
	err := g.walk(fn)
	if errors.Is(err, SkipGroup) {
		return nil
	}
	return err
}

func (g *Group) walk(fn WalkFunc) error {
	if err := fn(g.path, g); err != nil {
		return err
	}

	entries, err := g.Entries()
	if err != nil {
		return err
	}
	for _, e := range entries {
		switch e := e.(type) {
		case *Group:
			if err := e.walk(fn); err != nil && !errors.Is(err, SkipGroup) {
				return err
			}
		case *Dataset:
			if err := fn(e.path, e); err != nil {
				return err
			}
		}
	}
	return nil
}

// Materialize resolves the whole subtree below g.
func (g *Group) Materialize() error {
	return g.Walk(func(string, Entry) error { return nil })
}
