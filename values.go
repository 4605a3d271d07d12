package hdf5struct

import (
	"fmt"

	"github.com/scigolib/hdf5struct/backend"
)

// Value reads the dataset through the accessor matching its element type
// and rank. Numeric datasets of rank 1 and 2 come back as []T and [][]T,
// higher ranks as a flat row-major []T. Strings and compounds are always
// flat. A dataset of type Other fails with ErrTypeMismatch.
func (d *Dataset) Value() (any, error) {
	switch d.etype {
	case backend.Float64:
		switch len(d.dims) {
		case 1:
			return d.ReadFloat64()
		case 2:
			return d.ReadFloat64Matrix()
		}
		return readFlat(d, backend.Float64, d.c.b.ReadFloat64)
	case backend.Int32:
		switch len(d.dims) {
		case 1:
			return d.ReadInt32()
		case 2:
			return d.ReadInt32Matrix()
		}
		return readFlat(d, backend.Int32, d.c.b.ReadInt32)
	case backend.String:
		return d.ReadStrings()
	case backend.Compound:
		return d.ReadCompound()
	}
	if err := d.c.checkOpen(); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("%w: %s holds %s, which has no typed accessor", ErrTypeMismatch, d.path, d.etype)
}

// Values reads the whole subtree below g into nested maps keyed by child
// name: a group becomes a map[string]any and a dataset becomes its Value.
// The first dataset that cannot be read aborts the call.
func (g *Group) Values() (map[string]any, error) {
	entries, err := g.Entries()
	if err != nil {
		return nil, err
	}

	out := make(map[string]any, len(entries))
	for i, e := range entries {
		switch e := e.(type) {
		case *Group:
			v, err := e.Values()
			if err != nil {
				return nil, err
			}
			out[g.names[i]] = v
		case *Dataset:
			v, err := e.Value()
			if err != nil {
				return nil, err
			}
			out[g.names[i]] = v
		}
	}
	return out, nil
}
