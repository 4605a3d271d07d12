// Copyright (c) 2025 SciGo HDF5 Library Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.

// Package h5file implements backend.Backend and backend.Writer for HDF5
// files using the pure Go github.com/scigolib/hdf5 reader and writer.
//
// The reader loads the group hierarchy when a file is opened, so Open indexes
// every object by path once; structural queries are served from that index and
// only dataset metadata and values go back to the file.
package h5file

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sync"

	"github.com/scigolib/hdf5"

	"github.com/scigolib/hdf5struct/backend"
	"github.com/scigolib/hdf5struct/internal/utils"
)

// Backend is an open HDF5 file.
type Backend struct {
	location string
	file     *hdf5.File

	objects  map[string]hdf5.Object
	children map[string][]string

	mu   sync.Mutex
	meta map[string]*datasetMeta
}

var _ backend.Backend = (*Backend)(nil)

// Open opens an HDF5 file for reading and indexes its hierarchy.
func Open(location string) (*Backend, error) {
	f, err := hdf5.Open(location)
	if err != nil {
		return nil, utils.WrapPathError("open hdf5 file", location, err)
	}

	b := &Backend{
		location: location,
		file:     f,
		objects:  make(map[string]hdf5.Object),
		children: make(map[string][]string),
		meta:     make(map[string]*datasetMeta),
	}
	f.Walk(b.index)
	return b, nil
}

// Opener returns Open as a backend.Opener.
func Opener() backend.Opener {
	return func(location string) (backend.Backend, error) {
		b, err := Open(location)
		if err != nil {
			return nil, err
		}
		return b, nil
	}
}

// index records one object visited by hdf5.File.Walk. Group paths arrive
// with a trailing slash.
func (b *Backend) index(p string, obj hdf5.Object) {
	p = backend.Clean(p)
	b.objects[p] = obj

	g, ok := obj.(*hdf5.Group)
	if !ok {
		return
	}
	names := make([]string, 0, len(g.Children()))
	for _, child := range g.Children() {
		names = append(names, child.Name())
	}
	b.children[p] = names
}

// Location returns the file name given to Open.
func (b *Backend) Location() string {
	return b.location
}

// Close closes the underlying file. It is safe to call Close multiple times.
func (b *Backend) Close() error {
	return b.file.Close()
}

func (b *Backend) object(p string) (hdf5.Object, error) {
	obj, ok := b.objects[backend.Clean(p)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", backend.ErrNotExist, backend.Clean(p))
	}
	return obj, nil
}

func (b *Backend) dataset(p string) (*hdf5.Dataset, error) {
	obj, err := b.object(p)
	if err != nil {
		return nil, err
	}
	ds, ok := obj.(*hdf5.Dataset)
	if !ok {
		return nil, fmt.Errorf("%w: %s", backend.ErrNotDataset, backend.Clean(p))
	}
	return ds, nil
}

// ListChildren returns child link names in the order the file stores them.
func (b *Backend) ListChildren(p string) ([]string, error) {
	obj, err := b.object(p)
	if err != nil {
		return nil, err
	}
	if _, ok := obj.(*hdf5.Group); !ok {
		return nil, fmt.Errorf("%w: %s", backend.ErrNotGroup, backend.Clean(p))
	}
	return slices.Clone(b.children[backend.Clean(p)]), nil
}

// Exists reports whether the file holds an object at p.
func (b *Backend) Exists(p string) (bool, error) {
	_, ok := b.objects[backend.Clean(p)]
	return ok, nil
}

// Kind returns the kind of the object at p.
func (b *Backend) Kind(p string) (backend.Kind, error) {
	obj, err := b.object(p)
	if err != nil {
		return 0, err
	}
	switch obj.(type) {
	case *hdf5.Group:
		return backend.KindGroup, nil
	case *hdf5.Dataset:
		return backend.KindDataset, nil
	default:
		return 0, fmt.Errorf("unsupported object %T at %s", obj, backend.Clean(p))
	}
}

// Shape returns the dataspace dimensions of a dataset.
func (b *Backend) Shape(p string) ([]int, error) {
	m, err := b.metadata(p)
	if err != nil {
		return nil, err
	}
	return slices.Clone(m.dims), nil
}

// ElementType returns the element type of a dataset.
func (b *Backend) ElementType(p string) (backend.ElementType, error) {
	m, err := b.metadata(p)
	if err != nil {
		return backend.Other, err
	}
	return m.etype, nil
}

func (b *Backend) metadata(p string) (*datasetMeta, error) {
	ds, err := b.dataset(p)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	key := backend.Clean(p)
	if m, ok := b.meta[key]; ok {
		return m, nil
	}

	info, err := ds.Info()
	if err != nil {
		return nil, utils.WrapPathError("read dataset info", key, err)
	}
	m, err := parseInfo(info)
	if err != nil {
		return nil, utils.WrapPathError("parse dataset info", key, err)
	}
	if m.etype == backend.Int32 {
		// A 4-byte integer is only int32 when its datatype is signed. A
		// header that cannot be scanned is not trusted either.
		dt, err := readDatatype(b.file.Reader(), b.layout(), ds.Address())
		if err != nil || dt.unsignedFixed() {
			m.etype = backend.Other
		}
	}
	b.meta[key] = m
	return m, nil
}

func (b *Backend) layout() headerLayout {
	sb := b.file.Superblock()
	return headerLayout{
		order:      sb.Endianness,
		offsetSize: int(sb.OffsetSize),
		lengthSize: int(sb.LengthSize),
	}
}

// ReadFloat64 reads a floating point dataset. float32 storage is widened.
func (b *Backend) ReadFloat64(p string) ([]float64, error) {
	ds, err := b.dataset(p)
	if err != nil {
		return nil, err
	}
	values, err := ds.Read()
	if err != nil {
		return nil, utils.WrapPathError("read float64", backend.Clean(p), err)
	}
	return values, nil
}

// ReadInt32 reads a 32-bit integer dataset.
func (b *Backend) ReadInt32(p string) ([]int32, error) {
	ds, err := b.dataset(p)
	if err != nil {
		return nil, err
	}
	m, err := b.metadata(p)
	if err != nil {
		return nil, err
	}
	if m.etype != backend.Int32 {
		return nil, utils.WrapPathError("read int32", backend.Clean(p),
			fmt.Errorf("stored %s (size=%d) is not int32", m.class, m.size))
	}
	values, err := ds.Read()
	if err != nil {
		return nil, utils.WrapPathError("read int32", backend.Clean(p), err)
	}

	// The reader widens int32 to float64, which is exact; anything outside
	// the int32 range means the stored type was not int32.
	out := make([]int32, len(values))
	for i, v := range values {
		if v < math.MinInt32 || v > math.MaxInt32 || v != math.Trunc(v) {
			return nil, utils.WrapPathError("read int32", backend.Clean(p),
				fmt.Errorf("element %d (%v) is not an int32", i, v))
		}
		out[i] = int32(v)
	}
	return out, nil
}

// ReadStrings reads a fixed-length string dataset.
func (b *Backend) ReadStrings(p string) ([]string, error) {
	ds, err := b.dataset(p)
	if err != nil {
		return nil, err
	}
	values, err := ds.ReadStrings()
	if err != nil {
		return nil, utils.WrapPathError("read strings", backend.Clean(p), err)
	}
	return values, nil
}

// ReadCompound reads a compound dataset into field-keyed records.
func (b *Backend) ReadCompound(p string) ([]backend.Record, error) {
	ds, err := b.dataset(p)
	if err != nil {
		return nil, err
	}
	values, err := ds.ReadCompound()
	if err != nil {
		return nil, utils.WrapPathError("read compound", backend.Clean(p), err)
	}
	out := make([]backend.Record, len(values))
	for i, v := range values {
		out[i] = backend.Record(v)
	}
	return out, nil
}

// Attributes decodes every attribute attached to a group or dataset.
// Groups stored in the legacy symbol table format carry no attributes.
func (b *Backend) Attributes(p string) (map[string]any, error) {
	obj, err := b.object(p)
	if err != nil {
		return nil, err
	}

	out := make(map[string]any)
	switch o := obj.(type) {
	case *hdf5.Group:
		attrs, err := o.Attributes()
		if err != nil {
			return nil, utils.WrapPathError("read attributes", backend.Clean(p), err)
		}
		for _, a := range attrs {
			v, err := a.ReadValue()
			if err != nil {
				return nil, utils.WrapPathError("read attribute "+a.Name, backend.Clean(p), err)
			}
			out[a.Name] = v
		}
	case *hdf5.Dataset:
		names, err := o.ListAttributes()
		if err != nil {
			return nil, utils.WrapPathError("read attributes", backend.Clean(p), err)
		}
		for _, name := range names {
			v, err := o.ReadAttribute(name)
			if err != nil {
				return nil, utils.WrapPathError("read attribute "+name, backend.Clean(p), err)
			}
			out[name] = v
		}
	default:
		return nil, errors.New("object has no attributes")
	}
	return out, nil
}
