// Copyright (c) 2025 SciGo HDF5 Library Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.

package hdf5struct

import (
	"fmt"
	"slices"

	"github.com/scigolib/hdf5struct/backend"
	"github.com/scigolib/hdf5struct/internal/utils"
)

// Dataset is a typed multi-dimensional array leaf. Its shape and element
// type are read once, when the dataset is first reached, and never change.
type Dataset struct {
	c     *Container
	path  string
	dims  []int
	etype backend.ElementType
	count int
}

func newDataset(c *Container, path string) (*Dataset, error) {
	dims, err := c.b.Shape(path)
	if err != nil {
		return nil, utils.WrapPathError("read shape", path, err)
	}
	if len(dims) == 0 {
		dims = []int{1}
	}
	count, err := utils.ElementCount(dims)
	if err != nil {
		return nil, utils.WrapPathError("read shape", path, err)
	}

	etype, err := c.b.ElementType(path)
	if err != nil {
		return nil, utils.WrapPathError("read element type", path, err)
	}

	return &Dataset{
		c:     c,
		path:  path,
		dims:  slices.Clone(dims),
		etype: etype,
		count: count,
	}, nil
}

func (d *Dataset) isEntry() {}

// Path returns the absolute path of the dataset.
func (d *Dataset) Path() string { return d.path }

// Name returns the last component of the dataset path.
func (d *Dataset) Name() string { return baseName(d.path) }

// Kind returns backend.KindDataset.
func (d *Dataset) Kind() backend.Kind { return backend.KindDataset }

// IsDataset returns true.
func (d *Dataset) IsDataset() bool { return true }

// IsGroup returns false.
func (d *Dataset) IsGroup() bool { return !d.IsDataset() }

// Rank returns the number of dimensions, at least 1.
func (d *Dataset) Rank() int { return len(d.dims) }

// Dims returns a copy of the dimension sizes.
func (d *Dataset) Dims() []int { return slices.Clone(d.dims) }

// Dim returns the size of one axis.
func (d *Dataset) Dim(axis int) (int, error) {
	if axis < 0 || axis >= len(d.dims) {
		return 0, fmt.Errorf("%w: axis %d of %s (rank %d)", ErrIndexOutOfRange, axis, d.path, len(d.dims))
	}
	return d.dims[axis], nil
}

// XDim returns the size of the first axis.
func (d *Dataset) XDim() (int, error) { return d.Dim(0) }

// YDim returns the size of the second axis.
func (d *Dataset) YDim() (int, error) { return d.Dim(1) }

// NumElements returns the product of the dimensions.
func (d *Dataset) NumElements() int { return d.count }

// ElementType returns the stored element type.
func (d *Dataset) ElementType() backend.ElementType { return d.etype }

// ReadFloat64 reads a rank 1 float64 dataset.
func (d *Dataset) ReadFloat64() ([]float64, error) {
	return readVector(d, backend.Float64, d.c.b.ReadFloat64)
}

// ReadFloat64Matrix reads a rank 2 float64 dataset as rows.
func (d *Dataset) ReadFloat64Matrix() ([][]float64, error) {
	return readMatrix(d, backend.Float64, d.c.b.ReadFloat64)
}

// ReadInt32 reads a rank 1 int32 dataset.
func (d *Dataset) ReadInt32() ([]int32, error) {
	return readVector(d, backend.Int32, d.c.b.ReadInt32)
}

// ReadInt32Matrix reads a rank 2 int32 dataset as rows.
func (d *Dataset) ReadInt32Matrix() ([][]int32, error) {
	return readMatrix(d, backend.Int32, d.c.b.ReadInt32)
}

// ReadStrings reads a string dataset of any rank as a flat row-major slice.
func (d *Dataset) ReadStrings() ([]string, error) {
	return readFlat(d, backend.String, d.c.b.ReadStrings)
}

// ReadCompound reads a compound dataset of any rank as flat records.
func (d *Dataset) ReadCompound() ([]backend.Record, error) {
	return readFlat(d, backend.Compound, d.c.b.ReadCompound)
}

// Attributes returns the attributes attached to the dataset.
func (d *Dataset) Attributes() (map[string]any, error) {
	return attributes(d.c, d.path)
}

// String renders a short human-readable summary.
func (d *Dataset) String() string {
	return fmt.Sprintf("Path: %s\n\tDimensions: %v\n\tType: %s", d.path, d.dims, d.etype)
}

func (d *Dataset) expect(want backend.ElementType, rank int) error {
	if err := d.c.checkOpen(); err != nil {
		return err
	}
	if d.etype != want {
		return fmt.Errorf("%w: %s holds %s, requested %s", ErrTypeMismatch, d.path, d.etype, want)
	}
	if rank > 0 && len(d.dims) != rank {
		return fmt.Errorf("%w: %s has rank %d, requested rank %d", ErrRankMismatch, d.path, len(d.dims), rank)
	}
	return nil
}

func readFlat[T any](d *Dataset, want backend.ElementType, read func(string) ([]T, error)) ([]T, error) {
	if err := d.expect(want, 0); err != nil {
		return nil, err
	}
	flat, err := read(d.path)
	if err != nil {
		return nil, utils.WrapPathError("read "+want.String(), d.path, err)
	}
	if len(flat) != d.count {
		return nil, fmt.Errorf("%w: %s returned %d elements, dims %v need %d",
			ErrShapeMismatch, d.path, len(flat), d.dims, d.count)
	}
	return flat, nil
}

func readVector[T any](d *Dataset, want backend.ElementType, read func(string) ([]T, error)) ([]T, error) {
	if err := d.expect(want, 1); err != nil {
		return nil, err
	}
	return readFlat(d, want, read)
}

func readMatrix[T any](d *Dataset, want backend.ElementType, read func(string) ([]T, error)) ([][]T, error) {
	if err := d.expect(want, 2); err != nil {
		return nil, err
	}
	flat, err := readFlat(d, want, read)
	if err != nil {
		return nil, err
	}
	rows, err := utils.Reshape(flat, d.dims[0], d.dims[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrShapeMismatch, d.path, err)
	}
	return rows, nil
}

func attributes(c *Container, path string) (map[string]any, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}
	attrs, err := c.b.Attributes(path)
	if err != nil {
		return nil, utils.WrapPathError("read attributes", path, err)
	}
	return attrs, nil
}
