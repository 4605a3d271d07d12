// Copyright (c) 2025 SciGo HDF5 Library Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.

// Package backend defines the raw storage capability consumed by hdf5struct.
//
// A Backend answers structural questions (children, kind, shape, element type)
// and performs flat typed reads for slash-separated paths rooted at "/".
// It knows nothing about memoization, search or typed contracts; those live in
// the hdf5struct package.
package backend

import "fmt"

// Kind tells whether a path names a group or a dataset.
type Kind int

const (
	// KindGroup is a container node.
	KindGroup Kind = iota
	// KindDataset is a typed array leaf.
	KindDataset
)

// String returns "group" or "dataset".
func (k Kind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindDataset:
		return "dataset"
	default:
		return fmt.Sprintf("kind_%d", int(k))
	}
}

// ElementType is the closed set of element types a dataset can hold.
type ElementType int

const (
	// Other covers every stored type without a typed accessor.
	Other ElementType = iota
	// Float64 is a floating point element (float32 storage widens losslessly).
	Float64
	// Int32 is an integer element of at most 32 bits.
	Int32
	// String is a fixed or variable length string element.
	String
	// Compound is a record with named fields.
	Compound
)

// String returns the lower-case type name.
func (t ElementType) String() string {
	switch t {
	case Float64:
		return "float64"
	case Int32:
		return "int32"
	case String:
		return "string"
	case Compound:
		return "compound"
	default:
		return "other"
	}
}

// Record is one element of a compound dataset, keyed by field name.
type Record map[string]any

// Backend is the raw storage surface. Reads return flat row-major buffers.
//
// Implementations report a missing path with an error; callers that need
// absence semantics check membership through ListChildren first.
type Backend interface {
	ListChildren(path string) ([]string, error)
	Exists(path string) (bool, error)
	Kind(path string) (Kind, error)
	Shape(path string) ([]int, error)
	ElementType(path string) (ElementType, error)
	ReadFloat64(path string) ([]float64, error)
	ReadInt32(path string) ([]int32, error)
	ReadStrings(path string) ([]string, error)
	ReadCompound(path string) ([]Record, error)
	Attributes(path string) (map[string]any, error)
	Close() error
}

// Opener opens a Backend for a location.
type Opener func(location string) (Backend, error)

// Writer is the optional write-back capability.
type Writer interface {
	CreateGroup(path string) error
	WriteFloat64(path string, dims []int, data []float64) error
	WriteInt32(path string, dims []int, data []int32) error
	WriteStrings(path string, data []string) error
	Close() error
}

// Creator creates a new, empty container at location.
type Creator func(location string) (Writer, error)
