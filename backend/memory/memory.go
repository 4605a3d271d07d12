// Package memory provides an in-memory Backend and Writer.
//
// A Store maps locations to trees so that a container written through a
// Creator can be reopened through an Opener, the same way an HDF5 file is
// written, closed and reopened on disk.
package memory

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/scigolib/hdf5struct/backend"
	"github.com/scigolib/hdf5struct/internal/utils"
)

// ErrClosed is returned by every call on a closed handle.
var ErrClosed = errors.New("memory backend is closed")

type node struct {
	kind     backend.Kind
	children []string

	dims    []int
	etype   backend.ElementType
	floats  []float64
	ints    []int32
	strs    []string
	records []backend.Record

	attrs map[string]any
}

type tree struct {
	mu    sync.RWMutex
	nodes map[string]*node
}

func newTree() *tree {
	return &tree{
		nodes: map[string]*node{"/": {kind: backend.KindGroup}},
	}
}

// Backend is a handle on an in-memory tree. It implements both
// backend.Backend and backend.Writer.
type Backend struct {
	t      *tree
	closed atomic.Bool
}

var (
	_ backend.Backend = (*Backend)(nil)
	_ backend.Writer  = (*Backend)(nil)
)

// New returns a handle on a fresh tree holding only the root group.
func New() *Backend {
	return &Backend{t: newTree()}
}

// Close releases the handle. The tree stays readable through other handles.
func (b *Backend) Close() error {
	b.closed.Store(true)
	return nil
}

func (b *Backend) lookup(path string) (*node, error) {
	if b.closed.Load() {
		return nil, ErrClosed
	}
	n, ok := b.t.nodes[backend.Clean(path)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", backend.ErrNotExist, backend.Clean(path))
	}
	return n, nil
}

func (b *Backend) dataset(path string) (*node, error) {
	n, err := b.lookup(path)
	if err != nil {
		return nil, err
	}
	if n.kind != backend.KindDataset {
		return nil, fmt.Errorf("%w: %s", backend.ErrNotDataset, backend.Clean(path))
	}
	return n, nil
}

// ListChildren returns the child names of a group in insertion order.
func (b *Backend) ListChildren(path string) ([]string, error) {
	b.t.mu.RLock()
	defer b.t.mu.RUnlock()

	n, err := b.lookup(path)
	if err != nil {
		return nil, err
	}
	if n.kind != backend.KindGroup {
		return nil, fmt.Errorf("%w: %s", backend.ErrNotGroup, backend.Clean(path))
	}
	return slices.Clone(n.children), nil
}

// Exists reports whether path is held by the tree.
func (b *Backend) Exists(path string) (bool, error) {
	b.t.mu.RLock()
	defer b.t.mu.RUnlock()

	_, err := b.lookup(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, backend.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

// Kind returns the kind of path.
func (b *Backend) Kind(path string) (backend.Kind, error) {
	b.t.mu.RLock()
	defer b.t.mu.RUnlock()

	n, err := b.lookup(path)
	if err != nil {
		return 0, err
	}
	return n.kind, nil
}

// Shape returns the dimensions of a dataset.
func (b *Backend) Shape(path string) ([]int, error) {
	b.t.mu.RLock()
	defer b.t.mu.RUnlock()

	n, err := b.dataset(path)
	if err != nil {
		return nil, err
	}
	return slices.Clone(n.dims), nil
}

// ElementType returns the element type of a dataset.
func (b *Backend) ElementType(path string) (backend.ElementType, error) {
	b.t.mu.RLock()
	defer b.t.mu.RUnlock()

	n, err := b.dataset(path)
	if err != nil {
		return backend.Other, err
	}
	return n.etype, nil
}

// ReadFloat64 returns the flat contents of a float64 dataset.
func (b *Backend) ReadFloat64(path string) ([]float64, error) {
	n, err := b.read(path, backend.Float64)
	if err != nil {
		return nil, err
	}
	return slices.Clone(n.floats), nil
}

// ReadInt32 returns the flat contents of an int32 dataset.
func (b *Backend) ReadInt32(path string) ([]int32, error) {
	n, err := b.read(path, backend.Int32)
	if err != nil {
		return nil, err
	}
	return slices.Clone(n.ints), nil
}

// ReadStrings returns the flat contents of a string dataset.
func (b *Backend) ReadStrings(path string) ([]string, error) {
	n, err := b.read(path, backend.String)
	if err != nil {
		return nil, err
	}
	return slices.Clone(n.strs), nil
}

// ReadCompound returns the records of a compound dataset.
func (b *Backend) ReadCompound(path string) ([]backend.Record, error) {
	n, err := b.read(path, backend.Compound)
	if err != nil {
		return nil, err
	}
	out := make([]backend.Record, len(n.records))
	for i, rec := range n.records {
		out[i] = maps.Clone(rec)
	}
	return out, nil
}

// Attributes returns a copy of the attributes attached to path.
func (b *Backend) Attributes(path string) (map[string]any, error) {
	b.t.mu.RLock()
	defer b.t.mu.RUnlock()

	n, err := b.lookup(path)
	if err != nil {
		return nil, err
	}
	out := make(map[string]any, len(n.attrs))
	maps.Copy(out, n.attrs)
	return out, nil
}

func (b *Backend) read(path string, want backend.ElementType) (*node, error) {
	b.t.mu.RLock()
	defer b.t.mu.RUnlock()

	n, err := b.dataset(path)
	if err != nil {
		return nil, err
	}
	if n.etype != want {
		return nil, fmt.Errorf("dataset %s stores %s, not %s", backend.Clean(path), n.etype, want)
	}
	return n, nil
}

// CreateGroup adds an empty group. The parent group must exist.
func (b *Backend) CreateGroup(path string) error {
	return b.insert(path, &node{kind: backend.KindGroup})
}

// WriteFloat64 adds a float64 dataset with the given dimensions.
func (b *Backend) WriteFloat64(path string, dims []int, data []float64) error {
	if err := checkLen(dims, len(data)); err != nil {
		return utils.WrapPathError("write float64", path, err)
	}
	return b.insert(path, &node{
		kind:   backend.KindDataset,
		dims:   slices.Clone(dims),
		etype:  backend.Float64,
		floats: slices.Clone(data),
	})
}

// WriteInt32 adds an int32 dataset with the given dimensions.
func (b *Backend) WriteInt32(path string, dims []int, data []int32) error {
	if err := checkLen(dims, len(data)); err != nil {
		return utils.WrapPathError("write int32", path, err)
	}
	return b.insert(path, &node{
		kind:  backend.KindDataset,
		dims:  slices.Clone(dims),
		etype: backend.Int32,
		ints:  slices.Clone(data),
	})
}

// WriteStrings adds a one-dimensional string dataset.
func (b *Backend) WriteStrings(path string, data []string) error {
	return b.insert(path, &node{
		kind:  backend.KindDataset,
		dims:  []int{len(data)},
		etype: backend.String,
		strs:  slices.Clone(data),
	})
}

// WriteCompound adds a one-dimensional compound dataset.
func (b *Backend) WriteCompound(path string, records []backend.Record) error {
	recs := make([]backend.Record, len(records))
	for i, rec := range records {
		recs[i] = maps.Clone(rec)
	}
	return b.insert(path, &node{
		kind:    backend.KindDataset,
		dims:    []int{len(records)},
		etype:   backend.Compound,
		records: recs,
	})
}

// WriteOpaque adds a dataset of a type without typed accessors.
func (b *Backend) WriteOpaque(path string, dims []int) error {
	if _, err := utils.ElementCount(dims); err != nil {
		return utils.WrapPathError("write opaque", path, err)
	}
	return b.insert(path, &node{
		kind:  backend.KindDataset,
		dims:  slices.Clone(dims),
		etype: backend.Other,
	})
}

// SetAttribute attaches a named value to an existing path.
func (b *Backend) SetAttribute(path, name string, value any) error {
	b.t.mu.Lock()
	defer b.t.mu.Unlock()

	n, err := b.lookup(path)
	if err != nil {
		return err
	}
	if n.attrs == nil {
		n.attrs = make(map[string]any)
	}
	n.attrs[name] = value
	return nil
}

func (b *Backend) insert(path string, n *node) error {
	b.t.mu.Lock()
	defer b.t.mu.Unlock()

	if b.closed.Load() {
		return ErrClosed
	}

	path = backend.Clean(path)
	if path == "/" {
		return errors.New("root group already exists")
	}
	if _, ok := b.t.nodes[path]; ok {
		return fmt.Errorf("path %s already exists", path)
	}

	parentPath, name := backend.Split(path)
	parent, ok := b.t.nodes[parentPath]
	if !ok {
		return fmt.Errorf("parent of %s: %w: %s", path, backend.ErrNotExist, parentPath)
	}
	if parent.kind != backend.KindGroup {
		return fmt.Errorf("parent of %s: %w: %s", path, backend.ErrNotGroup, parentPath)
	}

	parent.children = append(parent.children, name)
	b.t.nodes[path] = n
	return nil
}

func checkLen(dims []int, n int) error {
	if len(dims) == 0 {
		return errors.New("dataset needs at least one dimension")
	}
	want, err := utils.ElementCount(dims)
	if err != nil {
		return err
	}
	if want != n {
		return fmt.Errorf("shape %v needs %d elements, got %d", dims, want, n)
	}
	return nil
}
