// Package testing provides backend wrappers for hdf5struct tests.
package testing

import (
	"errors"
	"sync"

	"github.com/scigolib/hdf5struct/backend"
)

// ErrInjected is the failure returned by FaultBackend.
var ErrInjected = errors.New("injected backend failure")

// CountingBackend wraps a backend and counts calls per method and path.
type CountingBackend struct {
	backend.Backend

	mu    sync.Mutex
	calls map[string]map[string]int
}

// NewCountingBackend wraps b.
func NewCountingBackend(b backend.Backend) *CountingBackend {
	return &CountingBackend{Backend: b, calls: make(map[string]map[string]int)}
}

func (c *CountingBackend) record(method, path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.calls[method] == nil {
		c.calls[method] = make(map[string]int)
	}
	c.calls[method][backend.Clean(path)]++
}

// Calls returns how often method was called for path.
func (c *CountingBackend) Calls(method, path string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[method][backend.Clean(path)]
}

// Total returns how often method was called for any path.
func (c *CountingBackend) Total(method string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, v := range c.calls[method] {
		n += v
	}
	return n
}

// ListChildren implements backend.Backend.
func (c *CountingBackend) ListChildren(path string) ([]string, error) {
	c.record("ListChildren", path)
	return c.Backend.ListChildren(path)
}

// Kind implements backend.Backend.
func (c *CountingBackend) Kind(path string) (backend.Kind, error) {
	c.record("Kind", path)
	return c.Backend.Kind(path)
}

// Shape implements backend.Backend.
func (c *CountingBackend) Shape(path string) ([]int, error) {
	c.record("Shape", path)
	return c.Backend.Shape(path)
}

// ElementType implements backend.Backend.
func (c *CountingBackend) ElementType(path string) (backend.ElementType, error) {
	c.record("ElementType", path)
	return c.Backend.ElementType(path)
}

// ReadFloat64 implements backend.Backend.
func (c *CountingBackend) ReadFloat64(path string) ([]float64, error) {
	c.record("ReadFloat64", path)
	return c.Backend.ReadFloat64(path)
}

// ReadInt32 implements backend.Backend.
func (c *CountingBackend) ReadInt32(path string) ([]int32, error) {
	c.record("ReadInt32", path)
	return c.Backend.ReadInt32(path)
}

// FaultBackend wraps a backend and overrides selected answers.
// Fields left nil pass through to the wrapped backend.
type FaultBackend struct {
	backend.Backend

	// FailKind makes Kind fail with ErrInjected for these paths.
	FailKind map[string]bool
	// FailRead makes every typed read fail with ErrInjected for these paths.
	FailRead map[string]bool
	// Float64 and Int32 replace the buffers returned for these paths.
	Float64 map[string][]float64
	Int32   map[string][]int32
	// Shapes replaces the dimensions reported for these paths.
	Shapes map[string][]int
	// CloseErr is returned by Close after the wrapped backend is closed.
	CloseErr error
}

// Kind implements backend.Backend.
func (f *FaultBackend) Kind(path string) (backend.Kind, error) {
	if f.FailKind[backend.Clean(path)] {
		return 0, ErrInjected
	}
	return f.Backend.Kind(path)
}

// Shape implements backend.Backend.
func (f *FaultBackend) Shape(path string) ([]int, error) {
	if dims, ok := f.Shapes[backend.Clean(path)]; ok {
		return dims, nil
	}
	return f.Backend.Shape(path)
}

// ReadFloat64 implements backend.Backend.
func (f *FaultBackend) ReadFloat64(path string) ([]float64, error) {
	p := backend.Clean(path)
	if f.FailRead[p] {
		return nil, ErrInjected
	}
	if v, ok := f.Float64[p]; ok {
		return v, nil
	}
	return f.Backend.ReadFloat64(path)
}

// ReadInt32 implements backend.Backend.
func (f *FaultBackend) ReadInt32(path string) ([]int32, error) {
	p := backend.Clean(path)
	if f.FailRead[p] {
		return nil, ErrInjected
	}
	if v, ok := f.Int32[p]; ok {
		return v, nil
	}
	return f.Backend.ReadInt32(path)
}

// ReadStrings implements backend.Backend.
func (f *FaultBackend) ReadStrings(path string) ([]string, error) {
	if f.FailRead[backend.Clean(path)] {
		return nil, ErrInjected
	}
	return f.Backend.ReadStrings(path)
}

// Close implements backend.Backend.
func (f *FaultBackend) Close() error {
	if err := f.Backend.Close(); err != nil {
		return err
	}
	return f.CloseErr
}
