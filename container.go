// Copyright (c) 2025 SciGo HDF5 Library Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.

package hdf5struct

import (
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/scigolib/hdf5struct/backend"
	"github.com/scigolib/hdf5struct/internal/utils"
)

// Container is an open data container. It exclusively owns its backend; the
// entries it hands out refer back to it and fail with ErrClosed once Close
// has been called.
type Container struct {
	location string
	b        backend.Backend
	root     *Group
	log      zerolog.Logger
	closed   atomic.Bool
}

// Open opens the container at location. By default location is an HDF5
// file; WithOpener selects another backend. Failures match ErrOpen and wrap
// the backend cause.
func Open(location string, opts ...Option) (*Container, error) {
	cfg := newConfig(opts)

	b, err := cfg.opener(location)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrOpen, location, err)
	}

	c, err := newContainer(b, location, cfg)
	if err != nil {
		_ = b.Close()
		return nil, fmt.Errorf("%w %q: %w", ErrOpen, location, err)
	}
	return c, nil
}

// New wraps an already opened backend. The container takes ownership of b
// and closes it in Close.
func New(b backend.Backend, location string, opts ...Option) (*Container, error) {
	return newContainer(b, location, newConfig(opts))
}

func newContainer(b backend.Backend, location string, cfg *config) (*Container, error) {
	c := &Container{
		location: location,
		b:        b,
		log:      cfg.logger.With().Str("location", location).Logger(),
	}
	root, err := newGroup(c, "/")
	if err != nil {
		return nil, err
	}
	c.root = root
	c.log.Debug().Int("entries", root.Len()).Msg("container opened")
	return c, nil
}

// Close releases the backend. It is safe to call Close more than once; only
// the first call reaches the backend.
func (c *Container) Close() error {
	if c.closed.Swap(true) {
		return nil
	}
	c.log.Debug().Msg("container closed")
	return utils.WrapPathError("close container", c.location, c.b.Close())
}

func (c *Container) checkOpen() error {
	if c.closed.Load() {
		return fmt.Errorf("%w: %s", ErrClosed, c.location)
	}
	return nil
}

// Location returns the location the container was opened from.
func (c *Container) Location() string { return c.location }

// Root returns the root group.
func (c *Container) Root() *Group { return c.root }

// Names returns the names of the root's children.
func (c *Container) Names() []string { return c.root.Names() }

// GetEntry returns the root child called name, or nil.
func (c *Container) GetEntry(name string) (Entry, error) { return c.root.GetEntry(name) }

// GetGroup returns the root child group called name, or nil.
func (c *Container) GetGroup(name string) (*Group, error) { return c.root.GetGroup(name) }

// GetDataset returns the root child dataset called name, or nil.
func (c *Container) GetDataset(name string) (*Dataset, error) { return c.root.GetDataset(name) }

// FindGroup searches the whole container for a group called name.
func (c *Container) FindGroup(name string) (*Group, error) { return c.root.FindGroup(name) }

// FindDataset searches the whole container for a dataset called name.
func (c *Container) FindDataset(name string) (*Dataset, error) { return c.root.FindDataset(name) }

// Entries resolves and returns the root's children.
func (c *Container) Entries() ([]Entry, error) { return c.root.Entries() }

// Walk visits every entry of the container; see Group.Walk.
func (c *Container) Walk(fn WalkFunc) error { return c.root.Walk(fn) }

// Materialize resolves every entry of the container.
func (c *Container) Materialize() error { return c.root.Materialize() }

// Select returns the datasets matching expression; see Group.Select.
func (c *Container) Select(expression string) ([]*Dataset, error) { return c.root.Select(expression) }

// Values reads every dataset of the container; see Group.Values.
func (c *Container) Values() (map[string]any, error) { return c.root.Values() }

// Lookup resolves a path from the root, for example "run1/voltage".
func (c *Container) Lookup(path string) (Entry, error) { return c.root.Lookup(path) }

// String renders a short human-readable summary.
func (c *Container) String() string {
	return fmt.Sprintf("filename: %s\nEntries: %v", c.location, c.root.names)
}
