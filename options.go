// Copyright (c) 2025 SciGo HDF5 Library Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.

package hdf5struct

import (
	"github.com/rs/zerolog"

	"github.com/scigolib/hdf5struct/backend"
	"github.com/scigolib/hdf5struct/backend/h5file"
)

// Option configures Open, New and Create.
//
// Example:
//
//	store := memory.NewStore()
//	c, err := hdf5struct.Open("run.h5",
//	    hdf5struct.WithOpener(store.Opener()),
//	    hdf5struct.WithLogger(logger),
//	)
type Option func(*config)

type config struct {
	opener  backend.Opener
	creator backend.Creator
	logger  zerolog.Logger
}

func newConfig(opts []Option) *config {
	cfg := &config{
		opener:  h5file.Opener(),
		creator: h5file.Creator(),
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

// WithOpener replaces the default HDF5 file backend used by Open.
func WithOpener(opener backend.Opener) Option {
	return func(c *config) {
		if opener != nil {
			c.opener = opener
		}
	}
}

// WithCreator replaces the default HDF5 file writer used by Create.
func WithCreator(creator backend.Creator) Option {
	return func(c *config) {
		if creator != nil {
			c.creator = creator
		}
	}
}

// WithLogger enables debug logging of container lifecycle and entry
// resolution. The default logger discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}
