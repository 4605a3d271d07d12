package hdf5struct

import (
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/scigolib/hdf5struct/backend"
	"github.com/scigolib/hdf5struct/internal/utils"
)

// Writer builds a new container. Parent groups must be created before the
// entries inside them.
//
// Example:
//
//	w, err := hdf5struct.Create("out.h5")
//	if err != nil {
//	    return err
//	}
//	_ = w.CreateGroup("/run1")
//	_ = w.WriteFloat64Matrix("/run1/voltage", rows)
//	return w.Close()
type Writer struct {
	location string
	w        backend.Writer
	log      zerolog.Logger
	closed   atomic.Bool
}

// Create creates (or truncates) a container at location. By default the
// container is an HDF5 file; WithCreator selects another backend.
func Create(location string, opts ...Option) (*Writer, error) {
	cfg := newConfig(opts)
	w, err := cfg.creator(location)
	if err != nil {
		return nil, utils.WrapPathError("create container", location, err)
	}
	return &Writer{
		location: location,
		w:        w,
		log:      cfg.logger.With().Str("location", location).Logger(),
	}, nil
}

// CreateGroup creates a group at an absolute path.
func (w *Writer) CreateGroup(path string) error {
	if err := w.checkOpen(); err != nil {
		return err
	}
	path = backend.Clean(path)
	if err := w.w.CreateGroup(path); err != nil {
		return utils.WrapPathError("create group", path, err)
	}
	w.log.Debug().Str("path", path).Msg("group created")
	return nil
}

// WriteFloat64 writes a rank 1 float64 dataset.
func (w *Writer) WriteFloat64(path string, data []float64) error {
	if err := w.checkOpen(); err != nil {
		return err
	}
	return w.written(path, []int{len(data)}, w.w.WriteFloat64(backend.Clean(path), []int{len(data)}, data))
}

// WriteFloat64Matrix writes a rank 2 float64 dataset. All rows must have the
// same length.
func (w *Writer) WriteFloat64Matrix(path string, rows [][]float64) error {
	if err := w.checkOpen(); err != nil {
		return err
	}
	flat, dims, err := utils.Flatten(rows)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrShapeMismatch, path, err)
	}
	return w.written(path, dims, w.w.WriteFloat64(backend.Clean(path), dims, flat))
}

// WriteInt32 writes a rank 1 int32 dataset.
func (w *Writer) WriteInt32(path string, data []int32) error {
	if err := w.checkOpen(); err != nil {
		return err
	}
	return w.written(path, []int{len(data)}, w.w.WriteInt32(backend.Clean(path), []int{len(data)}, data))
}

// WriteInt32Matrix writes a rank 2 int32 dataset. All rows must have the
// same length.
func (w *Writer) WriteInt32Matrix(path string, rows [][]int32) error {
	if err := w.checkOpen(); err != nil {
		return err
	}
	flat, dims, err := utils.Flatten(rows)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrShapeMismatch, path, err)
	}
	return w.written(path, dims, w.w.WriteInt32(backend.Clean(path), dims, flat))
}

// WriteStrings writes a rank 1 string dataset.
func (w *Writer) WriteStrings(path string, data []string) error {
	if err := w.checkOpen(); err != nil {
		return err
	}
	return w.written(path, []int{len(data)}, w.w.WriteStrings(backend.Clean(path), data))
}

func (w *Writer) written(path string, dims []int, err error) error {
	path = backend.Clean(path)
	if err != nil {
		return utils.WrapPathError("write dataset", path, err)
	}
	w.log.Debug().Str("path", path).Ints("dims", dims).Msg("dataset written")
	return nil
}

// Close flushes and closes the container. Later calls return nil; every
// other method returns ErrClosed once Close has been called.
func (w *Writer) Close() error {
	if w.closed.Swap(true) {
		return nil
	}
	w.log.Debug().Msg("writer closed")
	return utils.WrapPathError("close container", w.location, w.w.Close())
}

func (w *Writer) checkOpen() error {
	if w.closed.Load() {
		return fmt.Errorf("%w: %s", ErrClosed, w.location)
	}
	return nil
}
