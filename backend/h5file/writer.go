package h5file

import (
	"errors"
	"fmt"
	"os"

	"github.com/scigolib/hdf5"

	"github.com/scigolib/hdf5struct/backend"
	"github.com/scigolib/hdf5struct/internal/utils"
)

// Writer creates a new HDF5 file. Groups must be created before the
// datasets they contain.
type Writer struct {
	location string
	fw       *hdf5.FileWriter

	// int32 datasets; their datatypes are marked signed on Close.
	signed []string
}

var _ backend.Writer = (*Writer)(nil)

// Create creates (or truncates) an HDF5 file at location.
func Create(location string) (*Writer, error) {
	fw, err := hdf5.CreateForWrite(location, hdf5.CreateTruncate)
	if err != nil {
		return nil, utils.WrapPathError("create hdf5 file", location, err)
	}
	return &Writer{location: location, fw: fw}, nil
}

// Creator returns Create as a backend.Creator.
func Creator() backend.Creator {
	return func(location string) (backend.Writer, error) {
		w, err := Create(location)
		if err != nil {
			return nil, err
		}
		return w, nil
	}
}

// CreateGroup creates a group; the parent group must already exist.
func (w *Writer) CreateGroup(p string) error {
	p = backend.Clean(p)
	return utils.WrapPathError("create group", p, w.fw.CreateGroup(p))
}

// WriteFloat64 creates a float64 dataset and writes data row-major.
func (w *Writer) WriteFloat64(p string, dims []int, data []float64) error {
	return w.write(p, hdf5.Float64, dims, data)
}

// WriteInt32 creates an int32 dataset and writes data row-major.
func (w *Writer) WriteInt32(p string, dims []int, data []int32) error {
	if err := w.write(p, hdf5.Int32, dims, data); err != nil {
		return err
	}
	w.signed = append(w.signed, backend.Clean(p))
	return nil
}

// WriteStrings creates a fixed-length string dataset sized to the longest
// element.
func (w *Writer) WriteStrings(p string, data []string) error {
	width := 1
	for _, s := range data {
		width = max(width, len(s)+1)
	}
	//nolint:gosec // G115: width is bounded by the longest string in memory
	return w.write(p, hdf5.String, []int{len(data)}, data, hdf5.WithStringSize(uint32(width)))
}

func (w *Writer) write(p string, dtype hdf5.Datatype, dims []int, data any, opts ...hdf5.DatasetOption) error {
	p = backend.Clean(p)

	udims := make([]uint64, len(dims))
	for i, d := range dims {
		if d < 0 {
			return utils.WrapPathError("create dataset", p, fmt.Errorf("negative size %d at dimension %d", d, i))
		}
		udims[i] = uint64(d)
	}

	dw, err := w.fw.CreateDataset(p, dtype, udims, opts...)
	if err != nil {
		return utils.WrapPathError("create dataset", p, err)
	}
	if err := dw.Write(data); err != nil {
		_ = dw.Close()
		return utils.WrapPathError("write dataset", p, err)
	}
	return utils.WrapPathError("close dataset", p, dw.Close())
}

// Close flushes and closes the file.
func (w *Writer) Close() error {
	if err := w.fw.Close(); err != nil {
		return utils.WrapPathError("close hdf5 file", w.location, err)
	}
	return utils.WrapPathError("mark signed datatypes", w.location, markSigned(w.location, w.signed))
}

// markSigned sets the sign bit on the datatype of each dataset in paths.
// hdf5.Int32 is written with the bit clear, which readers take as uint32.
func markSigned(location string, paths []string) error {
	if len(paths) == 0 {
		return nil
	}

	b, err := Open(location)
	if err != nil {
		return err
	}
	offsets := make([]int64, 0, len(paths))
	for _, p := range paths {
		ds, err := b.dataset(p)
		if err != nil {
			_ = b.Close()
			return err
		}
		dt, err := readDatatype(b.file.Reader(), b.layout(), ds.Address())
		if err != nil {
			_ = b.Close()
			return fmt.Errorf("%s: %w", p, err)
		}
		if dt.class != datatypeFixed {
			_ = b.Close()
			return fmt.Errorf("%s: datatype class %d is not fixed-point", p, dt.class)
		}
		// Bits 0-7 of the class bit field follow the class and version byte.
		offsets = append(offsets, dt.offset+1)
	}
	if err := b.Close(); err != nil {
		return err
	}

	f, err := os.OpenFile(location, os.O_RDWR, 0) //nolint:gosec // G304: the file this writer just created
	if err != nil {
		return err
	}
	var errs []error
	bit := make([]byte, 1)
	for _, off := range offsets {
		if _, err := f.ReadAt(bit, off); err != nil {
			errs = append(errs, err)
			continue
		}
		bit[0] |= fixedSigned
		if _, err := f.WriteAt(bit, off); err != nil {
			errs = append(errs, err)
		}
	}
	errs = append(errs, f.Close())
	return errors.Join(errs...)
}
