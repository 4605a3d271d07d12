package h5file

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/scigolib/hdf5struct/backend"
)

type datasetMeta struct {
	class string
	size  int
	etype backend.ElementType
	dims  []int
}

// Dataset.Info renders "Dataset: <class> (size=<n> bytes), <dataspace>, <layout>".
var (
	datatypeRe  = regexp.MustCompile(`^Dataset: (\w+) \(size=(\d+) bytes\), `)
	dataspaceRe = regexp.MustCompile(`^(?:(scalar)|(null)|\d+D array \[([0-9x ]*)\])`)
)

func parseInfo(info string) (*datasetMeta, error) {
	m := datatypeRe.FindStringSubmatch(info)
	if m == nil {
		return nil, fmt.Errorf("unrecognized dataset info %q", info)
	}
	size, err := strconv.Atoi(m[2])
	if err != nil {
		return nil, fmt.Errorf("datatype size in %q: %w", info, err)
	}

	rest := info[len(m[0]):]
	s := dataspaceRe.FindStringSubmatch(rest)
	if s == nil {
		return nil, fmt.Errorf("unrecognized dataspace in %q", info)
	}

	var dims []int
	switch {
	case s[1] != "":
		// A scalar is reported as a single element vector.
		dims = []int{1}
	case s[2] != "":
		dims = []int{0}
	default:
		for _, f := range strings.Fields(strings.ReplaceAll(s[3], "x", " ")) {
			d, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("dimension %q in %q: %w", f, info, err)
			}
			dims = append(dims, d)
		}
		if len(dims) == 0 {
			return nil, fmt.Errorf("dataspace without dimensions in %q", info)
		}
	}

	return &datasetMeta{
		class: m[1],
		size:  size,
		etype: classify(m[1], size),
		dims:  dims,
	}, nil
}

// classify maps an HDF5 datatype class and element size onto the closed
// element type set. Only types the reader converts exactly get a typed tag.
func classify(class string, size int) backend.ElementType {
	switch class {
	case "float":
		if size == 4 || size == 8 {
			return backend.Float64
		}
	case "integer":
		if size == 4 {
			return backend.Int32
		}
	case "string":
		return backend.String
	case "compound":
		return backend.Compound
	}
	return backend.Other
}
