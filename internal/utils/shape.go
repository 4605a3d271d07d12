package utils

import (
	"errors"
	"fmt"
	"math"
)

// ErrRagged is returned by Flatten for rows of unequal length.
var ErrRagged = errors.New("rows have unequal length")

// ElementCount returns the product of dims, failing on negative sizes and
// on int overflow. An empty dims slice counts as a single scalar element.
func ElementCount(dims []int) (int, error) {
	total := 1
	for i, d := range dims {
		if d < 0 {
			return 0, fmt.Errorf("negative size %d at dimension %d", d, i)
		}
		if d > 0 && total > math.MaxInt/d {
			return 0, fmt.Errorf("element count overflow at dimension %d", i)
		}
		total *= d
	}
	return total, nil
}

// Reshape splits a flat row-major buffer into rows x cols.
// The buffer length must equal rows*cols exactly.
func Reshape[T any](flat []T, rows, cols int) ([][]T, error) {
	n, err := ElementCount([]int{rows, cols})
	if err != nil {
		return nil, err
	}
	if len(flat) != n {
		return nil, fmt.Errorf("buffer holds %d elements, shape %dx%d needs %d", len(flat), rows, cols, n)
	}

	out := make([][]T, rows)
	for r := range out {
		out[r] = flat[r*cols : (r+1)*cols : (r+1)*cols]
	}
	return out, nil
}

// Flatten joins rectangular rows into a row-major buffer and reports the
// matrix dimensions. Ragged rows fail with ErrRagged.
func Flatten[T any](rows [][]T) ([]T, []int, error) {
	if len(rows) == 0 {
		return nil, []int{0, 0}, nil
	}

	cols := len(rows[0])
	flat := make([]T, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, nil, fmt.Errorf("%w: row %d has %d elements, want %d", ErrRagged, i, len(row), cols)
		}
		flat = append(flat, row...)
	}
	return flat, []int{len(rows), cols}, nil
}
