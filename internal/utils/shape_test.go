package utils

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestElementCount(t *testing.T) {
	tests := []struct {
		name    string
		dims    []int
		want    int
		wantErr bool
	}{
		{name: "scalar", dims: nil, want: 1},
		{name: "vector", dims: []int{5}, want: 5},
		{name: "matrix", dims: []int{3, 4}, want: 12},
		{name: "empty axis", dims: []int{0, math.MaxInt}, want: 0},
		{name: "negative", dims: []int{2, -1}, wantErr: true},
		{name: "overflow", dims: []int{math.MaxInt / 2, 3}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ElementCount(tt.dims)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestReshape(t *testing.T) {
	m, err := Reshape([]float64{1, 2, 3, 4, 5, 6}, 2, 3)
	require.NoError(t, err)
	require.Equal(t, [][]float64{{1, 2, 3}, {4, 5, 6}}, m)

	// Rows must not alias each other on append.
	m[0] = append(m[0], 99)
	require.Equal(t, []float64{4, 5, 6}, m[1])

	_, err = Reshape([]int32{1, 2, 3, 4, 5}, 2, 3)
	require.Error(t, err)

	_, err = Reshape([]int32{1, 2, 3, 4, 5, 6, 7}, 2, 3)
	require.Error(t, err)

	empty, err := Reshape([]string{}, 0, 4)
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestFlatten(t *testing.T) {
	flat, dims, err := Flatten([][]int32{{1, 2}, {3, 4}, {5, 6}})
	require.NoError(t, err)
	require.Equal(t, []int32{1, 2, 3, 4, 5, 6}, flat)
	require.Equal(t, []int{3, 2}, dims)

	_, _, err = Flatten([][]float64{{1, 2}, {3}})
	require.True(t, errors.Is(err, ErrRagged))

	flat, dims, err = Flatten[float64](nil)
	require.NoError(t, err)
	require.Empty(t, flat)
	require.Equal(t, []int{0, 0}, dims)
}
