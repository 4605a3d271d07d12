package hdf5struct

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scigolib/hdf5struct/backend"
	"github.com/scigolib/hdf5struct/backend/memory"
)

// sampleBackend builds
//
//	/A        group
//	/A/B      group
//	/A/C      float64 [3 4]
//	/X        group
//	/X/vec    float64 [5]
//	/X/ids    int32   [2 2]
//	/X/labels string  [2]
//	/X/events compound [1]
//	/X/blob   other   [8]
func sampleBackend(t *testing.T) *memory.Backend {
	t.Helper()

	b := memory.New()
	require.NoError(t, b.CreateGroup("/A"))
	require.NoError(t, b.CreateGroup("/A/B"))
	require.NoError(t, b.WriteFloat64("/A/C", []int{3, 4}, sequence(12)))
	require.NoError(t, b.CreateGroup("/X"))
	require.NoError(t, b.WriteFloat64("/X/vec", []int{5}, sequence(5)))
	require.NoError(t, b.WriteInt32("/X/ids", []int{2, 2}, []int32{1, 2, 3, 4}))
	require.NoError(t, b.WriteStrings("/X/labels", []string{"left", "right"}))
	require.NoError(t, b.WriteCompound("/X/events", []backend.Record{{"t": 0.5, "code": int32(3)}}))
	require.NoError(t, b.WriteOpaque("/X/blob", []int{8}))
	return b
}

func sequence(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i) + 0.5
	}
	return out
}

func openSample(t *testing.T, b backend.Backend, opts ...Option) *Container {
	t.Helper()

	c, err := New(b, "sample", opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}
