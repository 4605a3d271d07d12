package hdf5struct

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scigolib/hdf5struct/backend"
	"github.com/scigolib/hdf5struct/backend/memory"
)

func TestGroup_Values(t *testing.T) {
	c := openSample(t, sampleBackend(t))

	a, err := c.GetGroup("A")
	require.NoError(t, err)

	got, err := a.Values()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"B": map[string]any{},
		"C": [][]float64{
			{0.5, 1.5, 2.5, 3.5},
			{4.5, 5.5, 6.5, 7.5},
			{8.5, 9.5, 10.5, 11.5},
		},
	}, got)
}

func TestGroup_ValuesOtherFails(t *testing.T) {
	c := openSample(t, sampleBackend(t))

	_, err := c.Values()
	require.ErrorIs(t, err, ErrTypeMismatch)

	x, err := c.GetGroup("X")
	require.NoError(t, err)
	_, err = x.Values()
	require.ErrorIs(t, err, ErrTypeMismatch)
}

func TestDataset_Value(t *testing.T) {
	c := openSample(t, sampleBackend(t))

	tests := []struct {
		path string
		want any
	}{
		{"/X/vec", []float64{0.5, 1.5, 2.5, 3.5, 4.5}},
		{"/X/ids", [][]int32{{1, 2}, {3, 4}}},
		{"/X/labels", []string{"left", "right"}},
		{"/X/events", []backend.Record{{"t": 0.5, "code": int32(3)}}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := mustDataset(t, c, tt.path).Value()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := mustDataset(t, c, "/X/blob").Value()
	require.ErrorIs(t, err, ErrTypeMismatch)
}

func TestContainer_ValuesHigherRank(t *testing.T) {
	b := memory.New()
	require.NoError(t, b.WriteFloat64("/cube", []int{2, 1, 2}, []float64{1, 2, 3, 4}))
	require.NoError(t, b.CreateGroup("/g"))
	require.NoError(t, b.WriteInt32("/g/cube", []int{1, 2, 1}, []int32{5, 6}))
	c := openSample(t, b)

	got, err := c.Values()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"cube": []float64{1, 2, 3, 4},
		"g":    map[string]any{"cube": []int32{5, 6}},
	}, got)
}

func TestValues_Closed(t *testing.T) {
	c, err := New(sampleBackend(t), "sample")
	require.NoError(t, err)
	ds := mustDataset(t, c, "/X/blob")
	require.NoError(t, c.Close())

	_, err = c.Values()
	require.ErrorIs(t, err, ErrClosed)

	_, err = ds.Value()
	require.ErrorIs(t, err, ErrClosed)
}
