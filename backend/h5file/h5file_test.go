package h5file

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/scigolib/hdf5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scigolib/hdf5struct/backend"
)

func TestParseInfo(t *testing.T) {
	tests := []struct {
		name  string
		info  string
		etype backend.ElementType
		dims  []int
	}{
		{
			name:  "float64 vector",
			info:  "Dataset: float (size=8 bytes), 1D array [5], contiguous (address=0x800, size=40)",
			etype: backend.Float64,
			dims:  []int{5},
		},
		{
			name:  "float32 matrix widens",
			info:  "Dataset: float (size=4 bytes), 2D array [2 x 3], contiguous (address=0x800, size=24)",
			etype: backend.Float64,
			dims:  []int{2, 3},
		},
		{
			name:  "int32 cube",
			info:  "Dataset: integer (size=4 bytes), 3D array [2 3 4], chunked (chunks=[1 3 4])",
			etype: backend.Int32,
			dims:  []int{2, 3, 4},
		},
		{
			name:  "int64 is other",
			info:  "Dataset: integer (size=8 bytes), 1D array [3], compact (size=24)",
			etype: backend.Other,
			dims:  []int{3},
		},
		{
			name:  "scalar string",
			info:  "Dataset: string (size=16 bytes), scalar, compact (size=16)",
			etype: backend.String,
			dims:  []int{1},
		},
		{
			name:  "compound",
			info:  "Dataset: compound (size=24 bytes), 1D array [10], contiguous (address=0x1000, size=240)",
			etype: backend.Compound,
			dims:  []int{10},
		},
		{
			name:  "unnamed class",
			info:  "Dataset: class_9 (size=16 bytes), 1D array [2], contiguous (address=0x1000, size=32)",
			etype: backend.Other,
			dims:  []int{2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := parseInfo(tt.info)
			require.NoError(t, err)
			assert.Equal(t, tt.etype, m.etype)
			assert.Equal(t, tt.dims, m.dims)
		})
	}
}

func TestParseInfo_Malformed(t *testing.T) {
	for _, info := range []string{
		"",
		"Group: /",
		"Dataset: float (size=8 bytes), unknown, virtual",
		"Dataset: float (size=8 bytes), 1D array [], contiguous",
	} {
		_, err := parseInfo(info)
		require.Error(t, err, info)
	}
}

func TestOpen_NotHDF5(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.txt")
	require.NoError(t, os.WriteFile(path, []byte("definitely not hdf5"), 0o600))

	_, err := Open(path)
	require.Error(t, err)

	_, err = Opener()(filepath.Join(t.TempDir(), "missing.h5"))
	require.Error(t, err)
}

func TestWriteThenRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roundtrip.h5")

	w, err := Create(path)
	require.NoError(t, err)
	require.NoError(t, w.WriteFloat64("/matrix", []int{2, 3}, []float64{1.5, 2.5, 3.5, 4.5, 5.5, 6.5}))
	require.NoError(t, w.WriteInt32("/ids", []int{4}, []int32{-2, 0, 7, 1 << 20}))
	require.NoError(t, w.Close())

	b, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = b.Close() }()

	names, err := b.ListChildren("/")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"matrix", "ids"}, names)

	kind, err := b.Kind("/matrix")
	require.NoError(t, err)
	require.Equal(t, backend.KindDataset, kind)

	dims, err := b.Shape("/matrix")
	require.NoError(t, err)
	require.Equal(t, []int{2, 3}, dims)

	et, err := b.ElementType("/matrix")
	require.NoError(t, err)
	require.Equal(t, backend.Float64, et)

	floats, err := b.ReadFloat64("/matrix")
	require.NoError(t, err)
	require.Equal(t, []float64{1.5, 2.5, 3.5, 4.5, 5.5, 6.5}, floats)

	et, err = b.ElementType("/ids")
	require.NoError(t, err)
	require.Equal(t, backend.Int32, et)

	ints, err := b.ReadInt32("/ids")
	require.NoError(t, err)
	require.Equal(t, []int32{-2, 0, 7, 1 << 20}, ints)

	ok, err := b.Exists("/nope")
	require.NoError(t, err)
	require.False(t, ok)

	_, err = b.Kind("/nope")
	require.True(t, errors.Is(err, backend.ErrNotExist))

	_, err = b.ListChildren("/matrix")
	require.True(t, errors.Is(err, backend.ErrNotGroup))
}

func TestWriteThenRead_Strings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strings.h5")
	labels := []string{"", "alpha", "the-longest-label-in-the-set"}

	w, err := Create(path)
	require.NoError(t, err)
	require.NoError(t, w.CreateGroup("/meta"))
	require.NoError(t, w.WriteStrings("/meta/labels", labels))
	require.NoError(t, w.Close())

	b, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = b.Close() }()

	et, err := b.ElementType("/meta/labels")
	require.NoError(t, err)
	assert.Equal(t, backend.String, et)

	dims, err := b.Shape("/meta/labels")
	require.NoError(t, err)
	assert.Equal(t, []int{3}, dims)

	got, err := b.ReadStrings("/meta/labels")
	require.NoError(t, err)
	assert.Equal(t, labels, got)
}

func TestAttributes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "attrs.h5")

	fw, err := hdf5.CreateForWrite(path, hdf5.CreateTruncate)
	require.NoError(t, err)
	require.NoError(t, fw.CreateGroup("/run"))
	dw, err := fw.CreateDataset("/run/temps", hdf5.Float64, []uint64{2})
	require.NoError(t, err)
	require.NoError(t, dw.Write([]float64{280.5, 281}))
	require.NoError(t, dw.WriteAttribute("units", "kelvin"))
	require.NoError(t, dw.WriteAttribute("scale", 0.5))
	require.NoError(t, dw.WriteAttribute("count", int32(7)))
	require.NoError(t, dw.Close())
	require.NoError(t, fw.Close())

	b, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = b.Close() }()

	attrs, err := b.Attributes("/run/temps")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"units": "kelvin",
		"scale": 0.5,
		"count": int32(7),
	}, attrs)

	attrs, err = b.Attributes("/run")
	require.NoError(t, err)
	assert.Empty(t, attrs)

	_, err = b.Attributes("/run/missing")
	require.True(t, errors.Is(err, backend.ErrNotExist))
}

func TestElementType_UnsignedIsOther(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unsigned.h5")

	fw, err := hdf5.CreateForWrite(path, hdf5.CreateTruncate)
	require.NoError(t, err)
	dw, err := fw.CreateDataset("/counts", hdf5.Uint32, []uint64{3})
	require.NoError(t, err)
	require.NoError(t, dw.Write([]uint32{1, 2, 1 << 31}))
	require.NoError(t, dw.Close())
	require.NoError(t, fw.Close())

	b, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = b.Close() }()

	et, err := b.ElementType("/counts")
	require.NoError(t, err)
	assert.Equal(t, backend.Other, et)

	_, err = b.ReadInt32("/counts")
	require.Error(t, err)
}

func TestReadDatatype(t *testing.T) {
	le := binary.LittleEndian
	layout := headerLayout{order: le, offsetSize: 8, lengthSize: 8}

	// Version 1 header whose datatype sits in a continuation block.
	v1 := make([]byte, 80)
	v1[0] = 1
	le.PutUint16(v1[2:4], 2)
	le.PutUint32(v1[4:8], 1)
	le.PutUint32(v1[8:12], 40)
	le.PutUint16(v1[16:18], 0) // nil message
	le.PutUint16(v1[18:20], 8)
	le.PutUint16(v1[32:34], msgContinuation)
	le.PutUint16(v1[34:36], 16)
	le.PutUint64(v1[40:48], 64)
	le.PutUint64(v1[48:56], 16)
	le.PutUint16(v1[64:66], msgDatatype)
	le.PutUint16(v1[66:68], 8)
	v1[72] = 0x10 // fixed-point, version 1
	v1[73] = fixedSigned
	le.PutUint32(v1[76:80], 4)

	// Version 2 header tracking attribute creation order.
	v2 := []byte("OHDR")
	v2 = append(v2, 2, 0x04, 14)
	v2 = append(v2, msgDatatype, 8, 0, 0, 0, 0)
	v2 = append(v2, 0x10, 0, 0, 0, 4, 0, 0, 0)

	tests := []struct {
		name     string
		data     []byte
		want     datatypeField
		unsigned bool
	}{
		{
			name: "v1 continuation signed",
			data: v1,
			want: datatypeField{class: datatypeFixed, bits: fixedSigned, size: 4, offset: 72},
		},
		{
			name:     "v2 creation order unsigned",
			data:     v2,
			want:     datatypeField{class: datatypeFixed, bits: 0, size: 4, offset: 13},
			unsigned: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readDatatype(bytes.NewReader(tt.data), layout, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.unsigned, got.unsignedFixed())
		})
	}
}

func TestReadDatatype_Malformed(t *testing.T) {
	layout := headerLayout{order: binary.LittleEndian, offsetSize: 8, lengthSize: 8}

	for name, data := range map[string][]byte{
		"empty":       {},
		"unknown":     bytes.Repeat([]byte{0xAA}, 32),
		"no datatype": append([]byte("OHDR"), 2, 0, 0),
		"overrun":     append([]byte("OHDR"), 2, 0, 4, msgDatatype, 200, 0, 0),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := readDatatype(bytes.NewReader(data), layout, 0)
			require.Error(t, err)
		})
	}
}
