package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scigolib/hdf5struct"
	"github.com/scigolib/hdf5struct/internal/config"
)

// writeFixture creates
//
//	/run1          group
//	/run1/voltage  float64 [2 x 3]
//	/run1/ids      int32   [3]
//	/summary       float64 [4]
func writeFixture(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fixture.h5")
	w, err := hdf5struct.Create(path)
	require.NoError(t, err)
	require.NoError(t, w.CreateGroup("/run1"))
	require.NoError(t, w.WriteFloat64Matrix("/run1/voltage", [][]float64{{1, 2, 3}, {4, 5, 6}}))
	require.NoError(t, w.WriteInt32("/run1/ids", []int32{7, 8, 9}))
	require.NoError(t, w.WriteFloat64("/summary", []float64{0.5, 1.5, 2.5, 3.5}))
	require.NoError(t, w.Close())
	return path
}

// resetFlags restores the global flag state between tests.
func resetFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		verbose, jsonOut, configPath = false, false, ""
		treeDepth, catMax, findGroup = -1, -1, false
		dumpOffset, dumpLength = 0, 128
		cfg = config.Default()
	})
	verbose, jsonOut, configPath = false, false, ""
	treeDepth, catMax, findGroup = -1, -1, false
	dumpOffset, dumpLength = 0, 128
	cfg = config.Default()
}

// captureOutput captures stdout while running a function.
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	orig := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fnErr := fn()

	_ = w.Close()
	os.Stdout = orig

	var buf bytes.Buffer
	_, err = buf.ReadFrom(r)
	require.NoError(t, err)
	return buf.String(), fnErr
}

func decodeJSON(t *testing.T, output string, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(output), v), output)
}
