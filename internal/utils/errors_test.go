package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "context only",
			err:      &Error{Context: "open container", Cause: errors.New("no such file")},
			expected: "open container: no such file",
		},
		{
			name:     "context and path",
			err:      &Error{Context: "resolve", Path: "/a/b", Cause: errors.New("corrupt header")},
			expected: "resolve /a/b: corrupt header",
		},
		{
			name:     "empty context",
			err:      &Error{Cause: errors.New("some error")},
			expected: ": some error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestWrapError(t *testing.T) {
	require.Nil(t, WrapError("anything", nil))
	require.Nil(t, WrapPathError("anything", "/x", nil))

	cause := errors.New("IO error")
	err := WrapPathError("read", "/data", cause)
	require.NotNil(t, err)

	var wrapped *Error
	require.True(t, errors.As(err, &wrapped))
	require.Equal(t, "read", wrapped.Context)
	require.Equal(t, "/data", wrapped.Path)
	require.Equal(t, cause, wrapped.Cause)
}

func TestWrapError_Chain(t *testing.T) {
	base := errors.New("unexpected EOF")
	level1 := WrapError("read superblock", base)
	level2 := WrapPathError("list children", "/", level1)

	require.True(t, errors.Is(level2, base))
	require.Contains(t, level2.Error(), "list children /")
	require.Contains(t, level2.Error(), "read superblock")

	unwrapped := errors.Unwrap(level2)
	require.Equal(t, level1, unwrapped)
	require.Equal(t, base, errors.Unwrap(unwrapped))
}

func BenchmarkWrapPathError(b *testing.B) {
	base := errors.New("base error")

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = WrapPathError("read", "/data", base)
	}
}
