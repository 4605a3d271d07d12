package hdf5struct

import "errors"

var (
	// ErrTypeMismatch is returned by a typed accessor when the dataset stores
	// a different element type.
	ErrTypeMismatch = errors.New("element type mismatch")

	// ErrRankMismatch is returned when the accessor shape does not match the
	// dataset rank.
	ErrRankMismatch = errors.New("rank mismatch")

	// ErrShapeMismatch is returned when a buffer length disagrees with the
	// dimensions it is supposed to fill.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrIndexOutOfRange is returned for an axis outside [0, rank).
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrOpen is returned when a container location cannot be opened.
	ErrOpen = errors.New("cannot open container")

	// ErrClosed is returned when an entry is used after its container was
	// closed, or a Writer is used after Close.
	ErrClosed = errors.New("container is closed")
)

// SkipGroup can be returned by a WalkFunc to skip the descendants of the
// group being visited.
var SkipGroup = errors.New("skip this group") //nolint:revive,staticcheck // named like fs.SkipDir
