package hdf5struct

import "github.com/scigolib/hdf5struct/backend"

// Entry is a node of the container tree. The only implementations are
// *Group and *Dataset; switch on the concrete type to handle each:
//
//	switch e := entry.(type) {
//	case *hdf5struct.Group:
//	case *hdf5struct.Dataset:
//	}
type Entry interface {
	// Path returns the absolute slash-separated path of the entry.
	Path() string
	// Name returns the last path component ("/" for the root group).
	Name() string
	// Kind returns backend.KindGroup or backend.KindDataset.
	Kind() backend.Kind
	// IsGroup and IsDataset are mutually exclusive.
	IsGroup() bool
	IsDataset() bool
	String() string

	isEntry()
}

var (
	_ Entry = (*Group)(nil)
	_ Entry = (*Dataset)(nil)
)

func baseName(path string) string {
	if path == "/" {
		return "/"
	}
	_, name := backend.Split(path)
	return name
}
