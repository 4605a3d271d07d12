// Package hdf5struct navigates hierarchical scientific data containers such
// as HDF5 files through a small entry model.
//
// A Container owns a storage backend and the root Group. A Group lists the
// names of its children as they were when the group was first reached and
// resolves each child lazily, at most once, into a *Group or a *Dataset.
// Datasets expose their shape and element type and read their values through
// typed accessors that check the stored type and rank before touching the
// backend:
//
//	c, err := hdf5struct.Open("recording.h5")
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	ds, err := c.FindDataset("voltage")
//	if err != nil || ds == nil {
//	    return err
//	}
//	m, err := ds.ReadFloat64Matrix()
//
// Name-based lookups report a missing name as a nil result, never as an
// error. Errors are reserved for contract violations (ErrTypeMismatch,
// ErrRankMismatch, ErrShapeMismatch, ErrIndexOutOfRange), for containers that
// cannot be opened (ErrOpen) or are already closed (ErrClosed), and for
// failures reported by the backend, which are returned with the entry path
// attached and are never retried.
package hdf5struct
