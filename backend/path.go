package backend

import (
	"errors"
	"path"
	"strings"
)

var (
	// ErrNotExist is returned for a path the backend does not hold.
	ErrNotExist = errors.New("path does not exist")
	// ErrNotDataset is returned when a dataset operation targets a group.
	ErrNotDataset = errors.New("not a dataset")
	// ErrNotGroup is returned when a group operation targets a dataset.
	ErrNotGroup = errors.New("not a group")
)

// Clean normalizes p to an absolute slash path without a trailing slash.
// The root is "/".
func Clean(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

// Join returns the path of child name inside parent.
func Join(parent, name string) string {
	return Clean(path.Join(Clean(parent), name))
}

// Split returns the parent path and the base name of p.
// Splitting the root yields ("/", "").
func Split(p string) (parent, name string) {
	p = Clean(p)
	if p == "/" {
		return "/", ""
	}
	dir, base := path.Split(p)
	return Clean(dir), base
}
