package memory

import (
	"fmt"
	"sync"

	"github.com/scigolib/hdf5struct/backend"
)

// Store keeps in-memory trees by location.
type Store struct {
	mu    sync.Mutex
	trees map[string]*tree
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{trees: make(map[string]*tree)}
}

// Open returns a new handle on the tree stored at location.
func (s *Store) Open(location string) (backend.Backend, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.trees[location]
	if !ok {
		return nil, fmt.Errorf("%w: location %q", backend.ErrNotExist, location)
	}
	return &Backend{t: t}, nil
}

// Create replaces whatever is stored at location with an empty tree and
// returns a writable handle on it.
func (s *Store) Create(location string) (backend.Writer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := newTree()
	s.trees[location] = t
	return &Backend{t: t}, nil
}

// Put stores the tree behind b at location, replacing any previous tree.
func (s *Store) Put(location string, b *Backend) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.trees[location] = b.t
}

// Opener adapts Open to backend.Opener.
func (s *Store) Opener() backend.Opener {
	return s.Open
}

// Creator adapts Create to backend.Creator.
func (s *Store) Creator() backend.Creator {
	return s.Create
}
