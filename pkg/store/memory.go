package store

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore keeps drawings in process memory. Contents are lost when the
// process exits; it backs tests and the server's default configuration.
type MemoryStore struct {
	mu       sync.RWMutex
	drawings map[string]Drawing
}

// Compile-time check that MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{drawings: make(map[string]Drawing)}
}

// Save stores a drawing, assigning an ID if needed.
func (s *MemoryStore) Save(_ context.Context, d *Drawing) error {
	if err := d.Validate(); err != nil {
		return err
	}
	prepare(d)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.drawings[d.ID] = *d
	return nil
}

// Get retrieves a drawing by ID.
func (s *MemoryStore) Get(_ context.Context, id string) (*Drawing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.drawings[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &d, nil
}

// List returns all drawings, newest first.
func (s *MemoryStore) List(_ context.Context) ([]*Drawing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Drawing, 0, len(s.drawings))
	for _, d := range s.drawings {
		d := d
		out = append(out, &d)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Delete removes a drawing by ID.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.drawings[id]; !ok {
		return ErrNotFound
	}
	delete(s.drawings, id)
	return nil
}

// Close is a no-op for the memory store.
func (s *MemoryStore) Close(context.Context) error { return nil }
