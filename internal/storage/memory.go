package storage

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore is an in-memory Store used in tests and local runs.
type MemoryStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string][]byte)}
}

// GetObject returns a copy of the stored bytes, or ErrNotFound.
func (s *MemoryStore) GetObject(_ context.Context, name string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.objects[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// PutObject stores a copy of the bytes under the given name.
func (s *MemoryStore) PutObject(_ context.Context, name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)
	s.objects[name] = stored
	return nil
}

// Names returns the stored object names, for test assertions.
func (s *MemoryStore) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.objects))
	for name := range s.objects {
		names = append(names, name)
	}
	return names
}
