package testutil

import (
	"context"
	"sync"
)

// InMemorySequenceStore implements sequence.Repository
type InMemorySequenceStore struct {
	mu       sync.Mutex
	counters map[string]int
}

// NewInMemorySequenceStore creates a new in-memory sequence store
func NewInMemorySequenceStore() *InMemorySequenceStore {
	return &InMemorySequenceStore{
		counters: make(map[string]int),
	}
}

func (s *InMemorySequenceStore) Next(_ context.Context, name string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[name]++
	return s.counters[name], nil
}

// Clear clears the sequence store
func (s *InMemorySequenceStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters = make(map[string]int)
}
