package testutil

import (
	"context"
	"errors"
	"sort"
	"sync"
)

var (
	// ErrAlreadyExists is returned when creating an item with a taken ID
	ErrAlreadyExists = errors.New("item already exists")

	// ErrNotFound is returned when an item does not exist
	ErrNotFound = errors.New("item not found")
)

// InMemoryStore is a generic, thread-safe in-memory store used as the
// backing for repository implementations in tests.
type InMemoryStore[T any] struct {
	mu    sync.RWMutex
	items map[string]T
}

// NewInMemoryStore creates a new in-memory store
func NewInMemoryStore[T any]() *InMemoryStore[T] {
	return &InMemoryStore[T]{
		items: make(map[string]T),
	}
}

// Create adds an item with the given ID
func (s *InMemoryStore[T]) Create(_ context.Context, id string, item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[id]; exists {
		return ErrAlreadyExists
	}
	s.items[id] = item
	return nil
}

// Get retrieves an item by ID
func (s *InMemoryStore[T]) Get(_ context.Context, id string) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.items[id]
	if !exists {
		var zero T
		return zero, ErrNotFound
	}
	return item, nil
}

// Update replaces an existing item
func (s *InMemoryStore[T]) Update(_ context.Context, id string, item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[id]; !exists {
		return ErrNotFound
	}
	s.items[id] = item
	return nil
}

// Delete removes an item by ID
func (s *InMemoryStore[T]) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[id]; !exists {
		return ErrNotFound
	}
	delete(s.items, id)
	return nil
}

// List returns all items matching the filter function, ordered by the sort
// function when one is given.
func (s *InMemoryStore[T]) List(ctx context.Context, filter interface{}, filterFn func(context.Context, T, interface{}) bool, sortFn func(T, T) bool) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []T
	for _, item := range s.items {
		if filterFn == nil || filterFn(ctx, item, filter) {
			result = append(result, item)
		}
	}

	if sortFn != nil {
		sort.Slice(result, func(i, j int) bool {
			return sortFn(result[i], result[j])
		})
	}
	return result, nil
}

// Clear removes all items
func (s *InMemoryStore[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[string]T)
}
