package repository

import (
	"context"
	"sync"
)

// Default cap on reports the in-memory store retains.
const defaultMaxSize = 1_000

// MemoryStore keeps evaluations in memory, newest first. It is the default
// store when no database path is configured.
type MemoryStore struct {
	mu      sync.RWMutex
	byID    map[string]Evaluation
	order   []string // ids, newest first
	maxSize int
}

// NewMemoryStore creates an in-memory report store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		byID:    make(map[string]Evaluation),
		maxSize: defaultMaxSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save persists the evaluation, replacing any previous version with the same
// id. When the store is bounded, the oldest evaluation is evicted.
func (s *MemoryStore) Save(_ context.Context, e Evaluation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[e.ID]; exists {
		s.byID[e.ID] = e
		return nil
	}

	if s.maxSize > 0 && len(s.order) >= s.maxSize {
		oldest := s.order[len(s.order)-1]
		s.order = s.order[:len(s.order)-1]
		delete(s.byID, oldest)
	}

	s.byID[e.ID] = e
	s.order = append([]string{e.ID}, s.order...)
	return nil
}

// Get returns the evaluation with the given id.
func (s *MemoryStore) Get(_ context.Context, id string) (Evaluation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.byID[id]
	if !ok {
		return Evaluation{}, ErrNotFound
	}
	return e, nil
}

// Recent returns up to n evaluations, newest first.
func (s *MemoryStore) Recent(_ context.Context, n int) ([]Evaluation, error) {
	if n < 1 {
		return nil, ErrInvalidLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if n > len(s.order) {
		n = len(s.order)
	}
	out := make([]Evaluation, 0, n)
	for _, id := range s.order[:n] {
		out = append(out, s.byID[id])
	}
	return out, nil
}

// Count returns the number of stored evaluations.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}
