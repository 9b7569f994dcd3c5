package liststore

import (
	"context"
	"slices"
	"sync"

	"github.com/dmitrijs2005/promptmarket/internal/common"
)

// MemoryStore keeps lists in process memory. It backs tests and single-node
// development runs.
type MemoryStore struct {
	mu    sync.Mutex
	lists map[string][]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{lists: make(map[string][]string)}
}

func (s *MemoryStore) PushFront(ctx context.Context, key string, item string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists[key] = append([]string{item}, s.lists[key]...)
	return nil
}

func (s *MemoryStore) Range(ctx context.Context, key string, start, stop int64) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sliceRange(s.lists[key], start, stop), nil
}

func (s *MemoryStore) Trim(ctx context.Context, key string, start, stop int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := sliceRange(s.lists[key], start, stop)
	if len(kept) == 0 {
		delete(s.lists, key)
		return nil
	}
	s.lists[key] = kept
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.lists, key)
	return nil
}

func (s *MemoryStore) Swap(ctx context.Context, key string, expected, items []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !slices.Equal(s.lists[key], expected) {
		return common.ErrVersionConflict
	}
	if len(items) == 0 {
		delete(s.lists, key)
		return nil
	}
	s.lists[key] = slices.Clone(items)
	return nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}
