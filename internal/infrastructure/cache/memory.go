// Package cache provides the in-memory cache storage used when no Redis
// backend is configured, and as the test double for the gateway.
package cache

import (
	"context"
	"sync"

	"github.com/fadilarbi/todo-offline/internal/core/domain"
)

// MemoryStore keeps generations in process memory. Safe for concurrent
// Put/Match; same-key writes are last-write-wins, which the controller's
// storage contract allows.
type MemoryStore struct {
	mu          sync.RWMutex
	generations map[string]map[string]*domain.CachedResponse
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{generations: make(map[string]map[string]*domain.CachedResponse)}
}

func (m *MemoryStore) Put(_ context.Context, generation, key string, res *domain.CachedResponse) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	gen, ok := m.generations[generation]
	if !ok {
		gen = make(map[string]*domain.CachedResponse)
		m.generations[generation] = gen
	}
	gen[key] = res.Clone()
	return nil
}

func (m *MemoryStore) Match(_ context.Context, generation, key string) (*domain.CachedResponse, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if res, ok := m.generations[generation][key]; ok {
		return res.Clone(), nil
	}
	return nil, domain.ErrCacheMiss
}

func (m *MemoryStore) Generations(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.generations))
	for name := range m.generations {
		names = append(names, name)
	}
	return names, nil
}

func (m *MemoryStore) Delete(_ context.Context, generation string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.generations, generation)
	return nil
}
