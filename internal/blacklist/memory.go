package blacklist

import (
	"context"
	"sync"

	"github.com/jonesrussell/product-curator/internal/models"
)

// MemoryStore is an in-process Store. It backs the default deployment
// with no external store configured, and the test suites.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]bool),
	}
}

func (m *MemoryStore) Get(_ context.Context, key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.entries[key], nil
}

func (m *MemoryStore) Set(_ context.Context, key string, excluded bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = excluded
	return nil
}

func (m *MemoryStore) ListBlacklisted(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0)
	for id, excluded := range m.entries {
		if excluded {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (m *MemoryStore) ListAll(_ context.Context) ([]models.CategoryStatus, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	categories := make([]models.CategoryStatus, 0, len(m.entries))
	for id, excluded := range m.entries {
		categories = append(categories, models.CategoryStatus{
			ID:            id,
			IsBlacklisted: excluded,
		})
	}
	return categories, nil
}
