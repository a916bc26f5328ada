package audit

import (
	"context"
	"sort"
	"sync"
)

type logKey struct {
	entityType string
	entityID   string
	attribute  string
}

// MemoryStorage is an in-memory Storage for tests and local development.
// Safe for concurrent use.
type MemoryStorage struct {
	mu      sync.RWMutex
	entries map[logKey][]Entry
}

// NewMemoryStorage creates an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{entries: make(map[logKey][]Entry)}
}

// Store appends the entry under its entity key.
func (ms *MemoryStorage) Store(ctx context.Context, entry Entry) error {
	key := logKey{entry.EntityType, entry.EntityID, entry.Attribute}

	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.entries[key] = append(ms.entries[key], entry)
	return nil
}

// List returns a copy of the entries for the key ordered by occurrence time.
// Append order is preserved for entries with identical timestamps.
func (ms *MemoryStorage) List(ctx context.Context, entityType, entityID, attribute string) ([]Entry, error) {
	ms.mu.RLock()
	stored := ms.entries[logKey{entityType, entityID, attribute}]
	entries := make([]Entry, len(stored))
	copy(entries, stored)
	ms.mu.RUnlock()

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})
	return entries, nil
}
