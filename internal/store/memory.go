package store

import (
	"context"
	"fmt"
	"sync"
)

// MemStore is an in-process KV with no history. It counts writes so callers
// can observe how often a value was persisted.
type MemStore struct {
	mu     sync.RWMutex
	values map[string]string
	writes map[string]int
}

// NewMemStore returns an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{
		values: make(map[string]string),
		writes: make(map[string]int),
	}
}

func (m *MemStore) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return v, nil
}

func (m *MemStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	m.writes[key]++
	return nil
}

func (m *MemStore) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// Writes returns how many times key has been Set.
func (m *MemStore) Writes(key string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes[key]
}

func (m *MemStore) Close() error { return nil }
