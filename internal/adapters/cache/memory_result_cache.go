package cache

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
)

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

// In-process result cache for single-node deployments and the CLI.
// Safe for concurrent use; expired entries are evicted lazily on read.
type MemoryResultCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryResultCache() *MemoryResultCache {
	return &MemoryResultCache{entries: make(map[string]memoryEntry), now: time.Now}
}

func (m *MemoryResultCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}

	if !e.expiresAt.IsZero() && !m.now().Before(e.expiresAt) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return nil, false, nil
	}

	return e.payload, true, nil
}

func (m *MemoryResultCache) Put(_ context.Context, key string, payload []byte, ttl time.Duration) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("memory result cache: empty key")
	}

	e := memoryEntry{payload: append([]byte(nil), payload...)}
	if ttl > 0 {
		e.expiresAt = m.now().Add(ttl)
	}

	m.mu.Lock()
	m.entries[key] = e
	m.mu.Unlock()
	return nil
}

// Len reports the number of stored entries, expired ones included.
func (m *MemoryResultCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
