// Package cache provides a small TTL cache for derived market views, so a
// busy dashboard does not recompute metrics on every read between sales.
package cache

import (
	"sync"
	"time"
)

// MemoryCache is an in-memory key/value cache with per-entry TTL.
type MemoryCache struct {
	defaultTTL time.Duration
	items      map[string]item
	mu         sync.RWMutex
}

type item struct {
	value     interface{}
	expiresAt time.Time
}

// NewMemoryCache creates a cache whose entries expire after defaultTTL
// unless Set overrides it.
func NewMemoryCache(defaultTTL time.Duration) *MemoryCache {
	return &MemoryCache{
		defaultTTL: defaultTTL,
		items:      make(map[string]item),
	}
}

// Get retrieves a live entry. Expired entries are dropped on access.
func (m *MemoryCache) Get(key string) (interface{}, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	it, exists := m.items[key]
	if !exists {
		return nil, false
	}
	if time.Now().After(it.expiresAt) {
		delete(m.items, key)
		return nil, false
	}
	return it.value, true
}

// Set stores a value; a zero ttl uses the cache default.
func (m *MemoryCache) Set(key string, value interface{}, ttl time.Duration) {
	if ttl == 0 {
		ttl = m.defaultTTL
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = item{value: value, expiresAt: time.Now().Add(ttl)}
}

// Delete removes an entry.
func (m *MemoryCache) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
}

// Clear removes all entries.
func (m *MemoryCache) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = make(map[string]item)
}

// Len reports the number of entries, expired ones included.
func (m *MemoryCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
