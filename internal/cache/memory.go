package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value     string
	expiresAt time.Time
}

// MemoryStore is a process-local store used when no Redis is configured.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry
}

// NewMemoryStore returns an in-memory store. A non-positive TTL disables
// expiry.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		entries: make(map[string]entry),
	}
}

// Get returns the cached value for the key, evicting it when expired.
func (s *MemoryStore) Get(ctx context.Context, key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.entries[key]
	if !ok {
		return "", false
	}

	if !item.expiresAt.IsZero() && time.Now().After(item.expiresAt) {
		delete(s.entries, key)
		return "", false
	}

	return item.value, true
}

// Set stores the value under the key.
func (s *MemoryStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := entry{value: value}
	if s.ttl > 0 {
		item.expiresAt = time.Now().Add(s.ttl)
	}

	s.entries[key] = item
	return nil
}
