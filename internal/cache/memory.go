package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	payload   []byte
	createdAt time.Time
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.After(now)
}

// Memory is an in-process expiring store. Reads never return an entry at
// or past its expiry; expired entries stay in the map until overwritten.
// The key set is small and fixed (one key per sport) so there is no
// sweeper and no eviction beyond TTL.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[key]
	if !ok || e.expired(m.now()) {
		return nil, false, nil
	}
	return e.payload, true, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.entries[key] = entry{
		payload:   value,
		createdAt: now,
		expiresAt: now.Add(ttl),
	}
	return nil
}
