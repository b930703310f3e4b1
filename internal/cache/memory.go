package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	payload  []byte
	storedAt time.Time
}

// MemoryStore is a process-local Store used when Redis is not configured.
// It does not survive restarts.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

// NewMemoryStore creates an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, time.Time{}, false
	}
	payload := make([]byte, len(e.payload))
	copy(payload, e.payload)
	return payload, e.storedAt, true
}

func (s *MemoryStore) Put(_ context.Context, key string, payload []byte, storedAt time.Time) error {
	p := make([]byte, len(payload))
	copy(p, payload)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = memoryEntry{payload: p, storedAt: storedAt}
	return nil
}
