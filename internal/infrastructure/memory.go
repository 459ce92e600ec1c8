package infrastructure

import (
	"context"
	"strings"
	"sync"
	"time"
)

type (
	memoryEntry struct {
		value     []byte
		expiresAt time.Time
	}

	// MemoryStore is the in-process cache backend. Expired entries are dropped when read
	// or scanned.
	MemoryStore struct {
		mu      sync.Mutex
		entries map[string]memoryEntry
		now     func() time.Time
	}

	MemoryStoreOption func(*MemoryStore)
)

// WithClock replaces time.Now, letting tests advance time.
func WithClock(now func() time.Time) MemoryStoreOption {
	return func(s *MemoryStore) {
		s.now = now
	}
}

func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}

	if s.expired(entry) {
		delete(s.entries, key)

		return nil, false, nil
	}

	value := make([]byte, len(entry.value))
	copy(value, entry.value)

	return value, true, nil
}

// Set stores value. A non-positive ttl keeps the entry until it is deleted.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	entry := memoryEntry{value: make([]byte, len(value))}
	copy(entry.value, value)

	if ttl > 0 {
		entry.expiresAt = s.now().Add(ttl)
	}

	s.mu.Lock()
	s.entries[key] = entry
	s.mu.Unlock()

	return nil
}

func (s *MemoryStore) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range keys {
		delete(s.entries, key)
	}

	return nil
}

func (s *MemoryStore) DeleteByPrefix(_ context.Context, prefix string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted := 0

	for key, entry := range s.entries {
		if !strings.HasPrefix(key, prefix) {
			continue
		}

		delete(s.entries, key)

		if !s.expired(entry) {
			deleted++
		}
	}

	return deleted, nil
}

// Len reports the number of live entries.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0

	for key, entry := range s.entries {
		if s.expired(entry) {
			delete(s.entries, key)

			continue
		}

		n++
	}

	return n
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	clear(s.entries)
	s.mu.Unlock()

	return nil
}

func (s *MemoryStore) expired(entry memoryEntry) bool {
	return !entry.expiresAt.IsZero() && !s.now().Before(entry.expiresAt)
}
