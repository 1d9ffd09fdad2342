package store

import (
	"context"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"

	"github.com/eventcrew/stagecrew/internal/clock"
	"github.com/eventcrew/stagecrew/internal/onboarding/domain"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryStore is the in-process fallback used in development and
// tests. Entries older than the retention TTL are removed by the
// scheduler sweep; a TTL of zero disables expiry.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	clock   clock.Clock
	ttl     time.Duration
}

func NewMemoryStore(clk clock.Clock, ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		clock:   clk,
		ttl:     ttl,
	}
}

var _ domain.Store = (*MemoryStore)(nil)

func (s *MemoryStore) Get(ctx context.Context, userID snowflake.ID, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[storeKey(userID, key)]
	if !ok {
		return "", nil
	}
	if !entry.expiresAt.IsZero() && s.clock.Now().After(entry.expiresAt) {
		delete(s.entries, storeKey(userID, key))
		return "", nil
	}
	return entry.value, nil
}

func (s *MemoryStore) Set(ctx context.Context, userID snowflake.ID, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := memoryEntry{value: value}
	if s.ttl > 0 {
		entry.expiresAt = s.clock.Now().Add(s.ttl)
	}
	s.entries[storeKey(userID, key)] = entry
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, userID snowflake.ID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, storeKey(userID, key))
	return nil
}

// SweepExpired removes entries past their retention window and
// returns the number removed.
func (s *MemoryStore) SweepExpired(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	removed := 0
	for key, entry := range s.entries {
		if !entry.expiresAt.IsZero() && now.After(entry.expiresAt) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}
