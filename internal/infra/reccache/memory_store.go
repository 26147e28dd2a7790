package reccache

import (
	"context"
	"sync"
	"time"

	"github.com/tripnexus/tripnexus/internal/domain/recommend"
)

type cachedEntry struct {
	recs      []recommend.FinalRecommendation
	expiresAt time.Time
}

// MemoryStore is an in-memory implementation of the cache for tests/dev.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]cachedEntry
}

// NewMemoryStore constructs a store backed by process memory.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]cachedEntry)}
}

// Get implements recommend.Store.
func (s *MemoryStore) Get(_ context.Context, key string) ([]recommend.FinalRecommendation, bool, error) {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if hasExpired(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return nil, false, nil
	}
	return entry.recs, true, nil
}

// Save implements recommend.Store.
func (s *MemoryStore) Save(_ context.Context, key string, recs []recommend.FinalRecommendation, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp := time.Time{}
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	s.entries[key] = cachedEntry{
		recs:      append([]recommend.FinalRecommendation(nil), recs...),
		expiresAt: exp,
	}
	return nil
}

func hasExpired(ts time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return ts.Before(time.Now())
}

var _ recommend.Store = (*MemoryStore)(nil)
