package store

import (
	"context"
	"sync"
	"time"
)

// RateLimitMemoryStore keeps request timestamps per key in process memory.
// It is only suitable for a single server instance.
type RateLimitMemoryStore struct {
	mu       sync.Mutex
	requests map[string][]time.Time
	now      func() time.Time
}

// NewRateLimitMemoryStore creates a new in-memory rate limit store.
func NewRateLimitMemoryStore() *RateLimitMemoryStore {
	return &RateLimitMemoryStore{
		requests: make(map[string][]time.Time),
		now:      time.Now,
	}
}

// WithClock replaces the time source. Tests use it to move windows forward.
func (s *RateLimitMemoryStore) WithClock(now func() time.Time) *RateLimitMemoryStore {
	s.now = now

	return s
}

func (s *RateLimitMemoryStore) Record(_ context.Context, key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	cutoff := now.Add(-window)

	timestamps := s.requests[key]

	// timestamps are appended in order, so the first one inside the window
	// marks where the live entries start
	start := 0
	for start < len(timestamps) && !timestamps[start].After(cutoff) {
		start++
	}

	live := append(timestamps[start:len(timestamps):len(timestamps)], now)
	s.requests[key] = live

	return int64(len(live)), nil
}

// Keys reports how many keys are currently tracked.
func (s *RateLimitMemoryStore) Keys() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.requests)
}
