package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// BuildFunc produces the value for a key on a cache miss.
type BuildFunc[V any] func(ctx context.Context) (V, error)

// entry is one memoized value.
type entry[V any] struct {
	// Value is the cached result.
	Value V

	// Built is the timestamp when this entry was built.
	Built time.Time
}

// Store is a TTL-bounded memoization store with stampede protection.
// A Store with a zero TTL never retains anything; every call builds.
type Store[V any] struct {
	mu      sync.RWMutex
	entries map[string]entry[V]
	sf      singleflight.Group
	ttl     time.Duration
	now     func() time.Time
}

// New creates a store whose entries live for ttl.
func New[V any](ttl time.Duration) *Store[V] {
	return &Store[V]{
		entries: make(map[string]entry[V]),
		ttl:     ttl,
		now:     time.Now,
	}
}

// TTL returns the configured time-to-live.
func (s *Store[V]) TTL() time.Duration {
	return s.ttl
}

// isExpired returns true if the entry has outlived the store TTL.
func (s *Store[V]) isExpired(e entry[V]) bool {
	if s.ttl <= 0 {
		return true // No caching
	}
	return s.now().Sub(e.Built) > s.ttl
}

// GetOrBuild retrieves the value for key from the store,
// or builds a new one if it doesn't exist or has expired.
// Uses singleflight so concurrent callers for the same key share one build.
// A nil store always builds.
func (s *Store[V]) GetOrBuild(ctx context.Context, key string, build BuildFunc[V]) (V, error) {
	if s == nil || s.ttl <= 0 {
		return build(ctx)
	}

	// Fast path: check if entry exists and is fresh
	s.mu.RLock()
	e, exists := s.entries[key]
	s.mu.RUnlock()

	if exists && !s.isExpired(e) {
		return e.Value, nil
	}

	// Slow path: build using singleflight to prevent stampedes
	result, err, _ := s.sf.Do(key, func() (interface{}, error) {
		// Double-check after acquiring singleflight lock
		s.mu.RLock()
		e, exists := s.entries[key]
		s.mu.RUnlock()

		if exists && !s.isExpired(e) {
			return e.Value, nil
		}

		value, err := build(ctx)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.entries[key] = entry[V]{Value: value, Built: s.now()}
		s.mu.Unlock()

		return value, nil
	})

	if err != nil {
		var zero V
		return zero, err
	}

	return result.(V), nil
}

// Len returns the number of retained entries, expired ones included.
func (s *Store[V]) Len() int {
	if s == nil {
		return 0
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Key hashes the given parts into a fixed-length cache key.
// Parts are length-prefixed so that ("ab", "c") and ("a", "bc") differ.
func Key(parts ...string) string {
	h := sha256.New()
	var lenBuf [8]byte
	for _, p := range parts {
		n := uint64(len(p))
		for i := 0; i < 8; i++ {
			lenBuf[i] = byte(n >> (8 * i))
		}
		h.Write(lenBuf[:])
		h.Write([]byte(p))
	}
	return hex.EncodeToString(h.Sum(nil))
}
