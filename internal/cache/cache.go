// Package cache provides the short-lived result cache collaborator.
//
// Entries are opaque immutable snapshots; concurrent requests for the
// same key may both miss and both recompute, which is acceptable
// duplicate work rather than a correctness issue.
package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Store is the key-value contract the aggregation core depends on.
type Store interface {
	Get(key string) (any, bool)
	Set(key string, value any)
	Clear()
}

// TTLStore implements Store on an expirable LRU. TTL is fixed per
// store; callers keep one store per key family (price, search).
type TTLStore struct {
	lru *expirable.LRU[string, any]
}

var _ Store = (*TTLStore)(nil)

// New creates a TTLStore holding at most maxEntries live entries.
func New(maxEntries int, ttl time.Duration) *TTLStore {
	return &TTLStore{
		lru: expirable.NewLRU[string, any](maxEntries, nil, ttl),
	}
}

// Get returns the cached value for key, or false when absent/expired.
func (s *TTLStore) Get(key string) (any, bool) {
	return s.lru.Get(key)
}

// Set stores value under key, replacing any previous entry wholesale.
func (s *TTLStore) Set(key string, value any) {
	s.lru.Add(key, value)
}

// Clear drops every entry.
func (s *TTLStore) Clear() {
	s.lru.Purge()
}

// Len reports the number of live entries, for health checks.
func (s *TTLStore) Len() int {
	return s.lru.Len()
}
