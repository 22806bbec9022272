package memory

import (
	"context"
	"sync"
	"time"
)

// NonceStore is a map-backed ports.NonceStore for redis-less runs.
type NonceStore struct {
	mu    sync.Mutex
	seen  map[string]time.Time
	clock func() time.Time
}

func NewNonceStore() *NonceStore {
	return &NonceStore{seen: make(map[string]time.Time), clock: time.Now}
}

func (s *NonceStore) CheckAndSet(ctx context.Context, scope string, nonce string, ttl time.Duration) (bool, error) {
	key := scope + ":" + nonce
	now := s.clock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if expiry, ok := s.seen[key]; ok && now.Before(expiry) {
		return false, nil
	}
	s.seen[key] = now.Add(ttl)
	return true, nil
}

type cacheEntry struct {
	value  []byte
	expiry time.Time
}

// IdempotencyCache is a map-backed ports.IdempotencyCache for redis-less runs.
type IdempotencyCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	clock   func() time.Time
}

func NewIdempotencyCache() *IdempotencyCache {
	return &IdempotencyCache{entries: make(map[string]cacheEntry), clock: time.Now}
}

func (c *IdempotencyCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok || c.clock().After(entry.expiry) {
		delete(c.entries, key)
		return nil, nil
	}
	return entry.value, nil
}

func (c *IdempotencyCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{value: value, expiry: c.clock().Add(ttl)}
	return nil
}
