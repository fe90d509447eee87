// Package cache provides a small report cache for the HTTP API. The
// calculation is referentially transparent, so caching by input fingerprint
// never changes a response; entries hold only derived data and expire.
package cache

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/iwvelando/refinance-calculator/pkg/refinance"
	"github.com/redis/go-redis/v9"
)

// Cache stores serialized reports keyed by input fingerprint.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string)
}

// Key builds the canonical fingerprint for a sanitized input. Inputs are
// sanitized before keying, so equal effective inputs share an entry. Float
// fields use the shortest exact representation so distinct inputs never
// collide.
func Key(in refinance.Input, sensitivity bool) string {
	return strings.Join([]string{
		"refinance",
		strconv.FormatFloat(in.CurrentBalance, 'g', -1, 64),
		strconv.FormatFloat(in.CurrentRate, 'g', -1, 64),
		strconv.FormatFloat(in.NewRate, 'g', -1, 64),
		strconv.Itoa(in.RemainingTerm),
		strconv.FormatFloat(in.ClosingCosts, 'g', -1, 64),
		strconv.FormatBool(sensitivity),
	}, ":")
}

// Memory is a mutex-guarded in-process cache. It is the default backend and
// doubles as the test double for the Redis-backed one.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
}

type memoryEntry struct {
	value   string
	expires time.Time
}

// NewMemory constructs an in-process cache. A non-positive TTL means entries
// never expire.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
	}
}

// Get returns the cached value for key, if present and unexpired.
func (m *Memory) Get(_ context.Context, key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[key]
	if !ok {
		return "", false
	}
	if !entry.expires.IsZero() && time.Now().After(entry.expires) {
		delete(m.entries, key)
		return "", false
	}
	return entry.value, true
}

// Set stores value under key.
func (m *Memory) Set(_ context.Context, key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := memoryEntry{value: value}
	if m.ttl > 0 {
		entry.expires = time.Now().Add(m.ttl)
	}
	m.entries[key] = entry
}

// Redis caches reports in a Redis instance with a TTL.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis constructs a Redis-backed cache for the given address.
func NewRedis(addr string, ttl time.Duration) *Redis {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &Redis{client: rdb, ttl: ttl}
}

// Get returns the cached value for key. Errors, including a missing key,
// report as a miss; the caller recomputes.
func (r *Redis) Get(ctx context.Context, key string) (string, bool) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// Set stores value under key with the configured TTL. A write failure is
// ignored; the cache is an optimization, not a store of record.
func (r *Redis) Set(ctx context.Context, key, value string) {
	_ = r.client.Set(ctx, key, value, r.ttl).Err()
}
