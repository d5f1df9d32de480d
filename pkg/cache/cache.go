// Package cache stores JSON-encoded values in Redis, falling back to an
// in-process map when Redis is not configured or unreachable.
package cache

import (
	"context"
	"time"

	"github.com/shashiranjanraj/storehub/pkg/metrics"
)

// Store is the backend used by the package-level helpers.
type Store interface {
	// Get unmarshals the value under key into dest and reports a hit.
	Get(ctx context.Context, key string, dest interface{}) bool
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	// DelPrefix removes every key starting with prefix.
	DelPrefix(ctx context.Context, prefix string) error
	Driver() string
}

var defaultStore Store = NewMemory()

// Default returns the active store.
func Default() Store { return defaultStore }

// Use replaces the active store.
func Use(s Store) { defaultStore = s }

// Get reads key from the default store and records a hit or miss.
func Get(ctx context.Context, key string, dest interface{}) bool {
	hit := defaultStore.Get(ctx, key, dest)
	if hit {
		metrics.CacheHits.WithLabelValues(defaultStore.Driver()).Inc()
	} else {
		metrics.CacheMisses.WithLabelValues(defaultStore.Driver()).Inc()
	}
	return hit
}

func Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return defaultStore.Set(ctx, key, value, ttl)
}

func Del(ctx context.Context, keys ...string) error {
	return defaultStore.Del(ctx, keys...)
}

// Forget drops every key under prefix.
func Forget(ctx context.Context, prefix string) error {
	return defaultStore.DelPrefix(ctx, prefix)
}
