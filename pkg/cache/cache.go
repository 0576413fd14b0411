// Package cache provides the byte cache the host uses for probed image
// metadata (natural pixel dimensions keyed by source URL).
//
// Backends:
//   - FileCache: XDG cache directory, for the CLI
//   - MemoryCache: process-local, for tests and short-lived hosts
//   - RedisCache: shared cache for multi-instance deployments
//   - NullCache: caching disabled
//
// All backends store opaque bytes with a TTL; callers own serialization.
package cache

import (
	"context"
	"time"
)

// TTLDimensions is how long probed natural dimensions stay fresh. Image
// content behind a URL rarely changes size, so this is generous.
const TTLDimensions = 30 * 24 * time.Hour

// Cache stores opaque bytes under string keys with per-entry TTL.
type Cache interface {
	// Get returns the cached bytes and whether the key was present and
	// fresh. A miss is (nil, false, nil), not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 means the entry never
	// expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// DimensionKey builds the cache key for a source URL's probed dimensions.
// The URL is hashed so arbitrary strings make safe keys.
func DimensionKey(url string) string {
	return "dim:" + Hash([]byte(url))
}
