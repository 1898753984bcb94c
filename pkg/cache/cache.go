// Package cache stores computed layouts so unchanged graphs are not laid out
// twice.
//
// Keys are content hashes of everything an engine reads: node ids, types,
// measured sizes, hidden flags, edge endpoints, the engine name and its
// options. A cached layout therefore never goes stale, and entries only
// expire when a TTL is given.
//
//	c, _ := cache.NewFileCache(cache.DefaultDir())
//	alg := cache.Wrap(pipeline.New(pipeline.DefaultOptions()), c)
//	st.ApplyLayout(alg)
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is a miss,
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}
