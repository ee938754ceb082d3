// Package cache provides pluggable byte-blob caching for pkgstats.
//
// The pipeline uses a cache to avoid re-downloading and re-aggregating a
// Contents index that was already processed recently. Three backends are
// provided:
//
//   - [FileCache]: entries as files under ~/.cache/pkgstats/ (CLI default)
//   - [RedisCache]: shared cache for multi-instance serve deployments
//   - [NullCache]: no-op backend for --no-cache and tests
//
// Keys are namespaced strings (e.g. "counts:<sha256 of url>"); values are
// opaque byte blobs with a TTL.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache stores byte blobs under string keys with per-entry expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and unexpired; an absent key is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
