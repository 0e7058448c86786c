// Package interfaces defines the core interfaces used throughout the application.
// These interfaces allow for dependency injection and make the code testable.
package interfaces

import (
	"context"
	"time"

	"rssgen-api/core/domain"
)

// Cache defines the interface for cache operations.
// Implementations can be a directory of files, Redis, SQLite or in-memory.
//
// A cache is a best-effort accelerator: reads never fail, they only miss.
//
// Example usage:
//
//	cache := someCache // implements Cache interface
//
//	// Store a value
//	err := cache.Set(ctx, "url_https://example.com/opds", body, 2*time.Hour)
//
//	// Retrieve a value
//	data, ok := cache.Get(ctx, "url_https://example.com/opds")
//	if !ok {
//		// miss, expired or unreadable
//	}
//
//	// Delete a value
//	err = cache.Delete(ctx, "url_https://example.com/opds")
type Cache interface {
	// Get retrieves a value from the cache by key.
	// The second return value is false when the key is missing, expired or unreadable.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores a value in the cache with the given key and TTL.
	// A ttl <= 0 selects the backend's default TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from the cache by key.
	// Returns nil if the key doesn't exist.
	Delete(ctx context.Context, key string) error

	// Clear removes every entry owned by this cache.
	Clear(ctx context.Context) error

	// Stats classifies the stored entries as valid or expired.
	Stats(ctx context.Context) (domain.CacheStats, error)
}
