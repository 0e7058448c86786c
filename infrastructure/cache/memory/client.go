// ABOUTME: In-memory cache implementation backed by patrickmn/go-cache
// ABOUTME: Provides a process-local cache with TTL support and lazy expiry

package memory

import (
	"context"
	"time"

	"rssgen-api/core/domain"
	"rssgen-api/infrastructure/metrics"

	gocache "github.com/patrickmn/go-cache"
)

const backendName = "memory"

// MemoryCache implements the Cache interface using in-memory storage.
// No janitor goroutine is started; expired items are dropped when read.
type MemoryCache struct {
	items      *gocache.Cache
	defaultTTL time.Duration
}

// NewMemoryCache creates a new in-memory cache instance
func NewMemoryCache(defaultTTL time.Duration) *MemoryCache {
	if defaultTTL <= 0 {
		defaultTTL = time.Hour
	}
	return &MemoryCache{
		items:      gocache.New(defaultTTL, 0),
		defaultTTL: defaultTTL,
	}
}

// Get retrieves a value from the cache
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if ctx.Err() != nil {
		return nil, false
	}

	value, ok := c.items.Get(key)
	if !ok {
		// go-cache hides expired items but keeps them until deleted
		c.items.Delete(key)
		metrics.CacheMiss(backendName, "missing")
		return nil, false
	}

	stored, ok := value.([]byte)
	if !ok {
		c.items.Delete(key)
		metrics.CacheMiss(backendName, "corrupt")
		return nil, false
	}

	metrics.CacheHit(backendName)

	// Return a copy of the value
	result := make([]byte, len(stored))
	copy(result, stored)
	return result, true
}

// Set stores a value in the cache with the given TTL
func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)

	c.items.Set(key, valueCopy, ttl)
	return nil
}

// Delete removes a key from the cache
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.items.Delete(key)
	return nil
}

// Clear removes every item
func (c *MemoryCache) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.items.Flush()
	return nil
}

// Stats counts stored items. Items() only returns unexpired entries while
// ItemCount() also includes expired ones that have not been read yet.
func (c *MemoryCache) Stats(ctx context.Context) (domain.CacheStats, error) {
	if err := ctx.Err(); err != nil {
		return domain.CacheStats{}, err
	}

	total := c.items.ItemCount()
	valid := len(c.items.Items())
	if valid > total {
		total = valid
	}

	return domain.CacheStats{
		Total:   total,
		Expired: total - valid,
		Valid:   valid,
	}, nil
}
