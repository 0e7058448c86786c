// ABOUTME: Redis cache implementation using go-redis client
// ABOUTME: Provides a shared cache with server-side TTLs for multi-instance deployments

package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rssgen-api/core/domain"
	"rssgen-api/infrastructure/metrics"
	"rssgen-api/pkg/config"

	"github.com/redis/go-redis/v9"
)

const (
	backendName = "redis"

	// keyPrefix namespaces every key so Clear never touches foreign data
	keyPrefix = "rssgen:"

	scanBatch = 500
)

// RedisCache implements the Cache interface using Redis
type RedisCache struct {
	client     *redis.Client
	defaultTTL time.Duration
}

// NewRedisCache creates a new Redis cache instance
func NewRedisCache(cfg config.RedisConfig, defaultTTL time.Duration) (*RedisCache, error) {
	if cfg.Address == "" {
		return nil, errors.New("redis address cannot be empty")
	}
	if defaultTTL <= 0 {
		defaultTTL = time.Hour
	}

	// Create Redis client
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return &RedisCache{
		client:     client,
		defaultTTL: defaultTTL,
	}, nil
}

// Get retrieves a value from Redis. Redis expires keys itself, so a
// missing key covers both "never set" and "expired".
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			metrics.CacheError(backendName, "get")
		}
		metrics.CacheMiss(backendName, "missing")
		return nil, false
	}

	metrics.CacheHit(backendName)
	return val, true
}

// Set stores a value in Redis with the given TTL
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	if err := c.client.Set(ctx, keyPrefix+key, value, ttl).Err(); err != nil {
		metrics.CacheError(backendName, "set")
		return err
	}
	return nil
}

// Delete removes a key from Redis
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	// DEL on a missing key is not an error for our use case
	if err := c.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		metrics.CacheError(backendName, "delete")
		return err
	}
	return nil
}

// Clear deletes every key under the cache prefix
func (c *RedisCache) Clear(ctx context.Context) error {
	err := c.scan(ctx, func(keys []string) error {
		return c.client.Del(ctx, keys...).Err()
	})
	if err != nil {
		metrics.CacheError(backendName, "clear")
		return fmt.Errorf("failed to clear redis cache: %w", err)
	}
	return nil
}

// Stats counts keys under the cache prefix. Redis never returns expired
// keys, so Expired is always zero.
func (c *RedisCache) Stats(ctx context.Context) (domain.CacheStats, error) {
	var stats domain.CacheStats
	err := c.scan(ctx, func(keys []string) error {
		stats.Total += len(keys)
		return nil
	})
	if err != nil {
		metrics.CacheError(backendName, "stats")
		return domain.CacheStats{}, fmt.Errorf("failed to scan redis cache: %w", err)
	}
	stats.Valid = stats.Total
	return stats, nil
}

func (c *RedisCache) scan(ctx context.Context, fn func(keys []string) error) error {
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, keyPrefix+"*", scanBatch).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := fn(keys); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}
