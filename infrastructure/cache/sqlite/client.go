// ABOUTME: SQLite-based cache implementation for persistent caching
// ABOUTME: Provides a single-file cache that survives application restarts

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"rssgen-api/core/domain"
	"rssgen-api/infrastructure/metrics"

	_ "github.com/mattn/go-sqlite3"
)

const backendName = "sqlite"

// Client implements the Cache interface using SQLite
type Client struct {
	db         *sql.DB
	filePath   string
	defaultTTL time.Duration
	now        func() time.Time
}

// NewSQLiteCache creates a new SQLite cache client
func NewSQLiteCache(filePath string, defaultTTL time.Duration) (*Client, error) {
	if filePath == "" {
		filePath = "cache.db"
	}
	if defaultTTL <= 0 {
		defaultTTL = time.Hour
	}

	// Open database connection
	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to SQLite database: %w", err)
	}

	client := &Client{
		db:         db,
		filePath:   filePath,
		defaultTTL: defaultTTL,
		now:        time.Now,
	}

	// Initialize schema
	if err := client.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return client, nil
}

// initSchema creates the cache table if it doesn't exist.
// Expiry is stored in unix nanoseconds.
func (c *Client) initSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS cache (
			key TEXT PRIMARY KEY,
			value BLOB NOT NULL,
			created_at INTEGER NOT NULL,
			expiry INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_expiry ON cache(expiry);
	`

	_, err := c.db.Exec(query)
	return err
}

// Get retrieves a value from the cache. Expired rows are deleted on read.
func (c *Client) Get(ctx context.Context, key string) ([]byte, bool) {
	if key == "" {
		return nil, false
	}

	var value []byte
	var expiry int64

	query := "SELECT value, expiry FROM cache WHERE key = ?"
	err := c.db.QueryRowContext(ctx, query, key).Scan(&value, &expiry)

	if errors.Is(err, sql.ErrNoRows) {
		metrics.CacheMiss(backendName, "missing")
		return nil, false
	}

	if err != nil {
		metrics.CacheError(backendName, "get")
		metrics.CacheMiss(backendName, "error")
		return nil, false
	}

	if c.now().UnixNano() > expiry {
		_, _ = c.db.ExecContext(ctx, "DELETE FROM cache WHERE key = ? AND expiry = ?", key, expiry)
		metrics.CacheMiss(backendName, "expired")
		return nil, false
	}

	metrics.CacheHit(backendName)
	return value, true
}

// Set stores a value in the cache with TTL
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	if value == nil {
		value = []byte{}
	}

	now := c.now()
	query := `
		INSERT OR REPLACE INTO cache (key, value, created_at, expiry)
		VALUES (?, ?, ?, ?)
	`

	_, err := c.db.ExecContext(ctx, query, key, value, now.UnixNano(), now.Add(ttl).UnixNano())
	if err != nil {
		metrics.CacheError(backendName, "set")
		return fmt.Errorf("failed to set value: %w", err)
	}

	return nil
}

// Delete removes a value from the cache
func (c *Client) Delete(ctx context.Context, key string) error {
	query := "DELETE FROM cache WHERE key = ?"
	_, err := c.db.ExecContext(ctx, query, key)

	if err != nil {
		metrics.CacheError(backendName, "delete")
		return fmt.Errorf("failed to delete value: %w", err)
	}

	return nil
}

// Clear removes all values from the cache
func (c *Client) Clear(ctx context.Context) error {
	query := "DELETE FROM cache"
	_, err := c.db.ExecContext(ctx, query)

	if err != nil {
		metrics.CacheError(backendName, "clear")
		return fmt.Errorf("failed to clear cache: %w", err)
	}

	return nil
}

// Stats returns cache statistics
func (c *Client) Stats(ctx context.Context) (domain.CacheStats, error) {
	var stats domain.CacheStats

	err := c.db.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(SUM(CASE WHEN expiry < ? THEN 1 ELSE 0 END), 0) FROM cache",
		c.now().UnixNano(),
	).Scan(&stats.Total, &stats.Expired)
	if err != nil {
		metrics.CacheError(backendName, "stats")
		return stats, fmt.Errorf("failed to read cache stats: %w", err)
	}

	stats.Valid = stats.Total - stats.Expired
	return stats, nil
}

// FilePath returns the database file backing the cache
func (c *Client) FilePath() string {
	return c.filePath
}

// Close closes the database connection
func (c *Client) Close() error {
	return c.db.Close()
}
