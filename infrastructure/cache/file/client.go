// ABOUTME: File-based cache implementation storing one JSON record per key in a directory
// ABOUTME: Writes are atomic (temp file + rename) and expiry is checked lazily on read

package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"rssgen-api/core/domain"
	coreerrors "rssgen-api/core/errors"
	"rssgen-api/core/interfaces"
	"rssgen-api/infrastructure/metrics"
)

const backendName = "file"

// DefaultTTL is used when neither the caller nor the constructor provides one
const DefaultTTL = time.Hour

// Cache implements the Cache interface on top of a directory.
// It keeps no in-process state besides its configuration, so any number of
// goroutines or processes may share the directory.
type Cache struct {
	dir           string
	defaultTTL    time.Duration
	usingFallback bool
	now           func() time.Time
	logger        interfaces.Logger
}

// Option configures a Cache
type Option func(*Cache)

// WithClock replaces time.Now, mainly for expiry tests
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// WithLogger sets the logger used for swallowed errors
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// DefaultFallbackDir is the directory used when the primary one is unusable
func DefaultFallbackDir() string {
	return filepath.Join(os.TempDir(), "rssgen-cache")
}

// New creates a file cache rooted at primaryDir. If primaryDir cannot be
// created or written to, fallbackDir is used instead (DefaultFallbackDir when
// empty). A *errors.CacheInitError is returned when both are unusable.
func New(primaryDir, fallbackDir string, defaultTTL time.Duration, opts ...Option) (*Cache, error) {
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}
	if fallbackDir == "" {
		fallbackDir = DefaultFallbackDir()
	}

	c := &Cache{
		defaultTTL: defaultTTL,
		now:        time.Now,
		logger:     nopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}

	primaryErr := ensureWritable(primaryDir)
	if primaryErr == nil {
		c.dir = primaryDir
		return c, nil
	}

	c.logger.Warn("Cache directory unusable, switching to fallback", map[string]interface{}{
		"dir":      primaryDir,
		"fallback": fallbackDir,
		"error":    primaryErr.Error(),
	})

	fallbackErr := primaryErr
	if filepath.Clean(fallbackDir) != filepath.Clean(primaryDir) {
		fallbackErr = ensureWritable(fallbackDir)
	}
	if fallbackErr != nil {
		return nil, &coreerrors.CacheInitError{
			PrimaryDir:  primaryDir,
			FallbackDir: fallbackDir,
			PrimaryErr:  primaryErr,
			FallbackErr: fallbackErr,
		}
	}

	c.dir = fallbackDir
	c.usingFallback = true
	return c, nil
}

// ensureWritable creates dir and proves a file can be written into it
func ensureWritable(dir string) error {
	if dir == "" {
		return errors.New("cache directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	probe, err := os.CreateTemp(dir, tempPrefix+"probe-*")
	if err != nil {
		return err
	}
	name := probe.Name()
	probe.Close()
	return os.Remove(name)
}

// Dir returns the directory in use
func (c *Cache) Dir() string {
	return c.dir
}

// UsingFallback reports whether the primary directory was rejected
func (c *Cache) UsingFallback() bool {
	return c.usingFallback
}

// DefaultTTL returns the TTL applied when Set receives ttl <= 0
func (c *Cache) DefaultTTL() time.Duration {
	return c.defaultTTL
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.dir, SafeKey(key)+recordExt)
}

// Get retrieves a value from the cache. Expired and unreadable records are
// deleted and reported as misses.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	if ctx.Err() != nil {
		return nil, false
	}

	path := c.path(key)
	raw, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			metrics.CacheError(backendName, "get")
			c.logger.Debug("Cache read failed", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
		metrics.CacheMiss(backendName, "missing")
		return nil, false
	}

	record, err := decodeRecord(raw)
	if err != nil {
		corrupt := &coreerrors.CacheCorruptionError{Key: key, Path: path, Err: err}
		c.logger.Debug("Discarding corrupt cache record", map[string]interface{}{
			"key":   key,
			"error": corrupt.Error(),
		})
		c.remove(path)
		metrics.CacheMiss(backendName, "corrupt")
		return nil, false
	}

	if record.Expired(c.now()) {
		c.remove(path)
		metrics.CacheMiss(backendName, "expired")
		return nil, false
	}

	metrics.CacheHit(backendName)
	return []byte(record.Data), true
}

// Set stores a value with the given TTL (the default TTL when ttl <= 0).
// The record replaces any previous one atomically.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	payload, err := json.Marshal(domain.NewCacheRecord(value, c.now(), ttl))
	if err != nil {
		metrics.CacheError(backendName, "set")
		return fmt.Errorf("failed to encode cache record: %w", err)
	}

	if err := writeAtomic(c.dir, c.path(key), payload); err != nil {
		metrics.CacheError(backendName, "set")
		c.logger.Debug("Cache write failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return fmt.Errorf("failed to write cache record: %w", err)
	}

	return nil
}

// Delete removes a key. Missing keys are not an error.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := os.Remove(c.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		metrics.CacheError(backendName, "delete")
		return fmt.Errorf("failed to delete cache record: %w", err)
	}
	return nil
}

// Clear removes every record of this store and any leftover temp files.
// Other files in the directory are left alone.
func (c *Cache) Clear(ctx context.Context) error {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		metrics.CacheError(backendName, "clear")
		return fmt.Errorf("failed to list cache directory: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		name := entry.Name()
		if entry.IsDir() || !(isRecordName(name) || isTempName(name)) {
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			metrics.CacheError(backendName, "clear")
			continue
		}
		removed++
	}

	c.logger.Info("Cache cleared", map[string]interface{}{
		"dir":     c.dir,
		"removed": removed,
	})
	return nil
}

// Stats scans the directory and classifies each record. Records that
// cannot be read or decoded count as expired. Nothing is deleted.
func (c *Cache) Stats(ctx context.Context) (domain.CacheStats, error) {
	var stats domain.CacheStats

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		metrics.CacheError(backendName, "stats")
		return stats, fmt.Errorf("failed to list cache directory: %w", err)
	}

	now := c.now()
	for _, entry := range entries {
		if ctx.Err() != nil {
			return stats, ctx.Err()
		}
		if entry.IsDir() || !isRecordName(entry.Name()) {
			continue
		}
		stats.Total++

		raw, err := os.ReadFile(filepath.Join(c.dir, entry.Name()))
		if err != nil {
			stats.Expired++
			continue
		}
		record, err := decodeRecord(raw)
		if err != nil || record.Expired(now) {
			stats.Expired++
		}
	}

	stats.Valid = stats.Total - stats.Expired
	return stats, nil
}

func (c *Cache) remove(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		metrics.CacheError(backendName, "delete")
	}
}

func decodeRecord(raw []byte) (domain.CacheRecord, error) {
	var record domain.CacheRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return record, err
	}
	if record.ExpiresAt <= 0 {
		return record, errors.New("record has no expiry")
	}
	return record, nil
}

// writeAtomic writes data next to path and renames it into place so readers
// see either the old record or the new one, never a partial write.
func writeAtomic(dir, path string, data []byte) error {
	tmp, err := os.CreateTemp(dir, tempPrefix+"*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Warn(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}
