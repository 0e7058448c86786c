package sqlite

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"rssgen-api/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	cache, err := NewSQLiteCache(filepath.Join(t.TempDir(), "cache.db"), time.Hour)
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })
	return cache
}

func TestSQLiteCache_SetGet(t *testing.T) {
	cache := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "url_https://emagazine.link/opds/new", []byte("<feed/>"), time.Hour))

	got, ok := cache.Get(ctx, "url_https://emagazine.link/opds/new")
	assert.True(t, ok)
	assert.Equal(t, "<feed/>", string(got))

	_, ok = cache.Get(ctx, "missing")
	assert.False(t, ok)
}

func TestSQLiteCache_ExpiredRowsAreMissesAndRemoved(t *testing.T) {
	cache := newTestClient(t)
	ctx := context.Background()
	now := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	require.NoError(t, cache.Set(ctx, "k", []byte("v"), time.Minute))
	now = now.Add(2 * time.Minute)

	stats, err := cache.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.CacheStats{Total: 1, Expired: 1, Valid: 0}, stats)

	_, ok := cache.Get(ctx, "k")
	assert.False(t, ok)

	stats, err = cache.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Total)
}

func TestSQLiteCache_ClearAndDelete(t *testing.T) {
	cache := newTestClient(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, cache.Set(ctx, fmt.Sprintf("k%d", i), []byte("v"), time.Hour))
	}
	require.NoError(t, cache.Delete(ctx, "k0"))
	require.NoError(t, cache.Delete(ctx, "k0"))

	stats, err := cache.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Total)

	require.NoError(t, cache.Clear(ctx))
	stats, err = cache.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.CacheStats{}, stats)
}

func TestSQLiteCache_InjectionAttemptsAreStoredVerbatim(t *testing.T) {
	cache := newTestClient(t)
	ctx := context.Background()

	keys := []string{
		"key'; DROP TABLE cache; --",
		"key' OR '1'='1",
		"key' UNION SELECT null, null, null--",
		"key'); INSERT INTO cache VALUES ('hack', 'data', 0, 9999999999); --",
		"key🔥emoji",
	}

	for _, key := range keys {
		require.NoError(t, cache.Set(ctx, key, []byte(key), time.Hour))
	}
	for _, key := range keys {
		got, ok := cache.Get(ctx, key)
		assert.True(t, ok, key)
		assert.Equal(t, key, string(got))
	}

	stats, err := cache.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(keys), stats.Total)
}

func TestSQLiteCache_BinaryDataIntegrity(t *testing.T) {
	cache := newTestClient(t)
	ctx := context.Background()

	data := make([]byte, 256)
	for i := range data {
		data[i] = byte(i)
	}

	require.NoError(t, cache.Set(ctx, "binary", data, time.Hour))
	got, ok := cache.Get(ctx, "binary")

	assert.True(t, ok)
	assert.True(t, bytes.Equal(data, got))
}

func TestSQLiteCache_EmptyKeyRejected(t *testing.T) {
	cache := newTestClient(t)

	assert.Error(t, cache.Set(context.Background(), "", []byte("v"), time.Hour))
	_, ok := cache.Get(context.Background(), "")
	assert.False(t, ok)
}
