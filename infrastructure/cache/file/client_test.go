package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"rssgen-api/core/domain"
	coreerrors "rssgen-api/core/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manually advanced clock
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func newTestCache(t *testing.T) (*Cache, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2025, 11, 1, 23, 16, 11, 0, time.UTC)}
	c, err := New(t.TempDir(), t.TempDir(), time.Hour, WithClock(clock.Now))
	require.NoError(t, err)
	return c, clock
}

func TestNew_UsesPrimaryDirectory(t *testing.T) {
	primary := filepath.Join(t.TempDir(), "nested", "cache")

	c, err := New(primary, t.TempDir(), time.Hour)

	require.NoError(t, err)
	assert.Equal(t, primary, c.Dir())
	assert.False(t, c.UsingFallback())
	info, err := os.Stat(primary)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNew_FallsBackWhenPrimaryUnusable(t *testing.T) {
	// a regular file cannot have children, so MkdirAll fails even for root
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	fallback := filepath.Join(t.TempDir(), "fallback")

	c, err := New(filepath.Join(blocker, "cache"), fallback, time.Hour)

	require.NoError(t, err)
	assert.Equal(t, fallback, c.Dir())
	assert.True(t, c.UsingFallback())
}

func TestNew_FailsWhenBothDirectoriesUnusable(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	c, err := New(filepath.Join(blocker, "a"), filepath.Join(blocker, "b"), time.Hour)

	assert.Nil(t, c)
	require.Error(t, err)
	assert.True(t, coreerrors.IsCacheInit(err))
}

func TestCache_SetThenGet(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	for _, ttl := range []time.Duration{time.Nanosecond, time.Second, 2 * time.Hour} {
		key := fmt.Sprintf("url_https://emagazine.link/opds/new?ttl=%s", ttl)
		require.NoError(t, c.Set(ctx, key, []byte("<feed/>"), ttl))

		got, ok := c.Get(ctx, key)
		assert.True(t, ok, "ttl %s", ttl)
		assert.Equal(t, "<feed/>", string(got))
	}
}

func TestCache_Get_MissingKey(t *testing.T) {
	c, _ := newTestCache(t)

	got, ok := c.Get(context.Background(), "missing")

	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestCache_Set_ZeroTTLUsesDefault(t *testing.T) {
	c, clock := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), 0))

	clock.Advance(59 * time.Minute)
	_, ok := c.Get(ctx, "k")
	assert.True(t, ok, "entry should live for the default hour")

	clock.Advance(2 * time.Minute)
	_, ok = c.Get(ctx, "k")
	assert.False(t, ok, "entry should expire after the default hour")
}

func TestCache_ExpiredEntryIsRemoved(t *testing.T) {
	c, clock := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "url_https://example.com/a", []byte("doc"), 10*time.Second))
	clock.Advance(11 * time.Second)

	stats, err := c.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.CacheStats{Total: 1, Expired: 1, Valid: 0}, stats)

	_, ok := c.Get(ctx, "url_https://example.com/a")
	assert.False(t, ok)

	_, err = os.Stat(c.path("url_https://example.com/a"))
	assert.True(t, os.IsNotExist(err), "expired record should be deleted on read")

	stats, err = c.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Total)
}

func TestCache_CorruptRecordIsTreatedAsMiss(t *testing.T) {
	payloads := map[string]string{
		"garbage":    "this is not json",
		"truncated":  `{"data": "abc", "timestamp": 1`,
		"no expiry":  `{"data": "abc"}`,
		"wrong type": `{"data": 42, "timestamp": 1, "expires_at": 99999999999}`,
	}

	for name, payload := range payloads {
		t.Run(name, func(t *testing.T) {
			c, _ := newTestCache(t)
			path := c.path("broken")
			require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

			got, ok := c.Get(context.Background(), "broken")

			assert.False(t, ok)
			assert.Nil(t, got)
			_, err := os.Stat(path)
			assert.True(t, os.IsNotExist(err), "corrupt record should be deleted")
		})
	}
}

func TestCache_StatsCountsCorruptAsExpired(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "good", []byte("v"), time.Hour))
	require.NoError(t, os.WriteFile(c.path("bad"), []byte("{"), 0o644))

	stats, err := c.Stats(ctx)

	require.NoError(t, err)
	assert.Equal(t, domain.CacheStats{Total: 2, Expired: 1, Valid: 1}, stats)
}

func TestCache_Delete(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Hour))
	require.NoError(t, c.Delete(ctx, "k"))

	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)

	assert.NoError(t, c.Delete(ctx, "k"), "deleting a missing key is not an error")
}

func TestCache_ClearLeavesUnrelatedFiles(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, c.Set(ctx, fmt.Sprintf("key-%d", i), []byte("v"), time.Hour))
	}
	unrelated := []string{"notes.txt", "settings.json", "README"}
	for _, name := range unrelated {
		require.NoError(t, os.WriteFile(filepath.Join(c.Dir(), name), []byte("keep"), 0o644))
	}

	require.NoError(t, c.Clear(ctx))

	stats, err := c.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.CacheStats{}, stats)

	for _, name := range unrelated {
		_, err := os.Stat(filepath.Join(c.Dir(), name))
		assert.NoError(t, err, "%s should survive Clear", name)
	}
}

func TestCache_OverwriteReplacesValue(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("first"), time.Hour))
	require.NoError(t, c.Set(ctx, "k", []byte("second"), time.Hour))

	got, ok := c.Get(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, "second", string(got))

	stats, err := c.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Total)
}

func TestCache_ConcurrentWritersNeverExposePartialRecords(t *testing.T) {
	c, err := New(t.TempDir(), "", time.Hour)
	require.NoError(t, err)
	ctx := context.Background()

	values := []string{
		strings.Repeat("a", 64*1024),
		strings.Repeat("b", 64*1024),
		strings.Repeat("c", 64*1024),
	}

	var wg sync.WaitGroup
	for w := 0; w < 6; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				_ = c.Set(ctx, "shared", []byte(values[(w+i)%len(values)]), time.Hour)
			}
		}(w)
	}

	var bad int
	var mu sync.Mutex
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				got, ok := c.Get(ctx, "shared")
				if !ok {
					continue
				}
				valid := false
				for _, v := range values {
					if string(got) == v {
						valid = true
					}
				}
				if !valid {
					mu.Lock()
					bad++
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	assert.Zero(t, bad, "readers observed a partially written record")
	got, ok := c.Get(ctx, "shared")
	assert.True(t, ok)
	assert.Len(t, got, 64*1024)
}

func TestCache_PersistedLayout(t *testing.T) {
	c, _ := newTestCache(t)

	require.NoError(t, c.Set(context.Background(), "url_https://emagazine.link/opds/new", []byte("doc"), time.Hour))

	raw, err := os.ReadFile(filepath.Join(c.Dir(), "url_https___emagazine.link_opds_new.cache.json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"data":"doc"`)
	assert.Contains(t, string(raw), `"timestamp":`)
	assert.Contains(t, string(raw), `"expires_at":`)
}
