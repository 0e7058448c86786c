package source

import (
	"context"
	"errors"
	"testing"
	"time"

	"rssgen-api/core/domain"
	coreerrors "rssgen-api/core/errors"
	"rssgen-api/core/fetch"
	"rssgen-api/core/interfaces"
	"rssgen-api/infrastructure/cache/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogDoc = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <title>Magazine A</title>
    <id>urn:a</id>
    <updated>2025-11-01T23:16:11+00:00</updated>
    <link rel="http://opds-spec.org/acquisition" href="/opds/download/a/epub/"/>
  </entry>
  <entry>
    <title>Magazine B</title>
    <id>urn:b</id>
  </entry>
</feed>`

func emagazineConfig() domain.SourceConfig {
	return domain.SourceConfig{
		ID:       "emagazine",
		Kind:     domain.SourceKindOPDS,
		URL:      "https://emagazine.link/opds/new",
		BaseHost: "emagazine.link",
	}
}

func newOPDS(client interfaces.HTTPClient, cache interfaces.Cache, logger interfaces.Logger) *OPDSSource {
	f := fetch.NewFetcher(interfaces.Dependencies{Cache: cache, HTTPClient: client, Logger: logger}, time.Second)
	return NewOPDSSource(emagazineConfig(), f, logger)
}

func TestOPDSSource_FetchItems(t *testing.T) {
	src := newOPDS(serving(200, catalogDoc), nil, &mockLogger{})

	result := src.FetchItems(context.Background())

	require.True(t, result.OK())
	require.Len(t, result.Items, 2)
	assert.Equal(t, "Magazine A", result.Items[0].Title)
	assert.Equal(t, "https://emagazine.link/opds/download/a/epub/", result.Items[0].Link)
	assert.Equal(t, "urn:b", result.Items[1].Link)
}

func TestOPDSSource_DefaultsAndIdentity(t *testing.T) {
	src := newOPDS(serving(200, catalogDoc), nil, nil)

	assert.Equal(t, "emagazine", src.ID())
	assert.Equal(t, "Emagazine", src.Title())
	assert.Equal(t, DefaultTTL, src.cfg.TTL)
	assert.Equal(t, "emagazine.link", src.Parser().BaseHost)
}

func TestOPDSSource_CachesRawDocument(t *testing.T) {
	client := serving(200, catalogDoc)
	src := newOPDS(client, memory.NewMemoryCache(time.Hour), nil)
	ctx := context.Background()

	first := src.FetchItems(ctx)
	second := src.FetchItems(ctx)

	assert.Equal(t, first.Items, second.Items)
	assert.Equal(t, 1, client.calls)
}

func TestOPDSSource_CacheDisabled(t *testing.T) {
	client := serving(200, catalogDoc)
	src := newOPDS(client, memory.NewMemoryCache(time.Hour), nil)
	src.SetCacheEnabled(false)
	ctx := context.Background()

	src.FetchItems(ctx)
	src.FetchItems(ctx)

	assert.Equal(t, 2, client.calls)
}

func TestOPDSSource_FetchFailureYieldsEmptyResult(t *testing.T) {
	tests := []struct {
		name   string
		client *mockHTTPClient
	}{
		{"server error", serving(503, "unavailable")},
		{"not found", serving(404, "")},
		{"transport", &mockHTTPClient{GetFunc: func(ctx context.Context, url string, headers map[string]string) (interfaces.Response, error) {
			return nil, errors.New("dial tcp: connection refused")
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := &mockLogger{}
			src := newOPDS(tt.client, nil, logger)

			result := src.FetchItems(context.Background())

			assert.False(t, result.OK())
			assert.NotNil(t, result.Items)
			assert.Empty(t, result.Items)
			assert.True(t, coreerrors.IsFetch(result.Err))
			assert.Equal(t, 1, logger.count("error"))
		})
	}
}

func TestOPDSSource_ParseFailureYieldsEmptyResult(t *testing.T) {
	logger := &mockLogger{}
	src := newOPDS(serving(200, "<html><body>maintenance</body></html>"), nil, logger)

	result := src.FetchItems(context.Background())

	assert.Empty(t, result.Items)
	require.True(t, coreerrors.IsParse(result.Err))
	assert.Contains(t, result.Err.Error(), "emagazine")
	assert.Equal(t, 1, logger.count("error"))
}

func TestTitleCase(t *testing.T) {
	tests := map[string]string{
		"emagazine":   "Emagazine",
		"hacker-news": "Hacker-News",
		"go blog":     "Go Blog",
		"ABC":         "Abc",
		"v2ex":        "V2Ex",
		"":            "",
	}

	for in, want := range tests {
		assert.Equal(t, want, TitleCase(in), in)
	}
}
