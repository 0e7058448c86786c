package fetch

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"rssgen-api/core/domain"
	"rssgen-api/core/interfaces"
)

// mockCache is an in-memory cache recording calls
type mockCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	ttls    map[string]time.Duration
	setErr  error
	getHits int
}

func newMockCache() *mockCache {
	return &mockCache{
		data: make(map[string][]byte),
		ttls: make(map[string]time.Duration),
	}
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if ok {
		m.getHits++
	}
	return v, ok
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *mockCache) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string][]byte)
	return nil
}

func (m *mockCache) Stats(ctx context.Context) (domain.CacheStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return domain.CacheStats{Total: len(m.data), Valid: len(m.data)}, nil
}

// mockHTTPClient implements HTTPClient for testing
type mockHTTPClient struct {
	GetFunc func(ctx context.Context, url string, headers map[string]string) (interfaces.Response, error)
	calls   int
}

func (m *mockHTTPClient) Get(ctx context.Context, url string, headers map[string]string) (interfaces.Response, error) {
	m.calls++
	if m.GetFunc != nil {
		return m.GetFunc(ctx, url, headers)
	}
	return &mockResponse{statusCode: 200, body: "<feed/>"}, nil
}

// mockResponse implements Response for testing
type mockResponse struct {
	statusCode int
	body       string
}

func (r *mockResponse) StatusCode() int {
	return r.statusCode
}

func (r *mockResponse) Body() io.ReadCloser {
	return io.NopCloser(strings.NewReader(r.body))
}

func (r *mockResponse) Header(key string) string {
	return ""
}
