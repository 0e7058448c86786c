package source

import (
	"context"
	"io"
	"strings"
	"sync"

	"rssgen-api/core/interfaces"
)

// mockHTTPClient serves canned responses
type mockHTTPClient struct {
	GetFunc func(ctx context.Context, url string, headers map[string]string) (interfaces.Response, error)

	mu    sync.Mutex
	calls int
}

func (m *mockHTTPClient) Get(ctx context.Context, url string, headers map[string]string) (interfaces.Response, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	return m.GetFunc(ctx, url, headers)
}

func serving(status int, body string) *mockHTTPClient {
	return &mockHTTPClient{
		GetFunc: func(ctx context.Context, url string, headers map[string]string) (interfaces.Response, error) {
			return &mockResponse{statusCode: status, body: body}, nil
		},
	}
}

type mockResponse struct {
	statusCode int
	body       string
}

func (r *mockResponse) StatusCode() int      { return r.statusCode }
func (r *mockResponse) Body() io.ReadCloser  { return io.NopCloser(strings.NewReader(r.body)) }
func (r *mockResponse) Header(string) string { return "" }

// mockLogger records log entries
type mockLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

type logEntry struct {
	level  string
	msg    string
	fields map[string]interface{}
}

func (m *mockLogger) log(level, msg string, fields map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, logEntry{level: level, msg: msg, fields: fields})
}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) { m.log("debug", msg, fields) }
func (m *mockLogger) Info(msg string, fields map[string]interface{})  { m.log("info", msg, fields) }
func (m *mockLogger) Warn(msg string, fields map[string]interface{})  { m.log("warn", msg, fields) }
func (m *mockLogger) Error(msg string, fields map[string]interface{}) { m.log("error", msg, fields) }

func (m *mockLogger) count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.entries {
		if e.level == level {
			n++
		}
	}
	return n
}
