package feed

import (
	"context"
	"sort"

	"rssgen-api/core/domain"
	"rssgen-api/core/interfaces"
)

// mockSource is a mock implementation of the Source interface
type mockSource struct {
	id             string
	title          string
	fetchItemsFunc func(ctx context.Context) domain.ItemsResult
	calls          int
}

func (m *mockSource) ID() string    { return m.id }
func (m *mockSource) Title() string { return m.title }

func (m *mockSource) FetchItems(ctx context.Context) domain.ItemsResult {
	m.calls++
	if m.fetchItemsFunc != nil {
		return m.fetchItemsFunc(ctx)
	}
	return domain.ItemsOK(nil)
}

// mockLookup is a map-backed SourceLookup
type mockLookup map[string]interfaces.Source

func (m mockLookup) Get(id string) (interfaces.Source, bool) {
	s, ok := m[id]
	return s, ok
}

func (m mockLookup) IDs() []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// mockLogger is a mock implementation of the Logger interface
type mockLogger struct {
	infos []map[string]interface{}
}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) {}
func (m *mockLogger) Info(msg string, fields map[string]interface{}) {
	m.infos = append(m.infos, fields)
}
func (m *mockLogger) Warn(msg string, fields map[string]interface{})  {}
func (m *mockLogger) Error(msg string, fields map[string]interface{}) {}
