package workers

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"rssgen-api/core/domain"
	coreerrors "rssgen-api/core/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRenderer struct {
	getFeedFunc func(ctx context.Context, id string) (*domain.RenderedFeed, error)
}

func (m *mockRenderer) GetFeed(ctx context.Context, id string) (*domain.RenderedFeed, error) {
	return m.getFeedFunc(ctx, id)
}

type mockLogger struct {
	mu    sync.Mutex
	warns []string
}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) {}
func (m *mockLogger) Info(msg string, fields map[string]interface{})  {}
func (m *mockLogger) Error(msg string, fields map[string]interface{}) {}
func (m *mockLogger) Warn(msg string, fields map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.warns = append(m.warns, fields["source"].(string))
}

func TestWarmer_Warm(t *testing.T) {
	upstreamErr := errors.New("upstream down")
	renderer := &mockRenderer{getFeedFunc: func(ctx context.Context, id string) (*domain.RenderedFeed, error) {
		switch id {
		case "missing":
			return nil, &coreerrors.NotFoundError{Resource: "feed", ID: id}
		case "broken":
			return &domain.RenderedFeed{SourceID: id, Err: upstreamErr}, nil
		default:
			return &domain.RenderedFeed{SourceID: id, ItemCount: 3}, nil
		}
	}}
	logger := &mockLogger{}
	w := NewWarmer(renderer, logger, WarmerConfig{MaxWorkers: 2})

	results := w.Warm(context.Background(), []string{"emagazine", "missing", "broken"})

	require.Len(t, results, 3)
	assert.Equal(t, "emagazine", results[0].ID)
	assert.Equal(t, 3, results[0].Items)
	assert.NoError(t, results[0].Err)
	assert.True(t, coreerrors.IsNotFound(results[1].Err))
	assert.Equal(t, upstreamErr, results[2].Err)
	assert.ElementsMatch(t, []string{"missing", "broken"}, logger.warns)
}

func TestWarmer_BoundsConcurrency(t *testing.T) {
	var inFlight, peak int32
	renderer := &mockRenderer{getFeedFunc: func(ctx context.Context, id string) (*domain.RenderedFeed, error) {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return &domain.RenderedFeed{SourceID: id}, nil
	}}
	w := NewWarmer(renderer, nil, WarmerConfig{MaxWorkers: 2})

	results := w.Warm(context.Background(), []string{"a", "b", "c", "d", "e"})

	assert.Len(t, results, 5)
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
}

func TestWarmer_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	renderer := &mockRenderer{getFeedFunc: func(ctx context.Context, id string) (*domain.RenderedFeed, error) {
		return &domain.RenderedFeed{SourceID: id}, nil
	}}
	w := NewWarmer(renderer, nil, DefaultWarmerConfig())

	results := w.Warm(ctx, []string{"a", "b"})

	require.Len(t, results, 2)
	for _, r := range results {
		// either dispatched before the select noticed cancellation or skipped
		if r.Err != nil {
			assert.ErrorIs(t, r.Err, context.Canceled)
		}
		assert.NotEmpty(t, r.ID)
	}
}

func TestWarmer_NoIDs(t *testing.T) {
	w := NewWarmer(&mockRenderer{}, nil, DefaultWarmerConfig())

	assert.Empty(t, w.Warm(context.Background(), nil))
}
