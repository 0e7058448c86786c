// ABOUTME: Cache warmer renders every source once through a bounded worker pool
// ABOUTME: Used by the cache warm command to prime the cache before traffic arrives

package workers

import (
	"context"
	"sync"
	"time"

	"rssgen-api/core/domain"
	"rssgen-api/core/interfaces"
)

// FeedRenderer renders a feed by id
type FeedRenderer interface {
	GetFeed(ctx context.Context, id string) (*domain.RenderedFeed, error)
}

// WarmResult reports the outcome for one source
type WarmResult struct {
	ID       string
	Items    int
	Duration time.Duration
	// Err is a lookup error or the recovered source failure
	Err error
}

// WarmerConfig holds configuration for the warmer
type WarmerConfig struct {
	MaxWorkers int
}

// DefaultWarmerConfig returns the default warmer configuration
func DefaultWarmerConfig() WarmerConfig {
	return WarmerConfig{MaxWorkers: 4}
}

// Warmer fetches sources concurrently so later requests hit the cache
type Warmer struct {
	feeds      FeedRenderer
	logger     interfaces.Logger
	maxWorkers int
}

// NewWarmer creates a new warmer
func NewWarmer(feeds FeedRenderer, logger interfaces.Logger, config WarmerConfig) *Warmer {
	if config.MaxWorkers <= 0 {
		config.MaxWorkers = DefaultWarmerConfig().MaxWorkers
	}
	return &Warmer{
		feeds:      feeds,
		logger:     logger,
		maxWorkers: config.MaxWorkers,
	}
}

// Warm renders each id once and returns one result per id, in input order.
// It returns early with ctx's error recorded for ids not yet started when
// ctx is cancelled.
func (w *Warmer) Warm(ctx context.Context, ids []string) []WarmResult {
	results := make([]WarmResult, len(ids))
	jobs := make(chan int)

	workers := w.maxWorkers
	if workers > len(ids) {
		workers = len(ids)
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = w.warmOne(ctx, ids[idx])
			}
		}()
	}

	next := 0
dispatch:
	for ; next < len(ids); next++ {
		select {
		case jobs <- next:
		case <-ctx.Done():
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	for ; next < len(ids); next++ {
		results[next] = WarmResult{ID: ids[next], Err: ctx.Err()}
	}
	return results
}

func (w *Warmer) warmOne(ctx context.Context, id string) WarmResult {
	start := time.Now()
	feed, err := w.feeds.GetFeed(ctx, id)
	res := WarmResult{ID: id, Duration: time.Since(start), Err: err}
	if err == nil {
		res.Items = feed.ItemCount
		res.Err = feed.Err
	}

	if w.logger != nil {
		fields := map[string]interface{}{
			"source":      id,
			"items":       res.Items,
			"duration_ms": res.Duration.Milliseconds(),
		}
		if res.Err != nil {
			fields["error"] = res.Err.Error()
			w.logger.Warn("Cache warm-up failed", fields)
		} else {
			w.logger.Debug("Cache warmed", fields)
		}
	}
	return res
}
