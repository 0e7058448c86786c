// ABOUTME: Feed service resolves a feed id to its source and renders the RSS document
// ABOUTME: Provides business logic for feed operations independent of HTTP layer

package feed

import (
	"context"
	"fmt"
	"time"

	"rssgen-api/core/domain"
	"rssgen-api/core/errors"
	"rssgen-api/core/interfaces"
	"rssgen-api/core/rss"
)

// SourceLookup resolves feed ids to sources
type SourceLookup interface {
	Get(id string) (interfaces.Source, bool)
	IDs() []string
}

// FeedService serves rendered feeds
type FeedService struct {
	sources  SourceLookup
	feedLink string
	logger   interfaces.Logger
	now      func() time.Time
}

// NewFeedService creates a new feed service instance.
// feedLink is the public base URL used for channel links.
func NewFeedService(sources SourceLookup, feedLink string, logger interfaces.Logger) *FeedService {
	return &FeedService{
		sources:  sources,
		feedLink: feedLink,
		logger:   logger,
		now:      time.Now,
	}
}

// GetFeed fetches the items of source id and renders them as RSS.
// An unknown id returns *errors.NotFoundError. A failing source still yields
// a valid, empty document; RenderedFeed.Err records why.
func (s *FeedService) GetFeed(ctx context.Context, id string) (*domain.RenderedFeed, error) {
	src, ok := s.sources.Get(id)
	if !ok {
		return nil, &errors.NotFoundError{Resource: "feed", ID: id}
	}

	start := s.now()
	result := src.FetchItems(ctx)

	body, err := rss.Render(result.Items, rss.ChannelInfo{
		ID:       src.ID(),
		Title:    src.Title(),
		FeedLink: s.feedLink,
		Now:      s.now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render feed %s: %w", id, err)
	}

	fields := map[string]interface{}{
		"source":   id,
		"items":    len(result.Items),
		"duration": s.now().Sub(start).String(),
	}
	if result.Err != nil {
		fields["error"] = result.Err.Error()
	}
	s.info("Feed rendered", fields)

	return &domain.RenderedFeed{
		SourceID:    id,
		ContentType: rss.ContentType,
		Body:        body,
		ItemCount:   len(result.Items),
		Err:         result.Err,
	}, nil
}

// Sources returns the ids of every servable feed, sorted
func (s *FeedService) Sources() []string {
	return s.sources.IDs()
}

func (s *FeedService) info(msg string, fields map[string]interface{}) {
	if s.logger != nil {
		s.logger.Info(msg, fields)
	}
}
