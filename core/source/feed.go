// ABOUTME: Generic feed source re-renders any RSS, Atom or JSON feed through gofeed
// ABOUTME: Descriptions are reduced to plain text and dates normalized to RFC-822 form

package source

import (
	"context"
	"time"

	"rssgen-api/core/domain"
	coreerrors "rssgen-api/core/errors"
	"rssgen-api/core/fetch"
	"rssgen-api/core/interfaces"
	"rssgen-api/infrastructure/metrics"
	htmlutil "rssgen-api/pkg/utils/html"
	timeutil "rssgen-api/pkg/utils/time"

	"github.com/mmcdole/gofeed"
)

// maxDescriptionLen caps plain-text descriptions, in runes
const maxDescriptionLen = 500

// FeedSource serves an upstream RSS/Atom/JSON feed
type FeedSource struct {
	cfg      domain.SourceConfig
	fetcher  *fetch.Fetcher
	logger   interfaces.Logger
	now      func() time.Time
	useCache bool
}

// NewFeedSource creates an adapter for cfg
func NewFeedSource(cfg domain.SourceConfig, fetcher *fetch.Fetcher, logger interfaces.Logger) *FeedSource {
	if cfg.TTL <= 0 {
		cfg.TTL = fetch.DefaultTTL
	}
	return &FeedSource{
		cfg:      cfg,
		fetcher:  fetcher,
		logger:   logger,
		now:      time.Now,
		useCache: true,
	}
}

// SetCacheEnabled toggles cache use for upstream documents
func (s *FeedSource) SetCacheEnabled(enabled bool) {
	s.useCache = enabled
}

// ID returns the source identifier
func (s *FeedSource) ID() string {
	return s.cfg.ID
}

// Title returns the configured title or one derived from the id
func (s *FeedSource) Title() string {
	return titleFor(s.cfg)
}

// FetchItems fetches the feed and converts its items
func (s *FeedSource) FetchItems(ctx context.Context) domain.ItemsResult {
	opts := []fetch.Option{fetch.WithTTL(s.cfg.TTL)}
	if !s.useCache {
		opts = append(opts, fetch.WithoutCache())
	}

	document, err := s.fetcher.Fetch(ctx, s.cfg.URL, opts...)
	if err != nil {
		return failed(s.cfg, s.logger, "fetch", err)
	}

	parsed, err := gofeed.NewParser().ParseString(document)
	if err != nil {
		return failed(s.cfg, s.logger, "parse", &coreerrors.ParseError{Source: s.cfg.ID, Err: err})
	}

	items := make([]domain.Item, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		items = append(items, s.convertItem(item))
	}

	metrics.SourceItems.WithLabelValues(s.cfg.ID).Set(float64(len(items)))
	return domain.ItemsOK(items)
}

// convertItem converts a gofeed item to a normalized item
func (s *FeedSource) convertItem(item *gofeed.Item) domain.Item {
	link := item.Link
	if link == "" {
		link = item.GUID
	}

	description := item.Description
	if description == "" {
		description = item.Content
	}
	description = htmlutil.Truncate(htmlutil.StripHTML(description), maxDescriptionLen)

	published := s.now()
	if item.PublishedParsed != nil {
		published = *item.PublishedParsed
	} else if item.UpdatedParsed != nil {
		published = *item.UpdatedParsed
	}

	out := domain.NewItem(item.Title, link, description, timeutil.FormatRSS(published))
	if item.GUID != "" {
		out.GUID = item.GUID
	}
	return out
}
