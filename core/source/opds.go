// ABOUTME: OPDS source adapter combines the fetcher and the catalog parser
// ABOUTME: Failures are logged and surfaced as an empty item list, never as an error

package source

import (
	"context"
	"strings"
	"time"
	"unicode"

	"rssgen-api/core/catalog"
	"rssgen-api/core/domain"
	coreerrors "rssgen-api/core/errors"
	"rssgen-api/core/fetch"
	"rssgen-api/core/interfaces"
	"rssgen-api/infrastructure/metrics"
)

// DefaultTTL is how long raw catalogs are cached when a source sets no TTL
const DefaultTTL = 2 * time.Hour

// OPDSSource serves one OPDS/Atom catalog
type OPDSSource struct {
	cfg      domain.SourceConfig
	fetcher  *fetch.Fetcher
	parser   *catalog.Parser
	logger   interfaces.Logger
	useCache bool
}

// NewOPDSSource creates an adapter for cfg
func NewOPDSSource(cfg domain.SourceConfig, fetcher *fetch.Fetcher, logger interfaces.Logger) *OPDSSource {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	return &OPDSSource{
		cfg:      cfg,
		fetcher:  fetcher,
		parser:   catalog.NewParser(cfg.Host()),
		logger:   logger,
		useCache: true,
	}
}

// SetCacheEnabled toggles cache use for upstream documents
func (s *OPDSSource) SetCacheEnabled(enabled bool) {
	s.useCache = enabled
}

// Parser exposes the catalog parser, mainly to inject a clock in tests
func (s *OPDSSource) Parser() *catalog.Parser {
	return s.parser
}

// ID returns the source identifier
func (s *OPDSSource) ID() string {
	return s.cfg.ID
}

// Title returns the configured title or one derived from the id
func (s *OPDSSource) Title() string {
	return titleFor(s.cfg)
}

// FetchItems fetches the catalog and parses it into items
func (s *OPDSSource) FetchItems(ctx context.Context) domain.ItemsResult {
	opts := []fetch.Option{fetch.WithTTL(s.cfg.TTL)}
	if !s.useCache {
		opts = append(opts, fetch.WithoutCache())
	}

	document, err := s.fetcher.Fetch(ctx, s.cfg.URL, opts...)
	if err != nil {
		return s.fail("fetch", err)
	}

	items, err := s.parser.Parse(document)
	if err != nil {
		if pe, ok := err.(*coreerrors.ParseError); ok {
			pe.Source = s.cfg.ID
		}
		return s.fail("parse", err)
	}

	metrics.SourceItems.WithLabelValues(s.cfg.ID).Set(float64(len(items)))
	return domain.ItemsOK(items)
}

func (s *OPDSSource) fail(kind string, err error) domain.ItemsResult {
	return failed(s.cfg, s.logger, kind, err)
}

// failed logs a recovered failure and returns an empty result
func failed(cfg domain.SourceConfig, logger interfaces.Logger, kind string, err error) domain.ItemsResult {
	metrics.SourceFailures.WithLabelValues(cfg.ID, kind).Inc()
	metrics.SourceItems.WithLabelValues(cfg.ID).Set(0)
	if logger != nil {
		logger.Error("Source failed, serving empty feed", map[string]interface{}{
			"source": cfg.ID,
			"url":    cfg.URL,
			"stage":  kind,
			"error":  err.Error(),
		})
	}
	return domain.ItemsFailed(err)
}

// titleFor returns cfg.Title, or the id with its first letter of each word upper-cased
func titleFor(cfg domain.SourceConfig) string {
	if cfg.Title != "" {
		return cfg.Title
	}
	return TitleCase(cfg.ID)
}

// TitleCase upper-cases the first letter of each word and lower-cases the rest.
// Words are separated by anything that is not a letter.
func TitleCase(s string) string {
	var b strings.Builder
	prevLetter := false
	for _, r := range s {
		isLetter := unicode.IsLetter(r)
		switch {
		case isLetter && !prevLetter:
			b.WriteRune(unicode.ToUpper(r))
		case isLetter:
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
		prevLetter = isLetter
	}
	return b.String()
}
