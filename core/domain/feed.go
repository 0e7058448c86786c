// ABOUTME: Feed domain models describe configured sources and rendered RSS output
// ABOUTME: Provides validation logic to ensure source definitions are usable

package domain

import (
	"errors"
	"net/url"
	"time"
)

// Source kinds understood by the registry
const (
	// SourceKindOPDS is an OPDS/Atom catalog parsed entry by entry
	SourceKindOPDS = "opds"

	// SourceKindFeed is an ordinary RSS/Atom/JSON feed re-rendered as RSS
	SourceKindFeed = "feed"
)

// SourceConfig describes one upstream source exposed as an RSS feed
type SourceConfig struct {
	// ID is the path segment the feed is served under
	ID string `yaml:"id"`

	// Kind selects the adapter ("opds" or "feed")
	Kind string `yaml:"kind"`

	// Title overrides the channel title; empty derives it from ID
	Title string `yaml:"title"`

	// URL is the upstream document location
	URL string `yaml:"url"`

	// BaseHost resolves relative links; empty uses the URL's host
	BaseHost string `yaml:"base_host"`

	// TTL is how long the raw upstream document is cached
	TTL time.Duration `yaml:"ttl"`
}

// Validate checks that the source can be registered
func (s *SourceConfig) Validate() error {
	if s.ID == "" {
		return errors.New("source id cannot be empty")
	}

	if s.Kind != SourceKindOPDS && s.Kind != SourceKindFeed {
		return errors.New("source kind must be 'opds' or 'feed'")
	}

	parsed, err := url.Parse(s.URL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return errors.New("source url must be absolute")
	}

	if s.TTL < 0 {
		return errors.New("source ttl cannot be negative")
	}

	return nil
}

// Host returns the host relative links are resolved against
func (s *SourceConfig) Host() string {
	if s.BaseHost != "" {
		return s.BaseHost
	}
	if parsed, err := url.Parse(s.URL); err == nil {
		return parsed.Host
	}
	return ""
}

// RenderedFeed is an RSS document ready to be written to a client
type RenderedFeed struct {
	SourceID    string
	ContentType string
	Body        []byte
	ItemCount   int

	// Err is set when the source failed and the document is intentionally empty
	Err error
}
