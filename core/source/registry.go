// ABOUTME: Registry maps feed identifiers to source adapters
// ABOUTME: Built once at startup from configuration and read-only afterwards

package source

import (
	"fmt"
	"sort"

	"rssgen-api/core/domain"
	"rssgen-api/core/fetch"
	"rssgen-api/core/interfaces"
)

// Registry holds the sources served by the application
type Registry struct {
	sources map[string]interfaces.Source
}

// NewRegistry creates a registry from ready-made sources.
// Duplicate ids are rejected.
func NewRegistry(sources ...interfaces.Source) (*Registry, error) {
	r := &Registry{sources: make(map[string]interfaces.Source, len(sources))}
	for _, s := range sources {
		if err := r.Register(s); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// BuildOptions control how FromConfig constructs adapters
type BuildOptions struct {
	// UseCache lets adapters serve upstream documents from the cache
	UseCache bool

	// AllowFeedSources registers sources of kind "feed"; others are skipped
	AllowFeedSources bool
}

// FromConfig builds adapters for every configured source
func FromConfig(configs []domain.SourceConfig, fetcher *fetch.Fetcher, logger interfaces.Logger, opts BuildOptions) (*Registry, error) {
	r := &Registry{sources: make(map[string]interfaces.Source, len(configs))}

	for _, cfg := range configs {
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("source %q: %w", cfg.ID, err)
		}

		var src interfaces.Source
		switch cfg.Kind {
		case domain.SourceKindOPDS:
			s := NewOPDSSource(cfg, fetcher, logger)
			s.SetCacheEnabled(opts.UseCache)
			src = s
		case domain.SourceKindFeed:
			if !opts.AllowFeedSources {
				if logger != nil {
					logger.Warn("Feed sources disabled, skipping", map[string]interface{}{"source": cfg.ID})
				}
				continue
			}
			s := NewFeedSource(cfg, fetcher, logger)
			s.SetCacheEnabled(opts.UseCache)
			src = s
		}

		if err := r.Register(src); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Register adds a source
func (r *Registry) Register(s interfaces.Source) error {
	if _, exists := r.sources[s.ID()]; exists {
		return fmt.Errorf("duplicate source id %q", s.ID())
	}
	r.sources[s.ID()] = s
	return nil
}

// Get returns the source registered under id
func (r *Registry) Get(id string) (interfaces.Source, bool) {
	s, ok := r.sources[id]
	return s, ok
}

// IDs returns the registered ids in sorted order
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.sources))
	for id := range r.sources {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of registered sources
func (r *Registry) Len() int {
	return len(r.sources)
}
