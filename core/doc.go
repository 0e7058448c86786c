// Package core contains the business logic of the RSSGen service.
// It is framework-agnostic: nothing here knows about HTTP routing or
// about a particular cache backend.
//
// The core package is organized into several sub-packages:
//
// - domain: source definitions, items, cache records and rendered feeds
// - catalog: OPDS/Atom catalog parsing into items
// - fetch: cache-first retrieval of upstream documents
// - source: source adapters (OPDS catalogs, plain feeds) and their registry
// - rss: RSS 2.0 serialization
// - feed: resolves a feed id to a source and renders it
// - workers: concurrent cache warm-up
// - errors: custom error types
// - interfaces: contracts for external dependencies (cache, HTTP, logger)
//
// # Design Principles
//
// - All external dependencies are injected via interfaces
// - Upstream failures stop at the source adapter and become empty feeds
// - Business logic is testable in isolation
//
// # Usage Example
//
//	deps := interfaces.Dependencies{
//	    Cache:      myCache,      // implements interfaces.Cache
//	    HTTPClient: myHTTPClient, // implements interfaces.HTTPClient
//	    Logger:     myLogger,     // implements interfaces.Logger
//	}
//
//	fetcher := fetch.NewFetcher(deps, 30*time.Second)
//	registry, err := source.FromConfig(config.DefaultSources(), fetcher, deps.Logger, source.BuildOptions{UseCache: true})
//	service := feed.NewFeedService(registry, "https://rss.example.com", deps.Logger)
//
//	rendered, err := service.GetFeed(ctx, "emagazine")
package core
