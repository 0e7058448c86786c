// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package.
//
// - cache/file: one JSON record per key in a directory, with fallback directory
// - cache/memory: in-process cache on patrickmn/go-cache
// - cache/redis: Redis-backed cache on go-redis
// - cache/sqlite: single-file cache on mattn/go-sqlite3
// - http/standard: net/http client with retries on transport errors and 5xx
// - logger/logruslog, logger/zaplog: structured logger backends
// - logger: backend selection and lumberjack file rotation
// - metrics: Prometheus collectors
//
// # Cache Implementations
//
//	cache, err := file.New("./cache", "", time.Hour)
//	err = cache.Set(ctx, "url_https://example.com/opds", body, 0)
//	value, ok := cache.Get(ctx, "url_https://example.com/opds")
//
// Every backend treats reads as best effort: a missing, expired or corrupt
// entry is a miss, never an error.
//
// # HTTP Client
//
//	client := standard.NewStandardHTTPClient(30*time.Second, 0)
//	resp, err := client.Get(ctx, "https://emagazine.link/opds/new", nil)
package infrastructure
