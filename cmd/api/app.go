// ABOUTME: Wires configuration, logging, cache, fetcher and sources into one application
// ABOUTME: Shared by the serve, fetch, cache and sources commands

package main

import (
	"context"
	"fmt"
	"io"

	"rssgen-api/core/domain"
	"rssgen-api/core/feed"
	"rssgen-api/core/fetch"
	"rssgen-api/core/interfaces"
	"rssgen-api/core/source"
	"rssgen-api/infrastructure/cache/file"
	"rssgen-api/infrastructure/cache/memory"
	"rssgen-api/infrastructure/cache/redis"
	"rssgen-api/infrastructure/cache/sqlite"
	"rssgen-api/infrastructure/http/standard"
	"rssgen-api/infrastructure/logger"
	"rssgen-api/pkg/config"
	"rssgen-api/pkg/featureflags"
)

// app holds the wired components of one process
type app struct {
	cfg      *config.Config
	logger   interfaces.Logger
	flags    featureflags.Manager
	cache    interfaces.Cache
	sources  []domain.SourceConfig
	registry *source.Registry
	feeds    *feed.FeedService
	closers  []io.Closer
}

// appOptions adjust how the app is wired for a single command
type appOptions struct {
	// noCache forces every source to go to the network
	noCache bool
}

// loadConfig reads the environment and applies the global flag overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if globalOpts.logLevel != "" {
		cfg.Log.Level = globalOpts.logLevel
	}
	if globalOpts.cacheType != "" {
		cfg.Cache.Type = globalOpts.cacheType
	}
	if globalOpts.sources != "" {
		cfg.SourcesFile = globalOpts.sources
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newApp builds every component from the environment
func newApp(opts appOptions) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return newAppWithConfig(cfg, featureflags.NewEnvManager(""), opts)
}

func newAppWithConfig(cfg *config.Config, flags featureflags.Manager, opts appOptions) (*app, error) {
	log, logCloser, err := logger.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	a := &app{
		cfg:     cfg,
		logger:  log,
		flags:   flags,
		closers: []io.Closer{logCloser},
	}

	cache, cacheCloser, err := newCache(cfg, log)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.cache = cache
	if cacheCloser != nil {
		a.closers = append(a.closers, cacheCloser)
	}

	sources, err := cfg.Sources()
	if err != nil {
		a.Close()
		return nil, err
	}
	a.sources = sources

	ctx := context.Background()
	// one request per fetch; MAX_RETRIES is reserved and not applied here
	httpClient := standard.NewStandardHTTPClient(cfg.Fetch.Timeout, 0)
	fetcher := fetch.NewFetcher(interfaces.Dependencies{
		Cache:      cache,
		HTTPClient: httpClient,
		Logger:     log,
	}, cfg.Fetch.Timeout)

	registry, err := source.FromConfig(sources, fetcher, log, source.BuildOptions{
		UseCache:         !opts.noCache && flags.IsEnabled(ctx, featureflags.CacheEnabled),
		AllowFeedSources: flags.IsEnabled(ctx, featureflags.FeedSourcesEnabled),
	})
	if err != nil {
		a.Close()
		return nil, err
	}
	a.registry = registry
	a.feeds = feed.NewFeedService(registry, cfg.Server.FeedLink, log)

	return a, nil
}

// newCache selects the cache backend. Redis and SQLite fall back to the
// file store when they cannot be opened; a file store that cannot use
// either directory is fatal.
func newCache(cfg *config.Config, log interfaces.Logger) (interfaces.Cache, io.Closer, error) {
	ttl := cfg.Cache.DefaultTTL

	switch cfg.Cache.Type {
	case "memory":
		log.Info("Using memory cache", nil)
		return memory.NewMemoryCache(ttl), nil, nil
	case "redis":
		redisCache, err := redis.NewRedisCache(cfg.Cache.Redis, ttl)
		if err == nil {
			log.Info("Using Redis cache", map[string]interface{}{
				"address": cfg.Cache.Redis.Address,
			})
			return redisCache, redisCache, nil
		}
		log.Error("Failed to create Redis cache, falling back to file cache", map[string]interface{}{
			"error": err.Error(),
		})
	case "sqlite":
		sqliteCache, err := sqlite.NewSQLiteCache(cfg.Cache.SQLitePath, ttl)
		if err == nil {
			log.Info("Using SQLite cache", map[string]interface{}{
				"path": sqliteCache.FilePath(),
			})
			return sqliteCache, sqliteCache, nil
		}
		log.Error("Failed to create SQLite cache, falling back to file cache", map[string]interface{}{
			"error": err.Error(),
		})
	}

	fileCache, err := file.New(cfg.Cache.Dir, cfg.Cache.FallbackDir, ttl, file.WithLogger(log))
	if err != nil {
		return nil, nil, err
	}
	log.Info("Using file cache", map[string]interface{}{
		"dir":      fileCache.Dir(),
		"fallback": fileCache.UsingFallback(),
	})
	return fileCache, nil, nil
}

// Close releases the cache connection and flushes the logger
func (a *app) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}
