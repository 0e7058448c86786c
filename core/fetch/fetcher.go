// ABOUTME: Fetcher memoizes upstream GET requests through the cache
// ABOUTME: Raw documents are stored under "url_<url>" for the caller's TTL

package fetch

import (
	"context"
	"fmt"
	"io"
	"time"

	coreerrors "rssgen-api/core/errors"
	"rssgen-api/core/interfaces"
	"rssgen-api/infrastructure/metrics"
)

const (
	// KeyPrefix namespaces raw documents in the cache
	KeyPrefix = "url_"

	// DefaultTTL is used when no per-call TTL is given
	DefaultTTL = time.Hour

	// DefaultTimeout bounds a single network fetch
	DefaultTimeout = 30 * time.Second
)

// maxBodySize caps documents kept in memory and in the cache
var maxBodySize int64 = 20 << 20

// DefaultHeaders are sent with every request unless overridden
var DefaultHeaders = map[string]string{
	"Accept": "application/atom+xml, application/xml;q=0.9, text/xml;q=0.8, */*;q=0.5",
}

// Fetcher retrieves documents, serving repeated requests from the cache
type Fetcher struct {
	deps    interfaces.Dependencies
	timeout time.Duration
}

// NewFetcher creates a fetcher. A nil cache disables memoization.
func NewFetcher(deps interfaces.Dependencies, timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Fetcher{
		deps:    deps,
		timeout: timeout,
	}
}

type options struct {
	headers  map[string]string
	useCache bool
	ttl      time.Duration
}

// Option customizes a single Fetch call
type Option func(*options)

// WithHeaders adds or overrides request headers
func WithHeaders(headers map[string]string) Option {
	return func(o *options) {
		o.headers = headers
	}
}

// WithoutCache skips both the cache lookup and the cache write
func WithoutCache() Option {
	return func(o *options) {
		o.useCache = false
	}
}

// WithTTL sets how long a fetched document stays cached
func WithTTL(ttl time.Duration) Option {
	return func(o *options) {
		o.ttl = ttl
	}
}

// CacheKey returns the cache key used for url
func CacheKey(url string) string {
	return KeyPrefix + url
}

// Fetch returns the body of url. A cached, unexpired copy is returned without
// any network access. Transport errors, timeouts and non-2xx responses are
// returned as *errors.FetchError and nothing is cached.
func (f *Fetcher) Fetch(ctx context.Context, url string, opts ...Option) (string, error) {
	o := options{useCache: true, ttl: DefaultTTL}
	for _, opt := range opts {
		opt(&o)
	}
	useCache := o.useCache && f.deps.Cache != nil
	key := CacheKey(url)

	if useCache {
		// empty values are treated as misses
		if cached, ok := f.deps.Cache.Get(ctx, key); ok && len(cached) > 0 {
			metrics.Fetches.WithLabelValues("cached").Inc()
			f.debug("Serving document from cache", map[string]interface{}{"url": url})
			return string(cached), nil
		}
	}

	if f.deps.HTTPClient == nil {
		return "", &coreerrors.FetchError{URL: url, Err: fmt.Errorf("HTTP client not configured")}
	}

	body, err := f.get(ctx, url, o.headers)
	if err != nil {
		metrics.Fetches.WithLabelValues("error").Inc()
		return "", err
	}
	metrics.Fetches.WithLabelValues("network").Inc()

	if useCache {
		// best effort: a failed write only costs a refetch
		if err := f.deps.Cache.Set(ctx, key, body, o.ttl); err != nil {
			f.debug("Failed to cache document", map[string]interface{}{
				"url":   url,
				"error": err.Error(),
			})
		}
	}

	return string(body), nil
}

func (f *Fetcher) get(ctx context.Context, url string, extra map[string]string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	headers := make(map[string]string, len(DefaultHeaders)+len(extra))
	for k, v := range DefaultHeaders {
		headers[k] = v
	}
	for k, v := range extra {
		headers[k] = v
	}

	start := time.Now()
	resp, err := f.deps.HTTPClient.Get(ctx, url, headers)
	metrics.FetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, &coreerrors.FetchError{URL: url, Err: err}
	}
	defer resp.Body().Close()

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return nil, &coreerrors.FetchError{URL: url, StatusCode: resp.StatusCode()}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body(), maxBodySize+1))
	if err != nil {
		return nil, &coreerrors.FetchError{URL: url, StatusCode: resp.StatusCode(), Err: err}
	}
	if int64(len(body)) > maxBodySize {
		return nil, &coreerrors.FetchError{
			URL:        url,
			StatusCode: resp.StatusCode(),
			Err:        fmt.Errorf("response body exceeds %d bytes", maxBodySize),
		}
	}

	return body, nil
}

func (f *Fetcher) debug(msg string, fields map[string]interface{}) {
	if f.deps.Logger != nil {
		f.deps.Logger.Debug(msg, fields)
	}
}
