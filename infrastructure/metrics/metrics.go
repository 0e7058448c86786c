// ABOUTME: Prometheus metrics for cache, fetch and parse activity
// ABOUTME: Collectors are registered on the default registry and exposed at /metrics

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits tracks cache hits by backend (file, memory, redis, sqlite)
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rssgen_cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"backend"},
	)

	// CacheMisses tracks cache misses by backend and reason (missing, expired, corrupt)
	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rssgen_cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"backend", "reason"},
	)

	// CacheErrors tracks swallowed cache operation errors
	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rssgen_cache_errors_total",
			Help: "Total number of cache operation errors",
		},
		[]string{"backend", "operation"}, // "get", "set", "delete", "clear", "stats"
	)

	// Fetches tracks upstream fetches by outcome (network, cached, error)
	Fetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rssgen_fetches_total",
			Help: "Total number of upstream fetch calls",
		},
		[]string{"outcome"},
	)

	// FetchDuration tracks network fetch latency
	FetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "rssgen_fetch_duration_seconds",
			Help:    "Upstream network fetch duration",
			Buckets: prometheus.DefBuckets,
		},
	)

	// SourceItems tracks how many items each source produced on its last request
	SourceItems = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "rssgen_source_items",
			Help: "Number of items returned by the last fetch of a source",
		},
		[]string{"source"},
	)

	// SourceFailures tracks recovered source failures by kind (fetch, parse, other)
	SourceFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rssgen_source_failures_total",
			Help: "Total number of source failures served as empty feeds",
		},
		[]string{"source", "kind"},
	)
)

// CacheMiss records a miss for backend with the given reason
func CacheMiss(backend, reason string) {
	CacheMisses.WithLabelValues(backend, reason).Inc()
}

// CacheHit records a hit for backend
func CacheHit(backend string) {
	CacheHits.WithLabelValues(backend).Inc()
}

// CacheError records a swallowed error for backend and operation
func CacheError(backend, operation string) {
	CacheErrors.WithLabelValues(backend, operation).Inc()
}
