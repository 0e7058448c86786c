// ABOUTME: Cache inspection handler for the Huma API
// ABOUTME: Reports how many cached entries are valid or expired

package handlers

import (
	"context"
	"net/http"

	"rssgen-api/core/domain"

	"github.com/danielgtaylor/huma/v2"
)

// StatsProvider reports cache statistics
type StatsProvider interface {
	Stats(ctx context.Context) (domain.CacheStats, error)
}

// CacheHandler exposes cache statistics
type CacheHandler struct {
	cache StatsProvider
}

// NewCacheHandler creates a new cache handler
func NewCacheHandler(cache StatsProvider) *CacheHandler {
	return &CacheHandler{cache: cache}
}

// RegisterRoutes registers the cache routes
func (h *CacheHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "cacheStats",
		Method:      http.MethodGet,
		Path:        "/api/cache/stats",
		Summary:     "Cache statistics",
		Description: "Counts cached entries, split into valid and expired",
		Tags:        []string{"Cache"},
	}, h.Stats)
}

// CacheStatsOutput defines the output for the Stats operation
type CacheStatsOutput struct {
	Body domain.CacheStats
}

// Stats handles the GET /api/cache/stats endpoint
func (h *CacheHandler) Stats(ctx context.Context, input *struct{}) (*CacheStatsOutput, error) {
	stats, err := h.cache.Stats(ctx)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &CacheStatsOutput{Body: stats}, nil
}
