// Package api provides the HTTP layer of the RSSGen service.
// It uses the Huma framework on a chi router for OpenAPI documentation,
// request validation and a clean handler interface.
//
// # Architecture
//
// - server.go: Huma API configuration, CORS, middleware and /metrics
// - handlers/: HTTP request handlers (feeds, cache statistics, health)
// - middleware/: request logging with request IDs and per-IP rate limiting
//
// # Routes
//
//	GET /                 service index with subscription URLs
//	GET /{feed}           RSS 2.0 document for a registered source
//	GET /api/feeds        {"feeds": [...], "count": n}
//	GET /api/cache/stats  {"total": n, "expired": n, "valid": n}
//	GET /health           {"status": "healthy"}
//	GET /metrics          Prometheus exposition (when enabled)
//
// The OpenAPI spec is available at /openapi.json and the docs UI at /docs.
//
// # Usage Example
//
//	humaAPI, router := api.NewAPIWithMiddleware(api.APIConfig{
//	    Logger:     logger,
//	    RateLimit:  60,
//	    RateWindow: time.Minute,
//	    Metrics:    true,
//	})
//	handlers.NewFeedHandler(feedService, cfg.Server.FeedLink).RegisterRoutes(humaAPI)
//	http.ListenAndServe(":5000", router)
//
// # Error Handling
//
// Errors use the RFC 7807 problem format:
//
//	{
//	    "status": 404,
//	    "title": "Not Found",
//	    "detail": "feed not found: nope"
//	}
//
// A source that fails upstream is not an error: it yields a valid RSS
// document with no items.
package api
