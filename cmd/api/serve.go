// ABOUTME: Serve command starts the HTTP server
// ABOUTME: Shuts down gracefully on SIGINT or SIGTERM

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"rssgen-api/api"
	"rssgen-api/api/handlers"
	"rssgen-api/pkg/featureflags"

	"github.com/spf13/cobra"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the HTTP server on HOST:PORT.

Routes: GET /{feed}, GET /api/feeds, GET /api/cache/stats, GET /health,
GET /metrics, plus the OpenAPI document at /openapi.json and docs at /docs.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := newApp(appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := a.httpServer(ctx)

	a.logger.Info("Starting RSSGen API", map[string]interface{}{
		"address":    srv.Addr,
		"env":        a.cfg.Env,
		"cache_type": a.cfg.Cache.Type,
		"sources":    a.registry.IDs(),
		"flags":      a.flags.GetAllFlags(),
	})

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			a.logger.Error("HTTP server error", map[string]interface{}{"error": err.Error()})
			return err
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("Server forced to shutdown", map[string]interface{}{"error": err.Error()})
		return err
	}

	a.logger.Info("Server stopped", nil)
	return nil
}

// httpServer builds the router, registers every handler and wraps it in an
// http.Server bound to the configured address
func (a *app) httpServer(ctx context.Context) *http.Server {
	apiCfg := api.APIConfig{
		Logger:  a.logger,
		Metrics: a.flags.IsEnabled(ctx, featureflags.MetricsEnabled),
	}
	if a.flags.IsEnabled(ctx, featureflags.RateLimitEnabled) {
		apiCfg.RateLimit = a.cfg.Server.RateLimit
		apiCfg.RateWindow = time.Minute
	}
	humaAPI, router := api.NewAPIWithMiddleware(apiCfg)

	handlers.RegisterHealth(humaAPI)
	handlers.NewCacheHandler(a.cache).RegisterRoutes(humaAPI)
	handlers.NewFeedHandler(a.feeds, a.cfg.Server.FeedLink).RegisterRoutes(humaAPI)

	return &http.Server{
		Addr:         a.cfg.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: a.cfg.Fetch.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}
}
