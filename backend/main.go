// ABOUTME: Entry point for Avatar Budget Analyzer backend service
// ABOUTME: Serves the combination ranking API with graceful shutdown

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/markalston/avatar-budget-analyzer/backend/cache"
	"github.com/markalston/avatar-budget-analyzer/backend/config"
	"github.com/markalston/avatar-budget-analyzer/backend/handlers"
	"github.com/markalston/avatar-budget-analyzer/backend/logger"
	"github.com/markalston/avatar-budget-analyzer/backend/middleware"
	"github.com/markalston/avatar-budget-analyzer/backend/models"
	"github.com/markalston/avatar-budget-analyzer/backend/pricing"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// .env may carry LOG_* settings, so load it before the logger
	if err := config.LoadEnvFile(); err != nil {
		return err
	}

	// Initialize structured logging
	logCloser := logger.Init()
	defer logCloser.Close()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	slog.Info("Starting Avatar Budget Analyzer Backend")

	var catalog *pricing.Catalog
	if cfg.PricingCatalogPath != "" {
		catalog, err = pricing.LoadFile(cfg.PricingCatalogPath)
		if err != nil {
			return err
		}
		slog.Info("Pricing catalog loaded", "path", cfg.PricingCatalogPath)
	} else {
		slog.Info("Using embedded pricing catalog")
	}

	// Initialize cache
	c := cache.New[models.CombinationsResponse](cfg.CacheDuration())
	defer c.Close()
	slog.Info("Cache initialized", "ttl", cfg.CacheDuration())

	var limiter *middleware.RateLimiter
	if cfg.RateLimitEnabled {
		limiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
		slog.Info("Rate limiting enabled", "rps", cfg.RateLimitRPS, "burst", cfg.RateLimitBurst)
	} else {
		slog.Warn("Rate limiting disabled")
	}

	if len(cfg.CORSAllowedOrigins) == 0 {
		slog.Info("No CORS origins configured, cross-origin requests blocked")
	}

	h := handlers.NewHandler(cfg, c, catalog)
	mux := h.Mux(
		middleware.LogRequest,
		middleware.CORS(cfg.CORSAllowedOrigins),
		middleware.RateLimit(limiter, middleware.ClientIP),
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down", "timeout", cfg.ShutdownDuration())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownDuration())
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	slog.Info("Server stopped")
	return nil
}
