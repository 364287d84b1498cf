// Package main is the entrypoint for the sales forecast API server.
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

	"github.com/espin086/sales-forecast-api/internal/api"
	"github.com/espin086/sales-forecast-api/internal/api/handler"
	mw "github.com/espin086/sales-forecast-api/internal/api/middleware"
	"github.com/espin086/sales-forecast-api/internal/cache"
	"github.com/espin086/sales-forecast-api/internal/config"
	"github.com/espin086/sales-forecast-api/internal/forecast"
	"github.com/espin086/sales-forecast-api/internal/model"
	"github.com/espin086/sales-forecast-api/internal/queue"
	"github.com/espin086/sales-forecast-api/internal/store"
	"github.com/espin086/sales-forecast-api/internal/worker"
)

const shutdownTimeout = 30 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config — fail fast on invalid config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	slog.Info("config loaded", "model_provider", cfg.Model.Provider, "env", cfg.Server.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Create Redis cache
	redisCache, err := cache.NewRedisCache(cfg.Redis.URL)
	if err != nil {
		return fmt.Errorf("create redis cache: %w", err)
	}
	defer redisCache.Close()

	if err := redisCache.Ping(ctx); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	slog.Info("redis connected")

	// 3. Create model predictor
	predictor, err := model.NewPredictor(cfg.Model)
	if err != nil {
		return fmt.Errorf("create predictor: %w", err)
	}
	slog.Info("predictor initialized", "provider", predictor.Name())

	// 4. Create store, queue, and service
	jobStore := store.NewMemoryStore()
	jobQueue := queue.New()
	svc := forecast.NewService(jobStore, jobQueue, predictor)

	// 5. Start the background worker on its own context so HTTP drains first
	// during shutdown and the in-flight job still finishes.
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()

	w := worker.New(jobStore, jobQueue, redisCache, predictor,
		cfg.Model.InferenceTimeout, cfg.Redis.ResultTTL)

	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		w.Run(workerCtx)
	}()

	// 6. Build router with dependencies
	deps := api.Dependencies{
		RateLimit: mw.NewRateLimit(redisCache, cfg.Server.RateLimitPerMin),

		StatusHandler:    handler.NewStatusHandler(svc),
		JobStatusHandler: handler.NewJobStatusHandler(svc),
		PredictHandler:   handler.NewPredictHandler(svc),
		ListJobsHandler:  handler.NewListJobsHandler(svc),
	}

	router := api.NewRouter(deps)

	// 7. Start HTTP server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for shutdown signal or server error
	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		slog.Info("shutdown signal received, draining connections...")
	}

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	// Stop the worker after HTTP has drained; Run returns once the in-flight
	// job (if any) reaches a terminal state.
	stopWorker()
	<-workerDone

	slog.Info("server stopped gracefully")
	return nil
}
