// Package main is the entry point for the Lunchmap mock API server: an
// in-memory implementation of the shop API for local development and demos.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
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

	"github.com/pkordes/lunchmap/internal/config"
	"github.com/pkordes/lunchmap/internal/handler"
	"github.com/pkordes/lunchmap/internal/middleware"
	"github.com/pkordes/lunchmap/internal/repo"
)

func main() {
	// --- Config -----------------------------------------------------------
	if config.LoadDotEnv() {
		slog.Info("loaded .env")
	}
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Storage ----------------------------------------------------------
	shops := repo.NewShopRepo()
	reviews := repo.NewReviewRepo()
	if cfg.SeedPath != "" {
		if err := seed(context.Background(), shops, reviews, cfg.SeedPath); err != nil {
			slog.Error("failed to seed data", "path", cfg.SeedPath, "error", err)
			os.Exit(1)
		}
	}

	// --- Router -----------------------------------------------------------
	// CORS runs outermost so preflight requests are answered before logging
	// and the body limit.
	h := middleware.NewCORSHandler(cfg.CORSOrigins)(
		handler.NewRouter(handler.NewServer(shops, reviews, logger), logger, cfg.MaxBodyBytes),
	)

	// --- HTTP Server ------------------------------------------------------
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr, "cors_origins", cfg.CORSOrigins)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// seed loads the JSON seed file at path into the stores.
func seed(ctx context.Context, shops repo.ShopRepo, reviews repo.ReviewRepo, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	nShops, nReviews, err := repo.Seed(ctx, shops, reviews, f)
	if err != nil {
		return err
	}
	slog.Info("seed data loaded", "shops", nShops, "reviews", nReviews)
	return nil
}
