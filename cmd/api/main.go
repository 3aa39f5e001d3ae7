// Command api is the Liga Data API server.
//
// Usage:
//
//	liga-api
//	API_PORT=8080 liga-api

// @title Liga Data API
// @version 1.0.0
// @description League publishing API serving imported schedules, computed tables, point corrections, head-to-head stats, and the correlated news archive.
// @host localhost:8000
// @BasePath /
// @schemes http https
// @contact.name Nordliga
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/nordliga/liga-data/internal/api"
	"github.com/nordliga/liga-data/internal/cache"
	"github.com/nordliga/liga-data/internal/config"
	"github.com/nordliga/liga-data/internal/db"
	"github.com/nordliga/liga-data/internal/listener"
	"github.com/nordliga/liga-data/internal/maintenance"
	"github.com/nordliga/liga-data/internal/store"

	_ "github.com/nordliga/liga-data/docs" // swagger docs
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Connect to database
	logger.Info("Connecting to database...")
	pool, err := db.New(ctx, cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("Database connected",
		"min_conns", cfg.DBPoolMinConns,
		"max_conns", cfg.DBPoolMaxConns)

	st := store.New(pool.Pool, logger)

	// Initialize cache
	appCache := cache.New(cfg.CacheEnabled)
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled)

	// Start LISTEN/NOTIFY consumer: imports and writes from any process
	// invalidate this server's cached views.
	go listener.Start(ctx, cfg.DatabaseURL, appCache, logger)

	// Start maintenance tickers (file sweep, relink)
	go maintenance.Start(ctx, st, maintenance.Config{
		FileSweepInterval: cfg.FileSweepInterval,
		RelinkInterval:    cfg.RelinkInterval,
		LeagueDir:         cfg.LeagueDir,
		Location:          cfg.LeagueZone,
	}, logger)

	// Create router
	router := api.NewRouter(pool, st, appCache, cfg, logger)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting Liga Data API",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
