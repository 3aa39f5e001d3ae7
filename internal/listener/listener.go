// Package listener provides a Postgres LISTEN/NOTIFY consumer for cache
// invalidation. It holds a dedicated pgx connection (not from the pool)
// listening on the `league_changed` channel.
//
// Every write path that touches league data — imports, matchday saves,
// point corrections — fires pg_notify with the league file name as the
// payload. This consumer drops the cached view for that league so the
// next read rematerializes it.
package listener

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/nordliga/liga-data/internal/cache"
)

const (
	channel          = "league_changed"
	reconnectBackoff = 5 * time.Second
	maxReconnect     = 30 * time.Second
)

// Start opens a dedicated connection and listens on the league_changed
// channel. It reconnects automatically on connection loss. Blocks until ctx
// is cancelled. Intended to be called with `go`.
func Start(ctx context.Context, dbURL string, appCache *cache.Cache, logger *slog.Logger) {
	backoff := reconnectBackoff

	for {
		err := listenLoop(ctx, dbURL, appCache, logger)
		if ctx.Err() != nil {
			logger.Info("League listener stopped (context cancelled)")
			return
		}

		logger.Error("League listener disconnected, reconnecting...",
			"error", err, "backoff", backoff)

		select {
		case <-time.After(backoff):
			backoff = min(backoff*2, maxReconnect)
		case <-ctx.Done():
			return
		}
	}
}

// listenLoop runs a single listen session. Returns when the connection drops
// or the context is cancelled.
func listenLoop(ctx context.Context, dbURL string, appCache *cache.Cache, logger *slog.Logger) error {
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close(context.Background())

	_, err = conn.Exec(ctx, "LISTEN "+channel)
	if err != nil {
		return fmt.Errorf("LISTEN %s: %w", channel, err)
	}
	logger.Info("League listener connected", "channel", channel)

	for {
		notification, err := conn.WaitForNotification(ctx)
		if err != nil {
			return fmt.Errorf("wait for notification: %w", err)
		}

		file := notification.Payload
		if file == "" {
			continue
		}

		appCache.Invalidate("view:" + file)
		logger.Info("League changed, view cache invalidated", "file", file)
	}
}
