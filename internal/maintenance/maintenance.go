// Package maintenance runs periodic background tasks as Go tickers.
// Replaces the cron jobs of the old site — all scheduled work is driven
// from Go since the API is already a persistent, long-running service
// (required for LISTEN/NOTIFY).
package maintenance

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/nordliga/liga-data/internal/correlate"
	"github.com/nordliga/liga-data/internal/lmo"
	"github.com/nordliga/liga-data/internal/store"
)

// Config controls maintenance task intervals. Zero duration disables a task.
type Config struct {
	FileSweepInterval time.Duration // Reimport league files changed on disk
	RelinkInterval    time.Duration // Recompute the match/news link table
	LeagueDir         string
	Location          *time.Location
}

// DefaultConfig returns sensible production defaults.
func DefaultConfig() Config {
	return Config{
		FileSweepInterval: 5 * time.Minute,
		RelinkInterval:    1 * time.Hour,
	}
}

// Start launches all configured maintenance tickers. Blocks until ctx is
// cancelled. Intended to be called with `go`.
func Start(ctx context.Context, st *store.Store, cfg Config, logger *slog.Logger) {
	logger.Info("Maintenance tickers started",
		"file_sweep", cfg.FileSweepInterval,
		"relink", cfg.RelinkInterval)

	tickers := make([]*time.Ticker, 0, 2)
	defer func() {
		for _, t := range tickers {
			t.Stop()
		}
	}()

	// File sweep: pick up league files edited outside the API, e.g. by an
	// admin dropping a fresh .l98 export into the league directory.
	if cfg.FileSweepInterval > 0 {
		t := time.NewTicker(cfg.FileSweepInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, func() { fileSweep(ctx, st, cfg, logger) })
	}

	// Relink: rebuild the match/news correlation from scratch so new
	// articles and reimported schedules converge without manual runs.
	if cfg.RelinkInterval > 0 {
		t := time.NewTicker(cfg.RelinkInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, func() { relink(ctx, st, logger) })
	}

	<-ctx.Done()
	logger.Info("Maintenance tickers stopped")
}

func runLoop(ctx context.Context, ch <-chan time.Time, fn func()) {
	for {
		select {
		case <-ch:
			fn()
		case <-ctx.Done():
			return
		}
	}
}

// --------------------------------------------------------------------------
// Task implementations
// --------------------------------------------------------------------------

// fileSweep reimports every league file whose mtime is newer than its last
// import. Files that fail to decode are logged and skipped so one broken
// file cannot stall the sweep.
func fileSweep(ctx context.Context, st *store.Store, cfg Config, logger *slog.Logger) {
	imported, err := st.ImportTimes(ctx)
	if err != nil {
		logger.Warn("File sweep: failed to load import times", "error", err)
		return
	}

	entries, err := os.ReadDir(cfg.LeagueDir)
	if err != nil {
		logger.Warn("File sweep: failed to read league dir", "dir", cfg.LeagueDir, "error", err)
		return
	}

	parser := &lmo.Parser{Loc: cfg.Location}
	swept := 0
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !lmo.ValidFileName(name) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if last, known := imported[name]; known && !info.ModTime().After(last) {
			continue
		}

		sched, err := parser.ParseFile(cfg.LeagueDir, name)
		if err != nil {
			logger.Warn("File sweep: failed to decode league file", "file", name, "error", err)
			continue
		}
		result, err := st.ImportLeague(ctx, name, sched)
		if err != nil {
			logger.Warn("File sweep: failed to import league", "file", name, "error", err)
			continue
		}
		logger.Info("File sweep: reimported changed league", "summary", result.Summary())
		swept++
	}
	if swept > 0 {
		logger.Info("File sweep finished", "reimported", swept)
	}
}

// relink recomputes the bulk correlation over the full corpus and swaps the
// link table in one transaction.
func relink(ctx context.Context, st *store.Store, logger *slog.Logger) {
	matches, err := st.CorrelatorMatches(ctx)
	if err != nil {
		logger.Warn("Relink: failed to load matches", "error", err)
		return
	}
	articles, err := st.CorrelatorNews(ctx)
	if err != nil {
		logger.Warn("Relink: failed to load news", "error", err)
		return
	}

	links := correlate.Bulk(matches, articles)
	if err := st.ReplaceLinks(ctx, links); err != nil {
		logger.Warn("Relink: failed to store links", "error", err)
		return
	}
	logger.Info("Relink finished",
		"matches", len(matches), "articles", len(articles), "links", len(links))
}

// LeagueFiles lists the decodable league files under dir, in directory
// order. Shared by the CLI import command and the sweep.
func LeagueFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &lmo.IOError{Op: "read league dir", Err: err}
	}
	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !lmo.ValidFileName(name) {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}
