// Command ingest is the Liga data ingestion CLI.
//
// Usage:
//
//	liga-ingest schema
//	liga-ingest import leagues
//	liga-ingest import leagues --file oberliga2425.l98
//	liga-ingest import news
//	liga-ingest link bulk
//	liga-ingest link adhoc
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/nordliga/liga-data/internal/config"
	"github.com/nordliga/liga-data/internal/correlate"
	"github.com/nordliga/liga-data/internal/db"
	"github.com/nordliga/liga-data/internal/lmo"
	"github.com/nordliga/liga-data/internal/maintenance"
	"github.com/nordliga/liga-data/internal/news"
	"github.com/nordliga/liga-data/internal/store"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "liga-ingest",
		Short: "Liga data ingestion CLI",
	}

	root.AddCommand(schemaCmd())
	root.AddCommand(importCmd())
	root.AddCommand(linkCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// schema command
// --------------------------------------------------------------------------

func schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Create tables and indexes if missing",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			// Plain connection: the pool's prepared statements need the
			// schema to exist first.
			conn, err := pgx.Connect(ctx, cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("connect to database: %w", err)
			}
			defer conn.Close(context.Background())

			if err := db.EnsureSchema(ctx, conn); err != nil {
				return err
			}
			logger.Info("Schema ensured")
			return nil
		},
	}
}

// --------------------------------------------------------------------------
// import command
// --------------------------------------------------------------------------

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import legacy data files",
	}
	cmd.AddCommand(importLeaguesCmd())
	cmd.AddCommand(importNewsCmd())
	return cmd
}

func importLeaguesCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "leagues",
		Short: "Decode and import league files from LEAGUE_DIR",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithDB(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				st := store.New(pool.Pool, logger)
				parser := &lmo.Parser{Loc: cfg.LeagueZone}

				files := []string{file}
				if file == "" {
					var err error
					files, err = maintenance.LeagueFiles(cfg.LeagueDir)
					if err != nil {
						return err
					}
				}
				if len(files) == 0 {
					logger.Warn("No league files found", "dir", cfg.LeagueDir)
					return nil
				}

				start := time.Now()
				imported, failed := 0, 0
				for _, name := range files {
					sched, err := parser.ParseFile(cfg.LeagueDir, name)
					if err != nil {
						logger.Error("Failed to decode league file", "file", name, "error", err)
						failed++
						continue
					}
					result, err := st.ImportLeague(ctx, name, sched)
					if err != nil {
						logger.Error("Failed to import league", "file", name, "error", err)
						failed++
						continue
					}
					logger.Info("League imported", "summary", result.Summary())
					imported++
				}
				logger.Info("League import finished",
					"imported", imported, "failed", failed,
					"duration", time.Since(start).Round(time.Millisecond))
				if failed > 0 && imported == 0 {
					return fmt.Errorf("all %d league imports failed", failed)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Import a single league file instead of the whole directory")
	return cmd
}

func importNewsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "news",
		Short: "Import the legacy news corpus from NEWS_DIR",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithDB(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				st := store.New(pool.Pool, logger)
				reader := &news.Reader{Dir: cfg.NewsDir, Logger: logger}

				start := time.Now()
				items, err := reader.Load()
				if err != nil {
					return err
				}
				saved, err := st.SaveNews(ctx, items)
				if err != nil {
					return err
				}
				logger.Info("News import finished",
					"read", len(items), "saved", saved,
					"duration", time.Since(start).Round(time.Millisecond))
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// link command
// --------------------------------------------------------------------------

func linkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link",
		Short: "Correlate news articles with matches",
	}
	cmd.AddCommand(linkStrategyCmd("bulk",
		"One-best-article-per-match pass over the whole corpus", correlate.Bulk))
	cmd.AddCommand(linkStrategyCmd("adhoc",
		"Partial-credit pass allowing several articles per match", correlate.AdHoc))
	return cmd
}

func linkStrategyCmd(name, short string, strategy func([]correlate.Match, []correlate.Article) []correlate.Link) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithDB(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				st := store.New(pool.Pool, logger)

				start := time.Now()
				matches, err := st.CorrelatorMatches(ctx)
				if err != nil {
					return err
				}
				articles, err := st.CorrelatorNews(ctx)
				if err != nil {
					return err
				}

				links := strategy(matches, articles)
				if err := st.ReplaceLinks(ctx, links); err != nil {
					return err
				}

				result := store.LinkResult{
					MatchesScanned: len(matches),
					NewsScanned:    len(articles),
					Linked:         len(links),
				}
				logger.Info("Link run finished",
					"strategy", name,
					"summary", result.Summary(),
					"duration", time.Since(start).Round(time.Millisecond))
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// runWithDB handles config loading, DB connection, and context cancellation.
func runWithDB(fn func(ctx context.Context, cfg *config.Config, pool *db.Pool) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	pool, err := db.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	return fn(ctx, cfg, pool)
}
