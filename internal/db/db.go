// Package db provides a pgxpool-based connection pool with prepared
// statement registration, schema bootstrap, and health checking.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nordliga/liga-data/internal/config"
)

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// New creates and validates a new connection pool.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Register prepared statements on every new connection.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, "health_check").Scan(&n)
}

// registerPreparedStatements registers the read statements the API and
// view layers use. Prepared statements eliminate parse overhead on every
// request; import-time writes run as one-shot transactions instead.
func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	stmts := map[string]string{
		// Health
		"health_check": "SELECT 1",

		// Leagues
		"league_list":    "SELECT file, name FROM leagues ORDER BY name",
		"league_by_file": "SELECT id, file, name, options FROM leagues WHERE file = $1",

		// View materialization
		"teams_by_league": "SELECT id, external_id, name FROM teams WHERE league_id = $1 ORDER BY id",
		"matches_by_league": `SELECT m.id, m.round_nr,
			ht.external_id, gt.external_id, ht.name, gt.name,
			m.home_goals, m.guest_goals,
			m.match_date, m.match_time, m.match_note, m.report_url
			FROM matches m
			JOIN teams ht ON m.home_team_id = ht.id
			JOIN teams gt ON m.guest_team_id = gt.id
			WHERE m.league_id = $1
			ORDER BY m.round_nr, m.id`,
		"match_news_by_league": `SELECT mn.match_id, mn.news_id
			FROM match_news mn
			JOIN matches m ON mn.match_id = m.id
			WHERE m.league_id = $1`,
		"corrections_by_league": `SELECT pc.id, pc.team_id, t.external_id, t.name, pc.points, pc.reason
			FROM point_corrections pc
			JOIN teams t ON pc.team_id = t.id
			WHERE pc.league_id = $1
			ORDER BY t.name`,

		// News
		"news_list": `SELECT id, title, short_content, author, timestamp, match_date
			FROM news ORDER BY timestamp DESC LIMIT $1 OFFSET $2`,
		"news_by_id": `SELECT id, title, short_content, content, author, timestamp, match_date
			FROM news WHERE id = $1`,
		"news_for_match": `SELECT n.id, n.title, n.short_content, n.author, n.timestamp, n.match_date, mn.confidence
			FROM news n
			JOIN match_news mn ON n.id = mn.news_id
			WHERE mn.match_id = $1
			ORDER BY mn.confidence DESC, n.timestamp DESC`,
		"news_search": `SELECT id, title, short_content, author, timestamp, match_date
			FROM news WHERE title ILIKE $1 OR content ILIKE $1
			ORDER BY timestamp DESC LIMIT $2`,
	}

	for name, sql := range stmts {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}

// EnsureSchema creates all tables and indexes if they do not exist yet.
// Dates are stored as "2006-01-02" text and clock times as "15:04", the
// normalized forms the decoder emits.
//
// Takes a plain connection rather than the pool: the pool's AfterConnect
// prepares statements against these very tables, which fails on a fresh
// database.
func EnsureSchema(ctx context.Context, conn *pgx.Conn) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS leagues (
			id BIGSERIAL PRIMARY KEY,
			file TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			options JSONB NOT NULL DEFAULT '{}',
			imported_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS teams (
			id BIGSERIAL PRIMARY KEY,
			league_id BIGINT NOT NULL REFERENCES leagues(id) ON DELETE CASCADE,
			external_id INT NOT NULL,
			name TEXT NOT NULL,
			UNIQUE (league_id, external_id)
		)`,
		`CREATE TABLE IF NOT EXISTS matches (
			id BIGSERIAL PRIMARY KEY,
			league_id BIGINT NOT NULL REFERENCES leagues(id) ON DELETE CASCADE,
			round_nr INT NOT NULL,
			home_team_id BIGINT NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
			guest_team_id BIGINT NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
			home_goals INT,
			guest_goals INT,
			match_date TEXT,
			match_time TEXT,
			match_note TEXT,
			report_url TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_matches_league ON matches(league_id)`,
		`CREATE INDEX IF NOT EXISTS idx_matches_round ON matches(league_id, round_nr)`,
		`CREATE TABLE IF NOT EXISTS point_corrections (
			id BIGSERIAL PRIMARY KEY,
			league_id BIGINT NOT NULL REFERENCES leagues(id) ON DELETE CASCADE,
			team_id BIGINT NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
			points INT NOT NULL DEFAULT 0,
			reason TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (league_id, team_id)
		)`,
		`CREATE TABLE IF NOT EXISTS news (
			id BIGINT PRIMARY KEY,
			title TEXT NOT NULL DEFAULT '',
			short_content TEXT NOT NULL DEFAULT '',
			content TEXT NOT NULL DEFAULT '',
			author TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL DEFAULT '',
			timestamp BIGINT NOT NULL DEFAULT 0,
			match_date TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_news_timestamp ON news(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_news_match_date ON news(match_date)`,
		`CREATE TABLE IF NOT EXISTS match_news (
			id BIGSERIAL PRIMARY KEY,
			match_id BIGINT NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
			news_id BIGINT NOT NULL REFERENCES news(id) ON DELETE CASCADE,
			confidence REAL NOT NULL DEFAULT 1.0,
			UNIQUE (match_id, news_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_match_news_match ON match_news(match_id)`,
		`CREATE INDEX IF NOT EXISTS idx_match_news_news ON match_news(news_id)`,
	}
	for _, stmt := range ddl {
		if _, err := conn.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
