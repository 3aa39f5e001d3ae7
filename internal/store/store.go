// Package store is the repository and normalizer layer: it persists decoded
// schedules into normalized rows and rematerializes the published league
// view — teams, matches, and a freshly computed table — on every read.
package store

import (
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store bundles the connection pool with the logger batch jobs report to.
type Store struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// New creates a Store.
func New(pool *pgxpool.Pool, logger *slog.Logger) *Store {
	return &Store{pool: pool, logger: logger}
}

// ImportResult tracks counts from one league import.
type ImportResult struct {
	File    string
	Teams   int
	Matches int
	Rounds  int
}

// Summary returns a human-readable summary of the import.
func (r *ImportResult) Summary() string {
	return fmt.Sprintf("file=%s teams=%d matches=%d rounds=%d",
		r.File, r.Teams, r.Matches, r.Rounds)
}

// LinkResult tracks counts from one correlation run.
type LinkResult struct {
	MatchesScanned int
	NewsScanned    int
	Linked         int
}

// Summary returns a human-readable summary of the correlation run.
func (r *LinkResult) Summary() string {
	return fmt.Sprintf("matches=%d news=%d linked=%d",
		r.MatchesScanned, r.NewsScanned, r.Linked)
}
