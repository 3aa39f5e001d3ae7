package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/nordliga/liga-data/internal/lmo"
)

// ImportLeague replaces one league's normalized rows with a fresh decode.
// The whole import — league upsert, delete of old teams/matches, reinsert —
// runs in a single transaction, so readers never observe a half-written
// schedule and any failure rolls the league back untouched. There is no
// incremental diffing by design.
func (s *Store) ImportLeague(ctx context.Context, file string, sched *lmo.Schedule) (ImportResult, error) {
	result := ImportResult{File: file}

	opts, err := json.Marshal(optionsJSON(sched.Options))
	if err != nil {
		return result, fmt.Errorf("marshal options: %w", err)
	}
	name := sched.Options.Name
	if name == "" {
		name = file
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return result, &lmo.IOError{Op: "begin import tx", Err: err}
	}
	defer tx.Rollback(ctx)

	var leagueID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO leagues (file, name, options, imported_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (file) DO UPDATE
		SET name = EXCLUDED.name, options = EXCLUDED.options, imported_at = now()
		RETURNING id`,
		file, name, opts).Scan(&leagueID)
	if err != nil {
		return result, &lmo.IOError{Op: "upsert league", Err: err}
	}

	// Wholesale replace: delete-then-insert, no merging.
	if _, err := tx.Exec(ctx, `DELETE FROM matches WHERE league_id = $1`, leagueID); err != nil {
		return result, &lmo.IOError{Op: "clear matches", Err: err}
	}
	if _, err := tx.Exec(ctx, `DELETE FROM teams WHERE league_id = $1`, leagueID); err != nil {
		return result, &lmo.IOError{Op: "clear teams", Err: err}
	}

	// Insert the team table, then placeholder rows for any team index the
	// schedule references but the [Teams] section lacks.
	teamIDs := map[int]int64{} // external ID -> surrogate key
	insertTeam := func(extID int, name string) error {
		var id int64
		err := tx.QueryRow(ctx, `
			INSERT INTO teams (league_id, external_id, name)
			VALUES ($1, $2, $3) RETURNING id`,
			leagueID, extID, name).Scan(&id)
		if err != nil {
			return &lmo.IOError{Op: "insert team", Err: err}
		}
		teamIDs[extID] = id
		result.Teams++
		return nil
	}
	for _, t := range sched.Teams {
		if err := insertTeam(t.ID, t.Name); err != nil {
			return result, err
		}
	}
	for _, extID := range referencedTeamIDs(sched) {
		if _, known := teamIDs[extID]; !known {
			if err := insertTeam(extID, sched.TeamName(extID)); err != nil {
				return result, err
			}
		}
	}

	rounds := make([]int, 0, len(sched.Rounds))
	for nr := range sched.Rounds {
		rounds = append(rounds, nr)
	}
	sort.Ints(rounds)
	for _, nr := range rounds {
		result.Rounds++
		for _, m := range sched.Rounds[nr] {
			_, err := tx.Exec(ctx, `
				INSERT INTO matches (league_id, round_nr, home_team_id, guest_team_id,
					home_goals, guest_goals, match_date, match_time, match_note, report_url)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
				leagueID, nr, teamIDs[m.HomeID], teamIDs[m.GuestID],
				m.HomeGoals, m.GuestGoals,
				nullIfEmpty(m.Date), nullIfEmpty(m.Time),
				nullIfEmpty(m.Note), nullIfEmpty(m.ReportURL))
			if err != nil {
				return result, &lmo.IOError{Op: "insert match", Err: err}
			}
			result.Matches++
		}
	}

	// Let running API servers drop their cached view of this league.
	if _, err := tx.Exec(ctx, `SELECT pg_notify('league_changed', $1)`, file); err != nil {
		return result, &lmo.IOError{Op: "notify league change", Err: err}
	}

	if err := tx.Commit(ctx); err != nil {
		return result, &lmo.IOError{Op: "commit import tx", Err: err}
	}
	s.logger.Info("League imported", "summary", result.Summary())
	return result, nil
}

// ImportTimes reports when each known league file was last imported, for
// the file sweep to compare against on-disk mtimes.
func (s *Store) ImportTimes(ctx context.Context) (map[string]time.Time, error) {
	rows, err := s.pool.Query(ctx, `SELECT file, imported_at FROM leagues`)
	if err != nil {
		return nil, &lmo.IOError{Op: "load import times", Err: err}
	}
	defer rows.Close()

	out := map[string]time.Time{}
	for rows.Next() {
		var (
			file string
			ts   time.Time
		)
		if err := rows.Scan(&file, &ts); err != nil {
			return nil, &lmo.IOError{Op: "scan import time", Err: err}
		}
		out[file] = ts
	}
	return out, rows.Err()
}

func referencedTeamIDs(sched *lmo.Schedule) []int {
	seen := map[int]bool{}
	for _, matches := range sched.Rounds {
		for _, m := range matches {
			seen[m.HomeID] = true
			seen[m.GuestID] = true
		}
	}
	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// optionsJSON flattens Options into the stored JSON document. Every value
// stays a string, matching the source format.
func optionsJSON(o lmo.Options) map[string]string {
	doc := map[string]string{
		"Name":    o.Name,
		"Rounds":  strconv.Itoa(o.Rounds),
		"Matches": strconv.Itoa(o.Matches),
		"Actual":  strconv.Itoa(o.Actual),
	}
	for k, v := range o.Extra {
		doc[k] = v
	}
	return doc
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
