package store

import (
	"context"
	"fmt"

	"github.com/nordliga/liga-data/internal/lmo"
)

// MatchUpdate is one edited result row of a matchday. Team IDs are the
// external ordinals the published view exposes. Nil goals reset the match
// to pending.
type MatchUpdate struct {
	HomeID     int     `json:"home_id"`
	GuestID    int     `json:"guest_id"`
	HomeGoals  *int    `json:"home_goals"`
	GuestGoals *int    `json:"guest_goals"`
	Date       *string `json:"date"`
	Time       *string `json:"time"`
	Note       *string `json:"note"`
}

// SaveMatchday updates the results of one round in a single transaction.
// Goals must be non-negative when present; updates naming unknown teams
// are a ValidationError and roll the whole round back.
func (s *Store) SaveMatchday(ctx context.Context, file string, round int, updates []MatchUpdate) error {
	if round < 1 {
		return &lmo.ValidationError{Msg: fmt.Sprintf("round %d out of range", round)}
	}
	leagueID, err := s.leagueIDByFile(ctx, file)
	if err != nil {
		return err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return &lmo.IOError{Op: "begin matchday tx", Err: err}
	}
	defer tx.Rollback(ctx)

	// external ID -> surrogate key
	lookup := map[int]int64{}
	rows, err := tx.Query(ctx,
		`SELECT external_id, id FROM teams WHERE league_id = $1`, leagueID)
	if err != nil {
		return &lmo.IOError{Op: "load teams", Err: err}
	}
	for rows.Next() {
		var (
			extID int
			id    int64
		)
		if err := rows.Scan(&extID, &id); err != nil {
			rows.Close()
			return &lmo.IOError{Op: "scan team", Err: err}
		}
		lookup[extID] = id
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return &lmo.IOError{Op: "load teams", Err: err}
	}

	for _, u := range updates {
		if u.HomeGoals != nil && *u.HomeGoals < 0 || u.GuestGoals != nil && *u.GuestGoals < 0 {
			return &lmo.ValidationError{Msg: "goals must not be negative"}
		}
		homeID, okH := lookup[u.HomeID]
		guestID, okG := lookup[u.GuestID]
		if !okH || !okG {
			return &lmo.ValidationError{Msg: fmt.Sprintf("unknown team in pairing %d vs %d", u.HomeID, u.GuestID)}
		}
		_, err := tx.Exec(ctx, `
			UPDATE matches
			SET home_goals = $1, guest_goals = $2,
				match_date = $3, match_time = $4, match_note = $5
			WHERE league_id = $6 AND round_nr = $7
				AND home_team_id = $8 AND guest_team_id = $9`,
			u.HomeGoals, u.GuestGoals, u.Date, u.Time, u.Note,
			leagueID, round, homeID, guestID)
		if err != nil {
			return &lmo.IOError{Op: "update match", Err: err}
		}
	}

	if _, err := tx.Exec(ctx, `SELECT pg_notify('league_changed', $1)`, file); err != nil {
		return &lmo.IOError{Op: "notify league change", Err: err}
	}
	if err := tx.Commit(ctx); err != nil {
		return &lmo.IOError{Op: "commit matchday tx", Err: err}
	}
	return nil
}
