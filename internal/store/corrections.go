package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/nordliga/liga-data/internal/lmo"
)

// CorrectionRow is one stored point correction with its team resolved.
type CorrectionRow struct {
	ID       int64  `json:"id"`
	TeamID   int64  `json:"team_id"`
	TeamName string `json:"team_name"`
	Points   int    `json:"points"`
	Reason   string `json:"reason,omitempty"`
}

// TeamChoice is a team offered for correction editing.
type TeamChoice struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Corrections returns a league's corrections plus its full team list (the
// admin UI needs both). Corrections never touch match rows; they are read
// again at standings time.
func (s *Store) Corrections(ctx context.Context, file string) ([]CorrectionRow, []TeamChoice, error) {
	leagueID, err := s.leagueIDByFile(ctx, file)
	if err != nil {
		return nil, nil, err
	}

	rows, err := s.pool.Query(ctx, "corrections_by_league", leagueID)
	if err != nil {
		return nil, nil, &lmo.IOError{Op: "load corrections", Err: err}
	}
	defer rows.Close()

	var corrections []CorrectionRow
	for rows.Next() {
		var (
			row    CorrectionRow
			extID  int
			reason *string
		)
		if err := rows.Scan(&row.ID, &row.TeamID, &extID, &row.TeamName, &row.Points, &reason); err != nil {
			return nil, nil, &lmo.IOError{Op: "scan correction", Err: err}
		}
		if reason != nil {
			row.Reason = *reason
		}
		corrections = append(corrections, row)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, &lmo.IOError{Op: "load corrections", Err: err}
	}

	teamRows, err := s.pool.Query(ctx,
		`SELECT id, name FROM teams WHERE league_id = $1 ORDER BY name`, leagueID)
	if err != nil {
		return nil, nil, &lmo.IOError{Op: "load teams", Err: err}
	}
	defer teamRows.Close()

	var teams []TeamChoice
	for teamRows.Next() {
		var t TeamChoice
		if err := teamRows.Scan(&t.ID, &t.Name); err != nil {
			return nil, nil, &lmo.IOError{Op: "scan team", Err: err}
		}
		teams = append(teams, t)
	}
	return corrections, teams, teamRows.Err()
}

// UpsertCorrection saves or replaces the single correction for
// (league, team). A correction for a team outside the league is a
// ValidationError.
func (s *Store) UpsertCorrection(ctx context.Context, file string, teamID int64, points int, reason string) error {
	leagueID, err := s.leagueIDByFile(ctx, file)
	if err != nil {
		return err
	}
	if err := s.requireTeamInLeague(ctx, leagueID, teamID); err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO point_corrections (league_id, team_id, points, reason)
		VALUES ($1, $2, $3, NULLIF($4, ''))
		ON CONFLICT (league_id, team_id) DO UPDATE
		SET points = EXCLUDED.points, reason = EXCLUDED.reason`,
		leagueID, teamID, points, reason)
	if err != nil {
		return &lmo.IOError{Op: "upsert correction", Err: err}
	}
	return nil
}

// DeleteCorrection removes a team's correction, if any.
func (s *Store) DeleteCorrection(ctx context.Context, file string, teamID int64) error {
	leagueID, err := s.leagueIDByFile(ctx, file)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx,
		`DELETE FROM point_corrections WHERE league_id = $1 AND team_id = $2`,
		leagueID, teamID)
	if err != nil {
		return &lmo.IOError{Op: "delete correction", Err: err}
	}
	return nil
}

func (s *Store) leagueIDByFile(ctx context.Context, file string) (int64, error) {
	var (
		id      int64
		name    string
		optsRaw []byte
	)
	err := s.pool.QueryRow(ctx, "league_by_file", file).Scan(&id, &file, &name, &optsRaw)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, &lmo.NotFoundError{What: "league " + file}
	}
	if err != nil {
		return 0, &lmo.IOError{Op: "load league", Err: err}
	}
	return id, nil
}

func (s *Store) requireTeamInLeague(ctx context.Context, leagueID, teamID int64) error {
	var n int
	err := s.pool.QueryRow(ctx,
		`SELECT 1 FROM teams WHERE id = $1 AND league_id = $2`, teamID, leagueID).Scan(&n)
	if errors.Is(err, pgx.ErrNoRows) {
		return &lmo.ValidationError{Msg: fmt.Sprintf("team %d does not belong to this league", teamID)}
	}
	if err != nil {
		return &lmo.IOError{Op: "check team", Err: err}
	}
	return nil
}
