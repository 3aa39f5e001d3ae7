package store

import (
	"context"
	"fmt"

	"github.com/nordliga/liga-data/internal/lmo"
)

// H2HSide is one team's aggregate over all meetings.
type H2HSide struct {
	TeamID       int    `json:"id"`
	Name         string `json:"name"`
	Won          int    `json:"won"`
	Draw         int    `json:"draw"`
	Lost         int    `json:"lost"`
	GoalsFor     int    `json:"goals_for"`
	GoalsAgainst int    `json:"goals_against"`
}

// HeadToHead is the full comparison of two teams within one league.
type HeadToHead struct {
	Team1   H2HSide     `json:"team1"`
	Team2   H2HSide     `json:"team2"`
	Matches []ViewMatch `json:"matches"`
}

// HeadToHead collects every meeting of two teams (either venue) newest
// round first, with per-side aggregates over the played ones.
func (s *Store) HeadToHead(ctx context.Context, file string, team1, team2 int) (*HeadToHead, error) {
	if team1 <= 0 || team2 <= 0 || team1 == team2 {
		return nil, &lmo.ValidationError{Msg: "two distinct team ids required"}
	}
	leagueID, err := s.leagueIDByFile(ctx, file)
	if err != nil {
		return nil, err
	}

	h2h := &HeadToHead{
		Team1: H2HSide{TeamID: team1},
		Team2: H2HSide{TeamID: team2},
	}
	found := 0
	nameRows, err := s.pool.Query(ctx,
		`SELECT external_id, name FROM teams WHERE league_id = $1 AND external_id IN ($2, $3)`,
		leagueID, team1, team2)
	if err != nil {
		return nil, &lmo.IOError{Op: "load teams", Err: err}
	}
	for nameRows.Next() {
		var (
			extID int
			name  string
		)
		if err := nameRows.Scan(&extID, &name); err != nil {
			nameRows.Close()
			return nil, &lmo.IOError{Op: "scan team", Err: err}
		}
		found++
		if extID == team1 {
			h2h.Team1.Name = name
		} else {
			h2h.Team2.Name = name
		}
	}
	nameRows.Close()
	if err := nameRows.Err(); err != nil {
		return nil, &lmo.IOError{Op: "load teams", Err: err}
	}
	if found < 2 {
		return nil, &lmo.NotFoundError{What: fmt.Sprintf("teams %d/%d in league %s", team1, team2, file)}
	}

	rows, err := s.pool.Query(ctx, `
		SELECT m.id, m.round_nr,
			ht.external_id, gt.external_id, ht.name, gt.name,
			m.home_goals, m.guest_goals,
			m.match_date, m.match_time, m.match_note, m.report_url
		FROM matches m
		JOIN teams ht ON m.home_team_id = ht.id
		JOIN teams gt ON m.guest_team_id = gt.id
		WHERE m.league_id = $1
			AND ((ht.external_id = $2 AND gt.external_id = $3)
				OR (ht.external_id = $3 AND gt.external_id = $2))
		ORDER BY m.round_nr DESC`,
		leagueID, team1, team2)
	if err != nil {
		return nil, &lmo.IOError{Op: "load head-to-head", Err: err}
	}
	defer rows.Close()

	for rows.Next() {
		var (
			m     ViewMatch
			round int
		)
		err := rows.Scan(&m.ID, &round,
			&m.HomeID, &m.GuestID, &m.Home, &m.Guest,
			&m.HomeGoals, &m.GuestGoals,
			&m.Date, &m.Time, &m.Note, &m.ReportURL)
		if err != nil {
			return nil, &lmo.IOError{Op: "scan head-to-head", Err: err}
		}
		m.Played = m.HomeGoals != nil && m.GuestGoals != nil &&
			*m.HomeGoals >= 0 && *m.GuestGoals >= 0
		if !m.Played {
			m.HomeGoals, m.GuestGoals = nil, nil
		}
		h2h.Matches = append(h2h.Matches, m)

		if m.Played {
			creditH2H(&h2h.Team1, &h2h.Team2, m)
		}
	}
	return h2h, rows.Err()
}

func creditH2H(t1, t2 *H2HSide, m ViewMatch) {
	hg, gg := *m.HomeGoals, *m.GuestGoals
	homeSide, guestSide := t1, t2
	if m.HomeID == t2.TeamID {
		homeSide, guestSide = t2, t1
	}
	homeSide.GoalsFor += hg
	homeSide.GoalsAgainst += gg
	guestSide.GoalsFor += gg
	guestSide.GoalsAgainst += hg
	switch {
	case hg > gg:
		homeSide.Won++
		guestSide.Lost++
	case hg == gg:
		homeSide.Draw++
		guestSide.Draw++
	default:
		homeSide.Lost++
		guestSide.Won++
	}
}
