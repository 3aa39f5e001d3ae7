// Package standings folds match results and manual point corrections into
// a ranked league table. Compute is a pure function: same matches and
// corrections in, same ordering out, every time.
package standings

import (
	"sort"

	"github.com/nordliga/liga-data/internal/lmo"
)

// Correction is an administrator-entered point adjustment for one team,
// keyed by the team's external ID.
type Correction struct {
	TeamID int
	Points int
	Reason string
}

// Row is one team's aggregated record. Derived, never persisted.
type Row struct {
	TeamID           int    `json:"id"`
	Name             string `json:"name"`
	Played           int    `json:"played"`
	Won              int    `json:"won"`
	Draw             int    `json:"draw"`
	Lost             int    `json:"lost"`
	GoalsFor         int    `json:"goals_for"`
	GoalsAgainst     int    `json:"goals_against"`
	Diff             int    `json:"diff"`
	Points           int    `json:"points"`
	Correction       int    `json:"correction"`
	CorrectionReason string `json:"correction_reason,omitempty"`
}

// Compute builds the ranked table for teams from all played matches, then
// applies corrections to points only. Sorting is descending by points,
// goal difference, goals for — and stable, so teams equal on all three
// keys keep their input order. Matches referencing unknown team IDs
// simply do not contribute; there is no error path.
func Compute(teams []lmo.Team, rounds map[int][]lmo.Match, corrections []Correction) []Row {
	rows := make([]Row, len(teams))
	index := make(map[int]int, len(teams))
	for i, t := range teams {
		rows[i] = Row{TeamID: t.ID, Name: t.Name}
		index[t.ID] = i
	}

	roundNrs := make([]int, 0, len(rounds))
	for nr := range rounds {
		roundNrs = append(roundNrs, nr)
	}
	sort.Ints(roundNrs)

	for _, nr := range roundNrs {
		for _, m := range rounds[nr] {
			if !m.Played || m.HomeGoals == nil || m.GuestGoals == nil {
				continue
			}
			hg, gg := *m.HomeGoals, *m.GuestGoals
			if i, ok := index[m.HomeID]; ok {
				credit(&rows[i], hg, gg)
			}
			if i, ok := index[m.GuestID]; ok {
				credit(&rows[i], gg, hg)
			}
		}
	}

	for i := range rows {
		rows[i].Diff = rows[i].GoalsFor - rows[i].GoalsAgainst
	}
	for _, c := range corrections {
		if i, ok := index[c.TeamID]; ok {
			rows[i].Points += c.Points
			rows[i].Correction = c.Points
			rows[i].CorrectionReason = c.Reason
		}
	}

	sort.SliceStable(rows, func(a, b int) bool {
		if rows[a].Points != rows[b].Points {
			return rows[a].Points > rows[b].Points
		}
		if rows[a].Diff != rows[b].Diff {
			return rows[a].Diff > rows[b].Diff
		}
		return rows[a].GoalsFor > rows[b].GoalsFor
	})
	return rows
}

func credit(r *Row, scored, conceded int) {
	r.Played++
	r.GoalsFor += scored
	r.GoalsAgainst += conceded
	switch {
	case scored > conceded:
		r.Won++
		r.Points += 3
	case scored == conceded:
		r.Draw++
		r.Points++
	default:
		r.Lost++
	}
}
