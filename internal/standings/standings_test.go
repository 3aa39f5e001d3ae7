package standings

import (
	"reflect"
	"testing"

	"github.com/nordliga/liga-data/internal/lmo"
)

func intp(n int) *int { return &n }

func played(home, guest, hg, gg int) lmo.Match {
	return lmo.Match{
		HomeID: home, GuestID: guest,
		HomeGoals: intp(hg), GuestGoals: intp(gg),
		Played: true,
	}
}

var twoTeams = []lmo.Team{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}

func TestComputeSingleResult(t *testing.T) {
	rows := Compute(twoTeams, map[int][]lmo.Match{
		1: {played(1, 2, 2, 1)},
	}, nil)

	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	a, b := rows[0], rows[1]
	if a.Name != "A" || a.Played != 1 || a.Points != 3 || a.Diff != 1 || a.Won != 1 {
		t.Errorf("winner row = %+v", a)
	}
	if b.Name != "B" || b.Played != 1 || b.Points != 0 || b.Diff != -1 || b.Lost != 1 {
		t.Errorf("loser row = %+v", b)
	}
}

func TestComputeDraw(t *testing.T) {
	rows := Compute(twoTeams, map[int][]lmo.Match{
		1: {played(1, 2, 1, 1)},
	}, nil)
	for _, r := range rows {
		if r.Points != 1 || r.Draw != 1 || r.Diff != 0 {
			t.Errorf("draw row = %+v", r)
		}
	}
}

func TestCorrectionAffectsPointsOnly(t *testing.T) {
	// A beat B 2-1, then A loses 3 points by decree. Points level at 0,
	// but goal difference still favors A, so A stays first.
	rows := Compute(twoTeams, map[int][]lmo.Match{
		1: {played(1, 2, 2, 1)},
	}, []Correction{{TeamID: 1, Points: -3, Reason: "Nichtantritt"}})

	a := rows[0]
	if a.Name != "A" {
		t.Fatalf("first row = %q, want A (diff decides the tie)", a.Name)
	}
	if a.Points != 0 || a.Correction != -3 || a.CorrectionReason != "Nichtantritt" {
		t.Errorf("corrected row = %+v", a)
	}
	if a.Diff != 1 || a.Won != 1 {
		t.Error("correction must not touch diff or win count")
	}
}

func TestCorrectionReorders(t *testing.T) {
	// Make the correction big enough to overcome the points lead.
	rows := Compute(twoTeams, map[int][]lmo.Match{
		1: {played(1, 2, 2, 1)},
	}, []Correction{{TeamID: 1, Points: -6}})

	if rows[0].Name != "B" {
		t.Errorf("first row = %q, want B after -6 correction", rows[0].Name)
	}
}

func TestCorrectionUnknownTeamIgnored(t *testing.T) {
	rows := Compute(twoTeams, nil, []Correction{{TeamID: 99, Points: 5}})
	for _, r := range rows {
		if r.Correction != 0 {
			t.Errorf("unknown-team correction leaked into row %+v", r)
		}
	}
}

func TestTieBreakCascade(t *testing.T) {
	teams := []lmo.Team{
		{ID: 1, Name: "A"}, {ID: 2, Name: "B"},
		{ID: 3, Name: "C"}, {ID: 4, Name: "D"},
	}
	// Results chosen so all four finish on 3 points:
	// A: won 3-0, lost 0-1  -> diff +2
	// B: won 2-0, lost 1-2  -> diff +1
	// C: won 2-1, lost 0-3  -> diff -2
	// D: won 1-0, lost 0-2  -> diff -1
	rounds := map[int][]lmo.Match{
		1: {played(1, 3, 3, 0), played(2, 4, 2, 0)},
		2: {played(3, 2, 2, 1), played(4, 1, 1, 0)},
	}
	rows := Compute(teams, rounds, nil)

	var order []string
	for _, r := range rows {
		order = append(order, r.Name)
	}
	want := []string{"A", "B", "D", "C"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestStabilityOnFullTie(t *testing.T) {
	teams := []lmo.Team{{ID: 5, Name: "X"}, {ID: 6, Name: "Y"}, {ID: 7, Name: "Z"}}
	rows := Compute(teams, nil, nil)

	for i, want := range []string{"X", "Y", "Z"} {
		if rows[i].Name != want {
			t.Errorf("row %d = %q, want %q (input order must survive a full tie)", i, rows[i].Name, want)
		}
	}
}

func TestPointsArithmetic(t *testing.T) {
	teams := []lmo.Team{
		{ID: 1, Name: "A"}, {ID: 2, Name: "B"},
		{ID: 3, Name: "C"}, {ID: 4, Name: "D"},
	}
	rounds := map[int][]lmo.Match{
		1: {played(1, 2, 2, 1), played(3, 4, 0, 0)},
		2: {played(1, 3, 1, 1), played(2, 4, 4, 0)},
		3: {played(1, 4, 0, 2)},
	}
	rows := Compute(teams, rounds, nil)

	total, decisive, drawn := 0, 0, 0
	for _, matches := range rounds {
		for _, m := range matches {
			if *m.HomeGoals == *m.GuestGoals {
				drawn++
			} else {
				decisive++
			}
		}
	}
	for _, r := range rows {
		total += r.Points
	}
	if want := 3*decisive + 2*drawn; total != want {
		t.Errorf("sum of points = %d, want %d", total, want)
	}
}

func TestUnplayedMatchesIgnored(t *testing.T) {
	rounds := map[int][]lmo.Match{
		1: {
			{HomeID: 1, GuestID: 2}, // no goals at all
			{HomeID: 2, GuestID: 1, HomeGoals: intp(3), GuestGoals: intp(0)}, // Played false
		},
	}
	rows := Compute(twoTeams, rounds, nil)
	for _, r := range rows {
		if r.Played != 0 || r.GoalsFor != 0 || r.Points != 0 {
			t.Errorf("unplayed match contributed: %+v", r)
		}
	}
}

func TestComputeDeterminism(t *testing.T) {
	teams := []lmo.Team{
		{ID: 1, Name: "A"}, {ID: 2, Name: "B"}, {ID: 3, Name: "C"},
	}
	rounds := map[int][]lmo.Match{
		1: {played(1, 2, 1, 0)},
		2: {played(2, 3, 2, 2)},
		3: {played(3, 1, 0, 1)},
	}
	corrections := []Correction{{TeamID: 2, Points: 1}}

	first := Compute(teams, rounds, corrections)
	for i := 0; i < 50; i++ {
		if got := Compute(teams, rounds, corrections); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differs from first run", i)
		}
	}
}

func TestMatchWithUnknownTeamSkipped(t *testing.T) {
	rounds := map[int][]lmo.Match{
		1: {played(1, 99, 5, 0)},
	}
	rows := Compute(twoTeams, rounds, nil)
	for _, r := range rows {
		if r.Name == "A" && (r.Played != 1 || r.GoalsFor != 5) {
			t.Errorf("known side must still be credited: %+v", r)
		}
		if r.Name == "B" && r.Played != 0 {
			t.Errorf("uninvolved team credited: %+v", r)
		}
	}
}
