package correlate

import (
	"math"
	"testing"
	"time"
)

// day converts an epoch day number to the ISO date the correlator parses.
func day(n int64) string {
	return time.Unix(n*86400, 0).UTC().Format("2006-01-02")
}

func dayTS(n int64) int64 { return n*86400 + 3600 }

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

// --------------------------------------------------------------------------
// Bulk
// --------------------------------------------------------------------------

func TestBulkNextDayWithScoreline(t *testing.T) {
	matches := []Match{{ID: 1, Date: day(100), Home: "SV Ems", Guest: "SC Aue"}}
	news := []Article{{
		ID:        10,
		Title:     "SV Ems schlägt SC Aue 2:1",
		Timestamp: dayTS(101),
	}}

	links := Bulk(matches, news)
	if len(links) != 1 {
		t.Fatalf("got %d links, want 1", len(links))
	}
	// One day off (-0.15) plus the scoreline bonus (+0.15), clamped to 1.
	if !almostEqual(links[0].Confidence, 1.0) {
		t.Errorf("confidence = %v, want 1.0", links[0].Confidence)
	}
	if links[0].MatchID != 1 || links[0].NewsID != 10 {
		t.Errorf("link = %+v", links[0])
	}
}

func TestBulkConfidenceDecay(t *testing.T) {
	tests := []struct {
		name      string
		offset    int64
		scoreline bool
		want      float64 // 0 means dropped
	}{
		{"same day", 0, false, 1.0},
		{"three days off", 3, false, 0.55},
		{"four days off drops below floor", 4, false, 0},
		{"four days off rescued by scoreline", 4, true, 0.55},
		{"five days off with scoreline still under floor", 5, true, 0.4},
		{"outside the window entirely", 6, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title := "SV Ems gegen SC Aue"
			if tt.scoreline {
				title += " 3:2"
			}
			links := Bulk(
				[]Match{{ID: 1, Date: day(100), Home: "SV Ems", Guest: "SC Aue"}},
				[]Article{{ID: 10, Title: title, Timestamp: dayTS(100 + tt.offset)}},
			)
			if tt.want == 0 || tt.want < bulkFloor {
				if len(links) != 0 {
					t.Fatalf("got %d links, want none", len(links))
				}
				return
			}
			if len(links) != 1 {
				t.Fatalf("got %d links, want 1", len(links))
			}
			if !almostEqual(links[0].Confidence, tt.want) {
				t.Errorf("confidence = %v, want %v", links[0].Confidence, tt.want)
			}
		})
	}
}

func TestBulkRequiresBothNames(t *testing.T) {
	matches := []Match{{ID: 1, Date: day(100), Home: "SV Ems", Guest: "SC Aue"}}
	news := []Article{{ID: 10, Title: "SV Ems in Torlaune", Timestamp: dayTS(100)}}

	if links := Bulk(matches, news); len(links) != 0 {
		t.Errorf("one-sided mention produced links: %+v", links)
	}
}

func TestBulkFloorProperty(t *testing.T) {
	matches := []Match{{ID: 1, Date: day(100), Home: "SV Ems", Guest: "SC Aue"}}
	var news []Article
	for i := int64(-7); i <= 7; i++ {
		news = append(news, Article{
			ID:        100 + i,
			Title:     "SV Ems gegen SC Aue",
			Timestamp: dayTS(100 + i),
		})
	}
	for _, l := range Bulk(matches, news) {
		if l.Confidence < bulkFloor {
			t.Errorf("link retained below floor: %+v", l)
		}
	}
}

func TestBulkOneArticlePerMatch(t *testing.T) {
	matches := []Match{{ID: 1, Date: day(100), Home: "SV Ems", Guest: "SC Aue"}}
	news := []Article{
		{ID: 10, Title: "SV Ems gegen SC Aue", Timestamp: dayTS(102)},      // 0.70
		{ID: 11, Title: "SV Ems gegen SC Aue 1:0", Timestamp: dayTS(100)}, // 1.00
		{ID: 12, Title: "SV Ems gegen SC Aue", Timestamp: dayTS(101)},     // 0.85
	}

	links := Bulk(matches, news)
	if len(links) != 1 {
		t.Fatalf("got %d links, want exactly 1 per match", len(links))
	}
	if links[0].NewsID != 11 {
		t.Errorf("kept news %d, want the best-scoring article 11", links[0].NewsID)
	}
}

func TestBulkOneMatchPerArticle(t *testing.T) {
	// The same derby text matches both legs; the closer one must win.
	matches := []Match{
		{ID: 1, Date: day(100), Home: "SV Ems", Guest: "SC Aue"},
		{ID: 2, Date: day(103), Home: "SC Aue", Guest: "SV Ems"},
	}
	news := []Article{{ID: 10, Title: "Derby SV Ems gegen SC Aue", Timestamp: dayTS(103)}}

	links := Bulk(matches, news)
	if len(links) != 1 {
		t.Fatalf("got %d links, want 1", len(links))
	}
	if links[0].MatchID != 2 {
		t.Errorf("linked match %d, want the same-day match 2", links[0].MatchID)
	}
}

func TestBulkSkipsUndatedInput(t *testing.T) {
	matches := []Match{
		{ID: 1, Date: "", Home: "SV Ems", Guest: "SC Aue"},
		{ID: 2, Date: day(100), Home: "SV Ems", Guest: "SC Aue"},
	}
	news := []Article{
		{ID: 10, Title: "SV Ems gegen SC Aue", Timestamp: 0},
		{ID: 11, Title: "SV Ems gegen SC Aue", Timestamp: dayTS(100)},
	}
	links := Bulk(matches, news)
	if len(links) != 1 || links[0].MatchID != 2 || links[0].NewsID != 11 {
		t.Errorf("links = %+v, want only the dated pair", links)
	}
}

func TestBulkSearchesBodyPrefix(t *testing.T) {
	body := "Spielbericht: SV Ems empfing SC Aue vor heimischem Publikum."
	matches := []Match{{ID: 1, Date: day(100), Home: "SV Ems", Guest: "SC Aue"}}
	news := []Article{{ID: 10, Title: "Spielbericht", Content: body, Timestamp: dayTS(100)}}

	if links := Bulk(matches, news); len(links) != 1 {
		t.Errorf("names in the body were not found: %+v", links)
	}
}

// --------------------------------------------------------------------------
// AdHoc
// --------------------------------------------------------------------------

func TestAdHocFullNamesWithDayBonus(t *testing.T) {
	matches := []Match{{ID: 1, Date: day(200), Home: "SV Ems", Guest: "SC Aue"}}
	news := []Article{{ID: 10, Title: "SV Ems besiegt SC Aue", MatchDate: day(200)}}

	links := AdHoc(matches, news)
	if len(links) != 1 {
		t.Fatalf("got %d links, want 1", len(links))
	}
	// 0.4 + 0.4 for the full names, +0.1 exact-day bonus. The short names
	// "ems" and "aue" are too short to add anything.
	if !almostEqual(links[0].Confidence, 0.9) {
		t.Errorf("confidence = %v, want 0.9", links[0].Confidence)
	}
}

func TestAdHocSingleNamePassesThreshold(t *testing.T) {
	matches := []Match{{ID: 1, Date: day(200), Home: "SV Ems", Guest: "SC Aue"}}
	news := []Article{{ID: 10, Title: "SV Ems verliert erneut", MatchDate: day(201)}}

	links := AdHoc(matches, news)
	if len(links) != 1 {
		t.Fatalf("got %d links, want 1", len(links))
	}
	// One full name, one day late: exactly the 0.4 threshold, no day bonus.
	if !almostEqual(links[0].Confidence, 0.4) {
		t.Errorf("confidence = %v, want 0.4", links[0].Confidence)
	}
}

func TestAdHocShortNameCredit(t *testing.T) {
	matches := []Match{{ID: 1, Date: day(200), Home: "SV Ems", Guest: "FC Musterstadt"}}
	news := []Article{{ID: 10, Title: "SV Ems zu Gast in Musterstadt", MatchDate: day(201)}}

	links := AdHoc(matches, news)
	if len(links) != 1 {
		t.Fatalf("got %d links, want 1", len(links))
	}
	// Full home name (0.4) plus the guest's club-prefix-stripped short
	// name (0.2); no day bonus at offset 1.
	if !almostEqual(links[0].Confidence, 0.6) {
		t.Errorf("confidence = %v, want 0.6", links[0].Confidence)
	}
}

func TestAdHocShortNameAloneBelowThreshold(t *testing.T) {
	matches := []Match{{ID: 1, Date: day(200), Home: "FC Musterstadt", Guest: "SV Ems"}}
	news := []Article{{ID: 10, Title: "Musterstadt feiert", MatchDate: day(200)}}

	if links := AdHoc(matches, news); len(links) != 0 {
		t.Errorf("short-name-only article linked: %+v", links)
	}
}

func TestAdHocWindow(t *testing.T) {
	matches := []Match{{ID: 1, Date: day(200), Home: "SV Ems", Guest: "SC Aue"}}
	tests := []struct {
		offset int64
		linked bool
	}{
		{-1, false}, // day before the match is never scanned
		{0, true},
		{1, true},
		{2, true},
		{3, false},
	}
	for _, tt := range tests {
		news := []Article{{ID: 10, Title: "SV Ems gegen SC Aue", MatchDate: day(200 + tt.offset)}}
		links := AdHoc(matches, news)
		if got := len(links) == 1; got != tt.linked {
			t.Errorf("offset %+d: linked=%v, want %v", tt.offset, got, tt.linked)
		}
	}
}

func TestAdHocAllowsSeveralArticlesPerMatch(t *testing.T) {
	matches := []Match{{ID: 1, Date: day(200), Home: "SV Ems", Guest: "SC Aue"}}
	news := []Article{
		{ID: 10, Title: "SV Ems gegen SC Aue: die Vorschau", MatchDate: day(200)},
		{ID: 11, Title: "SV Ems gegen SC Aue: der Bericht", MatchDate: day(201)},
	}

	links := AdHoc(matches, news)
	if len(links) != 2 {
		t.Errorf("got %d links, want 2 (many articles per match allowed)", len(links))
	}
}

func TestAdHocFallsBackToTimestampDay(t *testing.T) {
	matches := []Match{{ID: 1, Date: day(200), Home: "SV Ems", Guest: "SC Aue"}}
	news := []Article{{ID: 10, Title: "SV Ems gegen SC Aue", Timestamp: dayTS(201)}}

	if links := AdHoc(matches, news); len(links) != 1 {
		t.Errorf("article without MatchDate not bucketed by timestamp: %+v", links)
	}
}

func TestShortName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"fc musterstadt", "musterstadt"},
		{"sv ems", "ems"},
		{"1. fc kleinstadt", "fc"},
		{"borussia dortmund", "borussia"},
		{"altona", "altona"},
	}
	for _, tt := range tests {
		if got := shortName(tt.in); got != tt.want {
			t.Errorf("shortName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
