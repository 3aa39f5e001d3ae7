package lmo

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var berlin = mustLoadLocation("Europe/Berlin")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

func parseText(t *testing.T, text string) *Schedule {
	t.Helper()
	p := &Parser{Loc: berlin}
	s, err := p.Parse([]byte(text))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return s
}

func TestParseMinimalSchedule(t *testing.T) {
	s := parseText(t, `
[Options]
Name="Testliga"
Rounds=1
Matches=1
Actual=1

[Teams]
1="A"
2="B"

[Round1]
TA1=1
TB1=2
GA1=2
GB1=1
`)

	if s.Options.Name != "Testliga" {
		t.Errorf("Name = %q, want Testliga", s.Options.Name)
	}
	matches := s.Rounds[1]
	if len(matches) != 1 {
		t.Fatalf("round 1 has %d matches, want 1", len(matches))
	}
	m := matches[0]
	if !m.Played {
		t.Error("match should be played")
	}
	if m.Home != "A" || m.Guest != "B" {
		t.Errorf("names = %q vs %q, want A vs B", m.Home, m.Guest)
	}
	if *m.HomeGoals != 2 || *m.GuestGoals != 1 {
		t.Errorf("goals = %d:%d, want 2:1", *m.HomeGoals, *m.GuestGoals)
	}
}

func TestParseUnplayedMatch(t *testing.T) {
	s := parseText(t, `
[Options]
Rounds=1
Matches=1

[Teams]
1="A"
2="B"

[Round1]
TA1=1
TB1=2
GA1=-1
GB1=-1
`)
	m := s.Rounds[1][0]
	if m.Played {
		t.Error("match with -1 goals must not be played")
	}
	if m.HomeGoals != nil || m.GuestGoals != nil {
		t.Error("unplayed match must have nil goals")
	}
}

func TestParseMissingGoalKeysMeansUnplayed(t *testing.T) {
	s := parseText(t, `
[Options]
Rounds=1
Matches=1

[Round1]
TA1=1
TB1=2
`)
	if s.Rounds[1][0].Played {
		t.Error("match without goal keys must not be played")
	}
}

func TestParseMatchesDefault(t *testing.T) {
	s := parseText(t, `
[Options]
Rounds=1
`)
	if s.Options.Matches != 10 {
		t.Errorf("Matches = %d, want default 10", s.Options.Matches)
	}
}

func TestParsePlaceholderTeamName(t *testing.T) {
	s := parseText(t, `
[Options]
Rounds=1
Matches=1

[Teams]
1="A"

[Round1]
TA1=1
TB1=7
`)
	m := s.Rounds[1][0]
	if m.Guest != "Team 7" {
		t.Errorf("guest = %q, want placeholder Team 7", m.Guest)
	}
}

func TestParseByeSlotSkipped(t *testing.T) {
	s := parseText(t, `
[Options]
Rounds=1
Matches=2

[Teams]
1="A"
2="B"

[Round1]
TA1=0
TB1=0
TA2=1
TB2=2
`)
	if len(s.Rounds[1]) != 1 {
		t.Fatalf("got %d matches, want 1 (zero slot is a bye)", len(s.Rounds[1]))
	}
}

func TestParseKickoffSplit(t *testing.T) {
	// 2023-09-30 12:00 UTC is 14:00 in Berlin (CEST).
	s := parseText(t, `
[Options]
Rounds=1
Matches=1

[Round1]
TA1=1
TB1=2
AT1=1696075200
`)
	m := s.Rounds[1][0]
	if m.Date != "2023-09-30" {
		t.Errorf("date = %q, want 2023-09-30", m.Date)
	}
	if m.Time != "14:00" {
		t.Errorf("time = %q, want 14:00", m.Time)
	}
}

func TestParseZeroKickoffIgnored(t *testing.T) {
	s := parseText(t, `
[Options]
Rounds=1
Matches=1

[Round1]
TA1=1
TB1=2
AT1=0
`)
	m := s.Rounds[1][0]
	if m.Date != "" || m.Time != "" {
		t.Errorf("zero timestamp must leave date/time empty, got %q %q", m.Date, m.Time)
	}
}

func TestParseNoteAndReportURL(t *testing.T) {
	s := parseText(t, `
[Options]
Rounds=1
Matches=1

[Round1]
TA1=1
TB1=2
NT1=abgesagt
BE1=https://example.org/bericht/1
`)
	m := s.Rounds[1][0]
	if m.Note != "abgesagt" {
		t.Errorf("note = %q", m.Note)
	}
	if m.ReportURL != "https://example.org/bericht/1" {
		t.Errorf("report url = %q", m.ReportURL)
	}
}

func TestParseLatin1Transcoding(t *testing.T) {
	// "Grün-Weiß" in ISO-8859-1: ü = 0xFC, ß = 0xDF.
	raw := []byte("[Options]\nRounds=1\nMatches=1\n\n[Teams]\n1=\"Gr\xfcn-Wei\xdf\"\n")
	p := &Parser{Loc: berlin}
	s, err := p.Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := s.Teams[0].Name; got != "Grün-Weiß" {
		t.Errorf("team name = %q, want Grün-Weiß", got)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(error) bool
		kind  string
	}{
		{
			name:  "empty input",
			input: "",
			check: IsFormat,
			kind:  "FormatError",
		},
		{
			name:  "key before section",
			input: "Name=\"x\"\n[Options]\n",
			check: IsFormat,
			kind:  "FormatError",
		},
		{
			name:  "unterminated header",
			input: "[Options\nRounds=1\n",
			check: IsFormat,
			kind:  "FormatError",
		},
		{
			name:  "garbage line",
			input: "[Options]\nthis is not a pair\n",
			check: IsFormat,
			kind:  "FormatError",
		},
		{
			name:  "non-numeric rounds",
			input: "[Options]\nRounds=viele\n",
			check: IsFormat,
			kind:  "FormatError",
		},
		{
			name:  "negative rounds",
			input: "[Options]\nRounds=-2\n",
			check: IsValidation,
			kind:  "ValidationError",
		},
		{
			name:  "negative team index",
			input: "[Options]\nRounds=1\nMatches=1\n\n[Round1]\nTA1=-1\nTB1=2\n",
			check: IsValidation,
			kind:  "ValidationError",
		},
		{
			name:  "team plays itself",
			input: "[Options]\nRounds=1\nMatches=1\n\n[Round1]\nTA1=3\nTB1=3\n",
			check: IsValidation,
			kind:  "ValidationError",
		},
		{
			name:  "non-numeric goals",
			input: "[Options]\nRounds=1\nMatches=1\n\n[Round1]\nTA1=1\nTB1=2\nGA1=zwei\n",
			check: IsFormat,
			kind:  "FormatError",
		},
	}
	p := &Parser{Loc: berlin}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Parse([]byte(tt.input))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tt.check(err) {
				t.Errorf("error %v is not a %s", err, tt.kind)
			}
		})
	}
}

func TestParseCommentsAndBlanksIgnored(t *testing.T) {
	s := parseText(t, `
; generated by the league manager
# do not edit

[Options]
Rounds=1
`)
	if s.Options.Rounds != 1 {
		t.Errorf("Rounds = %d, want 1", s.Options.Rounds)
	}
}

func TestParseExtraOptionsPreserved(t *testing.T) {
	s := parseText(t, `
[Options]
Rounds=1
Modus=Doppelrunde
`)
	if got := s.Options.Extra["Modus"]; got != "Doppelrunde" {
		t.Errorf("Extra[Modus] = %q, want Doppelrunde", got)
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	content := "[Options]\nRounds=1\nMatches=1\n\n[Teams]\n1=\"A\"\n2=\"B\"\n"
	if err := os.WriteFile(filepath.Join(dir, "liga.l98"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	p := &Parser{Loc: berlin}

	if _, err := p.ParseFile(dir, "liga.l98"); err != nil {
		t.Errorf("ParseFile: %v", err)
	}
	if _, err := p.ParseFile(dir, "missing.l98"); !IsNotFound(err) {
		t.Errorf("missing file: got %v, want NotFoundError", err)
	}
	if _, err := p.ParseFile(dir, "../liga.l98"); !IsValidation(err) {
		t.Errorf("traversal name: got %v, want ValidationError", err)
	}
}

func TestValidFileName(t *testing.T) {
	tests := []struct {
		name string
		ok   bool
	}{
		{"oberliga2425.l98", true},
		{"liga.L98", true},
		{"liga.lmo", true},
		{"LIGA.LMO", true},
		{"kreis_b-nord.l98", true},
		{"", false},
		{"liga.txt", false},
		{"liga", false},
		{"../liga.l98", false},
		{"sub/liga.l98", false},
		{"liga .l98", false},
		{"liga;rm.l98", false},
	}
	for _, tt := range tests {
		if got := ValidFileName(tt.name); got != tt.ok {
			t.Errorf("ValidFileName(%q) = %v, want %v", tt.name, got, tt.ok)
		}
	}
}

func TestDecodeEncodeLatin1(t *testing.T) {
	for _, s := range []string{"", "plain ascii", "Grün-Weiß Köln", "Überzahl — fällt aus"} {
		// Every round trip through the legacy charset must be lossless for
		// characters the charset can carry.
		got := DecodeLatin1(EncodeLatin1(s))
		want := s
		if strings.ContainsRune(s, '—') {
			// Not representable in ISO-8859-1; substituted on encode.
			want = strings.ReplaceAll(s, "—", "?")
		}
		if got != want {
			t.Errorf("round trip of %q = %q, want %q", s, got, want)
		}
	}
}
