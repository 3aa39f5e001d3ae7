package lmo

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func intp(n int) *int { return &n }

func sampleSchedule() *Schedule {
	return &Schedule{
		Options: Options{
			Name:    "Oberliga Nord",
			Rounds:  2,
			Matches: 2,
			Actual:  1,
			Extra:   map[string]string{"Modus": "Doppelrunde"},
		},
		Teams: []Team{
			{ID: 1, Name: "Grün-Weiß Köln"},
			{ID: 2, Name: "SV Musterstadt"},
			{ID: 3, Name: "FC Beispiel"},
			{ID: 4, Name: "TSV Probe"},
		},
		Rounds: map[int][]Match{
			1: {
				{
					HomeID: 1, GuestID: 2,
					Home: "Grün-Weiß Köln", Guest: "SV Musterstadt",
					HomeGoals: intp(2), GuestGoals: intp(1), Played: true,
					Date: "2023-09-30", Time: "14:00",
					Note:      "Nachholspiel",
					ReportURL: "https://example.org/bericht/1",
				},
				{
					HomeID: 3, GuestID: 4,
					Home: "FC Beispiel", Guest: "TSV Probe",
				},
			},
			2: {
				{
					HomeID: 2, GuestID: 1,
					Home: "SV Musterstadt", Guest: "Grün-Weiß Köln",
					HomeGoals: intp(0), GuestGoals: intp(0), Played: true,
				},
			},
		},
	}
}

func TestRoundTrip(t *testing.T) {
	want := sampleSchedule()
	enc := &Encoder{Loc: berlin}
	p := &Parser{Loc: berlin}

	got, err := p.Parse(enc.Marshal(want))
	if err != nil {
		t.Fatalf("Parse(Marshal(x)): %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch\ngot  %+v\nwant %+v", got, want)
	}
}

func TestRoundTripIsStable(t *testing.T) {
	enc := &Encoder{Loc: berlin}
	p := &Parser{Loc: berlin}

	first := enc.Marshal(sampleSchedule())
	reparsed, err := p.Parse(first)
	if err != nil {
		t.Fatal(err)
	}
	second := enc.Marshal(reparsed)
	if string(first) != string(second) {
		t.Errorf("second encode differs from first\nfirst:\n%s\nsecond:\n%s", first, second)
	}
}

func TestMarshalStripsNewlines(t *testing.T) {
	s := &Schedule{
		Options: Options{Name: "evil\n[Round99]\nTA1=1", Rounds: 1, Matches: 1},
		Rounds:  map[int][]Match{},
	}
	enc := &Encoder{Loc: berlin}
	out := DecodeLatin1(enc.Marshal(s))

	if strings.Contains(out, "[Round99]") {
		t.Error("value with newlines injected a section header")
	}
	p := &Parser{Loc: berlin}
	if _, err := p.Parse(enc.Marshal(s)); err != nil {
		t.Errorf("sanitized output must stay parseable: %v", err)
	}
}

func TestWriterSave(t *testing.T) {
	dir := t.TempDir()
	w := &Writer{LeagueDir: dir, Loc: berlin}
	s := sampleSchedule()

	if err := w.Save("liga.l98", s); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "liga.l98")); err != nil {
		t.Errorf("saved file missing: %v", err)
	}

	for _, bad := range []string{"../liga.l98", "sub/liga.l98", "liga.txt", ""} {
		if err := w.Save(bad, s); !IsValidation(err) {
			t.Errorf("Save(%q): got %v, want ValidationError", bad, err)
		}
	}
}

func TestWriterSaveLatin1(t *testing.T) {
	dir := t.TempDir()
	w := &Writer{LeagueDir: dir, Loc: berlin}
	if err := w.Save("liga.l98", sampleSchedule()); err != nil {
		t.Fatal(err)
	}
	raw, err := os.ReadFile(filepath.Join(dir, "liga.l98"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), "Gr\xfcn-Wei\xdf") {
		t.Error("on-disk bytes are not ISO-8859-1")
	}
}
