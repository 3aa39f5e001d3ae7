package lmo

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"
)

// Encoder is the structural inverse of Parser: it renders a Schedule back
// into the sectioned key/value layout and the legacy ISO-8859-1 encoding.
type Encoder struct {
	Loc *time.Location
}

// Marshal renders s as ISO-8859-1 league-file bytes.
func (e *Encoder) Marshal(s *Schedule) []byte {
	return EncodeLatin1(string(marshalSections(e.File(s))))
}

// File builds the raw section AST for s. Values pass through sanitizeValue
// on marshal, so embedded newlines can never inject extra keys or sections.
func (e *Encoder) File(s *Schedule) *File {
	f := &File{}

	opts := f.AddSection("Options")
	opts.Set("Name", `"`+s.Options.Name+`"`)
	opts.Set("Rounds", strconv.Itoa(s.Options.Rounds))
	opts.Set("Matches", strconv.Itoa(s.Options.Matches))
	opts.Set("Actual", strconv.Itoa(s.Options.Actual))
	extraKeys := make([]string, 0, len(s.Options.Extra))
	for k := range s.Options.Extra {
		extraKeys = append(extraKeys, k)
	}
	sort.Strings(extraKeys)
	for _, k := range extraKeys {
		opts.Set(k, s.Options.Extra[k])
	}

	teams := f.AddSection("Teams")
	for _, t := range s.Teams {
		teams.Set(strconv.Itoa(t.ID), `"`+t.Name+`"`)
	}

	for round := 1; round <= s.Options.Rounds; round++ {
		matches, ok := s.Rounds[round]
		if !ok {
			continue
		}
		sec := f.AddSection(fmt.Sprintf("Round%d", round))
		for i, m := range matches {
			slot := i + 1
			sec.Set(fmt.Sprintf("TA%d", slot), strconv.Itoa(m.HomeID))
			sec.Set(fmt.Sprintf("TB%d", slot), strconv.Itoa(m.GuestID))
			hg, gg := unplayedGoals, unplayedGoals
			if m.Played && m.HomeGoals != nil && m.GuestGoals != nil {
				hg, gg = *m.HomeGoals, *m.GuestGoals
			}
			sec.Set(fmt.Sprintf("GA%d", slot), strconv.Itoa(hg))
			sec.Set(fmt.Sprintf("GB%d", slot), strconv.Itoa(gg))
			if ts := e.kickoffUnix(m); ts > 0 {
				sec.Set(fmt.Sprintf("AT%d", slot), strconv.FormatInt(ts, 10))
			}
			if m.Note != "" {
				sec.Set(fmt.Sprintf("NT%d", slot), m.Note)
			}
			if m.ReportURL != "" {
				sec.Set(fmt.Sprintf("BE%d", slot), m.ReportURL)
			}
		}
	}
	return f
}

func (e *Encoder) kickoffUnix(m Match) int64 {
	if m.Date == "" {
		return 0
	}
	clock := m.Time
	if clock == "" {
		clock = "00:00"
	}
	loc := e.Loc
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", m.Date+" "+clock, loc)
	if err != nil {
		return 0
	}
	return t.Unix()
}

// Writer persists schedules into the configured league directory and
// refuses anything that would land outside it.
type Writer struct {
	LeagueDir string
	Loc       *time.Location
}

// Save encodes s and writes it under the league directory. The name must be
// a bare, whitelisted league file name — path components or a foreign
// extension are rejected before any filesystem access.
func (w *Writer) Save(name string, s *Schedule) error {
	if name != filepath.Base(name) || !ValidFileName(name) {
		return &ValidationError{Msg: fmt.Sprintf("invalid league file name %q", name)}
	}
	enc := &Encoder{Loc: w.Loc}
	path := filepath.Join(w.LeagueDir, name)
	if err := os.WriteFile(path, enc.Marshal(s), 0o644); err != nil {
		return &IOError{Op: "write league file", Err: err}
	}
	return nil
}
