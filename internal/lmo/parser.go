package lmo

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const unplayedGoals = -1 // on-disk sentinel for "not yet played"

// Parser decodes raw league-file bytes into a Schedule. The zero value is
// usable; Loc controls how kickoff timestamps are split into date and time
// (nil means time.Local).
type Parser struct {
	Loc *time.Location
}

// ParseFile reads and decodes one league file from dir. The name must pass
// ValidFileName; the file's absence is a NotFoundError, any other read
// failure an IOError.
func (p *Parser) ParseFile(dir, name string) (*Schedule, error) {
	if !ValidFileName(name) {
		return nil, &ValidationError{Msg: fmt.Sprintf("invalid league file name %q", name)}
	}
	path := filepath.Join(dir, filepath.Base(name))
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{What: "league file " + name}
		}
		return nil, &IOError{Op: "read league file", Err: err}
	}
	return p.Parse(raw)
}

// Parse decodes raw ISO-8859-1 bytes. It is a pure function of its input:
// a malformed section aborts the whole file, there is no partial recovery.
func (p *Parser) Parse(raw []byte) (*Schedule, error) {
	f, err := parseSections(DecodeLatin1(raw))
	if err != nil {
		return nil, err
	}
	return p.project(f)
}

// project is the second stage: raw sections to typed domain records.
func (p *Parser) project(f *File) (*Schedule, error) {
	s := &Schedule{Rounds: map[int][]Match{}}

	if err := p.projectOptions(f, s); err != nil {
		return nil, err
	}
	if err := p.projectTeams(f, s); err != nil {
		return nil, err
	}
	for round := 1; round <= s.Options.Rounds; round++ {
		sec := f.Section(fmt.Sprintf("Round%d", round))
		if sec == nil {
			continue
		}
		matches, err := p.projectRound(sec, s)
		if err != nil {
			return nil, err
		}
		s.Rounds[round] = matches
	}
	return s, nil
}

func (p *Parser) projectOptions(f *File, s *Schedule) error {
	sec := f.Section("Options")
	if sec == nil {
		return nil
	}
	for _, kv := range sec.Keys {
		switch kv.Key {
		case "Name":
			s.Options.Name = strings.Trim(kv.Value, `"`)
		case "Rounds":
			n, err := requireInt(sec.Name, kv.Key, kv.Value)
			if err != nil {
				return err
			}
			s.Options.Rounds = n
		case "Matches":
			n, err := requireInt(sec.Name, kv.Key, kv.Value)
			if err != nil {
				return err
			}
			s.Options.Matches = n
		case "Actual":
			n, err := requireInt(sec.Name, kv.Key, kv.Value)
			if err != nil {
				return err
			}
			s.Options.Actual = n
		default:
			if s.Options.Extra == nil {
				s.Options.Extra = map[string]string{}
			}
			s.Options.Extra[kv.Key] = kv.Value
		}
	}
	if s.Options.Rounds < 0 {
		return &ValidationError{Msg: "Options.Rounds is negative"}
	}
	if s.Options.Matches == 0 {
		s.Options.Matches = 10 // historical default of the format
	}
	return nil
}

func (p *Parser) projectTeams(f *File, s *Schedule) error {
	sec := f.Section("Teams")
	if sec == nil {
		return nil
	}
	for _, kv := range sec.Keys {
		id, err := strconv.Atoi(kv.Key)
		if err != nil {
			continue // non-numeric keys are format noise, not teams
		}
		s.Teams = append(s.Teams, Team{ID: id, Name: strings.Trim(kv.Value, `"`)})
	}
	return nil
}

// projectRound walks slots 1..Matches. A slot is a match iff it has both
// team-index keys. Goals default to the -1 sentinel; a match is played iff
// both goals are non-negative.
func (p *Parser) projectRound(sec *Section, s *Schedule) ([]Match, error) {
	var matches []Match
	for slot := 1; slot <= s.Options.Matches; slot++ {
		ta, okA := sec.Get(fmt.Sprintf("TA%d", slot))
		tb, okB := sec.Get(fmt.Sprintf("TB%d", slot))
		if !okA || !okB {
			continue
		}
		homeID, err := requireInt(sec.Name, fmt.Sprintf("TA%d", slot), ta)
		if err != nil {
			return nil, err
		}
		guestID, err := requireInt(sec.Name, fmt.Sprintf("TB%d", slot), tb)
		if err != nil {
			return nil, err
		}
		if homeID < 0 || guestID < 0 {
			return nil, &ValidationError{Msg: fmt.Sprintf("%s slot %d: negative team index", sec.Name, slot)}
		}
		if homeID == 0 || guestID == 0 {
			continue // unassigned slot (bye)
		}
		if homeID == guestID {
			return nil, &ValidationError{Msg: fmt.Sprintf("%s slot %d: team %d plays itself", sec.Name, slot, homeID)}
		}

		hg, err := optionalInt(sec, fmt.Sprintf("GA%d", slot), unplayedGoals)
		if err != nil {
			return nil, err
		}
		gg, err := optionalInt(sec, fmt.Sprintf("GB%d", slot), unplayedGoals)
		if err != nil {
			return nil, err
		}

		m := Match{
			HomeID:  homeID,
			GuestID: guestID,
			Home:    s.TeamName(homeID),
			Guest:   s.TeamName(guestID),
			Played:  hg >= 0 && gg >= 0,
		}
		if m.Played {
			m.HomeGoals, m.GuestGoals = &hg, &gg
		}

		if at, ok := sec.Get(fmt.Sprintf("AT%d", slot)); ok {
			ts, err := requireInt(sec.Name, fmt.Sprintf("AT%d", slot), at)
			if err != nil {
				return nil, err
			}
			if ts > 0 {
				loc := p.Loc
				if loc == nil {
					loc = time.Local
				}
				kickoff := time.Unix(int64(ts), 0).In(loc)
				m.Date = kickoff.Format("2006-01-02")
				m.Time = kickoff.Format("15:04")
			}
		}
		if nt, ok := sec.Get(fmt.Sprintf("NT%d", slot)); ok {
			m.Note = nt
		}
		if be, ok := sec.Get(fmt.Sprintf("BE%d", slot)); ok {
			m.ReportURL = be
		}
		matches = append(matches, m)
	}
	return matches, nil
}

func requireInt(section, key, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, &FormatError{Msg: fmt.Sprintf("%s.%s: %q is not numeric", section, key, value)}
	}
	return n, nil
}

func optionalInt(sec *Section, key string, fallback int) (int, error) {
	v, ok := sec.Get(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback, nil
	}
	return requireInt(sec.Name, key, v)
}

func placeholderName(id int) string {
	return fmt.Sprintf("Team %d", id)
}
