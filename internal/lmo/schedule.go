// Package lmo decodes and encodes the legacy LMO league-file format
// (`.l98`/`.lmo`): a sectioned key/value text file in ISO-8859-1 describing
// one league's teams and schedule. Decoding is staged — a raw section parse
// first, then projection into the typed records below — so format quirks
// never leak past this package.
package lmo

import "regexp"

// Options is the schedule metadata from the [Options] section.
type Options struct {
	Name    string
	Rounds  int
	Matches int // slots per round
	Actual  int // current round, display metadata only

	// Extra carries unrecognized [Options] keys through encode/decode
	// untouched.
	Extra map[string]string
}

// Team is one entry of the [Teams] section. ID is the external ordinal used
// inside the file; it is only unique per league.
type Team struct {
	ID   int
	Name string
}

// Match is one slot of a [RoundN] section that has both team indexes set.
// Goals are nil until the match has been played. Date ("2006-01-02") and
// Time ("15:04") are derived from the kickoff timestamp when present.
type Match struct {
	HomeID     int
	GuestID    int
	Home       string
	Guest      string
	HomeGoals  *int
	GuestGoals *int
	Played     bool
	Date       string
	Time       string
	Note       string
	ReportURL  string
}

// Schedule is the typed result of decoding one league file.
type Schedule struct {
	Options Options
	Teams   []Team        // ordered as listed in the file
	Rounds  map[int][]Match // round number -> matches
}

// TeamName resolves an external team ID to its display name, synthesizing
// a placeholder for indexes missing from the [Teams] section so a corrupt
// team table never fails the whole import.
func (s *Schedule) TeamName(id int) string {
	for _, t := range s.Teams {
		if t.ID == id {
			return t.Name
		}
	}
	return placeholderName(id)
}

var leagueFilePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+\.(l98|L98|lmo|LMO)$`)

// ValidFileName reports whether name is a safe league file name: no path
// components, a restricted character set, and a whitelisted extension.
// Everything reaching the filesystem goes through this check first.
func ValidFileName(name string) bool {
	return leagueFilePattern.MatchString(name)
}
