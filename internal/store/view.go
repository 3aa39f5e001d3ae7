package store

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/nordliga/liga-data/internal/lmo"
	"github.com/nordliga/liga-data/internal/standings"
)

// LeagueRef is one entry of the league list.
type LeagueRef struct {
	File string `json:"file"`
	Name string `json:"name"`
}

// TeamInfo is a team as published in the view, keyed by external ID.
type TeamInfo struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ViewMatch is one match entry of the published view.
type ViewMatch struct {
	ID         int64   `json:"id"`
	HomeID     int     `json:"home_id"`
	GuestID    int     `json:"guest_id"`
	Home       string  `json:"home"`
	Guest      string  `json:"guest"`
	HomeGoals  *int    `json:"home_goals"`
	GuestGoals *int    `json:"guest_goals"`
	Played     bool    `json:"played"`
	Date       *string `json:"date"`
	Time       *string `json:"time"`
	Note       *string `json:"match_note"`
	ReportURL  *string `json:"report_url"`
	HasNews    bool    `json:"has_news"`
	NewsID     *int64  `json:"news_id,omitempty"`
}

// View is the full published league view: schedule plus the table computed
// fresh from the persisted rows on every call.
type View struct {
	LeagueID int64               `json:"league_id"`
	Options  map[string]string   `json:"options"`
	Teams    map[int]TeamInfo    `json:"teams"`
	Matches  map[int][]ViewMatch `json:"matches"`
	Table    []standings.Row     `json:"table"`
}

// Report URLs of the form fullnews.php?id=N are legacy inline news links;
// they surface as news annotations instead of raw URLs.
var legacyNewsLinkPattern = regexp.MustCompile(`fullnews\.php\?id=(\d+)`)

// FullView joins the persisted rows back into the decoder's output shape,
// recomputes the standings with live point corrections, and overlays
// has_news/news_id annotations from the current match_news set. The table
// is never read from storage — it is a pure function of matches and
// corrections.
func (s *Store) FullView(ctx context.Context, file string) (*View, error) {
	var (
		leagueID int64
		name     string
		optsRaw  []byte
	)
	err := s.pool.QueryRow(ctx, "league_by_file", file).Scan(&leagueID, &file, &name, &optsRaw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &lmo.NotFoundError{What: "league " + file}
	}
	if err != nil {
		return nil, &lmo.IOError{Op: "load league", Err: err}
	}

	options := map[string]string{}
	if len(optsRaw) > 0 {
		if err := json.Unmarshal(optsRaw, &options); err != nil {
			return nil, &lmo.FormatError{Msg: "stored league options are not valid JSON"}
		}
	}

	teams, teamList, err := s.loadTeams(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	matchesByRound, roundsForTable, err := s.loadMatches(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	if err := s.overlayNews(ctx, leagueID, matchesByRound); err != nil {
		return nil, err
	}
	corrections, err := s.loadCorrections(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	return &View{
		LeagueID: leagueID,
		Options:  options,
		Teams:    teams,
		Matches:  matchesByRound,
		Table:    standings.Compute(teamList, roundsForTable, corrections),
	}, nil
}

// Leagues lists all imported leagues ordered by display name.
func (s *Store) Leagues(ctx context.Context) ([]LeagueRef, error) {
	rows, err := s.pool.Query(ctx, "league_list")
	if err != nil {
		return nil, &lmo.IOError{Op: "list leagues", Err: err}
	}
	defer rows.Close()

	var refs []LeagueRef
	for rows.Next() {
		var ref LeagueRef
		if err := rows.Scan(&ref.File, &ref.Name); err != nil {
			return nil, &lmo.IOError{Op: "scan league", Err: err}
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

func (s *Store) loadTeams(ctx context.Context, leagueID int64) (map[int]TeamInfo, []lmo.Team, error) {
	rows, err := s.pool.Query(ctx, "teams_by_league", leagueID)
	if err != nil {
		return nil, nil, &lmo.IOError{Op: "load teams", Err: err}
	}
	defer rows.Close()

	out := map[int]TeamInfo{}
	var list []lmo.Team
	for rows.Next() {
		var (
			id    int64
			extID int
			name  string
		)
		if err := rows.Scan(&id, &extID, &name); err != nil {
			return nil, nil, &lmo.IOError{Op: "scan team", Err: err}
		}
		out[extID] = TeamInfo{ID: extID, Name: name}
		list = append(list, lmo.Team{ID: extID, Name: name})
	}
	return out, list, rows.Err()
}

func (s *Store) loadMatches(ctx context.Context, leagueID int64) (map[int][]ViewMatch, map[int][]lmo.Match, error) {
	rows, err := s.pool.Query(ctx, "matches_by_league", leagueID)
	if err != nil {
		return nil, nil, &lmo.IOError{Op: "load matches", Err: err}
	}
	defer rows.Close()

	view := map[int][]ViewMatch{}
	table := map[int][]lmo.Match{}
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
			return nil, nil, &lmo.IOError{Op: "scan match", Err: err}
		}

		// Played iff both goals are present and non-negative; anything
		// else is a pending fixture and publishes null goals.
		m.Played = m.HomeGoals != nil && m.GuestGoals != nil &&
			*m.HomeGoals >= 0 && *m.GuestGoals >= 0
		if !m.Played {
			m.HomeGoals, m.GuestGoals = nil, nil
		}

		if m.ReportURL != nil {
			if link := legacyNewsLinkPattern.FindStringSubmatch(*m.ReportURL); link != nil {
				if newsID, err := strconv.ParseInt(link[1], 10, 64); err == nil {
					m.HasNews = true
					m.NewsID = &newsID
					m.ReportURL = nil
				}
			}
		}

		view[round] = append(view[round], m)

		tm := lmo.Match{
			HomeID:     m.HomeID,
			GuestID:    m.GuestID,
			Home:       m.Home,
			Guest:      m.Guest,
			Played:     m.Played,
			HomeGoals:  m.HomeGoals,
			GuestGoals: m.GuestGoals,
		}
		table[round] = append(table[round], tm)
	}
	return view, table, rows.Err()
}

func (s *Store) overlayNews(ctx context.Context, leagueID int64, matches map[int][]ViewMatch) error {
	rows, err := s.pool.Query(ctx, "match_news_by_league", leagueID)
	if err != nil {
		return &lmo.IOError{Op: "load match news", Err: err}
	}
	defer rows.Close()

	links := map[int64]int64{} // match ID -> news ID
	for rows.Next() {
		var matchID, newsID int64
		if err := rows.Scan(&matchID, &newsID); err != nil {
			return &lmo.IOError{Op: "scan match news", Err: err}
		}
		links[matchID] = newsID
	}
	if err := rows.Err(); err != nil {
		return &lmo.IOError{Op: "load match news", Err: err}
	}

	for round := range matches {
		for i := range matches[round] {
			if newsID, ok := links[matches[round][i].ID]; ok {
				matches[round][i].HasNews = true
				id := newsID
				matches[round][i].NewsID = &id
			}
		}
	}
	return nil
}

func (s *Store) loadCorrections(ctx context.Context, leagueID int64) ([]standings.Correction, error) {
	rows, err := s.pool.Query(ctx, "corrections_by_league", leagueID)
	if err != nil {
		return nil, &lmo.IOError{Op: "load corrections", Err: err}
	}
	defer rows.Close()

	var out []standings.Correction
	for rows.Next() {
		var (
			id     int64
			teamID int64
			extID  int
			name   string
			points int
			reason *string
		)
		if err := rows.Scan(&id, &teamID, &extID, &name, &points, &reason); err != nil {
			return nil, &lmo.IOError{Op: "scan correction", Err: err}
		}
		c := standings.Correction{TeamID: extID, Points: points}
		if reason != nil {
			c.Reason = *reason
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
