// Package correlate heuristically links news articles to the matches they
// report on. No foreign key exists between the legacy news corpus and the
// schedule, so linking is best effort: date-window search plus team-name
// containment, with a confidence score in [0,1].
//
// Two strategies exist and intentionally disagree:
//
//   - Bulk: day-number window of ±5 days around the article, confidence
//     decays 0.15 per day, floor 0.5, reduced to one article per match.
//   - AdHoc: partial-credit scoring per team name on the match day and the
//     two following days, threshold 0.4, several articles per match allowed.
//
// Both are pure transforms over in-memory data; persistence replaces all
// prior links for the processed scope, so a rerun is idempotent.
package correlate

import (
	"regexp"
	"strings"
	"time"
)

// Match is the slice of a schedule row the correlator needs.
type Match struct {
	ID    int64
	Date  string // "2006-01-02", empty when unscheduled
	Home  string
	Guest string
}

// Article is the slice of a news row the correlator needs.
type Article struct {
	ID           int64
	Title        string
	ShortContent string
	Content      string
	Timestamp    int64  // unix seconds, <= 0 when unknown
	MatchDate    string // "2006-01-02", empty when unknown
}

// Link associates one article with one match at a confidence.
type Link struct {
	MatchID    int64
	NewsID     int64
	Confidence float64
}

const (
	bulkWindowDays  = 5
	bulkDayPenalty  = 0.15
	bulkScoreBonus  = 0.15
	bulkFloor       = 0.5
	bulkBodyPrefix  = 2000
	adhocNameScore  = 0.4
	adhocShortScore = 0.2
	adhocDayBonus   = 0.1
	adhocThreshold  = 0.4
)

var scorelinePattern = regexp.MustCompile(`\d+\s*[:\-]\s*\d+`)

// Bulk scans every dated article against all matches within ±5 days and
// keeps, per article, only its best match; candidates under the 0.5 floor
// are dropped entirely. A final reduction keeps the single best article per
// match, so the output is 1:1. Articles with no usable date are skipped,
// never fatal.
func Bulk(matches []Match, news []Article) []Link {
	byDay := bucketMatchesByDay(matches)

	type candidate struct {
		matchID    int64
		confidence float64
	}
	best := map[int64]candidate{} // news ID -> best match
	newsOrder := make([]int64, 0, len(news))

	for _, n := range news {
		if n.Timestamp <= 0 {
			continue
		}
		search := strings.ToLower(n.Title + " " + prefix(n.Content, bulkBodyPrefix))
		day := n.Timestamp / 86400

		var bestMatch int64
		bestConf := 0.0
		for offset := -bulkWindowDays; offset <= bulkWindowDays; offset++ {
			for _, m := range byDay[day+int64(offset)] {
				if !strings.Contains(search, strings.ToLower(m.Home)) {
					continue
				}
				if !strings.Contains(search, strings.ToLower(m.Guest)) {
					continue
				}
				conf := 1.0 - float64(abs(offset))*bulkDayPenalty
				if scorelinePattern.MatchString(n.Title) {
					conf += bulkScoreBonus
				}
				if conf > bestConf {
					bestConf = conf
					bestMatch = m.ID
				}
			}
		}
		if bestMatch != 0 && bestConf >= bulkFloor {
			best[n.ID] = candidate{matchID: bestMatch, confidence: clamp(bestConf)}
			newsOrder = append(newsOrder, n.ID)
		}
	}

	// Several articles may claim the same match; keep the best one.
	perMatch := map[int64]Link{}
	matchOrder := make([]int64, 0, len(best))
	for _, newsID := range newsOrder {
		c := best[newsID]
		prev, seen := perMatch[c.matchID]
		if !seen {
			matchOrder = append(matchOrder, c.matchID)
		}
		if !seen || c.confidence > prev.Confidence {
			perMatch[c.matchID] = Link{MatchID: c.matchID, NewsID: newsID, Confidence: c.confidence}
		}
	}

	links := make([]Link, 0, len(perMatch))
	for _, matchID := range matchOrder {
		links = append(links, perMatch[matchID])
	}
	return links
}

// AdHoc is the re-linking pass: it walks matches instead of articles,
// checks the match day plus the two following days (reports usually appear
// a day later), and scores with partial credit per team name. Anything
// scoring at least 0.4 is kept — including several articles for the same
// match.
func AdHoc(matches []Match, news []Article) []Link {
	byDay := bucketNewsByDay(news)

	var links []Link
	for _, m := range matches {
		matchDay, ok := dayNumber(m.Date)
		if !ok {
			continue
		}
		home := strings.ToLower(m.Home)
		guest := strings.ToLower(m.Guest)
		homeShort := shortName(home)
		guestShort := shortName(guest)

		for offset := int64(0); offset <= 2; offset++ {
			for _, n := range byDay[matchDay+offset] {
				search := strings.ToLower(n.Title + " " + n.ShortContent)

				conf := 0.0
				if strings.Contains(search, home) {
					conf += adhocNameScore
				}
				if strings.Contains(search, guest) {
					conf += adhocNameScore
				}
				if len(homeShort) > 3 && strings.Contains(search, homeShort) {
					conf += adhocShortScore
				}
				if len(guestShort) > 3 && strings.Contains(search, guestShort) {
					conf += adhocShortScore
				}
				if conf < adhocThreshold {
					continue
				}
				if offset == 0 {
					conf += adhocDayBonus
				}
				links = append(links, Link{MatchID: m.ID, NewsID: n.ID, Confidence: clamp(conf)})
			}
		}
	}
	return links
}

// clubPrefixPattern strips the club-type prefix so "FC Musterstadt" can
// still match an article that only says "Musterstadt".
var clubPrefixPattern = regexp.MustCompile(`^(?i:fc|sv|sc|tsv|tus|vfb|vfl|1\.|fsv|hsv|\d+\.?\s*)`)

func shortName(name string) string {
	stripped := strings.TrimSpace(clubPrefixPattern.ReplaceAllString(name, ""))
	if i := strings.IndexByte(stripped, ' '); i >= 0 {
		return stripped[:i]
	}
	return stripped
}

func bucketMatchesByDay(matches []Match) map[int64][]Match {
	byDay := map[int64][]Match{}
	for _, m := range matches {
		if day, ok := dayNumber(m.Date); ok {
			byDay[day] = append(byDay[day], m)
		}
	}
	return byDay
}

func bucketNewsByDay(news []Article) map[int64][]Article {
	byDay := map[int64][]Article{}
	for _, n := range news {
		day, ok := dayNumber(n.MatchDate)
		if !ok && n.Timestamp > 0 {
			day, ok = n.Timestamp/86400, true
		}
		if ok {
			byDay[day] = append(byDay[day], n)
		}
	}
	return byDay
}

// dayNumber converts an ISO date to days since the unix epoch.
func dayNumber(date string) (int64, bool) {
	if date == "" {
		return 0, false
	}
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0, false
	}
	return t.Unix() / 86400, true
}

func prefix(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func clamp(conf float64) float64 {
	if conf > 1.0 {
		return 1.0
	}
	if conf < 0 {
		return 0
	}
	return conf
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
