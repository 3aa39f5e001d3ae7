// Package news reads the legacy FusionNews article corpus: one
// `news.<id>.php` file per article, Windows-1252 encoded, fields separated
// by the "|<|" marker behind a PHP die-guard line.
package news

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/nordliga/liga-data/internal/lmo"
)

// Item is one imported article. MatchDate is the calendar day of the
// timestamp, used by the correlator.
type Item struct {
	ID           int64
	Title        string
	ShortContent string
	Content      string
	Author       string
	Email        string
	Timestamp    int64
	MatchDate    string // "2006-01-02", empty when the timestamp is unknown
}

var newsFilePattern = regexp.MustCompile(`^news\.(\d+)\.php$`)

// Reader loads articles from a news directory.
type Reader struct {
	Dir    string
	Logger *slog.Logger
}

// Load parses every news file in the directory, newest last. A single
// unparseable file is logged and skipped — isolated bad records are
// expected in a corpus this old and must not abort the batch.
func (r *Reader) Load() ([]Item, error) {
	entries, err := os.ReadDir(r.Dir)
	if err != nil {
		return nil, &lmo.IOError{Op: "read news directory", Err: err}
	}

	var items []Item
	for _, e := range entries {
		m := newsFilePattern.FindStringSubmatch(e.Name())
		if e.IsDir() || m == nil {
			continue
		}
		id, _ := strconv.ParseInt(m[1], 10, 64)
		item, err := r.parseFile(filepath.Join(r.Dir, e.Name()), id)
		if err != nil {
			if r.Logger != nil {
				r.Logger.Warn("Skipping news file", "file", e.Name(), "error", err)
			}
			continue
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

// Field layout behind the die-guard line:
// short|<|content|<|author|<|title|<|email|<|icon|<|timestamp|<|comments
func (r *Reader) parseFile(path string, id int64) (Item, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Item{}, &lmo.IOError{Op: "read news file", Err: err}
	}
	text := lmo.DecodeWindows1252(raw)

	_, data, found := strings.Cut(text, "\n")
	if !found {
		return Item{}, &lmo.FormatError{Msg: "missing data line"}
	}
	parts := strings.Split(data, "|<|")
	if len(parts) < 7 {
		return Item{}, &lmo.FormatError{Msg: fmt.Sprintf("expected 7+ fields, got %d", len(parts))}
	}

	ts, _ := strconv.ParseInt(strings.TrimSpace(parts[6]), 10, 64)
	item := Item{
		ID:           id,
		ShortContent: CleanContent(strings.TrimSpace(parts[0])),
		Content:      CleanContent(strings.TrimSpace(parts[1])),
		Author:       strings.TrimSpace(parts[2]),
		Title:        CleanContent(strings.TrimSpace(parts[3])),
		Email:        extractEmail(parts[4]),
		Timestamp:    ts,
	}
	if ts > 0 {
		item.MatchDate = time.Unix(ts, 0).UTC().Format("2006-01-02")
	}
	return item, nil
}

var emailPattern = regexp.MustCompile(`=?(.+@.+)`)

// extractEmail handles the "=user@example.org" convention of the format.
func extractEmail(raw string) string {
	if m := emailPattern.FindStringSubmatch(strings.TrimSpace(raw)); m != nil {
		return m[1]
	}
	return ""
}
