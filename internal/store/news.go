package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/nordliga/liga-data/internal/correlate"
	"github.com/nordliga/liga-data/internal/lmo"
	"github.com/nordliga/liga-data/internal/news"
)

// NewsRow is a news article as served by the API. Content is only set on
// single-item reads.
type NewsRow struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	ShortContent string   `json:"short_content"`
	Content      string   `json:"content,omitempty"`
	Author       string   `json:"author"`
	Timestamp    int64    `json:"timestamp"`
	MatchDate    *string  `json:"match_date,omitempty"`
	Confidence   *float64 `json:"confidence,omitempty"`
}

// SaveNews upserts the imported corpus. News rows are append-only in normal
// operation; re-importing the same files is idempotent.
func (s *Store) SaveNews(ctx context.Context, items []news.Item) (int, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, &lmo.IOError{Op: "begin news tx", Err: err}
	}
	defer tx.Rollback(ctx)

	saved := 0
	for _, item := range items {
		_, err := tx.Exec(ctx, `
			INSERT INTO news (id, title, short_content, content, author, email, timestamp, match_date)
			VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''))
			ON CONFLICT (id) DO UPDATE
			SET title = EXCLUDED.title, short_content = EXCLUDED.short_content,
				content = EXCLUDED.content, author = EXCLUDED.author,
				email = EXCLUDED.email, timestamp = EXCLUDED.timestamp,
				match_date = EXCLUDED.match_date`,
			item.ID, item.Title, item.ShortContent, item.Content,
			item.Author, item.Email, item.Timestamp, item.MatchDate)
		if err != nil {
			return saved, &lmo.IOError{Op: "insert news", Err: err}
		}
		saved++
	}
	if err := tx.Commit(ctx); err != nil {
		return saved, &lmo.IOError{Op: "commit news tx", Err: err}
	}
	return saved, nil
}

// NewsList returns articles newest first.
func (s *Store) NewsList(ctx context.Context, limit, offset int) ([]NewsRow, error) {
	rows, err := s.pool.Query(ctx, "news_list", limit, offset)
	if err != nil {
		return nil, &lmo.IOError{Op: "list news", Err: err}
	}
	defer rows.Close()
	return scanNewsRows(rows, false)
}

// NewsByID returns one article including its full content.
func (s *Store) NewsByID(ctx context.Context, id int64) (*NewsRow, error) {
	var row NewsRow
	err := s.pool.QueryRow(ctx, "news_by_id", id).Scan(
		&row.ID, &row.Title, &row.ShortContent, &row.Content,
		&row.Author, &row.Timestamp, &row.MatchDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &lmo.NotFoundError{What: "news item"}
	}
	if err != nil {
		return nil, &lmo.IOError{Op: "load news", Err: err}
	}
	return &row, nil
}

// NewsSearch finds articles whose title or content contains the query.
func (s *Store) NewsSearch(ctx context.Context, query string, limit int) ([]NewsRow, error) {
	rows, err := s.pool.Query(ctx, "news_search", "%"+query+"%", limit)
	if err != nil {
		return nil, &lmo.IOError{Op: "search news", Err: err}
	}
	defer rows.Close()
	return scanNewsRows(rows, false)
}

// NewsForMatch returns all articles linked to a match, best first.
func (s *Store) NewsForMatch(ctx context.Context, matchID int64) ([]NewsRow, error) {
	rows, err := s.pool.Query(ctx, "news_for_match", matchID)
	if err != nil {
		return nil, &lmo.IOError{Op: "load match news", Err: err}
	}
	defer rows.Close()
	return scanNewsRows(rows, true)
}

func scanNewsRows(rows pgx.Rows, withConfidence bool) ([]NewsRow, error) {
	var out []NewsRow
	for rows.Next() {
		var row NewsRow
		var err error
		if withConfidence {
			err = rows.Scan(&row.ID, &row.Title, &row.ShortContent,
				&row.Author, &row.Timestamp, &row.MatchDate, &row.Confidence)
		} else {
			err = rows.Scan(&row.ID, &row.Title, &row.ShortContent,
				&row.Author, &row.Timestamp, &row.MatchDate)
		}
		if err != nil {
			return nil, &lmo.IOError{Op: "scan news", Err: err}
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// CorrelatorMatches loads every dated match in the shape the correlator
// consumes.
func (s *Store) CorrelatorMatches(ctx context.Context) ([]correlate.Match, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT m.id, m.match_date, ht.name, gt.name
		FROM matches m
		JOIN teams ht ON m.home_team_id = ht.id
		JOIN teams gt ON m.guest_team_id = gt.id
		WHERE m.match_date IS NOT NULL AND m.match_date <> ''`)
	if err != nil {
		return nil, &lmo.IOError{Op: "load correlator matches", Err: err}
	}
	defer rows.Close()

	var out []correlate.Match
	for rows.Next() {
		var m correlate.Match
		if err := rows.Scan(&m.ID, &m.Date, &m.Home, &m.Guest); err != nil {
			return nil, &lmo.IOError{Op: "scan correlator match", Err: err}
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// CorrelatorNews loads every article in the shape the correlator consumes.
func (s *Store) CorrelatorNews(ctx context.Context) ([]correlate.Article, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, title, short_content, content, timestamp, COALESCE(match_date, '')
		FROM news`)
	if err != nil {
		return nil, &lmo.IOError{Op: "load correlator news", Err: err}
	}
	defer rows.Close()

	var out []correlate.Article
	for rows.Next() {
		var a correlate.Article
		if err := rows.Scan(&a.ID, &a.Title, &a.ShortContent, &a.Content, &a.Timestamp, &a.MatchDate); err != nil {
			return nil, &lmo.IOError{Op: "scan correlator news", Err: err}
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// ReplaceLinks rewrites the whole match_news table with the given link set
// in one transaction, so readers never observe the momentarily empty table
// a delete-then-insert would otherwise expose.
func (s *Store) ReplaceLinks(ctx context.Context, links []correlate.Link) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return &lmo.IOError{Op: "begin link tx", Err: err}
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM match_news`); err != nil {
		return &lmo.IOError{Op: "clear match news", Err: err}
	}
	for _, link := range links {
		_, err := tx.Exec(ctx, `
			INSERT INTO match_news (match_id, news_id, confidence)
			VALUES ($1, $2, $3)
			ON CONFLICT (match_id, news_id) DO UPDATE
			SET confidence = GREATEST(match_news.confidence, EXCLUDED.confidence)`,
			link.MatchID, link.NewsID, link.Confidence)
		if err != nil {
			return &lmo.IOError{Op: "insert match news", Err: err}
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return &lmo.IOError{Op: "commit link tx", Err: err}
	}
	return nil
}
