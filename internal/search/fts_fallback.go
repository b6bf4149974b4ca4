//go:build !sqlite_fts5

package search

import (
	"database/sql"
	"fmt"
	"time"
)

func initFTS(_ *sql.DB) error {
	// FTS5 not available; search uses a LIKE fallback on entries.body.
	return nil
}

func ftsUpsert(_ *sql.Tx, _, _, _ string) error {
	// Body is already stored in the entries table; nothing extra to do.
	return nil
}

func ftsDelete(_ *sql.Tx, _ string) {}

// Search performs a LIKE-based search (fallback when FTS5 is not compiled
// in), newest first.
func (db *DB) Search(query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 20
	}
	like := "%" + query + "%"
	rows, err := db.conn.Query(`
		SELECT path, date, title, substr(body, 1, 200)
		FROM entries
		WHERE title LIKE ? OR body LIKE ?
		ORDER BY date DESC
		LIMIT ?
	`, like, like, limit)
	if err != nil {
		return nil, fmt.Errorf("search: query: %w", err)
	}
	defer rows.Close()

	var out []SearchResult
	for rows.Next() {
		var r SearchResult
		var date string
		if err := rows.Scan(&r.Path, &date, &r.Title, &r.Snippet); err != nil {
			return nil, err
		}
		r.Date, _ = time.Parse(dateLayout, date)
		out = append(out, r)
	}
	return out, rows.Err()
}
