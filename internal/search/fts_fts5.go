//go:build sqlite_fts5

package search

import (
	"database/sql"
	"fmt"
	"time"
)

func initFTS(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE VIRTUAL TABLE IF NOT EXISTS entries_fts USING fts5(
			path UNINDEXED,
			title,
			body,
			tokenize = 'unicode61 remove_diacritics 2'
		);
	`)
	return err
}

func ftsUpsert(tx *sql.Tx, path, title, body string) error {
	_, _ = tx.Exec(`DELETE FROM entries_fts WHERE path = ?`, path)
	_, err := tx.Exec(`INSERT INTO entries_fts (path, title, body) VALUES (?, ?, ?)`,
		path, title, body)
	if err != nil {
		return fmt.Errorf("search: upsert fts: %w", err)
	}
	return nil
}

func ftsDelete(tx *sql.Tx, path string) {
	_, _ = tx.Exec(`DELETE FROM entries_fts WHERE path = ?`, path)
}

// Search performs an FTS5 full-text search and returns matching entries
// with snippets, newest first.
func (db *DB) Search(query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.conn.Query(`
		SELECT f.path,
		       e.date,
		       f.title,
		       snippet(entries_fts, 2, '<b>', '</b>', '...', 64)
		FROM entries_fts f
		JOIN entries e ON e.path = f.path
		WHERE entries_fts MATCH ?
		ORDER BY e.date DESC
		LIMIT ?
	`, query, limit)
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
