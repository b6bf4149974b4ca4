package search

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// EntryRow represents a row in the entries table.
type EntryRow struct {
	Path      string
	Date      time.Time
	Title     string
	Checksum  string
	UpdatedAt time.Time
}

// SearchResult represents one search hit.
type SearchResult struct {
	Path    string
	Date    time.Time
	Title   string
	Snippet string
}

// UpsertEntry inserts or replaces an entry and its FTS row within a
// transaction.
func (db *DB) UpsertEntry(e EntryRow, body string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("search: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	_, err = tx.Exec(`
		INSERT INTO entries (path, date, title, checksum, body, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			date       = excluded.date,
			title      = excluded.title,
			checksum   = excluded.checksum,
			body       = excluded.body,
			updated_at = excluded.updated_at
	`, e.Path, e.Date.Format(dateLayout), e.Title, e.Checksum, body, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("search: upsert entry: %w", err)
	}

	// FTS upsert (no-op when the FTS5 tag is absent).
	if err := ftsUpsert(tx, e.Path, e.Title, body); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteEntry removes an entry and its FTS row.
func (db *DB) DeleteEntry(path string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("search: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	ftsDelete(tx, path)
	_, _ = tx.Exec(`DELETE FROM entries WHERE path = ?`, path)

	return tx.Commit()
}

// GetChecksum returns the stored checksum for an entry, or empty string
// when not indexed.
func (db *DB) GetChecksum(path string) (string, error) {
	var cs string
	err := db.conn.QueryRow(`SELECT checksum FROM entries WHERE path = ?`, path).Scan(&cs)
	if err != nil {
		return "", nil // not found is fine
	}
	return cs, nil
}

// GetEntry returns the indexed row for path, or nil when not indexed.
func (db *DB) GetEntry(path string) (*EntryRow, error) {
	var e EntryRow
	var date string
	err := db.conn.QueryRow(`
		SELECT path, date, title, checksum, updated_at FROM entries WHERE path = ?
	`, path).Scan(&e.Path, &date, &e.Title, &e.Checksum, &e.UpdatedAt)
	if err != nil {
		return nil, nil
	}
	e.Date, _ = time.Parse(dateLayout, date)
	return &e, nil
}

// ListEntries returns entries newest first, optionally filtered to one
// month (year with month zero filters to the year). The second return is
// the total count before limit/offset.
func (db *DB) ListEntries(limit, offset int, year int, month time.Month) ([]EntryRow, int, error) {
	if limit <= 0 {
		limit = 50
	}
	where := ""
	args := []any{}
	switch {
	case year > 0 && month > 0:
		where = `WHERE date LIKE ?`
		args = append(args, fmt.Sprintf("%04d-%02d-%%", year, int(month)))
	case year > 0:
		where = `WHERE date LIKE ?`
		args = append(args, fmt.Sprintf("%04d-%%", year))
	}

	var total int
	if err := db.conn.QueryRow(`SELECT count(*) FROM entries `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("search: count entries: %w", err)
	}

	rows, err := db.conn.Query(`
		SELECT path, date, title, checksum, updated_at FROM entries `+where+`
		ORDER BY date DESC LIMIT ? OFFSET ?
	`, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("search: list entries: %w", err)
	}
	defer rows.Close()

	var out []EntryRow
	for rows.Next() {
		var e EntryRow
		var date string
		if err := rows.Scan(&e.Path, &date, &e.Title, &e.Checksum, &e.UpdatedAt); err != nil {
			return nil, 0, err
		}
		e.Date, _ = time.Parse(dateLayout, date)
		out = append(out, e)
	}
	return out, total, rows.Err()
}

// AllChecksums returns path -> checksum for every indexed entry.
func (db *DB) AllChecksums() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT path, checksum FROM entries`)
	if err != nil {
		return nil, fmt.Errorf("search: all checksums: %w", err)
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var p, cs string
		if err := rows.Scan(&p, &cs); err != nil {
			return nil, err
		}
		out[p] = cs
	}
	return out, rows.Err()
}
