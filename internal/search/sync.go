package search

import (
	"log/slog"
	"strings"
	"time"

	"github.com/starford/daybook/internal/journal"
	"github.com/starford/daybook/internal/storage"
)

// Sync walks the journal and brings the index up to date:
//   - new/changed entries are parsed and upserted
//   - entries removed from disk are deleted from the index
//
// Non-entry documents (READMEs, the navigation index, templates) are
// ignored.
func Sync(db *DB, store storage.Provider, logger *slog.Logger) error {
	metas, err := store.List("")
	if err != nil {
		return err
	}

	checksums, err := db.AllChecksums()
	if err != nil {
		return err
	}

	disk := make(map[string]struct{}, len(metas))
	for _, m := range metas {
		date, ok := journal.ParseEntryPath(m.Path)
		if !ok {
			continue
		}
		disk[m.Path] = struct{}{}

		if checksums[m.Path] == m.Checksum {
			continue
		}

		data, err := store.Read(m.Path)
		if err != nil {
			logger.Warn("sync: read failed", slog.String("path", m.Path), slog.String("error", err.Error()))
			continue
		}
		if err := indexEntry(db, m.Path, date, data); err != nil {
			logger.Warn("sync: index failed", slog.String("path", m.Path), slog.String("error", err.Error()))
		} else {
			logger.Debug("sync: indexed", slog.String("path", m.Path))
		}
	}

	// Remove stale entries.
	for p := range checksums {
		if _, ok := disk[p]; !ok {
			if err := db.DeleteEntry(p); err != nil {
				logger.Warn("sync: delete failed", slog.String("path", p), slog.String("error", err.Error()))
			} else {
				logger.Debug("sync: removed stale", slog.String("path", p))
			}
		}
	}

	return nil
}

// indexEntry upserts one entry document into the DB.
func indexEntry(db *DB, path string, date time.Time, data []byte) error {
	body := string(data)
	row := EntryRow{
		Path:      path,
		Date:      date,
		Title:     entryTitle(body, date),
		Checksum:  storage.Sum(data),
		UpdatedAt: time.Now().UTC(),
	}
	return db.UpsertEntry(row, body)
}

// entryTitle is the first top-level heading, falling back to the date.
func entryTitle(body string, date time.Time) string {
	for _, line := range strings.Split(body, "\n") {
		if title, ok := strings.CutPrefix(line, "# "); ok {
			return strings.TrimSpace(title)
		}
	}
	return date.Format("2006-01-02")
}
