// Package journalservice coordinates storage, synthesis, search, and
// rendering for entry operations.
package journalservice

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/starford/daybook/internal/apperr"
	"github.com/starford/daybook/internal/journal"
	"github.com/starford/daybook/internal/reminders"
	"github.com/starford/daybook/internal/search"
	"github.com/starford/daybook/internal/storage"
	"github.com/starford/daybook/internal/summary"
)

// EntryDetail is the full representation of an entry.
type EntryDetail struct {
	Path     string    `json:"path"`
	Date     string    `json:"date"`
	Title    string    `json:"title"`
	Content  string    `json:"content"`
	HTML     string    `json:"html,omitempty"`
	Checksum string    `json:"checksum"`
	Created  bool      `json:"created,omitempty"`
	Modified time.Time `json:"modified,omitempty"`
}

// EntryListItem is a lightweight item in a list response.
type EntryListItem struct {
	Path      string    `json:"path"`
	Date      string    `json:"date"`
	Title     string    `json:"title"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SummaryDetail is the navigation index with its rendered form.
type SummaryDetail struct {
	Content string `json:"content"`
	HTML    string `json:"html,omitempty"`
}

// Service coordinates storage, synthesizer, and index operations.
type Service struct {
	store storage.Provider
	db    *search.DB
	synth *journal.Synthesizer
	md    goldmark.Markdown
}

// NewService creates a new journal service.
func NewService(store storage.Provider, db *search.DB, synth *journal.Synthesizer) *Service {
	return &Service{
		store: store,
		db:    db,
		synth: synth,
		md:    goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// CreateEntry synthesizes the entry for date (or returns the existing one)
// and indexes the result.
func (s *Service) CreateEntry(ctx context.Context, date time.Time, sources []reminders.Source) (*EntryDetail, error) {
	entry, err := s.synth.CreateEntry(ctx, date, sources)
	if err != nil {
		return nil, err
	}
	if err := s.IndexEntry(entry.Path, entry.Content); err != nil {
		return nil, err
	}
	detail := s.buildDetail(entry.Path, date, entry.Content)
	detail.Created = entry.Created
	return detail, nil
}

// GetEntry reads the entry for date and renders it to HTML.
func (s *Service) GetEntry(_ context.Context, date time.Time) (*EntryDetail, error) {
	path := journal.EntryPath(date)
	data, err := s.store.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return s.buildDetail(path, date, data), nil
}

// SaveEntry writes updated entry content with optimistic concurrency: a
// non-empty ifMatch must equal the checksum of the stored content.
func (s *Service) SaveEntry(_ context.Context, date time.Time, content []byte, ifMatch string) (*EntryDetail, error) {
	path := journal.EntryPath(date)
	isNew := false
	existing, err := s.store.Read(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		isNew = true
	} else if ifMatch != "" && ifMatch != storage.Sum(existing) {
		return nil, apperr.ErrConflict
	}
	if err := s.store.Write(path, content); err != nil {
		return nil, err
	}
	if err := s.IndexEntry(path, content); err != nil {
		return nil, err
	}
	if isNew {
		doc, err := summary.Load(s.store, journal.SummaryFile)
		if err != nil {
			return nil, err
		}
		doc.Insert(date)
		if err := doc.Save(s.store, journal.SummaryFile); err != nil {
			return nil, err
		}
	}
	return s.buildDetail(path, date, content), nil
}

// ListEntries returns paginated entries, newest first, optionally filtered
// to a year or a month.
func (s *Service) ListEntries(_ context.Context, limit, offset int, year int, month time.Month) ([]EntryListItem, int, error) {
	rows, total, err := s.db.ListEntries(limit, offset, year, month)
	if err != nil {
		return nil, 0, err
	}
	items := make([]EntryListItem, len(rows))
	for i, r := range rows {
		items[i] = EntryListItem{
			Path:      r.Path,
			Date:      r.Date.Format("2006-01-02"),
			Title:     r.Title,
			Checksum:  r.Checksum,
			UpdatedAt: r.UpdatedAt,
		}
	}
	return items, total, nil
}

// Search delegates full-text search to the index.
func (s *Service) Search(_ context.Context, query string, limit int) ([]search.SearchResult, error) {
	return s.db.Search(query, limit)
}

// Summary returns the navigation index document.
func (s *Service) Summary(_ context.Context) (*SummaryDetail, error) {
	doc, err := summary.Load(s.store, journal.SummaryFile)
	if err != nil {
		return nil, err
	}
	content := doc.Bytes()
	html, err := s.renderHTML(content)
	if err != nil {
		return nil, err
	}
	return &SummaryDetail{Content: string(content), HTML: html}, nil
}

// IndexEntry upserts entry content into the search index. Exported so the
// watcher path and the API share one implementation.
func (s *Service) IndexEntry(path string, data []byte) error {
	date, ok := journal.ParseEntryPath(path)
	if !ok {
		return fmt.Errorf("journalservice: not an entry path: %s", path)
	}
	return s.db.UpsertEntry(search.EntryRow{
		Path:      path,
		Date:      date,
		Title:     entryTitle(data, date),
		Checksum:  storage.Sum(data),
		UpdatedAt: time.Now().UTC(),
	}, string(data))
}

func (s *Service) buildDetail(path string, date time.Time, data []byte) *EntryDetail {
	html, err := s.renderHTML(data)
	if err != nil {
		html = ""
	}
	return &EntryDetail{
		Path:     path,
		Date:     date.Format("2006-01-02"),
		Title:    entryTitle(data, date),
		Content:  string(data),
		HTML:     html,
		Checksum: storage.Sum(data),
	}
}

func (s *Service) renderHTML(src []byte) (string, error) {
	var buf bytes.Buffer
	if err := s.md.Convert(src, &buf); err != nil {
		return "", fmt.Errorf("journalservice: render markdown: %w", err)
	}
	return buf.String(), nil
}

// entryTitle is the first top-level heading, falling back to the date.
func entryTitle(data []byte, date time.Time) string {
	for _, line := range bytes.Split(data, []byte("\n")) {
		if title, ok := bytes.CutPrefix(line, []byte("# ")); ok {
			return string(bytes.TrimSpace(title))
		}
	}
	return date.Format("2006-01-02")
}
