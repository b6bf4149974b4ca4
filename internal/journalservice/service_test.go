package journalservice

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/starford/daybook/internal/apperr"
	"github.com/starford/daybook/internal/journal"
	"github.com/starford/daybook/internal/storage"
	"github.com/starford/daybook/internal/testutil"
)

func testService(t *testing.T) (*Service, storage.Provider) {
	t.Helper()
	store := storage.NewMem()
	db := testutil.TestDB(t)

	synth := journal.NewSynthesizer(store, nil, journal.SynthConfig{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewService(store, db, synth), store
}

func TestCreateAndGetEntry(t *testing.T) {
	svc, _ := testService(t)
	date := time.Date(2025, 12, 29, 0, 0, 0, 0, time.UTC)

	created, err := svc.CreateEntry(context.Background(), date, nil)
	if err != nil {
		t.Fatalf("CreateEntry: %v", err)
	}
	if !created.Created {
		t.Error("Created should be true")
	}
	if created.Date != "2025-12-29" {
		t.Errorf("date = %q", created.Date)
	}

	got, err := svc.GetEntry(context.Background(), date)
	if err != nil {
		t.Fatalf("GetEntry: %v", err)
	}
	if got.Content != created.Content {
		t.Error("content mismatch")
	}
	if !strings.Contains(got.HTML, "<h1>") {
		t.Errorf("HTML not rendered: %q", got.HTML[:min(len(got.HTML), 120)])
	}
	if got.Checksum != created.Checksum {
		t.Error("checksum mismatch")
	}
}

func TestGetEntry_NotFound(t *testing.T) {
	svc, _ := testService(t)
	_, err := svc.GetEntry(context.Background(), time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSaveEntry_OptimisticConcurrency(t *testing.T) {
	svc, _ := testService(t)
	date := time.Date(2025, 12, 29, 0, 0, 0, 0, time.UTC)

	created, err := svc.CreateEntry(context.Background(), date, nil)
	if err != nil {
		t.Fatal(err)
	}

	// Stale checksum is rejected.
	if _, err := svc.SaveEntry(context.Background(), date, []byte("edit"), "stale"); !errors.Is(err, apperr.ErrConflict) {
		t.Errorf("err = %v, want ErrConflict", err)
	}

	// Matching checksum wins.
	saved, err := svc.SaveEntry(context.Background(), date, []byte("# Edited\n"), created.Checksum)
	if err != nil {
		t.Fatalf("SaveEntry: %v", err)
	}
	if saved.Title != "Edited" {
		t.Errorf("title = %q", saved.Title)
	}
}

func TestSaveEntry_NewEntryUpdatesSummary(t *testing.T) {
	svc, store := testService(t)
	date := time.Date(2025, 12, 29, 0, 0, 0, 0, time.UTC)

	if _, err := svc.SaveEntry(context.Background(), date, []byte("# Direct save\n"), ""); err != nil {
		t.Fatalf("SaveEntry: %v", err)
	}
	sum, err := store.Read(journal.SummaryFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(sum), "2025/12/29.md") {
		t.Errorf("summary not reconciled:\n%s", sum)
	}
}

func TestListAndSearch(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	for _, d := range []time.Time{
		time.Date(2025, 12, 28, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 12, 29, 0, 0, 0, 0, time.UTC),
	} {
		if _, err := svc.CreateEntry(ctx, d, nil); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := svc.SaveEntry(ctx, time.Date(2025, 12, 29, 0, 0, 0, 0, time.UTC), []byte("# Day\n\nzanzibar trip notes"), ""); err != nil {
		t.Fatal(err)
	}

	items, total, err := svc.ListEntries(ctx, 10, 0, 0, 0)
	if err != nil {
		t.Fatalf("ListEntries: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Fatalf("total = %d, len = %d", total, len(items))
	}
	if items[0].Date != "2025-12-29" {
		t.Errorf("expected newest first, got %q", items[0].Date)
	}

	hits, err := svc.Search(ctx, "zanzibar", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 1 || hits[0].Path != "2025/12/29.md" {
		t.Errorf("hits = %+v", hits)
	}
}

func TestSummary(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()
	if _, err := svc.CreateEntry(ctx, time.Date(2025, 12, 29, 0, 0, 0, 0, time.UTC), nil); err != nil {
		t.Fatal(err)
	}

	sum, err := svc.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if !strings.Contains(sum.Content, "  - [29 - Monday](2025/12/29.md)") {
		t.Errorf("summary content:\n%s", sum.Content)
	}
	if !strings.Contains(sum.HTML, "<a href") {
		t.Errorf("summary HTML not rendered:\n%s", sum.HTML)
	}
}

func TestIndexEntry_RejectsNonEntryPath(t *testing.T) {
	svc, _ := testService(t)
	if err := svc.IndexEntry("SUMMARY.md", []byte("x")); err == nil {
		t.Error("expected error for non-entry path")
	}
}
