package search

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/starford/daybook/internal/storage"
)

func TestSync_IndexesEntriesOnly(t *testing.T) {
	store := storage.NewMem()
	files := map[string]string{
		"2025/12/29.md":     "# 2025-12-29 - Monday\n\nbody",
		"2025/12/28.md":     "# 2025-12-28 - Sunday\n\nbody",
		"2025/12/README.md": "# December 2025",
		"2025/README.md":    "# Year in Review: 2025",
		"SUMMARY.md":        "# Summary\n\n---\n",
		"template.md":       "# {{date}}",
		"notes/scratch.md":  "not an entry",
	}
	for path, content := range files {
		if err := store.Write(path, []byte(content)); err != nil {
			t.Fatal(err)
		}
	}

	db := testDB(t)
	if err := Sync(db, store, slog.New(slog.NewTextHandler(io.Discard, nil))); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	cs, err := db.AllChecksums()
	if err != nil {
		t.Fatal(err)
	}
	if len(cs) != 2 {
		t.Fatalf("indexed %d paths, want 2: %v", len(cs), cs)
	}
	for _, path := range []string{"2025/12/29.md", "2025/12/28.md"} {
		if cs[path] == "" {
			t.Errorf("%s not indexed", path)
		}
	}

	e, err := db.GetEntry("2025/12/29.md")
	if err != nil {
		t.Fatal(err)
	}
	if e.Title != "2025-12-29 - Monday" {
		t.Errorf("title = %q", e.Title)
	}
	if !e.Date.Equal(time.Date(2025, 12, 29, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("date = %v", e.Date)
	}
}

func TestSync_SkipsUnchangedAndRemovesStale(t *testing.T) {
	store := storage.NewMem()
	if err := store.Write("2025/12/29.md", []byte("# Day one")); err != nil {
		t.Fatal(err)
	}
	db := testDB(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	if err := Sync(db, store, logger); err != nil {
		t.Fatal(err)
	}
	before, _ := db.GetEntry("2025/12/29.md")

	// Second sync with no changes leaves the row alone.
	if err := Sync(db, store, logger); err != nil {
		t.Fatal(err)
	}
	after, _ := db.GetEntry("2025/12/29.md")
	if !after.UpdatedAt.Equal(before.UpdatedAt) {
		t.Error("unchanged entry was re-indexed")
	}

	// Deleting the file removes the row on the next sync.
	stale := storage.NewMem()
	if err := Sync(db, stale, logger); err != nil {
		t.Fatal(err)
	}
	cs, _ := db.GetChecksum("2025/12/29.md")
	if cs != "" {
		t.Error("stale entry not removed")
	}
}

func TestEntryTitle(t *testing.T) {
	d := time.Date(2025, 12, 29, 0, 0, 0, 0, time.UTC)
	if got := entryTitle("# Hello\nbody", d); got != "Hello" {
		t.Errorf("entryTitle = %q", got)
	}
	if got := entryTitle("no heading here", d); got != "2025-12-29" {
		t.Errorf("fallback title = %q", got)
	}
}
