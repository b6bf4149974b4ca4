//go:build sqlite_fts5

package search

import (
	"testing"
	"time"
)

func TestFTS5_TableExists(t *testing.T) {
	db := testDB(t)
	var count int
	if err := db.conn.QueryRow(`SELECT count(*) FROM entries_fts`).Scan(&count); err != nil {
		t.Fatalf("entries_fts table missing: %v", err)
	}
}

func TestFTS5_SearchWithSnippet(t *testing.T) {
	db := testDB(t)
	e := row("2025/06/01.md", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), "2025-06-01 - Sunday", "f1")
	if err := db.UpsertEntry(e, "Shipped the onboarding flow after a marathon review."); err != nil {
		t.Fatalf("UpsertEntry: %v", err)
	}

	results, err := db.Search("marathon", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Path != "2025/06/01.md" {
		t.Errorf("path = %q", results[0].Path)
	}
	if results[0].Snippet == "" {
		t.Error("expected non-empty snippet")
	}
}

func TestFTS5_DeleteRemovesFromFTS(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertEntry(row("2025/06/02.md", time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), "T", "g"), "vanishing content")
	_ = db.DeleteEntry("2025/06/02.md")

	results, _ := db.Search("vanishing", 10)
	for _, r := range results {
		if r.Path == "2025/06/02.md" {
			t.Error("deleted entry still in FTS index")
		}
	}
}

func TestFTS5_UpsertReplacesContent(t *testing.T) {
	db := testDB(t)
	d := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
	_ = db.UpsertEntry(row("2025/06/03.md", d, "Old", "1"), "original text")
	_ = db.UpsertEntry(row("2025/06/03.md", d, "New", "2"), "replacement text")

	results, _ := db.Search("original", 10)
	if len(results) != 0 {
		t.Error("old FTS content should be gone")
	}
	results, _ = db.Search("replacement", 10)
	if len(results) != 1 || results[0].Title != "New" {
		t.Errorf("FTS not updated: %+v", results)
	}
}
