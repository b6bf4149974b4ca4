// Package testutil provides shared test helpers for setting up journals and databases.
package testutil

import (
	"os"
	"testing"

	"github.com/starford/daybook/internal/search"
	"github.com/starford/daybook/internal/storage"
)

// TestDB creates a temporary SQLite database that is automatically cleaned up.
func TestDB(t *testing.T) *search.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "daybook-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := search.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestJournal creates a temporary journal directory with a storage.Provider.
func TestJournal(t *testing.T) (string, storage.Provider) {
	t.Helper()
	journalDir := t.TempDir()
	store, err := storage.NewFS(journalDir)
	if err != nil {
		t.Fatal(err)
	}
	return journalDir, store
}
