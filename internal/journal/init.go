package journal

import (
	"fmt"

	"github.com/starford/daybook/internal/storage"
	"github.com/starford/daybook/internal/summary"
)

// TemplateFile is the customizable daily template written by Scaffold.
const TemplateFile = "template.md"

// Scaffold seeds a fresh journal: the root README, an empty navigation
// index, and an editable copy of the daily template. Existing files are
// never overwritten so Scaffold is safe to re-run.
func Scaffold(store storage.Provider) error {
	seeds := []struct {
		path    string
		content string
	}{
		{"README.md", DefaultReadme},
		{TemplateFile, DefaultTemplate},
	}
	for _, seed := range seeds {
		if store.Exists(seed.path) {
			continue
		}
		if err := store.Write(seed.path, []byte(seed.content)); err != nil {
			return fmt.Errorf("journal: scaffold %s: %w", seed.path, err)
		}
	}

	if !store.Exists(SummaryFile) {
		doc := &summary.Document{Preamble: DefaultSummaryPreamble}
		if err := doc.Save(store, SummaryFile); err != nil {
			return fmt.Errorf("journal: scaffold %s: %w", SummaryFile, err)
		}
	}
	return nil
}
