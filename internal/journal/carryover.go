package journal

import (
	"strings"
	"time"

	"github.com/starford/daybook/internal/storage"
)

// Carryover locates the most recent prior entry and extracts the
// unfinished work to pull forward.
type Carryover struct {
	store    storage.Provider
	lookback int
}

// NewCarryover creates an extractor over store. lookbackDays <= 0 selects
// the default window.
func NewCarryover(store storage.Provider, lookbackDays int) *Carryover {
	if lookbackDays <= 0 {
		lookbackDays = DefaultLookbackDays
	}
	return &Carryover{store: store, lookback: lookbackDays}
}

// FindPreviousEntry scans backwards from the day before date and returns
// the first entry that exists within the lookback window. ok is false when
// the window is exhausted; that is not an error.
func (c *Carryover) FindPreviousEntry(date time.Time) (*Entry, bool, error) {
	for back := 1; back <= c.lookback; back++ {
		prev := date.AddDate(0, 0, -back)
		path := EntryPath(prev)
		if !c.store.Exists(path) {
			continue
		}
		data, err := c.store.Read(path)
		if err != nil {
			return nil, false, err
		}
		return &Entry{Date: prev, Path: path, Content: data}, true, nil
	}
	return nil, false, nil
}

// CarriedTasks returns the lines to inject into a new entry's goals
// section: unchecked tasks from the previous entry's goals, followed by
// the content of its focus section.
func (c *Carryover) CarriedTasks(prev *Entry) []string {
	content := string(prev.Content)
	tasks := UncheckedTasks(content, SectionGoals)
	return append(tasks, FocusContent(content)...)
}

// Section returns the raw text block of the named section: the lines after
// a "## <name>" heading up to the next heading of equal or higher level or
// a horizontal rule. ok is false when the section is absent or empty.
func Section(content, name string) (string, bool) {
	var lines []string
	inSection := false
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "##") && strings.Contains(trimmed, name) {
			inSection = true
			continue
		}
		if inSection && (strings.HasPrefix(trimmed, "##") || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "---")) {
			break
		}
		if inSection && trimmed != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return "", false
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), true
}

// FocusContent returns the focus section's lines with list items
// normalized to checkbox form. Lines that are not list items are carried
// as written; completed checkboxes and empty placeholders are dropped.
func FocusContent(content string) []string {
	block, ok := Section(content, SectionFocus)
	if !ok {
		return nil
	}
	var out []string
	for _, line := range strings.Split(block, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "- [x]"), strings.HasPrefix(trimmed, "- [X]"):
			// Finished; do not carry forward.
		case strings.HasPrefix(trimmed, "- [ ]"):
			if strings.TrimSpace(strings.TrimPrefix(trimmed, "- [ ]")) == "" {
				continue
			}
			out = append(out, trimmed)
		case strings.HasPrefix(trimmed, "- "):
			out = append(out, "- [ ] "+strings.TrimSpace(strings.TrimPrefix(trimmed, "- ")))
		default:
			out = append(out, trimmed)
		}
	}
	return out
}

// UncheckedTasks collects the open list items of the named section, in
// order. Completed checkboxes are dropped; bare list items are treated as
// implicit unchecked tasks and normalized to checkbox form.
func UncheckedTasks(content, name string) []string {
	block, ok := Section(content, name)
	if !ok {
		return nil
	}
	var out []string
	for _, line := range strings.Split(block, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "- [x]"), strings.HasPrefix(trimmed, "- [X]"):
			// Finished; do not carry forward.
		case strings.HasPrefix(trimmed, "- [ ]"):
			if strings.TrimSpace(strings.TrimPrefix(trimmed, "- [ ]")) == "" {
				continue // empty placeholder
			}
			out = append(out, trimmed)
		case strings.HasPrefix(trimmed, "- "):
			out = append(out, "- [ ] "+strings.TrimSpace(strings.TrimPrefix(trimmed, "- ")))
		}
	}
	return out
}
