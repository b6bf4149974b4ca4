package journal

import (
	"reflect"
	"testing"
	"time"

	"github.com/starford/daybook/internal/storage"
)

const sampleEntry = `# 2025-12-28 - Sunday

## Reminders
- [ ] [o/r] fix the build (#12)

## Goals for Today
- [ ] Finish report
- [x] Done item
- Ship v2
- [ ]

## Work Accomplished

### Morning
- stand-up

## Tomorrow's Focus
- Prep demo

---

**Mood**: fine
`

func TestSection(t *testing.T) {
	got, ok := Section(sampleEntry, SectionGoals)
	if !ok {
		t.Fatal("section not found")
	}
	want := "- [ ] Finish report\n- [x] Done item\n- Ship v2\n- [ ]"
	if got != want {
		t.Errorf("Section = %q, want %q", got, want)
	}
}

func TestSection_Missing(t *testing.T) {
	if _, ok := Section(sampleEntry, "No Such Section"); ok {
		t.Error("expected ok=false for missing section")
	}
}

func TestSection_BoundedByRule(t *testing.T) {
	content := "## Tomorrow's Focus\n- Prep demo\n\n---\n\n**Mood**: fine\n"
	got, ok := Section(content, SectionFocus)
	if !ok || got != "- Prep demo" {
		t.Errorf("Section = %q, ok=%v", got, ok)
	}
}

func TestUncheckedTasks(t *testing.T) {
	tests := []struct {
		name    string
		content string
		section string
		want    []string
	}{
		{
			name:    "drops completed and normalizes bare items",
			content: sampleEntry,
			section: SectionGoals,
			want:    []string{"- [ ] Finish report", "- [ ] Ship v2"},
		},
		{
			name:    "focus items become checkboxes",
			content: sampleEntry,
			section: SectionFocus,
			want:    []string{"- [ ] Prep demo"},
		},
		{
			name:    "all complete yields nothing",
			content: "## Goals for Today\n- [x] a\n- [X] b\n",
			section: SectionGoals,
			want:    nil,
		},
		{
			name:    "missing section yields nothing",
			content: "# Title\n",
			section: SectionGoals,
			want:    nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UncheckedTasks(tt.content, tt.section)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("UncheckedTasks = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFocusContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "list items become checkboxes",
			content: sampleEntry,
			want:    []string{"- [ ] Prep demo"},
		},
		{
			name:    "plain text lines carried as written",
			content: "## Tomorrow's Focus\nShip v2\nCall the bank\n",
			want:    []string{"Ship v2", "Call the bank"},
		},
		{
			name:    "mixed list and prose",
			content: "## Tomorrow's Focus\nFocus on the launch:\n- Prep demo\n- [x] Book room\n",
			want:    []string{"Focus on the launch:", "- [ ] Prep demo"},
		},
		{
			name:    "missing section yields nothing",
			content: "# Title\n",
			want:    nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FocusContent(tt.content)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FocusContent = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFindPreviousEntry(t *testing.T) {
	store := storage.NewMem()
	today := time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC)
	prevDate := time.Date(2025, time.December, 28, 0, 0, 0, 0, time.UTC)
	if err := store.Write(EntryPath(prevDate), []byte(sampleEntry)); err != nil {
		t.Fatal(err)
	}

	c := NewCarryover(store, 0)
	prev, ok, err := c.FindPreviousEntry(today)
	if err != nil {
		t.Fatalf("FindPreviousEntry: %v", err)
	}
	if !ok {
		t.Fatal("expected a previous entry")
	}
	if prev.Path != "2025/12/28.md" {
		t.Errorf("path = %q", prev.Path)
	}
	if !prev.Date.Equal(prevDate) {
		t.Errorf("date = %v", prev.Date)
	}
}

func TestFindPreviousEntry_WindowExhausted(t *testing.T) {
	store := storage.NewMem()
	today := time.Date(2026, time.January, 31, 0, 0, 0, 0, time.UTC)
	old := time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)
	if err := store.Write(EntryPath(old), []byte(sampleEntry)); err != nil {
		t.Fatal(err)
	}

	c := NewCarryover(store, 30)
	_, ok, err := c.FindPreviousEntry(today)
	if err != nil {
		t.Fatalf("FindPreviousEntry: %v", err)
	}
	if ok {
		t.Error("entry beyond the lookback window should not be found")
	}
}

func TestCarriedTasks_CombinesGoalsAndFocus(t *testing.T) {
	c := NewCarryover(storage.NewMem(), 0)
	got := c.CarriedTasks(&Entry{Content: []byte(sampleEntry)})
	want := []string{"- [ ] Finish report", "- [ ] Ship v2", "- [ ] Prep demo"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CarriedTasks = %v, want %v", got, want)
	}
}

func TestCarriedTasks_PlainTextFocus(t *testing.T) {
	content := "## Goals for Today\n- [x] a\n\n## Tomorrow's Focus\nShip v2\n"
	c := NewCarryover(storage.NewMem(), 0)
	got := c.CarriedTasks(&Entry{Content: []byte(content)})
	want := []string{"Ship v2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CarriedTasks = %v, want %v", got, want)
	}
}
