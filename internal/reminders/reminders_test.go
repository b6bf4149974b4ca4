package reminders

import (
	"strings"
	"testing"
	"time"
)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestParseSource(t *testing.T) {
	for _, valid := range []string{"github", "gitlab", "google-tasks", "apple"} {
		if _, err := ParseSource(valid); err != nil {
			t.Errorf("ParseSource(%q): %v", valid, err)
		}
	}
	if _, err := ParseSource("jira"); err == nil {
		t.Error("expected error for unknown source")
	}
}

func TestRenderBlock_OrderAndGrouping(t *testing.T) {
	results := map[Source][]Item{
		SourceGitHub: {
			{Source: SourceGitHub, Title: "No due date", Repo: "o/r", Number: 2},
			{Source: SourceGitHub, Title: "Due later", Repo: "o/r", Number: 3, Due: datePtr(2026, time.February, 1)},
			{Source: SourceGitHub, Title: "Due soon", Repo: "o/r", Number: 1, Due: datePtr(2026, time.January, 15)},
		},
		SourceGoogleTasks: {
			{Source: SourceGoogleTasks, Title: "Buy milk"},
		},
	}

	out := RenderBlock([]Source{SourceGitHub, SourceGoogleTasks}, results)

	gh := strings.Index(out, "### GitHub")
	gt := strings.Index(out, "### Google Tasks")
	if gh < 0 || gt < 0 || gh > gt {
		t.Fatalf("groups out of order:\n%s", out)
	}
	soon := strings.Index(out, "Due soon")
	later := strings.Index(out, "Due later")
	undated := strings.Index(out, "No due date")
	if !(soon < later && later < undated) {
		t.Errorf("items out of order (soon=%d later=%d undated=%d):\n%s", soon, later, undated, out)
	}
}

func TestRenderBlock_EmptySourceOmitted(t *testing.T) {
	results := map[Source][]Item{
		SourceGitLab: {},
		SourceApple:  {{Source: SourceApple, Title: "Call dentist"}},
	}
	out := RenderBlock([]Source{SourceGitLab, SourceApple}, results)
	if strings.Contains(out, "GitLab") {
		t.Errorf("empty source should be omitted:\n%s", out)
	}
	if !strings.Contains(out, "### Apple Reminders") {
		t.Errorf("apple group missing:\n%s", out)
	}
}

func TestRenderBlock_DropsCompletedItems(t *testing.T) {
	results := map[Source][]Item{
		SourceGoogleTasks: {
			{Source: SourceGoogleTasks, Title: "Done already", Done: true},
		},
	}
	out := RenderBlock([]Source{SourceGoogleTasks}, results)
	if out != "" {
		t.Errorf("expected empty block, got %q", out)
	}
}

func TestFormatItem(t *testing.T) {
	due := datePtr(2026, time.January, 15)
	it := Item{
		Source: SourceGitHub,
		Title:  "Fix bug",
		URL:    "https://github.com/owner/repo/issues/123",
		Repo:   "owner/repo",
		Number: 123,
		Labels: []string{"bug", "urgent"},
		Due:    due,
	}
	got := formatItem(it)
	want := "- [ ] [owner/repo] Fix bug (#123) [bug] [urgent] - Due: 2026-01-15\n" +
		"      https://github.com/owner/repo/issues/123"
	if got != want {
		t.Errorf("formatItem:\n got %q\nwant %q", got, want)
	}
}

func TestFormatItem_TitleOnly(t *testing.T) {
	got := formatItem(Item{Source: SourceApple, Title: "Water plants"})
	if got != "- [ ] Water plants" {
		t.Errorf("formatItem = %q", got)
	}
}

func TestRepoFromURL(t *testing.T) {
	if got := repoFromURL("https://api.github.com/repos/owner/repo"); got != "owner/repo" {
		t.Errorf("repoFromURL = %q", got)
	}
}

func TestParseAppleOutput(t *testing.T) {
	items := parseAppleOutput("Buy groceries\n\n  Call dentist  \n")
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2", len(items))
	}
	if items[0].Title != "Buy groceries" || items[1].Title != "Call dentist" {
		t.Errorf("items = %+v", items)
	}
}

func TestEnvTokenStore(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "abc")
	store := EnvTokenStore{}
	tok, err := store.Token("github")
	if err != nil || tok != "abc" {
		t.Errorf("Token = %q, %v", tok, err)
	}
	if _, err := store.Token("gitlab"); err == nil {
		t.Error("expected error for unset token")
	}
	t.Setenv("GOOGLE_TASKS_TOKEN", "g")
	if tok, _ := store.Token("google-tasks"); tok != "g" {
		t.Errorf("hyphenated name lookup = %q", tok)
	}
}
