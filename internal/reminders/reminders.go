// Package reminders aggregates open items from external task sources into a
// markdown block for the daily entry. Sources are fetched concurrently and
// failures degrade to a logged warning, never an aborted entry.
package reminders

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Source identifies an external reminder source.
type Source string

const (
	SourceGitHub      Source = "github"
	SourceGitLab      Source = "gitlab"
	SourceGoogleTasks Source = "google-tasks"
	SourceApple       Source = "apple"
)

// ParseSource validates a source tag from the CLI or config.
func ParseSource(s string) (Source, error) {
	switch Source(s) {
	case SourceGitHub, SourceGitLab, SourceGoogleTasks, SourceApple:
		return Source(s), nil
	}
	return "", fmt.Errorf("reminders: unknown source %q", s)
}

// Heading returns the subheading title used when rendering a source group.
func (s Source) Heading() string {
	switch s {
	case SourceGitHub:
		return "GitHub"
	case SourceGitLab:
		return "GitLab"
	case SourceGoogleTasks:
		return "Google Tasks"
	case SourceApple:
		return "Apple Reminders"
	}
	return string(s)
}

// Item is a normalized task, issue, or review request from one source.
type Item struct {
	Source Source
	Title  string
	URL    string
	// Repo and Number are set for issue-tracker items ("owner/repo", #n).
	Repo   string
	Number int
	Labels []string
	Due    *time.Time
	Done   bool
}

// Fetcher retrieves open items from one source.
type Fetcher interface {
	Source() Source
	// Timeout bounds a single Fetch call. Desktop-automation sources need a
	// generous bound; network sources a short one.
	Timeout() time.Duration
	Fetch(ctx context.Context) ([]Item, error)
}

// RenderBlock renders one subsection per requested source, in request
// order. Sources with no items are omitted. Items within a group are
// ordered by due date ascending with undated items last, ties broken by
// title.
func RenderBlock(order []Source, results map[Source][]Item) string {
	var sections []string
	for _, src := range order {
		items := results[src]
		open := items[:0:0]
		for _, it := range items {
			if !it.Done {
				open = append(open, it)
			}
		}
		if len(open) == 0 {
			continue
		}
		sortItems(open)

		var b strings.Builder
		fmt.Fprintf(&b, "### %s\n", src.Heading())
		for _, it := range open {
			b.WriteString(formatItem(it))
			b.WriteByte('\n')
		}
		sections = append(sections, strings.TrimRight(b.String(), "\n"))
	}
	return strings.Join(sections, "\n\n")
}

func sortItems(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		switch {
		case a.Due == nil && b.Due == nil:
			return a.Title < b.Title
		case a.Due == nil:
			return false
		case b.Due == nil:
			return true
		case !a.Due.Equal(*b.Due):
			return a.Due.Before(*b.Due)
		}
		return a.Title < b.Title
	})
}

// formatItem renders a single checkbox line, with the link indented on a
// second line so long URLs do not break the checkbox layout.
func formatItem(it Item) string {
	var b strings.Builder
	b.WriteString("- [ ] ")
	if it.Repo != "" {
		fmt.Fprintf(&b, "[%s] ", it.Repo)
	}
	b.WriteString(it.Title)
	if it.Number > 0 {
		fmt.Fprintf(&b, " (#%d)", it.Number)
	}
	for _, l := range it.Labels {
		fmt.Fprintf(&b, " [%s]", l)
	}
	if it.Due != nil {
		fmt.Fprintf(&b, " - Due: %s", it.Due.Format("2006-01-02"))
	}
	if it.URL != "" {
		b.WriteString("\n      ")
		b.WriteString(it.URL)
	}
	return b.String()
}
