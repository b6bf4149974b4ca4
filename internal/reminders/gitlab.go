package reminders

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultGitLabAPI = "https://gitlab.com/api/v4"

// GitLabFetcher pulls open assigned issues and merge requests for the
// authenticated user.
type GitLabFetcher struct {
	Tokens  TokenStore
	Client  *http.Client
	BaseURL string
	Bound   time.Duration
}

func (f *GitLabFetcher) Source() Source { return SourceGitLab }

func (f *GitLabFetcher) Timeout() time.Duration {
	if f.Bound > 0 {
		return f.Bound
	}
	return 15 * time.Second
}

type gitlabItem struct {
	Title      string   `json:"title"`
	WebURL     string   `json:"web_url"`
	IID        int      `json:"iid"`
	Labels     []string `json:"labels"`
	DueDate    string   `json:"due_date"`
	References struct {
		Full string `json:"full"` // e.g. "group/project#42"
	} `json:"references"`
}

func (f *GitLabFetcher) Fetch(ctx context.Context) ([]Item, error) {
	token, err := f.Tokens.Token("gitlab")
	if err != nil {
		return nil, err
	}

	var items []Item
	for _, path := range []string{
		"/issues?scope=assigned_to_me&state=opened&per_page=100",
		"/merge_requests?scope=assigned_to_me&state=opened&per_page=100",
	} {
		var page []gitlabItem
		if err := f.get(ctx, token, path, &page); err != nil {
			return nil, fmt.Errorf("reminders: gitlab %s: %w", path, err)
		}
		for _, gi := range page {
			items = append(items, gi.toItem())
		}
	}
	return items, nil
}

func (f *GitLabFetcher) get(ctx context.Context, token, path string, out any) error {
	base := f.BaseURL
	if base == "" {
		base = defaultGitLabAPI
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("PRIVATE-TOKEN", token)

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (gi gitlabItem) toItem() Item {
	it := Item{
		Source: SourceGitLab,
		Title:  gi.Title,
		URL:    gi.WebURL,
		Number: gi.IID,
		Labels: gi.Labels,
	}
	// "group/project#42" → "group/project".
	if i := strings.IndexAny(gi.References.Full, "#!"); i > 0 {
		it.Repo = gi.References.Full[:i]
	}
	if gi.DueDate != "" {
		if due, err := time.Parse("2006-01-02", gi.DueDate); err == nil {
			it.Due = &due
		}
	}
	return it
}
