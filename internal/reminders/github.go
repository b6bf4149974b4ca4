package reminders

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultGitHubAPI = "https://api.github.com"

// GitHubFetcher pulls open assigned issues, assigned pull requests, and
// review requests for the authenticated user.
type GitHubFetcher struct {
	Tokens  TokenStore
	Client  *http.Client
	BaseURL string // defaults to api.github.com; overridable for tests
	Bound   time.Duration
}

func (f *GitHubFetcher) Source() Source { return SourceGitHub }

func (f *GitHubFetcher) Timeout() time.Duration {
	if f.Bound > 0 {
		return f.Bound
	}
	return 15 * time.Second
}

type githubIssue struct {
	Title         string `json:"title"`
	HTMLURL       string `json:"html_url"`
	Number        int    `json:"number"`
	RepositoryURL string `json:"repository_url"`
	Labels        []struct {
		Name string `json:"name"`
	} `json:"labels"`
	Milestone *struct {
		DueOn string `json:"due_on"`
	} `json:"milestone"`
	PullRequest json.RawMessage `json:"pull_request"`
}

func (f *GitHubFetcher) Fetch(ctx context.Context) ([]Item, error) {
	token, err := f.Tokens.Token("github")
	if err != nil {
		return nil, err
	}

	var items []Item

	// Assigned issues and PRs come back from one endpoint; the presence of
	// the pull_request field tells them apart.
	var assigned []githubIssue
	if err := f.get(ctx, token, "/issues?filter=assigned&state=open&per_page=100", &assigned); err != nil {
		return nil, fmt.Errorf("reminders: github assigned: %w", err)
	}
	for _, is := range assigned {
		items = append(items, is.toItem())
	}

	var search struct {
		Items []githubIssue `json:"items"`
	}
	q := url.QueryEscape("type:pr state:open review-requested:@me")
	if err := f.get(ctx, token, "/search/issues?per_page=100&q="+q, &search); err != nil {
		return nil, fmt.Errorf("reminders: github review requests: %w", err)
	}
	for _, is := range search.Items {
		items = append(items, is.toItem())
	}

	return items, nil
}

func (f *GitHubFetcher) get(ctx context.Context, token, path string, out any) error {
	base := f.BaseURL
	if base == "" {
		base = defaultGitHubAPI
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "daybook")

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

func (is githubIssue) toItem() Item {
	it := Item{
		Source: SourceGitHub,
		Title:  is.Title,
		URL:    is.HTMLURL,
		Number: is.Number,
		Repo:   repoFromURL(is.RepositoryURL),
	}
	for _, l := range is.Labels {
		it.Labels = append(it.Labels, l.Name)
	}
	if is.Milestone != nil && is.Milestone.DueOn != "" {
		if due, err := time.Parse(time.RFC3339, is.Milestone.DueOn); err == nil {
			d := due.UTC().Truncate(24 * time.Hour)
			it.Due = &d
		}
	}
	return it
}

// repoFromURL extracts "owner/repo" from an API URL like
// "https://api.github.com/repos/owner/repo".
func repoFromURL(u string) string {
	parts := strings.Split(strings.TrimRight(u, "/"), "/")
	if len(parts) < 2 {
		return ""
	}
	return parts[len(parts)-2] + "/" + parts[len(parts)-1]
}
