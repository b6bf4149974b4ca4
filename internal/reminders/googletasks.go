package reminders

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultTasksAPI = "https://tasks.googleapis.com/tasks/v1"

// GoogleTasksFetcher pulls incomplete tasks from every task list of the
// authenticated account.
type GoogleTasksFetcher struct {
	Tokens  TokenStore
	Client  *http.Client
	BaseURL string
	Bound   time.Duration
}

func (f *GoogleTasksFetcher) Source() Source { return SourceGoogleTasks }

func (f *GoogleTasksFetcher) Timeout() time.Duration {
	if f.Bound > 0 {
		return f.Bound
	}
	return 30 * time.Second
}

func (f *GoogleTasksFetcher) Fetch(ctx context.Context) ([]Item, error) {
	token, err := f.Tokens.Token("google")
	if err != nil {
		return nil, err
	}

	var lists struct {
		Items []struct {
			ID string `json:"id"`
		} `json:"items"`
	}
	if err := f.get(ctx, token, "/users/@me/lists", &lists); err != nil {
		return nil, fmt.Errorf("reminders: google task lists: %w", err)
	}

	var items []Item
	for _, list := range lists.Items {
		var tasks struct {
			Items []struct {
				Title string `json:"title"`
				Due   string `json:"due"`
			} `json:"items"`
		}
		path := "/lists/" + list.ID + "/tasks?showCompleted=false"
		if err := f.get(ctx, token, path, &tasks); err != nil {
			return nil, fmt.Errorf("reminders: google tasks for list %s: %w", list.ID, err)
		}
		for _, task := range tasks.Items {
			title := strings.TrimSpace(task.Title)
			if title == "" {
				continue
			}
			it := Item{Source: SourceGoogleTasks, Title: title}
			if task.Due != "" {
				if due, err := time.Parse(time.RFC3339, task.Due); err == nil {
					d := due.UTC().Truncate(24 * time.Hour)
					it.Due = &d
				}
			}
			items = append(items, it)
		}
	}
	return items, nil
}

func (f *GoogleTasksFetcher) get(ctx context.Context, token, path string, out any) error {
	base := f.BaseURL
	if base == "" {
		base = defaultTasksAPI
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

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
