package reminders

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

type staticTokens map[string]string

func (s staticTokens) Token(name string) (string, error) {
	return s[name], nil
}

func TestGitHubFetcher_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("auth header = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/issues":
			w.Write([]byte(`[
				{"title":"An issue","html_url":"https://github.com/o/r/issues/1","number":1,
				 "repository_url":"https://api.github.com/repos/o/r",
				 "labels":[{"name":"bug"}],
				 "milestone":{"due_on":"2026-01-15T00:00:00Z"}},
				{"title":"A PR","html_url":"https://github.com/o/r/pull/2","number":2,
				 "repository_url":"https://api.github.com/repos/o/r",
				 "labels":[],"pull_request":{}}
			]`))
		case "/search/issues":
			w.Write([]byte(`{"items":[
				{"title":"Review me","html_url":"https://github.com/o/r/pull/3","number":3,
				 "repository_url":"https://api.github.com/repos/o/r","labels":[]}
			]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := &GitHubFetcher{
		Tokens:  staticTokens{"github": "tok"},
		BaseURL: srv.URL,
	}
	items, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("len = %d, want 3", len(items))
	}
	if items[0].Repo != "o/r" || items[0].Number != 1 {
		t.Errorf("item 0 = %+v", items[0])
	}
	if items[0].Due == nil || items[0].Due.Format("2006-01-02") != "2026-01-15" {
		t.Errorf("item 0 due = %v", items[0].Due)
	}
	if items[2].Title != "Review me" {
		t.Errorf("item 2 = %+v", items[2])
	}
}

func TestGitHubFetcher_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	f := &GitHubFetcher{Tokens: staticTokens{"github": "tok"}, BaseURL: srv.URL}
	if _, err := f.Fetch(context.Background()); err == nil {
		t.Error("expected error on 403")
	}
}
