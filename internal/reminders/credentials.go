package reminders

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"
)

// TokenStore resolves the credential for a named provider. It is injected
// into fetchers so that neither the core nor its tests depend on a fixed
// on-disk location or ambient environment.
type TokenStore interface {
	// Token returns the credential for name ("github", "gitlab", "google").
	Token(name string) (string, error)
}

// EnvTokenStore resolves tokens from environment variables
// (GITHUB_TOKEN, GITLAB_TOKEN, ...).
type EnvTokenStore struct{}

// Token looks up <NAME>_TOKEN in the environment.
func (EnvTokenStore) Token(name string) (string, error) {
	key := strings.ToUpper(strings.ReplaceAll(name, "-", "_")) + "_TOKEN"
	v := os.Getenv(key)
	if v == "" {
		return "", fmt.Errorf("reminders: %s not set", key)
	}
	return v, nil
}

// googleToken is the persisted OAuth token shape.
type googleToken struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	Expiry       time.Time `json:"expiry"`
}

// GoogleTokenStore serves a stored Google OAuth access token, refreshing it
// through the token endpoint when expired. Token acquisition (the initial
// consent flow) happens outside this package; the store only consumes and
// rotates what was persisted.
type GoogleTokenStore struct {
	Path         string
	ClientID     string
	ClientSecret string
	Client       *http.Client

	// TokenURL is overridable for tests; defaults to Google's endpoint.
	TokenURL string

	mu sync.Mutex
}

func (s *GoogleTokenStore) Token(name string) (string, error) {
	if name != "google" {
		return "", fmt.Errorf("reminders: google token store cannot serve %q", name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return "", fmt.Errorf("reminders: read token file: %w", err)
	}
	var tok googleToken
	if err := json.Unmarshal(data, &tok); err != nil {
		return "", fmt.Errorf("reminders: parse token file: %w", err)
	}

	if tok.AccessToken != "" && time.Now().Before(tok.Expiry.Add(-time.Minute)) {
		return tok.AccessToken, nil
	}
	if tok.RefreshToken == "" {
		return "", fmt.Errorf("reminders: stored google token expired and has no refresh token")
	}
	refreshed, err := s.refresh(tok.RefreshToken)
	if err != nil {
		return "", err
	}
	// Best-effort persist of the rotated token.
	if out, err := json.MarshalIndent(refreshed, "", "  "); err == nil {
		_ = os.WriteFile(s.Path, out, 0o600)
	}
	return refreshed.AccessToken, nil
}

func (s *GoogleTokenStore) refresh(refreshToken string) (*googleToken, error) {
	endpoint := s.TokenURL
	if endpoint == "" {
		endpoint = "https://oauth2.googleapis.com/token"
	}
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	form := url.Values{
		"client_id":     {s.ClientID},
		"client_secret": {s.ClientSecret},
		"refresh_token": {refreshToken},
		"grant_type":    {"refresh_token"},
	}
	resp, err := client.PostForm(endpoint, form)
	if err != nil {
		return nil, fmt.Errorf("reminders: refresh google token: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reminders: refresh google token: status %d", resp.StatusCode)
	}

	var body struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("reminders: decode refresh response: %w", err)
	}
	return &googleToken{
		AccessToken:  body.AccessToken,
		RefreshToken: refreshToken,
		Expiry:       time.Now().Add(time.Duration(body.ExpiresIn) * time.Second),
	}, nil
}
