package web

import "github.com/starford/daybook/internal/journalservice"

// SaveEntryRequest is the request body for saving an entry.
type SaveEntryRequest struct {
	Date    string `json:"date"`
	Content string `json:"content"`
}

// CreateEntryRequest is the request body for synthesizing an entry.
type CreateEntryRequest struct {
	Date string `json:"date"`
}

// EntryDetail is the full entry response type (aliased from the domain
// layer).
type EntryDetail = journalservice.EntryDetail

// EntryListItem is a lightweight item in a list response (aliased from the
// domain layer).
type EntryListItem = journalservice.EntryListItem

// EntryListResponse wraps paginated entry listings.
type EntryListResponse struct {
	Entries []EntryListItem `json:"entries"`
	Total   int             `json:"total"`
}

// SearchResult is a single search hit in the API response.
type SearchResult struct {
	Path    string `json:"path"`
	Date    string `json:"date"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []SearchResult `json:"results"`
}
