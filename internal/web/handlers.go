package web

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/starford/daybook/internal/apperr"
	"github.com/starford/daybook/internal/journalservice"
	"github.com/starford/daybook/internal/reminders"
)

// Handler holds API route handlers.
type Handler struct {
	svc     *journalservice.Service
	sources []reminders.Source
	now     func() time.Time
}

// NewHandler creates a new Handler. sources is the ordered set of reminder
// sources used when synthesizing entries over the API.
func NewHandler(svc *journalservice.Service, sources []reminders.Source) *Handler {
	return &Handler{svc: svc, sources: sources, now: time.Now}
}

// entryDate parses the date query parameter, defaulting to today.
func (h *Handler) entryDate(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		now := h.now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse("2006-01-02", raw)
}

// GetEntry handles GET /api/entry.
func (h *Handler) GetEntry(w http.ResponseWriter, r *http.Request) {
	date, err := h.entryDate(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid date, want YYYY-MM-DD"))
		return
	}
	entry, err := h.svc.GetEntry(r.Context(), date)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("get entry failed", slog.String("date", date.Format("2006-01-02")), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// SaveEntry handles POST /api/entry.
func (h *Handler) SaveEntry(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)
	var req SaveEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Date == "" || req.Content == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("date and content are required"))
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid date, want YYYY-MM-DD"))
		return
	}

	// Strip surrounding quotes if present (standard ETag format).
	ifMatch := strings.Trim(r.Header.Get("If-Match"), `"`)

	entry, err := h.svc.SaveEntry(r.Context(), date, []byte(req.Content), ifMatch)
	if err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			writeJSON(w, http.StatusConflict, errorBody("checksum mismatch"))
		} else {
			slog.Error("save entry failed", slog.String("date", req.Date), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// CreateEntry handles POST /api/entries: full synthesis with carryover and
// reminders.
func (h *Handler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	// An empty body means "today".
	var req CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}

	now := h.now()
	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if req.Date != "" {
		var err error
		date, err = time.Parse("2006-01-02", req.Date)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("invalid date, want YYYY-MM-DD"))
			return
		}
	}

	entry, err := h.svc.CreateEntry(r.Context(), date, h.sources)
	if err != nil {
		slog.Error("create entry failed", slog.String("date", date.Format("2006-01-02")), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	status := http.StatusOK
	if entry.Created {
		status = http.StatusCreated
	}
	writeJSON(w, status, entry)
}

// ListEntries handles GET /api/entries.
func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))
	year, _ := strconv.Atoi(q.Get("year"))
	month, _ := strconv.Atoi(q.Get("month"))

	items, total, err := h.svc.ListEntries(r.Context(), limit, offset, year, time.Month(month))
	if err != nil {
		slog.Error("list entries failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	if items == nil {
		items = []EntryListItem{}
	}
	writeJSON(w, http.StatusOK, EntryListResponse{Entries: items, Total: total})
}

// Search handles GET /api/search.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	hits, err := h.svc.Search(r.Context(), q, limit)
	if err != nil {
		slog.Error("search failed", slog.String("query", q), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	results := make([]SearchResult, len(hits))
	for i, hit := range hits {
		results[i] = SearchResult{
			Path:    hit.Path,
			Date:    hit.Date.Format("2006-01-02"),
			Title:   hit.Title,
			Snippet: hit.Snippet,
		}
	}
	writeJSON(w, http.StatusOK, SearchResponse{Results: results})
}

// Summary handles GET /api/summary.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	sum, err := h.svc.Summary(r.Context())
	if err != nil {
		slog.Error("summary failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, sum)
}
