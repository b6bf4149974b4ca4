package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/daybook/internal/journalservice"
	"github.com/starford/daybook/internal/reminders"
)

// NewRouter creates a chi router with all API routes mounted under /api
// and the editor page at /.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /api/events inside the auth
// group.
func NewRouter(svc *journalservice.Service, sources []reminders.Source, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc, sources)

	r := chi.NewRouter()

	r.Get("/", PageHandler)

	r.Route("/api", func(api chi.Router) {
		api.Use(AuthMiddleware(authEnabled, token))

		// Entry read/write.
		api.Get("/entry", h.GetEntry)
		api.Post("/entry", h.SaveEntry)

		// Synthesis and listing.
		api.Post("/entries", h.CreateEntry)
		api.Get("/entries", h.ListEntries)

		// Search.
		api.Get("/search", h.Search)

		// Navigation index.
		api.Get("/summary", h.Summary)

		// SSE endpoint (protected by same auth middleware).
		if sseHandler != nil {
			api.Get("/events", sseHandler.ServeHTTP)
		}
	})

	return r
}
