package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(h *Handler, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Generation.
	r.Post("/generate-agenda", h.GenerateAgenda)

	// Agendas CRUD.
	r.Post("/agendas", h.CreateAgenda)
	r.Get("/agendas", h.ListAgendas)
	r.Get("/agendas/{id}", h.GetAgenda)
	r.Put("/agendas/{id}", h.UpdateAgenda)
	r.Delete("/agendas/{id}", h.DeleteAgenda)

	// Share links.
	r.Get("/shared/{token}", h.GetSharedAgenda)

	// Templates.
	r.Get("/templates", h.ListTemplates)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
