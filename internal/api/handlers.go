package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/ansuz/internal/aigen"
	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/sse"
	"github.com/starford/ansuz/internal/store"
	"github.com/starford/ansuz/internal/templates"
)

// invalidTitleMsg is the user-facing message for titles rejected by the
// heuristic filter.
const invalidTitleMsg = `Please enter a specific meeting title (e.g., "Sprint Planning", "Q3 Sales Review").`

// Handler holds API route handlers.
type Handler struct {
	gen     *aigen.Service
	store   store.AgendaStore
	catalog *templates.Catalog
	broker  *sse.Broker
}

// NewHandler creates a new Handler. broker may be nil; events are then
// dropped.
func NewHandler(gen *aigen.Service, st store.AgendaStore, catalog *templates.Catalog, broker *sse.Broker) *Handler {
	return &Handler{gen: gen, store: st, catalog: catalog, broker: broker}
}

func (h *Handler) publishAgendaEvent(kind, id string) {
	if h.broker != nil {
		h.broker.PublishAgendaEvent(kind, id)
	}
}

// GenerateAgenda handles POST /api/generate-agenda.
//
// The response is the Agenda object verbatim on success. The three 422
// cases (bad title, unparseable model output, bad structure) carry specific
// messages; every other failure is generalized to a 500 with details kept in
// server-side logs.
func (h *Handler) GenerateAgenda(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("meetingTitle is required"))
		return
	}
	title, ok := body["meetingTitle"].(string)
	if !ok || title == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("meetingTitle is required"))
		return
	}

	agenda, err := h.gen.Generate(r.Context(), title)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrInvalidTitle):
			writeJSON(w, http.StatusUnprocessableEntity, errorBody(invalidTitleMsg))
		case errors.Is(err, apperr.ErrMalformedResponse):
			writeJSON(w, http.StatusUnprocessableEntity, errorBody("Model did not return valid JSON"))
		case errors.Is(err, apperr.ErrBadStructure):
			writeJSON(w, http.StatusUnprocessableEntity, errorBody("Invalid agenda structure from model"))
		default:
			var perr *apperr.ProviderError
			if errors.As(err, &perr) {
				slog.Error("agenda generation failed",
					slog.Int("status", perr.Status),
					slog.String("code", perr.Code),
					slog.String("type", perr.Type),
					slog.String("message", perr.Message))
			} else {
				slog.Error("agenda generation failed", slog.String("error", err.Error()))
			}
			writeJSON(w, http.StatusInternalServerError, errorBody("Failed to generate agenda"))
		}
		return
	}
	writeJSON(w, http.StatusOK, agenda)
}

// CreateAgenda handles POST /api/agendas.
func (h *Handler) CreateAgenda(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req CreateAgendaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	rec, err := h.store.CreateAgenda(req.createParams())
	if err != nil {
		slog.Error("create agenda failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to save agenda"))
		return
	}
	h.publishAgendaEvent("created", rec.ID)
	writeJSON(w, http.StatusCreated, rec)
}

// GetAgenda handles GET /api/agendas/{id}.
func (h *Handler) GetAgenda(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := h.store.GetAgendaByID(id)
	if err != nil {
		slog.Error("get agenda failed", slog.String("id", id), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to load agenda"))
		return
	}
	if rec == nil {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// GetSharedAgenda handles GET /api/shared/{token}. Tokens on private
// records do not resolve; a successful view increments the record's view
// count.
func (h *Handler) GetSharedAgenda(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	rec, err := h.store.GetAgendaByShareToken(token)
	if err != nil {
		slog.Error("get shared agenda failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to load shared agenda"))
		return
	}
	if rec == nil {
		writeJSON(w, http.StatusNotFound, errorBody("agenda not found or not public"))
		return
	}
	if h.broker != nil {
		h.broker.PublishViewEvent(rec.ID)
	}
	writeJSON(w, http.StatusOK, rec)
}

// UpdateAgenda handles PUT /api/agendas/{id}.
func (h *Handler) UpdateAgenda(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	id := chi.URLParam(r, "id")

	var req UpdateAgendaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}

	rec, err := h.store.UpdateAgenda(id, req.updateParams())
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
			return
		}
		slog.Error("update agenda failed", slog.String("id", id), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to save agenda"))
		return
	}
	h.publishAgendaEvent("updated", rec.ID)
	writeJSON(w, http.StatusOK, rec)
}

// DeleteAgenda handles DELETE /api/agendas/{id}.
func (h *Handler) DeleteAgenda(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.store.DeleteAgenda(id); err != nil {
		slog.Error("delete agenda failed", slog.String("id", id), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to delete agenda"))
		return
	}
	h.publishAgendaEvent("deleted", id)
	w.WriteHeader(http.StatusNoContent)
}

// ListAgendas handles GET /api/agendas?user_id=.
func (h *Handler) ListAgendas(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'user_id' is required"))
		return
	}
	agendas, err := h.store.ListAgendasByUser(userID)
	if err != nil {
		slog.Error("list agendas failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to list agendas"))
		return
	}
	writeJSON(w, http.StatusOK, AgendaListResponse{Agendas: agendas})
}

// ListTemplates handles GET /api/templates.
func (h *Handler) ListTemplates(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, TemplateListResponse{Templates: h.catalog.Items()})
}
