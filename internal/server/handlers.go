package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	apperrors "helmwatch/internal/platform/errors"
	"helmwatch/internal/platform/markdown"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 200
)

type handler struct {
	readers Readers
}

// Health handles GET /health
func (h *handler) Health(w http.ResponseWriter, r *http.Request) {
	conn, err := h.readers.Connection.Status(r.Context())
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "connection": "unknown"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "connection": conn.State})
}

// Vitals handles GET /vitals
func (h *handler) Vitals(w http.ResponseWriter, r *http.Request) {
	out, err := h.readers.Vitals.Vitals(r.Context())
	respond(w, out, err)
}

// Connection handles GET /connection
func (h *handler) Connection(w http.ResponseWriter, r *http.Request) {
	out, err := h.readers.Connection.Status(r.Context())
	respond(w, out, err)
}

// Position handles GET /position
func (h *handler) Position(w http.ResponseWriter, r *http.Request) {
	out, err := h.readers.Position.Last(r.Context())
	respond(w, out, err)
}

// ListCrew handles GET /crew
func (h *handler) ListCrew(w http.ResponseWriter, r *http.Request) {
	out, err := h.readers.Crew.List(r.Context())
	respond(w, out, err)
}

// GetCrew handles GET /crew/{id}
func (h *handler) GetCrew(w http.ResponseWriter, r *http.Request) {
	out, err := h.readers.Crew.Get(r.Context(), chi.URLParam(r, "id"))
	respond(w, out, err)
}

// SessionStatus handles GET /session
func (h *handler) SessionStatus(w http.ResponseWriter, r *http.Request) {
	out, err := h.readers.Session.Status(r.Context())
	respond(w, out, err)
}

// SessionHistory handles GET /session/history?limit=N
func (h *handler) SessionHistory(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryLimit(w, r, defaultHistoryLimit)
	if !ok {
		return
	}
	out, err := h.readers.Session.History(r.Context(), limit)
	respond(w, out, err)
}

// Logbook handles GET /logbook/{id}. The entry is rendered as HTML unless
// the client asks for ?format=markdown.
func (h *handler) Logbook(w http.ResponseWriter, r *http.Request) {
	entry, err := h.readers.Session.Logbook(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeAppError(w, err)
		return
	}
	if r.URL.Query().Get("format") == "markdown" {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		_, _ = w.Write([]byte(entry.Markdown))
		return
	}
	doc, err := markdown.Parse(entry.Markdown)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "parse logbook entry: "+err.Error())
		return
	}
	body, err := doc.HTML()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "render logbook entry: "+err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = fmt.Fprintf(w, "<!doctype html>\n<html><head><title>Voyage %s</title></head><body>\n%s</body></html>\n",
		html.EscapeString(entry.SessionID), body)
}

// ListAudit handles GET /audit?type=T&crew=ID&limit=N
func (h *handler) ListAudit(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryLimit(w, r, defaultHistoryLimit)
	if !ok {
		return
	}
	q := r.URL.Query()
	out, err := h.readers.Audit.List(r.Context(), q.Get("type"), q.Get("crew"), limit)
	respond(w, out, err)
}

// CountAudit handles GET /audit/count?type=T&crew=ID
func (h *handler) CountAudit(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	n, err := h.readers.Audit.Count(r.Context(), q.Get("type"), q.Get("crew"))
	respond(w, map[string]int{"count": n}, err)
}

func queryLimit(w http.ResponseWriter, r *http.Request, fallback int) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		writeError(w, http.StatusBadRequest, "limit must be a positive integer")
		return 0, false
	}
	return min(n, maxHistoryLimit), true
}

func respond(w http.ResponseWriter, v any, err error) {
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func writeAppError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound), errors.Is(err, apperrors.ErrNoActiveSession):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, apperrors.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
