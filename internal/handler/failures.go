package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/OleksSobol/Utopia-Account-Creation---UAC/internal/failure"
)

// FailureStore defines the tracker methods the failure endpoints need.
// Satisfied by *failure.Tracker; narrow interface for testability.
type FailureStore interface {
	List(includeResolved bool) ([]failure.Record, error)
	Resolve(orderRef, note string) (bool, error)
	Remove(orderRef string) (bool, error)
	Stats() (*failure.Stats, error)
}

// FailuresHandler exposes the failed-order tracker to the dashboard.
type FailuresHandler struct {
	store FailureStore
}

// NewFailuresHandler creates a new FailuresHandler.
func NewFailuresHandler(store FailureStore) *FailuresHandler {
	return &FailuresHandler{store: store}
}

// RegisterRoutes registers failure endpoints on the given Chi router.
func (h *FailuresHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/failures", h.List)
	r.Get("/api/failures/stats", h.Stats)
	r.Post("/api/failures/{orderref}/resolve", h.Resolve)
	r.Delete("/api/failures/{orderref}", h.Remove)
}

// List returns tracked failures, unresolved only unless ?resolved=true.
func (h *FailuresHandler) List(w http.ResponseWriter, r *http.Request) {
	includeResolved := r.URL.Query().Get("resolved") == "true"
	list, err := h.store.List(includeResolved)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "failures": list})
}

// Stats returns counts over all tracked failures.
func (h *FailuresHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.Stats()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "stats": stats})
}

type resolveRequest struct {
	Note string `json:"note"`
}

// Resolve marks a failure as handled.
func (h *FailuresHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	orderRef := chi.URLParam(r, "orderref")

	var req resolveRequest
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req) // note is optional
	}

	ok, err := h.store.Resolve(orderRef, req.Note)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "failure record not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Remove deletes a failure record.
func (h *FailuresHandler) Remove(w http.ResponseWriter, r *http.Request) {
	orderRef := chi.URLParam(r, "orderref")

	ok, err := h.store.Remove(orderRef)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "failure record not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
