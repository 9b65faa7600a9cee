package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// LookupHandler serves order lookups against the Utopia SP API.
type LookupHandler struct {
	utopia UtopiaClient
	hub    Broadcaster
}

// NewLookupHandler creates a new LookupHandler.
func NewLookupHandler(utopia UtopiaClient, hub Broadcaster) *LookupHandler {
	return &LookupHandler{utopia: utopia, hub: hub}
}

// RegisterRoutes registers lookup endpoints on the given Chi router.
func (h *LookupHandler) RegisterRoutes(r chi.Router) {
	r.Post("/api/lookup", h.Lookup)
}

type lookupRequest struct {
	OrderRef string `json:"orderref"`
}

// Lookup fetches the order behind an order reference. Failures the upstream
// declares come back as success:false with the message intact.
func (h *LookupHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	var req lookupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	orderRef := strings.TrimSpace(req.OrderRef)
	if orderRef == "" {
		writeDeclared(w, "orderref is required")
		return
	}

	rec, err := h.utopia.ContractLookup(r.Context(), orderRef)
	if err != nil {
		log.Printf("ERROR: lookup failed for order %s: %v", orderRef, err)
		writeDeclared(w, err.Error())
		return
	}

	if h.hub != nil {
		h.hub.BroadcastJSON("lookup", map[string]string{"orderref": orderRef})
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": rec})
}
