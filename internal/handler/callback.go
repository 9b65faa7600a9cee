package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/OleksSobol/Utopia-Account-Creation---UAC/internal/record"
)

// CallbackHandler receives order webhooks from Utopia and provisions new
// orders end-to-end without operator involvement.
type CallbackHandler struct {
	utopia      UtopiaClient
	provisioner *Provisioner
}

// NewCallbackHandler creates a new CallbackHandler.
func NewCallbackHandler(utopia UtopiaClient, provisioner *Provisioner) *CallbackHandler {
	return &CallbackHandler{utopia: utopia, provisioner: provisioner}
}

// RegisterRoutes registers the webhook endpoint on the given Chi router.
func (h *CallbackHandler) RegisterRoutes(r chi.Router) {
	r.Post("/api-callback", h.Callback)
}

type callbackRequest struct {
	Event    string `json:"event"`
	OrderRef string `json:"orderref"`
	Msg      string `json:"msg"`
}

// Callback handles a Utopia order event. Only "Project New Order" triggers
// provisioning; everything else is acknowledged and ignored. The response
// shape is fixed by the Utopia side of the integration.
func (h *CallbackHandler) Callback(w http.ResponseWriter, r *http.Request) {
	var req callbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusOK, map[string]string{"error": "Error processing API callback"})
		return
	}
	log.Printf("callback: event=%q orderref=%q msg=%q", req.Event, req.OrderRef, req.Msg)

	if req.Msg != "Project New Order" {
		log.Printf("callback: no handler for message %q", req.Msg)
		writeJSON(w, http.StatusOK, map[string]string{"data": "Information received"})
		return
	}

	rec, err := h.utopia.ContractLookup(r.Context(), req.OrderRef)
	if err != nil {
		log.Printf("ERROR: callback lookup failed for order %s: %v", req.OrderRef, err)
		writeJSON(w, http.StatusOK, map[string]string{"error": "Error processing API callback"})
		return
	}

	if _, err := h.provisioner.Provision(r.Context(), req.OrderRef, rec, record.ServicePlan(rec)); err != nil {
		// A duplicate account is a handled outcome: the admins were mailed
		// and there is nothing to retry.
		var dup *DuplicateCustomerError
		if errors.As(err, &dup) {
			log.Printf("callback: customer for order %s already exists (PowerCode ID %s)", req.OrderRef, dup.CustomerID)
			writeJSON(w, http.StatusOK, map[string]string{"data": "Information received"})
			return
		}
		log.Printf("ERROR: callback provisioning failed for order %s: %v", req.OrderRef, err)
		writeJSON(w, http.StatusOK, map[string]string{"error": "Error processing API callback"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"data": "Information received"})
}
