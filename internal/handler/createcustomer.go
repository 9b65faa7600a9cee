package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/OleksSobol/Utopia-Account-Creation---UAC/internal/record"
)

// CreateCustomerHandler pushes a looked-up order into PowerCode.
type CreateCustomerHandler struct {
	provisioner *Provisioner
}

// NewCreateCustomerHandler creates a new CreateCustomerHandler.
func NewCreateCustomerHandler(provisioner *Provisioner) *CreateCustomerHandler {
	return &CreateCustomerHandler{provisioner: provisioner}
}

// RegisterRoutes registers creation endpoints on the given Chi router.
func (h *CreateCustomerHandler) RegisterRoutes(r chi.Router) {
	r.Post("/api/create-customer", h.CreateCustomer)
}

type createCustomerRequest struct {
	OrderRef     string              `json:"orderref"`
	CustomerData *record.OrderRecord `json:"customer_data"`
	ServicePlan  string              `json:"service_plan"`
}

type createCustomerResponse struct {
	Success     bool   `json:"success"`
	CustomerID  string `json:"customer_id"`
	ServicePlan string `json:"service_plan"`
	Ticket      string `json:"ticket"`
}

// CreateCustomer runs the provisioning flow for the submitted order data.
// The dashboard sends its possibly operator-edited copy of the record, so
// the flow uses that rather than looking the order up again.
func (h *CreateCustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req createCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	orderRef := strings.TrimSpace(req.OrderRef)
	if orderRef == "" || req.CustomerData == nil {
		writeDeclared(w, "orderref and customer_data are required")
		return
	}

	result, err := h.provisioner.Provision(r.Context(), orderRef, req.CustomerData, req.ServicePlan)
	if err != nil {
		log.Printf("ERROR: create customer failed for order %s: %v", orderRef, err)
		writeDeclared(w, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, createCustomerResponse{
		Success:     true,
		CustomerID:  result.CustomerID,
		ServicePlan: result.ServicePlan,
		Ticket:      result.Ticket,
	})
}
