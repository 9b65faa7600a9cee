package dashboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/OleksSobol/Utopia-Account-Creation---UAC/internal/record"
)

// Confirmer asks the operator to approve a create-customer request before
// anything is sent. The console implements this as a y/N prompt, standing in
// for the browser confirm dialog.
type Confirmer interface {
	ConfirmCreate(name, email, servicePlan string) bool
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(name, email, servicePlan string) bool

func (f ConfirmFunc) ConfirmCreate(name, email, servicePlan string) bool {
	return f(name, email, servicePlan)
}

// SubmitController pushes a stored (possibly edited) record to the
// create-customer endpoint.
type SubmitController struct {
	store  *record.Store
	log    *Log
	client Client
}

// NewSubmitController wires a controller over the shared store and log.
func NewSubmitController(store *record.Store, log *Log, client Client) *SubmitController {
	return &SubmitController{store: store, log: log, client: client}
}

// Send submits the current record for orderRef. Requires a prior successful
// lookup (ErrNoData otherwise, nothing sent) and explicit confirmation;
// declining aborts silently with no request and no state change. Nothing is
// mutated speculatively, so failures need no rollback.
func (c *SubmitController) Send(ctx context.Context, orderRef string, confirm Confirmer) error {
	rec, ok := c.store.Get(orderRef)
	if !ok {
		c.log.AppendMessage(LevelError, "[ERROR] No customer data found. Please search again.")
		return ErrNoData
	}

	plan, ok := c.store.Plan(orderRef)
	if !ok {
		plan = record.ServicePlan(rec)
	}

	var name, email string
	if cust := rec.Customer; cust != nil {
		name = cust.FirstName + " " + cust.LastName
		email = cust.Email
	}
	if !confirm.ConfirmCreate(name, email, plan) {
		return nil
	}

	c.log.AppendMessage(LevelInfo, fmt.Sprintf("Sending customer data to PowerCode for orderref: %s...", orderRef))
	c.log.SetStatus("Creating...", StatusLoading)

	result, err := c.client.CreateCustomer(ctx, CreateCustomerRequest{
		OrderRef:     orderRef,
		CustomerData: rec,
		ServicePlan:  plan,
	})
	if err != nil {
		var declared *DeclaredError
		if errors.As(err, &declared) {
			c.log.AppendMessage(LevelError, fmt.Sprintf("[ERROR] %s", declared.Message))
		} else {
			c.log.AppendMessage(LevelError, fmt.Sprintf("[ERROR] Failed to create customer: %v", err))
		}
		c.log.SetStatus("Error", StatusError)
		return nil
	}

	ticket := result.Ticket
	if ticket == "" {
		ticket = "Created"
	}
	resultPlan := result.ServicePlan
	if resultPlan == "" {
		resultPlan = "N/A"
	}
	c.log.AppendMessage(LevelSuccess, fmt.Sprintf(
		"Customer Created Successfully! PowerCode ID: %s | Service Plan: %s | Ticket: %s",
		result.CustomerID, resultPlan, ticket))
	c.log.SetStatus("Success", StatusSuccess)
	return nil
}
