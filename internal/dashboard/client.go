package dashboard

import (
	"context"
	"errors"

	"github.com/OleksSobol/Utopia-Account-Creation---UAC/internal/record"
)

// ErrNoData is the user-visible "no data" condition: an edit or send was
// requested for a reference with no stored record.
var ErrNoData = errors.New("no customer data found, please search again")

// DeclaredError is a failure the server reported in-band (success:false).
// Its message is shown to the operator verbatim. Any other error from a
// Client is a transport failure.
type DeclaredError struct {
	Message string
}

func (e *DeclaredError) Error() string { return e.Message }

// CreateCustomerRequest is the payload for the create-customer endpoint.
type CreateCustomerRequest struct {
	OrderRef     string              `json:"orderref"`
	CustomerData *record.OrderRecord `json:"customer_data"`
	ServicePlan  string              `json:"service_plan"`
}

// CreateCustomerResult is the success response of the create-customer
// endpoint.
type CreateCustomerResult struct {
	CustomerID  string `json:"customer_id"`
	ServicePlan string `json:"service_plan,omitempty"`
	Ticket      string `json:"ticket,omitempty"`
}

// Client is the dashboard's view of the UAC server. Implemented over HTTP by
// the apiclient package; tests substitute in-memory fakes.
type Client interface {
	Lookup(ctx context.Context, orderRef string) (*record.OrderRecord, error)
	CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*CreateCustomerResult, error)
	Logout(ctx context.Context) error
}
