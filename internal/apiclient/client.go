// Package apiclient implements dashboard.Client over the UAC server's JSON
// endpoints.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/OleksSobol/Utopia-Account-Creation---UAC/internal/dashboard"
	"github.com/OleksSobol/Utopia-Account-Creation---UAC/internal/record"
)

// Client talks to a UAC server. BaseURL has no trailing slash.
type Client struct {
	BaseURL string
	HTTP    *http.Client

	// Token, when set, is sent as a bearer credential. The browser relies on
	// the session cookie instead; the console uses this.
	Token string
}

// New creates a client with a default HTTP timeout.
func New(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

type lookupRequest struct {
	OrderRef string `json:"orderref"`
}

type lookupResponse struct {
	Success bool                `json:"success"`
	Data    *record.OrderRecord `json:"data"`
	Error   string              `json:"error"`
}

type createCustomerResponse struct {
	Success     bool   `json:"success"`
	CustomerID  string `json:"customer_id"`
	ServicePlan string `json:"service_plan"`
	Ticket      string `json:"ticket"`
	Error       string `json:"error"`
}

// Lookup fetches the order record for orderRef. A success:false response
// surfaces as *dashboard.DeclaredError; anything else is transport.
func (c *Client) Lookup(ctx context.Context, orderRef string) (*record.OrderRecord, error) {
	var resp lookupResponse
	if err := c.post(ctx, "/api/lookup", lookupRequest{OrderRef: orderRef}, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &dashboard.DeclaredError{Message: resp.Error}
	}
	if resp.Data == nil {
		return nil, fmt.Errorf("lookup succeeded without data")
	}
	return resp.Data, nil
}

// CreateCustomer pushes the record to PowerCode via the server.
func (c *Client) CreateCustomer(ctx context.Context, req dashboard.CreateCustomerRequest) (*dashboard.CreateCustomerResult, error) {
	var resp createCustomerResponse
	if err := c.post(ctx, "/api/create-customer", req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &dashboard.DeclaredError{Message: resp.Error}
	}
	return &dashboard.CreateCustomerResult{
		CustomerID:  resp.CustomerID,
		ServicePlan: resp.ServicePlan,
		Ticket:      resp.Ticket,
	}, nil
}

// Logout ends the server session. Any HTTP response counts as success; the
// caller falls back to the login surface regardless.
func (c *Client) Logout(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/logout", nil)
	if err != nil {
		return err
	}
	c.authorize(req)
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func (c *Client) authorize(req *http.Request) {
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
}
