// Package powercode is a client for the PowerCode billing API. The API is a
// single form-encoded endpoint dispatched on an "action" field.
package powercode

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DeclaredError is a failure PowerCode reported in its response body.
type DeclaredError struct {
	StatusCode int
	Message    string
}

func (e *DeclaredError) Error() string { return e.Message }

const geocodeFailedStatus = 23

// PlanIDs maps service plan labels to PowerCode service IDs.
type PlanIDs struct {
	Gbps1   int
	Mbps250 int
	BondFee int
}

// ServicePlanID resolves a plan label to a PowerCode service ID, falling
// back to the 250 Mbps plan for anything unrecognized.
func (p PlanIDs) ServicePlanID(label string) int {
	switch label {
	case "1 Gbps":
		return p.Gbps1
	case "250 Mbps":
		return p.Mbps250
	default:
		return p.Mbps250
	}
}

// Client calls the PowerCode API. URL holds the resolved endpoint.
type Client struct {
	URL    string
	APIKey string
	HTTP   *http.Client

	// RetryDelay is the wait between account creation attempts.
	RetryDelay time.Duration
	// MaxRetries bounds account creation attempts.
	MaxRetries int
}

// New creates a client. PowerCode installs commonly run with self-signed
// certificates, so verification can be turned off.
func New(baseURL, apiKey string, verifySSL bool) *Client {
	transport := http.DefaultTransport
	if !verifySSL {
		transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}
	return &Client{
		URL:        apiEndpoint(baseURL),
		APIKey:     apiKey,
		HTTP:       &http.Client{Timeout: 60 * time.Second, Transport: transport},
		RetryDelay: 5 * time.Second,
		MaxRetries: 3,
	}
}

// apiEndpoint builds the full API URL. PowerCode serves its API on port 444;
// a base URL that already carries a port (as in tests) is used as-is.
func apiEndpoint(baseURL string) string {
	base := strings.TrimRight(baseURL, "/")
	if u, err := url.Parse(base); err == nil && u.Port() != "" {
		return base + "/api/1/index.php"
	}
	return base + ":444/api/1/index.php"
}

// CustomerInfo is the contact data pushed into a new PowerCode account.
type CustomerInfo struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
	City      string
	State     string
	Zip       string
	SiteID    string
	OrderRef  string
}

// CreateCustomer creates a billing account and returns the new customer ID.
// PowerCode's geocoder rejects some valid addresses; on that status the
// request is retried with automatic geocoding turned off.
func (c *Client) CreateCustomer(ctx context.Context, info CustomerInfo, portalPassword string) (string, error) {
	state := info.State
	if state == "Montana" {
		state = "MT"
	}

	phone, err := json.Marshal([]map[string]string{{"Type": "Home", "Number": info.Phone}})
	if err != nil {
		return "", err
	}

	form := url.Values{}
	form.Set("apiKey", c.APIKey)
	form.Set("action", "createCustomer")
	form.Set("firstName", info.FirstName)
	form.Set("lastName", info.LastName)
	form.Set("emailAddress", info.Email)
	form.Set("physicalStreet", info.Address)
	form.Set("physicalCity", info.City)
	form.Set("physicalState", state)
	form.Set("physicalZip", info.Zip)
	form.Set("physicalAutomaticallyGeocode", "1")
	form.Set("billingSameAsPhysical", "1")
	form.Set("taxZoneId", "1")
	form.Set("billDay", "Activation Date")
	form.Set("dueByDays", "0")
	form.Set("gracePeriodDays", "10")
	form.Set("customerNotes", "Order# "+info.OrderRef+"\nUtopia SiteID: "+info.SiteID)
	form.Set("customerPortalUsername", info.Email)
	form.Set("customerPortalPassword", portalPassword)
	form.Set("phone", string(phone))
	form.Set("extAccountID", info.SiteID)

	var lastErr error
	for attempt := 0; attempt < c.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(c.RetryDelay):
			}
		}

		var resp struct {
			CustomerID json.Number `json:"customerID"`
			StatusCode int         `json:"statusCode"`
			Message    string      `json:"message"`
		}
		if err := c.post(ctx, &resp, form); err != nil {
			lastErr = err
			continue
		}
		if resp.CustomerID != "" {
			return resp.CustomerID.String(), nil
		}
		if resp.StatusCode == geocodeFailedStatus {
			form.Set("physicalAutomaticallyGeocode", "0")
			lastErr = &DeclaredError{StatusCode: resp.StatusCode, Message: "geocoding failed"}
			continue
		}
		msg := resp.Message
		if msg == "" {
			msg = "unknown error in PowerCode"
		}
		return "", &DeclaredError{StatusCode: resp.StatusCode, Message: msg}
	}
	return "", fmt.Errorf("create customer failed after %d attempts: %w", c.MaxRetries, lastErr)
}

// SearchResult is one row of a customer search.
type SearchResult struct {
	CustomerID json.Number `json:"CustomerID"`
	Name       string      `json:"Name"`
}

// SearchCustomers runs a free-text customer search, typically on the
// customer's full name.
func (c *Client) SearchCustomers(ctx context.Context, query string) ([]SearchResult, error) {
	form := url.Values{}
	form.Set("apiKey", c.APIKey)
	form.Set("action", "searchCustomers")
	form.Set("searchString", query)

	var resp struct {
		Customers []SearchResult `json:"customers"`
	}
	if err := c.post(ctx, &resp, form); err != nil {
		return nil, err
	}
	return resp.Customers, nil
}

// AddCustomerService attaches a service plan to an account. Quantity 5
// matches the billing setup's unit model; proration is disabled so the first
// invoice starts clean on the activation date.
func (c *Client) AddCustomerService(ctx context.Context, customerID string, serviceID int) error {
	form := url.Values{}
	form.Set("apiKey", c.APIKey)
	form.Set("action", "addCustomerService")
	form.Set("customerID", customerID)
	form.Set("serviceID", strconv.Itoa(serviceID))
	form.Set("quantity", "5")
	form.Set("prorateService", "0")

	var resp struct {
		StatusCode int    `json:"statusCode"`
		Message    string `json:"message"`
	}
	if err := c.post(ctx, &resp, form); err != nil {
		return err
	}
	if resp.StatusCode != 0 {
		return &DeclaredError{StatusCode: resp.StatusCode, Message: resp.Message}
	}
	return nil
}

// CreateTicket opens the customer-viewable onboarding ticket for a freshly
// created account and returns its ID.
func (c *Client) CreateTicket(ctx context.Context, customerID, customerName string) (string, error) {
	form := url.Values{}
	form.Set("apiKey", c.APIKey)
	form.Set("action", "createTicket")
	form.Set("type", "Individual")
	form.Set("summary", "BZN - Customer has requested Global Net Fiber Service")
	form.Set("category", "54")
	form.Set("ticketType", "21")
	form.Set("description", onboardingTicketBody(customerName))
	form.Set("status", "1")
	form.Set("responsibleUser", "Sales")
	form.Set("responsibleGroupID", "4")
	form.Set("customerViewable", "1")
	form.Set("customerID", customerID)

	var resp struct {
		TicketID   json.Number `json:"ticketID"`
		StatusCode int         `json:"statusCode"`
		Message    string      `json:"message"`
	}
	if err := c.post(ctx, &resp, form); err != nil {
		return "", err
	}
	if resp.TicketID == "" {
		return "", &DeclaredError{StatusCode: resp.StatusCode, Message: resp.Message}
	}
	return resp.TicketID.String(), nil
}

// ReadTicket fetches a ticket as raw JSON.
func (c *Client) ReadTicket(ctx context.Context, ticketID string) (json.RawMessage, error) {
	form := url.Values{}
	form.Set("apiKey", c.APIKey)
	form.Set("action", "readTicket")
	form.Set("ticketID", ticketID)

	var resp json.RawMessage
	if err := c.post(ctx, &resp, form); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) post(ctx context.Context, out any, form url.Values) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode powercode %s response: %w", form.Get("action"), err)
	}
	return nil
}
