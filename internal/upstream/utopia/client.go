// Package utopia is a client for the Utopia service provider API. Every
// request is a JSON POST carrying the API key in the body.
package utopia

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/OleksSobol/Utopia-Account-Creation---UAC/internal/record"
)

// DeclaredError is an error the Utopia API reported in its response body.
type DeclaredError struct {
	Message string
}

func (e *DeclaredError) Error() string { return e.Message }

// Client calls the Utopia SP API.
type Client struct {
	Endpoint string
	APIKey   string
	HTTP     *http.Client
}

func New(endpoint, apiKey string) *Client {
	return &Client{
		Endpoint: strings.TrimRight(endpoint, "/"),
		APIKey:   apiKey,
		HTTP:     &http.Client{Timeout: 30 * time.Second},
	}
}

// ContractLookup fetches the order behind an order reference. The API signals
// failure inside a 200 response by including an "error" key, so the raw body
// is checked before decoding.
func (c *Client) ContractLookup(ctx context.Context, orderRef string) (*record.OrderRecord, error) {
	body, err := c.post(ctx, "/spquery/contractlookup", map[string]string{
		"apikey":   c.APIKey,
		"orderref": orderRef,
	})
	if err != nil {
		return nil, err
	}
	if err := declaredError(body); err != nil {
		return nil, err
	}

	var rec record.OrderRecord
	if err := json.Unmarshal(body, &rec); err != nil {
		return nil, fmt.Errorf("decode contract lookup: %w", err)
	}
	rec.OrderRef = orderRef
	return &rec, nil
}

// ServiceLookup returns the raw service details for a site.
func (c *Client) ServiceLookup(ctx context.Context, siteID string) (json.RawMessage, error) {
	body, err := c.post(ctx, "/spquery/servicelookup", map[string]string{
		"apikey": c.APIKey,
		"siteid": siteID,
	})
	if err != nil {
		return nil, err
	}
	if err := declaredError(body); err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

type apViewResponse struct {
	Result []struct {
		Eth struct {
			Eth1 struct {
				MACs []string `json:"macs"`
			} `json:"eth1"`
		} `json:"eth"`
	} `json:"result"`
}

// AccessPointMAC returns the MAC of the customer router seen on the access
// point's customer-facing port. The API pads the value, so it is cut to the
// 17-character colon form.
func (c *Client) AccessPointMAC(ctx context.Context, siteID string) (string, error) {
	body, err := c.post(ctx, "/spquery/apview", map[string]string{
		"apikey": c.APIKey,
		"siteid": siteID,
	})
	if err != nil {
		return "", err
	}
	if err := declaredError(body); err != nil {
		return "", err
	}

	var resp apViewResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decode AP view: %w", err)
	}
	if len(resp.Result) == 0 || len(resp.Result[0].Eth.Eth1.MACs) == 0 {
		return "", fmt.Errorf("no MAC found for site %s", siteID)
	}
	mac := resp.Result[0].Eth.Eth1.MACs[0]
	if len(mac) > 17 {
		mac = mac[:17]
	}
	return mac, nil
}

// ContractDownload fetches the signed contract PDF for an order.
func (c *Client) ContractDownload(ctx context.Context, orderRef string) ([]byte, error) {
	body, err := c.post(ctx, "/spquery/contractdownload", map[string]string{
		"apikey":   c.APIKey,
		"orderref": orderRef,
	})
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("empty contract for order %s", orderRef)
	}
	// A JSON body here means the API declined rather than returned a PDF.
	if bytes.HasPrefix(bytes.TrimSpace(body), []byte("{")) {
		if err := declaredError(body); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("unexpected contract response for order %s", orderRef)
	}
	return body, nil
}

func (c *Client) post(ctx context.Context, path string, payload map[string]string) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint+path, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		if derr := declaredError(body); derr != nil {
			return nil, derr
		}
		return nil, fmt.Errorf("utopia %s: status %d", path, resp.StatusCode)
	}
	return body, nil
}

// declaredError extracts an API-level error from a response body.
func declaredError(body []byte) error {
	var probe struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &probe) == nil && probe.Error != "" {
		return &DeclaredError{Message: probe.Error}
	}
	return nil
}
