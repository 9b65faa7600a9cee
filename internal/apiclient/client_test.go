package apiclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/OleksSobol/Utopia-Account-Creation---UAC/internal/apiclient"
	"github.com/OleksSobol/Utopia-Account-Creation---UAC/internal/dashboard"
	"github.com/OleksSobol/Utopia-Account-Creation---UAC/internal/record"
)

func TestLookupSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/lookup" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req map[string]string
		json.NewDecoder(r.Body).Decode(&req)
		if req["orderref"] != "ABC123" {
			t.Errorf("orderref = %q", req["orderref"])
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": map[string]any{
				"status":     "Active",
				"orderitems": []map[string]any{{"description": "1 Gbps", "qty": 1}},
			},
		})
	}))
	defer srv.Close()

	c := apiclient.New(srv.URL)
	rec, err := c.Lookup(context.Background(), "ABC123")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if rec.Status != "Active" || len(rec.OrderItems) != 1 || rec.OrderItems[0].Description != "1 Gbps" {
		t.Errorf("record = %+v", rec)
	}
}

func TestLookupDeclaredError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "Not found"})
	}))
	defer srv.Close()

	c := apiclient.New(srv.URL)
	_, err := c.Lookup(context.Background(), "NOPE")

	var declared *dashboard.DeclaredError
	if !errors.As(err, &declared) {
		t.Fatalf("error = %v, want DeclaredError", err)
	}
	if declared.Message != "Not found" {
		t.Errorf("message = %q", declared.Message)
	}
}

func TestLookupTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := apiclient.New(srv.URL)
	_, err := c.Lookup(context.Background(), "X")
	if err == nil {
		t.Fatal("expected error on malformed body")
	}
	var declared *dashboard.DeclaredError
	if errors.As(err, &declared) {
		t.Error("parse failure classified as declared error")
	}
}

func TestCreateCustomer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/create-customer" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var req struct {
			OrderRef     string              `json:"orderref"`
			CustomerData *record.OrderRecord `json:"customer_data"`
			ServicePlan  string              `json:"service_plan"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		if req.OrderRef != "R1" || req.ServicePlan != "1 Gbps" || req.CustomerData == nil {
			t.Errorf("request = %+v", req)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true, "customer_id": "4711", "service_plan": "1 Gbps", "ticket": "15",
		})
	}))
	defer srv.Close()

	c := apiclient.New(srv.URL)
	result, err := c.CreateCustomer(context.Background(), dashboard.CreateCustomerRequest{
		OrderRef:     "R1",
		CustomerData: &record.OrderRecord{Customer: &record.Customer{FirstName: "Jane"}},
		ServicePlan:  "1 Gbps",
	})
	if err != nil {
		t.Fatalf("CreateCustomer() error = %v", err)
	}
	if result.CustomerID != "4711" || result.Ticket != "15" {
		t.Errorf("result = %+v", result)
	}
}

func TestLogout(t *testing.T) {
	var called bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/logout" && r.Method == http.MethodPost {
			called = true
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := apiclient.New(srv.URL)
	if err := c.Logout(context.Background()); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if !called {
		t.Error("logout endpoint not called")
	}
}
