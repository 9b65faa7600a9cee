package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/OleksSobol/Utopia-Account-Creation---UAC/internal/handler"
	"github.com/OleksSobol/Utopia-Account-Creation---UAC/internal/mailer"
	"github.com/OleksSobol/Utopia-Account-Creation---UAC/internal/record"
	"github.com/OleksSobol/Utopia-Account-Creation---UAC/internal/upstream/powercode"
)

func testProvisioner(utopia *mockUtopia, billing *mockBilling) (*handler.Provisioner, *mockFailures, *mockHub, *mailer.Mock) {
	failures := &mockFailures{}
	hub := &mockHub{}
	mock := &mailer.Mock{}
	p := &handler.Provisioner{
		Utopia:         utopia,
		Billing:        billing,
		Plans:          powercode.PlanIDs{Gbps1: 164, Mbps250: 163, BondFee: 172},
		PortalPassword: "WelcomeToGlobalNet",
		Mailer:         mock,
		Failures:       failures,
		Hub:            hub,
		BillingURL:     "https://pc.example.net",
	}
	return p, failures, hub, mock
}

func postCreateCustomer(t *testing.T, h *handler.CreateCustomerHandler, rec *record.OrderRecord, plan string) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"orderref":      "R1",
		"customer_data": rec,
		"service_plan":  plan,
	})
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest("POST", "/api/create-customer", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.CreateCustomer(rr, req)
	return rr
}

func TestCreateCustomerFullFlow(t *testing.T) {
	utopia := &mockUtopia{contractPDF: []byte("%PDF fake")}
	billing := &mockBilling{createID: "4711", ticketID: "15"}
	p, failures, hub, mock := testProvisioner(utopia, billing)
	h := handler.NewCreateCustomerHandler(p)

	rr := postCreateCustomer(t, h, testRecord(), "250 Mbps")

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	var resp struct {
		Success     bool   `json:"success"`
		CustomerID  string `json:"customer_id"`
		ServicePlan string `json:"service_plan"`
		Ticket      string `json:"ticket"`
	}
	json.Unmarshal(rr.Body.Bytes(), &resp)
	if !resp.Success || resp.CustomerID != "4711" || resp.ServicePlan != "250 Mbps" || resp.Ticket != "15" {
		t.Errorf("response = %+v", resp)
	}

	// Duplicate search ran on the full name.
	if len(billing.searchQueries) != 1 || billing.searchQueries[0] != "Susie Drukman" {
		t.Errorf("search queries = %v", billing.searchQueries)
	}
	// Account created with the order's contact data.
	if len(billing.created) != 1 || billing.created[0].SiteID != "714780" || billing.created[0].OrderRef != "R1" {
		t.Errorf("created = %+v", billing.created)
	}
	// Main plan and bond fee were both attached.
	if len(billing.serviceAdds) != 2 ||
		billing.serviceAdds[0] != (serviceAdd{"4711", 163}) ||
		billing.serviceAdds[1] != (serviceAdd{"4711", 172}) {
		t.Errorf("service adds = %+v", billing.serviceAdds)
	}
	// Onboarding ticket created.
	if len(billing.tickets) != 1 || billing.tickets[0] != "4711" {
		t.Errorf("tickets = %+v", billing.tickets)
	}
	// Notification mail with attached contract.
	if len(mock.Sent) != 1 {
		t.Fatalf("emails sent = %d, want 1", len(mock.Sent))
	}
	email := mock.Sent[0]
	if !strings.Contains(email.Subject, "Customer created - Powercode#4711") {
		t.Errorf("subject = %q", email.Subject)
	}
	if !strings.Contains(email.Body, "Name: Susie Drukman") || !strings.Contains(email.Body, "Order Ref: R1") {
		t.Errorf("body = %q", email.Body)
	}
	if email.Attachment == nil || email.Attachment.Filename != "R1.pdf" {
		t.Errorf("attachment = %+v", email.Attachment)
	}
	// Activity broadcast, no failures recorded.
	if len(hub.events) != 1 || hub.events[0].eventType != "customer.created" {
		t.Errorf("events = %+v", hub.events)
	}
	if len(failures.recorded) != 0 {
		t.Errorf("failures = %+v", failures.recorded)
	}
}

func TestCreateCustomerDuplicate(t *testing.T) {
	utopia := &mockUtopia{}
	billing := &mockBilling{
		searchResults: []powercode.SearchResult{{CustomerID: "4711", Name: "Susie Drukman"}},
	}
	p, failures, _, mock := testProvisioner(utopia, billing)
	h := handler.NewCreateCustomerHandler(p)

	rr := postCreateCustomer(t, h, testRecord(), "")

	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	json.Unmarshal(rr.Body.Bytes(), &resp)
	if resp.Success {
		t.Fatal("duplicate reported as success")
	}
	if !strings.Contains(resp.Error, "4711") {
		t.Errorf("error = %q, want existing customer ID", resp.Error)
	}
	if len(billing.created) != 0 {
		t.Error("account created despite duplicate")
	}
	// The duplicate is mailed to the admins but not tracked as a failure.
	if len(mock.Sent) != 1 || !strings.Contains(mock.Sent[0].Subject, "Customer exist") {
		t.Errorf("emails = %+v", mock.Sent)
	}
	if len(failures.recorded) != 0 {
		t.Errorf("failures = %+v", failures.recorded)
	}
}

func TestCreateCustomerBillingFailure(t *testing.T) {
	utopia := &mockUtopia{}
	billing := &mockBilling{createErr: errors.New("powercode down")}
	p, failures, hub, mock := testProvisioner(utopia, billing)
	h := handler.NewCreateCustomerHandler(p)

	rr := postCreateCustomer(t, h, testRecord(), "")

	var resp struct {
		Success bool `json:"success"`
	}
	json.Unmarshal(rr.Body.Bytes(), &resp)
	if resp.Success {
		t.Fatal("failure reported as success")
	}
	if len(failures.recorded) != 1 || failures.recorded[0].orderRef != "R1" || failures.recorded[0].failureType != "customer_creation" {
		t.Errorf("failures = %+v", failures.recorded)
	}
	if len(mock.Sent) != 1 || !strings.Contains(mock.Sent[0].Subject, "Failed to create customer") {
		t.Errorf("emails = %+v", mock.Sent)
	}
	if len(hub.events) != 0 {
		t.Errorf("events = %+v", hub.events)
	}
}

func TestCreateCustomerPlanFallback(t *testing.T) {
	utopia := &mockUtopia{}
	billing := &mockBilling{createID: "4712", ticketID: "16"}
	p, _, _, _ := testProvisioner(utopia, billing)
	h := handler.NewCreateCustomerHandler(p)

	rec := testRecord()
	rec.OrderItems = nil
	rr := postCreateCustomer(t, h, rec, "")

	var resp struct {
		Success     bool   `json:"success"`
		ServicePlan string `json:"service_plan"`
	}
	json.Unmarshal(rr.Body.Bytes(), &resp)
	if !resp.Success || resp.ServicePlan != record.DefaultServicePlan {
		t.Errorf("response = %+v", resp)
	}
	// The default label maps to the 250 Mbps plan ID.
	if billing.serviceAdds[0].serviceID != 163 {
		t.Errorf("service ID = %d, want 163", billing.serviceAdds[0].serviceID)
	}
}

func TestCreateCustomerMissingData(t *testing.T) {
	p, _, _, _ := testProvisioner(&mockUtopia{}, &mockBilling{})
	h := handler.NewCreateCustomerHandler(p)

	req := httptest.NewRequest("POST", "/api/create-customer", strings.NewReader(`{"orderref":"R1"}`))
	rr := httptest.NewRecorder()
	h.CreateCustomer(rr, req)

	var resp struct {
		Success bool `json:"success"`
	}
	json.Unmarshal(rr.Body.Bytes(), &resp)
	if resp.Success {
		t.Error("request without customer_data accepted")
	}
}
