package handler_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/OleksSobol/Utopia-Account-Creation---UAC/internal/handler"
	"github.com/OleksSobol/Utopia-Account-Creation---UAC/internal/record"
	"github.com/OleksSobol/Utopia-Account-Creation---UAC/internal/upstream/utopia"
)

func TestLookupSuccess(t *testing.T) {
	mock := &mockUtopia{lookupRec: testRecord()}
	hub := &mockHub{}
	h := handler.NewLookupHandler(mock, hub)

	req := httptest.NewRequest("POST", "/api/lookup", strings.NewReader(`{"orderref":"  R1  "}`))
	rr := httptest.NewRecorder()
	h.Lookup(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var resp struct {
		Success bool                `json:"success"`
		Data    *record.OrderRecord `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.Data == nil || resp.Data.Customer.FirstName != "Susie" {
		t.Errorf("response = %+v", resp)
	}
	if len(mock.lookupRefs) != 1 || mock.lookupRefs[0] != "R1" {
		t.Errorf("lookup refs = %v, want trimmed R1", mock.lookupRefs)
	}
	if len(hub.events) != 1 || hub.events[0].eventType != "lookup" {
		t.Errorf("broadcast events = %+v", hub.events)
	}
}

func TestLookupDeclaredFailure(t *testing.T) {
	mock := &mockUtopia{lookupErr: &utopia.DeclaredError{Message: "order not found"}}
	h := handler.NewLookupHandler(mock, nil)

	req := httptest.NewRequest("POST", "/api/lookup", strings.NewReader(`{"orderref":"NOPE"}`))
	rr := httptest.NewRecorder()
	h.Lookup(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	json.Unmarshal(rr.Body.Bytes(), &resp)
	if resp.Success || resp.Error != "order not found" {
		t.Errorf("response = %+v", resp)
	}
}

func TestLookupUpstreamFailure(t *testing.T) {
	mock := &mockUtopia{lookupErr: errors.New("connection refused")}
	h := handler.NewLookupHandler(mock, nil)

	req := httptest.NewRequest("POST", "/api/lookup", strings.NewReader(`{"orderref":"R1"}`))
	rr := httptest.NewRecorder()
	h.Lookup(rr, req)

	var resp struct {
		Success bool `json:"success"`
	}
	json.Unmarshal(rr.Body.Bytes(), &resp)
	if resp.Success {
		t.Error("upstream failure reported as success")
	}
}

func TestLookupEmptyRef(t *testing.T) {
	mock := &mockUtopia{lookupRec: testRecord()}
	h := handler.NewLookupHandler(mock, nil)

	req := httptest.NewRequest("POST", "/api/lookup", strings.NewReader(`{"orderref":"   "}`))
	rr := httptest.NewRecorder()
	h.Lookup(rr, req)

	var resp struct {
		Success bool `json:"success"`
	}
	json.Unmarshal(rr.Body.Bytes(), &resp)
	if resp.Success {
		t.Error("blank orderref accepted")
	}
	if len(mock.lookupRefs) != 0 {
		t.Error("upstream called with blank orderref")
	}
}

func TestLookupBadBody(t *testing.T) {
	h := handler.NewLookupHandler(&mockUtopia{}, nil)

	req := httptest.NewRequest("POST", "/api/lookup", strings.NewReader("not json"))
	rr := httptest.NewRecorder()
	h.Lookup(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}
