package dashboard_test

import (
	"strings"
	"testing"

	"github.com/OleksSobol/Utopia-Account-Creation---UAC/internal/dashboard"
	"github.com/OleksSobol/Utopia-Account-Creation---UAC/internal/record"
	"github.com/shopspring/decimal"
)

func TestBuildEntryViewDefaults(t *testing.T) {
	v := dashboard.BuildEntryView(&record.OrderRecord{OrderRef: "R1"}, record.DefaultServicePlan, false)

	if v.Status != "N/A" || v.OrderSource != "N/A" {
		t.Errorf("absent status/source = %q/%q, want N/A/N/A", v.Status, v.OrderSource)
	}
	if v.Customer != nil || v.Address != nil || v.Items != nil {
		t.Error("optional blocks present for a bare record")
	}
	if v.ServicePlan != record.DefaultServicePlan {
		t.Errorf("ServicePlan = %q", v.ServicePlan)
	}
}

func TestBuildEntryViewItemsKeepOrder(t *testing.T) {
	rec := &record.OrderRecord{
		OrderRef: "R1",
		OrderItems: []record.OrderItem{
			{Description: "1 Gbps", Quantity: 1, TotalCost: decimal.NewFromInt(80)},
			{Description: "Bond fee", Quantity: 1, TotalCost: decimal.NewFromInt(30)},
			{Description: "1 Gbps", Quantity: 2, TotalCost: decimal.NewFromInt(160)},
		},
	}
	v := dashboard.BuildEntryView(rec, "1 Gbps", false)

	if len(v.Items) != 3 {
		t.Fatalf("items deduplicated or dropped: %d", len(v.Items))
	}
	want := []string{"1 Gbps", "Bond fee", "1 Gbps"}
	for i, it := range v.Items {
		if it.Description != want[i] {
			t.Errorf("item %d = %q, want %q", i, it.Description, want[i])
		}
	}
}

func TestBuildEntryViewRawJSON(t *testing.T) {
	rec := &record.OrderRecord{OrderRef: "R1", Status: "Active"}
	v := dashboard.BuildEntryView(rec, "x", true)

	if !v.RawVisible {
		t.Error("RawVisible not carried through")
	}
	// Pretty-printed: indented with the status on its own line.
	if !strings.Contains(v.RawJSON, "\n  \"status\": \"Active\"") {
		t.Errorf("RawJSON not indented as expected:\n%s", v.RawJSON)
	}
}

func TestRenderEntry(t *testing.T) {
	rec := &record.OrderRecord{
		OrderRef:    "ABC123",
		Status:      "Active",
		OrderSource: "Portal",
		Customer:    &record.Customer{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com", Phone: "555"},
		Address:     &record.Address{SiteID: "S-1", Address: "1 Main St", City: "Bozeman", State: "MT", Zip: "59715"},
		OrderItems:  []record.OrderItem{{Description: "1 Gbps", Quantity: 1, TotalCost: decimal.NewFromInt(80)}},
	}
	markup, err := dashboard.RenderEntry(dashboard.BuildEntryView(rec, "1 Gbps", false))
	if err != nil {
		t.Fatalf("RenderEntry() error = %v", err)
	}

	for _, want := range []string{
		`data-orderref="ABC123"`,
		`data-action="edit"`,
		`data-action="send"`,
		`data-action="toggle-raw"`,
		"Jane Doe",
		"Bozeman, MT 59715",
		"1 Gbps",
		"View JSON",
	} {
		if !strings.Contains(markup, want) {
			t.Errorf("markup missing %q", want)
		}
	}
	if strings.Contains(markup, "raw-json") {
		t.Error("raw inspector rendered while hidden")
	}
	if strings.Contains(markup, "Apt:") {
		t.Error("empty apt line rendered")
	}
}

func TestRenderEntryRawVisible(t *testing.T) {
	rec := &record.OrderRecord{OrderRef: "R1"}
	markup, err := dashboard.RenderEntry(dashboard.BuildEntryView(rec, "x", true))
	if err != nil {
		t.Fatalf("RenderEntry() error = %v", err)
	}
	if !strings.Contains(markup, "raw-json") || !strings.Contains(markup, "Hide JSON") {
		t.Error("visible raw inspector not rendered")
	}
}

func TestRenderEntryEscapesMarkup(t *testing.T) {
	rec := &record.OrderRecord{OrderRef: "R1", Status: `<script>alert(1)</script>`}
	markup, err := dashboard.RenderEntry(dashboard.BuildEntryView(rec, "x", false))
	if err != nil {
		t.Fatalf("RenderEntry() error = %v", err)
	}
	if strings.Contains(markup, "<script>") {
		t.Error("record data not escaped")
	}
}
