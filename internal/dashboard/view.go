// Package dashboard implements the operator dashboard core: the rendered
// lookup log, the record renderer, the edit session state machine, and the
// controllers that drive the lookup and create-customer endpoints.
package dashboard

import (
	"encoding/json"

	"github.com/OleksSobol/Utopia-Account-Creation---UAC/internal/record"
)

// EntryView is the plain view-model for one order record entry in the log.
// It carries display strings only; markup generation lives in render.go so
// the model stays testable without templates.
type EntryView struct {
	OrderRef    string
	Status      string
	OrderSource string
	ServicePlan string

	Customer *CustomerView
	Address  *AddressView
	Items    []ItemView

	// RawJSON is the pretty-printed serialization of the full current
	// record, shown by the raw-data inspector.
	RawJSON    string
	RawVisible bool
}

// CustomerView is the customer block of an entry.
type CustomerView struct {
	Name  string
	Email string
	Phone string
}

// AddressView is the service address block of an entry.
type AddressView struct {
	SiteID  string
	Address string
	Apt     string
	City    string
	State   string
	Zip     string
}

// ItemView is one order line item.
type ItemView struct {
	Description string
	Quantity    int
	TotalCost   string
}

const absent = "N/A"

// BuildEntryView projects a record and its resolved service plan into a view
// model. Absent status and order source render as "N/A"; customer, address
// and item blocks appear only when their sub-record is present. Items keep
// input order.
func BuildEntryView(rec *record.OrderRecord, servicePlan string, rawVisible bool) EntryView {
	v := EntryView{
		OrderRef:    rec.OrderRef,
		Status:      orDefault(rec.Status),
		OrderSource: orDefault(rec.OrderSource),
		ServicePlan: servicePlan,
		RawVisible:  rawVisible,
	}

	if rec.Customer != nil {
		c := rec.Customer
		v.Customer = &CustomerView{
			Name:  c.FirstName + " " + c.LastName,
			Email: c.Email,
			Phone: c.Phone,
		}
	}

	if rec.Address != nil {
		a := rec.Address
		v.Address = &AddressView{
			SiteID:  orDefault(a.SiteID),
			Address: a.Address,
			Apt:     a.Apt,
			City:    a.City,
			State:   a.State,
			Zip:     a.Zip,
		}
	}

	for _, it := range rec.OrderItems {
		v.Items = append(v.Items, ItemView{
			Description: it.Description,
			Quantity:    it.Quantity,
			TotalCost:   it.TotalCost.String(),
		})
	}

	if raw, err := json.MarshalIndent(rec, "", "  "); err == nil {
		v.RawJSON = string(raw)
	}

	return v
}

func orDefault(s string) string {
	if s == "" {
		return absent
	}
	return s
}
