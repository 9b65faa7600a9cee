// Package record holds the denormalized order data the dashboard works with:
// the result of a Utopia contract lookup, keyed by the operator-typed order
// reference, plus the service plan label derived from it.
package record

import "github.com/shopspring/decimal"

// DefaultServicePlan is the label used when an order carries no usable
// first line item.
const DefaultServicePlan = "250 Mbps (default)"

// OrderRecord is the result of one contract lookup. Every field except
// OrderRef is optional; the wire shape follows the Utopia SP API.
type OrderRecord struct {
	OrderRef    string      `json:"orderref,omitempty"`
	Status      string      `json:"status,omitempty"`
	OrderSource string      `json:"ordersource,omitempty"`
	Customer    *Customer   `json:"customer,omitempty"`
	Address     *Address    `json:"address,omitempty"`
	OrderItems  []OrderItem `json:"orderitems,omitempty"`
}

// Customer is the contact sub-record of an order.
type Customer struct {
	FirstName string `json:"firstname,omitempty"`
	LastName  string `json:"lastname,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// Address is the service address sub-record of an order.
type Address struct {
	SiteID  string `json:"siteid,omitempty"`
	Address string `json:"address,omitempty"`
	Apt     string `json:"apt,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Zip     string `json:"zip,omitempty"`
}

// OrderItem is one line item of an order.
type OrderItem struct {
	Description string          `json:"description,omitempty"`
	Quantity    int             `json:"qty,omitempty"`
	TotalCost   decimal.Decimal `json:"totalcost,omitempty"`
}

// ServicePlan derives the display plan label for a record: the first order
// item's description when present and non-empty, else DefaultServicePlan.
func ServicePlan(rec *OrderRecord) string {
	if rec != nil && len(rec.OrderItems) > 0 && rec.OrderItems[0].Description != "" {
		return rec.OrderItems[0].Description
	}
	return DefaultServicePlan
}

// Clone returns a deep copy of the record so callers can hand it out without
// exposing store internals to mutation.
func (r *OrderRecord) Clone() *OrderRecord {
	if r == nil {
		return nil
	}
	out := *r
	if r.Customer != nil {
		c := *r.Customer
		out.Customer = &c
	}
	if r.Address != nil {
		a := *r.Address
		out.Address = &a
	}
	if r.OrderItems != nil {
		out.OrderItems = make([]OrderItem, len(r.OrderItems))
		copy(out.OrderItems, r.OrderItems)
	}
	return &out
}
