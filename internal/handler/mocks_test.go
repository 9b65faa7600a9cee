package handler_test

import (
	"context"
	"errors"

	"github.com/OleksSobol/Utopia-Account-Creation---UAC/internal/auth"
	"github.com/OleksSobol/Utopia-Account-Creation---UAC/internal/failure"
	"github.com/OleksSobol/Utopia-Account-Creation---UAC/internal/record"
	"github.com/OleksSobol/Utopia-Account-Creation---UAC/internal/upstream/powercode"
)

type mockUtopia struct {
	lookupRec   *record.OrderRecord
	lookupErr   error
	lookupRefs  []string
	contractPDF []byte
	contractErr error
}

func (m *mockUtopia) ContractLookup(_ context.Context, orderRef string) (*record.OrderRecord, error) {
	m.lookupRefs = append(m.lookupRefs, orderRef)
	if m.lookupErr != nil {
		return nil, m.lookupErr
	}
	return m.lookupRec, nil
}

func (m *mockUtopia) ContractDownload(_ context.Context, orderRef string) ([]byte, error) {
	if m.contractErr != nil {
		return nil, m.contractErr
	}
	if m.contractPDF == nil {
		return nil, errors.New("no contract")
	}
	return m.contractPDF, nil
}

type serviceAdd struct {
	customerID string
	serviceID  int
}

type mockBilling struct {
	searchResults []powercode.SearchResult
	searchErr     error
	searchQueries []string

	createID  string
	createErr error
	created   []powercode.CustomerInfo

	serviceErr  error
	serviceAdds []serviceAdd

	ticketID  string
	ticketErr error
	tickets   []string
}

func (m *mockBilling) SearchCustomers(_ context.Context, query string) ([]powercode.SearchResult, error) {
	m.searchQueries = append(m.searchQueries, query)
	return m.searchResults, m.searchErr
}

func (m *mockBilling) CreateCustomer(_ context.Context, info powercode.CustomerInfo, _ string) (string, error) {
	m.created = append(m.created, info)
	if m.createErr != nil {
		return "", m.createErr
	}
	return m.createID, nil
}

func (m *mockBilling) AddCustomerService(_ context.Context, customerID string, serviceID int) error {
	m.serviceAdds = append(m.serviceAdds, serviceAdd{customerID, serviceID})
	return m.serviceErr
}

func (m *mockBilling) CreateTicket(_ context.Context, customerID, _ string) (string, error) {
	m.tickets = append(m.tickets, customerID)
	if m.ticketErr != nil {
		return "", m.ticketErr
	}
	return m.ticketID, nil
}

type recordedFailure struct {
	orderRef    string
	message     string
	failureType string
}

type mockFailures struct {
	recorded []recordedFailure
}

func (m *mockFailures) Record(orderRef, errorMessage, failureType string, _ *record.OrderRecord) (string, error) {
	m.recorded = append(m.recorded, recordedFailure{orderRef, errorMessage, failureType})
	return orderRef, nil
}

func (m *mockFailures) List(includeResolved bool) ([]failure.Record, error) { return nil, nil }
func (m *mockFailures) Resolve(orderRef, note string) (bool, error)         { return false, nil }
func (m *mockFailures) Remove(orderRef string) (bool, error)                { return false, nil }
func (m *mockFailures) Stats() (*failure.Stats, error)                      { return &failure.Stats{}, nil }

type broadcastEvent struct {
	eventType string
	payload   any
}

type mockHub struct {
	events []broadcastEvent
}

func (m *mockHub) BroadcastJSON(eventType string, payload any) {
	m.events = append(m.events, broadcastEvent{eventType, payload})
}

type mockUsers struct {
	user *auth.User
	err  error
}

func (m *mockUsers) Verify(username, password string) (*auth.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.user, nil
}

func testRecord() *record.OrderRecord {
	return &record.OrderRecord{
		Status:      "Signed",
		OrderSource: "webcustomer",
		Customer: &record.Customer{
			FirstName: "Susie",
			LastName:  "Drukman",
			Email:     "susie@example.com",
			Phone:     "4065818023",
		},
		Address: &record.Address{
			SiteID:  "714780",
			Address: "411 N BROADWAY AVENUE",
			City:    "Bozeman",
			State:   "Montana",
			Zip:     "59715",
		},
		OrderItems: []record.OrderItem{{Description: "250 Mbps", Quantity: 1}},
	}
}
