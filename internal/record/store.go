package record

import (
	"errors"
	"sync"
)

// ErrNotFound is returned when an operation targets an order reference that
// was never stored. Editing before a successful lookup is a caller bug, not
// something to paper over with an empty record.
var ErrNotFound = errors.New("no record for order reference")

// Store maps order references to their last-fetched record and the service
// plan label derived from it. Last lookup wins: a second Put for the same
// reference replaces the record wholesale, including merged edits.
type Store struct {
	mu      sync.RWMutex
	records map[string]*OrderRecord
	plans   map[string]string
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		records: make(map[string]*OrderRecord),
		plans:   make(map[string]string),
	}
}

// Put inserts or overwrites the record for orderRef and recomputes the cached
// service plan. The record is stamped with orderRef; the reference the
// operator typed is authoritative, never one echoed by the server.
func (s *Store) Put(orderRef string, rec *OrderRecord) {
	rec = rec.Clone()
	if rec == nil {
		rec = &OrderRecord{}
	}
	rec.OrderRef = orderRef

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[orderRef] = rec
	s.plans[orderRef] = ServicePlan(rec)
}

// Get returns a copy of the stored record, or false if the reference is
// unknown.
func (s *Store) Get(orderRef string) (*OrderRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[orderRef]
	if !ok {
		return nil, false
	}
	return rec.Clone(), true
}

// Plan returns the cached service plan label for orderRef, or false if the
// reference is unknown. The cache is refreshed on every Put; edits never
// touch order items, so MergeEdit leaves it alone.
func (s *Store) Plan(orderRef string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	plan, ok := s.plans[orderRef]
	return plan, ok
}

// MergeEdit replaces only the customer and address sub-records of the stored
// record. Status, order source and order items are untouched. Returns
// ErrNotFound when orderRef was never looked up.
func (s *Store) MergeEdit(orderRef string, customer Customer, address Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[orderRef]
	if !ok {
		return ErrNotFound
	}
	c := customer
	a := address
	rec.Customer = &c
	rec.Address = &a
	return nil
}

// Len reports the number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
