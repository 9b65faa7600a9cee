package dashboard

import (
	"strings"
	"sync"

	"github.com/OleksSobol/Utopia-Account-Creation---UAC/internal/record"
)

// EditFields are the form fields of an open edit session. While the session
// is open these values, not the store, are the source of truth for the
// record's customer and address sub-records.
type EditFields struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
	City      string
	State     string
	Zip       string
	Apt       string
	SiteID    string
}

// EditSession tracks the single record open for editing. Two states: Closed
// (no reference held) and Open (reference held, fields populated from the
// store). At most one session is open at a time; opening while open simply
// retargets the session, as the original modal did.
type EditSession struct {
	store *record.Store
	log   *Log

	mu       sync.Mutex
	orderRef string
	fields   EditFields
}

// NewEditSession creates a closed edit session over the given store and log.
func NewEditSession(store *record.Store, log *Log) *EditSession {
	return &EditSession{store: store, log: log}
}

// Open loads the form from the stored record for orderRef and transitions to
// Open. Every absent field defaults to the empty string. Returns ErrNoData,
// without transitioning, when the reference has no stored record.
func (s *EditSession) Open(orderRef string) error {
	rec, ok := s.store.Get(orderRef)
	if !ok {
		return ErrNoData
	}

	var f EditFields
	if c := rec.Customer; c != nil {
		f.FirstName = c.FirstName
		f.LastName = c.LastName
		f.Email = c.Email
		f.Phone = c.Phone
	}
	if a := rec.Address; a != nil {
		f.Address = a.Address
		f.City = a.City
		f.State = a.State
		f.Zip = a.Zip
		f.Apt = a.Apt
		f.SiteID = a.SiteID
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.orderRef = orderRef
	s.fields = f
	return nil
}

// Active reports whether a session is open and for which reference.
func (s *EditSession) Active() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orderRef, s.orderRef != ""
}

// Fields returns the current form values. Zero value while Closed.
func (s *EditSession) Fields() EditFields {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fields
}

// SetFields replaces the form values. No-op while Closed.
func (s *EditSession) SetFields(f EditFields) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.orderRef != "" {
		s.fields = f
	}
}

// Cancel discards unsaved values and closes the session. The store is not
// touched. Safe to call while Closed.
func (s *EditSession) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orderRef = ""
	s.fields = EditFields{}
}

// Escape is the cancel-key handler: cancels an open session and reports
// whether it did anything. A no-op while Closed.
func (s *EditSession) Escape() bool {
	s.mu.Lock()
	open := s.orderRef != ""
	s.mu.Unlock()
	if open {
		s.Cancel()
	}
	return open
}

// Save trims every field, merges customer and address back into the store,
// re-renders the record's slot in place (raw inspector reset to hidden), and
// closes the session. Valid only while Open.
func (s *EditSession) Save() error {
	s.mu.Lock()
	orderRef := s.orderRef
	f := s.fields
	s.mu.Unlock()

	if orderRef == "" {
		return ErrNoData
	}

	customer := record.Customer{
		FirstName: strings.TrimSpace(f.FirstName),
		LastName:  strings.TrimSpace(f.LastName),
		Email:     strings.TrimSpace(f.Email),
		Phone:     strings.TrimSpace(f.Phone),
	}
	address := record.Address{
		Address: strings.TrimSpace(f.Address),
		City:    strings.TrimSpace(f.City),
		State:   strings.TrimSpace(f.State),
		Zip:     strings.TrimSpace(f.Zip),
		Apt:     strings.TrimSpace(f.Apt),
		SiteID:  strings.TrimSpace(f.SiteID),
	}

	if err := s.store.MergeEdit(orderRef, customer, address); err != nil {
		return err
	}

	s.log.HideRaw(orderRef)
	if err := RefreshEntry(s.store, s.log, orderRef); err != nil {
		return err
	}

	s.Cancel()
	s.log.AppendMessage(LevelSuccess, "Customer data updated successfully")
	return nil
}
