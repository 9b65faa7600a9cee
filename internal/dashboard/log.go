package dashboard

import (
	"sync"
	"time"

	"github.com/OleksSobol/Utopia-Account-Creation---UAC/internal/record"
)

// Level classifies a log entry.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

// StatusKind is the state of the log's status indicator.
type StatusKind int

const (
	StatusReady StatusKind = iota
	StatusLoading
	StatusSuccess
	StatusError
)

// Entry is one slot in the rendered log. Record entries carry the order
// reference they render; plain messages leave it empty.
type Entry struct {
	Time     time.Time
	Level    Level
	OrderRef string
	Body     string
}

// Log is the append-only sequence of completed lookups and messages,
// displayed newest-last. Each successful lookup owns exactly one slot,
// addressed through an explicit orderref-to-slot map so edits re-render in
// place instead of re-querying rendered output.
type Log struct {
	mu       sync.Mutex
	entries  []Entry
	slots    map[string]int
	rawShown map[string]bool

	statusText string
	statusKind StatusKind

	now func() time.Time
}

// NewLog creates an empty log with the status indicator at Ready.
func NewLog() *Log {
	return &Log{
		slots:      make(map[string]int),
		rawShown:   make(map[string]bool),
		statusText: "Ready",
		now:        time.Now,
	}
}

// AppendMessage appends a plain message entry.
func (l *Log) AppendMessage(level Level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, Entry{Time: l.now(), Level: level, Body: msg})
}

// AppendRecord appends a rendered record entry and claims the slot for
// orderRef. A later lookup for the same reference claims a fresh slot; the
// old entry stays in the log but is no longer addressable.
func (l *Log) AppendRecord(orderRef, markup string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, Entry{Time: l.now(), Level: LevelSuccess, OrderRef: orderRef, Body: markup})
	l.slots[orderRef] = len(l.entries) - 1
}

// UpdateRecord re-renders the existing slot for orderRef in place. The log
// order never changes. Returns record.ErrNotFound when the reference has no
// slot.
func (l *Log) UpdateRecord(orderRef, markup string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	i, ok := l.slots[orderRef]
	if !ok {
		return record.ErrNotFound
	}
	l.entries[i].Body = markup
	l.entries[i].Time = l.now()
	return nil
}

// ToggleRaw flips the raw-data inspector for orderRef and returns the new
// visibility. State is independent per reference; two flips restore the
// original visibility.
func (l *Log) ToggleRaw(orderRef string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rawShown[orderRef] = !l.rawShown[orderRef]
	return l.rawShown[orderRef]
}

// RawVisible reports whether the raw-data inspector for orderRef is shown.
func (l *Log) RawVisible(orderRef string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rawShown[orderRef]
}

// HideRaw forces the inspector for orderRef to hidden. Re-renders triggered
// by an edit save reset the inspector, matching the original dashboard.
func (l *Log) HideRaw(orderRef string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.rawShown, orderRef)
}

// SetStatus updates the status indicator.
func (l *Log) SetStatus(text string, kind StatusKind) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.statusText = text
	l.statusKind = kind
}

// Status returns the current status indicator text and kind.
func (l *Log) Status() (string, StatusKind) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.statusText, l.statusKind
}

// Entries returns a snapshot of the log, oldest first.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Clear empties the log and resets the status indicator.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
	l.slots = make(map[string]int)
	l.rawShown = make(map[string]bool)
	l.statusText = "Ready"
	l.statusKind = StatusReady
}

// RefreshEntry rebuilds the view for orderRef from the store and re-renders
// its slot in place, honoring the current raw-inspector visibility.
func RefreshEntry(store *record.Store, log *Log, orderRef string) error {
	rec, ok := store.Get(orderRef)
	if !ok {
		return record.ErrNotFound
	}
	plan, _ := store.Plan(orderRef)
	markup, err := RenderEntry(BuildEntryView(rec, plan, log.RawVisible(orderRef)))
	if err != nil {
		return err
	}
	return log.UpdateRecord(orderRef, markup)
}
