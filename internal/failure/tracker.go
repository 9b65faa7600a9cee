// Package failure records customer creation attempts that could not be
// pushed to billing, so operators can retry them later.
package failure

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/OleksSobol/Utopia-Account-Creation---UAC/internal/record"
)

// Record is one tracked failure, keyed by order reference in the file.
type Record struct {
	OrderRef          string              `json:"orderref"`
	ErrorMessage      string              `json:"error_message"`
	FailureType       string              `json:"failure_type"`
	Timestamp         time.Time           `json:"timestamp"`
	FirstFailure      time.Time           `json:"first_failure"`
	CustomerData      *record.OrderRecord `json:"customer_data,omitempty"`
	RetryCount        int                 `json:"retry_count"`
	Resolved          bool                `json:"resolved"`
	ResolvedTimestamp *time.Time          `json:"resolved_timestamp,omitempty"`
	ResolutionNote    string              `json:"resolution_note,omitempty"`
}

// Stats summarizes the tracked failures.
type Stats struct {
	TotalFailures      int            `json:"total_failures"`
	UnresolvedFailures int            `json:"unresolved_failures"`
	ResolvedFailures   int            `json:"resolved_failures"`
	FailureTypes       map[string]int `json:"failure_types"`
	TotalRetries       int            `json:"total_retries"`
}

// Tracker is a file-backed store of failed creation attempts. One record
// per order reference; a repeat failure for the same reference bumps the
// retry count and keeps the first failure time.
type Tracker struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

// NewTracker creates a tracker over the given JSON file. The file is
// created on the first write if it does not exist.
func NewTracker(path string) *Tracker {
	return &Tracker{path: path, now: time.Now}
}

// Record stores a failure. An empty orderRef gets a generated UNKNOWN_
// reference so the record is still addressable.
func (t *Tracker) Record(orderRef, errorMessage, failureType string, customerData *record.OrderRecord) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if strings.TrimSpace(orderRef) == "" {
		orderRef = t.generateRef()
	}

	failures, err := t.load()
	if err != nil {
		return "", err
	}

	now := t.now()
	rec := Record{
		OrderRef:     orderRef,
		ErrorMessage: errorMessage,
		FailureType:  failureType,
		Timestamp:    now,
		FirstFailure: now,
		CustomerData: customerData,
	}
	if prev, ok := failures[orderRef]; ok {
		rec.RetryCount = prev.RetryCount + 1
		rec.FirstFailure = prev.FirstFailure
	}

	failures[orderRef] = rec
	if err := t.save(failures); err != nil {
		return "", err
	}
	return orderRef, nil
}

// List returns failures sorted newest first. Resolved records are omitted
// unless includeResolved is set.
func (t *Tracker) List(includeResolved bool) ([]Record, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	failures, err := t.load()
	if err != nil {
		return nil, err
	}

	list := make([]Record, 0, len(failures))
	for _, rec := range failures {
		if !includeResolved && rec.Resolved {
			continue
		}
		list = append(list, rec)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Timestamp.After(list[j].Timestamp)
	})
	return list, nil
}

// Resolve marks a failure as handled without deleting it.
func (t *Tracker) Resolve(orderRef, note string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	failures, err := t.load()
	if err != nil {
		return false, err
	}
	rec, ok := failures[orderRef]
	if !ok {
		return false, nil
	}
	now := t.now()
	rec.Resolved = true
	rec.ResolvedTimestamp = &now
	rec.ResolutionNote = note
	failures[orderRef] = rec
	return true, t.save(failures)
}

// Remove deletes a failure record outright.
func (t *Tracker) Remove(orderRef string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	failures, err := t.load()
	if err != nil {
		return false, err
	}
	if _, ok := failures[orderRef]; !ok {
		return false, nil
	}
	delete(failures, orderRef)
	return true, t.save(failures)
}

// Stats computes counts over all tracked failures, resolved included.
func (t *Tracker) Stats() (*Stats, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	failures, err := t.load()
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		TotalFailures: len(failures),
		FailureTypes:  map[string]int{},
	}
	for _, rec := range failures {
		if rec.Resolved {
			stats.ResolvedFailures++
		} else {
			stats.UnresolvedFailures++
		}
		ft := rec.FailureType
		if ft == "" {
			ft = "unknown"
		}
		stats.FailureTypes[ft]++
		stats.TotalRetries += rec.RetryCount
	}
	return stats, nil
}

// CleanupResolved removes resolved failures older than maxAge and returns
// how many were dropped.
func (t *Tracker) CleanupResolved(maxAge time.Duration) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	failures, err := t.load()
	if err != nil {
		return 0, err
	}

	cutoff := t.now().Add(-maxAge)
	removed := 0
	for ref, rec := range failures {
		if !rec.Resolved {
			continue
		}
		resolvedAt := rec.Timestamp
		if rec.ResolvedTimestamp != nil {
			resolvedAt = *rec.ResolvedTimestamp
		}
		if resolvedAt.Before(cutoff) {
			delete(failures, ref)
			removed++
		}
	}
	if removed > 0 {
		if err := t.save(failures); err != nil {
			return 0, err
		}
	}
	return removed, nil
}

func (t *Tracker) generateRef() string {
	ts := t.now().Format("20060102_150405")
	return fmt.Sprintf("UNKNOWN_%s_%s", ts, uuid.NewString()[:8])
}

func (t *Tracker) load() (map[string]Record, error) {
	data, err := os.ReadFile(t.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]Record{}, nil
	}
	if err != nil {
		return nil, err
	}
	failures := map[string]Record{}
	if err := json.Unmarshal(data, &failures); err != nil {
		return nil, fmt.Errorf("parse %s: %w", t.path, err)
	}
	return failures, nil
}

func (t *Tracker) save(failures map[string]Record) error {
	data, err := json.MarshalIndent(failures, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(t.path, data, 0o600)
}
