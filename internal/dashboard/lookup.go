package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/OleksSobol/Utopia-Account-Creation---UAC/internal/record"
)

// ErrEmptyOrderRef rejects an empty or whitespace-only lookup input before
// any server contact.
var ErrEmptyOrderRef = errors.New("please enter an order reference")

// ErrLookupInFlight rejects re-submission while a lookup is running. This is
// the per-control re-entrancy guard, not a global lock; lookups for other
// references issued through other controllers stay independent.
var ErrLookupInFlight = errors.New("lookup already in progress")

// defaultStatusResetDelay is cosmetic: how long the terminal status lingers
// before the indicator returns to Ready.
const defaultStatusResetDelay = 3 * time.Second

// LookupController orchestrates one lookup: validate, call the endpoint,
// store the result under the operator-typed reference, render into the log.
type LookupController struct {
	store  *record.Store
	log    *Log
	client Client

	// StatusResetDelay overrides the 3 s cosmetic reset; tests shrink it.
	StatusResetDelay time.Duration

	busy atomic.Bool
}

// NewLookupController wires a controller over the shared store and log.
func NewLookupController(store *record.Store, log *Log, client Client) *LookupController {
	return &LookupController{
		store:            store,
		log:              log,
		client:           client,
		StatusResetDelay: defaultStatusResetDelay,
	}
}

// Submit runs one lookup for the given raw input. Validation errors are
// returned to the caller and logged; declared and transport failures are
// logged only, since the action completed from the controller's point of
// view. The store is mutated solely on success.
func (c *LookupController) Submit(ctx context.Context, input string) error {
	orderRef := strings.TrimSpace(input)
	if orderRef == "" {
		c.log.AppendMessage(LevelError, "[ERROR] Please enter an order reference")
		return ErrEmptyOrderRef
	}

	if !c.busy.CompareAndSwap(false, true) {
		return ErrLookupInFlight
	}

	c.log.SetStatus("Querying...", StatusLoading)
	c.log.AppendMessage(LevelInfo, fmt.Sprintf("Querying orderref: %s", orderRef))

	// Guaranteed cleanup: whatever the outcome, the control re-enables and
	// the indicator returns to idle after the cosmetic delay.
	defer func() {
		c.busy.Store(false)
		time.AfterFunc(c.StatusResetDelay, func() {
			c.log.SetStatus("Ready", StatusReady)
		})
	}()

	rec, err := c.client.Lookup(ctx, orderRef)
	if err != nil {
		var declared *DeclaredError
		if errors.As(err, &declared) {
			c.log.AppendMessage(LevelError, fmt.Sprintf("[ERROR] %s", declared.Message))
		} else {
			c.log.AppendMessage(LevelError, fmt.Sprintf("[ERROR] Failed to connect to server: %v", err))
		}
		c.log.SetStatus("Error", StatusError)
		return nil
	}

	// Key by what the operator typed, not by anything echoed back, so later
	// edit and send operations address the same record.
	c.store.Put(orderRef, rec)

	stored, _ := c.store.Get(orderRef)
	plan, _ := c.store.Plan(orderRef)
	markup, err := RenderEntry(BuildEntryView(stored, plan, false))
	if err != nil {
		c.log.AppendMessage(LevelError, fmt.Sprintf("[ERROR] %v", err))
		c.log.SetStatus("Error", StatusError)
		return nil
	}
	c.log.AppendRecord(orderRef, markup)
	c.log.SetStatus("Success", StatusSuccess)
	return nil
}

// Busy reports whether a lookup is currently in flight.
func (c *LookupController) Busy() bool {
	return c.busy.Load()
}
