// Package session owns the wizard state machine that drives the property-tax
// flow: SEARCH → TAX_SUMMARY → PAYMENT → RESULT, with a back edge from
// PAYMENT and a reset edge from everywhere. The view layer is a thin adapter
// over the Controller's method surface; no business logic lives in the UI.
package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"taxseva/internal/logging"
	"taxseva/internal/payment"
	"taxseva/internal/records"
	"taxseva/internal/upi"
)

// Step identifies the wizard view currently in control.
type Step int

const (
	StepSearch Step = iota
	StepTaxSummary
	StepPayment
	StepResult
)

// String returns the canonical step name.
func (s Step) String() string {
	switch s {
	case StepSearch:
		return "SEARCH"
	case StepTaxSummary:
		return "TAX_SUMMARY"
	case StepPayment:
		return "PAYMENT"
	case StepResult:
		return "RESULT"
	default:
		return fmt.Sprintf("Step(%d)", int(s))
	}
}

// StateError reports an operation invoked from the wrong wizard state. The
// view layer should have disabled the action; the controller still rejects it
// rather than mutate state.
type StateError struct {
	Op     string
	Step   Step
	Reason string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s not allowed in %s: %s", e.Op, e.Step, e.Reason)
}

var (
	// ErrPaymentInProgress is returned when ConfirmPayment is re-entered
	// while a submission is in flight. Callers ignore it; nothing is queued.
	ErrPaymentInProgress = errors.New("payment already in progress")

	// ErrStaleSession marks a payment completion that arrived after the
	// session was reset. It must be discarded by the caller, not shown.
	ErrStaleSession = errors.New("session was reset during payment")
)

// Merchant identifies the payee on generated payment-request URIs.
type Merchant struct {
	VPA  string
	Name string
}

// Controller orchestrates the record store and payment simulator into the
// wizard flow and holds the current selection state. All session state lives
// here, guarded by mu; the mutex is released while a payment submission waits
// out its simulated latency so Reset stays responsive.
type Controller struct {
	mu sync.Mutex

	store    *records.Store
	sim      *payment.Simulator
	merchant Merchant

	id                 string
	step               Step
	selectedBuildingID string
	selectedTaxID      string
	processing         bool
	generation         uint64
	lastOutcome        *payment.Outcome
}

// New creates a controller in the SEARCH step with no selection.
func New(store *records.Store, sim *payment.Simulator, merchant Merchant) *Controller {
	c := &Controller{
		store:    store,
		sim:      sim,
		merchant: merchant,
		id:       uuid.NewString(),
		step:     StepSearch,
	}
	logging.Session("Session %s started", c.id)
	return c
}

// ID returns the session identifier.
func (c *Controller) ID() string { return c.id }

// Step returns the wizard step currently in control.
func (c *Controller) Step() Step {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.step
}

// IsProcessing reports whether a payment submission is in flight.
func (c *Controller) IsProcessing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.processing
}

// Search resolves the criteria to a building, picks the default tax record,
// and advances to TAX_SUMMARY. On any failure the wizard stays in SEARCH and
// the specific error is surfaced to the caller.
func (c *Controller) Search(criteria records.Criteria) (records.Building, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	building, err := c.store.Find(criteria)
	if err != nil {
		logging.SessionDebug("Search failed: %v", err)
		return records.Building{}, err
	}

	tax := building.DefaultTax()
	// Find already rejects empty tax histories, so tax is never nil here.
	c.selectedBuildingID = building.BuildingID
	c.selectedTaxID = tax.ID
	c.step = StepTaxSummary
	logging.Session("Search selected building=%s tax=%s", building.BuildingID, tax.ID)
	return building, nil
}

// SelectedBuilding re-fetches the selected building by id so mutations are
// always reflected. The second return is false when nothing is selected.
func (c *Controller) SelectedBuilding() (records.Building, bool) {
	c.mu.Lock()
	id := c.selectedBuildingID
	c.mu.Unlock()

	if id == "" {
		return records.Building{}, false
	}
	return c.store.Building(id)
}

// DisplayTax returns the currently selected tax record, freshly resolved from
// the store, or nil when nothing is selected.
func (c *Controller) DisplayTax() *records.Tax {
	c.mu.Lock()
	buildingID, taxID := c.selectedBuildingID, c.selectedTaxID
	c.mu.Unlock()

	if buildingID == "" || taxID == "" {
		return nil
	}
	building, ok := c.store.Building(buildingID)
	if !ok {
		return nil
	}
	return building.Tax(taxID)
}

// PayableTotal returns taxAmount + penalty for the selected tax record, or
// zero when nothing is selected.
func (c *Controller) PayableTotal() decimal.Decimal {
	tax := c.DisplayTax()
	if tax == nil {
		return decimal.Zero
	}
	return tax.Total()
}

// StatusLabel returns the display label for the selected tax's status.
func (c *Controller) StatusLabel() string {
	tax := c.DisplayTax()
	if tax == nil {
		return ""
	}
	return tax.Status.Label()
}

// PayURI returns the payment-request URI for the selected tax's total.
func (c *Controller) PayURI() string {
	return upi.PayURI(c.merchant.VPA, c.merchant.Name, c.PayableTotal())
}

// ProceedToPayment moves TAX_SUMMARY → PAYMENT. It is rejected when the
// wizard is in any other step or when the selected tax is already PAID.
func (c *Controller) ProceedToPayment() error {
	tax := c.DisplayTax()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.step != StepTaxSummary {
		return &StateError{Op: "proceedToPayment", Step: c.step, Reason: "payment starts from the tax summary"}
	}
	if tax == nil {
		return &StateError{Op: "proceedToPayment", Step: c.step, Reason: "no tax record selected"}
	}
	if tax.Status == records.StatusPaid {
		return &StateError{Op: "proceedToPayment", Step: c.step, Reason: "tax is already paid"}
	}

	c.lastOutcome = nil
	c.step = StepPayment
	logging.Session("Proceeding to payment, total=%s", tax.Total().String())
	return nil
}

// ConfirmPayment submits the payment identifier to the simulator and, once
// the simulated round trip resolves, moves to RESULT with the outcome
// attached regardless of SUCCESS/FAILURE. Re-entrant calls while a submission
// is in flight get ErrPaymentInProgress. A completion that lands after
// Reset is discarded: the controller returns ErrStaleSession and applies no
// state. Validation failures surface immediately and the step stays PAYMENT.
func (c *Controller) ConfirmPayment(paymentID string) (payment.Outcome, error) {
	c.mu.Lock()
	if c.step != StepPayment {
		step := c.step
		c.mu.Unlock()
		return payment.Outcome{}, &StateError{Op: "confirmPayment", Step: step, Reason: "not on the payment step"}
	}
	if c.processing {
		c.mu.Unlock()
		return payment.Outcome{}, ErrPaymentInProgress
	}
	buildingID, taxID := c.selectedBuildingID, c.selectedTaxID
	gen := c.generation
	c.processing = true
	c.mu.Unlock()

	// The submission always runs to completion; there is no cancellation.
	out, err := c.sim.Submit(paymentID, buildingID, taxID)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.generation != gen {
		// The session moved on while the round trip was in flight. The
		// completion is detached: no step change, no outcome, no error shown.
		logging.SessionWarn("Discarding stale payment completion for session %s", c.id)
		return payment.Outcome{}, ErrStaleSession
	}

	c.processing = false
	if err != nil {
		return payment.Outcome{}, err
	}

	c.lastOutcome = &out
	c.step = StepResult
	logging.Session("Payment resolved with %s", out.Status)
	return out, nil
}

// Outcome returns the outcome attached to the RESULT step, or nil before a
// payment has resolved.
func (c *Controller) Outcome() *payment.Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastOutcome
}

// Back moves PAYMENT → TAX_SUMMARY. A no-op from every other step.
func (c *Controller) Back() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.step == StepPayment && !c.processing {
		c.step = StepTaxSummary
	}
}

// Reset clears the selection and returns to SEARCH from any state, including
// mid-payment: the in-flight completion is abandoned and later discarded via
// the generation check. Calling Reset when already reset is a no-op.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.selectedBuildingID = ""
	c.selectedTaxID = ""
	c.lastOutcome = nil
	c.processing = false
	c.generation++
	c.step = StepSearch
	logging.Session("Session %s reset", c.id)
}
