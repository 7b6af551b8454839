// Package payment simulates a UPI payment round trip. There is no gateway:
// the outcome is computed from the payment identifier, and the only
// discriminator is the substring "fail" (case-insensitive). Everything else,
// including identifiers without the "success" keyword, succeeds.
package payment

import (
	"strconv"
	"strings"
	"time"

	"taxseva/internal/logging"
	"taxseva/internal/records"
)

// Status is the terminal state of a simulated payment. FAILURE is a normal,
// modeled result (user-facing authorization failure), not a system error.
type Status string

const (
	StatusSuccess Status = "SUCCESS"
	StatusFailure Status = "FAILURE"
)

// Result messages shown to the user, matching the municipal portal copy.
const (
	successMessage = "Payment captured. Your building tax is marked as paid."
	failureMessage = "UPI authorization failed. Please try again."
)

// Outcome is the result of a simulated payment. ReferenceID is set only on
// success and is cosmetic: a short transaction reference for display, not a
// guaranteed-unique identifier.
type Outcome struct {
	Status      Status
	Message     string
	ReferenceID string
}

// Succeeded reports whether the outcome was a successful capture.
func (o Outcome) Succeeded() bool { return o.Status == StatusSuccess }

// Simulator runs the fake network round trip and applies the PAID mutation
// through the record store on success.
type Simulator struct {
	store   *records.Store
	latency time.Duration
	now     func() time.Time // test seam for reference ids
}

// NewSimulator creates a simulator over the given store. latency is the fixed
// simulated network delay before an outcome is produced.
func NewSimulator(store *records.Store, latency time.Duration) *Simulator {
	return &Simulator{
		store:   store,
		latency: latency,
		now:     time.Now,
	}
}

// Submit validates the payment identifier, waits out the simulated latency,
// and resolves to an Outcome. On success the matching tax record is marked
// PAID in the store; on failure nothing is mutated. Once started, a
// submission always runs to completion: there is no cancellation or timeout.
func (s *Simulator) Submit(paymentID, buildingID, taxID string) (Outcome, error) {
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return Outcome{}, records.NewValidationError("payment identifier required")
	}

	logging.Payment("Submitting payment for building=%s tax=%s", buildingID, taxID)
	time.Sleep(s.latency)

	if strings.Contains(strings.ToLower(paymentID), "fail") {
		logging.Payment("Payment declined for building=%s tax=%s", buildingID, taxID)
		return Outcome{Status: StatusFailure, Message: failureMessage}, nil
	}

	if err := s.store.MarkPaid(buildingID, taxID); err != nil {
		return Outcome{}, err
	}

	out := Outcome{
		Status:      StatusSuccess,
		Message:     successMessage,
		ReferenceID: s.referenceID(),
	}
	logging.Payment("Payment captured for building=%s tax=%s ref=%s", buildingID, taxID, out.ReferenceID)
	return out, nil
}

// referenceID derives a short display reference from the current timestamp:
// TXN- plus the last six digits of the millisecond clock.
func (s *Simulator) referenceID() string {
	ms := strconv.FormatInt(s.now().UnixMilli(), 10)
	if len(ms) > 6 {
		ms = ms[len(ms)-6:]
	}
	return "TXN-" + ms
}
