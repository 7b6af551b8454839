// Package records holds the building/tax record store and the lookup rules
// used by the wizard: criteria matching, default tax selection, and the
// single PENDING→PAID mutation path.
package records

import (
	"github.com/shopspring/decimal"
)

// TaxStatus is the payment status of a single tax record.
type TaxStatus string

const (
	StatusPending TaxStatus = "PENDING"
	StatusPaid    TaxStatus = "PAID"
)

// Label returns the display label for a status ("Tax Pending" / "Tax Paid").
// Unknown statuses fall back to the raw value.
func (s TaxStatus) Label() string {
	switch s {
	case StatusPending:
		return "Tax Pending"
	case StatusPaid:
		return "Tax Paid"
	default:
		return string(s)
	}
}

// Tax is one tax period's payable amount for a building.
type Tax struct {
	ID        string          `json:"id"`
	TaxAmount decimal.Decimal `json:"taxAmount"`
	Penalty   decimal.Decimal `json:"penalty"`
	DueDate   string          `json:"dueDate"`
	Status    TaxStatus       `json:"status"`
}

// Total returns the payable total: taxAmount + penalty.
func (t Tax) Total() decimal.Decimal {
	return t.TaxAmount.Add(t.Penalty)
}

// Building is a property record with its owned tax history.
type Building struct {
	BuildingID    string `json:"buildingId"`
	MobileNumber  string `json:"mobileNumber"`
	AadhaarNumber string `json:"aadhaarNumber"`
	OwnerName     string `json:"ownerName"`
	Ward          string `json:"ward"`
	Address       string `json:"address"`
	Taxes         []Tax  `json:"taxes"`
}

// DefaultTax picks the tax record the wizard should display: the first
// PENDING record in stored order, falling back to the first record when
// nothing is pending. Returns nil for an empty tax history.
func (b *Building) DefaultTax() *Tax {
	for i := range b.Taxes {
		if b.Taxes[i].Status == StatusPending {
			return &b.Taxes[i]
		}
	}
	if len(b.Taxes) > 0 {
		return &b.Taxes[0]
	}
	return nil
}

// Tax resolves a tax record by id within the building's current tax list.
// Callers re-resolve instead of caching so a payment mutation is always
// reflected. Returns nil when the id is unknown.
func (b *Building) Tax(id string) *Tax {
	for i := range b.Taxes {
		if b.Taxes[i].ID == id {
			return &b.Taxes[i]
		}
	}
	return nil
}

// clone returns a deep copy so callers never share the store's tax slice.
func (b Building) clone() Building {
	out := b
	out.Taxes = make([]Tax, len(b.Taxes))
	copy(out.Taxes, b.Taxes)
	return out
}
