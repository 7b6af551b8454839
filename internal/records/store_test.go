package records

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

func amount(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func testBuildings() []Building {
	return []Building{
		{
			BuildingID:    "B1",
			MobileNumber:  "9000000000",
			AadhaarNumber: "111122223333",
			OwnerName:     "Meera Nair",
			Taxes: []Tax{
				{ID: "T1", TaxAmount: amount(1000), Penalty: amount(50), DueDate: "2024-03-31", Status: StatusPending},
			},
		},
		{
			BuildingID:    "B2",
			MobileNumber:  "9111111111",
			AadhaarNumber: "444455556666",
			OwnerName:     "Joseph Mathew",
			Taxes: []Tax{
				{ID: "T2", TaxAmount: amount(2450), Penalty: amount(0), DueDate: "2024-06-30", Status: StatusPaid},
				{ID: "T3", TaxAmount: amount(2450), Penalty: amount(120), DueDate: "2024-09-30", Status: StatusPending},
			},
		},
		{
			BuildingID:    "B3",
			MobileNumber:  "9222222222",
			AadhaarNumber: "777788889999",
			OwnerName:     "Ravi Menon",
			Taxes:         []Tax{},
		},
	}
}

func TestFind_EmptyCriteria(t *testing.T) {
	s := New(testBuildings())

	_, err := s.Find(Criteria{})
	if !IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	// Whitespace-only input is still empty.
	_, err = s.Find(Criteria{Mobile: "   ", BuildingID: "\t"})
	if !IsValidation(err) {
		t.Fatalf("expected ValidationError for whitespace criteria, got %v", err)
	}
}

func TestFind_NotFound(t *testing.T) {
	s := New(testBuildings())
	_, err := s.Find(Criteria{Mobile: "0000000000"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFind_EmptyTaxHistory(t *testing.T) {
	s := New(testBuildings())
	_, err := s.Find(Criteria{BuildingID: "B3"})
	if !errors.Is(err, ErrEmptyTaxHistory) {
		t.Fatalf("expected ErrEmptyTaxHistory, got %v", err)
	}
}

func TestFind_ByBuildingID(t *testing.T) {
	s := New(testBuildings())
	for _, want := range []string{"B1", "B2"} {
		got, err := s.Find(Criteria{BuildingID: want})
		if err != nil {
			t.Fatalf("Find(%s) failed: %v", want, err)
		}
		if got.BuildingID != want {
			t.Errorf("expected %s, got %s", want, got.BuildingID)
		}
	}
}

func TestFind_ORAcrossFields(t *testing.T) {
	s := New(testBuildings())

	// Aadhaar matches B2 even though the mobile field doesn't match anything.
	got, err := s.Find(Criteria{Mobile: "0000000000", Aadhaar: "444455556666"})
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if got.BuildingID != "B2" {
		t.Errorf("expected B2, got %s", got.BuildingID)
	}
}

func TestFind_FirstMatchWins(t *testing.T) {
	s := New(testBuildings())

	// Mobile matches B1, aadhaar matches B2; store order decides.
	got, err := s.Find(Criteria{Mobile: "9000000000", Aadhaar: "444455556666"})
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if got.BuildingID != "B1" {
		t.Errorf("expected first building in store order (B1), got %s", got.BuildingID)
	}
}

func TestDefaultTax_PrefersPending(t *testing.T) {
	b := Building{Taxes: []Tax{
		{ID: "T1", Status: StatusPaid},
		{ID: "T2", Status: StatusPending},
		{ID: "T3", Status: StatusPaid},
	}}
	tax := b.DefaultTax()
	if tax == nil || tax.ID != "T2" {
		t.Fatalf("expected pending T2, got %+v", tax)
	}
}

func TestDefaultTax_AllPaidFallsBackToFirst(t *testing.T) {
	b := Building{Taxes: []Tax{
		{ID: "T1", Status: StatusPaid},
		{ID: "T2", Status: StatusPaid},
	}}
	tax := b.DefaultTax()
	if tax == nil || tax.ID != "T1" {
		t.Fatalf("expected first record T1, got %+v", tax)
	}
}

func TestMarkPaid_ReflectedOnReResolve(t *testing.T) {
	s := New(testBuildings())

	if err := s.MarkPaid("B1", "T1"); err != nil {
		t.Fatalf("MarkPaid failed: %v", err)
	}

	b, ok := s.Building("B1")
	if !ok {
		t.Fatal("B1 disappeared")
	}
	tax := b.Tax("T1")
	if tax == nil || tax.Status != StatusPaid {
		t.Fatalf("expected T1 PAID after MarkPaid, got %+v", tax)
	}
}

func TestMarkPaid_OnlyTargetRecordChanges(t *testing.T) {
	s := New(testBuildings())
	before, _ := s.Building("B2")

	if err := s.MarkPaid("B2", "T3"); err != nil {
		t.Fatalf("MarkPaid failed: %v", err)
	}

	after, _ := s.Building("B2")
	want := before
	want.Taxes[1].Status = StatusPaid
	if diff := cmp.Diff(want, after); diff != "" {
		t.Errorf("unexpected mutation beyond the target record (-want +got):\n%s", diff)
	}
}

func TestMarkPaid_UnknownIDs(t *testing.T) {
	s := New(testBuildings())
	if err := s.MarkPaid("nope", "T1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown building, got %v", err)
	}
	if err := s.MarkPaid("B1", "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown tax, got %v", err)
	}
}

func TestTotal(t *testing.T) {
	tax := Tax{TaxAmount: amount(1000), Penalty: amount(50)}
	if !tax.Total().Equal(amount(1050)) {
		t.Errorf("expected 1050, got %s", tax.Total())
	}
}

func TestStatusLabel(t *testing.T) {
	if got := StatusPending.Label(); got != "Tax Pending" {
		t.Errorf("expected Tax Pending, got %s", got)
	}
	if got := StatusPaid.Label(); got != "Tax Paid" {
		t.Errorf("expected Tax Paid, got %s", got)
	}
	if got := TaxStatus("ODD").Label(); got != "ODD" {
		t.Errorf("expected raw fallback, got %s", got)
	}
}
