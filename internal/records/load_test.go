package records

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
)

func writeRecords(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "buildings.json")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeRecords(t, `[
		{
			"buildingId": "B1",
			"mobileNumber": "9000000000",
			"aadhaarNumber": "111122223333",
			"ownerName": "Meera Nair",
			"ward": "Ward 14",
			"address": "Palayam",
			"taxes": [
				{"id": "T1", "taxAmount": 1000, "penalty": 50.5, "dueDate": "2024-03-31", "status": "PENDING"}
			]
		}
	]`)

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 building, got %d", s.Len())
	}

	b, ok := s.Building("B1")
	if !ok {
		t.Fatal("B1 not found after load")
	}
	tax := b.Tax("T1")
	if tax == nil {
		t.Fatal("T1 not found after load")
	}
	if !tax.Penalty.Equal(decimal.RequireFromString("50.5")) {
		t.Errorf("expected penalty 50.5, got %s", tax.Penalty)
	}
	if !tax.Total().Equal(decimal.RequireFromString("1050.5")) {
		t.Errorf("expected total 1050.5, got %s", tax.Total())
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoad_Malformed(t *testing.T) {
	path := writeRecords(t, `{"not": "an array"}`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed file")
	}
}

func TestLoad_DuplicateBuildingID(t *testing.T) {
	path := writeRecords(t, `[
		{"buildingId": "B1", "taxes": []},
		{"buildingId": "B1", "taxes": []}
	]`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for duplicate buildingId")
	}
}

func TestLoad_EmptyBuildingID(t *testing.T) {
	path := writeRecords(t, `[{"buildingId": "", "taxes": []}]`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for empty buildingId")
	}
}
