package upi

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestPayURI(t *testing.T) {
	uri := PayURI("taxseva@upi", "TAXSEVA", decimal.RequireFromString("1050"))
	want := "upi://pay?pa=taxseva%40upi&pn=TAXSEVA&am=1050"
	if uri != want {
		t.Errorf("PayURI = %s, want %s", uri, want)
	}
}

func TestPayURI_EscapesName(t *testing.T) {
	uri := PayURI("ksmart@upi", "Kochi Corp", decimal.RequireFromString("780"))
	if !strings.Contains(uri, "pn=Kochi+Corp") {
		t.Errorf("expected escaped merchant name in %s", uri)
	}
}

func TestQR(t *testing.T) {
	qr, err := QR("upi://pay?pa=taxseva@upi&pn=TAXSEVA&am=1050")
	if err != nil {
		t.Fatalf("QR failed: %v", err)
	}
	if qr == "" {
		t.Fatal("expected non-empty QR block")
	}
}
