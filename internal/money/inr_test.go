package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatINR(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "₹0.00"},
		{"50", "₹50.00"},
		{"950", "₹950.00"},
		{"1050", "₹1,050.00"},
		{"123456.7", "₹1,23,456.70"},
		{"12345678.9", "₹1,23,45,678.90"},
		{"1000000", "₹10,00,000.00"},
		{"-1050", "-₹1,050.00"},
	}
	for _, tc := range cases {
		got := FormatINR(decimal.RequireFromString(tc.in))
		if got != tc.want {
			t.Errorf("FormatINR(%s) = %s, want %s", tc.in, got, tc.want)
		}
	}
}
