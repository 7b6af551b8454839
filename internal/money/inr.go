// Package money formats rupee amounts for display using the Indian digit
// grouping convention (last three digits, then groups of two).
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatINR renders an amount as an Indian-rupee currency string with two
// decimal places, e.g. 123456.7 -> "₹1,23,456.70".
func FormatINR(amount decimal.Decimal) string {
	s := amount.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	out := "₹" + groupIndian(intPart) + "." + frac
	if neg {
		out = "-" + out
	}
	return out
}

// groupIndian inserts commas into a digit string: the last three digits form
// one group, every group before that has two digits.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	parts = append([]string{head}, parts...)
	return strings.Join(parts, ",") + "," + tail
}
