// Package upi builds UPI payment-request URIs and renders them as terminal
// QR codes for the simulated scan flow.
package upi

import (
	"fmt"
	"net/url"

	"github.com/shopspring/decimal"
	qrcode "github.com/skip2/go-qrcode"
)

// PayURI returns a payment-request URI of the form
// upi://pay?pa=<merchant>&pn=<name>&am=<amount>. Parameter order is fixed
// because scanners in the wild are picky about it.
func PayURI(merchantVPA, merchantName string, amount decimal.Decimal) string {
	return fmt.Sprintf("upi://pay?pa=%s&pn=%s&am=%s",
		url.QueryEscape(merchantVPA),
		url.QueryEscape(merchantName),
		amount.String(),
	)
}

// QR renders the given URI as a small block-character QR code suitable for
// terminal display.
func QR(uri string) (string, error) {
	q, err := qrcode.New(uri, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to encode QR: %w", err)
	}
	return q.ToSmallString(false), nil
}
