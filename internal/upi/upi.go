// Package upi builds UPI deep links that payment apps scan from a QR code.
package upi

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Payee identifies who receives the payment.
type Payee struct {
	ID       string // VPA, e.g. "shop@okaxis"
	Name     string
	Currency string
}

// PaymentURI renders upi://pay?pa=..&pn=..&am=..&cu=..
// Values are inserted verbatim; scanners in the field expect the raw payee name.
func PaymentURI(p Payee, amount decimal.Decimal) string {
	return fmt.Sprintf("upi://pay?pa=%s&pn=%s&am=%s&cu=%s", p.ID, p.Name, amount.StringFixed(2), p.Currency)
}
