package upi

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestPaymentURI(t *testing.T) {
	p := Payee{ID: "upadhyay.priyanka1-1@okaxis", Name: "Priyanka Upadhyay", Currency: "INR"}

	tests := []struct {
		amount string
		want   string
	}{
		{"90", "upi://pay?pa=upadhyay.priyanka1-1@okaxis&pn=Priyanka Upadhyay&am=90.00&cu=INR"},
		{"12.5", "upi://pay?pa=upadhyay.priyanka1-1@okaxis&pn=Priyanka Upadhyay&am=12.50&cu=INR"},
		{"0.005", "upi://pay?pa=upadhyay.priyanka1-1@okaxis&pn=Priyanka Upadhyay&am=0.01&cu=INR"},
	}
	for _, tc := range tests {
		got := PaymentURI(p, decimal.RequireFromString(tc.amount))
		if got != tc.want {
			t.Errorf("amount %s:\n got %s\nwant %s", tc.amount, got, tc.want)
		}
	}
}
