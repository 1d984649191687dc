package postgres

import (
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

func TestNumericRoundTrip(t *testing.T) {
	for _, in := range []string{"0", "20", "12.5", "99999.99"} {
		d := decimal.RequireFromString(in)
		got := numericToDecimal(decimalToNumeric(d))
		if !got.Equal(d) {
			t.Errorf("%s: got %s", in, got)
		}
	}
}

func TestNumericToDecimal_Invalid(t *testing.T) {
	zero := numericToDecimal(pgtype.Numeric{})
	if !zero.IsZero() {
		t.Errorf("got %s, want 0", zero)
	}
}

func TestSchemaStatementsAreIdempotent(t *testing.T) {
	for _, stmt := range strings.Split(schemaSQL, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if !strings.Contains(stmt, "IF NOT EXISTS") {
			t.Errorf("statement is not idempotent: %s", stmt)
		}
	}
}
