package pos

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Error kinds shared by stores, services, and handlers.
// Wrap them with fmt.Errorf("%w: ...", ErrX) and match with errors.Is.
var (
	ErrValidation      = errors.New("validation error")
	ErrNotFound        = errors.New("not found")
	ErrStorage         = errors.New("storage error")
	ErrExternalService = errors.New("external service error")
)

// Limits every backend can hold: costs and totals fit NUMERIC(12,2),
// names fit VARCHAR(255).
const (
	MaxNameLength = 255
	CostScale     = 2
)

// MaxAmount is the exclusive upper bound for a cost or an order total.
var MaxAmount = decimal.New(1, 10)

// Item is a catalog row.
type Item struct {
	ID   int             `json:"id"`
	Name string          `json:"name"`
	Cost decimal.Decimal `json:"cost"`
}

// Transaction is a completed order as persisted in the history table.
// Items and Quantities are display strings, not structured references.
type Transaction struct {
	ID           uuid.UUID       `json:"id"`
	CustomerName string          `json:"customer_name"`
	PlotNumber   string          `json:"plot_number"`
	Items        string          `json:"items"`
	Quantities   string          `json:"quantities"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	CreatedAt    time.Time       `json:"created_at"`
}

// FormatLineItems renders items paired with quantities by position,
// e.g. "Tea (₹20) x2, Coffee (₹30) x1".
func FormatLineItems(items []Item, quantities []int) string {
	n := min(len(items), len(quantities))
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		parts[i] = fmt.Sprintf("%s (₹%s) x%d", items[i].Name, items[i].Cost.String(), quantities[i])
	}
	return strings.Join(parts, ", ")
}

// JoinQuantities renders quantities as "2, 1".
func JoinQuantities(quantities []int) string {
	parts := make([]string, len(quantities))
	for i, q := range quantities {
		parts[i] = strconv.Itoa(q)
	}
	return strings.Join(parts, ", ")
}

// OrderSummary is what the paired display shows for the order just placed.
type OrderSummary struct {
	CustomerName string          `json:"customer_name"`
	PlotNumber   string          `json:"plot_number"`
	Items        []Item          `json:"items"`
	Quantities   []int           `json:"quantities"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	QRCode       string          `json:"qr_code"`
}
