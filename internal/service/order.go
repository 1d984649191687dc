package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kiwari-pos/qrcounter/internal/archive"
	"github.com/kiwari-pos/qrcounter/internal/metrics"
	"github.com/kiwari-pos/qrcounter/internal/pos"
	"github.com/kiwari-pos/qrcounter/internal/qr"
	"github.com/kiwari-pos/qrcounter/internal/store"
	"github.com/kiwari-pos/qrcounter/internal/upi"
	"github.com/shopspring/decimal"
)

// Errors returned by the order service.
var (
	ErrCustomerRequired = fmt.Errorf("%w: customer_name is required", pos.ErrValidation)
	ErrPlotRequired     = fmt.Errorf("%w: plot_number is required", pos.ErrValidation)
	ErrEmptyItems       = fmt.Errorf("%w: items are required", pos.ErrValidation)
	ErrLengthMismatch   = fmt.Errorf("%w: items and quantities differ in length", pos.ErrValidation)
	ErrInvalidQuantity  = fmt.Errorf("%w: quantity must be > 0", pos.ErrValidation)
	ErrTotalTooLarge    = fmt.Errorf("%w: order total must be below %s", pos.ErrValidation, pos.MaxAmount)
)

// Notifier pushes order-flow events to paired displays. Calls must not block.
type Notifier interface {
	BroadcastOrder(summary pos.OrderSummary)
	BroadcastReset()
}

// OrderServiceConfig wires an OrderService. Archive and Metrics are optional.
type OrderServiceConfig struct {
	Items    store.ItemStore
	Txns     store.TransactionStore
	QR       qr.Generator
	Payee    upi.Payee
	Notifier Notifier
	Archive  archive.Archive
	Metrics  *metrics.Metrics
}

// OrderService places orders and records them.
type OrderService struct {
	items    store.ItemStore
	txns     store.TransactionStore
	qr       qr.Generator
	payee    upi.Payee
	notifier Notifier
	archive  archive.Archive
	metrics  *metrics.Metrics

	now   func() time.Time
	newID func() uuid.UUID
}

// NewOrderService creates a new OrderService.
func NewOrderService(cfg OrderServiceConfig) *OrderService {
	return &OrderService{
		items:    cfg.Items,
		txns:     cfg.Txns,
		qr:       cfg.QR,
		payee:    cfg.Payee,
		notifier: cfg.Notifier,
		archive:  cfg.Archive,
		metrics:  cfg.Metrics,
		now:      time.Now,
		newID:    uuid.New,
	}
}

// PlaceOrderRequest pairs ItemIDs[i] with Quantities[i].
type PlaceOrderRequest struct {
	CustomerName string
	PlotNumber   string
	ItemIDs      []int
	Quantities   []int
}

// OrderLine is one resolved position of the order.
type OrderLine struct {
	Item     pos.Item        `json:"item"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// OrderResult is returned to the submitter and mirrors what the display receives.
type OrderResult struct {
	TransactionID uuid.UUID       `json:"transaction_id"`
	CustomerName  string          `json:"customer_name"`
	PlotNumber    string          `json:"plot_number"`
	Lines         []OrderLine     `json:"lines"`
	Items         string          `json:"items"`      // as recorded, e.g. "Coffee (₹30) x3"
	Quantities    string          `json:"quantities"` // as recorded, e.g. "3"
	TotalCost     decimal.Decimal `json:"total_cost"`
	PaymentURI    string          `json:"payment_uri"`
	QRCode        string          `json:"qr_code"`            // base64 PNG
	QRError       string          `json:"qr_error,omitempty"` // set when the QR could not be generated
	CreatedAt     time.Time       `json:"created_at"`
}

// Summary is the order_summary payload for displays.
func (r *OrderResult) Summary() pos.OrderSummary {
	items := make([]pos.Item, len(r.Lines))
	qtys := make([]int, len(r.Lines))
	for i, l := range r.Lines {
		items[i] = l.Item
		qtys[i] = l.Quantity
	}
	return pos.OrderSummary{
		CustomerName: r.CustomerName,
		PlotNumber:   r.PlotNumber,
		Items:        items,
		Quantities:   qtys,
		TotalCost:    r.TotalCost,
		QRCode:       r.QRCode,
	}
}

// PlaceOrder validates the request, prices it, renders the payment QR,
// records the transaction, and then notifies displays.
//
// Nothing is recorded when validation or item resolution fails. A QR failure
// does not abort the order: the transaction is recorded and QRError is set.
func (s *OrderService) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*OrderResult, error) {
	// --- Validate ---
	customer := strings.TrimSpace(req.CustomerName)
	if customer == "" {
		return nil, ErrCustomerRequired
	}
	plot := strings.TrimSpace(req.PlotNumber)
	if plot == "" {
		return nil, ErrPlotRequired
	}
	if len(req.ItemIDs) == 0 {
		return nil, ErrEmptyItems
	}
	if len(req.ItemIDs) != len(req.Quantities) {
		return nil, fmt.Errorf("%w (%d items, %d quantities)", ErrLengthMismatch, len(req.ItemIDs), len(req.Quantities))
	}
	for i, q := range req.Quantities {
		if q <= 0 {
			return nil, fmt.Errorf("item[%d]: %w", i, ErrInvalidQuantity)
		}
	}

	// --- Resolve items and price, pairwise by position ---
	catalog, err := s.items.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	total := decimal.Zero
	lines := make([]OrderLine, len(req.ItemIDs))
	for i, id := range req.ItemIDs {
		item, ok := findItem(catalog, id)
		if !ok {
			return nil, fmt.Errorf("item[%d]: %w %d", i, ErrItemNotFound, id)
		}
		subtotal := item.Cost.Mul(decimal.NewFromInt(int64(req.Quantities[i])))
		lines[i] = OrderLine{Item: item, Quantity: req.Quantities[i], Subtotal: subtotal}
		total = total.Add(subtotal)
	}
	if total.GreaterThanOrEqual(pos.MaxAmount) {
		return nil, ErrTotalTooLarge
	}

	result := &OrderResult{
		TransactionID: s.newID(),
		CustomerName:  customer,
		PlotNumber:    plot,
		Lines:         lines,
		TotalCost:     total,
		PaymentURI:    upi.PaymentURI(s.payee, total),
		CreatedAt:     s.now().UTC(),
	}

	// --- Payment QR ---
	png, err := s.qr.PNG(result.PaymentURI)
	if err != nil {
		log.Printf("ERROR: generate payment qr for %s: %v", result.TransactionID, err)
		s.metrics.QRFailed()
		result.QRError = "payment QR code unavailable"
	} else {
		result.QRCode = qr.Base64(png)
	}

	// --- Record ---
	summary := result.Summary()
	txn := pos.Transaction{
		ID:           result.TransactionID,
		CustomerName: customer,
		PlotNumber:   plot,
		Items:        pos.FormatLineItems(summary.Items, summary.Quantities),
		Quantities:   pos.JoinQuantities(summary.Quantities),
		TotalCost:    total,
		CreatedAt:    result.CreatedAt,
	}
	if err := s.txns.AppendTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("record transaction: %w", err)
	}
	result.Items = txn.Items
	result.Quantities = txn.Quantities
	s.metrics.OrderPlaced(total)

	if s.archive != nil && png != nil {
		key := archive.ReceiptKey(result.TransactionID.String())
		if err := s.archive.Put(ctx, key, "image/png", png); err != nil {
			log.Printf("WARNING: archive receipt %s: %v", key, err)
		}
	}

	// --- Notify displays ---
	s.notifier.BroadcastOrder(summary)

	return result, nil
}

// NextOrder clears every paired display.
func (s *OrderService) NextOrder() {
	s.notifier.BroadcastReset()
}

// ListTransactions reloads the full order history.
func (s *OrderService) ListTransactions(ctx context.Context) ([]pos.Transaction, error) {
	return s.txns.ListTransactions(ctx)
}
