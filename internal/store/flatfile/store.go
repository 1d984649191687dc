// Package flatfile keeps the catalog and the transaction history in two
// tabular files (.csv or .xlsx), each rewritten whole on every mutation.
package flatfile

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kiwari-pos/qrcounter/internal/pos"
	"github.com/kiwari-pos/qrcounter/internal/store"
	"github.com/shopspring/decimal"
)

var (
	itemHeader = []string{"id", "name", "cost"}
	txnHeader  = []string{"customer_name", "plot_number", "items", "quantities", "total_cost", "id", "created_at"}
)

// Store implements store.Store on two flat files.
type Store struct {
	items *table
	txns  *table
}

var _ store.Store = (*Store)(nil)

// Open prepares both tables, creating header-only files when missing.
func Open(itemsPath, txnPath string) (*Store, error) {
	items, err := newTable(itemsPath, itemHeader)
	if err != nil {
		return nil, fmt.Errorf("%w: open items table: %w", pos.ErrStorage, err)
	}
	txns, err := newTable(txnPath, txnHeader)
	if err != nil {
		return nil, fmt.Errorf("%w: open transactions table: %w", pos.ErrStorage, err)
	}
	return &Store{items: items, txns: txns}, nil
}

func (s *Store) Close() error { return nil }

// --- Items ---

func (s *Store) ListItems(_ context.Context) ([]pos.Item, error) {
	recs, err := s.items.rows()
	if err != nil {
		return nil, fmt.Errorf("%w: read items: %w", pos.ErrStorage, err)
	}
	return parseItems(recs)
}

func (s *Store) AddItem(_ context.Context, name string, cost decimal.Decimal) (pos.Item, error) {
	s.items.mu.Lock()
	defer s.items.mu.Unlock()

	recs, err := s.items.rows()
	if err != nil {
		return pos.Item{}, fmt.Errorf("%w: read items: %w", pos.ErrStorage, err)
	}
	item := pos.Item{ID: len(recs) + 1, Name: name, Cost: cost}
	recs = append(recs, newRecord(itemHeader, map[string]string{
		"id":   strconv.Itoa(item.ID),
		"name": item.Name,
		"cost": item.Cost.String(),
	}))
	if err := s.items.save(recs); err != nil {
		return pos.Item{}, fmt.Errorf("%w: write items: %w", pos.ErrStorage, err)
	}
	return item, nil
}

func (s *Store) RemoveItem(_ context.Context, id int) (int, error) {
	s.items.mu.Lock()
	defer s.items.mu.Unlock()

	recs, err := s.items.rows()
	if err != nil {
		return 0, fmt.Errorf("%w: read items: %w", pos.ErrStorage, err)
	}
	want := strconv.Itoa(id)
	kept := recs[:0]
	for _, rec := range recs {
		if normalizeInt(rec.get("id")) != want {
			kept = append(kept, rec)
		}
	}
	removed := len(recs) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	if err := s.items.save(kept); err != nil {
		return 0, fmt.Errorf("%w: write items: %w", pos.ErrStorage, err)
	}
	return removed, nil
}

// --- Transactions ---

func (s *Store) AppendTransaction(_ context.Context, txn pos.Transaction) error {
	s.txns.mu.Lock()
	defer s.txns.mu.Unlock()

	recs, err := s.txns.rows()
	if err != nil {
		return fmt.Errorf("%w: read transactions: %w", pos.ErrStorage, err)
	}
	recs = append(recs, newRecord(txnHeader, map[string]string{
		"customer_name": txn.CustomerName,
		"plot_number":   txn.PlotNumber,
		"items":         txn.Items,
		"quantities":    txn.Quantities,
		"total_cost":    txn.TotalCost.StringFixed(2),
		"id":            txn.ID.String(),
		"created_at":    txn.CreatedAt.UTC().Format(time.RFC3339Nano),
	}))
	if err := s.txns.save(recs); err != nil {
		return fmt.Errorf("%w: write transactions: %w", pos.ErrStorage, err)
	}
	return nil
}

func (s *Store) ListTransactions(_ context.Context) ([]pos.Transaction, error) {
	recs, err := s.txns.rows()
	if err != nil {
		return nil, fmt.Errorf("%w: read transactions: %w", pos.ErrStorage, err)
	}
	out := make([]pos.Transaction, 0, len(recs))
	for i, rec := range recs {
		total, err := decimal.NewFromString(rec.get("total_cost"))
		if err != nil {
			return nil, fmt.Errorf("%w: transactions row %d: bad total_cost %q", pos.ErrStorage, i+2, rec.get("total_cost"))
		}
		txn := pos.Transaction{
			CustomerName: rec.get("customer_name"),
			PlotNumber:   rec.get("plot_number"),
			Items:        rec.get("items"),
			Quantities:   rec.get("quantities"),
			TotalCost:    total,
		}
		// id and created_at are absent in tables written before they existed.
		if v := rec.get("id"); v != "" {
			if id, err := uuid.Parse(v); err == nil {
				txn.ID = id
			}
		}
		if v := rec.get("created_at"); v != "" {
			if ts, err := time.Parse(time.RFC3339Nano, v); err == nil {
				txn.CreatedAt = ts
			}
		}
		out = append(out, txn)
	}
	return out, nil
}

func parseItems(recs []record) ([]pos.Item, error) {
	items := make([]pos.Item, 0, len(recs))
	for i, rec := range recs {
		id, err := strconv.Atoi(normalizeInt(rec.get("id")))
		if err != nil {
			return nil, fmt.Errorf("%w: items row %d: bad id %q", pos.ErrStorage, i+2, rec.get("id"))
		}
		cost, err := decimal.NewFromString(rec.get("cost"))
		if err != nil {
			return nil, fmt.Errorf("%w: items row %d: bad cost %q", pos.ErrStorage, i+2, rec.get("cost"))
		}
		items = append(items, pos.Item{ID: id, Name: rec.get("name"), Cost: cost})
	}
	return items, nil
}

// normalizeInt turns spreadsheet renderings like "3.0" into "3".
func normalizeInt(s string) string {
	s = strings.TrimSpace(s)
	if before, after, ok := strings.Cut(s, "."); ok && strings.Trim(after, "0") == "" {
		return before
	}
	return s
}
