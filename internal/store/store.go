// Package store defines the persistence contracts for the catalog and the
// transaction history. Backends live in subpackages.
package store

import (
	"context"

	"github.com/kiwari-pos/qrcounter/internal/pos"
	"github.com/shopspring/decimal"
)

// ItemStore is the catalog table. Every call reads from storage.
type ItemStore interface {
	ListItems(ctx context.Context) ([]pos.Item, error)
	// AddItem assigns id = current row count + 1 and appends the row.
	AddItem(ctx context.Context, name string, cost decimal.Decimal) (pos.Item, error)
	// RemoveItem deletes every row with the id and reports how many went.
	RemoveItem(ctx context.Context, id int) (int, error)
}

// TransactionStore is the append-only order history.
type TransactionStore interface {
	AppendTransaction(ctx context.Context, txn pos.Transaction) error
	ListTransactions(ctx context.Context) ([]pos.Transaction, error)
}

// Store bundles both tables behind one backend.
type Store interface {
	ItemStore
	TransactionStore
	Close() error
}
