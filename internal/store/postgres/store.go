// Package postgres keeps the catalog and history in PostgreSQL through pgx.
package postgres

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kiwari-pos/qrcounter/internal/pos"
	"github.com/kiwari-pos/qrcounter/internal/store"
	"github.com/shopspring/decimal"
)

//go:embed schema.sql
var schemaSQL string

// Store implements store.Store on a pgx pool.
type Store struct {
	pool *pgxpool.Pool
}

var _ store.Store = (*Store)(nil)

// Open connects to databaseURL and applies the schema.
func Open(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: connect: %w", pos.ErrStorage, err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: ping: %w", pos.ErrStorage, err)
	}
	if err := Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return &Store{pool: pool}, nil
}

// Migrate applies schema.sql statement by statement. All statements are idempotent.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range strings.Split(schemaSQL, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("%w: apply schema: %w", pos.ErrStorage, err)
		}
	}
	return nil
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// --- Items ---

func (s *Store) ListItems(ctx context.Context) ([]pos.Item, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, name, cost FROM items ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("%w: list items: %w", pos.ErrStorage, err)
	}
	defer rows.Close()

	var items []pos.Item
	for rows.Next() {
		var (
			it   pos.Item
			cost pgtype.Numeric
		)
		if err := rows.Scan(&it.ID, &it.Name, &cost); err != nil {
			return nil, fmt.Errorf("%w: scan item: %w", pos.ErrStorage, err)
		}
		it.Cost = numericToDecimal(cost)
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list items: %w", pos.ErrStorage, err)
	}
	return items, nil
}

// AddItem counts and inserts under a table lock that conflicts with itself,
// so two concurrent adds cannot observe the same count.
func (s *Store) AddItem(ctx context.Context, name string, cost decimal.Decimal) (pos.Item, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return pos.Item{}, fmt.Errorf("%w: begin tx: %w", pos.ErrStorage, err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `LOCK TABLE items IN SHARE ROW EXCLUSIVE MODE`); err != nil {
		return pos.Item{}, fmt.Errorf("%w: lock items: %w", pos.ErrStorage, err)
	}
	var count int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM items`).Scan(&count); err != nil {
		return pos.Item{}, fmt.Errorf("%w: count items: %w", pos.ErrStorage, err)
	}

	item := pos.Item{ID: count + 1, Name: name, Cost: cost}
	if _, err := tx.Exec(ctx,
		`INSERT INTO items (id, name, cost) VALUES ($1, $2, $3)`,
		item.ID, item.Name, decimalToNumeric(item.Cost),
	); err != nil {
		return pos.Item{}, fmt.Errorf("%w: insert item: %w", pos.ErrStorage, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return pos.Item{}, fmt.Errorf("%w: commit tx: %w", pos.ErrStorage, err)
	}
	return item, nil
}

func (s *Store) RemoveItem(ctx context.Context, id int) (int, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("%w: delete item: %w", pos.ErrStorage, err)
	}
	return int(tag.RowsAffected()), nil
}

// --- Transactions ---

func (s *Store) AppendTransaction(ctx context.Context, txn pos.Transaction) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO transactions (id, customer_name, plot_number, items, quantities, total_cost, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		txn.ID, txn.CustomerName, txn.PlotNumber, txn.Items, txn.Quantities,
		decimalToNumeric(txn.TotalCost), txn.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: insert transaction: %w", pos.ErrStorage, err)
	}
	return nil
}

func (s *Store) ListTransactions(ctx context.Context) ([]pos.Transaction, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, customer_name, plot_number, items, quantities, total_cost, created_at
		 FROM transactions ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("%w: list transactions: %w", pos.ErrStorage, err)
	}
	defer rows.Close()

	var out []pos.Transaction
	for rows.Next() {
		var (
			txn       pos.Transaction
			id        uuid.UUID
			total     pgtype.Numeric
			createdAt time.Time
		)
		if err := rows.Scan(&id, &txn.CustomerName, &txn.PlotNumber, &txn.Items, &txn.Quantities, &total, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: scan transaction: %w", pos.ErrStorage, err)
		}
		txn.ID = id
		txn.TotalCost = numericToDecimal(total)
		txn.CreatedAt = createdAt
		out = append(out, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list transactions: %w", pos.ErrStorage, err)
	}
	return out, nil
}

// --- Helpers ---

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}
	val, err := n.Value()
	if err != nil || val == nil {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(val.(string))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric
	_ = n.Scan(d.StringFixed(2))
	return n
}
