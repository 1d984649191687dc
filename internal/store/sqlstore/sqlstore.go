// Package sqlstore keeps the catalog and history in SQLite or MySQL through
// database/sql. Both drivers use "?" placeholders, so only the DDL differs.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/kiwari-pos/qrcounter/internal/pos"
	"github.com/kiwari-pos/qrcounter/internal/store"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

// Dialect selects the driver and schema flavour.
type Dialect string

const (
	SQLite Dialect = "sqlite"
	MySQL  Dialect = "mysql"
)

var schemas = map[Dialect][]string{
	SQLite: {
		`CREATE TABLE IF NOT EXISTS items (
			seq  INTEGER PRIMARY KEY AUTOINCREMENT,
			id   INTEGER NOT NULL,
			name TEXT NOT NULL,
			cost TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS transactions (
			seq           INTEGER PRIMARY KEY AUTOINCREMENT,
			id            TEXT NOT NULL,
			customer_name TEXT NOT NULL,
			plot_number   TEXT NOT NULL,
			items         TEXT NOT NULL,
			quantities    TEXT NOT NULL,
			total_cost    TEXT NOT NULL,
			created_at    TEXT NOT NULL
		)`,
	},
	MySQL: {
		`CREATE TABLE IF NOT EXISTS items (
			seq  BIGINT AUTO_INCREMENT PRIMARY KEY,
			id   INT NOT NULL,
			name VARCHAR(255) NOT NULL,
			cost DECIMAL(12,2) NOT NULL,
			INDEX idx_items_id (id)
		)`,
		`CREATE TABLE IF NOT EXISTS transactions (
			seq           BIGINT AUTO_INCREMENT PRIMARY KEY,
			id            CHAR(36) NOT NULL,
			customer_name VARCHAR(255) NOT NULL,
			plot_number   VARCHAR(255) NOT NULL,
			items         TEXT NOT NULL,
			quantities    TEXT NOT NULL,
			total_cost    DECIMAL(12,2) NOT NULL,
			created_at    DATETIME(6) NOT NULL
		)`,
	},
}

// Store implements store.Store over database/sql.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

var _ store.Store = (*Store)(nil)

// Open connects and creates the tables if needed. For SQLite dsn is a file
// path; for MySQL it is a go-sql-driver DSN.
func Open(ctx context.Context, dialect Dialect, dsn string) (*Store, error) {
	ddl, ok := schemas[dialect]
	if !ok {
		return nil, fmt.Errorf("unknown sql dialect %q", dialect)
	}
	if dialect == SQLite {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("%w: create dirs: %w", pos.ErrStorage, err)
		}
	}
	if dialect == MySQL {
		dsn = withParseTime(dsn)
	}
	db, err := sql.Open(string(dialect), dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", pos.ErrStorage, dialect, err)
	}
	if dialect == SQLite {
		// One writer at a time; SQLite would otherwise return SQLITE_BUSY under load.
		db.SetMaxOpenConns(1)
	}
	for _, stmt := range ddl {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("%w: create schema: %w", pos.ErrStorage, err)
		}
	}
	return &Store{db: db, dialect: dialect}, nil
}

func withParseTime(dsn string) string {
	if strings.Contains(dsn, "parseTime=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&parseTime=true"
	}
	return dsn + "?parseTime=true"
}

func (s *Store) Close() error { return s.db.Close() }

// --- Items ---

func (s *Store) ListItems(ctx context.Context) ([]pos.Item, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, cost FROM items ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("%w: list items: %w", pos.ErrStorage, err)
	}
	defer rows.Close()

	var items []pos.Item
	for rows.Next() {
		var (
			it   pos.Item
			cost string
		)
		if err := rows.Scan(&it.ID, &it.Name, &cost); err != nil {
			return nil, fmt.Errorf("%w: scan item: %w", pos.ErrStorage, err)
		}
		if it.Cost, err = decimal.NewFromString(cost); err != nil {
			return nil, fmt.Errorf("%w: item %d: bad cost %q", pos.ErrStorage, it.ID, cost)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list items: %w", pos.ErrStorage, err)
	}
	return items, nil
}

func (s *Store) AddItem(ctx context.Context, name string, cost decimal.Decimal) (pos.Item, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return pos.Item{}, fmt.Errorf("%w: begin tx: %w", pos.ErrStorage, err)
	}
	defer tx.Rollback() //nolint:errcheck

	countQuery := `SELECT COUNT(*) FROM items`
	if s.dialect == MySQL {
		// Gap locks over the scan keep a concurrent add from reading the same count.
		countQuery += ` FOR UPDATE`
	}
	var count int
	if err := tx.QueryRowContext(ctx, countQuery).Scan(&count); err != nil {
		return pos.Item{}, fmt.Errorf("%w: count items: %w", pos.ErrStorage, err)
	}

	item := pos.Item{ID: count + 1, Name: name, Cost: cost}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO items (id, name, cost) VALUES (?, ?, ?)`,
		item.ID, item.Name, item.Cost.String(),
	); err != nil {
		return pos.Item{}, fmt.Errorf("%w: insert item: %w", pos.ErrStorage, err)
	}
	if err := tx.Commit(); err != nil {
		return pos.Item{}, fmt.Errorf("%w: commit tx: %w", pos.ErrStorage, err)
	}
	return item, nil
}

func (s *Store) RemoveItem(ctx context.Context, id int) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("%w: delete item: %w", pos.ErrStorage, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: delete item: %w", pos.ErrStorage, err)
	}
	return int(n), nil
}

// --- Transactions ---

func (s *Store) AppendTransaction(ctx context.Context, txn pos.Transaction) error {
	var createdAt any = txn.CreatedAt.UTC()
	if s.dialect == SQLite {
		createdAt = txn.CreatedAt.UTC().Format(time.RFC3339Nano)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO transactions (id, customer_name, plot_number, items, quantities, total_cost, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		txn.ID.String(), txn.CustomerName, txn.PlotNumber, txn.Items, txn.Quantities,
		txn.TotalCost.StringFixed(2), createdAt,
	)
	if err != nil {
		return fmt.Errorf("%w: insert transaction: %w", pos.ErrStorage, err)
	}
	return nil
}

func (s *Store) ListTransactions(ctx context.Context) ([]pos.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
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
			id, total string
			createdAt any
		)
		if err := rows.Scan(&id, &txn.CustomerName, &txn.PlotNumber, &txn.Items, &txn.Quantities, &total, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: scan transaction: %w", pos.ErrStorage, err)
		}
		txn.ID, _ = uuid.Parse(id)
		if txn.TotalCost, err = decimal.NewFromString(total); err != nil {
			return nil, fmt.Errorf("%w: transaction %s: bad total %q", pos.ErrStorage, id, total)
		}
		txn.CreatedAt = scanTime(createdAt)
		out = append(out, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list transactions: %w", pos.ErrStorage, err)
	}
	return out, nil
}

func scanTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		ts, _ := time.Parse(time.RFC3339Nano, t)
		return ts
	case []byte:
		ts, _ := time.Parse(time.RFC3339Nano, string(t))
		return ts
	}
	return time.Time{}
}
