package sqlstore

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kiwari-pos/qrcounter/internal/pos"
	"github.com/shopspring/decimal"
)

func openSQLite(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), SQLite, filepath.Join(t.TempDir(), "pos.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLite_CatalogScenario(t *testing.T) {
	ctx := context.Background()
	s := openSQLite(t)

	if _, err := s.AddItem(ctx, "Tea", decimal.NewFromInt(20)); err != nil {
		t.Fatalf("add tea: %v", err)
	}
	coffee, err := s.AddItem(ctx, "Coffee", decimal.NewFromInt(30))
	if err != nil {
		t.Fatalf("add coffee: %v", err)
	}
	if coffee.ID != 2 {
		t.Errorf("coffee id: got %d, want 2", coffee.ID)
	}

	n, err := s.RemoveItem(ctx, 1)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if n != 1 {
		t.Errorf("removed: got %d, want 1", n)
	}

	items, err := s.ListItems(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 || items[0].ID != 2 || items[0].Name != "Coffee" || !items[0].Cost.Equal(decimal.NewFromInt(30)) {
		t.Errorf("remaining: %+v", items)
	}

	n, _ = s.RemoveItem(ctx, 99)
	if n != 0 {
		t.Errorf("removing missing id: got %d rows", n)
	}
}

func TestSQLite_ConcurrentAdds(t *testing.T) {
	ctx := context.Background()
	s := openSQLite(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.AddItem(ctx, "Tea", decimal.NewFromInt(20)); err != nil {
				t.Errorf("add: %v", err)
			}
		}()
	}
	wg.Wait()

	items, _ := s.ListItems(ctx)
	if len(items) != 8 {
		t.Fatalf("expected 8 rows, got %d", len(items))
	}
	seen := map[int]bool{}
	for _, it := range items {
		if seen[it.ID] {
			t.Errorf("duplicate id %d", it.ID)
		}
		seen[it.ID] = true
	}
}

func TestSQLite_Transactions(t *testing.T) {
	ctx := context.Background()
	s := openSQLite(t)

	want := pos.Transaction{
		ID:           uuid.New(),
		CustomerName: "Alice",
		PlotNumber:   "Plot-7",
		Items:        "Coffee (₹30) x3",
		Quantities:   "3",
		TotalCost:    decimal.NewFromInt(90),
		CreatedAt:    time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC),
	}
	if err := s.AppendTransaction(ctx, want); err != nil {
		t.Fatalf("append: %v", err)
	}

	got, err := s.ListTransactions(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(got))
	}
	if got[0].ID != want.ID || got[0].Items != want.Items || !got[0].TotalCost.Equal(want.TotalCost) {
		t.Errorf("got %+v", got[0])
	}
	if !got[0].CreatedAt.Equal(want.CreatedAt) {
		t.Errorf("created_at: got %v, want %v", got[0].CreatedAt, want.CreatedAt)
	}
}

func TestOpen_UnknownDialect(t *testing.T) {
	if _, err := Open(context.Background(), Dialect("oracle"), "x"); err == nil {
		t.Fatal("expected error")
	}
}

func TestWithParseTime(t *testing.T) {
	cases := map[string]string{
		"user:pw@tcp(db:3306)/pos":                "user:pw@tcp(db:3306)/pos?parseTime=true",
		"user:pw@tcp(db:3306)/pos?tls=true":       "user:pw@tcp(db:3306)/pos?tls=true&parseTime=true",
		"user:pw@tcp(db:3306)/pos?parseTime=true": "user:pw@tcp(db:3306)/pos?parseTime=true",
	}
	for in, want := range cases {
		if got := withParseTime(in); got != want {
			t.Errorf("withParseTime(%q) = %q, want %q", in, got, want)
		}
	}
}
