package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kiwari-pos/qrcounter/internal/pos"
	"github.com/shopspring/decimal"
)

func TestCatalog_Scenario(t *testing.T) {
	ctx := context.Background()
	svc := NewCatalogService(&memStore{}, nil)

	items, err := svc.ListItems(ctx)
	if err != nil || len(items) != 0 {
		t.Fatalf("empty catalog: items=%v err=%v", items, err)
	}

	if _, err := svc.AddItem(ctx, "Tea", "20"); err != nil {
		t.Fatalf("add tea: %v", err)
	}
	items, _ = svc.ListItems(ctx)
	if len(items) != 1 || items[0].ID != 1 || items[0].Name != "Tea" || !items[0].Cost.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("after tea: %+v", items)
	}

	if _, err := svc.AddItem(ctx, "Coffee", "30"); err != nil {
		t.Fatalf("add coffee: %v", err)
	}
	items, _ = svc.ListItems(ctx)
	if len(items) != 2 || items[0].ID != 1 || items[1].ID != 2 {
		t.Fatalf("after coffee: %+v", items)
	}

	if err := svc.RemoveItem(ctx, 1); err != nil {
		t.Fatalf("remove: %v", err)
	}
	items, _ = svc.ListItems(ctx)
	if len(items) != 1 || items[0].ID != 2 || items[0].Name != "Coffee" {
		t.Fatalf("after remove: %+v", items)
	}
}

func TestCatalog_AddItemIDIsCountPlusOne(t *testing.T) {
	ctx := context.Background()
	store := &memStore{items: []pos.Item{{ID: 7, Name: "A"}, {ID: 9, Name: "B"}}}
	svc := NewCatalogService(store, nil)

	it, err := svc.AddItem(ctx, "C", "5")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if it.ID != 3 {
		t.Errorf("id: got %d, want 3", it.ID)
	}
}

func TestCatalog_AddItemValidation(t *testing.T) {
	tests := []struct {
		name, itemName, cost string
		wantErr              error
	}{
		{"empty name", "", "20", ErrNameRequired},
		{"blank name", "   ", "20", ErrNameRequired},
		{"empty cost", "Tea", "", ErrCostRequired},
		{"non-numeric cost", "Tea", "twenty", ErrInvalidCost},
		{"negative cost", "Tea", "-1", ErrNegativeCost},
		{"sub-paisa cost", "Tea", "0.125", ErrCostScale},
		{"cost out of range", "Tea", "10000000000", ErrCostTooLarge},
		{"name too long", strings.Repeat("a", 256), "20", ErrNameTooLong},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := &memStore{}
			svc := NewCatalogService(store, nil)
			_, err := svc.AddItem(context.Background(), tc.itemName, tc.cost)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			if !errors.Is(err, pos.ErrValidation) {
				t.Errorf("expected ErrValidation kind")
			}
			if len(store.items) != 0 {
				t.Error("item stored despite validation failure")
			}
		})
	}
}

func TestCatalog_AddItemTrimsAndAcceptsDecimals(t *testing.T) {
	svc := NewCatalogService(&memStore{}, nil)
	it, err := svc.AddItem(context.Background(), "  Masala Chai ", " 12.50 ")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if it.Name != "Masala Chai" || !it.Cost.Equal(decimal.RequireFromString("12.5")) {
		t.Errorf("got %+v", it)
	}
}

// Every backend stores costs as NUMERIC(12,2), so accepted costs must round-trip unchanged.
func TestCatalog_AddItemCostBounds(t *testing.T) {
	for _, cost := range []string{"0", "1.5", "1.50", "1.000", "9999999999.99"} {
		t.Run(cost, func(t *testing.T) {
			svc := NewCatalogService(&memStore{}, nil)
			it, err := svc.AddItem(context.Background(), "Tea", cost)
			if err != nil {
				t.Fatalf("add: %v", err)
			}
			if !it.Cost.Equal(it.Cost.Round(2)) {
				t.Errorf("cost %s would be rounded by storage", it.Cost)
			}
		})
	}

	name := strings.Repeat("é", 255)
	if _, err := NewCatalogService(&memStore{}, nil).AddItem(context.Background(), name, "1"); err != nil {
		t.Errorf("255-character name rejected: %v", err)
	}
}

func TestCatalog_RemoveMissingItem(t *testing.T) {
	store := &memStore{items: []pos.Item{{ID: 1, Name: "Tea", Cost: decimal.NewFromInt(20)}}}
	svc := NewCatalogService(store, nil)

	err := svc.RemoveItem(context.Background(), 5)
	if !errors.Is(err, pos.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(store.items) != 1 {
		t.Error("table changed on missing id")
	}
}

func TestCatalog_RemoveInvalidID(t *testing.T) {
	svc := NewCatalogService(&memStore{}, nil)
	if err := svc.RemoveItem(context.Background(), 0); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}

func TestCatalog_GetItem(t *testing.T) {
	store := &memStore{items: []pos.Item{{ID: 2, Name: "Coffee", Cost: decimal.NewFromInt(30)}}}
	svc := NewCatalogService(store, nil)

	it, err := svc.GetItem(context.Background(), 2)
	if err != nil || it.Name != "Coffee" {
		t.Fatalf("get: %+v %v", it, err)
	}
	if _, err := svc.GetItem(context.Background(), 3); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}
