package main

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/kiwari-pos/qrcounter/internal/pos"
	"github.com/kiwari-pos/qrcounter/internal/service"
	"github.com/kiwari-pos/qrcounter/internal/store/flatfile"
)

func TestParseItems(t *testing.T) {
	got, err := parseItems(" Tea:20, Masala Chai : 12.5 ,,")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(got) != 2 || got[0] != (itemSpec{"Tea", "20"}) || got[1] != (itemSpec{"Masala Chai", "12.5"}) {
		t.Errorf("got %+v", got)
	}
}

func TestParseItems_Invalid(t *testing.T) {
	for _, in := range []string{"", "Tea", ":20", "Tea:", " , "} {
		if _, err := parseItems(in); err == nil {
			t.Errorf("%q: expected error", in)
		}
	}
}

func TestSeedItems_SkipsExisting(t *testing.T) {
	dir := t.TempDir()
	st, err := flatfile.Open(filepath.Join(dir, "items.csv"), filepath.Join(dir, "txns.csv"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	c := service.NewCatalogService(st, nil)
	ctx := context.Background()

	n, err := seedItems(ctx, c, []itemSpec{{"Tea", "20"}, {"Coffee", "30"}})
	if err != nil || n != 2 {
		t.Fatalf("first seed: n=%d err=%v", n, err)
	}
	n, err = seedItems(ctx, c, []itemSpec{{"tea", "25"}, {"Samosa", "15"}})
	if err != nil || n != 1 {
		t.Fatalf("second seed: n=%d err=%v", n, err)
	}

	items, _ := c.ListItems(ctx)
	if len(items) != 3 || items[2].Name != "Samosa" || items[2].ID != 3 {
		t.Errorf("items: %+v", items)
	}
}

func TestSeedItems_BadCost(t *testing.T) {
	dir := t.TempDir()
	st, _ := flatfile.Open(filepath.Join(dir, "items.csv"), filepath.Join(dir, "txns.csv"))
	c := service.NewCatalogService(st, nil)

	_, err := seedItems(context.Background(), c, []itemSpec{{"Tea", "free"}})
	if !errors.Is(err, pos.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
