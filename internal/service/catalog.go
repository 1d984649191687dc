package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/kiwari-pos/qrcounter/internal/enum"
	"github.com/kiwari-pos/qrcounter/internal/metrics"
	"github.com/kiwari-pos/qrcounter/internal/pos"
	"github.com/kiwari-pos/qrcounter/internal/store"
	"github.com/shopspring/decimal"
)

// Errors returned by the catalog service.
var (
	ErrNameRequired = fmt.Errorf("%w: name is required", pos.ErrValidation)
	ErrCostRequired = fmt.Errorf("%w: cost is required", pos.ErrValidation)
	ErrInvalidCost  = fmt.Errorf("%w: cost must be a number", pos.ErrValidation)
	ErrNegativeCost = fmt.Errorf("%w: cost must be >= 0", pos.ErrValidation)
	ErrNameTooLong  = fmt.Errorf("%w: name must be at most %d characters", pos.ErrValidation, pos.MaxNameLength)
	ErrCostScale    = fmt.Errorf("%w: cost must have at most %d decimal places", pos.ErrValidation, pos.CostScale)
	ErrCostTooLarge = fmt.Errorf("%w: cost must be below %s", pos.ErrValidation, pos.MaxAmount)
	ErrInvalidID    = fmt.Errorf("%w: item id must be a positive integer", pos.ErrValidation)
	ErrItemNotFound = fmt.Errorf("%w: item", pos.ErrNotFound)
)

// CatalogService manages catalog items. Storage is the only source of truth:
// nothing is cached between calls.
type CatalogService struct {
	store   store.ItemStore
	metrics *metrics.Metrics
}

// NewCatalogService creates a new CatalogService. m may be nil.
func NewCatalogService(s store.ItemStore, m *metrics.Metrics) *CatalogService {
	return &CatalogService{store: s, metrics: m}
}

// ListItems reloads the catalog from storage.
func (s *CatalogService) ListItems(ctx context.Context) ([]pos.Item, error) {
	return s.store.ListItems(ctx)
}

// AddItem validates and appends a new item. Its id is the row count before the add, plus one.
func (s *CatalogService) AddItem(ctx context.Context, name, cost string) (pos.Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return pos.Item{}, ErrNameRequired
	}
	if utf8.RuneCountInString(name) > pos.MaxNameLength {
		return pos.Item{}, ErrNameTooLong
	}
	price, err := parseCost(cost)
	if err != nil {
		return pos.Item{}, err
	}

	item, err := s.store.AddItem(ctx, name, price)
	if err != nil {
		return pos.Item{}, fmt.Errorf("add item: %w", err)
	}
	s.metrics.CatalogChanged(enum.CatalogOpAdd)
	return item, nil
}

// RemoveItem deletes every row with id. A missing id is ErrItemNotFound
// and leaves the table untouched.
func (s *CatalogService) RemoveItem(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrInvalidID
	}
	n, err := s.store.RemoveItem(ctx, id)
	if err != nil {
		return fmt.Errorf("remove item: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w %d", ErrItemNotFound, id)
	}
	s.metrics.CatalogChanged(enum.CatalogOpRemove)
	return nil
}

// GetItem returns the first row with id.
func (s *CatalogService) GetItem(ctx context.Context, id int) (pos.Item, error) {
	items, err := s.store.ListItems(ctx)
	if err != nil {
		return pos.Item{}, err
	}
	if it, ok := findItem(items, id); ok {
		return it, nil
	}
	return pos.Item{}, fmt.Errorf("%w %d", ErrItemNotFound, id)
}

func findItem(items []pos.Item, id int) (pos.Item, bool) {
	for _, it := range items {
		if it.ID == id {
			return it, true
		}
	}
	return pos.Item{}, false
}

func parseCost(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrCostRequired
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidCost
	}
	if d.IsNegative() {
		return decimal.Zero, ErrNegativeCost
	}
	if !d.Equal(d.Round(pos.CostScale)) {
		return decimal.Zero, ErrCostScale
	}
	if d.GreaterThanOrEqual(pos.MaxAmount) {
		return decimal.Zero, ErrCostTooLarge
	}
	return d, nil
}
