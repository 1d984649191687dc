package pos

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatLineItems(t *testing.T) {
	items := []Item{
		{ID: 1, Name: "Tea", Cost: decimal.NewFromInt(20)},
		{ID: 2, Name: "Samosa", Cost: decimal.RequireFromString("12.5")},
	}

	got := FormatLineItems(items, []int{2, 1})
	want := "Tea (₹20) x2, Samosa (₹12.5) x1"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFormatLineItems_Empty(t *testing.T) {
	if got := FormatLineItems(nil, nil); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestJoinQuantities(t *testing.T) {
	if got := JoinQuantities([]int{3, 1, 10}); got != "3, 1, 10" {
		t.Errorf("got %q", got)
	}
}

func TestErrorKindsWrap(t *testing.T) {
	err := fmt.Errorf("%w: name is required", ErrValidation)
	if !errors.Is(err, ErrValidation) {
		t.Fatal("expected ErrValidation")
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatal("did not expect ErrNotFound")
	}
}
