package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	"covercart/internal/domain"
)

func pricePtr(t *testing.T, s string) *decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("parse price %q: %v", s, err)
	}
	return &d
}

func item(t *testing.T, id, price string, qty int) domain.CartItem {
	t.Helper()
	p := &domain.Product{ID: id, Model: "cover-" + id}
	if price != "" {
		p.Price = pricePtr(t, price)
	}
	return domain.CartItem{Product: p, Quantity: qty}
}

func TestTotalSumsPricedLines(t *testing.T) {
	items := []domain.CartItem{
		item(t, "a", "10.00", 2),
		item(t, "b", "7.50", 1),
	}
	got := Total(items)
	if got.StringFixed(2) != "27.50" {
		t.Fatalf("expected total 27.50, got %s", got.StringFixed(2))
	}
}

func TestTotalMissingPriceContributesZero(t *testing.T) {
	items := []domain.CartItem{
		item(t, "a", "10.00", 2),
		item(t, "b", "", 5),
	}
	got := Total(items)
	if got.StringFixed(2) != "20.00" {
		t.Fatalf("expected total 20.00, got %s", got.StringFixed(2))
	}
}

func TestTotalUnresolvedProductContributesZero(t *testing.T) {
	items := []domain.CartItem{
		{Product: nil, Quantity: 3},
		item(t, "a", "4.99", 1),
	}
	got := Total(items)
	if got.StringFixed(2) != "4.99" {
		t.Fatalf("expected total 4.99, got %s", got.StringFixed(2))
	}
}

func TestTotalRoundsToTwoDecimals(t *testing.T) {
	items := []domain.CartItem{
		item(t, "a", "0.333", 3),
	}
	got := Total(items)
	if got.StringFixed(2) != "1.00" {
		t.Fatalf("expected total 1.00, got %s", got.StringFixed(2))
	}
}

func TestTotalEmptyCart(t *testing.T) {
	if got := Total(nil); !got.IsZero() {
		t.Fatalf("expected zero total for empty cart, got %s", got)
	}
}

func TestTotalTreatsZeroQuantityAsOne(t *testing.T) {
	items := []domain.CartItem{
		item(t, "a", "5.00", 0),
	}
	got := Total(items)
	if got.StringFixed(2) != "5.00" {
		t.Fatalf("expected total 5.00, got %s", got.StringFixed(2))
	}
}

func TestCountSumsQuantities(t *testing.T) {
	items := []domain.CartItem{
		item(t, "a", "10.00", 2),
		item(t, "b", "7.50", 3),
	}
	if got := Count(items); got != 5 {
		t.Fatalf("expected count 5, got %d", got)
	}
}
