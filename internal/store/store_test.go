package store

import (
	"testing"

	"github.com/shopspring/decimal"

	"covercart/internal/domain"
)

func pricedItem(t *testing.T, id, price string, qty int) domain.CartItem {
	t.Helper()
	d, err := decimal.NewFromString(price)
	if err != nil {
		t.Fatalf("parse price %q: %v", price, err)
	}
	return domain.CartItem{
		Product:  &domain.Product{ID: id, Model: "cover-" + id, Price: &d},
		Quantity: qty,
	}
}

func TestLoadDropsUnresolvedEntries(t *testing.T) {
	s := New()
	s.Load(domain.Cart{Items: []domain.CartItem{
		pricedItem(t, "a", "10.00", 2),
		{Product: nil, Quantity: 1},
		pricedItem(t, "b", "7.50", 1),
	}})

	snap := s.Snapshot()
	if len(snap.Items) != 2 {
		t.Fatalf("expected 2 items after load, got %d", len(snap.Items))
	}
	if snap.Items[0].ProductID() != "a" || snap.Items[1].ProductID() != "b" {
		t.Fatalf("unexpected item order: %v", snap.Items)
	}
}

func TestLoadKeepsFirstDuplicate(t *testing.T) {
	s := New()
	s.Load(domain.Cart{Items: []domain.CartItem{
		pricedItem(t, "a", "10.00", 2),
		pricedItem(t, "a", "99.00", 7),
	}})

	snap := s.Snapshot()
	if len(snap.Items) != 1 {
		t.Fatalf("expected duplicate to be dropped, got %d items", len(snap.Items))
	}
	if snap.Items[0].Quantity != 2 {
		t.Fatalf("expected first occurrence to win, got quantity %d", snap.Items[0].Quantity)
	}
}

func TestLoadClampsQuantityToOne(t *testing.T) {
	s := New()
	s.Load(domain.Cart{Items: []domain.CartItem{
		pricedItem(t, "a", "10.00", 0),
	}})

	if got, _ := s.Quantity("a"); got != 1 {
		t.Fatalf("expected quantity clamped to 1, got %d", got)
	}
}

func TestApplyRemoval(t *testing.T) {
	s := New()
	s.Load(domain.Cart{Items: []domain.CartItem{
		pricedItem(t, "a", "10.00", 2),
		pricedItem(t, "b", "7.50", 1),
	}})

	s.ApplyRemoval("b")

	snap := s.Snapshot()
	if len(snap.Items) != 1 || snap.Items[0].ProductID() != "a" {
		t.Fatalf("expected only item a to remain, got %v", snap.Items)
	}
	if snap.Total.StringFixed(2) != "20.00" {
		t.Fatalf("expected total recomputed to 20.00, got %s", snap.Total.StringFixed(2))
	}
}

func TestApplyRemovalMissingIDIsNoop(t *testing.T) {
	s := New()
	s.Load(domain.Cart{Items: []domain.CartItem{pricedItem(t, "a", "10.00", 2)}})

	s.ApplyRemoval("missing")

	if snap := s.Snapshot(); len(snap.Items) != 1 {
		t.Fatalf("expected cart unchanged, got %d items", len(snap.Items))
	}
}

func TestApplyQuantity(t *testing.T) {
	s := New()
	s.Load(domain.Cart{Items: []domain.CartItem{pricedItem(t, "a", "10.00", 2)}})

	s.ApplyQuantity("a", 5)

	if got, _ := s.Quantity("a"); got != 5 {
		t.Fatalf("expected quantity 5, got %d", got)
	}
	if snap := s.Snapshot(); snap.Total.StringFixed(2) != "50.00" {
		t.Fatalf("expected total 50.00, got %s", snap.Total.StringFixed(2))
	}
}

func TestApplyQuantityNeverBelowOne(t *testing.T) {
	s := New()
	s.Load(domain.Cart{Items: []domain.CartItem{pricedItem(t, "a", "10.00", 2)}})

	for _, q := range []int{0, -3, -100} {
		s.ApplyQuantity("a", q)
		if got, _ := s.Quantity("a"); got < 1 {
			t.Fatalf("quantity dropped below 1 for input %d: got %d", q, got)
		}
	}
}

func TestApplyQuantityMissingIDIsNoop(t *testing.T) {
	s := New()
	s.Load(domain.Cart{Items: []domain.CartItem{pricedItem(t, "a", "10.00", 2)}})

	s.ApplyQuantity("missing", 9)

	if got, _ := s.Quantity("a"); got != 2 {
		t.Fatalf("expected quantity untouched, got %d", got)
	}
}

func TestObserverSeesDerivedTotal(t *testing.T) {
	s := New()
	var last Snapshot
	calls := 0
	s.Subscribe(func(snap Snapshot) {
		last = snap
		calls++
	})

	s.Load(domain.Cart{Items: []domain.CartItem{
		pricedItem(t, "a", "10.00", 2),
		pricedItem(t, "b", "7.50", 1),
	}})
	s.ApplyRemoval("b")

	if calls != 2 {
		t.Fatalf("expected 2 notifications, got %d", calls)
	}
	if last.Total.StringFixed(2) != "20.00" {
		t.Fatalf("expected observed total 20.00, got %s", last.Total.StringFixed(2))
	}
	if last.Count != 2 {
		t.Fatalf("expected observed count 2, got %d", last.Count)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := New()
	s.Load(domain.Cart{Items: []domain.CartItem{pricedItem(t, "a", "10.00", 2)}})

	snap := s.Snapshot()
	snap.Items[0].Quantity = 99

	if got, _ := s.Quantity("a"); got != 2 {
		t.Fatalf("snapshot mutation leaked into store: quantity %d", got)
	}
}
