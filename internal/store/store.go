// Package store holds the authoritative local view of the cart. It is the
// single source of truth for the UI layer; mutations land here only after
// the upstream server confirmed them.
package store

import (
	"sync"

	"github.com/shopspring/decimal"

	"covercart/internal/domain"
	"covercart/internal/pricing"
)

// Snapshot is an immutable view of the cart handed to observers and reads.
type Snapshot struct {
	Items []domain.CartItem
	Total decimal.Decimal
	Count int
}

// Observer receives a snapshot after every state change.
type Observer func(Snapshot)

// CartStore keeps cart items keyed by product id while preserving order.
// Safe for concurrent use.
type CartStore struct {
	mu        sync.Mutex
	items     []domain.CartItem
	observers []Observer
}

func New() *CartStore {
	return &CartStore{}
}

// Subscribe registers an observer. Observers run synchronously after each
// mutation, outside the store lock.
func (s *CartStore) Subscribe(fn Observer) {
	s.mu.Lock()
	s.observers = append(s.observers, fn)
	s.mu.Unlock()
}

// Load replaces the whole state from an upstream cart document. Entries
// whose product reference did not resolve are dropped rather than failing
// the load; the backend may return partially populated documents. Duplicate
// product ids keep the first occurrence.
func (s *CartStore) Load(cart domain.Cart) {
	items := make([]domain.CartItem, 0, len(cart.Items))
	seen := make(map[string]bool, len(cart.Items))
	for _, it := range cart.Items {
		if !it.Resolved() || seen[it.ProductID()] {
			continue
		}
		if it.Quantity < 1 {
			it.Quantity = 1
		}
		seen[it.ProductID()] = true
		items = append(items, it)
	}

	s.mu.Lock()
	s.items = items
	snap := s.snapshotLocked()
	obs := s.observers
	s.mu.Unlock()
	notify(obs, snap)
}

// ApplyRemoval removes the entry for productID. A missing id is a no-op,
// not an error.
func (s *CartStore) ApplyRemoval(productID string) {
	s.mu.Lock()
	kept := s.items[:0]
	for _, it := range s.items {
		if it.ProductID() != productID {
			kept = append(kept, it)
		}
	}
	s.items = kept
	snap := s.snapshotLocked()
	obs := s.observers
	s.mu.Unlock()
	notify(obs, snap)
}

// ApplyQuantity replaces the quantity of the entry for productID. Values
// below 1 are clamped; a missing id is a no-op.
func (s *CartStore) ApplyQuantity(productID string, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ProductID() == productID {
			s.items[i].Quantity = quantity
			break
		}
	}
	snap := s.snapshotLocked()
	obs := s.observers
	s.mu.Unlock()
	notify(obs, snap)
}

// Quantity returns the stored quantity for productID and whether it exists.
func (s *CartStore) Quantity(productID string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if it.ProductID() == productID {
			return it.Quantity, true
		}
	}
	return 0, false
}

// Snapshot returns the current items with the derived total and unit count.
func (s *CartStore) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *CartStore) snapshotLocked() Snapshot {
	items := make([]domain.CartItem, len(s.items))
	copy(items, s.items)
	return Snapshot{
		Items: items,
		Total: pricing.Total(items),
		Count: pricing.Count(items),
	}
}

func notify(observers []Observer, snap Snapshot) {
	for _, fn := range observers {
		fn(snap)
	}
}
