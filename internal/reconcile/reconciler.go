// Package reconcile coordinates UI intents with network truth. Mutations are
// pessimistic: the store changes only after the upstream server confirmed
// the operation, so a failed call never leaves phantom state behind.
package reconcile

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"

	"github.com/shopspring/decimal"

	"covercart/internal/domain"
	"covercart/internal/store"
)

// cartAPI is the slice of the upstream client the reconciler needs.
type cartAPI interface {
	FetchCart(ctx context.Context, userID string) (domain.Cart, error)
	RemoveItem(ctx context.Context, userID, productID string) error
	SetQuantity(ctx context.Context, userID, productID string, quantity int) error
}

// Notifier is the toast/alert sink for user-visible notices.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// CheckoutStarter receives the frozen total when the user proceeds to buy.
// The handoff is fire-and-forget: no result flows back.
type CheckoutStarter interface {
	Start(total decimal.Decimal, close func())
}

// intent tracks the newest issued mutation for one product. Responses whose
// sequence number no longer matches are stale and must not touch the store.
type intent struct {
	seq      uint64
	quantity int
}

// Reconciler owns the mutation flows for one user's cart view. It is bound
// to a lifecycle context; once that context is done, late-arriving network
// results are dropped instead of being applied to a stale view.
type Reconciler struct {
	lifecycle context.Context
	userID    string
	api       cartAPI
	store     *store.CartStore
	notifier  Notifier
	checkout  CheckoutStarter
	logger    *log.Logger

	mu      sync.Mutex
	nextSeq uint64
	pending map[string]intent
}

// New builds a Reconciler. notifier and checkout may be nil; logger defaults
// to discard.
func New(lifecycle context.Context, userID string, api cartAPI, st *store.CartStore, notifier Notifier, checkout CheckoutStarter, logger *log.Logger) *Reconciler {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if lifecycle == nil {
		lifecycle = context.Background()
	}
	return &Reconciler{
		lifecycle: lifecycle,
		userID:    userID,
		api:       api,
		store:     st,
		notifier:  notifier,
		checkout:  checkout,
		logger:    logger,
	}
}

// Refresh fetches the cart from upstream and replaces the local view.
// Unresolvable entries are dropped by the store during load.
func (r *Reconciler) Refresh(ctx context.Context) error {
	cart, err := r.api.FetchCart(ctx, r.userID)
	if err != nil {
		r.logger.Printf("refresh cart: %v", err)
		r.notifyError("Failed to load cart.")
		return err
	}
	if r.stale() {
		return nil
	}
	r.store.Load(cart)
	return nil
}

// Remove issues an item removal. The store is untouched until the server
// confirms; on failure it stays exactly as it was.
func (r *Reconciler) Remove(ctx context.Context, productID string) error {
	if productID == "" {
		return nil
	}
	seq := r.issue(productID, 0)

	if err := r.api.RemoveItem(ctx, r.userID, productID); err != nil {
		r.logger.Printf("remove item %s: %v", productID, err)
		r.retire(productID, seq)
		r.notifyError("Failed to remove item.")
		return err
	}

	if r.stale() {
		return nil
	}
	// The server deleted the line. That outcome stands even when a later
	// intent for the same product raced this one: any such intent targets a
	// line that no longer exists upstream.
	r.drop(productID)
	r.store.ApplyRemoval(productID)
	r.notifySuccess("Item removed from cart!")
	return nil
}

// ChangeQuantity adjusts a line by delta, clamped so the result never drops
// below 1. A change that lands on the current target quantity is skipped
// without calling the server. The displayed quantity changes only after the
// server acknowledges; when two changes for the same product race, the one
// issued last wins regardless of response order.
func (r *Reconciler) ChangeQuantity(ctx context.Context, productID string, delta int) error {
	if productID == "" {
		return nil
	}

	r.mu.Lock()
	current, ok := r.latestIntended(productID)
	if !ok {
		r.mu.Unlock()
		return nil
	}
	next := current + delta
	if err := validateQuantity(next); err != nil {
		// Below-minimum targets clamp to the floor instead of surfacing.
		next = minQuantity
	}
	if next == current {
		r.mu.Unlock()
		return nil
	}
	r.nextSeq++
	seq := r.nextSeq
	r.pending[productID] = intent{seq: seq, quantity: next}
	r.mu.Unlock()

	if err := r.api.SetQuantity(ctx, r.userID, productID, next); err != nil {
		r.logger.Printf("set quantity %s -> %d: %v", productID, next, err)
		if errors.Is(err, domain.ErrNotFound) {
			// The line vanished upstream, e.g. a racing removal already
			// confirmed; reconcile the local view to that truth.
			if !r.stale() {
				r.drop(productID)
				r.store.ApplyRemoval(productID)
			}
			return err
		}
		r.retire(productID, seq)
		r.notifyError("Failed to update quantity.")
		return err
	}

	if r.stale() || !r.retire(productID, seq) {
		return nil
	}
	r.store.ApplyQuantity(productID, next)
	return nil
}

// Checkout freezes the current derived total and hands it to the checkout
// collaborator. The reconciler keeps no checkout state.
func (r *Reconciler) Checkout(onClose func()) decimal.Decimal {
	total := r.store.Snapshot().Total
	if r.checkout != nil {
		r.checkout.Start(total, onClose)
	}
	return total
}

// minQuantity is the floor a line quantity can never drop below through
// the adjustment path; removal is a separate operation.
const minQuantity = 1

// validateQuantity guards the contract that the server never sees a target
// quantity below the minimum.
func validateQuantity(q int) error {
	if q < minQuantity {
		return domain.ErrQuantityBelowMinimum
	}
	return nil
}

// issue registers a new intent for productID and returns its sequence.
func (r *Reconciler) issue(productID string, quantity int) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextSeq++
	r.ensurePending()
	r.pending[productID] = intent{seq: r.nextSeq, quantity: quantity}
	return r.nextSeq
}

// retire clears the intent if seq is still the newest for productID and
// reports whether it was. A superseded sequence leaves the newer intent in
// place and returns false.
func (r *Reconciler) retire(productID string, seq uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.pending[productID]
	if !ok || cur.seq != seq {
		return false
	}
	delete(r.pending, productID)
	return true
}

// drop clears whatever intent is pending for productID, regardless of
// sequence. Used when the line itself is gone upstream.
func (r *Reconciler) drop(productID string) {
	r.mu.Lock()
	delete(r.pending, productID)
	r.mu.Unlock()
}

// latestIntended returns the quantity the newest issued intent is driving
// toward, falling back to the stored quantity when nothing is in flight.
// Callers hold r.mu.
func (r *Reconciler) latestIntended(productID string) (int, bool) {
	r.ensurePending()
	if in, ok := r.pending[productID]; ok && in.quantity > 0 {
		return in.quantity, true
	}
	return r.store.Quantity(productID)
}

func (r *Reconciler) ensurePending() {
	if r.pending == nil {
		r.pending = make(map[string]intent)
	}
}

func (r *Reconciler) stale() bool {
	return r.lifecycle.Err() != nil
}

func (r *Reconciler) notifySuccess(msg string) {
	if r.notifier != nil {
		r.notifier.Success(msg)
	}
}

func (r *Reconciler) notifyError(msg string) {
	if r.notifier != nil {
		r.notifier.Error(msg)
	}
}
