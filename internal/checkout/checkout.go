// Package checkout is the boundary to the external multi-step checkout
// form. The cart engine hands over a frozen total and never hears back.
package checkout

import (
	"io"
	"log"

	"github.com/shopspring/decimal"
)

// Handoff forwards a frozen cart total to the checkout collaborator. It
// keeps no state of its own; everything after the handoff belongs to the
// checkout flow.
type Handoff struct {
	logger *log.Logger
}

func NewHandoff(logger *log.Logger) *Handoff {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Handoff{logger: logger}
}

// Start opens the checkout flow for total. close is retained by the flow
// and invoked once the form is dismissed; the cart engine receives no other
// result from checkout.
func (h *Handoff) Start(total decimal.Decimal, _ func()) {
	h.logger.Printf("checkout started with total %s", total.StringFixed(2))
}
