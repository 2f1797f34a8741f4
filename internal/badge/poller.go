// Package badge keeps the cart badge count fresh by refetching the cart at
// a fixed interval. The poller is tied to the session lifetime: cancelling
// its context stops it, so no count is ever published to a dead view.
package badge

import (
	"context"
	"io"
	"log"
	"time"

	"covercart/internal/domain"
	"covercart/internal/pricing"
)

type cartFetcher interface {
	FetchCart(ctx context.Context, userID string) (domain.Cart, error)
}

// Poller periodically publishes the total unit count of a user's cart.
type Poller struct {
	api      cartFetcher
	userID   string
	interval time.Duration
	publish  func(count int)
	logger   *log.Logger
}

// New builds a Poller. publish is called with each fresh count, on the
// poller's goroutine.
func New(api cartFetcher, userID string, interval time.Duration, publish func(int), logger *log.Logger) *Poller {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &Poller{
		api:      api,
		userID:   userID,
		interval: interval,
		publish:  publish,
		logger:   logger,
	}
}

// Run polls until ctx is done: once immediately, then every interval. A
// failed fetch keeps the last published count and is only logged.
func (p *Poller) Run(ctx context.Context) {
	p.poll(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	cart, err := p.api.FetchCart(ctx, p.userID)
	if err != nil {
		p.logger.Printf("cart count poll: %v", err)
		return
	}
	if ctx.Err() != nil {
		return
	}
	p.publish(pricing.Count(cart.Items))
}
