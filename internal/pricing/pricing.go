// Package pricing computes values derived from cart contents. Everything
// here is pure: safe to call on every state read.
package pricing

import (
	"github.com/shopspring/decimal"

	"covercart/internal/domain"
)

// Total returns the sum of unitPrice x quantity over items that carry a
// price, rounded to 2 decimal places. Items without a price contribute 0.
func Total(items []domain.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		if it.Product == nil || it.Product.Price == nil {
			continue
		}
		qty := it.Quantity
		if qty < 1 {
			qty = 1
		}
		line := it.Product.Price.Mul(decimal.NewFromInt(int64(qty)))
		total = total.Add(line)
	}
	return total.Round(2)
}

// Count returns the total number of units across all items, the value shown
// on the cart badge.
func Count(items []domain.CartItem) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}
