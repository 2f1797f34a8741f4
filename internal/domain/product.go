package domain

import "github.com/shopspring/decimal"

// Product is the slice of the catalog entry the cart consumes. Price and
// DiscountPrice may be absent; an item without a price contributes nothing
// to the cart total.
type Product struct {
	ID            string           `json:"_id"`
	Model         string           `json:"model"`
	Image         string           `json:"image,omitempty"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	DiscountPrice *decimal.Decimal `json:"discountPrice,omitempty"`
}
