package domain

// Cart is the set of items owned by one authenticated user session.
// Product identifiers are unique within Items.
type Cart struct {
	UserID string     `json:"userId,omitempty"`
	Items  []CartItem `json:"items"`
}

// CartItem is one cart line. Product may be nil when the catalog entry
// behind the reference was deleted; such entries are dropped on load.
type CartItem struct {
	Product  *Product `json:"productId"`
	Quantity int      `json:"quantity"`
}

// ProductID returns the referenced product id, or "" for an unresolved ref.
func (it CartItem) ProductID() string {
	if it.Product == nil {
		return ""
	}
	return it.Product.ID
}

// Resolved reports whether the item still points at a catalog product.
func (it CartItem) Resolved() bool {
	return it.Product != nil && it.Product.ID != ""
}
