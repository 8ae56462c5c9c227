package events

// StockChanged is published when a product's stock is decremented.
type StockChanged struct {
	ProductID string `json:"product_id"`
	Remaining int    `json:"remaining"`
}

// CartChanged is published after any cart mutation with the freshly derived
// totals.
type CartChanged struct {
	ItemCount int     `json:"item_count"`
	Total     float64 `json:"total"`
}

// WishlistChanged is published after any wishlist mutation.
type WishlistChanged struct {
	Count int `json:"count"`
}

// FiltersChanged is published when any filter, sort or view field changes,
// signalling that the visible product list needs recomputing.
type FiltersChanged struct{}

// OrderPlaced is published once per successful checkout.
type OrderPlaced struct {
	OrderID string  `json:"order_id"`
	Total   float64 `json:"total"`
}
