package domain

// CartItem is one line in the cart. It owns a snapshot of the product as it
// was when the line was created; the snapshot's Stock is the purchasable
// ceiling for quantity updates on this line.
type CartItem struct {
	// the id for this line, distinct from the product id
	ID string `json:"id"`

	Product Product `json:"product"`

	// positive, never above the product snapshot's stock
	Quantity int `json:"quantity"`

	SelectedSize  string `json:"selectedSize,omitempty"`
	SelectedColor string `json:"selectedColor,omitempty"`
}

// Subtotal is the line's contribution to the cart total.
func (c CartItem) Subtotal() float64 {
	return c.Product.Price * float64(c.Quantity)
}
