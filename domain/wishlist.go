package domain

import "time"

// WishlistItem marks a product as saved for later. It references the product
// by id only; the wishlist never owns product data. At most one entry exists
// per product id.
type WishlistItem struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	AddedAt   time.Time `json:"addedAt"`
}
