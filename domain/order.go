package domain

import "time"

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
)

// Next returns the status an order moves to from s. Delivered is terminal.
func (s OrderStatus) Next() OrderStatus {
	switch s {
	case OrderPending:
		return OrderProcessing
	case OrderProcessing:
		return OrderShipped
	case OrderShipped:
		return OrderDelivered
	default:
		return s
	}
}

// Address is a shipping destination collected at checkout.
type Address struct {
	Street  string `json:"street" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
	ZipCode string `json:"zipCode" validate:"required,zipcode"`
	Country string `json:"country" validate:"required"`
}

// Order is the record produced by a completed checkout. Items are snapshots
// of the cart lines at the moment the order was placed.
type Order struct {
	ID              string      `json:"id"`
	Items           []CartItem  `json:"items"`
	Total           float64     `json:"total"`
	Status          OrderStatus `json:"status"`
	CreatedAt       time.Time   `json:"createdAt"`
	ShippingAddress Address     `json:"shippingAddress"`
}
