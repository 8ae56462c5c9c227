// Package checkout turns a cart into an order. The flow is simulated: after
// the cart and shipping address pass validation the order always succeeds,
// and no payment or fulfilment backend is involved.
package checkout

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/marketbay/storefront/domain"
)

// Service assembles orders from cart lines and keeps the orders placed during
// the session. Orders are never persisted.
type Service struct {
	logger     hclog.Logger
	validation *domain.Validation

	mutex  sync.Mutex
	orders []*domain.Order
}

func NewService(logger hclog.Logger) *Service {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Service{
		logger:     logger,
		validation: domain.NewValidation(),
	}
}

// PlaceOrder creates a pending order from the given cart lines shipped to
// address. It fails with ErrEmptyCart when there are no lines and with
// ValidationErrors when the address is incomplete or malformed.
func (s *Service) PlaceOrder(ctx context.Context, lines []domain.CartItem, address domain.Address) (domain.Order, error) {
	if len(lines) == 0 {
		return domain.Order{}, domain.ErrEmptyCart
	}

	if errs := s.validation.Validate(&address); len(errs) > 0 {
		s.logger.Debug("Rejected checkout address", "error", errs)
		return domain.Order{}, errs
	}

	items := make([]domain.CartItem, len(lines))
	copy(items, lines)

	var total float64
	for _, line := range items {
		total += line.Subtotal()
	}

	order := &domain.Order{
		ID:              uuid.NewString(),
		Items:           items,
		Total:           total,
		Status:          domain.OrderPending,
		CreatedAt:       time.Now(),
		ShippingAddress: address,
	}

	s.mutex.Lock()
	s.orders = append(s.orders, order)
	s.mutex.Unlock()

	s.logger.Info("Order placed",
		"order_id", order.ID,
		"items", len(order.Items),
		"total", order.Total)

	return *order, nil
}

// Orders returns a copy of every order placed this session, oldest first.
func (s *Service) Orders(ctx context.Context) []domain.Order {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	orders := make([]domain.Order, len(s.orders))
	for i, o := range s.orders {
		orders[i] = *o
	}

	return orders
}

// AdvanceOrder moves an order one step along its status lifecycle
// (pending -> processing -> shipped -> delivered). Advancing a delivered
// order is a no-op. It returns the order's new state.
func (s *Service) AdvanceOrder(ctx context.Context, orderID string) (domain.Order, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, o := range s.orders {
		if o.ID == orderID {
			o.Status = o.Status.Next()
			return *o, nil
		}
	}

	return domain.Order{}, domain.ErrOrderNotFound
}
