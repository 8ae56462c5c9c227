// Package cart implements the cart ledger: an owned collection of cart lines
// with merge-on-add semantics and totals that are always recomputed from the
// lines themselves.
package cart

import (
	"sync"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/marketbay/storefront/domain"
)

// Ledger holds the cart lines for one session. All mutations clamp or no-op
// rather than fail; the ledger never stores a quantity below 1 or above the
// line's product stock.
type Ledger struct {
	logger hclog.Logger
	mutex  sync.RWMutex
	lines  []*domain.CartItem
}

func NewLedger(logger hclog.Logger) *Ledger {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Ledger{logger: logger}
}

// Add puts quantity units of product into the cart. If a line for the same
// product already exists its quantity increases and the existing selection is
// kept; otherwise a new line is created. Non-positive quantities are ignored.
// It returns the affected line and whether the ledger changed.
func (l *Ledger) Add(product domain.Product, quantity int, size, color string) (domain.CartItem, bool) {
	if quantity < 1 {
		l.logger.Debug("Ignoring cart add with non-positive quantity",
			"product_id", product.ID,
			"quantity", quantity)
		return domain.CartItem{}, false
	}

	l.mutex.Lock()
	defer l.mutex.Unlock()

	for _, line := range l.lines {
		if line.Product.ID == product.ID {
			line.Quantity += quantity
			l.logger.Debug("Merged cart line",
				"line_id", line.ID,
				"product_id", product.ID,
				"quantity", line.Quantity)
			return *line, true
		}
	}

	line := &domain.CartItem{
		ID:            uuid.NewString(),
		Product:       product,
		Quantity:      quantity,
		SelectedSize:  size,
		SelectedColor: color,
	}
	l.lines = append(l.lines, line)

	l.logger.Debug("Created cart line",
		"line_id", line.ID,
		"product_id", product.ID,
		"quantity", quantity)

	return *line, true
}

// Remove deletes the line with the given id. Removing an absent line is a
// no-op.
func (l *Ledger) Remove(lineID string) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	for i, line := range l.lines {
		if line.ID == lineID {
			l.lines = append(l.lines[:i], l.lines[i+1:]...)
			l.logger.Debug("Removed cart line", "line_id", lineID)
			return
		}
	}
}

// UpdateQuantity sets a line's quantity, clamped to the range
// [1, product stock]. A request below 1 stores 1; a request above the
// product's stock stores the stock. Updating an absent line is a no-op.
// It returns the updated line and whether it was found.
func (l *Ledger) UpdateQuantity(lineID string, quantity int) (domain.CartItem, bool) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	for _, line := range l.lines {
		if line.ID != lineID {
			continue
		}

		clamped := quantity
		if clamped > line.Product.Stock {
			clamped = line.Product.Stock
		}
		// floor last so the stored quantity can never drop below 1
		if clamped < 1 {
			clamped = 1
		}
		line.Quantity = clamped

		l.logger.Debug("Updated cart line quantity",
			"line_id", lineID,
			"requested", quantity,
			"stored", clamped)

		return *line, true
	}

	return domain.CartItem{}, false
}

// Clear removes every line. Stock already decremented for these lines is not
// restored.
func (l *Ledger) Clear() {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	l.lines = nil
}

// Lines returns a copy of the cart lines in insertion order.
func (l *Ledger) Lines() []domain.CartItem {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	lines := make([]domain.CartItem, len(l.lines))
	for i, line := range l.lines {
		lines[i] = *line
	}

	return lines
}

// Line returns the line with the given id.
func (l *Ledger) Line(lineID string) (domain.CartItem, bool) {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	for _, line := range l.lines {
		if line.ID == lineID {
			return *line, true
		}
	}

	return domain.CartItem{}, false
}

// Total recomputes the cart total from the lines.
func (l *Ledger) Total() float64 {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	var total float64
	for _, line := range l.lines {
		total += line.Subtotal()
	}

	return total
}

// ItemCount recomputes the number of units in the cart from the lines.
func (l *Ledger) ItemCount() int {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	var count int
	for _, line := range l.lines {
		count += line.Quantity
	}

	return count
}
