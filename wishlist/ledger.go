// Package wishlist implements the wishlist ledger: a set of product
// references with idempotent membership keyed by product id.
package wishlist

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/marketbay/storefront/domain"
)

// Ledger holds the wishlist entries for one session. At most one entry
// exists per product id.
type Ledger struct {
	logger hclog.Logger
	mutex  sync.RWMutex
	items  []domain.WishlistItem

	// now is swapped out in tests
	now func() time.Time
}

func NewLedger(logger hclog.Logger) *Ledger {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Ledger{
		logger: logger,
		now:    time.Now,
	}
}

// Add records productID on the wishlist. Adding a product that is already
// present is a no-op. It returns whether the ledger changed.
func (l *Ledger) Add(productID string) bool {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if l.indexOf(productID) >= 0 {
		return false
	}

	l.items = append(l.items, domain.WishlistItem{
		ID:        uuid.NewString(),
		ProductID: productID,
		AddedAt:   l.now(),
	})

	l.logger.Debug("Added to wishlist", "product_id", productID)

	return true
}

// Remove drops productID from the wishlist. Removing an absent product is a
// no-op. It returns whether the ledger changed.
func (l *Ledger) Remove(productID string) bool {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	i := l.indexOf(productID)
	if i < 0 {
		return false
	}

	l.items = append(l.items[:i], l.items[i+1:]...)

	l.logger.Debug("Removed from wishlist", "product_id", productID)

	return true
}

// Toggle adds productID when absent and removes it when present. It returns
// the resulting membership.
func (l *Ledger) Toggle(productID string) bool {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if i := l.indexOf(productID); i >= 0 {
		l.items = append(l.items[:i], l.items[i+1:]...)
		return false
	}

	l.items = append(l.items, domain.WishlistItem{
		ID:        uuid.NewString(),
		ProductID: productID,
		AddedAt:   l.now(),
	})

	return true
}

// Clear empties the wishlist.
func (l *Ledger) Clear() {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	l.items = nil
}

// Contains reports whether productID is on the wishlist.
func (l *Ledger) Contains(productID string) bool {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	return l.indexOf(productID) >= 0
}

// Count returns the number of wishlist entries.
func (l *Ledger) Count() int {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	return len(l.items)
}

// Items returns a copy of the wishlist entries.
func (l *Ledger) Items() []domain.WishlistItem {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	items := make([]domain.WishlistItem, len(l.items))
	copy(items, l.items)

	return items
}

// indexOf must be called with the mutex held.
func (l *Ledger) indexOf(productID string) int {
	for i, item := range l.items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}
