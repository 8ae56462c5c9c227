// Package storefront wires the catalog store, filter engine, cart ledger,
// wishlist ledger and checkout service into a single session that a
// presentation layer drives. The presentation layer issues the command
// methods, reads the derived values, and may subscribe to the session's
// event stream to learn when to re-render.
package storefront

import (
	"context"
	"slices"
	"sync"

	"github.com/hashicorp/go-hclog"
	"github.com/marketbay/storefront/cart"
	"github.com/marketbay/storefront/catalog"
	"github.com/marketbay/storefront/checkout"
	"github.com/marketbay/storefront/config"
	"github.com/marketbay/storefront/domain"
	"github.com/marketbay/storefront/events"
	"github.com/marketbay/storefront/filter"
	"github.com/marketbay/storefront/wishlist"
)

// Options configures a new Session.
type Options struct {
	// CatalogPath points at a catalog JSON document. Empty uses the
	// embedded seed catalog.
	CatalogPath string

	// Logger is the root logger; components get named sub-loggers from it.
	// Nil discards all log output.
	Logger hclog.Logger
}

// Session owns all storefront state for one user session. State lives in
// memory only and is discarded when the session goes away.
type Session struct {
	logger   hclog.Logger
	catalog  *catalog.Store
	cart     *cart.Ledger
	wishlist *wishlist.Ledger
	checkout *checkout.Service
	bus      *events.Bus[events.Event]

	filterMu sync.RWMutex
	filters  filter.Config

	closeOnce sync.Once
}

// New builds a Session from opts, loading and validating the catalog.
func New(opts Options) (*Session, error) {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	var store *catalog.Store
	var err error
	if opts.CatalogPath != "" {
		store, err = catalog.NewStoreFromFile(logger.Named("catalog"), opts.CatalogPath)
	} else {
		store, err = catalog.NewStore(logger.Named("catalog"))
	}
	if err != nil {
		return nil, err
	}

	return &Session{
		logger:   logger,
		catalog:  store,
		cart:     cart.NewLedger(logger.Named("cart")),
		wishlist: wishlist.NewLedger(logger.Named("wishlist")),
		checkout: checkout.NewService(logger.Named("checkout")),
		bus:      events.NewBus[events.Event](),
		filters:  filter.DefaultConfig(),
	}, nil
}

// NewFromEnvironment builds a Session configured from the process
// environment (and the optional YAML config file it may point at).
func NewFromEnvironment() (*Session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	return New(Options{
		CatalogPath: cfg.CatalogPath,
		Logger:      cfg.Logger(),
	})
}

// Events returns a subscription to the session's change notifications. The
// caller should Close the session (or simply drop the channel) when done.
func (s *Session) Events() events.Subscriber[events.Event] {
	return s.bus.Subscribe()
}

// Close shuts down the event stream. The session's state remains readable.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.bus.Close()
		s.logger.Debug("Session closed")
	})
}

// ---------------------------------------------------------------------------
// Catalog reads

// Products returns the full catalog in its original order.
func (s *Session) Products(ctx context.Context) domain.Products {
	return s.catalog.Products(ctx)
}

// Product returns a single product by id.
func (s *Session) Product(ctx context.Context, id string) (domain.Product, error) {
	return s.catalog.ProductByID(ctx, id)
}

// Categories returns the catalog's category list.
func (s *Session) Categories(ctx context.Context) []domain.Category {
	return s.catalog.Categories(ctx)
}

// Brands returns the distinct brands in the catalog, sorted.
func (s *Session) Brands(ctx context.Context) []string {
	return s.catalog.Brands(ctx)
}

// VisibleProducts derives the product list for the current filter
// configuration. It recomputes from the catalog on every call.
func (s *Session) VisibleProducts(ctx context.Context) domain.Products {
	return filter.VisibleProducts(s.catalog.Products(ctx), s.Filters())
}

// ---------------------------------------------------------------------------
// Cart

// AddToCart purchases quantity units of a product into the cart: the stock
// decrement and the cart line creation happen as one operation, so cart
// contents and stock cannot drift apart. When fewer units than requested
// remain, the purchase is clamped to what is available; when none remain it
// fails with ErrOutOfStock.
func (s *Session) AddToCart(ctx context.Context, productID string, quantity int) (domain.CartItem, error) {
	return s.AddToCartSelection(ctx, productID, quantity, "", "")
}

// AddToCartSelection is AddToCart with an explicit size and colour choice.
func (s *Session) AddToCartSelection(ctx context.Context, productID string, quantity int, size, color string) (domain.CartItem, error) {
	if quantity < 1 {
		return domain.CartItem{}, domain.ErrInvalidQuantity
	}

	product, err := s.catalog.ProductByID(ctx, productID)
	if err != nil {
		return domain.CartItem{}, err
	}

	if product.Stock == 0 {
		return domain.CartItem{}, domain.ErrOutOfStock
	}

	granted := quantity
	if granted > product.Stock {
		granted = product.Stock
	}

	remaining, applied, err := s.catalog.DecrementStock(ctx, productID, granted)
	if err != nil {
		return domain.CartItem{}, err
	}
	if !applied {
		return domain.CartItem{}, domain.ErrOutOfStock
	}

	// the snapshot keeps the pre-purchase stock, which is the quantity
	// ceiling for later updates on this line
	line, _ := s.cart.Add(product, granted, size, color)

	s.logger.Info("Added to cart",
		"product_id", productID,
		"quantity", granted,
		"stock_remaining", remaining)

	s.bus.Publish(events.StockChanged{ProductID: productID, Remaining: remaining})
	s.publishCartChanged()

	return line, nil
}

// RemoveFromCart deletes a cart line. Removing an unknown line is a no-op.
func (s *Session) RemoveFromCart(lineID string) {
	s.cart.Remove(lineID)
	s.publishCartChanged()
}

// UpdateCartQuantity sets a line's quantity, clamped to what the product's
// stock allows. It returns the updated line and whether the line exists.
func (s *Session) UpdateCartQuantity(lineID string, quantity int) (domain.CartItem, bool) {
	line, ok := s.cart.UpdateQuantity(lineID, quantity)
	if ok {
		s.publishCartChanged()
	}
	return line, ok
}

// ClearCart empties the cart. Stock already purchased into the cart is not
// restored.
func (s *Session) ClearCart() {
	s.cart.Clear()
	s.publishCartChanged()
}

// CartLines returns a copy of the cart lines in insertion order.
func (s *Session) CartLines() []domain.CartItem {
	return s.cart.Lines()
}

// CartLine returns a single cart line by id.
func (s *Session) CartLine(lineID string) (domain.CartItem, bool) {
	return s.cart.Line(lineID)
}

// CartTotal recomputes the cart total from its lines.
func (s *Session) CartTotal() float64 {
	return s.cart.Total()
}

// CartItemCount recomputes the number of units in the cart.
func (s *Session) CartItemCount() int {
	return s.cart.ItemCount()
}

func (s *Session) publishCartChanged() {
	s.bus.Publish(events.CartChanged{
		ItemCount: s.cart.ItemCount(),
		Total:     s.cart.Total(),
	})
}

// ---------------------------------------------------------------------------
// Wishlist

// AddToWishlist saves a product for later. Duplicate adds are no-ops.
func (s *Session) AddToWishlist(productID string) {
	if s.wishlist.Add(productID) {
		s.publishWishlistChanged()
	}
}

// RemoveFromWishlist drops a product from the wishlist; idempotent.
func (s *Session) RemoveFromWishlist(productID string) {
	if s.wishlist.Remove(productID) {
		s.publishWishlistChanged()
	}
}

// ToggleWishlist flips a product's wishlist membership and returns the
// resulting state.
func (s *Session) ToggleWishlist(productID string) bool {
	onList := s.wishlist.Toggle(productID)
	s.publishWishlistChanged()
	return onList
}

// ClearWishlist empties the wishlist.
func (s *Session) ClearWishlist() {
	s.wishlist.Clear()
	s.publishWishlistChanged()
}

// InWishlist reports whether a product is on the wishlist.
func (s *Session) InWishlist(productID string) bool {
	return s.wishlist.Contains(productID)
}

// WishlistCount returns the number of wishlist entries.
func (s *Session) WishlistCount() int {
	return s.wishlist.Count()
}

// Wishlist returns a copy of the wishlist entries.
func (s *Session) Wishlist() []domain.WishlistItem {
	return s.wishlist.Items()
}

func (s *Session) publishWishlistChanged() {
	s.bus.Publish(events.WishlistChanged{Count: s.wishlist.Count()})
}

// ---------------------------------------------------------------------------
// Filters

// Filters returns a copy of the current filter configuration.
func (s *Session) Filters() filter.Config {
	s.filterMu.RLock()
	defer s.filterMu.RUnlock()

	cfg := s.filters
	cfg.Categories = slices.Clone(cfg.Categories)
	cfg.Brands = slices.Clone(cfg.Brands)
	return cfg
}

// SetSearchQuery sets the free-text search filter.
func (s *Session) SetSearchQuery(query string) {
	s.updateFilters(func(c *filter.Config) { c.SearchQuery = query })
}

// SetCategories replaces the selected category filter. An empty selection
// means no restriction.
func (s *Session) SetCategories(categoryIDs []string) {
	ids := slices.Clone(categoryIDs)
	s.updateFilters(func(c *filter.Config) { c.Categories = ids })
}

// SetPriceRange sets the inclusive price bounds. Reversed bounds are
// swapped.
func (s *Session) SetPriceRange(min, max float64) {
	if min > max {
		min, max = max, min
	}
	s.updateFilters(func(c *filter.Config) {
		c.PriceMin = min
		c.PriceMax = max
	})
}

// SetMinRating sets the minimum rating threshold; zero disables it.
func (s *Session) SetMinRating(rating float64) {
	s.updateFilters(func(c *filter.Config) { c.MinRating = rating })
}

// SetInStockOnly toggles hiding of out-of-stock products.
func (s *Session) SetInStockOnly(inStockOnly bool) {
	s.updateFilters(func(c *filter.Config) { c.InStockOnly = inStockOnly })
}

// SetBrands replaces the selected brand filter. An empty selection means no
// restriction.
func (s *Session) SetBrands(brands []string) {
	bs := slices.Clone(brands)
	s.updateFilters(func(c *filter.Config) { c.Brands = bs })
}

// SetSortBy selects the sort comparator for the visible product list.
func (s *Session) SetSortBy(by filter.Sort) {
	s.updateFilters(func(c *filter.Config) { c.SortBy = by })
}

// SetViewMode records the display preference; it never affects filtering.
func (s *Session) SetViewMode(mode filter.ViewMode) {
	s.updateFilters(func(c *filter.Config) { c.ViewMode = mode })
}

// ClearFilters resets every filter field, keeping sort and view preferences.
func (s *Session) ClearFilters() {
	s.updateFilters(func(c *filter.Config) { c.Reset() })
}

func (s *Session) updateFilters(apply func(*filter.Config)) {
	s.filterMu.Lock()
	apply(&s.filters)
	s.filterMu.Unlock()

	s.bus.Publish(events.FiltersChanged{})
}

// ---------------------------------------------------------------------------
// Checkout

// Checkout places an order for the current cart contents shipped to address,
// then empties the cart. The cart is left untouched when checkout fails.
func (s *Session) Checkout(ctx context.Context, address domain.Address) (domain.Order, error) {
	order, err := s.checkout.PlaceOrder(ctx, s.cart.Lines(), address)
	if err != nil {
		return domain.Order{}, err
	}

	s.cart.Clear()

	s.bus.Publish(events.OrderPlaced{OrderID: order.ID, Total: order.Total})
	s.publishCartChanged()

	return order, nil
}

// Orders returns every order placed this session.
func (s *Session) Orders(ctx context.Context) []domain.Order {
	return s.checkout.Orders(ctx)
}

// AdvanceOrder moves an order one step along its fulfilment lifecycle.
func (s *Session) AdvanceOrder(ctx context.Context, orderID string) (domain.Order, error) {
	return s.checkout.AdvanceOrder(ctx, orderID)
}
