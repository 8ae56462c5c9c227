package storefront

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/marketbay/storefront/domain"
	"github.com/marketbay/storefront/events"
	"github.com/marketbay/storefront/filter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCatalog = `{
  "products": [
    {"id": "p1", "name": "Headphones", "description": "Over-ear audio",
     "price": 250, "category": "electronics", "brand": "Aurora",
     "rating": 4.8, "stock": 5, "featured": true},
    {"id": "p2", "name": "Keyboard", "description": "Mechanical keyboard",
     "price": 129, "category": "electronics", "brand": "Vertex",
     "rating": 4.6, "stock": 3},
    {"id": "p3", "name": "Jacket", "description": "Water resistant shell",
     "price": 180, "category": "fashion", "brand": "Northwind",
     "rating": 4.4, "stock": 0}
  ],
  "categories": [
    {"id": "electronics", "name": "Electronics", "slug": "electronics", "productCount": 2},
    {"id": "fashion", "name": "Fashion", "slug": "fashion", "productCount": 1}
  ]
}`

func newTestSession(t *testing.T) *Session {
	t.Helper()

	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(testCatalog), 0o600))

	s, err := New(Options{CatalogPath: path})
	require.NoError(t, err)
	t.Cleanup(s.Close)

	return s
}

func TestNewLoadsEmbeddedSeedByDefault(t *testing.T) {
	s, err := New(Options{})
	require.NoError(t, err)
	defer s.Close()

	assert.NotEmpty(t, s.Products(context.Background()))
}

func TestAddToCartDecrementsStockAtomically(t *testing.T) {
	s := newTestSession(t)
	ctx := context.Background()

	line, err := s.AddToCart(ctx, "p1", 2)
	require.NoError(t, err)

	assert.Equal(t, 2, line.Quantity)
	assert.Equal(t, 5, line.Product.Stock, "snapshot keeps the pre-purchase stock")

	fresh, err := s.Product(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 3, fresh.Stock, "catalog stock decremented alongside the cart add")

	assert.Equal(t, 2, s.CartItemCount())
	assert.InDelta(t, 500, s.CartTotal(), 1e-9)
}

func TestAddToCartMerges(t *testing.T) {
	s := newTestSession(t)
	ctx := context.Background()

	first, err := s.AddToCart(ctx, "p1", 1)
	require.NoError(t, err)
	second, err := s.AddToCart(ctx, "p1", 1)
	require.NoError(t, err)

	require.Len(t, s.CartLines(), 1)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 2, second.Quantity)

	fresh, _ := s.Product(ctx, "p1")
	assert.Equal(t, 3, fresh.Stock)
}

func TestAddToCartClampsToAvailableStock(t *testing.T) {
	s := newTestSession(t)
	ctx := context.Background()

	line, err := s.AddToCart(ctx, "p2", 99)
	require.NoError(t, err)

	assert.Equal(t, 3, line.Quantity, "purchase clamps to what is available")

	fresh, _ := s.Product(ctx, "p2")
	assert.Zero(t, fresh.Stock)
}

func TestAddToCartFailures(t *testing.T) {
	s := newTestSession(t)
	ctx := context.Background()

	_, err := s.AddToCart(ctx, "p3", 1)
	assert.ErrorIs(t, err, domain.ErrOutOfStock)

	_, err = s.AddToCart(ctx, "ghost", 1)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = s.AddToCart(ctx, "p1", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	assert.Empty(t, s.CartLines(), "failed adds must leave the cart untouched")

	fresh, _ := s.Product(ctx, "p1")
	assert.Equal(t, 5, fresh.Stock, "failed adds must leave stock untouched")
}

func TestAddToCartSelection(t *testing.T) {
	s := newTestSession(t)

	line, err := s.AddToCartSelection(context.Background(), "p1", 1, "L", "navy")
	require.NoError(t, err)

	assert.Equal(t, "L", line.SelectedSize)
	assert.Equal(t, "navy", line.SelectedColor)
}

func TestUpdateCartQuantityClamp(t *testing.T) {
	s := newTestSession(t)
	ctx := context.Background()

	line, err := s.AddToCart(ctx, "p1", 1)
	require.NoError(t, err)

	updated, ok := s.UpdateCartQuantity(line.ID, 9999)
	require.True(t, ok)
	assert.Equal(t, 5, updated.Quantity, "clamped to the line's stock ceiling")

	updated, ok = s.UpdateCartQuantity(line.ID, -3)
	require.True(t, ok)
	assert.Equal(t, 1, updated.Quantity)
}

func TestClearCartDoesNotRestoreStock(t *testing.T) {
	s := newTestSession(t)
	ctx := context.Background()

	_, err := s.AddToCart(ctx, "p1", 2)
	require.NoError(t, err)

	s.ClearCart()

	assert.Empty(t, s.CartLines())
	assert.Zero(t, s.CartTotal())
	assert.Zero(t, s.CartItemCount())

	fresh, _ := s.Product(ctx, "p1")
	assert.Equal(t, 3, fresh.Stock, "stock stays decremented after a clear")
}

func TestWishlistRoundTrip(t *testing.T) {
	s := newTestSession(t)

	s.AddToWishlist("p1")
	s.AddToWishlist("p1") // duplicate, no-op
	s.AddToWishlist("p2")

	assert.Equal(t, 2, s.WishlistCount())
	assert.True(t, s.InWishlist("p1"))

	assert.False(t, s.ToggleWishlist("p1"))
	assert.True(t, s.ToggleWishlist("p3"))

	s.RemoveFromWishlist("p2")
	s.RemoveFromWishlist("p2") // idempotent

	require.Equal(t, 1, s.WishlistCount())
	assert.True(t, s.InWishlist("p3"))

	s.ClearWishlist()
	assert.Zero(t, s.WishlistCount())
}

func TestVisibleProductsFollowsFilterState(t *testing.T) {
	s := newTestSession(t)
	ctx := context.Background()

	require.Len(t, s.VisibleProducts(ctx), 3)

	s.SetCategories([]string{"electronics"})
	s.SetSortBy(filter.SortPriceLow)

	visible := s.VisibleProducts(ctx)
	require.Len(t, visible, 2)
	assert.Equal(t, "p2", visible[0].ID)
	assert.Equal(t, "p1", visible[1].ID)

	s.SetSearchQuery("jacket")
	assert.Empty(t, s.VisibleProducts(ctx), "conjunction with category filter excludes the match")

	s.ClearFilters()
	visible = s.VisibleProducts(ctx)
	require.Len(t, visible, 3)

	cfg := s.Filters()
	assert.Equal(t, filter.SortPriceLow, cfg.SortBy, "clearing filters keeps the sort preference")
}

func TestSetPriceRangeSwapsReversedBounds(t *testing.T) {
	s := newTestSession(t)

	s.SetPriceRange(300, 100)

	cfg := s.Filters()
	assert.Equal(t, float64(100), cfg.PriceMin)
	assert.Equal(t, float64(300), cfg.PriceMax)
}

func TestBrandsAndCategories(t *testing.T) {
	s := newTestSession(t)
	ctx := context.Background()

	assert.Equal(t, []string{"Aurora", "Northwind", "Vertex"}, s.Brands(ctx))
	assert.Len(t, s.Categories(ctx), 2)
}

func TestCheckoutFlow(t *testing.T) {
	s := newTestSession(t)
	ctx := context.Background()

	_, err := s.AddToCart(ctx, "p1", 2)
	require.NoError(t, err)

	address := domain.Address{
		Street:  "12 Harbour Lane",
		City:    "Portland",
		State:   "OR",
		ZipCode: "97201",
		Country: "USA",
	}

	order, err := s.Checkout(ctx, address)
	require.NoError(t, err)

	assert.Equal(t, domain.OrderPending, order.Status)
	assert.InDelta(t, 500, order.Total, 1e-9)
	assert.Empty(t, s.CartLines(), "checkout empties the cart")

	orders := s.Orders(ctx)
	require.Len(t, orders, 1)

	advanced, err := s.AdvanceOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderProcessing, advanced.Status)
}

func TestCheckoutFailuresLeaveCartIntact(t *testing.T) {
	s := newTestSession(t)
	ctx := context.Background()

	_, err := s.Checkout(ctx, domain.Address{})
	assert.ErrorIs(t, err, domain.ErrEmptyCart)

	_, err = s.AddToCart(ctx, "p1", 1)
	require.NoError(t, err)

	_, err = s.Checkout(ctx, domain.Address{Street: "x"})
	require.Error(t, err)

	assert.Len(t, s.CartLines(), 1, "failed checkout must not clear the cart")
}

func TestEventsArePublished(t *testing.T) {
	s := newTestSession(t)
	ctx := context.Background()

	ch := s.Events()

	_, err := s.AddToCart(ctx, "p1", 1)
	require.NoError(t, err)

	s.SetSearchQuery("head")
	s.AddToWishlist("p2")

	var got []events.Event
	for len(ch) > 0 {
		got = append(got, <-ch)
	}

	require.Len(t, got, 4)
	assert.Equal(t, events.StockChanged{ProductID: "p1", Remaining: 4}, got[0])
	assert.Equal(t, events.CartChanged{ItemCount: 1, Total: 250}, got[1])
	assert.Equal(t, events.FiltersChanged{}, got[2])
	assert.Equal(t, events.WishlistChanged{Count: 1}, got[3])
}
