package filter

// Sort selects the comparator applied to the visible product list.
type Sort string

const (
	SortFeatured  Sort = "featured"
	SortPriceLow  Sort = "price-low"
	SortPriceHigh Sort = "price-high"
	SortRating    Sort = "rating"
	SortNewest    Sort = "newest"
)

// ViewMode is a display preference carried with the filter state. It has no
// effect on which products are visible.
type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

// Default bounds for the price range filter.
const (
	DefaultPriceMin = 0
	DefaultPriceMax = 1000
)

// Config is the full set of user-selected constraints plus sort and view
// preferences. Empty multi-select lists mean "no restriction", never
// "match nothing"; all predicates are combined with AND.
type Config struct {
	// Categories restricts results to products whose category id is a member.
	Categories []string

	// PriceMin and PriceMax bound the price filter, both inclusive.
	PriceMin float64
	PriceMax float64

	// MinRating excludes products rated below it. Zero disables the filter.
	MinRating float64

	// InStockOnly excludes products with zero stock.
	InStockOnly bool

	// Brands restricts results to products whose brand is a member.
	Brands []string

	// SearchQuery is matched case-insensitively as a substring of the
	// product name or description.
	SearchQuery string

	SortBy   Sort
	ViewMode ViewMode
}

// DefaultConfig returns the unrestricted filter state.
func DefaultConfig() Config {
	return Config{
		PriceMin: DefaultPriceMin,
		PriceMax: DefaultPriceMax,
		SortBy:   SortFeatured,
		ViewMode: ViewGrid,
	}
}

// Reset clears every filter field back to its default while preserving the
// sort and view preferences.
func (c *Config) Reset() {
	c.Categories = nil
	c.PriceMin = DefaultPriceMin
	c.PriceMax = DefaultPriceMax
	c.MinRating = 0
	c.InStockOnly = false
	c.Brands = nil
	c.SearchQuery = ""
}
