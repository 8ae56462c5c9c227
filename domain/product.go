package domain

// Product is a single catalog entry. Products are loaded once at session
// start and are immutable afterwards with one exception: Stock, which only
// the catalog store may change.
type Product struct {
	// the unique id for this product
	ID string `json:"id" validate:"required"`

	// the display name for this product
	Name string `json:"name" validate:"required"`

	// the long-form description for this product
	Description string `json:"description"`

	// the current price for the product
	Price float64 `json:"price" validate:"gte=0"`

	// the pre-discount price; when set it must not be lower than Price
	OriginalPrice float64 `json:"originalPrice,omitempty" validate:"omitempty,gtefield=Price"`

	// image references, first entry is the primary image
	Images []string `json:"images,omitempty"`

	// the id of the category this product belongs to
	Category string `json:"category" validate:"required"`

	Subcategory string `json:"subcategory,omitempty"`

	// average review rating on a 0-5 scale
	Rating float64 `json:"rating" validate:"gte=0,lte=5"`

	ReviewCount int `json:"reviewCount" validate:"gte=0"`

	// remaining purchasable quantity
	Stock int `json:"stock" validate:"gte=0"`

	Tags []string `json:"tags,omitempty"`

	Featured bool `json:"featured"`
	Trending bool `json:"trending"`

	Brand string `json:"brand" validate:"required"`

	// free-form spec sheet, no schema
	Specifications map[string]string `json:"specifications,omitempty"`
}

// InStock reports whether the product can still be purchased.
func (p Product) InStock() bool {
	return p.Stock > 0
}

// Discounted reports whether the product carries a reduced price.
func (p Product) Discounted() bool {
	return p.OriginalPrice > 0 && p.OriginalPrice > p.Price
}

// Category is a static grouping of products. ProductCount is denormalized
// seed data and is not recomputed at runtime.
type Category struct {
	ID           string `json:"id" validate:"required"`
	Name         string `json:"name" validate:"required"`
	Slug         string `json:"slug" validate:"required"`
	Image        string `json:"image"`
	Description  string `json:"description"`
	ProductCount int    `json:"productCount" validate:"gte=0"`
}

// Products is a collection of Product
type Products []Product
