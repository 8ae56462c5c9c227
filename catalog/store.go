// Package catalog holds the immutable product and category data a storefront
// session operates on. The catalog is loaded and validated once at
// construction; after that the only permitted mutation is a stock decrement.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"github.com/hashicorp/go-hclog"
	"github.com/marketbay/storefront/domain"
)

// document is the on-disk shape of a catalog file.
type document struct {
	Products   []*domain.Product `json:"products"`
	Categories []domain.Category `json:"categories"`
}

// Store is the in-memory catalog. Reads hand out copies so callers can never
// mutate catalog state behind the store's back.
type Store struct {
	logger     hclog.Logger
	mutex      sync.RWMutex
	products   []*domain.Product
	categories []domain.Category
}

// NewStore loads the embedded seed catalog.
func NewStore(logger hclog.Logger) (*Store, error) {
	return load(logger, seedCatalog)
}

// NewStoreFromFile loads a catalog document from path.
func NewStoreFromFile(logger hclog.Logger, path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog file: %w", err)
	}
	defer f.Close()

	return NewStoreFromReader(logger, f)
}

// NewStoreFromReader loads a catalog document from r. Every product and
// category record is validated; a single bad record fails the whole load.
func NewStoreFromReader(logger hclog.Logger, r io.Reader) (*Store, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading catalog data: %w", err)
	}

	return load(logger, raw)
}

func load(logger hclog.Logger, raw []byte) (*Store, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decoding catalog data: %w", err)
	}

	validation := domain.NewValidation()

	seen := make(map[string]struct{}, len(doc.Products))
	for i, p := range doc.Products {
		if p == nil {
			return nil, fmt.Errorf("catalog product %d is null", i)
		}
		if errs := validation.Validate(p); len(errs) > 0 {
			return nil, fmt.Errorf("invalid product %q: %w", p.ID, errs)
		}
		if _, ok := seen[p.ID]; ok {
			return nil, fmt.Errorf("product %q: %w", p.ID, domain.ErrDuplicateProduct)
		}
		seen[p.ID] = struct{}{}
	}

	for _, c := range doc.Categories {
		if errs := validation.Validate(c); len(errs) > 0 {
			return nil, fmt.Errorf("invalid category %q: %w", c.ID, errs)
		}
	}

	logger.Info("Catalog loaded",
		"products", len(doc.Products),
		"categories", len(doc.Categories))

	return &Store{
		logger:     logger,
		products:   doc.Products,
		categories: doc.Categories,
	}, nil
}

// Products returns a copy of every product in catalog order.
func (s *Store) Products(ctx context.Context) domain.Products {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	products := make(domain.Products, len(s.products))
	for i, p := range s.products {
		products[i] = *p
	}

	return products
}

// ProductByID returns a copy of the product with the given id.
// If no product matches, it returns ErrProductNotFound.
func (s *Store) ProductByID(ctx context.Context, id string) (domain.Product, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	for _, p := range s.products {
		if p.ID == id {
			return *p, nil
		}
	}

	return domain.Product{}, domain.ErrProductNotFound
}

// Categories returns a copy of the category list.
func (s *Store) Categories(ctx context.Context) []domain.Category {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	categories := make([]domain.Category, len(s.categories))
	copy(categories, s.categories)

	return categories
}

// Brands returns the distinct product brands, sorted alphabetically.
func (s *Store) Brands(ctx context.Context) []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	seen := make(map[string]struct{})
	brands := make([]string, 0)
	for _, p := range s.products {
		if _, ok := seen[p.Brand]; ok {
			continue
		}
		seen[p.Brand] = struct{}{}
		brands = append(brands, p.Brand)
	}

	sort.Strings(brands)

	return brands
}

// DecrementStock reduces a product's stock by quantity. The decrement only
// applies when the remaining stock covers the full quantity; otherwise stock
// is left untouched, so it can never go negative. It returns the remaining
// stock and whether the decrement applied.
func (s *Store) DecrementStock(ctx context.Context, productID string, quantity int) (int, bool, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, p := range s.products {
		if p.ID != productID {
			continue
		}

		if quantity <= 0 || p.Stock < quantity {
			s.logger.Debug("Stock decrement skipped",
				"product_id", productID,
				"stock", p.Stock,
				"requested", quantity)
			return p.Stock, false, nil
		}

		p.Stock -= quantity
		s.logger.Debug("Stock decremented",
			"product_id", productID,
			"remaining", p.Stock)
		return p.Stock, true, nil
	}

	return 0, false, domain.ErrProductNotFound
}
