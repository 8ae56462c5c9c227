// Package filter derives the visible product list from the catalog and the
// current filter configuration. The derivation is a pure function: it never
// mutates its inputs and the same inputs always produce the same output.
package filter

import (
	"slices"
	"sort"
	"strings"

	"github.com/marketbay/storefront/domain"
)

// VisibleProducts returns the products that pass every predicate in cfg,
// ordered by the cfg.SortBy comparator. The sort is stable: products with
// equal keys keep their relative catalog order.
func VisibleProducts(products domain.Products, cfg Config) domain.Products {
	// the query is matched literally, so surrounding whitespace counts
	query := strings.ToLower(cfg.SearchQuery)

	visible := make(domain.Products, 0, len(products))
	for _, p := range products {
		if matches(p, cfg, query) {
			visible = append(visible, p)
		}
	}

	sortProducts(visible, cfg.SortBy)

	return visible
}

// matches reports whether p passes every filter clause. The query argument is
// the already-lowercased search text.
func matches(p domain.Product, cfg Config, query string) bool {
	if query != "" &&
		!strings.Contains(strings.ToLower(p.Name), query) &&
		!strings.Contains(strings.ToLower(p.Description), query) {
		return false
	}

	if len(cfg.Categories) > 0 && !slices.Contains(cfg.Categories, p.Category) {
		return false
	}

	if p.Price < cfg.PriceMin || p.Price > cfg.PriceMax {
		return false
	}

	if cfg.MinRating > 0 && p.Rating < cfg.MinRating {
		return false
	}

	if cfg.InStockOnly && p.Stock == 0 {
		return false
	}

	if len(cfg.Brands) > 0 && !slices.Contains(cfg.Brands, p.Brand) {
		return false
	}

	return true
}

func sortProducts(products domain.Products, by Sort) {
	switch by {
	case SortPriceLow:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case SortPriceHigh:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	case SortRating:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating > products[j].Rating
		})
	case SortNewest:
		// ids are assigned in insertion order, so newest sorts descending
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].ID > products[j].ID
		})
	default:
		// featured is the default and the fallback for unknown values
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Featured && !products[j].Featured
		})
	}
}
