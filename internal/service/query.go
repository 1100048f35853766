package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/avelichko/prodcatalog/internal/store"
)

// Pagination defaults for the list endpoint.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// ListQuery holds the parsed query parameters for the list endpoint.
// Nil price bounds mean the corresponding filter is not applied.
type ListQuery struct {
	Q        string
	Category string
	MinPrice *float64
	MaxPrice *float64
	Page     int
	Limit    int
}

// ProductPage is one page of list results. Total counts products after
// filtering but before pagination, so callers can compute the page count.
type ProductPage struct {
	Total    int          `json:"total"`
	Page     int          `json:"page"`
	Limit    int          `json:"limit"`
	Products []ProductDto `json:"products"`
}

// ParseListQuery coerces raw URL query values into a ListQuery. Price bounds
// that fail to parse are ignored; page and limit values that fail to parse or
// are below 1 fall back to the defaults.
func ParseListQuery(values url.Values) ListQuery {
	query := ListQuery{
		Q:        values.Get("q"),
		Category: values.Get("category"),
		Page:     DefaultPage,
		Limit:    DefaultLimit,
	}
	if v, err := strconv.ParseFloat(values.Get("minPrice"), 64); err == nil {
		query.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(values.Get("maxPrice"), 64); err == nil {
		query.MaxPrice = &v
	}
	if v, err := strconv.Atoi(values.Get("page")); err == nil && v >= 1 {
		query.Page = v
	}
	if v, err := strconv.Atoi(values.Get("limit")); err == nil && v >= 1 {
		query.Limit = v
	}
	return query
}

// List applies the query pipeline to the current store contents. Stages run
// in a fixed order: free-text search, category filter, price range filter,
// pagination. Pagination must come last so that Total reflects all filters.
func (s *Service) List(ctx context.Context, query ListQuery) (*ProductPage, error) {
	products, err := s.repository.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	filtered := search(products, query.Q)
	filtered = filterCategory(filtered, query.Category)
	filtered = filterPrice(filtered, query.MinPrice, query.MaxPrice)

	total := len(filtered)
	pageItems := paginate(filtered, query.Page, query.Limit)

	productDTOs := make([]ProductDto, len(pageItems))
	for i, item := range pageItems {
		productDTOs[i] = *toDto(&item)
	}

	return &ProductPage{
		Total:    total,
		Page:     query.Page,
		Limit:    query.Limit,
		Products: productDTOs,
	}, nil
}

// search keeps products whose name or description contains the term,
// case-insensitively. An empty term is a no-op.
func search(products []store.Product, term string) []store.Product {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return products
	}
	kept := make([]store.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Description), term) {
			kept = append(kept, p)
		}
	}
	return kept
}

// filterCategory keeps products whose category matches exactly,
// case-insensitively. An empty category is a no-op.
func filterCategory(products []store.Product, category string) []store.Product {
	category = strings.TrimSpace(category)
	if category == "" {
		return products
	}
	kept := make([]store.Product, 0, len(products))
	for _, p := range products {
		if strings.EqualFold(p.Category, category) {
			kept = append(kept, p)
		}
	}
	return kept
}

// filterPrice keeps products within the given bounds. Each bound is applied
// independently; a nil bound is a no-op.
func filterPrice(products []store.Product, minPrice, maxPrice *float64) []store.Product {
	if minPrice == nil && maxPrice == nil {
		return products
	}
	kept := make([]store.Product, 0, len(products))
	for _, p := range products {
		if minPrice != nil && p.Price < *minPrice {
			continue
		}
		if maxPrice != nil && p.Price > *maxPrice {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

// paginate returns the sub-range [start, start+limit) of the post-filter
// sequence. An out-of-range page yields an empty page, not an error.
func paginate(products []store.Product, page, limit int) []store.Product {
	start := (page - 1) * limit
	if start >= len(products) {
		return nil
	}
	end := min(start+limit, len(products))
	return products[start:end]
}
