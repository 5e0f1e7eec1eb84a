package domain

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

type SortOrder string

const (
	SortFeatured  SortOrder = "featured"
	SortPriceLow  SortOrder = "price-low"
	SortPriceHigh SortOrder = "price-high"
	SortName      SortOrder = "name"
)

func (s SortOrder) Valid() bool {
	switch s {
	case "", SortFeatured, SortPriceLow, SortPriceHigh, SortName:
		return true
	}
	return false
}

var (
	DefaultMinPrice = decimal.Zero
	DefaultMaxPrice = decimal.NewFromInt(500)
)

// Filter mirrors the listing sidebar: a category, an inclusive price range,
// size and color selections and a sort order.
type Filter struct {
	Category Category
	MinPrice decimal.Decimal
	MaxPrice decimal.Decimal
	Sizes    []string
	Colors   []string
	Sort     SortOrder
}

func DefaultFilter(category Category) Filter {
	return Filter{
		Category: category,
		MinPrice: DefaultMinPrice,
		MaxPrice: DefaultMaxPrice,
		Sort:     SortFeatured,
	}
}

// Match reports whether p passes the price, size and color parts of f.
// The category is applied by the caller since "sale" spans all categories.
func (f Filter) Match(p Product) bool {
	if p.Price.LessThan(f.MinPrice) || p.Price.GreaterThan(f.MaxPrice) {
		return false
	}
	if len(f.Sizes) > 0 && !slices.ContainsFunc(p.Sizes, func(s string) bool { return slices.Contains(f.Sizes, s) }) {
		return false
	}
	if len(f.Colors) > 0 && !slices.ContainsFunc(p.Colors, func(c string) bool { return slices.Contains(f.Colors, c) }) {
		return false
	}
	return true
}

// SortProducts orders products in place. Featured keeps declaration order.
func SortProducts(products []Product, order SortOrder) {
	switch order {
	case SortPriceLow:
		slices.SortStableFunc(products, func(a, b Product) int { return a.Price.Cmp(b.Price) })
	case SortPriceHigh:
		slices.SortStableFunc(products, func(a, b Product) int { return b.Price.Cmp(a.Price) })
	case SortName:
		slices.SortStableFunc(products, func(a, b Product) int {
			return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		})
	}
}

// MatchesQuery is a case-insensitive substring test against name,
// description and category. q must already be lower-cased.
func (p Product) MatchesQuery(q string) bool {
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Description), q) ||
		strings.Contains(strings.ToLower(string(p.Category)), q)
}
