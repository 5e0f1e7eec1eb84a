package domain

import (
	"slices"

	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryWomen       Category = "women"
	CategoryMen         Category = "men"
	CategoryAccessories Category = "accessories"

	// CategorySale is not stored on any product; browsing it lists the whole catalog.
	CategorySale Category = "sale"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryWomen, CategoryMen, CategoryAccessories, CategorySale:
		return true
	}
	return false
}

type Product struct {
	ID          string
	Name        string
	Price       decimal.Decimal
	Image       string
	Category    Category
	Description string
	Sizes       []string
	Colors      []string
	InStock     bool
}

func (p Product) HasSize(size string) bool {
	return slices.Contains(p.Sizes, size)
}

func (p Product) HasColor(color string) bool {
	return slices.Contains(p.Colors, color)
}

// Clone returns a copy that shares no slices with p.
func (p Product) Clone() Product {
	p.Sizes = slices.Clone(p.Sizes)
	p.Colors = slices.Clone(p.Colors)
	return p
}
