package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

const keySeparator = "-"

// Key identifies one cart line. Two lines of the same product with a
// different size or color are different lines.
type Key struct {
	ProductID string
	Size      string
	Color     string
}

func (k Key) String() string {
	return k.ProductID + keySeparator + k.Size + keySeparator + k.Color
}

// ParseKey reverses Key.String. It splits positionally into at most three
// parts so the color keeps any separator it contains; missing parts are empty.
func ParseKey(s string) Key {
	parts := strings.SplitN(s, keySeparator, 3)
	for len(parts) < 3 {
		parts = append(parts, "")
	}
	return Key{ProductID: parts[0], Size: parts[1], Color: parts[2]}
}

// LineItem is a snapshot of the product taken when it was added, plus the
// shopper's selection.
type LineItem struct {
	ProductID     string
	Name          string
	Price         decimal.Decimal
	Image         string
	Category      string
	Description   string
	Sizes         []string
	Colors        []string
	InStock       bool
	Quantity      int
	SelectedSize  string
	SelectedColor string
}

func (it LineItem) Key() Key {
	return Key{ProductID: it.ProductID, Size: it.SelectedSize, Color: it.SelectedColor}
}

func (it LineItem) LineTotal() decimal.Decimal {
	return it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// Cart is the per-session aggregate. Total and ItemCount are always the
// fold over Items; construct carts through Reduce or New to keep it so.
type Cart struct {
	Items     []LineItem
	Total     decimal.Decimal
	ItemCount int
}

func Empty() Cart {
	return Cart{Items: []LineItem{}, Total: decimal.Zero}
}

// New builds a cart from items, dropping non-positive quantities and
// computing the derived fields.
func New(items []LineItem) Cart {
	kept := make([]LineItem, 0, len(items))
	for _, it := range items {
		if it.Quantity > 0 {
			kept = append(kept, it)
		}
	}
	return withTotals(kept)
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c Cart) Find(k Key) (LineItem, bool) {
	for _, it := range c.Items {
		if it.Key() == k {
			return it, true
		}
	}
	return LineItem{}, false
}

func withTotals(items []LineItem) Cart {
	total := decimal.Zero
	count := 0
	for _, it := range items {
		total = total.Add(it.LineTotal())
		count += it.Quantity
	}
	return Cart{Items: items, Total: total, ItemCount: count}
}
