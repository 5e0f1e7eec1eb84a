package memory

import (
	"context"

	"github.com/dwikikusuma/storefront/internal/catalog/app"
	"github.com/dwikikusuma/storefront/internal/catalog/domain"
	"github.com/shopspring/decimal"
)

// ProductRepo serves a fixed product list. It is read-only after
// construction and safe for concurrent use.
type ProductRepo struct {
	products []domain.Product
	byID     map[string]int
}

func NewProductRepo(products []domain.Product) *ProductRepo {
	r := &ProductRepo{
		products: make([]domain.Product, 0, len(products)),
		byID:     make(map[string]int, len(products)),
	}
	for _, p := range products {
		r.byID[p.ID] = len(r.products)
		r.products = append(r.products, p.Clone())
	}
	return r
}

// NewSeededProductRepo returns a repo holding the storefront's sample catalog.
func NewSeededProductRepo() *ProductRepo {
	return NewProductRepo(SampleProducts())
}

func (r *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p.Clone())
	}
	return out, nil
}

func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, err
	}
	idx, ok := r.byID[id]
	if !ok {
		return domain.Product{}, app.ErrNotFound
	}
	return r.products[idx].Clone(), nil
}

const placeholderImage = "/api/placeholder/400/500"

func SampleProducts() []domain.Product {
	return []domain.Product{
		{
			ID:          "1",
			Name:        "Elegant Silk Blouse",
			Price:       decimal.RequireFromString("129.99"),
			Image:       placeholderImage,
			Category:    domain.CategoryWomen,
			Description: "A luxurious silk blouse perfect for both office and evening wear. Made from 100% mulberry silk with a flowing silhouette.",
			Sizes:       []string{"XS", "S", "M", "L", "XL"},
			Colors:      []string{"Ivory", "Navy", "Blush"},
			InStock:     true,
		},
		{
			ID:          "2",
			Name:        "Tailored Wool Coat",
			Price:       decimal.RequireFromString("299.99"),
			Image:       placeholderImage,
			Category:    domain.CategoryWomen,
			Description: "Classic wool coat with modern tailoring. Features a belted waist and premium wool blend for warmth and style.",
			Sizes:       []string{"XS", "S", "M", "L", "XL"},
			Colors:      []string{"Camel", "Black", "Grey"},
			InStock:     true,
		},
		{
			ID:          "3",
			Name:        "Premium Cotton Dress",
			Price:       decimal.RequireFromString("89.99"),
			Image:       placeholderImage,
			Category:    domain.CategoryWomen,
			Description: "Comfortable yet elegant cotton dress with a flattering A-line silhouette. Perfect for casual outings or weekend brunches.",
			Sizes:       []string{"XS", "S", "M", "L", "XL"},
			Colors:      []string{"White", "Navy", "Sage"},
			InStock:     true,
		},
		{
			ID:          "4",
			Name:        "Designer Leather Handbag",
			Price:       decimal.RequireFromString("199.99"),
			Image:       placeholderImage,
			Category:    domain.CategoryAccessories,
			Description: "Handcrafted leather handbag with gold-tone hardware. Features multiple compartments and adjustable strap.",
			Sizes:       []string{"One Size"},
			Colors:      []string{"Black", "Brown", "Burgundy"},
			InStock:     true,
		},
		{
			ID:          "5",
			Name:        "Classic Trench Coat",
			Price:       decimal.RequireFromString("259.99"),
			Image:       placeholderImage,
			Category:    domain.CategoryMen,
			Description: "Timeless trench coat crafted from water-resistant gabardine. Double-breasted design with belt and storm flap.",
			Sizes:       []string{"S", "M", "L", "XL", "XXL"},
			Colors:      []string{"Khaki", "Navy", "Black"},
			InStock:     true,
		},
		{
			ID:          "6",
			Name:        "Merino Wool Sweater",
			Price:       decimal.RequireFromString("149.99"),
			Image:       placeholderImage,
			Category:    domain.CategoryMen,
			Description: "Luxurious merino wool crew neck sweater. Soft, breathable, and naturally odor-resistant.",
			Sizes:       []string{"S", "M", "L", "XL", "XXL"},
			Colors:      []string{"Grey", "Navy", "Burgundy"},
			InStock:     true,
		},
		{
			ID:          "7",
			Name:        "Italian Leather Shoes",
			Price:       decimal.RequireFromString("349.99"),
			Image:       placeholderImage,
			Category:    domain.CategoryMen,
			Description: "Handcrafted Italian leather oxfords with leather sole. Perfect for formal occasions and business wear.",
			Sizes:       []string{"7", "8", "9", "10", "11", "12"},
			Colors:      []string{"Black", "Brown"},
			InStock:     true,
		},
		{
			ID:          "8",
			Name:        "Gold Chain Necklace",
			Price:       decimal.RequireFromString("79.99"),
			Image:       placeholderImage,
			Category:    domain.CategoryAccessories,
			Description: "Delicate gold-plated chain necklace. Adjustable length with secure clasp closure.",
			Sizes:       []string{"One Size"},
			Colors:      []string{"Gold", "Silver", "Rose Gold"},
			InStock:     true,
		},
	}
}
