package app

import (
	"context"
	"errors"
	"strings"

	"github.com/dwikikusuma/storefront/internal/catalog/domain"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

const (
	featuredCount   = 4
	relatedLimit    = 4
	newArrivalsFrom = 2
	newArrivalsTo   = 6
)

type Service struct {
	repo ProductRepo
}

func NewService(repo ProductRepo) *Service {
	return &Service{
		repo: repo,
	}
}

func (s *Service) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Product{}, ErrInvalidInput
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) ProductsByCategory(ctx context.Context, category domain.Category) ([]domain.Product, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Product, 0, len(all))
	for _, p := range all {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Service) FeaturedProducts(ctx context.Context) ([]domain.Product, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return window(all, 0, featuredCount), nil
}

func (s *Service) NewArrivals(ctx context.Context) ([]domain.Product, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return window(all, newArrivalsFrom, newArrivalsTo), nil
}

// Search scans the whole catalog. A blank query matches nothing.
func (s *Service) Search(ctx context.Context, query string) ([]domain.Product, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []domain.Product{}, nil
	}

	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Product, 0)
	for _, p := range all {
		if p.MatchesQuery(q) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Service) Browse(ctx context.Context, f domain.Filter) ([]domain.Product, error) {
	if !f.Category.Valid() || !f.Sort.Valid() {
		return nil, ErrInvalidInput
	}
	if f.MinPrice.IsNegative() || f.MaxPrice.LessThan(f.MinPrice) {
		return nil, ErrInvalidInput
	}

	var (
		base []domain.Product
		err  error
	)
	if f.Category == domain.CategorySale {
		base, err = s.repo.List(ctx)
	} else {
		base, err = s.ProductsByCategory(ctx, f.Category)
	}
	if err != nil {
		return nil, err
	}

	out := make([]domain.Product, 0, len(base))
	for _, p := range base {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	domain.SortProducts(out, f.Sort)
	return out, nil
}

type Facets struct {
	Sizes  []string
	Colors []string
}

// Facets returns every size and color offered anywhere, in first-seen order.
func (s *Service) Facets(ctx context.Context) (Facets, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return Facets{}, err
	}

	var (
		f         Facets
		seenSize  = map[string]struct{}{}
		seenColor = map[string]struct{}{}
	)
	for _, p := range all {
		for _, size := range p.Sizes {
			if _, ok := seenSize[size]; !ok {
				seenSize[size] = struct{}{}
				f.Sizes = append(f.Sizes, size)
			}
		}
		for _, color := range p.Colors {
			if _, ok := seenColor[color]; !ok {
				seenColor[color] = struct{}{}
				f.Colors = append(f.Colors, color)
			}
		}
	}
	return f, nil
}

// RelatedProducts lists up to four other products from the same category.
func (s *Service) RelatedProducts(ctx context.Context, id string) ([]domain.Product, error) {
	p, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	sameCategory, err := s.ProductsByCategory(ctx, p.Category)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Product, 0, relatedLimit)
	for _, other := range sameCategory {
		if other.ID == p.ID {
			continue
		}
		out = append(out, other)
		if len(out) == relatedLimit {
			break
		}
	}
	return out, nil
}

func window(products []domain.Product, from, to int) []domain.Product {
	if from > len(products) {
		from = len(products)
	}
	if to > len(products) {
		to = len(products)
	}
	out := make([]domain.Product, to-from)
	copy(out, products[from:to])
	return out
}
