package app

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dwikikusuma/storefront/internal/cart/domain"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrProductNotFound   = errors.New("product not found")
	ErrSelectionRequired = errors.New("please choose both size and color before adding to cart")
	ErrOutOfStock        = errors.New("product is out of stock")
)

const (
	OpAdd            = "add"
	OpRemove         = "remove"
	OpUpdateQuantity = "update_quantity"
	OpClear          = "clear"
)

// MaxQuantity caps a single cart line.
const MaxQuantity = 999

type Option func(*Service)

func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.rec = r
		}
	}
}

// Service is the only writer of carts. Every mutation goes through
// dispatch, which reduces the session's cart inside the repo's Update.
type Service struct {
	repo     CartRepo
	products ProductReader
	rec      Recorder
}

func NewService(repo CartRepo, products ProductReader, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		products: products,
		rec:      nopRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) GetCart(ctx context.Context, sessionID string) (domain.Cart, error) {
	if strings.TrimSpace(sessionID) == "" {
		return domain.Cart{}, ErrInvalidInput
	}
	return s.repo.Get(ctx, sessionID)
}

// AddItem adds one unit of the product in the chosen size and color.
// A missing selection is rejected before anything is read or written.
func (s *Service) AddItem(ctx context.Context, sessionID, productID, size, color string) (domain.Cart, error) {
	size = strings.TrimSpace(size)
	color = strings.TrimSpace(color)
	if size == "" || color == "" {
		return domain.Cart{}, ErrSelectionRequired
	}
	if strings.TrimSpace(productID) == "" {
		return domain.Cart{}, ErrInvalidInput
	}

	p, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return domain.Cart{}, err
	}
	if !p.InStock {
		return domain.Cart{}, ErrOutOfStock
	}
	if !slices.Contains(p.Sizes, size) {
		return domain.Cart{}, fmt.Errorf("%w: size %q not offered for product %s", ErrInvalidInput, size, p.ID)
	}
	if !slices.Contains(p.Colors, color) {
		return domain.Cart{}, fmt.Errorf("%w: color %q not offered for product %s", ErrInvalidInput, color, p.ID)
	}

	cur, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return domain.Cart{}, err
	}
	if line, ok := cur.Find(domain.Key{ProductID: p.ID, Size: size, Color: color}); ok && line.Quantity >= MaxQuantity {
		return domain.Cart{}, fmt.Errorf("%w: at most %d of one item per order", ErrInvalidInput, MaxQuantity)
	}

	return s.dispatch(ctx, sessionID, OpAdd, domain.AddItem{Item: domain.LineItem{
		ProductID:     p.ID,
		Name:          p.Name,
		Price:         p.Price,
		Image:         p.Image,
		Category:      p.Category,
		Description:   p.Description,
		Sizes:         slices.Clone(p.Sizes),
		Colors:        slices.Clone(p.Colors),
		InStock:       p.InStock,
		SelectedSize:  size,
		SelectedColor: color,
	}})
}

// RemoveItem drops the line named by key, in Key.String form.
func (s *Service) RemoveItem(ctx context.Context, sessionID, key string) (domain.Cart, error) {
	if strings.TrimSpace(key) == "" {
		return domain.Cart{}, ErrInvalidInput
	}
	return s.dispatch(ctx, sessionID, OpRemove, domain.RemoveItem{Key: domain.ParseKey(key)})
}

// RemoveItems drops every named line in one update, so a concurrent add
// to the same session either lands before all removals or after them.
func (s *Service) RemoveItems(ctx context.Context, sessionID string, keys []string) (domain.Cart, error) {
	actions := make([]domain.Action, 0, len(keys))
	for _, key := range keys {
		if strings.TrimSpace(key) == "" {
			return domain.Cart{}, ErrInvalidInput
		}
		actions = append(actions, domain.RemoveItem{Key: domain.ParseKey(key)})
	}
	return s.dispatch(ctx, sessionID, OpRemove, actions...)
}

// UpdateQuantity sets the quantity of every line of productID. Quantities
// at or below zero remove those lines.
func (s *Service) UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (domain.Cart, error) {
	if strings.TrimSpace(productID) == "" {
		return domain.Cart{}, ErrInvalidInput
	}
	if err := checkQuantity(quantity); err != nil {
		return domain.Cart{}, err
	}
	return s.dispatch(ctx, sessionID, OpUpdateQuantity, domain.UpdateQuantity{ProductID: productID, Quantity: quantity})
}

// UpdateLineQuantity is UpdateQuantity restricted to the single line named by key.
func (s *Service) UpdateLineQuantity(ctx context.Context, sessionID, key string, quantity int) (domain.Cart, error) {
	if strings.TrimSpace(key) == "" {
		return domain.Cart{}, ErrInvalidInput
	}
	if err := checkQuantity(quantity); err != nil {
		return domain.Cart{}, err
	}
	return s.dispatch(ctx, sessionID, OpUpdateQuantity, domain.UpdateLineQuantity{Key: domain.ParseKey(key), Quantity: quantity})
}

func (s *Service) ClearCart(ctx context.Context, sessionID string) (domain.Cart, error) {
	return s.dispatch(ctx, sessionID, OpClear, domain.Clear{})
}

func (s *Service) dispatch(ctx context.Context, sessionID, op string, actions ...domain.Action) (domain.Cart, error) {
	if strings.TrimSpace(sessionID) == "" {
		return domain.Cart{}, ErrInvalidInput
	}

	c, err := s.repo.Update(ctx, sessionID, func(c domain.Cart) domain.Cart {
		for _, a := range actions {
			c = domain.Reduce(c, a)
		}
		return c
	})
	if err != nil {
		return domain.Cart{}, fmt.Errorf("cart %s: %w", op, err)
	}

	s.rec.CartOperation(op)
	return c, nil
}

func checkQuantity(q int) error {
	if q > MaxQuantity {
		return fmt.Errorf("%w: quantity %d exceeds %d", ErrInvalidInput, q, MaxQuantity)
	}
	return nil
}
