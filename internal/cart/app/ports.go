package app

import (
	"context"

	"github.com/dwikikusuma/storefront/internal/cart/domain"
	"github.com/shopspring/decimal"
)

// CartRepo stores one cart per session. Unknown sessions read as an empty
// cart. Update must apply fn atomically with respect to other calls for
// the same session.
type CartRepo interface {
	Get(ctx context.Context, sessionID string) (domain.Cart, error)
	Update(ctx context.Context, sessionID string, fn func(domain.Cart) domain.Cart) (domain.Cart, error)
}

type ProductReader interface {
	GetProduct(ctx context.Context, productID string) (Product, error)
}

type Product struct {
	ID          string
	Name        string
	Price       decimal.Decimal
	Image       string
	Category    string
	Description string
	Sizes       []string
	Colors      []string
	InStock     bool
}

// Recorder observes applied cart operations.
type Recorder interface {
	CartOperation(op string)
}

type nopRecorder struct{}

func (nopRecorder) CartOperation(string) {}
