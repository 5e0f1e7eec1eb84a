package app

import (
	"context"

	orderdomain "github.com/dwikikusuma/storefront/internal/order/domain"
	"github.com/shopspring/decimal"
)

type CartItem struct {
	Key       string
	ProductID string
	Size      string
	Color     string
	Quantity  int64
}

// CartStore is the checkout's view of the shopper's cart. RemoveLines
// drops the named lines in a single atomic step.
type CartStore interface {
	GetCart(ctx context.Context, sessionID string) ([]CartItem, error)
	RemoveLines(ctx context.Context, sessionID string, keys []string) error
}

type Product struct {
	ID    string
	Name  string
	Price decimal.Decimal
}

type CatalogReader interface {
	GetProduct(ctx context.Context, productID string) (Product, error)
}

type Charge struct {
	Amount    decimal.Decimal
	Currency  string
	Email     string
	CardName  string
	CardLast4 string
}

type Receipt struct {
	Reference string
}

type PaymentGateway interface {
	Charge(ctx context.Context, c Charge) (Receipt, error)
}

type OrderCreator interface {
	CreateOrder(ctx context.Context, req orderdomain.CreateOrderRequest) (orderdomain.Order, error)
}

// Recorder observes checkout outcomes.
type Recorder interface {
	OrderPlaced()
	PaymentFailed()
}

type nopRecorder struct{}

func (nopRecorder) OrderPlaced()   {}
func (nopRecorder) PaymentFailed() {}
