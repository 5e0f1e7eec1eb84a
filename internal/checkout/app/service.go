package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dwikikusuma/storefront/internal/checkout/domain"
	orderdomain "github.com/dwikikusuma/storefront/internal/order/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const Currency = "USD"

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrPaymentDeclined    = errors.New("payment declined")
	ErrPaymentUnavailable = errors.New("payment service unavailable")
)

type Option func(*Service)

func WithLogger(log *slog.Logger) Option {
	return func(s *Service) { s.log = log }
}

func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.rec = r
		}
	}
}

// WithClock sets the time source used to judge card expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

type Service struct {
	Cart     CartStore
	Catalog  CatalogReader
	Payments PaymentGateway
	Orders   OrderCreator

	maxConcurrent int
	log           *slog.Logger
	rec           Recorder
	now           func() time.Time
	form          *formValidator
}

func NewService(cart CartStore, catalog CatalogReader, payments PaymentGateway, orders OrderCreator, maxConcurrent int, opts ...Option) *Service {
	if maxConcurrent <= 0 {
		maxConcurrent = 10
	}

	s := &Service{
		Cart:          cart,
		Catalog:       catalog,
		Payments:      payments,
		Orders:        orders,
		maxConcurrent: maxConcurrent,
		log:           slog.Default(),
		rec:           nopRecorder{},
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.form = newFormValidator(s.now)
	return s
}

// Quote prices the session's cart against the catalog. An empty cart
// yields ErrEmptyCart.
func (s *Service) Quote(ctx context.Context, sessionID string) (domain.Quote, error) {
	items, err := s.Cart.GetCart(ctx, sessionID)
	if err != nil {
		return domain.Quote{}, err
	}

	if len(items) == 0 {
		return domain.Quote{}, ErrEmptyCart
	}

	lines := make([]domain.QuoteLine, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for idx := range items {
		g.Go(func() error {
			it := items[idx]
			if it.Quantity <= 0 {
				return fmt.Errorf("quantity must be greater than zero: %d", it.Quantity)
			}

			product, err := s.Catalog.GetProduct(gctx, it.ProductID)
			if err != nil {
				return fmt.Errorf("failed to get product %s: %w", it.ProductID, err)
			}

			lines[idx] = domain.QuoteLine{
				Key:       it.Key,
				ProductID: product.ID,
				Name:      product.Name,
				Size:      it.Size,
				Color:     it.Color,
				Quantity:  it.Quantity,
				UnitPrice: product.Price,
				LineTotal: product.Price.Mul(decimal.NewFromInt(it.Quantity)),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.Quote{}, err
	}

	subtotal := decimal.Zero
	var count int64
	for _, line := range lines {
		subtotal = subtotal.Add(line.LineTotal)
		count += line.Quantity
	}

	return domain.Quote{
		Lines:     lines,
		ItemCount: count,
		Summary:   domain.Summarize(subtotal),
	}, nil
}

// PlaceOrder charges the grand total for the cart as quoted and, once the
// charge succeeds, removes exactly the quoted lines. An empty cart is
// reported before the form is looked at. A failed charge leaves the cart
// as is.
func (s *Service) PlaceOrder(ctx context.Context, sessionID string, form domain.Form) (orderdomain.Order, error) {
	quote, err := s.Quote(ctx, sessionID)
	if err != nil {
		return orderdomain.Order{}, err
	}

	form.Normalize()
	if err := s.form.Validate(form); err != nil {
		return orderdomain.Order{}, err
	}

	tax := quote.Tax.Round(2)
	amount := quote.Subtotal.Add(quote.Shipping).Add(tax)

	log := s.log.With(slog.String("session", sessionID), slog.String("amount", amount.StringFixed(2)))
	log.Info("charging payment")

	receipt, err := s.Payments.Charge(ctx, Charge{
		Amount:    amount,
		Currency:  Currency,
		Email:     form.Shipping.Email,
		CardName:  form.Payment.CardName,
		CardLast4: form.Payment.Last4(),
	})
	if err != nil {
		s.rec.PaymentFailed()
		log.Warn("payment failed", slog.Any("err", err))
		return orderdomain.Order{}, fmt.Errorf("charge: %w", err)
	}

	// Payment is taken; finish even if the caller has gone away.
	ctx = context.WithoutCancel(ctx)

	req := orderdomain.CreateOrderRequest{
		Email:            form.Shipping.Email,
		ShippingAmount:   quote.Shipping,
		TaxAmount:        tax,
		PaymentReference: receipt.Reference,
		Items:            make([]orderdomain.OrderItemRequest, 0, len(quote.Lines)),
	}
	for _, line := range quote.Lines {
		req.Items = append(req.Items, orderdomain.OrderItemRequest{
			ProductID:  line.ProductID,
			Name:       line.Name,
			Size:       line.Size,
			Color:      line.Color,
			UnitAmount: line.UnitPrice,
			Quantity:   line.Quantity,
		})
	}

	order, err := s.Orders.CreateOrder(ctx, req)
	if err != nil {
		return orderdomain.Order{}, fmt.Errorf("create order: %w", err)
	}

	// Lines added while the charge was in flight were not paid for and stay.
	keys := make([]string, 0, len(quote.Lines))
	for _, line := range quote.Lines {
		keys = append(keys, line.Key)
	}
	if err := s.Cart.RemoveLines(ctx, sessionID, keys); err != nil {
		log.Error("remove paid lines failed", slog.String("order", order.Number), slog.Any("err", err))
		return orderdomain.Order{}, fmt.Errorf("remove paid lines: %w", err)
	}

	s.rec.OrderPlaced()
	log.Info("order placed", slog.String("order", order.Number), slog.String("payment_ref", receipt.Reference))
	return order, nil
}
