package app

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dwikikusuma/storefront/internal/order/domain"
	"github.com/shopspring/decimal"
)

const (
	OrderStatusPlaced = "PLACED"

	numberPrefix   = "ORD-"
	numberLength   = 9
	numberAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

	deliveryLeadDays = 7
)

var ErrInvalidOrder = errors.New("invalid order")

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithNumberSource(next func() (string, error)) Option {
	return func(s *Service) { s.nextNumber = next }
}

// Service turns a priced checkout into an order confirmation. Orders are
// not stored anywhere; the caller hands the confirmation to the shopper.
type Service struct {
	now        func() time.Time
	nextNumber func() (string, error)
}

func NewService(opts ...Option) *Service {
	s := &Service{
		now:        time.Now,
		nextNumber: randomNumber,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return domain.Order{}, err
	}
	if len(req.Items) == 0 {
		return domain.Order{}, fmt.Errorf("%w: no items", ErrInvalidOrder)
	}
	if req.ShippingAmount.IsNegative() {
		return domain.Order{}, fmt.Errorf("%w: shipping amount cannot be negative, got %s", ErrInvalidOrder, req.ShippingAmount)
	}
	if req.TaxAmount.IsNegative() {
		return domain.Order{}, fmt.Errorf("%w: tax amount cannot be negative, got %s", ErrInvalidOrder, req.TaxAmount)
	}

	orderItems := make([]domain.OrderItem, 0, len(req.Items))
	subTotal := decimal.Zero
	var count int64

	for i, item := range req.Items {
		if item.Quantity <= 0 {
			return domain.Order{}, fmt.Errorf("%w: item %d: quantity must be positive, got %d", ErrInvalidOrder, i, item.Quantity)
		}
		if item.UnitAmount.IsNegative() {
			return domain.Order{}, fmt.Errorf("%w: item %d: unit amount cannot be negative, got %s", ErrInvalidOrder, i, item.UnitAmount)
		}

		lineTotal := item.UnitAmount.Mul(decimal.NewFromInt(item.Quantity))
		orderItems = append(orderItems, domain.OrderItem{
			ProductID:       item.ProductID,
			Name:            item.Name,
			Size:            item.Size,
			Color:           item.Color,
			UnitAmount:      item.UnitAmount,
			Quantity:        item.Quantity,
			LineTotalAmount: lineTotal,
		})

		subTotal = subTotal.Add(lineTotal)
		count += item.Quantity
	}

	number, err := s.nextNumber()
	if err != nil {
		return domain.Order{}, fmt.Errorf("order number: %w", err)
	}

	placedAt := s.now()
	return domain.Order{
		Number:            number,
		Status:            OrderStatusPlaced,
		Email:             req.Email,
		SubTotalAmount:    subTotal,
		ShippingAmount:    req.ShippingAmount,
		TaxAmount:         req.TaxAmount,
		TotalAmount:       subTotal.Add(req.ShippingAmount).Add(req.TaxAmount),
		ItemCount:         count,
		OrderItems:        orderItems,
		PaymentReference:  req.PaymentReference,
		PlacedAt:          placedAt,
		EstimatedDelivery: placedAt.AddDate(0, 0, deliveryLeadDays),
	}, nil
}

// randomNumber returns ORD- followed by nine upper-case alphanumerics.
func randomNumber() (string, error) {
	return numberFrom(rand.Reader)
}

// numberFrom draws uniformly from numberAlphabet. Bytes at or above the
// largest multiple of the alphabet size are discarded.
func numberFrom(r io.Reader) (string, error) {
	limit := byte(256 / len(numberAlphabet) * len(numberAlphabet))

	out := make([]byte, 0, numberLength)
	buf := make([]byte, numberLength)
	for len(out) < numberLength {
		need := buf[:numberLength-len(out)]
		if _, err := io.ReadFull(r, need); err != nil {
			return "", err
		}
		for _, b := range need {
			if b < limit {
				out = append(out, numberAlphabet[int(b)%len(numberAlphabet)])
			}
		}
	}
	return numberPrefix + string(out), nil
}
