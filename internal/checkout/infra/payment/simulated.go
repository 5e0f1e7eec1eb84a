package payment

import (
	"context"
	"time"

	checkoutapp "github.com/dwikikusuma/storefront/internal/checkout/app"
	"github.com/google/uuid"
)

// Simulated stands in for a card processor. Every charge waits Delay and
// is then approved unless Decline says otherwise.
type Simulated struct {
	Delay   time.Duration
	Decline func(checkoutapp.Charge) bool
}

func NewSimulated(delay time.Duration) *Simulated {
	return &Simulated{Delay: delay}
}

func (s *Simulated) Charge(ctx context.Context, c checkoutapp.Charge) (checkoutapp.Receipt, error) {
	if s.Delay > 0 {
		t := time.NewTimer(s.Delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return checkoutapp.Receipt{}, ctx.Err()
		case <-t.C:
		}
	} else if err := ctx.Err(); err != nil {
		return checkoutapp.Receipt{}, err
	}

	if !c.Amount.IsPositive() {
		return checkoutapp.Receipt{}, checkoutapp.ErrPaymentDeclined
	}
	if s.Decline != nil && s.Decline(c) {
		return checkoutapp.Receipt{}, checkoutapp.ErrPaymentDeclined
	}

	return checkoutapp.Receipt{Reference: "pay_" + uuid.NewString()}, nil
}
