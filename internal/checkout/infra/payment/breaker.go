package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	checkoutapp "github.com/dwikikusuma/storefront/internal/checkout/app"
	"github.com/sony/gobreaker"
)

type BreakerSettings struct {
	Timeout     time.Duration
	MaxRequests uint32
	Interval    time.Duration
	OpenFor     time.Duration
	MinRequests uint32
	FailureRate float64
}

func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		Timeout:     5 * time.Second,
		MaxRequests: 5,
		Interval:    10 * time.Second,
		OpenFor:     30 * time.Second,
		MinRequests: 5,
		FailureRate: 0.5,
	}
}

// Breaker guards a gateway with a per-call timeout and a circuit breaker.
// Declined cards are answers, not failures, and do not trip it.
type Breaker struct {
	next    checkoutapp.PaymentGateway
	cb      *gobreaker.CircuitBreaker
	timeout time.Duration
}

func NewBreaker(next checkoutapp.PaymentGateway, st BreakerSettings, log *slog.Logger) *Breaker {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "PaymentGateway",
		MaxRequests: st.MaxRequests,
		Interval:    st.Interval,
		Timeout:     st.OpenFor,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.Requests >= st.MinRequests &&
				float64(counts.TotalFailures)/float64(counts.Requests) >= st.FailureRate
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, checkoutapp.ErrPaymentDeclined) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed",
				slog.String("breaker", name), slog.String("from", from.String()), slog.String("to", to.String()))
		},
	})

	return &Breaker{next: next, cb: cb, timeout: st.Timeout}
}

func (b *Breaker) Charge(ctx context.Context, c checkoutapp.Charge) (checkoutapp.Receipt, error) {
	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	res, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.Charge(ctx, c)
	})
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return checkoutapp.Receipt{}, fmt.Errorf("%w: %v", checkoutapp.ErrPaymentUnavailable, err)
	case errors.Is(err, context.DeadlineExceeded):
		return checkoutapp.Receipt{}, fmt.Errorf("%w: %v", checkoutapp.ErrPaymentUnavailable, err)
	case err != nil:
		return checkoutapp.Receipt{}, err
	}
	return res.(checkoutapp.Receipt), nil
}

func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}
