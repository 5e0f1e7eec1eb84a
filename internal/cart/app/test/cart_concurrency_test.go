package app_test

import (
	"context"
	"sync"
	"testing"

	"github.com/dwikikusuma/storefront/internal/cart/app"
	"github.com/dwikikusuma/storefront/internal/cart/infra/memory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

type staticProducts map[string]app.Product

func (s staticProducts) GetProduct(ctx context.Context, id string) (app.Product, error) {
	p, ok := s[id]
	if !ok {
		return app.Product{}, app.ErrProductNotFound
	}
	return p, nil
}

func newTestService(t *testing.T, products staticProducts) *app.Service {
	t.Helper()
	return app.NewService(memory.NewCartRepo(0), products)
}

func TestCart_ConcurrentAddItemIncrement(t *testing.T) {
	ctx := context.Background()
	productID := uuid.NewString()
	svc := newTestService(t, staticProducts{
		productID: {ID: productID, Name: "Merino Wool Sweater", Price: decimal.RequireFromString("149.99"),
			Sizes: []string{"M"}, Colors: []string{"Grey"}, InStock: true},
	})

	sessionID := uuid.NewString()

	const N = 100
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < N; i++ {
		g.Go(func() error {
			_, err := svc.AddItem(gctx, sessionID, productID, "M", "Grey")
			return err
		})
	}
	require.NoError(t, g.Wait(), "concurrent AddItem failed")

	cart, err := svc.GetCart(ctx, sessionID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.Equal(t, N, cart.Items[0].Quantity)
	require.Equal(t, N, cart.ItemCount)
	require.True(t, cart.Total.Equal(decimal.RequireFromString("14999")), "total = %s", cart.Total)
}

func TestCart_SessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, staticProducts{
		"8": {ID: "8", Price: decimal.RequireFromString("79.99"), Sizes: []string{"One Size"},
			Colors: []string{"Gold", "Silver"}, InStock: true},
	})

	const sessions = 20
	ids := make([]string, sessions)
	for i := range ids {
		ids[i] = uuid.NewString()
	}

	var mu sync.Mutex
	counts := make(map[string]int)

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			for range i + 1 {
				if _, err := svc.AddItem(gctx, id, "8", "One Size", "Gold"); err != nil {
					return err
				}
			}
			c, err := svc.GetCart(gctx, id)
			if err != nil {
				return err
			}
			mu.Lock()
			counts[id] = c.ItemCount
			mu.Unlock()
			return nil
		})
	}
	require.NoError(t, g.Wait())

	for i, id := range ids {
		require.Equal(t, i+1, counts[id], "session %d", i)
	}
}
