package adapter

import (
	"context"
	"testing"
	"time"

	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	cartadapter "github.com/dwikikusuma/storefront/internal/cart/infra/adapter"
	cartmem "github.com/dwikikusuma/storefront/internal/cart/infra/memory"
	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
	catalogmem "github.com/dwikikusuma/storefront/internal/catalog/infra/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartServiceReader(t *testing.T) {
	ctx := context.Background()
	catalog := catalogapp.NewService(catalogmem.NewSeededProductRepo())
	cart := cartapp.NewService(cartmem.NewCartRepo(time.Hour), cartadapter.NewCatalogServiceReader(catalog))

	_, err := cart.AddItem(ctx, "s", "8", "One Size", "Rose Gold")
	require.NoError(t, err)
	_, err = cart.AddItem(ctx, "s", "8", "One Size", "Rose Gold")
	require.NoError(t, err)

	r := NewCartServiceReader(cart)
	items, err := r.GetCart(ctx, "s")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "8-One Size-Rose Gold", items[0].Key)
	assert.Equal(t, int64(2), items[0].Quantity)

	_, err = cart.AddItem(ctx, "s", "8", "One Size", "Gold")
	require.NoError(t, err)

	require.NoError(t, r.RemoveLines(ctx, "s", []string{"8-One Size-Rose Gold"}))
	items, err = r.GetCart(ctx, "s")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "8-One Size-Gold", items[0].Key)
}

func TestCatalogServiceReader(t *testing.T) {
	r := NewCatalogServiceReader(catalogapp.NewService(catalogmem.NewSeededProductRepo()))

	p, err := r.GetProduct(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, "Tailored Wool Coat", p.Name)
	assert.Equal(t, "299.99", p.Price.StringFixed(2))

	_, err = r.GetProduct(context.Background(), "404")
	require.ErrorIs(t, err, catalogapp.ErrNotFound)
}
