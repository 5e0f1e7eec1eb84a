package adapter

import (
	"context"

	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	checkoutapp "github.com/dwikikusuma/storefront/internal/checkout/app"
)

type CartServiceReader struct {
	svc *cartapp.Service
}

func NewCartServiceReader(svc *cartapp.Service) *CartServiceReader {
	return &CartServiceReader{svc: svc}
}

func (r *CartServiceReader) GetCart(ctx context.Context, sessionID string) ([]checkoutapp.CartItem, error) {
	cart, err := r.svc.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	items := make([]checkoutapp.CartItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		items = append(items, checkoutapp.CartItem{
			Key:       it.Key().String(),
			ProductID: it.ProductID,
			Size:      it.SelectedSize,
			Color:     it.SelectedColor,
			Quantity:  int64(it.Quantity),
		})
	}
	return items, nil
}

func (r *CartServiceReader) RemoveLines(ctx context.Context, sessionID string, keys []string) error {
	_, err := r.svc.RemoveItems(ctx, sessionID, keys)
	return err
}
