package adapter

import (
	"context"

	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	checkoutapp "github.com/dwikikusuma/storefront/internal/checkout/app"
)

type CartStoreReader struct {
	store *cartapp.Store
}

func NewCartStoreReader(store *cartapp.Store) *CartStoreReader {
	return &CartStoreReader{store: store}
}

func (r *CartStoreReader) CartItems(_ context.Context) ([]checkoutapp.CartItem, error) {
	lines := r.store.Items()

	items := make([]checkoutapp.CartItem, 0, len(lines))
	for _, it := range lines {
		img := ""
		switch {
		case it.Variant.Image != nil && it.Variant.Image.URL != "":
			img = it.Variant.Image.URL
		case it.Product.FeaturedImage != nil:
			img = it.Product.FeaturedImage.URL
		}

		items = append(items, checkoutapp.CartItem{
			ProductTitle: it.Product.Title,
			VariantName:  it.Variant.VariantName,
			Details:      it.Variant.Details,
			ColorName:    it.Variant.ColorName,
			Color:        it.Variant.Color,
			UnitPrice:    it.UnitPrice,
			Quantity:     it.Quantity,
			ImageURL:     img,
		})
	}
	return items, nil
}

func (r *CartStoreReader) ClearCart(ctx context.Context) error {
	return r.store.Clear(ctx)
}
