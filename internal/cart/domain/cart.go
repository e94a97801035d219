package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

type Image struct {
	URL    string `json:"url"`
	Label  string `json:"label,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// Product is the display snapshot carried by a line item.
type Product struct {
	ContentID     int    `json:"contentId,omitempty"`
	Title         string `json:"title"`
	SKU           string `json:"sku"`
	Slug          string `json:"slug,omitempty"`
	FeaturedImage *Image `json:"featuredImage,omitempty"`
}

type Variant struct {
	VariantName   string          `json:"variantName,omitempty"`
	Details       string          `json:"details,omitempty"`
	VariantSKU    string          `json:"variantSKU,omitempty"`
	Color         string          `json:"color,omitempty"`
	ColorName     string          `json:"colorName,omitempty"`
	ColorHEX      string          `json:"colorHEX,omitempty"`
	Size          string          `json:"size,omitempty"`
	Price         decimal.Decimal `json:"price"`
	Image         *Image          `json:"image,omitempty"`
	StockQuantity int             `json:"stockQuantity"`
}

type LineItem struct {
	VariantKey string          `json:"variantKey"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	Product    Product         `json:"product"`
	Variant    Variant         `json:"variant"`
}

func (li LineItem) LineTotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// VariantKey is the variant's own SKU, or "<product sku>-<color>" when the
// variant has none. A variant without a color falls back to "default".
func VariantKey(p Product, v Variant) string {
	if sku := strings.TrimSpace(v.VariantSKU); sku != "" {
		return sku
	}
	color := strings.TrimSpace(v.Color)
	if color == "" {
		color = "default"
	}
	return p.SKU + "-" + color
}

func Total(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal())
	}
	return total
}

func ItemCount(items []LineItem) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}
