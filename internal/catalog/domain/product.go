package domain

import "github.com/shopspring/decimal"

type Image struct {
	URL    string `json:"url"`
	Label  string `json:"label,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

type Size struct {
	Title string `json:"title,omitempty"`
	Name  string `json:"name,omitempty"`
}

type Variant struct {
	VariantName   string          `json:"variantName,omitempty"`
	Details       string          `json:"details,omitempty"`
	VariantSKU    string          `json:"variantSKU,omitempty"`
	Color         string          `json:"color,omitempty"`
	ColorName     string          `json:"colorName,omitempty"`
	ColorHEX      string          `json:"colorHEX,omitempty"`
	Size          Size            `json:"size"`
	Price         decimal.Decimal `json:"price"`
	Image         *Image          `json:"variantImage,omitempty"`
	StockQuantity int             `json:"stockQuantity"`
}

type Product struct {
	ContentID     int             `json:"id"`
	Title         string          `json:"title"`
	SKU           string          `json:"sku"`
	Slug          string          `json:"slug"`
	Description   string          `json:"description,omitempty"`
	BasePrice     decimal.Decimal `json:"basePrice"`
	Category      string          `json:"category,omitempty"`
	FeaturedImage *Image          `json:"featuredImage,omitempty"`
	Variants      []Variant       `json:"variants"`
}
