package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestVariantKey(t *testing.T) {
	p := Product{Title: "Tee", SKU: "1001"}

	t.Run("explicit sku wins", func(t *testing.T) {
		assert.Equal(t, "TEE-RED-M", VariantKey(p, Variant{VariantSKU: "TEE-RED-M", Color: "red"}))
	})

	t.Run("no sku -> sku-color", func(t *testing.T) {
		assert.Equal(t, "1001-red", VariantKey(p, Variant{Color: "red"}))
	})

	t.Run("no sku no color -> sku-default", func(t *testing.T) {
		assert.Equal(t, "1001-default", VariantKey(p, Variant{VariantSKU: "  "}))
	})
}

func TestTotals(t *testing.T) {
	items := []LineItem{
		{VariantKey: "sku-A", Quantity: 2, UnitPrice: decimal.RequireFromString("10.00")},
		{VariantKey: "sku-B", Quantity: 1, UnitPrice: decimal.RequireFromString("25.00")},
	}

	assert.Equal(t, 3, ItemCount(items))
	assert.True(t, Total(items).Equal(decimal.RequireFromString("45.00")), "total = %s", Total(items))
}

func TestTotalsEmpty(t *testing.T) {
	assert.Equal(t, 0, ItemCount(nil))
	assert.True(t, Total(nil).IsZero())
}
