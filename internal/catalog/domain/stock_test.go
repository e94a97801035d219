package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStockMessage(t *testing.T) {
	cases := []struct {
		qty  int
		want string
	}{
		{-1, "Out of stock"},
		{0, "Out of stock"},
		{1, "Only 1 left in stock"},
		{5, "Only 5 left in stock"},
		{6, "In stock"},
		{120, "In stock"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, StockMessage(tc.qty), "qty %d", tc.qty)
		assert.Equal(t, tc.qty > 0, IsInStock(tc.qty), "qty %d", tc.qty)
	}
}
