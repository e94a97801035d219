package domain

import "fmt"

// LowStockThreshold is the quantity at or below which the remaining count is shown.
const LowStockThreshold = 5

func IsInStock(quantity int) bool {
	return quantity > 0
}

func StockMessage(quantity int) string {
	switch {
	case quantity <= 0:
		return "Out of stock"
	case quantity <= LowStockThreshold:
		return fmt.Sprintf("Only %d left in stock", quantity)
	default:
		return "In stock"
	}
}
