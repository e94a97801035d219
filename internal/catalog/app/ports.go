package app

import (
	"context"

	"github.com/dwikikusuma/storefront/internal/catalog/domain"
)

type ProductRepo interface {
	// List returns at most limit products in catalog order, and the number
	// of products in the whole catalog.
	List(ctx context.Context, limit int) ([]domain.Product, int, error)
	GetBySlug(ctx context.Context, slug string) (domain.Product, error)
}
