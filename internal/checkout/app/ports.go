package app

import (
	"context"

	"github.com/dwikikusuma/storefront/internal/checkout/domain"
	"github.com/shopspring/decimal"
)

type CartReader interface {
	CartItems(ctx context.Context) ([]CartItem, error)
	ClearCart(ctx context.Context) error
}

// CartItem is the part of a cart line checkout needs to describe it.
type CartItem struct {
	ProductTitle string
	VariantName  string
	Details      string
	ColorName    string
	Color        string
	UnitPrice    decimal.Decimal
	Quantity     int
	ImageURL     string
}

type SessionCreator interface {
	CreateSession(ctx context.Context, req domain.Request) (domain.Session, error)
}

type SessionLookup interface {
	GetSession(ctx context.Context, sessionID string) (domain.SessionDetails, error)
}
