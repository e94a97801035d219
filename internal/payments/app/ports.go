package app

import (
	"context"

	"github.com/dwikikusuma/storefront/internal/payments/domain"
)

// Gateway is the payments vendor. Vendor-side failures are returned as
// *domain.VendorError.
type Gateway interface {
	GetCustomer(ctx context.Context, id string) (domain.Customer, error)
	FindCustomerByEmail(ctx context.Context, email string) (domain.Customer, bool, error)
	CreateCustomer(ctx context.Context, c domain.NewCustomer) (domain.Customer, error)

	CreateSession(ctx context.Context, p domain.SessionParams) (domain.Session, error)
	GetSession(ctx context.Context, id string) (domain.Session, error)
}
