package httpapi

import (
	"errors"
	"net/http"

	"github.com/dwikikusuma/storefront/internal/payments/domain"
)

// httpStatusFromError maps a payments error to the status and message the
// client sees. fallback is used for errors nothing else claims.
func httpStatusFromError(err error, fallback string) (int, string) {
	var vErr *domain.VendorError

	switch {
	case errors.Is(err, domain.ErrInvalidItems):
		return http.StatusBadRequest, "Invalid cart items"
	case errors.Is(err, domain.ErrCustomerNotFound):
		return http.StatusNotFound, "Customer account not found"
	case errors.Is(err, domain.ErrInvalidCustomer):
		return http.StatusBadRequest, "Invalid customer ID"
	case errors.Is(err, domain.ErrMissingSessionID):
		return http.StatusBadRequest, "Missing session_id parameter"
	case errors.As(err, &vErr):
		status := vErr.Status
		if status == 0 {
			status = http.StatusInternalServerError
		}
		return status, vErr.Message
	default:
		return http.StatusInternalServerError, fallback
	}
}
