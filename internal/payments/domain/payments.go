package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

const Currency = "usd"

var (
	ErrInvalidItems     = errors.New("invalid cart items")
	ErrCustomerNotFound = errors.New("customer account not found")
	ErrInvalidCustomer  = errors.New("invalid customer id")
	ErrMissingSessionID = errors.New("missing session id")
)

type LineItem struct {
	Name     string
	Price    decimal.Decimal
	Quantity int
	Image    string
}

// CheckoutRequest is a cart submitted for payment. SiteURL is where the
// shopper came from and may be empty.
type CheckoutRequest struct {
	Items      []LineItem
	CustomerID string
	SiteURL    string
}

type CheckoutResult struct {
	SessionID string
	URL       string
}

type Customer struct {
	ID      string
	Email   string
	Deleted bool
}

type NewCustomer struct {
	Email    string
	Name     string
	Phone    string
	Metadata map[string]string
}

// PricedLine is a line item priced in the smallest currency unit.
type PricedLine struct {
	Name       string
	UnitAmount int64
	Quantity   int64
	Image      string
}

// SessionParams is everything the vendor needs to open a hosted payment page.
type SessionParams struct {
	Lines      []PricedLine
	Currency   string
	SuccessURL string
	CancelURL  string

	// CustomerID is empty for guests, in which case the vendor collects an
	// email and creates the customer.
	CustomerID string

	Metadata map[string]string
}

type Session struct {
	ID            string
	URL           string
	AmountTotal   int64
	Currency      string
	CustomerID    string
	CustomerEmail string
	CustomerName  string
	CustomerPhone string
	PaymentStatus string
	Metadata      map[string]string
}

type SessionDetails struct {
	CustomerID string
	Session    Session
}

// VendorError is a failure reported by the payments vendor. Status is the
// vendor's HTTP status and may be zero.
type VendorError struct {
	Status  int
	Message string
	Err     error
}

func (e *VendorError) Error() string {
	return fmt.Sprintf("payments vendor (%d): %s", e.Status, e.Message)
}

func (e *VendorError) Unwrap() error { return e.Err }
