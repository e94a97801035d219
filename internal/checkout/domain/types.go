package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Line is one entry of the checkout payload.
type Line struct {
	Name     string
	Price    decimal.Decimal
	Quantity int
	Image    string
}

// Request is what the checkout endpoint accepts. An empty CustomerID means
// guest checkout.
type Request struct {
	Items      []Line
	CustomerID string
}

type Session struct {
	SessionID string
	URL       string
}

type SessionSummary struct {
	ID            string
	AmountTotal   int64
	Currency      string
	CustomerEmail string
	PaymentStatus string
	Metadata      map[string]string
}

type SessionDetails struct {
	CustomerID string
	Session    SessionSummary
}

// EndpointError is a non-2xx reply from the checkout endpoint. Message is the
// endpoint's {"error"} value and may be empty.
type EndpointError struct {
	Status  int
	Message string
}

func (e *EndpointError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("checkout endpoint returned %d", e.Status)
	}
	return fmt.Sprintf("checkout endpoint returned %d: %s", e.Status, e.Message)
}
