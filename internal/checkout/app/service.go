package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/dwikikusuma/storefront/internal/checkout/domain"
	"go.uber.org/zap"
)

const (
	fallbackSubmitMessage = "Failed to create checkout session"
	missingURLMessage     = "No checkout URL returned"
	defaultDescriptor     = "Default"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrCheckoutInProgress = errors.New("checkout already in progress")
	ErrMissingSessionID   = errors.New("session id is required")
)

// SubmitError is a failed checkout attempt. Message is safe to show to the
// shopper; the cart is left as it was.
type SubmitError struct {
	Message string
	Err     error
}

func (e *SubmitError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *SubmitError) Unwrap() error { return e.Err }

type Service struct {
	Cart    CartReader
	Creator SessionCreator
	Lookup  SessionLookup

	log      *zap.Logger
	inFlight atomic.Bool
}

func NewService(cart CartReader, creator SessionCreator, lookup SessionLookup, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		Cart:    cart,
		Creator: creator,
		Lookup:  lookup,
		log:     log,
	}
}

// BuildRequest projects cart items into the checkout payload.
func BuildRequest(items []CartItem, customerID string) (domain.Request, error) {
	if len(items) == 0 {
		return domain.Request{}, ErrEmptyCart
	}

	lines := make([]domain.Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, domain.Line{
			Name:     it.ProductTitle + " - " + descriptor(it),
			Price:    it.UnitPrice,
			Quantity: it.Quantity,
			Image:    it.ImageURL,
		})
	}
	return domain.Request{
		Items:      lines,
		CustomerID: strings.TrimSpace(customerID),
	}, nil
}

func descriptor(it CartItem) string {
	for _, s := range []string{it.VariantName, it.Details, it.ColorName, it.Color} {
		if strings.TrimSpace(s) != "" {
			return s
		}
	}
	return defaultDescriptor
}

// Checkout submits the current cart and returns the hosted payment session.
// Only one checkout may run at a time; a concurrent call gets
// ErrCheckoutInProgress. Nothing is retried.
func (s *Service) Checkout(ctx context.Context, customerID string) (domain.Session, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return domain.Session{}, ErrCheckoutInProgress
	}
	defer s.inFlight.Store(false)

	items, err := s.Cart.CartItems(ctx)
	if err != nil {
		return domain.Session{}, fmt.Errorf("read cart: %w", err)
	}

	req, err := BuildRequest(items, customerID)
	if err != nil {
		return domain.Session{}, err
	}

	session, err := s.Creator.CreateSession(ctx, req)
	if err != nil {
		msg := fallbackSubmitMessage
		var epErr *domain.EndpointError
		if errors.As(err, &epErr) && epErr.Message != "" {
			msg = epErr.Message
		}
		s.log.Warn("checkout submission failed", zap.Error(err))
		return domain.Session{}, &SubmitError{Message: msg, Err: err}
	}
	if session.URL == "" {
		return domain.Session{}, &SubmitError{Message: missingURLMessage}
	}

	s.log.Info("checkout session created",
		zap.String("session_id", session.SessionID),
		zap.Int("lines", len(req.Items)),
		zap.Bool("guest", req.CustomerID == ""),
	)
	return session, nil
}

// Complete finishes a successful checkout: the cart is cleared and the
// session is looked up so the caller can remember the customer for later
// checkouts.
func (s *Service) Complete(ctx context.Context, sessionID string) (domain.SessionDetails, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return domain.SessionDetails{}, ErrMissingSessionID
	}

	if err := s.Cart.ClearCart(ctx); err != nil {
		return domain.SessionDetails{}, fmt.Errorf("clear cart: %w", err)
	}

	details, err := s.Lookup.GetSession(ctx, sessionID)
	if err != nil {
		return domain.SessionDetails{}, fmt.Errorf("get session %s: %w", sessionID, err)
	}
	return details, nil
}
