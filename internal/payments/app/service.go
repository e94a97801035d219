package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/dwikikusuma/storefront/internal/payments/domain"
	"github.com/dwikikusuma/storefront/pkg/money"
	"go.uber.org/zap"
)

const (
	successPath = "/checkout/success?session_id={CHECKOUT_SESSION_ID}"
	cancelPath  = "/checkout/cancel"

	guestCheckoutSource = "guest_checkout"
)

type Service struct {
	gw      Gateway
	siteURL string
	log     *zap.Logger
}

func NewService(gw Gateway, siteURL string, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		gw:      gw,
		siteURL: strings.TrimRight(siteURL, "/"),
		log:     log,
	}
}

type orderItem struct {
	Name     string      `json:"name"`
	Quantity int         `json:"quantity"`
	Price    json.Number `json:"price"`
}

func (s *Service) CreateCheckoutSession(ctx context.Context, req domain.CheckoutRequest) (domain.CheckoutResult, error) {
	if err := validateItems(req.Items); err != nil {
		return domain.CheckoutResult{}, err
	}

	customerID := strings.TrimSpace(req.CustomerID)
	if customerID != "" {
		c, err := s.gw.GetCustomer(ctx, customerID)
		if err != nil {
			s.log.Warn("customer lookup failed", zap.String("customer_id", customerID), zap.Error(err))
			return domain.CheckoutResult{}, fmt.Errorf("%w: %w", domain.ErrInvalidCustomer, err)
		}
		if c.Deleted {
			s.log.Warn("customer deleted", zap.String("customer_id", customerID))
			return domain.CheckoutResult{}, domain.ErrCustomerNotFound
		}
	}

	site := strings.TrimRight(strings.TrimSpace(req.SiteURL), "/")
	if site == "" {
		site = s.siteURL
	}

	params, err := BuildSessionParams(req.Items, customerID, site)
	if err != nil {
		return domain.CheckoutResult{}, err
	}

	session, err := s.gw.CreateSession(ctx, params)
	if err != nil {
		return domain.CheckoutResult{}, fmt.Errorf("create session: %w", err)
	}

	s.log.Info("checkout session created",
		zap.String("session_id", session.ID),
		zap.Bool("guest", customerID == ""),
		zap.Int("lines", len(params.Lines)),
	)
	return domain.CheckoutResult{SessionID: session.ID, URL: session.URL}, nil
}

func validateItems(items []domain.LineItem) error {
	if len(items) == 0 {
		return domain.ErrInvalidItems
	}
	for i, it := range items {
		if it.Quantity < 1 {
			return fmt.Errorf("%w: item %d: quantity must be positive, got %d", domain.ErrInvalidItems, i, it.Quantity)
		}
		if it.Price.IsNegative() {
			return fmt.Errorf("%w: item %d: price cannot be negative, got %s", domain.ErrInvalidItems, i, it.Price)
		}
	}
	return nil
}

// BuildSessionParams prices items in cents and fills in the redirect URLs and
// order metadata for a hosted payment session.
func BuildSessionParams(items []domain.LineItem, customerID, siteURL string) (domain.SessionParams, error) {
	lines := make([]domain.PricedLine, 0, len(items))
	order := make([]orderItem, 0, len(items))
	for _, it := range items {
		lines = append(lines, domain.PricedLine{
			Name:       it.Name,
			UnitAmount: money.ToCents(it.Price),
			Quantity:   int64(it.Quantity),
			Image:      it.Image,
		})
		order = append(order, orderItem{
			Name:     it.Name,
			Quantity: it.Quantity,
			Price:    json.Number(it.Price.String()),
		})
	}

	orderJSON, err := json.Marshal(order)
	if err != nil {
		return domain.SessionParams{}, fmt.Errorf("encode order items: %w", err)
	}

	return domain.SessionParams{
		Lines:      lines,
		Currency:   domain.Currency,
		SuccessURL: siteURL + successPath,
		CancelURL:  siteURL + cancelPath,
		CustomerID: customerID,
		Metadata: map[string]string{
			"cartItemCount": strconv.Itoa(len(items)),
			"isGuest":       strconv.FormatBool(customerID == ""),
			"orderItems":    string(orderJSON),
		},
	}, nil
}

// SessionDetails returns a finished session and the customer it belongs to.
// A guest session is linked to a customer found or created by its email.
func (s *Service) SessionDetails(ctx context.Context, sessionID string) (domain.SessionDetails, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return domain.SessionDetails{}, domain.ErrMissingSessionID
	}

	session, err := s.gw.GetSession(ctx, sessionID)
	if err != nil {
		return domain.SessionDetails{}, fmt.Errorf("get session: %w", err)
	}

	customerID := session.CustomerID
	if customerID == "" && session.CustomerEmail != "" {
		customerID, err = s.customerForEmail(ctx, session)
		if err != nil {
			return domain.SessionDetails{}, err
		}
	}

	return domain.SessionDetails{CustomerID: customerID, Session: session}, nil
}

func (s *Service) customerForEmail(ctx context.Context, session domain.Session) (string, error) {
	email := strings.ToLower(session.CustomerEmail)

	existing, ok, err := s.gw.FindCustomerByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("find customer: %w", err)
	}
	if ok {
		return existing.ID, nil
	}

	created, err := s.gw.CreateCustomer(ctx, domain.NewCustomer{
		Email: email,
		Name:  session.CustomerName,
		Phone: session.CustomerPhone,
		Metadata: map[string]string{
			"source":    guestCheckoutSource,
			"sessionId": session.ID,
		},
	})
	if err != nil {
		return "", fmt.Errorf("create customer: %w", err)
	}
	s.log.Info("customer created for guest checkout",
		zap.String("customer_id", created.ID),
		zap.String("session_id", session.ID),
	)
	return created.ID, nil
}
