// Package stripegw implements the payments gateway on top of Stripe.
package stripegw

import (
	"context"
	"errors"

	"github.com/dwikikusuma/storefront/internal/payments/domain"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

type Gateway struct {
	api *client.API
}

func New(secretKey string) *Gateway {
	return &Gateway{api: client.New(secretKey, nil)}
}

func (g *Gateway) GetCustomer(ctx context.Context, id string) (domain.Customer, error) {
	params := &stripe.CustomerParams{}
	params.Context = ctx

	c, err := g.api.Customers.Get(id, params)
	if err != nil {
		return domain.Customer{}, vendorError(err)
	}
	return domain.Customer{ID: c.ID, Email: c.Email, Deleted: c.Deleted}, nil
}

func (g *Gateway) FindCustomerByEmail(ctx context.Context, email string) (domain.Customer, bool, error) {
	params := &stripe.CustomerListParams{Email: stripe.String(email)}
	params.Context = ctx
	params.Limit = stripe.Int64(1)

	it := g.api.Customers.List(params)
	if it.Next() {
		c := it.Customer()
		return domain.Customer{ID: c.ID, Email: c.Email}, true, nil
	}
	if err := it.Err(); err != nil {
		return domain.Customer{}, false, vendorError(err)
	}
	return domain.Customer{}, false, nil
}

func (g *Gateway) CreateCustomer(ctx context.Context, nc domain.NewCustomer) (domain.Customer, error) {
	params := &stripe.CustomerParams{Email: stripe.String(nc.Email)}
	params.Context = ctx
	if nc.Name != "" {
		params.Name = stripe.String(nc.Name)
	}
	if nc.Phone != "" {
		params.Phone = stripe.String(nc.Phone)
	}
	for k, v := range nc.Metadata {
		params.AddMetadata(k, v)
	}

	c, err := g.api.Customers.New(params)
	if err != nil {
		return domain.Customer{}, vendorError(err)
	}
	return domain.Customer{ID: c.ID, Email: c.Email}, nil
}

func (g *Gateway) CreateSession(ctx context.Context, p domain.SessionParams) (domain.Session, error) {
	params := sessionParams(p)
	params.Context = ctx

	s, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return domain.Session{}, vendorError(err)
	}
	return toSession(s), nil
}

func (g *Gateway) GetSession(ctx context.Context, id string) (domain.Session, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	params.AddExpand("customer")

	s, err := g.api.CheckoutSessions.Get(id, params)
	if err != nil {
		return domain.Session{}, vendorError(err)
	}
	return toSession(s), nil
}

func sessionParams(p domain.SessionParams) *stripe.CheckoutSessionParams {
	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(p.SuccessURL),
		CancelURL:          stripe.String(p.CancelURL),
	}

	for _, l := range p.Lines {
		product := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(l.Name),
		}
		if l.Image != "" {
			product.Images = stripe.StringSlice([]string{l.Image})
		}
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(p.Currency),
				ProductData: product,
				UnitAmount:  stripe.Int64(l.UnitAmount),
			},
			Quantity: stripe.Int64(l.Quantity),
		})
	}

	if p.CustomerID != "" {
		params.Customer = stripe.String(p.CustomerID)
	} else {
		params.CustomerCreation = stripe.String(string(stripe.CheckoutSessionCustomerCreationAlways))
	}

	for k, v := range p.Metadata {
		params.AddMetadata(k, v)
	}
	return params
}

func toSession(s *stripe.CheckoutSession) domain.Session {
	out := domain.Session{
		ID:            s.ID,
		URL:           s.URL,
		AmountTotal:   s.AmountTotal,
		Currency:      string(s.Currency),
		PaymentStatus: string(s.PaymentStatus),
		Metadata:      s.Metadata,
	}
	if s.Customer != nil {
		out.CustomerID = s.Customer.ID
	}
	if d := s.CustomerDetails; d != nil {
		out.CustomerEmail = d.Email
		out.CustomerName = d.Name
		out.CustomerPhone = d.Phone
	}
	return out
}

func vendorError(err error) error {
	var se *stripe.Error
	if errors.As(err, &se) {
		return &domain.VendorError{Status: se.HTTPStatusCode, Message: se.Msg, Err: err}
	}
	return err
}
