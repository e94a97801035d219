package stripegw

import (
	"errors"
	"net/http"
	"testing"

	"github.com/dwikikusuma/storefront/internal/payments/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"
)

func TestSessionParams(t *testing.T) {
	base := domain.SessionParams{
		Lines: []domain.PricedLine{
			{Name: "Tee - red", UnitAmount: 1999, Quantity: 2, Image: "https://img/tee.png"},
			{Name: "Mug - Default", UnitAmount: 850, Quantity: 1},
		},
		Currency:   "usd",
		SuccessURL: "https://shop/checkout/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  "https://shop/checkout/cancel",
		Metadata:   map[string]string{"isGuest": "true", "cartItemCount": "2"},
	}

	t.Run("guest -> customer creation always", func(t *testing.T) {
		p := sessionParams(base)

		assert.Equal(t, "payment", *p.Mode)
		assert.Equal(t, base.SuccessURL, *p.SuccessURL)
		assert.Equal(t, base.CancelURL, *p.CancelURL)
		assert.Nil(t, p.Customer)
		require.NotNil(t, p.CustomerCreation)
		assert.Equal(t, "always", *p.CustomerCreation)
		assert.Equal(t, "true", p.Metadata["isGuest"])

		require.Len(t, p.LineItems, 2)
		first := p.LineItems[0]
		assert.Equal(t, int64(2), *first.Quantity)
		assert.Equal(t, int64(1999), *first.PriceData.UnitAmount)
		assert.Equal(t, "usd", *first.PriceData.Currency)
		assert.Equal(t, "Tee - red", *first.PriceData.ProductData.Name)
		require.Len(t, first.PriceData.ProductData.Images, 1)
		assert.Equal(t, "https://img/tee.png", *first.PriceData.ProductData.Images[0])
		assert.Empty(t, p.LineItems[1].PriceData.ProductData.Images)
	})

	t.Run("known customer -> attached", func(t *testing.T) {
		withCustomer := base
		withCustomer.CustomerID = "cus_1"
		p := sessionParams(withCustomer)

		require.NotNil(t, p.Customer)
		assert.Equal(t, "cus_1", *p.Customer)
		assert.Nil(t, p.CustomerCreation)
	})
}

func TestToSession(t *testing.T) {
	s := toSession(&stripe.CheckoutSession{
		ID:            "cs_1",
		URL:           "https://pay/cs_1",
		AmountTotal:   4500,
		Currency:      stripe.CurrencyUSD,
		PaymentStatus: stripe.CheckoutSessionPaymentStatusPaid,
		Customer:      &stripe.Customer{ID: "cus_1"},
		CustomerDetails: &stripe.CheckoutSessionCustomerDetails{
			Email: "a@b.co",
			Name:  "Ada",
		},
		Metadata: map[string]string{"isGuest": "false"},
	})

	assert.Equal(t, "cs_1", s.ID)
	assert.Equal(t, int64(4500), s.AmountTotal)
	assert.Equal(t, "usd", s.Currency)
	assert.Equal(t, "paid", s.PaymentStatus)
	assert.Equal(t, "cus_1", s.CustomerID)
	assert.Equal(t, "a@b.co", s.CustomerEmail)
	assert.Equal(t, "Ada", s.CustomerName)
}

func TestVendorError(t *testing.T) {
	t.Run("stripe error -> vendor error", func(t *testing.T) {
		err := vendorError(&stripe.Error{HTTPStatusCode: http.StatusPaymentRequired, Msg: "Your card was declined."})

		var vErr *domain.VendorError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, http.StatusPaymentRequired, vErr.Status)
		assert.Equal(t, "Your card was declined.", vErr.Message)
	})

	t.Run("other error -> unchanged", func(t *testing.T) {
		boom := errors.New("dial tcp")
		assert.Same(t, boom, vendorError(boom))
	})
}
