// Package httpapi exposes checkout session creation and lookup over HTTP.
package httpapi

import (
	"net/http"

	"github.com/dwikikusuma/storefront/internal/payments/app"
	"github.com/dwikikusuma/storefront/internal/payments/domain"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type checkoutItem struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Image    string          `json:"image,omitempty"`
}

type checkoutBody struct {
	Items      []checkoutItem `json:"items"`
	CustomerID string         `json:"customerId,omitempty"`
}

type sessionSummary struct {
	ID            string            `json:"id"`
	AmountTotal   int64             `json:"amount_total"`
	Currency      string            `json:"currency"`
	CustomerEmail string            `json:"customer_email,omitempty"`
	PaymentStatus string            `json:"payment_status"`
	Metadata      map[string]string `json:"metadata"`
}

type Handler struct {
	svc *app.Service
	log *zap.Logger
}

func NewHandler(svc *app.Service, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{svc: svc, log: log}
}

func (h *Handler) Register(r gin.IRouter) {
	r.POST("/api/checkout", h.createSession)
	r.GET("/api/checkout", methodNotAllowed)
	r.GET("/api/checkout/session", h.getSession)
}

func methodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
}

func (h *Handler) createSession(c *gin.Context) {
	var body checkoutBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.log.Debug("bad checkout body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart items"})
		return
	}

	req := domain.CheckoutRequest{
		Items:      make([]domain.LineItem, 0, len(body.Items)),
		CustomerID: body.CustomerID,
		SiteURL:    c.GetHeader("Origin"),
	}
	for _, it := range body.Items {
		req.Items = append(req.Items, domain.LineItem{
			Name:     it.Name,
			Price:    it.Price,
			Quantity: it.Quantity,
			Image:    it.Image,
		})
	}

	res, err := h.svc.CreateCheckoutSession(c.Request.Context(), req)
	if err != nil {
		status, msg := httpStatusFromError(err, "Internal server error")
		h.log.Error("create checkout session failed", zap.Int("status", status), zap.Error(err))
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessionId": res.SessionID, "url": res.URL})
}

func (h *Handler) getSession(c *gin.Context) {
	details, err := h.svc.SessionDetails(c.Request.Context(), c.Query("session_id"))
	if err != nil {
		status, msg := httpStatusFromError(err, "Failed to retrieve session")
		h.log.Error("retrieve checkout session failed", zap.Int("status", status), zap.Error(err))
		c.JSON(status, gin.H{"error": msg})
		return
	}

	s := details.Session
	c.JSON(http.StatusOK, gin.H{
		"customerId": details.CustomerID,
		"session": sessionSummary{
			ID:            s.ID,
			AmountTotal:   s.AmountTotal,
			Currency:      s.Currency,
			CustomerEmail: s.CustomerEmail,
			PaymentStatus: s.PaymentStatus,
			Metadata:      s.Metadata,
		},
	})
}
