package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dwikikusuma/storefront/internal/checkout/domain"
	"go.uber.org/zap"
)

const (
	checkoutPath = "/api/checkout"
	sessionPath  = "/api/checkout/session"

	maxBody = 1 << 20
)

type lineJSON struct {
	Name     string      `json:"name"`
	Price    json.Number `json:"price"`
	Quantity int         `json:"quantity"`
	Image    string      `json:"image,omitempty"`
}

type requestJSON struct {
	Items      []lineJSON `json:"items"`
	CustomerID string     `json:"customerId,omitempty"`
}

type sessionJSON struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

type errorJSON struct {
	Error string `json:"error"`
}

type detailsJSON struct {
	CustomerID string `json:"customerId"`
	Session    struct {
		ID            string            `json:"id"`
		AmountTotal   int64             `json:"amount_total"`
		Currency      string            `json:"currency"`
		CustomerEmail string            `json:"customer_email"`
		PaymentStatus string            `json:"payment_status"`
		Metadata      map[string]string `json:"metadata"`
	} `json:"session"`
}

// Client talks to the storefront's checkout endpoint.
type Client struct {
	baseURL string
	hc      *http.Client
	log     *zap.Logger
}

func New(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
		log:     log,
	}
}

func (c *Client) CreateSession(ctx context.Context, req domain.Request) (domain.Session, error) {
	body := requestJSON{
		Items:      make([]lineJSON, 0, len(req.Items)),
		CustomerID: req.CustomerID,
	}
	for _, l := range req.Items {
		body.Items = append(body.Items, lineJSON{
			Name:     l.Name,
			Price:    json.Number(l.Price.String()),
			Quantity: l.Quantity,
			Image:    l.Image,
		})
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return domain.Session{}, fmt.Errorf("encode checkout request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+checkoutPath, bytes.NewReader(raw))
	if err != nil {
		return domain.Session{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	var out sessionJSON
	if err := c.do(httpReq, &out); err != nil {
		return domain.Session{}, err
	}
	return domain.Session{SessionID: out.SessionID, URL: out.URL}, nil
}

func (c *Client) GetSession(ctx context.Context, sessionID string) (domain.SessionDetails, error) {
	u := c.baseURL + sessionPath + "?" + url.Values{"session_id": {sessionID}}.Encode()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return domain.SessionDetails{}, err
	}

	var out detailsJSON
	if err := c.do(httpReq, &out); err != nil {
		return domain.SessionDetails{}, err
	}
	return domain.SessionDetails{
		CustomerID: out.CustomerID,
		Session: domain.SessionSummary{
			ID:            out.Session.ID,
			AmountTotal:   out.Session.AmountTotal,
			Currency:      out.Session.Currency,
			CustomerEmail: out.Session.CustomerEmail,
			PaymentStatus: out.Session.PaymentStatus,
			Metadata:      out.Session.Metadata,
		},
	}, nil
}

// do sends req and decodes a 2xx body into out. Any other status becomes a
// *domain.EndpointError carrying the body's "error" field when present.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e errorJSON
		_ = json.Unmarshal(raw, &e)
		c.log.Debug("checkout endpoint error",
			zap.String("path", req.URL.Path),
			zap.Int("status", resp.StatusCode),
			zap.String("error", e.Error),
		)
		return &domain.EndpointError{Status: resp.StatusCode, Message: e.Error}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
