// Package httpclient reads the catalog from a running storefront server.
package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dwikikusuma/storefront/internal/catalog/app"
	"github.com/dwikikusuma/storefront/internal/catalog/domain"
)

const maxBody = 4 << 20

type Client struct {
	baseURL string
	hc      *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
	}
}

func (c *Client) GetProduct(ctx context.Context, slug string) (domain.Product, error) {
	var out struct {
		Product domain.Product `json:"product"`
	}
	if err := c.get(ctx, "/api/products/"+url.PathEscape(slug), &out); err != nil {
		return domain.Product{}, err
	}
	return out.Product, nil
}

func (c *Client) ListProducts(ctx context.Context, q app.ListQuery) (app.ListResult, error) {
	v := url.Values{}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	if q.Limit > 0 {
		v.Set("limit", fmt.Sprint(q.Limit))
	}

	var out struct {
		Total      int              `json:"total"`
		TotalCount int              `json:"totalCount"`
		Products   []domain.Product `json:"products"`
	}
	if err := c.get(ctx, "/api/products?"+v.Encode(), &out); err != nil {
		return app.ListResult{}, err
	}
	return app.ListResult{Products: out.Products, Total: out.Total, TotalCount: out.TotalCount}, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return app.ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		var e struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(raw, &e)
		return fmt.Errorf("GET %s: status %d: %s", path, resp.StatusCode, e.Error)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
