// Package httpapi exposes the catalog over HTTP.
package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dwikikusuma/storefront/internal/catalog/app"
	"github.com/dwikikusuma/storefront/internal/catalog/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	productsCache = "public, s-maxage=60, stale-while-revalidate=120"
	variantCache  = "public, s-maxage=300, stale-while-revalidate=600"
)

type variantBody struct {
	domain.Variant
	InStock      bool   `json:"inStock"`
	StockMessage string `json:"stockMessage"`
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
	r.GET("/api/products", h.listProducts)
	r.POST("/api/products", methodNotAllowed)
	r.GET("/api/products/:slug", h.getProduct)
	r.GET("/api/products/:slug/variant", h.defaultVariant)
	r.GET("/api/categories", h.categories)
}

func methodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
}

func (h *Handler) listProducts(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(app.DefaultLimit)))
	if err != nil {
		limit = app.DefaultLimit
	}

	res, err := h.svc.ListProducts(c.Request.Context(), app.ListQuery{
		Category: c.Query("category"),
		Sort:     c.Query("sort"),
		Limit:    limit,
	})
	if err != nil {
		h.fail(c, err, "Failed to fetch products", "")
		return
	}

	c.Header("Cache-Control", productsCache)
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"total":      res.Total,
		"totalCount": res.TotalCount,
		"products":   res.Products,
	})
}

func (h *Handler) getProduct(c *gin.Context) {
	p, err := h.svc.GetProduct(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.fail(c, err, "Failed to fetch product", "Product not found")
		return
	}

	c.Header("Cache-Control", productsCache)
	c.JSON(http.StatusOK, gin.H{"success": true, "product": p})
}

func (h *Handler) defaultVariant(c *gin.Context) {
	v, err := h.svc.DefaultVariant(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.fail(c, err, "Failed to fetch variant", "No variants found")
		return
	}

	c.Header("Cache-Control", variantCache)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"variant": variantBody{
			Variant:      v,
			InStock:      domain.IsInStock(v.StockQuantity),
			StockMessage: domain.StockMessage(v.StockQuantity),
		},
	})
}

func (h *Handler) categories(c *gin.Context) {
	cats, err := h.svc.Categories(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Failed to fetch categories", "")
		return
	}

	c.Header("Cache-Control", productsCache)
	c.JSON(http.StatusOK, gin.H{"success": true, "categories": cats})
}

func (h *Handler) fail(c *gin.Context, err error, msg, notFound string) {
	switch {
	case errors.Is(err, app.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": notFound})
	case errors.Is(err, app.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid input"})
	default:
		h.log.Error(msg, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": msg, "message": err.Error()})
	}
}
