package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dwikikusuma/storefront/internal/catalog/app"
	"github.com/dwikikusuma/storefront/internal/catalog/infra/yamlfile"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const catalogYAML = `
products:
  - id: 1
    title: Mug
    sku: MUG
    slug: mug
    basePrice: "8.50"
    category: Home
    variants:
      - variantSKU: MUG-W
        color: white
        price: "8.50"
        stockQuantity: 2
  - id: 2
    title: Classic Tee
    sku: TEE
    slug: classic-tee
    basePrice: "19.99"
    category: Apparel
    variants:
      - variantSKU: TEE-S
        price: "19.99"
        stockQuantity: 40
  - id: 3
    title: Gift Card
    sku: GIFT
    slug: gift-card
    basePrice: "25"
    category: Apparel
`

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	repo, err := yamlfile.Parse([]byte(catalogYAML))
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(app.NewService(repo), zap.NewNop()).Register(r)
	return r
}

func get(r http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

type listBody struct {
	Success    bool `json:"success"`
	Total      int  `json:"total"`
	TotalCount int  `json:"totalCount"`
	Products   []struct {
		ID    int    `json:"id"`
		Slug  string `json:"slug"`
		Title string `json:"title"`
	} `json:"products"`
}

func TestListProducts(t *testing.T) {
	r := newRouter(t)

	t.Run("filter and sort -> 200 with cache header", func(t *testing.T) {
		w := get(r, "/api/products?category=Apparel&sort=price-high")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "public, s-maxage=60, stale-while-revalidate=120", w.Header().Get("Cache-Control"))

		var body listBody
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.True(t, body.Success)
		assert.Equal(t, 2, body.Total)
		assert.Equal(t, 3, body.TotalCount)
		require.Len(t, body.Products, 2)
		assert.Equal(t, "gift-card", body.Products[0].Slug)
		assert.Equal(t, 3, body.Products[0].ID)
	})

	t.Run("bad limit -> default", func(t *testing.T) {
		w := get(r, "/api/products?limit=lots")
		require.Equal(t, http.StatusOK, w.Code)

		var body listBody
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, 3, body.Total)
	})

	t.Run("POST -> 405", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/products", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}

func TestGetProduct(t *testing.T) {
	r := newRouter(t)

	t.Run("known slug -> product", func(t *testing.T) {
		w := get(r, "/api/products/mug")
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Product struct {
				Title     string `json:"title"`
				BasePrice string `json:"basePrice"`
				Variants  []struct {
					VariantSKU string `json:"variantSKU"`
				} `json:"variants"`
			} `json:"product"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Mug", body.Product.Title)
		assert.Equal(t, "8.5", body.Product.BasePrice)
		require.Len(t, body.Product.Variants, 1)
	})

	t.Run("unknown slug -> 404", func(t *testing.T) {
		w := get(r, "/api/products/nope")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Product not found")
	})
}

func TestDefaultVariant(t *testing.T) {
	r := newRouter(t)

	t.Run("low stock -> message", func(t *testing.T) {
		w := get(r, "/api/products/mug/variant")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "public, s-maxage=300, stale-while-revalidate=600", w.Header().Get("Cache-Control"))

		var body struct {
			Variant struct {
				VariantSKU   string `json:"variantSKU"`
				InStock      bool   `json:"inStock"`
				StockMessage string `json:"stockMessage"`
			} `json:"variant"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "MUG-W", body.Variant.VariantSKU)
		assert.True(t, body.Variant.InStock)
		assert.Equal(t, "Only 2 left in stock", body.Variant.StockMessage)
	})

	t.Run("no variants -> 404", func(t *testing.T) {
		w := get(r, "/api/products/gift-card/variant")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "No variants found")
	})
}

func TestCategories(t *testing.T) {
	w := get(newRouter(t), "/api/categories")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Categories []string `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []string{"Apparel", "Home"}, body.Categories)
}
