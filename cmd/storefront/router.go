package main

import (
	"net/http"
	"time"

	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
	cataloghttp "github.com/dwikikusuma/storefront/internal/catalog/httpapi"
	paymentsapp "github.com/dwikikusuma/storefront/internal/payments/app"
	paymentshttp "github.com/dwikikusuma/storefront/internal/payments/httpapi"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

type routerDeps struct {
	Log            *zap.Logger
	Catalog        *catalogapp.Service
	Payments       *paymentsapp.Service
	AllowedOrigins []string
}

func newRouter(d routerDeps) http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), accessLog(d.Log))

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/readyz", func(c *gin.Context) { c.Status(http.StatusOK) })

	cataloghttp.NewHandler(d.Catalog, d.Log.Named("catalog")).Register(r)
	paymentshttp.NewHandler(d.Payments, d.Log.Named("payments")).Register(r)

	return cors.New(cors.Options{
		AllowedOrigins: d.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
	}).Handler(r)
}

// requestID keeps a caller-supplied request id or mints one.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func accessLog(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", c.GetString("request_id")),
		)
	}
}
