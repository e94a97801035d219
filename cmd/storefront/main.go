package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
	"github.com/dwikikusuma/storefront/internal/catalog/infra/yamlfile"
	paymentsapp "github.com/dwikikusuma/storefront/internal/payments/app"
	"github.com/dwikikusuma/storefront/internal/payments/infra/stripegw"
	"github.com/dwikikusuma/storefront/pkg/config"
	"github.com/dwikikusuma/storefront/pkg/logger"
	"github.com/dwikikusuma/storefront/pkg/shutdown"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	log, err := logger.New(logger.Options{
		Service:   "storefront",
		Env:       cfg.AppEnv,
		Level:     cfg.LogLevel,
		AddSource: true,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if cfg.AppEnv != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	repo, err := yamlfile.Load(cfg.CatalogPath)
	if err != nil {
		log.Fatal("catalog load failed", zap.String("path", cfg.CatalogPath), zap.Error(err))
	}

	if cfg.StripeSecretKey == "" {
		log.Warn("STRIPE_SECRET_KEY is not set, checkout requests will fail")
	}

	handler := newRouter(routerDeps{
		Log:            log,
		Catalog:        catalogapp.NewService(repo),
		Payments:       paymentsapp.NewService(stripegw.New(cfg.StripeSecretKey), cfg.SiteURL, log.Named("payments")),
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	if err := shutdown.Serve(ctx, log, server, 10*time.Second); err != nil {
		log.Error("server stopped with error", zap.Error(err))
		os.Exit(1)
	}
	log.Info("bye")
}
