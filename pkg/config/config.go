package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv   string
	LogLevel string

	HTTPPort int
	SiteURL  string

	StripeSecretKey string
	CatalogPath     string

	CartDBPath        string
	CheckoutAPIURL    string
	HTTPClientTimeout time.Duration

	CORSAllowedOrigins []string
}

// Load reads the environment, optionally seeded from a .env file in the
// working directory. Missing or malformed values fall back to defaults.
func Load() Config {
	// .env is optional
	_ = godotenv.Load()

	return Config{
		AppEnv:             getEnv("APP_ENV", "dev"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		HTTPPort:           getEnvInt("HTTP_PORT", 8080),
		SiteURL:            strings.TrimRight(getEnv("SITE_URL", "http://localhost:3000"), "/"),
		StripeSecretKey:    getEnv("STRIPE_SECRET_KEY", ""),
		CatalogPath:        getEnv("CATALOG_PATH", "catalog.yaml"),
		CartDBPath:         getEnv("CART_DB_PATH", "cart.db"),
		CheckoutAPIURL:     strings.TrimRight(getEnv("CHECKOUT_API_URL", "http://localhost:8080"), "/"),
		HTTPClientTimeout:  getEnvDuration("HTTP_CLIENT_TIMEOUT", 15*time.Second),
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
