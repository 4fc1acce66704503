package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/awadali7/Pro-shopify-backend/internal/domain"
)

type Config struct {
	Port            string
	Environment     string
	LogLevel        string
	Variant         domain.Variant
	ProductIDSource domain.ProductIDSource
	ConcurrentFetch bool // COLLECTION_CONCURRENT_FETCH: fetch products and metafields in parallel
	Shopify         ShopifyConfig
	Telemetry       TelemetryConfig
}

type ShopifyConfig struct {
	ShopDomain     string
	AccessToken    string
	APIVersion     string
	CollectionID   string
	CollectionName string
	Timeout        time.Duration
	RateLimit      float64 // requests per second; 0 disables pacing
	RateBurst      int
}

// TelemetryConfig controls OTLP trace export; an empty endpoint disables it
type TelemetryConfig struct {
	OTLPEndpoint string
	ServiceName  string
}

func Load() (*Config, error) {
	// Optional .env, same lookup as the standalone proxy used. Existing env wins.
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	v := viper.New()

	// Set defaults
	v.SetDefault("PORT", "4000")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("GATEWAY_VARIANT", string(domain.VariantStrict))
	v.SetDefault("COLLECTION_CONCURRENT_FETCH", false)
	v.SetDefault("SHOPIFY_SHOP_DOMAIN", "proluxuryhome.com")
	v.SetDefault("SHOPIFY_API_VERSION", "2024-10")
	v.SetDefault("SHOPIFY_COLLECTION_ID", "366257340597")
	v.SetDefault("SHOPIFY_COLLECTION_NAME", "lucky-draw")
	v.SetDefault("SHOPIFY_TIMEOUT", "30s")
	v.SetDefault("SHOPIFY_RATE_LIMIT", 2.0)
	v.SetDefault("SHOPIFY_RATE_BURST", 40)
	v.SetDefault("OTEL_SERVICE_NAME", "shopify-gateway")

	// Read from environment variables
	v.AutomaticEnv()

	variant := domain.Variant(strings.ToLower(strings.TrimSpace(v.GetString("GATEWAY_VARIANT"))))
	idSource := domain.ProductIDSource(strings.ToLower(strings.TrimSpace(v.GetString("PRODUCT_ID_SOURCE"))))
	if idSource == "" {
		idSource = variant.DefaultProductIDSource()
	}

	timeout, err := time.ParseDuration(strings.TrimSpace(v.GetString("SHOPIFY_TIMEOUT")))
	if err != nil {
		return nil, fmt.Errorf("SHOPIFY_TIMEOUT: %w", err)
	}
	rateLimit, err := strconv.ParseFloat(strings.TrimSpace(v.GetString("SHOPIFY_RATE_LIMIT")), 64)
	if err != nil {
		return nil, fmt.Errorf("SHOPIFY_RATE_LIMIT: %w", err)
	}
	rateBurst, err := strconv.Atoi(strings.TrimSpace(v.GetString("SHOPIFY_RATE_BURST")))
	if err != nil {
		return nil, fmt.Errorf("SHOPIFY_RATE_BURST: %w", err)
	}
	concurrent, err := strconv.ParseBool(strings.TrimSpace(v.GetString("COLLECTION_CONCURRENT_FETCH")))
	if err != nil {
		return nil, fmt.Errorf("COLLECTION_CONCURRENT_FETCH: %w", err)
	}

	cfg := &Config{
		Port:            strings.TrimSpace(v.GetString("PORT")),
		Environment:     v.GetString("ENVIRONMENT"),
		LogLevel:        strings.ToLower(v.GetString("LOG_LEVEL")),
		Variant:         variant,
		ProductIDSource: idSource,
		ConcurrentFetch: concurrent,
		Shopify: ShopifyConfig{
			ShopDomain:     strings.TrimSpace(v.GetString("SHOPIFY_SHOP_DOMAIN")),
			AccessToken:    strings.TrimSpace(v.GetString("SHOPIFY_ACCESS_TOKEN")),
			APIVersion:     strings.TrimSpace(v.GetString("SHOPIFY_API_VERSION")),
			CollectionID:   strings.TrimSpace(v.GetString("SHOPIFY_COLLECTION_ID")),
			CollectionName: strings.TrimSpace(v.GetString("SHOPIFY_COLLECTION_NAME")),
			Timeout:        timeout,
			RateLimit:      rateLimit,
			RateBurst:      rateBurst,
		},
		Telemetry: TelemetryConfig{
			OTLPEndpoint: strings.TrimSpace(v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT")),
			ServiceName:  v.GetString("OTEL_SERVICE_NAME"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the gateway cannot serve with, so a bad
// deployment fails at startup instead of on the first request.
func (c *Config) Validate() error {
	if c.Shopify.AccessToken == "" {
		return fmt.Errorf("SHOPIFY_ACCESS_TOKEN is required")
	}
	if c.Shopify.ShopDomain == "" {
		return fmt.Errorf("SHOPIFY_SHOP_DOMAIN is required")
	}
	if c.Shopify.APIVersion == "" {
		return fmt.Errorf("SHOPIFY_API_VERSION is required")
	}
	if c.Shopify.CollectionID == "" {
		return fmt.Errorf("SHOPIFY_COLLECTION_ID is required")
	}
	if !c.Variant.IsValid() {
		return fmt.Errorf("GATEWAY_VARIANT must be %q or %q, got %q", domain.VariantStrict, domain.VariantLenient, c.Variant)
	}
	if !c.ProductIDSource.IsValid() {
		return fmt.Errorf("PRODUCT_ID_SOURCE must be %q or %q, got %q", domain.ProductIDFromProduct, domain.ProductIDFromOption, c.ProductIDSource)
	}
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %q", c.Port)
	}
	if c.Shopify.Timeout <= 0 {
		return fmt.Errorf("SHOPIFY_TIMEOUT must be positive")
	}
	if c.Shopify.RateLimit < 0 || c.Shopify.RateBurst < 0 {
		return fmt.Errorf("SHOPIFY_RATE_LIMIT and SHOPIFY_RATE_BURST cannot be negative")
	}
	if c.Shopify.RateLimit > 0 && c.Shopify.RateBurst == 0 {
		return fmt.Errorf("SHOPIFY_RATE_BURST must be at least 1 when SHOPIFY_RATE_LIMIT is set")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error, got %q", c.LogLevel)
	}
	return nil
}

// IsProduction reports whether the gateway runs with production logging and gin release mode
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}
