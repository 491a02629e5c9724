package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Store drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// Config holds the service configuration read from the environment
type Config struct {
	Port      string
	AppURL    string
	LogLevel  string
	LogFormat string

	StoreDriver   string
	DatabaseURL   string
	DBAutoMigrate bool
	MongoURI      string
	MongoDatabase string
	RedisURL      string

	ShopifyAPIKey     string
	ShopifyAPISecret  string
	ShopifyScopes     string
	ShopifyAPIVersion string
	ShopifyTimeout    time.Duration
	// ShopifyGraphQLEndpoint replaces the per-shop Admin API URL, for local mocks
	ShopifyGraphQLEndpoint string

	ProductsPageSize   int
	CORSAllowedOrigins []string
}

// Load reads a .env file when present, then the environment
func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("Warning: .env file not found")
	}

	var errs []error
	cfg := &Config{
		Port:      getEnv("PORT", "8080"),
		AppURL:    strings.TrimSuffix(getEnv("APP_URL", "http://localhost:8080"), "/"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		StoreDriver:   strings.ToLower(getEnv("STORE_DRIVER", DriverSQLite)),
		DatabaseURL:   getEnv("DATABASE_URL", "file:dev.sqlite"),
		DBAutoMigrate: getBool("DB_AUTO_MIGRATE", true, &errs),
		MongoURI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGODB_DATABASE", "merchant_reviews"),
		RedisURL:      os.Getenv("REDIS_URL"),

		ShopifyAPIKey:          os.Getenv("SHOPIFY_API_KEY"),
		ShopifyAPISecret:       os.Getenv("SHOPIFY_API_SECRET"),
		ShopifyScopes:          getEnv("SHOPIFY_SCOPES", "read_products,write_products"),
		ShopifyAPIVersion:      getEnv("SHOPIFY_API_VERSION", "2025-04"),
		ShopifyTimeout:         getDuration("SHOPIFY_TIMEOUT", 10*time.Second, &errs),
		ShopifyGraphQLEndpoint: os.Getenv("SHOPIFY_GRAPHQL_ENDPOINT"),

		ProductsPageSize:   getInt("PRODUCTS_PAGE_SIZE", 10, &errs),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cfg, nil
}

// Validate checks values that cannot be served
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case DriverSQLite, DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the %s store", c.StoreDriver)
		}
	case DriverMongo:
		if c.MongoURI == "" || c.MongoDatabase == "" {
			return fmt.Errorf("MONGODB_URI and MONGODB_DATABASE are required for the mongo store")
		}
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.StoreDriver)
	}
	if c.ProductsPageSize <= 0 {
		return fmt.Errorf("PRODUCTS_PAGE_SIZE must be positive, got %d", c.ProductsPageSize)
	}
	if c.ShopifyTimeout <= 0 {
		return fmt.Errorf("SHOPIFY_TIMEOUT must be positive, got %s", c.ShopifyTimeout)
	}
	if c.ShopifyAPIVersion == "" {
		return fmt.Errorf("SHOPIFY_API_VERSION must not be empty")
	}
	return nil
}

// OAuthEnabled reports whether the install flow can run
func (c *Config) OAuthEnabled() bool {
	return c.ShopifyAPIKey != "" && c.ShopifyAPISecret != "" && c.RedisURL != ""
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int, errs *[]error) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
		return fallback
	}
	return n
}

func getBool(key string, fallback bool, errs *[]error) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
		return fallback
	}
	return b
}

func getDuration(key string, fallback time.Duration, errs *[]error) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
		return fallback
	}
	return d
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
