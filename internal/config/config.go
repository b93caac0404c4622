// Package config loads the storefront configuration from environment
// variables. Every setting has a default except the catalog locations,
// whose absence is reported per fetch rather than at startup.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Catalog    CatalogConfig
	Cache      CacheConfig
	Rate       RateLimitConfig
	Security   SecurityConfig
	Logging    LoggingConfig
	Storefront StorefrontConfig
	Metrics    MetricsConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`
	Port int    `env:"SERVER_PORT" envAlt:"PORT" default:"8080"`

	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout bounds a whole request, upstream fetches included.
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"30s"`
}

// CatalogConfig locates the two catalog documents and bounds their retrieval.
type CatalogConfig struct {
	// PacksURL is the published CSV of the pack catalog. http(s)://, s3://,
	// file:// and bare paths are accepted.
	PacksURL string `env:"SHEETS_CSV_URL" envAlt:"PACKS_CSV_URL"`

	// UnitsURL is the published CSV of the unit catalog.
	UnitsURL string `env:"SHEETS_UNITARIOS_CSV_URL" envAlt:"UNITS_CSV_URL"`

	// FetchTimeout is the HTTP client timeout; 0 leaves fetches bound only
	// by the request context.
	FetchTimeout time.Duration `env:"CATALOG_FETCH_TIMEOUT" default:"15s"`

	MaxBytes int64 `env:"CATALOG_MAX_BYTES" default:"10485760"`

	// MaxConcurrentFetches caps upstream fetches in flight.
	MaxConcurrentFetches int `env:"CATALOG_MAX_CONCURRENT_FETCHES" default:"4"`

	// FetchWait is how long a request waits for a fetch slot.
	FetchWait time.Duration `env:"CATALOG_FETCH_WAIT" default:"10s"`
}

// CacheConfig configures the optional Redis response cache.
type CacheConfig struct {
	// RedisURL enables the cache when set (redis://[:pass@]host:port/db).
	RedisURL string `env:"REDIS_URL"`

	TTL time.Duration `env:"CACHE_TTL" default:"60s"`

	// WarmInterval refreshes the cache in the background; 0 disables it.
	WarmInterval time.Duration `env:"CACHE_WARM_INTERVAL" default:"0s"`
}

// RateLimitConfig holds per-IP rate limiting settings.
type RateLimitConfig struct {
	Enabled           bool `env:"RATE_LIMIT_ENABLED" default:"true"`
	RequestsPerMinute int  `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"120"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of proxy CIDRs whose
	// forwarding headers are honored.
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" default:"info"`
	Format string `env:"LOG_FORMAT" default:"text"`
}

// StorefrontConfig holds presentation settings.
type StorefrontConfig struct {
	// WhatsAppPhone receives purchase messages, in international format
	// without "+".
	WhatsAppPhone string `env:"WHATSAPP_PHONE" default:"56926411278"`

	// ImageIndexPath is a JSON file of {"name","url"} cover images.
	ImageIndexPath string `env:"IMAGE_INDEX_PATH"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `env:"METRICS_ENABLED" default:"true"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
