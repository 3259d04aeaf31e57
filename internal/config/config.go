// Package config loads the gateway configuration.
package config

import (
	"fmt"
	"time"

	infraconfig "github.com/jonesrussell/overheid-search/infrastructure/config"
	infragin "github.com/jonesrussell/overheid-search/infrastructure/gin"
	"github.com/jonesrussell/overheid-search/infrastructure/logger"
	"github.com/jonesrussell/overheid-search/infrastructure/profiling"
	infraredis "github.com/jonesrussell/overheid-search/infrastructure/redis"
	"github.com/jonesrussell/overheid-search/internal/sru"
)

// Config holds all configuration for the search gateway.
type Config struct {
	Service   ServiceConfig    `yaml:"service"`
	SRU       SRUConfig        `yaml:"sru"`
	Facets    FacetsConfig     `yaml:"facets"`
	Cache     CacheConfig      `yaml:"cache"`
	Logging   logger.Config    `yaml:"logging"`
	CORS      CORSConfig       `yaml:"cors"`
	Metrics   MetricsConfig    `yaml:"metrics"`
	Profiling profiling.Config `yaml:"profiling"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Port    int    `env:"OVERHEID_PORT"  yaml:"port"`
	Debug   bool   `env:"OVERHEID_DEBUG" yaml:"debug"`
}

// SRUConfig configures the upstream searchRetrieve endpoint.
type SRUConfig struct {
	BaseURL           string        `env:"SRU_BASE_URL"      yaml:"base_url"`
	Timeout           time.Duration `env:"SRU_TIMEOUT"       yaml:"timeout"`
	UserAgent         string        `yaml:"user_agent"`
	DefaultRecords    int           `yaml:"default_records"`
	MaxRecords        int           `yaml:"max_records"`
	DefaultFacetLimit string        `yaml:"default_facet_limit"`
	RateLimitRPS      float64       `env:"SRU_RATE_LIMIT_RPS" yaml:"rate_limit_rps"`
	RateLimitBurst    int           `yaml:"rate_limit_burst"`
	MaxResponseBytes  int64         `yaml:"max_response_bytes"`
}

// FacetsConfig bounds the facet term lists.
type FacetsConfig struct {
	MaxTerms int `yaml:"max_terms"`
	TopTerms int `yaml:"top_terms"`
}

// CacheConfig configures the vocabulary cache.
type CacheConfig struct {
	Enabled bool              `env:"CACHE_ENABLED" yaml:"enabled"`
	TTL     time.Duration     `env:"CACHE_TTL"     yaml:"ttl"`
	Redis   infraredis.Config `yaml:"redis"`
}

// CORSConfig holds CORS configuration.
type CORSConfig struct {
	Enabled        bool     `yaml:"enabled"`
	AllowedOrigins []string `env:"CORS_ORIGINS" yaml:"allowed_origins"`
	AllowedMethods []string `yaml:"allowed_methods"`
	AllowedHeaders []string `yaml:"allowed_headers"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `env:"METRICS_ENABLED" yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Load loads configuration from file and environment variables.
func Load(path string) (*Config, error) {
	cfg, err := infraconfig.LoadWithDefaults[Config](path, SetDefaults)
	if err != nil {
		return nil, err
	}

	if validateErr := cfg.Validate(); validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return cfg, nil
}

// Default returns a configuration with every default applied. The CLI uses
// it when no config file is present.
func Default() *Config {
	cfg := &Config{}
	SetDefaults(cfg)
	return cfg
}

// SetDefaults applies default values to the config.
func SetDefaults(cfg *Config) {
	// Service defaults
	if cfg.Service.Name == "" {
		cfg.Service.Name = "overheid-search"
	}
	if cfg.Service.Version == "" {
		cfg.Service.Version = "1.0.0"
	}
	if cfg.Service.Port == 0 {
		cfg.Service.Port = 8095
	}

	// SRU defaults
	if cfg.SRU.BaseURL == "" {
		cfg.SRU.BaseURL = sru.DefaultBaseURL
	}
	if cfg.SRU.Timeout == 0 {
		cfg.SRU.Timeout = sru.DefaultTimeout
	}
	if cfg.SRU.UserAgent == "" {
		cfg.SRU.UserAgent = sru.DefaultUserAgent
	}
	if cfg.SRU.DefaultRecords == 0 {
		cfg.SRU.DefaultRecords = 20
	}
	if cfg.SRU.MaxRecords == 0 {
		cfg.SRU.MaxRecords = sru.MaxRecordsCeiling
	}
	if cfg.SRU.DefaultFacetLimit == "" {
		cfg.SRU.DefaultFacetLimit = sru.DefaultFacetLimit
	}
	if cfg.SRU.RateLimitBurst == 0 {
		cfg.SRU.RateLimitBurst = 5
	}
	if cfg.SRU.MaxResponseBytes == 0 {
		cfg.SRU.MaxResponseBytes = sru.DefaultMaxResponseBytes
	}

	// Facet defaults
	if cfg.Facets.MaxTerms == 0 {
		cfg.Facets.MaxTerms = 50
	}
	if cfg.Facets.TopTerms == 0 {
		cfg.Facets.TopTerms = 10
	}

	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = time.Hour
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}

	// CORS defaults; a missing cors section opens the API to every origin.
	if len(cfg.CORS.AllowedOrigins) == 0 {
		cfg.CORS.Enabled = true
		cfg.CORS.AllowedOrigins = []string{"*"}
	}
	if len(cfg.CORS.AllowedMethods) == 0 {
		cfg.CORS.AllowedMethods = []string{"GET", "POST", "OPTIONS"}
	}
	if len(cfg.CORS.AllowedHeaders) == 0 {
		cfg.CORS.AllowedHeaders = []string{"Content-Type"}
	}

	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}

	cfg.Profiling.SetDefaults()
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := infraconfig.ValidatePort("service.port", c.Service.Port); err != nil {
		return err
	}
	if err := infraconfig.ValidateHTTPURL("sru.base_url", c.SRU.BaseURL); err != nil {
		return err
	}
	if c.SRU.Timeout <= 0 {
		return &infraconfig.ValidationError{Field: "sru.timeout", Message: "must be greater than 0"}
	}
	if c.SRU.MaxRecords < 1 || c.SRU.MaxRecords > sru.MaxRecordsCeiling {
		return &infraconfig.ValidationError{
			Field:   "sru.max_records",
			Message: fmt.Sprintf("must be between 1 and %d", sru.MaxRecordsCeiling),
		}
	}
	if c.SRU.DefaultRecords < 1 || c.SRU.DefaultRecords > c.SRU.MaxRecords {
		return &infraconfig.ValidationError{
			Field:   "sru.default_records",
			Message: fmt.Sprintf("must be between 1 and %d", c.SRU.MaxRecords),
		}
	}
	if c.SRU.RateLimitRPS < 0 {
		return &infraconfig.ValidationError{Field: "sru.rate_limit_rps", Message: "must not be negative"}
	}
	if c.Cache.Enabled && c.Cache.Redis.Address == "" {
		return &infraconfig.ValidationError{Field: "cache.redis.address", Message: "is required when the cache is enabled"}
	}
	if err := infraconfig.ValidateLogLevel(c.Logging.Level); err != nil {
		return err
	}
	if err := infraconfig.ValidateLogFormat(c.Logging.Format); err != nil {
		return err
	}
	if c.Profiling.PprofEnabled {
		if err := infraconfig.ValidatePort("profiling.pprof_port", c.Profiling.PprofPort); err != nil {
			return err
		}
	}
	return nil
}

// ClientConfig returns the SRU client settings.
func (c *Config) ClientConfig() sru.Config {
	return sru.Config{
		BaseURL:          c.SRU.BaseURL,
		UserAgent:        c.SRU.UserAgent,
		Timeout:          c.SRU.Timeout,
		MaxRecords:       c.SRU.MaxRecords,
		RateLimitRPS:     c.SRU.RateLimitRPS,
		RateLimitBurst:   c.SRU.RateLimitBurst,
		MaxResponseBytes: c.SRU.MaxResponseBytes,
	}
}

// GinCORS converts the CORS settings for the server builder.
func (c *Config) GinCORS() infragin.CORSConfig {
	return infragin.CORSConfig{
		Enabled:        c.CORS.Enabled,
		AllowedOrigins: c.CORS.AllowedOrigins,
		AllowedMethods: c.CORS.AllowedMethods,
		AllowedHeaders: c.CORS.AllowedHeaders,
	}
}
