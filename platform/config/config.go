// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"homegate_search/platform/validator"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// HomegateConfig provides settings for talking to the listing API.
type HomegateConfig interface {
	GetHomegateBaseURL() string
	GetLocationSearchLang() string
	GetMaxSearchGeo() int
	GetGeoResultsCount() int
	GetRequestTimeout() time.Duration
	GetUpstreamRateLimit() float64
	GetUpstreamBurst() int
}

// GeoCacheConfig provides settings for the geo lookup cache.
type GeoCacheConfig interface {
	GetGeoCacheTTL() time.Duration
	GetRedisURL() string
	IsGeoCacheEnabled() bool
}

// HTTPConfig provides settings for the gateway HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSOrigins() []string
	GetGatewayRateLimit() float64
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                string        `yaml:"env"`
	HTTPAddr           string        `yaml:"http_addr" validate:"required"`
	HomegateBaseURL    string        `yaml:"base_url" validate:"required,url"`
	LocationSearchLang string        `yaml:"location_search_lang" validate:"oneof=en de fr it"`
	MaxSearchGeo       int           `yaml:"max_search_geo" validate:"gte=1"`
	GeoResultsCount    int           `yaml:"geo_results_count" validate:"gte=1"`
	RequestTimeout     time.Duration `yaml:"request_timeout" validate:"gt=0"`
	UpstreamRateLimit  float64       `yaml:"upstream_rate_limit" validate:"gte=0"`
	UpstreamBurst      int           `yaml:"upstream_burst" validate:"gte=0"`
	GeoCacheTTL        time.Duration `yaml:"geo_cache_ttl" validate:"gte=0"`
	RedisURL           string        `yaml:"redis_url"`
	CORSOrigins        []string      `yaml:"cors_origins"`
	GatewayRateLimit   float64       `yaml:"gateway_rate_limit" validate:"gte=0"`
}

// =============================================================================
// Interface Implementations
// =============================================================================

// HomegateConfig implementation
func (c *Config) GetHomegateBaseURL() string       { return c.HomegateBaseURL }
func (c *Config) GetLocationSearchLang() string    { return c.LocationSearchLang }
func (c *Config) GetMaxSearchGeo() int             { return c.MaxSearchGeo }
func (c *Config) GetGeoResultsCount() int          { return c.GeoResultsCount }
func (c *Config) GetRequestTimeout() time.Duration { return c.RequestTimeout }
func (c *Config) GetUpstreamRateLimit() float64    { return c.UpstreamRateLimit }
func (c *Config) GetUpstreamBurst() int            { return c.UpstreamBurst }

// GeoCacheConfig implementation
func (c *Config) GetGeoCacheTTL() time.Duration { return c.GeoCacheTTL }
func (c *Config) GetRedisURL() string           { return c.RedisURL }
func (c *Config) IsGeoCacheEnabled() bool       { return c.GeoCacheTTL > 0 }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string          { return c.HTTPAddr }
func (c *Config) GetCORSOrigins() []string     { return c.CORSOrigins }
func (c *Config) GetGatewayRateLimit() float64 { return c.GatewayRateLimit }

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Env:                "development",
		HTTPAddr:           ":8080",
		HomegateBaseURL:    "https://api.homegate.ch",
		LocationSearchLang: "en",
		MaxSearchGeo:       1,
		GeoResultsCount:    100,
		RequestTimeout:     10 * time.Second,
		UpstreamRateLimit:  5,
		UpstreamBurst:      5,
		GeoCacheTTL:        time.Hour,
		CORSOrigins:        []string{"http://localhost:4200"},
		GatewayRateLimit:   10,
	}
}

// Load reads configuration from an optional YAML file and environment variables.
// Precedence: environment > HOMEGATE_CONFIG_FILE > defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if path := getEnv("HOMEGATE_CONFIG_FILE", ""); path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	cfg.Env = getEnv("APP_ENV", cfg.Env)
	cfg.HTTPAddr = getEnv("HTTP_ADDR", cfg.HTTPAddr)
	cfg.HomegateBaseURL = getEnv("HOMEGATE_BASE_URL", cfg.HomegateBaseURL)
	cfg.LocationSearchLang = strings.ToLower(getEnv("HOMEGATE_LANG", cfg.LocationSearchLang))
	cfg.RedisURL = getEnv("REDIS_URL", cfg.RedisURL)

	if origins, ok := os.LookupEnv("CORS_ORIGINS"); ok {
		cfg.CORSOrigins = splitCSV(origins)
	}

	var err error
	if cfg.MaxSearchGeo, err = envInt("HOMEGATE_MAX_SEARCH_GEO", cfg.MaxSearchGeo); err != nil {
		return err
	}
	if cfg.GeoResultsCount, err = envInt("HOMEGATE_GEO_RESULTS", cfg.GeoResultsCount); err != nil {
		return err
	}
	if cfg.UpstreamBurst, err = envInt("HOMEGATE_RATE_BURST", cfg.UpstreamBurst); err != nil {
		return err
	}
	if cfg.RequestTimeout, err = envDuration("HOMEGATE_TIMEOUT", cfg.RequestTimeout); err != nil {
		return err
	}
	if cfg.GeoCacheTTL, err = envDuration("GEO_CACHE_TTL", cfg.GeoCacheTTL); err != nil {
		return err
	}
	if cfg.UpstreamRateLimit, err = envFloat("HOMEGATE_RATE_LIMIT", cfg.UpstreamRateLimit); err != nil {
		return err
	}
	if cfg.GatewayRateLimit, err = envFloat("GATEWAY_RATE_LIMIT", cfg.GatewayRateLimit); err != nil {
		return err
	}

	return nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return value, nil
}

func envFloat(key string, fallback float64) (float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return value, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	value, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return value, nil
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}
