// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// CRMConfig provides settings for the upstream CRM contact API.
// Credentials may be absent; the lead-sync endpoint reports a configuration
// error at call time rather than blocking startup.
type CRMConfig interface {
	GetCRMBaseURL() string
	GetCRMAPIKey() string
	GetCRMLocationID() string
	IsCRMConfigured() bool
}

// ValuationConfig provides settings for the home valuation lookup API.
type ValuationConfig interface {
	GetValuationAPIURL() string
	GetValuationAPIKey() string
	IsValuationEnabled() bool
}

// SessionConfig provides settings for the wizard session store.
type SessionConfig interface {
	GetRedisURL() string
	GetSessionTTL() time.Duration
}

// Config holds all application configuration values.
type Config struct {
	Env      string
	HTTPAddr string

	CORSAllowAll   bool
	CORSOrigins    []string
	CORSAllowCreds bool

	CRMBaseURL    string
	CRMAPIKey     string
	CRMLocationID string

	ValuationAPIURL string
	ValuationAPIKey string

	RedisURL   string
	SessionTTL time.Duration
}

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// CRMConfig implementation
func (c *Config) GetCRMBaseURL() string    { return c.CRMBaseURL }
func (c *Config) GetCRMAPIKey() string     { return c.CRMAPIKey }
func (c *Config) GetCRMLocationID() string { return c.CRMLocationID }
func (c *Config) IsCRMConfigured() bool {
	return c.CRMAPIKey != "" && c.CRMLocationID != ""
}

// ValuationConfig implementation
func (c *Config) GetValuationAPIURL() string { return c.ValuationAPIURL }
func (c *Config) GetValuationAPIKey() string { return c.ValuationAPIKey }
func (c *Config) IsValuationEnabled() bool   { return c.ValuationAPIURL != "" }

// SessionConfig implementation
func (c *Config) GetRedisURL() string          { return c.RedisURL }
func (c *Config) GetSessionTTL() time.Duration { return c.SessionTTL }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:             getEnv("APP_ENV", "development"),
		HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
		CORSAllowAll:    corsAllowAll,
		CORSOrigins:     corsOrigins,
		CORSAllowCreds:  strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		CRMBaseURL:      getEnv("CRM_BASE_URL", "https://services.leadconnectorhq.com"),
		CRMAPIKey:       getEnv("CRM_API_KEY", ""),
		CRMLocationID:   getEnv("CRM_LOCATION_ID", ""),
		ValuationAPIURL: getEnv("VALUATION_API_URL", ""),
		ValuationAPIKey: getEnv("VALUATION_API_KEY", ""),
		RedisURL:        getEnv("REDIS_URL", ""),
		SessionTTL:      mustDuration(getEnv("SESSION_TTL", "30m")),
	}

	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be a positive duration")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
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

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
