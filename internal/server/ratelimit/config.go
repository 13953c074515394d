package ratelimit

import (
	"os"
	"strconv"
	"time"
)

// EndpointConfig is the rate limit for one endpoint. A Path ending in "/"
// is matched as a prefix.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int           // requests per window
	Window time.Duration
	Burst  int           // burst capacity (defaults to Limit if 0)
}

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() *Config {
	enabled := getEnvBool("RATE_LIMIT_ENABLED", true)
	if !enabled {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", 600),
		DefaultWindow:   getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	EndpointConfigs []EndpointConfig
}

// DefaultEndpointConfigs returns the per-endpoint tiers.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Tier 1: model calls and PDF generation (strictest)
		{Path: "/cv/sessions/", Method: "POST", Limit: 30, Window: time.Minute, Burst: 10},

		// Tier 2: credential guessing protection
		{Path: "/auth/login", Method: "POST", Limit: 10, Window: time.Minute, Burst: 5},

		// Tier 3: admin writes
		{Path: "/agencies", Method: "POST", Limit: 60, Window: time.Minute, Burst: 20},
		{Path: "/agencies/", Method: "PUT", Limit: 60, Window: time.Minute, Burst: 20},
		{Path: "/agencies/", Method: "DELETE", Limit: 60, Window: time.Minute, Burst: 20},
		{Path: "/posts", Method: "POST", Limit: 60, Window: time.Minute, Burst: 20},
		{Path: "/posts/", Method: "PUT", Limit: 60, Window: time.Minute, Burst: 20},
		{Path: "/posts/", Method: "DELETE", Limit: 60, Window: time.Minute, Burst: 20},

		// Reads fall through to the default limit; /health is unlimited.
	}
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
