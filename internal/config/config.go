// Package config provides configuration loading and management for the application.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// HTTP server port
	Port string

	// Base URLs for the two blockchain.info endpoints
	StatsURL        string
	PriceHistoryURL string

	// How long a cached payload stays fresh
	CacheTTL time.Duration

	// Namespace prefix for cache keys
	CacheNamespace string

	// Redis connection settings; empty address disables Redis and the
	// service falls back to the in-process store
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// OpenTelemetry endpoint for observability
	OtelEndpoint string

	// Transport settings
	RequestTimeout time.Duration
	RetryMax       int

	// Rate limiting for the HTTP API
	RateLimitRPS   float64
	RateLimitBurst int

	// IANA time zone used for the "yesterday" calendar window;
	// empty means the host's local zone
	TimeZone string
}

// Load creates a new Config from environment variables
func Load() Config {
	return Config{
		Port:            GetEnvOrDefault("PORT", "8080"),
		StatsURL:        GetEnvOrDefault("STATS_URL", "https://blockchain.info/stats?format=json"),
		PriceHistoryURL: GetEnvOrDefault("PRICE_HISTORY_URL", "https://blockchain.info/charts/market-price?timespan=30days&format=json"),
		CacheTTL:        GetEnvAsDuration("CACHE_TTL", 5*time.Minute),
		CacheNamespace:  GetEnvOrDefault("CACHE_NAMESPACE", "crypticker"),
		RedisAddr:       GetEnvOrDefault("REDIS_ADDR", ""),
		RedisPassword:   GetEnvOrDefault("REDIS_PASSWORD", ""),
		RedisDB:         GetEnvAsInt("REDIS_DB", 0),
		OtelEndpoint:    GetEnvOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		RequestTimeout:  GetEnvAsDuration("REQUEST_TIMEOUT", 10*time.Second),
		RetryMax:        GetEnvAsInt("RETRY_MAX", 2),
		RateLimitRPS:    GetEnvAsFloat("RATE_LIMIT_RPS", 10.0),
		RateLimitBurst:  GetEnvAsInt("RATE_LIMIT_BURST", 20),
		TimeZone:        GetEnvOrDefault("TIME_ZONE", ""),
	}
}

// Location resolves the configured time zone, falling back to the host's
// local zone when unset or unparseable.
func (c Config) Location() *time.Location {
	if c.TimeZone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.Local
	}
	return loc
}

// GetEnv retrieves an environment variable and whether it exists
func GetEnv(key string) (string, bool) {
	value, exists := os.LookupEnv(key)
	return value, exists
}

// GetEnvOrDefault retrieves an environment variable or returns the default value if not set
func GetEnvOrDefault(key, defaultValue string) string {
	if value, exists := GetEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetEnvAsInt retrieves an environment variable as an integer with a default value
func GetEnvAsInt(key string, defaultValue int) int {
	if value, exists := GetEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// GetEnvAsFloat retrieves an environment variable as a float with a default value
func GetEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := GetEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// GetEnvAsDuration retrieves an environment variable as a duration with a default value
func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := GetEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
