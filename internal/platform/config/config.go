package config

import (
	"os"
	"time"
)

// Config captures process-level configuration. FromEnv builds it from
// environment variables so main stays lean.
type Config struct {
	Addr string

	// PostgresURL enables the Postgres account store when set; otherwise the
	// in-memory store is used.
	PostgresURL string

	// RedisURL enables the Redis geolocation cache when set; otherwise an
	// in-memory cache is used.
	RedisURL string

	// Geolocation API settings.
	GeoBaseURL string
	GeoTimeout time.Duration

	ShutdownTimeout time.Duration
}

// DefaultGeoBaseURL is the public free IP API endpoint.
const DefaultGeoBaseURL = "https://freeipapi.com/api/json"

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	addr := os.Getenv("MINIBANK_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	geoBaseURL := os.Getenv("MINIBANK_GEO_BASE_URL")
	if geoBaseURL == "" {
		geoBaseURL = DefaultGeoBaseURL
	}

	geoTimeout := 10 * time.Second
	if raw := os.Getenv("MINIBANK_GEO_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			geoTimeout = d
		}
	}

	return Config{
		Addr:            addr,
		PostgresURL:     os.Getenv("MINIBANK_POSTGRES_URL"),
		RedisURL:        os.Getenv("MINIBANK_REDIS_URL"),
		GeoBaseURL:      geoBaseURL,
		GeoTimeout:      geoTimeout,
		ShutdownTimeout: 10 * time.Second,
	}
}
