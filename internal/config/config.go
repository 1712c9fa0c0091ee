package config

import (
	"os"
	"strconv"
)

// Config holds the core runtime configuration for the service.
// Values are primarily sourced from environment variables, with
// sensible defaults where appropriate. See .env.example.
type Config struct {
	DatabaseURL string

	// JWTSecret signs and verifies bearer tokens. Required; startup
	// fails without it.
	JWTSecret string

	// TokenTTLHours is the lifetime of issued bearer tokens.
	TokenTTLHours int

	// InactivityMinutes is how long an active session may go without a
	// logged drink before the background worker closes it.
	InactivityMinutes int

	ListenAddr string

	// CORSOrigin is the value served in Access-Control-Allow-Origin for
	// the browser client.
	CORSOrigin string
}

// Load reads configuration from environment variables and applies defaults.
func Load() *Config {
	cfg := &Config{
		DatabaseURL:       os.Getenv("APP_DATABASE_URL"),
		JWTSecret:         os.Getenv("APP_JWT_SECRET"),
		TokenTTLHours:     168,
		InactivityMinutes: 180,
		ListenAddr:        getenv("APP_LISTEN_ADDR", ":8080"),
		CORSOrigin:        getenv("APP_CORS_ORIGIN", "*"),
	}

	if v := os.Getenv("APP_TOKEN_TTL_HOURS"); v != "" {
		if hours, err := strconv.Atoi(v); err == nil && hours > 0 {
			cfg.TokenTTLHours = hours
		}
	}
	if v := os.Getenv("APP_INACTIVITY_MINUTES"); v != "" {
		if mins, err := strconv.Atoi(v); err == nil && mins > 0 {
			cfg.InactivityMinutes = mins
		}
	}

	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
