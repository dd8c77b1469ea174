package config

import (
	"os"
	"strconv"
	"time"
)

// parseEnv overlays Config fields from environment variables. Unset or
// malformed variables leave the current value in place.
//
// Supported variables:
//
//	SERVER_ADDRESS      HTTP bind address (e.g., ":8080")
//	DATABASE_DSN        PostgreSQL DSN
//	JWT_SECRET          HMAC secret for signing tokens
//	TOKEN_TTL_MINUTES   bearer token validity, minutes
func parseEnv(config *Config) {
	if v := os.Getenv("SERVER_ADDRESS"); v != "" {
		config.EndpointAddr = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		config.SecretKey = v
	}
	if v := os.Getenv("TOKEN_TTL_MINUTES"); v != "" {
		if minutes, err := strconv.Atoi(v); err == nil {
			config.TokenValidityDuration = time.Duration(minutes) * time.Minute
		}
	}
}
