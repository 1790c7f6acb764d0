package app

import (
	"errors"
	"os"
	"strconv"
	"time"
)

type Config struct {
	SigningSecret string // Required: shared HMAC secret for the token codec

	AccessTokenTTL  time.Duration // Optional: access token lifetime (default: 1h)
	RefreshTokenTTL time.Duration // Optional: refresh token lifetime (default: 168h)
	ResetTokenTTL   time.Duration // Optional: reset token lifetime (default: 1h)

	DatabaseFile string // Optional: path to SQLite database file (default: ./identity.db)
	ResetURLBase string // Optional: base URL embedded in reset mails

	SMTPAddr     string  // Optional: host:port of the mail relay; empty logs instead of sending
	SMTPFrom     string  // Optional: From address for reset mails
	MailPerSec   float64 // Optional: sustained outbound mail rate (default: 1)
	MailBurst    int     // Optional: outbound mail burst (default: 5)

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

func LoadConfig() (Config, error) {
	cfg := Config{
		SigningSecret: os.Getenv("IDENTITY_SIGNING_SECRET"),

		AccessTokenTTL:  getEnvDurationOrDefault("IDENTITY_ACCESS_TOKEN_TTL", 1*time.Hour),
		RefreshTokenTTL: getEnvDurationOrDefault("IDENTITY_REFRESH_TOKEN_TTL", 7*24*time.Hour),
		ResetTokenTTL:   getEnvDurationOrDefault("IDENTITY_RESET_TOKEN_TTL", 1*time.Hour),

		DatabaseFile: getEnvOrDefault("IDENTITY_DATABASE_FILE", "identity.db"),
		ResetURLBase: getEnvOrDefault("IDENTITY_RESET_URL_BASE", "http://localhost:8080/reset-password"),

		SMTPAddr:   os.Getenv("SMTP_ADDR"),
		SMTPFrom:   getEnvOrDefault("SMTP_FROM", "no-reply@localhost"),
		MailPerSec: getEnvFloatOrDefault("SMTP_RATE_PER_SECOND", 1),
		MailBurst:  getEnvIntOrDefault("SMTP_BURST", 5),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}

	if cfg.SigningSecret == "" {
		return Config{}, errors.New("IDENTITY_SIGNING_SECRET must be set")
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer milliseconds, matching deployments that
	// configure TTLs as plain numbers (e.g. 3600000).
	if ms, err := strconv.Atoi(value); err == nil {
		return time.Duration(ms) * time.Millisecond
	}

	return defaultValue
}
