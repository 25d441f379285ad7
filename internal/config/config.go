package config

import (
	"os"
	"strings"
	"time"
)

type Config struct {
	Port        string
	Environment string
	CORSOrigins string
	// Flash notices are kept in a signed cookie
	SessionSecret string
	// Admin mode gate. When both are empty the admin toggle is open.
	AdminJWTSecret string
	AdminJWKSURL   string
	// Seed data
	SeedFile  string
	SeedDelay time.Duration
	// Logging
	LogDir      string
	LogMaxFiles int
	LogLevel    string
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:           getEnv("PORT", "8080"),
		Environment:    env,
		CORSOrigins:    getEnv("CORS_ORIGINS", "http://localhost:3000"),
		SessionSecret:  getEnv("SESSION_SECRET", getDefaultSessionSecret(env)),
		AdminJWTSecret: getEnv("ADMIN_JWT_SECRET", ""),
		AdminJWKSURL:   getEnv("ADMIN_JWKS_URL", ""),
		SeedFile:       getEnv("SEED_FILE", ""),
		SeedDelay:      getDuration("SEED_DELAY", 500*time.Millisecond),
		LogDir:         getEnv("LOG_DIR", ""),
		LogMaxFiles:    DefaultLogMaxFiles,
		LogLevel:       getEnv("LOG_LEVEL", getDefaultLogLevel(env)),
	}
}

// AdminGateEnabled reports whether switching to admin mode requires a token.
func (c *Config) AdminGateEnabled() bool {
	return c.AdminJWTSecret != "" || c.AdminJWKSURL != ""
}

// Origins splits CORSOrigins on commas.
func (c *Config) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// getDefaultLogLevel returns debug outside production
func getDefaultLogLevel(env string) string {
	if env == "dev" {
		return "debug"
	}
	return "info"
}

func getDefaultSessionSecret(env string) string {
	if env == "prod" {
		return ""
	}
	return "helpcenter-dev-session-secret"
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return defaultValue
	}
	return d
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
