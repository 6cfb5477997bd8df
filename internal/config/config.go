package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	ServerPort   int
	DatabasePath string
	JWTSecret    string
	TokenTTL     time.Duration
	OverdueCron  string // cron expression for the overdue-task sweep
	CORSOrigin   string
	Env          string
}

// Load loads configuration from the environment, falling back to an .env
// file and then to defaults. The JWT secret has no default outside dev.
func Load() (*Config, error) {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT %q: %w", portStr, err)
	}

	ttlStr := getEnv("TOKEN_TTL", "24h")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL %q: %w", ttlStr, err)
	}

	env := getEnv("APP_ENV", "development")
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		if env == "production" {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		secret = "taskboard-dev-secret"
	}

	return &Config{
		ServerPort:   port,
		DatabasePath: getEnv("DATABASE_PATH", "./taskboard.db"),
		JWTSecret:    secret,
		TokenTTL:     ttl,
		OverdueCron:  getEnv("OVERDUE_CRON", "0 6 * * *"),
		CORSOrigin:   getEnv("CORS_ORIGIN", "http://localhost:3000"),
		Env:          env,
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
