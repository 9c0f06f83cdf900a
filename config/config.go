package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Backend
	BackendURL     string
	TimeoutSeconds int

	// Rate limiting toward the backend
	RatePerSecond float64
	RateBurst     int

	// Local state
	StorePath string

	// HTTP server (MCP)
	HTTPPort string
	APIKey   string
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BackendURL:     "http://localhost:5000",
		TimeoutSeconds: 30,
		RatePerSecond:  2.0,
		RateBurst:      3,
		StorePath:      defaultStorePath(),
		HTTPPort:       "8080",
	}
}

// LoadFromEnv loads .env file (if present) then overrides config from environment variables.
func (c *Config) LoadFromEnv() {
	// Auto-load .env file; silently ignored if missing
	_ = godotenv.Load()

	if v := os.Getenv("OFERTAS_BACKEND_URL"); v != "" {
		c.BackendURL = v
	}
	if v := os.Getenv("OFERTAS_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.TimeoutSeconds = n
		}
	}
	if v := os.Getenv("OFERTAS_RATE_PER_SECOND"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.RatePerSecond = f
		}
	}
	if v := os.Getenv("OFERTAS_RATE_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RateBurst = n
		}
	}
	if v := os.Getenv("OFERTAS_STORE"); v != "" {
		c.StorePath = v
	}
	if v := os.Getenv("PORT"); v != "" {
		c.HTTPPort = v
	}
	if v := os.Getenv("OFERTAS_API_KEY"); v != "" {
		c.APIKey = v
	}
}

// defaultStorePath returns the default location of the local state database.
// Falls back to the working directory when no home directory is available.
func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "ofertas.db"
	}
	return filepath.Join(home, ".ofertas", "ofertas.db")
}
