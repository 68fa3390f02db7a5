// Package config provides configuration management for the portfolio
// tracker backend. It loads configuration from environment variables and
// an optional .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Pricing  PricingConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            string
	APIToken        string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds Postgres configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
	SSLMode  string
}

// ConnectionString builds a lib/pq connection string from the parts
func (c DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

// PricingConfig holds price resolution configuration.
// Defaults match the documented contract: cached prices are fresh for
// 300 seconds and at most 10 provider calls are issued per minute.
type PricingConfig struct {
	CacheTTL        time.Duration
	RateLimit       int
	RatePeriod      time.Duration
	ProviderBaseURL string
	RequestTimeout  time.Duration
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// LoadConfig loads configuration from .env file and environment variables
func LoadConfig() (*Config, error) {
	// .env file is optional - environment variables can be set directly
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnv("SERVER_PORT", "8080"),
			APIToken:        getEnv("API_TOKEN", "dev-token"),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Database: getEnv("DB_NAME", "stockfolio"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Pricing: PricingConfig{
			CacheTTL:        getEnvAsDuration("PRICE_CACHE_TTL", 300*time.Second),
			RateLimit:       getEnvAsInt("PRICE_RATE_LIMIT", 10),
			RatePeriod:      getEnvAsDuration("PRICE_RATE_PERIOD", 60*time.Second),
			ProviderBaseURL: getEnv("QUOTE_PROVIDER_URL", "https://query1.finance.yahoo.com"),
			RequestTimeout:  getEnvAsDuration("QUOTE_REQUEST_TIMEOUT", 10*time.Second),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the loaded configuration is usable
func (c *Config) Validate() error {
	if c.Pricing.CacheTTL <= 0 {
		return fmt.Errorf("price cache TTL must be positive, got %s", c.Pricing.CacheTTL)
	}
	if c.Pricing.RateLimit <= 0 {
		return fmt.Errorf("price rate limit must be positive, got %d", c.Pricing.RateLimit)
	}
	if c.Pricing.RatePeriod <= 0 {
		return fmt.Errorf("price rate period must be positive, got %s", c.Pricing.RatePeriod)
	}
	if c.Pricing.ProviderBaseURL == "" {
		return fmt.Errorf("quote provider URL cannot be empty")
	}
	return nil
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer with a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration gets an environment variable as a duration with a default value
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
