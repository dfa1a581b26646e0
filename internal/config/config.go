package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

const devJWTSecret = "dev-secret-change-in-production"

// Config holds the API server settings read from the environment.
type Config struct {
	Port           string
	Env            string
	DatabaseDSN    string
	JWTSecret      string
	JWTExpiry      time.Duration
	DefaultLength  int
	MaxLength      int
	MaxCount       int
	RateLimitRPS   float64
	RateLimitBurst int
	MetricsEnabled bool
}

// Load reads the configuration from the environment, falling back to development defaults.
func Load() (Config, error) {
	var errs []error

	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		Env:            getEnv("ENV", "development"),
		DatabaseDSN:    getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/passgen?parseTime=true"),
		JWTSecret:      getEnv("JWT_SECRET", devJWTSecret),
		JWTExpiry:      getDuration("JWT_EXPIRY", 24*time.Hour, &errs),
		DefaultLength:  getInt("PASSGEN_DEFAULT_LENGTH", 16, &errs),
		MaxLength:      getInt("PASSGEN_MAX_LENGTH", 1024, &errs),
		MaxCount:       getInt("PASSGEN_MAX_COUNT", 100, &errs),
		RateLimitRPS:   getFloat("RATE_LIMIT_RPS", 10, &errs),
		RateLimitBurst: getInt("RATE_LIMIT_BURST", 20, &errs),
		MetricsEnabled: getBool("METRICS_ENABLED", true, &errs),
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the settings for consistency.
func (c Config) Validate() error {
	switch {
	case c.Env == "production" && c.JWTSecret == devJWTSecret:
		return errors.New("JWT_SECRET must be set in production environment")
	case c.MaxLength <= 0:
		return fmt.Errorf("PASSGEN_MAX_LENGTH must be positive, got %d", c.MaxLength)
	case c.DefaultLength < 0 || c.DefaultLength > c.MaxLength:
		return fmt.Errorf("PASSGEN_DEFAULT_LENGTH must be between 0 and %d, got %d", c.MaxLength, c.DefaultLength)
	case c.MaxCount <= 0:
		return fmt.Errorf("PASSGEN_MAX_COUNT must be positive, got %d", c.MaxCount)
	case c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0:
		return errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	case c.JWTExpiry <= 0:
		return errors.New("JWT_EXPIRY must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int, errs *[]error) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return n
}

func getFloat(key string, fallback float64, errs *[]error) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return f
}

func getBool(key string, fallback bool, errs *[]error) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return b
}

func getDuration(key string, fallback time.Duration, errs *[]error) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return d
}
