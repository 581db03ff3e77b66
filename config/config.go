package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the dashboard backend.
type Config struct {
	Environment string
	Port        string

	UpstreamURL     string
	UpstreamTimeout time.Duration
	JWTSecret       string

	// DBUrl is optional; empty disables the save journal.
	DBUrl string

	Email EmailConfig

	CORSAllowedOrigins []string
	SessionIdleTTL     time.Duration
}

// EmailConfig configures partial-save reports.
type EmailConfig struct {
	Provider           string
	FromAddress        string
	FromName           string
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	InsecureSkipVerify bool
}

// Load reads configuration from environment variables.
// Outside production it first loads a .env file when one exists.
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// In production the environment is the only source.
	if env != "production" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			slog.Warn("could not load .env file", "err", err)
		}
	}

	cfg := &Config{
		Environment: env,
		Port:        getenv("PORT", "8080"),
		UpstreamURL: strings.TrimRight(os.Getenv("UPSTREAM_API_URL"), "/"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		DBUrl:       os.Getenv("DATABASE_URL"),
		Email: EmailConfig{
			Provider:           getenv("EMAIL_PROVIDER", "noop"),
			FromAddress:        os.Getenv("EMAIL_FROM_ADDRESS"),
			FromName:           os.Getenv("EMAIL_FROM_NAME"),
			AWSRegion:          getenv("AWS_REGION", "us-east-1"),
			AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		},
		CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
	}

	if cfg.UpstreamURL == "" {
		return nil, errors.New("UPSTREAM_API_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	var err error
	if cfg.UpstreamTimeout, err = durationEnv("UPSTREAM_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.SessionIdleTTL, err = durationEnv("SESSION_IDLE_TTL", 2*time.Hour); err != nil {
		return nil, err
	}
	if s := os.Getenv("SES_INSECURE_SKIP_VERIFY"); s != "" {
		if cfg.Email.InsecureSkipVerify, err = strconv.ParseBool(s); err != nil {
			return nil, fmt.Errorf("SES_INSECURE_SKIP_VERIFY: %w", err)
		}
	}
	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, s)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
