package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	DBUrl       string
	Environment string
	Port        string

	CORSAllowedOrigins []string

	// JWTSecret verifies admin bearer tokens. Token issuance lives in the
	// couple's auth service, not here.
	JWTSecret string

	EmailProvider    string
	EmailFromAddress string
	EmailFromName    string
	AWSRegion        string
	AWSAccessKeyID   string
	AWSSecretKey     string

	// USPSUserID enables the address standardization endpoint. Empty means
	// the endpoint reports itself unconfigured.
	USPSUserID string
	USPSAPIURL string

	RSVPRateLimit  int
	RSVPRateWindow time.Duration
}

// Load loads configuration from environment variables
// It attempts to load from .env file if not in production
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// Load .env file if not in production
	// We don't return error here because in production .env might not exist
	// and we rely on system environment variables
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment:      env,
		DBUrl:            os.Getenv("DATABASE_URL"),
		Port:             os.Getenv("PORT"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		EmailProvider:    os.Getenv("EMAIL_PROVIDER"),
		EmailFromAddress: os.Getenv("EMAIL_FROM_ADDRESS"),
		EmailFromName:    os.Getenv("EMAIL_FROM_NAME"),
		AWSRegion:        os.Getenv("AWS_REGION"),
		AWSAccessKeyID:   os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretKey:     os.Getenv("AWS_SECRET_ACCESS_KEY"),
		USPSUserID:       os.Getenv("USPS_USER_ID"),
		USPSAPIURL:       os.Getenv("USPS_API_URL"),
	}

	// Set defaults
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.EmailProvider == "" {
		cfg.EmailProvider = "noop"
	}
	if cfg.AWSRegion == "" {
		cfg.AWSRegion = "us-east-1"
	}

	for _, o := range strings.Split(os.Getenv("CORS_ALLOWED_ORIGINS"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		cfg.CORSAllowedOrigins = []string{"http://localhost:3000"}
	}

	cfg.RSVPRateLimit = 5
	if s := os.Getenv("RSVP_RATE_LIMIT"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			cfg.RSVPRateLimit = v
		}
	}
	cfg.RSVPRateWindow = 60 * time.Second
	if s := os.Getenv("RSVP_RATE_WINDOW_SECONDS"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			cfg.RSVPRateWindow = time.Duration(v) * time.Second
		}
	}

	return cfg, nil
}
