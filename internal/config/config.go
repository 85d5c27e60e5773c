package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/NovaAI-innovation/backend12/internal/ratelimit"
)

// Config contains runtime configuration values.
type Config struct {
	Environment string `env:"APP_ENV"      envDefault:"development"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"gallery-api"`
	HTTPPort    string `env:"HTTP_PORT"    envDefault:"8080"`

	DatabaseURL string `env:"DATABASE_URL"`

	// AdminPasswordHash is the bcrypt digest the login endpoint compares
	// against. Generate one with cmd/hashpw.
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH"`

	// JWTSecret signs session tokens (HS256). Use a long random string,
	// e.g. `openssl rand -hex 32`.
	JWTSecret      string        `env:"JWT_SECRET_KEY"`
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"1h"`

	RateLimit RateLimitConfig `envPrefix:"RATE_LIMIT_"`

	Cloudinary CloudinaryConfig `envPrefix:"CLOUDINARY_"`

	// RedisAddr switches the rate limiter to its Redis backend when set,
	// for multi-instance deployments. Empty keeps counters in-process.
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	TelemetryEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	TelemetryInsecure bool   `env:"OTEL_EXPORTER_OTLP_INSECURE" envDefault:"true"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*"`
	CORSAllowedMethods []string `env:"CORS_ALLOWED_METHODS" envDefault:"GET,POST,PUT,DELETE,OPTIONS,PATCH"`
	CORSAllowedHeaders []string `env:"CORS_ALLOWED_HEADERS" envDefault:"Authorization,Content-Type"`
}

// RateLimitConfig holds per-action fixed-window policies.
type RateLimitConfig struct {
	LoginLimit    int           `env:"LOGIN_LIMIT"    envDefault:"5"`
	LoginWindow   time.Duration `env:"LOGIN_WINDOW"   envDefault:"1m"`
	UploadLimit   int           `env:"UPLOAD_LIMIT"   envDefault:"20"`
	UploadWindow  time.Duration `env:"UPLOAD_WINDOW"  envDefault:"1h"`
	DeleteLimit   int           `env:"DELETE_LIMIT"   envDefault:"30"`
	DeleteWindow  time.Duration `env:"DELETE_WINDOW"  envDefault:"1h"`
	BookingLimit  int           `env:"BOOKING_LIMIT"  envDefault:"10"`
	BookingWindow time.Duration `env:"BOOKING_WINDOW" envDefault:"1h"`
}

// LoginPolicy returns the fixed-window policy for login attempts.
func (c RateLimitConfig) LoginPolicy() ratelimit.Policy {
	return ratelimit.Policy{Limit: c.LoginLimit, Window: c.LoginWindow}
}

// UploadPolicy returns the fixed-window policy for image uploads.
func (c RateLimitConfig) UploadPolicy() ratelimit.Policy {
	return ratelimit.Policy{Limit: c.UploadLimit, Window: c.UploadWindow}
}

// DeletePolicy returns the fixed-window policy for image deletions.
func (c RateLimitConfig) DeletePolicy() ratelimit.Policy {
	return ratelimit.Policy{Limit: c.DeleteLimit, Window: c.DeleteWindow}
}

// BookingPolicy returns the fixed-window policy for booking submissions.
func (c RateLimitConfig) BookingPolicy() ratelimit.Policy {
	return ratelimit.Policy{Limit: c.BookingLimit, Window: c.BookingWindow}
}

// CloudinaryConfig carries blob store credentials.
type CloudinaryConfig struct {
	CloudName string `env:"CLOUD_NAME"`
	APIKey    string `env:"API_KEY"`
	APISecret string `env:"API_SECRET"`
}

// Load reads configuration from the environment, with an optional .env file.
func Load() (Config, error) {
	// Missing .env is fine; real deployments set variables directly.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET_KEY is required")
	}

	return cfg, nil
}

// Configured reports whether blob storage credentials are complete.
func (c CloudinaryConfig) Configured() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}
