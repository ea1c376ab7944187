package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppName string
	AppEnv  string
	AppURL  string
	Port    string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Email (provider chosen by which API key is configured)
	EmailFrom        string
	ResendAPIKey     string
	SparkPostAPIKey  string
	SparkPostBaseURL string
	EmailSendTimeout time.Duration

	// Admin login (plaintext password, or a bcrypt hash when no plaintext is set)
	AdminEmail        string
	AdminPassword     string
	AdminPasswordHash string

	// CORS
	CORSAllowedOrigins []string

	// Static assets served for unmatched paths
	StaticDir string

	// Observability (optional)
	SentryDSN string
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		AppName: envString("APP_NAME", "GridShare"),
		AppEnv:  envRequired("APP_ENV"), // Required: 'development' or 'production'
		AppURL:  envRequired("APP_URL"), // Required: base URL for confirmation links
		Port:    envString("PORT", "8090"),

		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/gridshare.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		EmailFrom:        envString("EMAIL_FROM", "noreply@example.com"),
		ResendAPIKey:     envString("RESEND_API_KEY", ""),
		SparkPostAPIKey:  envString("SPARKPOST_API_KEY", ""),
		SparkPostBaseURL: envString("SPARKPOST_BASE_URL", "https://api.sparkpost.com/api/v1"),
		EmailSendTimeout: envDuration("EMAIL_SEND_TIMEOUT", 30*time.Second),

		AdminEmail:        envString("ADMIN_EMAIL", ""),
		AdminPassword:     envString("ADMIN_PASSWORD", ""),
		AdminPasswordHash: envString("ADMIN_PASSWORD_HASH", ""),

		CORSAllowedOrigins: envList("CORS_ALLOWED_ORIGINS", []string{"*"}),

		StaticDir: envString("STATIC_DIR", "static"),

		SentryDSN: envString("SENTRY_DSN", ""),
	}

	// Production: validate required services
	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction ensures an email provider is configured for production
// deployments. Development falls back to email log mode for local testing.
func validateProduction(cfg *Config) {
	if cfg.ResendAPIKey == "" && cfg.SparkPostAPIKey == "" {
		slog.Error("production deployment requires RESEND_API_KEY or SPARKPOST_API_KEY",
			"hint", "set APP_ENV=development for local testing with email log mode")
		os.Exit(1)
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envList(key string, def []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
