package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreSQL    = "sql"
	StoreS3     = "s3"
	StoreMemory = "memory"
)

type Config struct {
	// Application
	AppName  string
	AppEnv   string
	Port     string
	Timezone string

	// Store backend: "sql" (default), "s3" or "memory"
	StoreBackend string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Storage (S3-compatible: MinIO, AWS S3, Cloudflare R2, etc.)
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3Endpoint  string // Optional: for S3-compatible services
	S3Prefix    string

	// Live updates
	EventBuffer     int
	EventsKeepAlive time.Duration

	// Writes per client per window
	WriteRateLimit  int
	WriteRateWindow time.Duration

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
		// Application
		AppName:  envString("APP_NAME", "Readmate"),
		AppEnv:   envString("APP_ENV", "development"),
		Port:     envString("PORT", "8090"),
		Timezone: envString("TIMEZONE", "Local"),

		StoreBackend: envString("STORE_BACKEND", StoreSQL),

		// Database
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/readmate.db?_pragma=journal_mode(WAL)"),

		// Storage
		S3Region:    envString("S3_REGION", "us-east-1"),
		S3Bucket:    envString("S3_BUCKET", ""),
		S3AccessKey: envString("S3_ACCESS_KEY", ""),
		S3SecretKey: envString("S3_SECRET_KEY", ""),
		S3Endpoint:  envString("S3_ENDPOINT", ""),
		S3Prefix:    envString("S3_PREFIX", "readmate"),

		EventBuffer:     envInt("EVENT_BUFFER", 16),
		EventsKeepAlive: envDuration("EVENTS_KEEPALIVE", 25*time.Second),

		WriteRateLimit:  envInt("WRITE_RATE_LIMIT", 120),
		WriteRateWindow: envDuration("WRITE_RATE_WINDOW", time.Minute),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),
	}

	if cfg.StoreBackend == StoreS3 {
		validateS3(cfg)
	}

	return cfg
}

// validateS3 ensures the bucket settings are present when S3 is the store.
func validateS3(cfg *Config) {
	if cfg.S3Bucket == "" || cfg.S3AccessKey == "" || cfg.S3SecretKey == "" {
		slog.Error("s3 store requires S3_BUCKET, S3_ACCESS_KEY and S3_SECRET_KEY",
			"hint", "set STORE_BACKEND=sql to use the local database")
		os.Exit(1)
	}
}

// Location resolves Timezone. An unknown zone falls back to the local one.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		slog.Warn("config invalid timezone, using local", "timezone", c.Timezone, "error", err)
		return time.Local
	}
	return loc
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
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

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Sanitized returns a copy of the config with only public/safe fields.
// Safe to expose in ctx and templates.
func (c *Config) Sanitized() *Config {
	return &Config{
		AppName:      c.AppName,
		AppEnv:       c.AppEnv,
		Port:         c.Port,
		Timezone:     c.Timezone,
		StoreBackend: c.StoreBackend,
	}
}
