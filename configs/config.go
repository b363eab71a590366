package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration values.
type Config struct {
	ServerHost       string
	ServerPort       string
	ServerMode       string
	DatabaseHost     string
	DatabasePort     string
	DatabaseUser     string
	DatabasePassword string
	DatabaseName     string
	DatabaseURL      string
	LogLevel         string
	LogFormat        string
	CORSOrigins      []string

	DefaultMaxPages     int
	MaxPagesLimit       int
	MaxConcurrentAudits int
	AuditTimeout        time.Duration
	CrawlRatePerSecond  float64
}

// Load reads configuration exclusively from environment variables (optionally .env file).
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	// Server
	cfg.ServerHost = getEnv("HOST", "0.0.0.0")
	cfg.ServerPort = getEnv("PORT", "8080")
	cfg.ServerMode = getEnv("GIN_MODE", "debug")

	// Database (optional; audit history is disabled without it)
	cfg.DatabaseHost = getEnv("DB_HOST", "localhost")
	cfg.DatabasePort = getEnv("DB_PORT", "3306")
	cfg.DatabaseUser = getEnv("DB_USER", "")
	cfg.DatabasePassword = getEnv("DB_PASSWORD", "")
	cfg.DatabaseName = getEnv("DB_NAME", "")
	if cfg.DatabaseEnabled() {
		// user:pass@tcp(host:port)/dbname?parseTime=true
		cfg.DatabaseURL = fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?parseTime=true",
			cfg.DatabaseUser, cfg.DatabasePassword,
			cfg.DatabaseHost, cfg.DatabasePort,
			cfg.DatabaseName,
		)
	}

	// Logging
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("LOG_FORMAT", "text")

	// CORS
	origins := getEnv("CORS_ORIGINS", "")
	if origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}

	// Auditing
	var err error
	if cfg.DefaultMaxPages, err = getInt("DEFAULT_MAX_PAGES", 5); err != nil {
		return nil, err
	}
	if cfg.MaxPagesLimit, err = getInt("MAX_PAGES_LIMIT", 20); err != nil {
		return nil, err
	}
	if cfg.MaxPagesLimit < 1 {
		return nil, fmt.Errorf("invalid MAX_PAGES_LIMIT: must be at least 1")
	}
	if cfg.MaxConcurrentAudits, err = getInt("MAX_CONCURRENT_AUDITS", 4); err != nil {
		return nil, err
	}
	if cfg.MaxConcurrentAudits < 1 {
		return nil, fmt.Errorf("invalid MAX_CONCURRENT_AUDITS: must be at least 1")
	}

	timeoutSec, err := getInt("AUDIT_TIMEOUT_SECONDS", 120)
	if err != nil {
		return nil, err
	}
	cfg.AuditTimeout = time.Duration(timeoutSec) * time.Second

	rps := getEnv("CRAWL_RATE_PER_SECOND", "0")
	cfg.CrawlRatePerSecond, err = strconv.ParseFloat(rps, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid CRAWL_RATE_PER_SECOND: %w", err)
	}

	return cfg, nil
}

// DatabaseEnabled reports whether enough database settings are present to
// persist audit history.
func (c *Config) DatabaseEnabled() bool {
	return c.DatabaseUser != "" && c.DatabaseName != ""
}

// getEnv returns env var or default.
func getEnv(key, def string) string {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	return val
}

func getInt(key string, def int) (int, error) {
	n, err := strconv.Atoi(getEnv(key, strconv.Itoa(def)))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
