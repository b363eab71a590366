package configs_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Priyanka-kale21/webhack/configs"
)

// clearEnv blanks every variable Load reads so host settings do not leak in.
func clearEnv(t *testing.T) {
	for _, k := range []string{
		"HOST", "PORT", "GIN_MODE", "LOG_LEVEL", "LOG_FORMAT", "CORS_ORIGINS",
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME",
		"DEFAULT_MAX_PAGES", "MAX_PAGES_LIMIT", "MAX_CONCURRENT_AUDITS",
		"AUDIT_TIMEOUT_SECONDS", "CRAWL_RATE_PER_SECOND",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		clearEnv(t)

		cfg, err := configs.Load()
		require.NoError(t, err)
		assert.Equal(t, "0.0.0.0", cfg.ServerHost)
		assert.Equal(t, "8080", cfg.ServerPort)
		assert.Equal(t, "debug", cfg.ServerMode)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Empty(t, cfg.CORSOrigins)
		assert.False(t, cfg.DatabaseEnabled())
		assert.Empty(t, cfg.DatabaseURL)
		assert.Equal(t, 5, cfg.DefaultMaxPages)
		assert.Equal(t, 20, cfg.MaxPagesLimit)
		assert.Equal(t, 4, cfg.MaxConcurrentAudits)
		assert.Equal(t, 120*time.Second, cfg.AuditTimeout)
		assert.Zero(t, cfg.CrawlRatePerSecond)
	})

	t.Run("Overrides", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("PORT", "9090")
		t.Setenv("LOG_FORMAT", "json")
		t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test,")
		t.Setenv("DB_USER", "audit")
		t.Setenv("DB_PASSWORD", "secret")
		t.Setenv("DB_NAME", "webhack")
		t.Setenv("DB_HOST", "db")
		t.Setenv("MAX_PAGES_LIMIT", "50")
		t.Setenv("AUDIT_TIMEOUT_SECONDS", "30")
		t.Setenv("CRAWL_RATE_PER_SECOND", "2.5")

		cfg, err := configs.Load()
		require.NoError(t, err)
		assert.Equal(t, "9090", cfg.ServerPort)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
		assert.True(t, cfg.DatabaseEnabled())
		assert.Equal(t, "audit:secret@tcp(db:3306)/webhack?parseTime=true", cfg.DatabaseURL)
		assert.Equal(t, 50, cfg.MaxPagesLimit)
		assert.Equal(t, 30*time.Second, cfg.AuditTimeout)
		assert.InDelta(t, 2.5, cfg.CrawlRatePerSecond, 1e-9)
	})

	t.Run("Invalid Values", func(t *testing.T) {
		cases := map[string]string{
			"DEFAULT_MAX_PAGES":     "five",
			"MAX_PAGES_LIMIT":       "0",
			"MAX_CONCURRENT_AUDITS": "-1",
			"AUDIT_TIMEOUT_SECONDS": "soon",
			"CRAWL_RATE_PER_SECOND": "fast",
		}
		for key, val := range cases {
			t.Run(key, func(t *testing.T) {
				clearEnv(t)
				t.Setenv(key, val)

				_, err := configs.Load()
				require.Error(t, err)
				assert.Contains(t, err.Error(), "invalid "+key)
			})
		}
	})
}
