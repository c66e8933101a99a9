package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/menye94/park-pricing/internal/storage"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, storage.StorageTypeLocal, cfg.Storage.Type)
	assert.Equal(t, 5*time.Minute, cfg.Storage.MirrorSyncInterval)
	assert.True(t, decimal.NewFromInt(2500).Equal(cfg.Pricing.USDToTZSRate))
	assert.True(t, decimal.RequireFromString("0.18").Equal(cfg.Pricing.TaxRate))
	assert.False(t, cfg.Pricing.CurrencyInDuplicateKey)
	assert.Equal(t, 10*time.Second, cfg.Pricing.StoreTimeout)
	assert.Equal(t, 4, cfg.Pricing.DetectorConcurrency)
	assert.Empty(t, cfg.Auth.APIKey)
	assert.Same(t, cfg, Get())
}

func TestLoadFromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9000
pricing:
  usd_to_tzs_rate: 2600
  tax_rate: 0.2
  currency_in_duplicate_key: true
cors:
  allowed_origins:
    - https://admin.example.com
`), 0o644))

	t.Setenv("API_KEY", "secret")
	t.Setenv("PARK_PRICING_STORAGE_BASE_PATH", "/tmp/quotes")
	t.Setenv("DATABASE_URL", "postgres://localhost/parks")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.True(t, decimal.NewFromInt(2600).Equal(cfg.Pricing.USDToTZSRate))
	assert.True(t, decimal.RequireFromString("0.2").Equal(cfg.Pricing.TaxRate))
	assert.True(t, cfg.Pricing.CurrencyInDuplicateKey)
	assert.Equal(t, []string{"https://admin.example.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "secret", cfg.Auth.APIKey)
	assert.Equal(t, "/tmp/quotes", cfg.Storage.BasePath)
	assert.Equal(t, "postgres://localhost/parks", GetDatabaseURL())
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PARK_PRICING_PRICING_USD_TO_TZS_RATE=2450.5\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("PARK_PRICING_PRICING_USD_TO_TZS_RATE") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("2450.5").Equal(cfg.Pricing.USDToTZSRate))
}

func TestValidate(t *testing.T) {
	t.Chdir(t.TempDir())
	base, err := Load("")
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"port", func(c *Config) { c.Server.Port = 0 }},
		{"storage type", func(c *Config) { c.Storage.Type = "s3" }},
		{"local path", func(c *Config) { c.Storage.BasePath = "" }},
		{"redis addr", func(c *Config) { c.Storage.Type = storage.StorageTypeRedis; c.Redis.Addr = "" }},
		{"rate limit", func(c *Config) { c.RateLimit.Burst = 0 }},
		{"mirror sync", func(c *Config) { c.Storage.MirrorSyncInterval = -time.Second }},
		{"exchange rate", func(c *Config) { c.Pricing.USDToTZSRate = decimal.Zero }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := *base
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
