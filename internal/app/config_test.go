package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/sales-backend/internal/data/db"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, db.DriverPostgres, cfg.DB.Driver)
	assert.True(t, cfg.DB.AutoMigrate)
}

func TestLoadConfigLayers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "9000"
db:
  driver: sqlite
  sqlite_path: /tmp/sales-test.db
  auto_migrate: false
cors_allowed_origins:
  - https://a.example.com
`), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "9100")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://b.example.com,https://c.example.com")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":9100", cfg.Addr())
	assert.Equal(t, db.DriverSQLite, cfg.DB.Driver)
	assert.Equal(t, "/tmp/sales-test.db", cfg.DB.SQLitePath)
	assert.False(t, cfg.DB.AutoMigrate)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"https://b.example.com", "https://c.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, "localhost", cfg.DB.Postgres.Host)
}

func TestLoadConfigRejectsUnknownDriver(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("DB_DRIVER", "mysql")
	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfigTelemetry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
env: staging
version: 1.4.0
otel:
  enabled: true
  endpoint: collector:4318
  sample_ratio: 0.5
  headers:
    x-team: sales
metrics:
  enabled: false
  scrape_interval: 30s
`), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "authorization=Bearer abc,x-team=ops")
	t.Setenv("METRICS_SCRAPE_INTERVAL", "5s")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.Otel.Enabled)
	assert.Equal(t, "collector:4318", cfg.Otel.Endpoint)
	assert.InDelta(t, 0.5, cfg.Otel.SampleRatio, 1e-9)
	assert.Equal(t, map[string]string{"authorization": "Bearer abc", "x-team": "ops"}, cfg.Otel.Headers)
	assert.Equal(t, "sales-backend", cfg.Otel.ServiceName)
	assert.Equal(t, "staging", cfg.Otel.Environment)
	assert.Equal(t, "1.4.0", cfg.Otel.Version)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, 5*time.Second, cfg.Metrics.ScrapeInterval)
	assert.Equal(t, "sales-backend", otelServiceName(cfg))

	cfg.Otel.Enabled = false
	assert.Empty(t, otelServiceName(cfg))
}

func TestLoadConfigRejectsSampleRatio(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("OTEL_SAMPLER_RATIO", "1.5")
	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OTEL_SAMPLER_RATIO")
}
