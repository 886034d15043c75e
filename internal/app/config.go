package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/yungbote/sales-backend/internal/data/db"
	"github.com/yungbote/sales-backend/internal/observability"
)

type Config struct {
	Port            string        `yaml:"port" env:"PORT"`
	LogMode         string        `yaml:"log_mode" env:"LOG_MODE"`
	Env             string        `yaml:"env" env:"APP_ENV"`
	Version         string        `yaml:"version" env:"APP_VERSION"`
	CORSOrigins     []string      `yaml:"cors_allowed_origins" env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
	DB              db.Config     `yaml:"db"`

	Otel    observability.OtelConfig    `yaml:"otel"`
	Metrics observability.MetricsConfig `yaml:"metrics"`
}

func DefaultConfig() Config {
	return Config{
		Port:            "8080",
		LogMode:         "development",
		Env:             "development",
		Version:         "dev",
		ShutdownTimeout: 15 * time.Second,
		DB: db.Config{
			Driver:      db.DriverPostgres,
			AutoMigrate: true,
			SlowQuery:   time.Second,
			Postgres: db.PostgresConfig{
				Host:    "localhost",
				Port:    "5432",
				User:    "postgres",
				Name:    "sales",
				SSLMode: "disable",
			},
			SQLitePath: "sales.db",
		},
		Otel: observability.OtelConfig{
			ServiceName: "sales-backend",
			SampleRatio: 0.1,
		},
		Metrics: observability.MetricsConfig{
			Enabled:        true,
			ScrapeInterval: 10 * time.Second,
		},
	}
}

// LoadConfig layers code defaults, the YAML file named by CONFIG_FILE (if
// any), then environment variables.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	cfg.Otel.Environment = cfg.Env
	cfg.Otel.Version = cfg.Version
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.DB.Driver {
	case db.DriverPostgres, db.DriverSQLite:
	default:
		return fmt.Errorf("DB_DRIVER must be %q or %q, got %q", db.DriverPostgres, db.DriverSQLite, c.DB.Driver)
	}
	if strings.TrimSpace(c.Port) == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	if c.Metrics.ScrapeInterval <= 0 {
		return fmt.Errorf("METRICS_SCRAPE_INTERVAL must be positive")
	}
	return c.Otel.Validate()
}

func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(strings.TrimSpace(c.Port), ":")
}
