// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Store     StoreConfig     `yaml:"store"`
	Deals     DealsConfig     `yaml:"deals"`
	Notify    NotifyConfig    `yaml:"notify"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// StoreConfig selects the settings persistence backend.
type StoreConfig struct {
	Backend  string         `yaml:"backend"` // file, postgres
	File     FileConfig     `yaml:"file"`
	Database DatabaseConfig `yaml:"database"`
}

// FileConfig defines the file-backed settings store.
type FileConfig struct {
	Path string `yaml:"path"`
}

// DatabaseConfig defines PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	PoolSize int    `yaml:"pool_size"`
}

// DSN returns a PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		d.Host, d.Port, d.Name, d.User, d.Password, d.SSLMode,
	)
}

// DealsConfig defines pricing API client settings. The endpoint and cadence
// here are startup fallbacks; the values in the settings store, when present,
// take precedence.
type DealsConfig struct {
	APIURL         string          `yaml:"api_url"`
	CadenceMinutes int             `yaml:"cadence_minutes"`
	Timeout        time.Duration   `yaml:"timeout"`
	RateLimit      RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig defines pricing API rate limiting settings.
type RateLimitConfig struct {
	PerSecond float64 `yaml:"per_second"`
	Burst     int     `yaml:"burst"`
}

// NotifyConfig defines alert notification delivery. An empty webhook URL
// disables delivery; matching alerts are logged and discarded.
type NotifyConfig struct {
	DiscordWebhook string `yaml:"discord_webhook"`
}

// TelemetryConfig defines OpenTelemetry export settings.
type TelemetryConfig struct {
	Enabled      bool   `yaml:"enabled"`
	OTLPEndpoint string `yaml:"otlp_endpoint"`
	ServiceName  string `yaml:"service_name"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Default returns a Config usable without any file on disk.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyStoreDefaults(&cfg.Store)
	applyDealsDefaults(&cfg.Deals)
	applyTelemetryDefaults(&cfg.Telemetry)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30 * time.Second
	}
}

func applyStoreDefaults(s *StoreConfig) {
	if s.Backend == "" {
		s.Backend = "file"
	}
	if s.File.Path == "" {
		s.File.Path = "gpu-deals-settings.json"
	}
	if s.Database.Port == 0 {
		s.Database.Port = 5432
	}
	if s.Database.SSLMode == "" {
		s.Database.SSLMode = "disable"
	}
	if s.Database.PoolSize == 0 {
		s.Database.PoolSize = 5
	}
}

func applyDealsDefaults(d *DealsConfig) {
	if d.APIURL == "" {
		d.APIURL = "https://api.gpudeals.net/"
	}
	if d.CadenceMinutes == 0 {
		d.CadenceMinutes = 15
	}
	if d.Timeout == 0 {
		d.Timeout = 30 * time.Second
	}
	if d.RateLimit.PerSecond == 0 {
		d.RateLimit.PerSecond = 2.0
	}
	if d.RateLimit.Burst == 0 {
		d.RateLimit.Burst = 4
	}
}

func applyTelemetryDefaults(t *TelemetryConfig) {
	if t.OTLPEndpoint == "" {
		t.OTLPEndpoint = "localhost:4317"
	}
	if t.ServiceName == "" {
		t.ServiceName = "gpu-deals"
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	switch cfg.Store.Backend {
	case "file":
		if cfg.Store.File.Path == "" {
			errs = append(errs, fmt.Errorf("store.file.path is required when backend is file"))
		}
	case "postgres":
		if cfg.Store.Database.Host == "" {
			errs = append(errs, fmt.Errorf("store.database.host is required when backend is postgres"))
		}
		if cfg.Store.Database.Name == "" {
			errs = append(errs, fmt.Errorf("store.database.name is required when backend is postgres"))
		}
		if cfg.Store.Database.User == "" {
			errs = append(errs, fmt.Errorf("store.database.user is required when backend is postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("store.backend must be one of: file, postgres (got %q)", cfg.Store.Backend))
	}

	if cfg.Deals.CadenceMinutes < 1 || cfg.Deals.CadenceMinutes > 60 {
		errs = append(errs, fmt.Errorf("deals.cadence_minutes must be between 1 and 60 (got %d)", cfg.Deals.CadenceMinutes))
	}

	return errors.Join(errs...)
}
