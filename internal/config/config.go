package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// DefaultSettingsFile is probed when TOPIO_REGISTRY_SETTINGS_FILE is unset.
const DefaultSettingsFile = "settings.yml"

// Config holds the configuration for the registry service.
// Environment variables are parsed from the TOPIO_REGISTRY_ prefix.
type Config struct {
	// Build target selects the deployment flavor: local (SQLite file) or
	// cloud (PostgreSQL).
	BuildTarget string `envconfig:"BUILD_TARGET" default:"local"`

	// Derived from BuildTarget when "auto"; explicit values win.
	DBDriver string `envconfig:"DB_DRIVER" default:"auto"`

	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// Optional YAML settings file; mirrors the legacy deployment layout
	// with a postgresql: block. Values from the file override env values.
	SettingsFile string `envconfig:"SETTINGS_FILE" default:""`

	// Postgres connection. POSTGRES_DSN overrides the discrete parts.
	PostgresDSN      string `envconfig:"POSTGRES_DSN" default:""`
	PostgresHost     string `envconfig:"POSTGRES_HOST" default:"localhost"`
	PostgresPort     int    `envconfig:"POSTGRES_PORT" default:"5432"`
	PostgresUser     string `envconfig:"POSTGRES_USER" default:"postgres"`
	PostgresPassword string `envconfig:"POSTGRES_PASSWORD" default:""`
	PostgresDB       string `envconfig:"POSTGRES_DB" default:"topio"`
	PostgresSSLMode  string `envconfig:"POSTGRES_SSLMODE" default:"disable"`

	// SQLite file path for the local target. Empty selects the per-user
	// default under ~/.topio-registry.
	SQLitePath string `envconfig:"SQLITE_PATH" default:""`

	// Per-operation bound on storage round-trips.
	RequestTimeoutSeconds int `envconfig:"REQUEST_TIMEOUT_SECONDS" default:"5"`

	HealthCheckIntervalSeconds int `envconfig:"HEALTH_CHECK_INTERVAL_SECONDS" default:"30"`
	ShutdownTimeoutSeconds     int `envconfig:"SHUTDOWN_TIMEOUT_SECONDS" default:"10"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// settingsFile is the on-disk YAML shape carried over from the original
// deployment: a postgresql: block plus an optional logging: block.
type settingsFile struct {
	PostgreSQL struct {
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		DB       string `yaml:"db"`
	} `yaml:"postgresql"`
	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// ResolveDefaults validates BuildTarget and derives DBDriver when "auto".
func (c *Config) ResolveDefaults() error {
	var defaultDB string

	switch c.BuildTarget {
	case "local":
		defaultDB = "sqlite"
	case "cloud":
		defaultDB = "postgres"
	default:
		return fmt.Errorf("unsupported BUILD_TARGET: %s", c.BuildTarget)
	}

	if c.DBDriver == "" || c.DBDriver == "auto" {
		c.DBDriver = defaultDB
	}

	allowedDB := map[string]bool{"postgres": true, "sqlite": true}
	if !allowedDB[c.DBDriver] {
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}
	if c.RequestTimeoutSeconds <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT_SECONDS must be positive, got %d", c.RequestTimeoutSeconds)
	}
	return nil
}

// loadSettingsFile merges the YAML settings file into the config. A file
// named explicitly must exist; the default probe is best-effort.
func (c *Config) loadSettingsFile() error {
	path := c.SettingsFile
	explicit := path != ""
	if !explicit {
		path = DefaultSettingsFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}
		return fmt.Errorf("read settings file %s: %w", path, err)
	}

	var sf settingsFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return fmt.Errorf("parse settings file %s: %w", path, err)
	}

	if sf.PostgreSQL.User != "" {
		c.PostgresUser = sf.PostgreSQL.User
	}
	if sf.PostgreSQL.Password != "" {
		c.PostgresPassword = sf.PostgreSQL.Password
	}
	if sf.PostgreSQL.Host != "" {
		c.PostgresHost = sf.PostgreSQL.Host
	}
	if sf.PostgreSQL.Port != 0 {
		c.PostgresPort = sf.PostgreSQL.Port
	}
	if sf.PostgreSQL.DB != "" {
		c.PostgresDB = sf.PostgreSQL.DB
	}
	if sf.Logging.Level != "" {
		c.LogLevel = sf.Logging.Level
	}
	return nil
}

// New creates a Config from TOPIO_REGISTRY_-prefixed environment variables
// and the optional settings file.
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("TOPIO_REGISTRY", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.loadSettingsFile(); err != nil {
		return nil, err
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Info().
		Str("build_target", cfg.BuildTarget).
		Str("db_driver", cfg.DBDriver).
		Int("port", cfg.HTTPPort).
		Str("log_level", cfg.LogLevel).
		Bool("postgres_dsn_present", cfg.PostgresDSN != "").
		Msg("Configuration loaded")

	return &cfg, nil
}

// NewForTesting creates a config for tests: SQLite driver, no settings
// file probing, short timeouts.
func NewForTesting() *Config {
	return &Config{
		BuildTarget:                "local",
		DBDriver:                   "sqlite",
		HTTPPort:                   8080,
		SQLitePath:                 "",
		RequestTimeoutSeconds:      2,
		HealthCheckIntervalSeconds: 1,
		ShutdownTimeoutSeconds:     2,
		LogLevel:                   "debug",
	}
}

// PostgresURL returns the connection string for the configured Postgres
// instance; an explicit DSN wins over the discrete parts.
func (c *Config) PostgresURL() string {
	if c.PostgresDSN != "" {
		return c.PostgresDSN
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.PostgresUser, c.PostgresPassword),
		Host:   fmt.Sprintf("%s:%d", c.PostgresHost, c.PostgresPort),
		Path:   c.PostgresDB,
	}
	q := url.Values{}
	q.Set("sslmode", c.PostgresSSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// GetHTTPAddr returns the HTTP server address.
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// RequestTimeout returns the per-operation storage timeout.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// HealthCheckInterval returns the period between storage health probes.
func (c *Config) HealthCheckInterval() time.Duration {
	return time.Duration(c.HealthCheckIntervalSeconds) * time.Second
}

// ShutdownTimeout bounds the graceful drain on termination.
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}
