// Package config provides configuration loading and management for the calendar server.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// EnvPrefix is the prefix for environment variables read by the server.
	EnvPrefix = "FRIDGEBOARD"

	// envDatabasePassword is the environment variable holding the database password.
	envDatabasePassword = "FRIDGEBOARD_DATABASE_PASSWORD"

	// envProviderPassword is the environment variable holding the CalDAV password.
	envProviderPassword = "FRIDGEBOARD_PROVIDER_PASSWORD"
)

const (
	defaultDaysBack    = 30
	defaultDaysForward = 90
)

// Option defines the interface for configuration options
type Option func(*loaderConfig) error

// loaderConfig defines the configuration for loading a configuration
type loaderConfig struct {
	path string
}

// WithConfigPath loads configuration from a YAML file
func WithConfigPath(path string) Option {
	return func(cfg *loaderConfig) error {
		if path == "" {
			return fmt.Errorf("path is required")
		}

		// Resolve symlinks to prevent symlink attacks.
		// Note that this calls filepath.Clean internally.
		realPath, err := filepath.EvalSymlinks(path)
		if err != nil {
			return fmt.Errorf("failed to evaluate symlinks: %w", err)
		}

		// Validate the path to prevent path traversal attacks
		if !filepath.IsAbs(realPath) {
			if !filepath.IsLocal(realPath) {
				return fmt.Errorf("path is not local or contains invalid traversal: %s", path)
			}
		}

		cfg.path = realPath
		return nil
	}
}

// Config represents the root configuration structure
type Config struct {
	Server   ServerConfig    `yaml:"server,omitempty"`
	Database *DatabaseConfig `yaml:"database"`
	Provider *ProviderConfig `yaml:"provider"`
	Sync     SyncConfig      `yaml:"sync,omitempty"`
}

// ServerConfig defines the HTTP server settings
type ServerConfig struct {
	// Address is the listen address, defaults to ":8080"
	Address string `yaml:"address,omitempty"`
}

// DatabaseConfig defines database connection settings
type DatabaseConfig struct {
	// Host is the database server hostname or IP address
	Host string `yaml:"host"`

	// Port is the database server port
	Port int `yaml:"port"`

	// User is the database username
	User string `yaml:"user"`

	// PasswordFile is the path to a file containing the database password.
	// This is the recommended approach for production deployments.
	PasswordFile string `yaml:"passwordFile,omitempty"`

	// Database is the database name
	Database string `yaml:"database"`

	// SSLMode is the SSL mode for the connection (disable, require, verify-ca, verify-full)
	SSLMode string `yaml:"sslMode,omitempty"`

	// MaxConns is the maximum number of connections in the pool
	MaxConns int32 `yaml:"maxConns,omitempty"`

	// ConnMaxLifetime is the maximum lifetime of a connection (e.g., "1h", "30m")
	ConnMaxLifetime string `yaml:"connMaxLifetime,omitempty"`
}

// ProviderConfig defines the external CalDAV calendar provider settings
type ProviderConfig struct {
	// ServerURL is the base URL of the CalDAV server
	ServerURL string `yaml:"serverURL"`

	// Username for HTTP basic authentication, optional
	Username string `yaml:"username,omitempty"`

	// PasswordFile is the path to a file containing the CalDAV password
	PasswordFile string `yaml:"passwordFile,omitempty"`

	// CalendarHome is the path under which provider calendars live,
	// e.g. "/calendars/household". Provider calendar names are appended
	// to this path.
	CalendarHome string `yaml:"calendarHome"`
}

// SyncConfig defines reconciliation run settings
type SyncConfig struct {
	// Interval between scheduled reconciliation runs (e.g. "15m").
	// Empty disables the background coordinator; runs are then
	// triggered through the API only.
	Interval string `yaml:"interval,omitempty"`

	// DaysBack is the default backward extent of the external fetch window
	DaysBack int `yaml:"daysBack,omitempty"`

	// DaysForward is the default forward extent of the external fetch window
	DaysForward int `yaml:"daysForward,omitempty"`
}

// GetPassword returns the database password using the following priority:
// 1. Read from PasswordFile if specified
// 2. Read from the FRIDGEBOARD_DATABASE_PASSWORD environment variable
//
// The password from file will have leading/trailing whitespace trimmed.
func (d *DatabaseConfig) GetPassword() (string, error) {
	if d.PasswordFile != "" {
		password, err := readPasswordFile(d.PasswordFile)
		if err != nil {
			return "", err
		}
		return password, nil
	}

	if envPassword := os.Getenv(envDatabasePassword); envPassword != "" {
		return envPassword, nil
	}

	return "", fmt.Errorf(
		"no database password configured: set passwordFile or %s environment variable",
		envDatabasePassword,
	)
}

// GetConnectionString builds a PostgreSQL connection string with proper password handling.
// The password is URL-escaped to handle special characters safely.
func (d *DatabaseConfig) GetConnectionString() (string, error) {
	password, err := d.GetPassword()
	if err != nil {
		return "", err
	}

	sslMode := d.SSLMode
	if sslMode == "" {
		sslMode = "require"
	}

	connString := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User,
		url.QueryEscape(password),
		d.Host,
		d.Port,
		d.Database,
		sslMode,
	)

	return connString, nil
}

// GetPassword returns the CalDAV password from PasswordFile or the
// FRIDGEBOARD_PROVIDER_PASSWORD environment variable. An empty result is
// allowed; CalDAV servers without authentication are accepted.
func (p *ProviderConfig) GetPassword() (string, error) {
	if p.PasswordFile != "" {
		return readPasswordFile(p.PasswordFile)
	}
	return os.Getenv(envProviderPassword), nil
}

func readPasswordFile(path string) (string, error) {
	// Use filepath.Clean to prevent path traversal attacks
	cleanPath := filepath.Clean(path)

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return "", fmt.Errorf("failed to read password from file %s: %w", path, err)
	}

	// Trim whitespace (including newlines) from file content
	return strings.TrimSpace(string(data)), nil
}

// LoadConfig loads and parses configuration from a YAML file
func LoadConfig(opts ...Option) (*Config, error) {
	loaderCfg := &loaderConfig{}
	for _, opt := range opts {
		if err := opt(loaderCfg); err != nil {
			return nil, err
		}
	}

	// As of now, this is required because there's no other options to load
	// configuration. Once we add more options, we can remove this check.
	if loaderCfg.path == "" {
		return nil, fmt.Errorf("path is required")
	}

	data, err := os.ReadFile(loaderCfg.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// GetAddress returns the listen address, using ":8080" if not specified
func (c *Config) GetAddress() string {
	if c.Server.Address == "" {
		return ":8080"
	}
	return c.Server.Address
}

// GetDaysBack returns the configured backward window extent or the default
func (c *Config) GetDaysBack() int {
	if c.Sync.DaysBack <= 0 {
		return defaultDaysBack
	}
	return c.Sync.DaysBack
}

// GetDaysForward returns the configured forward window extent or the default
func (c *Config) GetDaysForward() int {
	if c.Sync.DaysForward <= 0 {
		return defaultDaysForward
	}
	return c.Sync.DaysForward
}

// GetSyncInterval returns the parsed scheduled run interval. A zero
// duration means the background coordinator is disabled.
func (c *Config) GetSyncInterval() (time.Duration, error) {
	if c.Sync.Interval == "" {
		return 0, nil
	}
	return time.ParseDuration(c.Sync.Interval)
}

// Validate performs validation on the configuration
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if err := c.validateDatabase(); err != nil {
		return err
	}

	if err := c.validateProvider(); err != nil {
		return err
	}

	return c.validateSync()
}

func (c *Config) validateDatabase() error {
	if c.Database == nil {
		return fmt.Errorf("database configuration is required")
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Database.Port == 0 {
		return fmt.Errorf("database.port is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database.user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database.database is required")
	}
	if c.Database.ConnMaxLifetime != "" {
		if _, err := time.ParseDuration(c.Database.ConnMaxLifetime); err != nil {
			return fmt.Errorf("database.connMaxLifetime must be a valid duration: %w", err)
		}
	}
	return nil
}

func (c *Config) validateProvider() error {
	if c.Provider == nil {
		return fmt.Errorf("provider configuration is required")
	}
	if c.Provider.ServerURL == "" {
		return fmt.Errorf("provider.serverURL is required")
	}
	if _, err := url.Parse(c.Provider.ServerURL); err != nil {
		return fmt.Errorf("provider.serverURL is not a valid URL: %w", err)
	}
	if c.Provider.CalendarHome == "" {
		return fmt.Errorf("provider.calendarHome is required")
	}
	return nil
}

func (c *Config) validateSync() error {
	if c.Sync.Interval != "" {
		if _, err := time.ParseDuration(c.Sync.Interval); err != nil {
			return fmt.Errorf("sync.interval must be a valid duration (e.g., '15m', '1h'): %w", err)
		}
	}
	if c.Sync.DaysBack < 0 {
		return fmt.Errorf("sync.daysBack must not be negative")
	}
	if c.Sync.DaysForward < 0 {
		return fmt.Errorf("sync.daysForward must not be negative")
	}
	return nil
}
