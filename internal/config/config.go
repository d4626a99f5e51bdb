// Package config loads refinery configuration from TOML files and environment variables.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/refinery/pkg/completion"
	"github.com/JaimeStill/refinery/pkg/database"
	"github.com/JaimeStill/refinery/pkg/ratelimit"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvRefineryEnv             = "REFINERY_ENV"
	EnvRefineryShutdownTimeout = "REFINERY_SHUTDOWN_TIMEOUT"
	EnvRefineryVersion         = "REFINERY_VERSION"
)

var databaseEnv = &database.Env{
	URL:             "REFINERY_DB_DSN",
	Host:            "REFINERY_DB_HOST",
	Port:            "REFINERY_DB_PORT",
	Name:            "REFINERY_DB_NAME",
	User:            "REFINERY_DB_USER",
	Password:        "REFINERY_DB_PASSWORD",
	SSLMode:         "REFINERY_DB_SSL_MODE",
	MaxOpenConns:    "REFINERY_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "REFINERY_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "REFINERY_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "REFINERY_DB_CONN_TIMEOUT",
}

var completionEnv = &completion.Env{
	Provider:      "REFINERY_COMPLETION_PROVIDER",
	Model:         "REFINERY_COMPLETION_MODEL",
	APIKey:        "REFINERY_COMPLETION_API_KEY",
	BaseURL:       "REFINERY_COMPLETION_BASE_URL",
	Timeout:       "REFINERY_COMPLETION_TIMEOUT",
	MaxConcurrent: "REFINERY_COMPLETION_MAX_CONCURRENT",
}

var rateLimitEnv = &ratelimit.Env{
	Store:      "REFINERY_RATE_LIMIT_STORE",
	Limit:      "REFINERY_RATE_LIMIT_LIMIT",
	Window:     "REFINERY_RATE_LIMIT_WINDOW",
	TrustProxy: "REFINERY_RATE_LIMIT_TRUST_PROXY",
}

// Config is the root configuration for the refinery service.
type Config struct {
	Server          ServerConfig      `toml:"server"`
	API             APIConfig         `toml:"api"`
	Completion      completion.Config `toml:"completion"`
	RateLimit       ratelimit.Config  `toml:"rate_limit"`
	Database        database.Config   `toml:"database"`
	ShutdownTimeout string            `toml:"shutdown_timeout"`
	Version         string            `toml:"version"`
}

// Env returns the REFINERY_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvRefineryEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// UsesDatabase reports whether any configured component needs PostgreSQL.
func (c *Config) UsesDatabase() bool {
	return c.RateLimit.Store == ratelimit.StorePostgres
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.Finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Parse decodes TOML data into a Config without finalizing it.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.API.Merge(&overlay.API)
	c.Completion.Merge(&overlay.Completion)
	c.RateLimit.Merge(&overlay.RateLimit)
	c.Database.Merge(&overlay.Database)
}

// Finalize applies defaults, environment overrides, and validation to every
// sub-config. The database section is only finalized when it is used.
func (c *Config) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Completion.Finalize(completionEnv); err != nil {
		return fmt.Errorf("completion: %w", err)
	}
	if err := c.RateLimit.Finalize(rateLimitEnv); err != nil {
		return fmt.Errorf("rate_limit: %w", err)
	}
	if c.UsesDatabase() {
		if err := c.Database.Finalize(databaseEnv); err != nil {
			return fmt.Errorf("database: %w", err)
		}
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvRefineryShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvRefineryVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

func overlayPath() string {
	if env := os.Getenv(EnvRefineryEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
