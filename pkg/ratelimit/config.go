package ratelimit

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Store kinds accepted by Config.Store.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Config holds fixed-window rate limit settings.
type Config struct {
	Store      string `toml:"store"`
	Limit      int    `toml:"limit"`
	Window     string `toml:"window"`
	TrustProxy bool   `toml:"trust_proxy"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Store      string
	Limit      string
	Window     string
	TrustProxy string
}

// WindowDuration returns Window as a time.Duration.
func (c *Config) WindowDuration() time.Duration {
	d, _ := time.ParseDuration(c.Window)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay. TrustProxy only ever
// switches on through an overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Store != "" {
		c.Store = overlay.Store
	}
	if overlay.Limit != 0 {
		c.Limit = overlay.Limit
	}
	if overlay.Window != "" {
		c.Window = overlay.Window
	}
	if overlay.TrustProxy {
		c.TrustProxy = true
	}
}

func (c *Config) loadDefaults() {
	if c.Store == "" {
		c.Store = StoreMemory
	}
	if c.Limit == 0 {
		c.Limit = 25
	}
	if c.Window == "" {
		c.Window = "24h"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Store != "" {
		if v := os.Getenv(env.Store); v != "" {
			c.Store = v
		}
	}
	if env.Limit != "" {
		if v := os.Getenv(env.Limit); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.Limit = n
			}
		}
	}
	if env.Window != "" {
		if v := os.Getenv(env.Window); v != "" {
			c.Window = v
		}
	}
	if env.TrustProxy != "" {
		if v := os.Getenv(env.TrustProxy); v != "" {
			if trust, err := strconv.ParseBool(v); err == nil {
				c.TrustProxy = trust
			}
		}
	}
}

func (c *Config) validate() error {
	if c.Store != StoreMemory && c.Store != StorePostgres {
		return fmt.Errorf("invalid store %q: must be %s or %s", c.Store, StoreMemory, StorePostgres)
	}
	if c.Limit < 1 {
		return fmt.Errorf("invalid limit: %d", c.Limit)
	}
	d, err := time.ParseDuration(c.Window)
	if err != nil {
		return fmt.Errorf("invalid window: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("window must be positive: %s", c.Window)
	}
	return nil
}
