package config

import (
	"fmt"
	"os"

	"github.com/JaimeStill/refinery/pkg/formatting"
	"github.com/JaimeStill/refinery/pkg/middleware"
)

const (
	EnvAPIBasePath    = "REFINERY_API_BASE_PATH"
	EnvAPIMaxBodySize = "REFINERY_API_MAX_BODY_SIZE"
)

var corsEnv = &middleware.CORSEnv{
	Disabled:         "REFINERY_CORS_DISABLED",
	Origins:          "REFINERY_CORS_ORIGINS",
	AllowedMethods:   "REFINERY_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "REFINERY_CORS_ALLOWED_HEADERS",
	AllowCredentials: "REFINERY_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "REFINERY_CORS_MAX_AGE",
}

// APIConfig holds API routing, request size, and CORS settings.
type APIConfig struct {
	BasePath    string                `toml:"base_path"`
	MaxBodySize string                `toml:"max_body_size"`
	CORS        middleware.CORSConfig `toml:"cors"`
}

// MaxBodySizeBytes returns MaxBodySize as a byte count.
func (c *APIConfig) MaxBodySizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxBodySize)
	if err != nil {
		return 1000 * 1000 // 1MB fallback
	}
	return size
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS config.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxBodySize != "" {
		c.MaxBodySize = overlay.MaxBodySize
	}

	c.CORS.Merge(&overlay.CORS)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxBodySize == "" {
		c.MaxBodySize = "1MB"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv(EnvAPIBasePath); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv(EnvAPIMaxBodySize); v != "" {
		c.MaxBodySize = v
	}
}

func (c *APIConfig) validate() error {
	size, err := formatting.ParseBytes(c.MaxBodySize)
	if err != nil {
		return fmt.Errorf("invalid max_body_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_body_size must be positive")
	}
	return nil
}
