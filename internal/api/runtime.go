package api

import (
	"github.com/JaimeStill/refinery/internal/config"
	"github.com/JaimeStill/refinery/internal/infrastructure"
	"github.com/JaimeStill/refinery/pkg/ratelimit"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	RateLimit   ratelimit.Config
	MaxBodySize int64
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle:  infra.Lifecycle,
			Logger:     infra.Logger.With("module", "api"),
			Metrics:    infra.Metrics,
			Completion: infra.Completion,
			Limiter:    infra.Limiter,
			Database:   infra.Database,
		},
		RateLimit:   cfg.RateLimit,
		MaxBodySize: cfg.API.MaxBodySizeBytes(),
	}
}
