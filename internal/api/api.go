// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"net/http"

	"github.com/JaimeStill/refinery/internal/config"
	"github.com/JaimeStill/refinery/internal/infrastructure"
	"github.com/JaimeStill/refinery/pkg/formatting"
	"github.com/JaimeStill/refinery/pkg/middleware"
	"github.com/JaimeStill/refinery/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	mux := http.NewServeMux()
	registerRoutes(mux, domain, runtime)

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.RequestID())
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))

	runtime.Logger.Info(
		"api module ready",
		"base_path", cfg.API.BasePath,
		"max_body_size", formatting.FormatBytes(runtime.MaxBodySize),
	)

	return m, nil
}
