package api

import (
	"net/http"

	"github.com/JaimeStill/refinery/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	runtime *Runtime,
) {
	prompts := domain.Prompts.Handler(
		runtime.Limiter,
		&runtime.RateLimit,
		runtime.MaxBodySize,
	)

	routes.Register(
		mux,
		prompts.Routes(),
		newHealthHandler().routes(),
	)
}
