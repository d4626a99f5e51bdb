package api

import (
	"net/http"

	"github.com/JaimeStill/refinery/pkg/handlers"
	"github.com/JaimeStill/refinery/pkg/routes"
)

type healthHandler struct{}

func newHealthHandler() *healthHandler {
	return &healthHandler{}
}

func (h *healthHandler) routes() routes.Group {
	return routes.Group{
		Prefix: "/health",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.status},
		},
	}
}

// status never touches the rate limiter or the completion service.
func (h *healthHandler) status(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
