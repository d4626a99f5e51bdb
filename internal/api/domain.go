package api

import (
	"github.com/JaimeStill/refinery/internal/prompts"
	"github.com/JaimeStill/refinery/internal/sanitize"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Prompts prompts.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	promptsSystem := prompts.New(
		runtime.Completion,
		sanitize.Default(),
		runtime.Metrics,
		runtime.Logger,
	)

	return &Domain{
		Prompts: promptsSystem,
	}
}
