package prompts

import (
	"context"

	"github.com/JaimeStill/refinery/pkg/ratelimit"
)

// System defines the public contract for the prompt lifecycle.
type System interface {
	Handler(limiter ratelimit.Limiter, limits *ratelimit.Config, maxBodySize int64) *Handler

	// Generate expands topic through the named template and returns a new
	// prompt with a refinement count of zero.
	Generate(ctx context.Context, topic, template string) (*State, error)

	// Refine folds additionalInput into state and returns the refined prompt
	// with the count advanced by one. Fails with KindLimitExceeded once
	// MaxRefinements passes have been made.
	Refine(ctx context.Context, state State, additionalInput string) (*State, error)

	// Test sends prompt verbatim and returns the unmodified response.
	Test(ctx context.Context, prompt string) (string, error)
}
