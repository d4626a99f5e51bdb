// Package prompts implements the prompt lifecycle for refinery.
// A raw idea is expanded into a structured prompt through a catalog template,
// refined up to MaxRefinements times with additional context, and optionally
// executed to preview the model's response. No state is kept between
// requests: clients resubmit the prompt text and refinement count each call.
package prompts

// MaxRefinements is the number of refinement passes a prompt may receive.
const MaxRefinements = 3

// ChoiceAddContext is the only refinement strategy accepted by the refine endpoint.
const ChoiceAddContext = "add_context"

// Operation names a prompt lifecycle transition.
type Operation string

// Lifecycle operations.
const (
	OpGenerate Operation = "generate"
	OpRefine   Operation = "refine"
	OpTest     Operation = "test"
)

// State is the prompt in flight for one client interaction.
type State struct {
	Text            string `json:"prompt"`
	RefinementCount int    `json:"refinement_count"`
}

// CanRefine reports whether another refinement pass is allowed.
func (s State) CanRefine() bool {
	return s.RefinementCount < MaxRefinements
}

// GenerateResponse is the body returned by the generate endpoint.
type GenerateResponse struct {
	Prompt          string `json:"prompt"`
	RefinementCount int    `json:"refinement_count"`
}

// RefineResponse is the body returned by the refine endpoint.
type RefineResponse struct {
	RefinedPrompt   string `json:"refined_prompt"`
	RefinementCount int    `json:"refinement_count"`
}

// TestResponse is the body returned by the test endpoint.
type TestResponse struct {
	Response string `json:"response"`
}
