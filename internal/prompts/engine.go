package prompts

import (
	"context"
	"log/slog"
	"strings"

	"github.com/JaimeStill/refinery/internal/sanitize"
	"github.com/JaimeStill/refinery/internal/templates"
	"github.com/JaimeStill/refinery/pkg/completion"
	"github.com/JaimeStill/refinery/pkg/metrics"
	"github.com/JaimeStill/refinery/pkg/ratelimit"
)

type engine struct {
	client    completion.Client
	sanitizer *sanitize.Sanitizer
	metrics   *metrics.System
	logger    *slog.Logger
}

// New creates the prompt lifecycle engine. A nil sanitizer uses the default
// preamble rules.
func New(
	client completion.Client,
	sanitizer *sanitize.Sanitizer,
	metrics *metrics.System,
	logger *slog.Logger,
) System {
	if sanitizer == nil {
		sanitizer = sanitize.Default()
	}
	return &engine{
		client:    client,
		sanitizer: sanitizer,
		metrics:   metrics,
		logger:    logger.With("system", "prompts"),
	}
}

func (e *engine) Handler(limiter ratelimit.Limiter, limits *ratelimit.Config, maxBodySize int64) *Handler {
	return NewHandler(e, limiter, limits, e.metrics, e.logger, maxBodySize)
}

func (e *engine) Generate(ctx context.Context, topic, template string) (*State, error) {
	text, err := e.complete(ctx, OpGenerate, templates.Interpolate(template, topic))
	if err != nil {
		return nil, err
	}

	e.logger.InfoContext(ctx, "prompt generated", "template", template)

	return &State{
		Text:            e.sanitizer.Clean(text),
		RefinementCount: 0,
	}, nil
}

func (e *engine) Refine(ctx context.Context, state State, additionalInput string) (*State, error) {
	if !state.CanRefine() {
		return nil, limitExceededError()
	}

	text, err := e.complete(ctx, OpRefine, RefineInstructions(state.Text, additionalInput))
	if err != nil {
		return nil, err
	}

	next := &State{
		Text:            e.sanitizer.Clean(text),
		RefinementCount: state.RefinementCount + 1,
	}

	e.logger.InfoContext(ctx, "prompt refined", "refinement_count", next.RefinementCount)
	return next, nil
}

func (e *engine) Test(ctx context.Context, prompt string) (string, error) {
	return e.complete(ctx, OpTest, prompt)
}

func (e *engine) complete(ctx context.Context, op Operation, prompt string) (string, error) {
	text, err := e.client.Complete(ctx, prompt)
	if err != nil {
		e.logger.ErrorContext(ctx, "completion failed", "operation", op, "error", err)
		return "", upstreamError(op, err)
	}

	if strings.TrimSpace(text) == "" {
		e.logger.ErrorContext(ctx, "completion empty", "operation", op)
		return "", upstreamError(op, ErrEmptyCompletion)
	}

	return text, nil
}
