package prompts

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"time"

	"github.com/JaimeStill/refinery/pkg/handlers"
	"github.com/JaimeStill/refinery/pkg/metrics"
	"github.com/JaimeStill/refinery/pkg/ratelimit"
	"github.com/JaimeStill/refinery/pkg/routes"
)

const internalMessage = "Internal server error"

// Handler provides the HTTP endpoints for the prompt lifecycle. Every
// endpoint consumes one unit of the caller's quota before the body is read.
type Handler struct {
	sys         System
	guard       *ratelimit.Guard
	metrics     *metrics.System
	logger      *slog.Logger
	maxBodySize int64
	limitMsg    string
}

// NewHandler creates a Handler. metrics may be nil.
func NewHandler(
	sys System,
	limiter ratelimit.Limiter,
	limits *ratelimit.Config,
	metrics *metrics.System,
	logger *slog.Logger,
	maxBodySize int64,
) *Handler {
	h := &Handler{
		sys:         sys,
		metrics:     metrics,
		logger:      logger.With("handler", "prompts"),
		maxBodySize: maxBodySize,
		limitMsg:    RateLimitMessage(limits.Limit, limits.WindowDuration()),
	}
	h.guard = ratelimit.NewGuard(limiter, limits.TrustProxy, h.rejected, h.limiterFailed)
	return h
}

// RateLimitMessage is the client-facing text for a rejected request.
func RateLimitMessage(limit int, window time.Duration) string {
	if window == 24*time.Hour {
		return fmt.Sprintf("Daily limit of %d calls reached. Try again tomorrow.", limit)
	}
	return fmt.Sprintf("Limit of %d calls per %s reached. Try again later.", limit, window)
}

// Routes returns the route group definition for prompt endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "",
		Wrap:   h.guard.Wrap,
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/generate", Handler: h.Generate},
			{Method: "POST", Pattern: "/refine", Handler: h.Refine},
			{Method: "POST", Pattern: "/test", Handler: h.Test},
		},
	}
}

// Generate expands a raw idea into a structured prompt.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := h.decode(w, r, &req); err != nil {
		h.fail(w, r, OpGenerate, err)
		return
	}

	state, err := h.sys.Generate(r.Context(), req.Prompt, req.TemplateType())
	if err != nil {
		h.fail(w, r, OpGenerate, err)
		return
	}

	h.succeed(w, OpGenerate, GenerateResponse{
		Prompt:          state.Text,
		RefinementCount: state.RefinementCount,
	})
}

// Refine applies one additional-context pass to a prompt.
func (h *Handler) Refine(w http.ResponseWriter, r *http.Request) {
	var req RefineRequest
	if err := h.decode(w, r, &req); err != nil {
		h.fail(w, r, OpRefine, err)
		return
	}

	state, err := h.sys.Refine(r.Context(), req.State(), req.AdditionalInput)
	if err != nil {
		h.fail(w, r, OpRefine, err)
		return
	}

	h.succeed(w, OpRefine, RefineResponse{
		RefinedPrompt:   state.Text,
		RefinementCount: state.RefinementCount,
	})
}

// Test runs a prompt and returns the raw model response.
func (h *Handler) Test(w http.ResponseWriter, r *http.Request) {
	var req TestRequest
	if err := h.decode(w, r, &req); err != nil {
		h.fail(w, r, OpTest, err)
		return
	}

	text, err := h.sys.Test(r.Context(), req.Prompt)
	if err != nil {
		h.fail(w, r, OpTest, err)
		return
	}

	h.succeed(w, OpTest, TestResponse{Response: text})
}

type validatable interface {
	Validate() error
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, req validatable) error {
	if err := decodeBody(w, r, h.maxBodySize, req); err != nil {
		return err
	}
	return req.Validate()
}

func (h *Handler) succeed(w http.ResponseWriter, op Operation, body any) {
	h.observe(op, metrics.OutcomeSuccess)
	handlers.RespondJSON(w, http.StatusOK, body)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op Operation, err error) {
	status := MapHTTPStatus(err)
	h.observe(op, outcome(err))

	var pe *Error
	if !errors.As(err, &pe) {
		h.logger.ErrorContext(r.Context(), "unclassified failure", "operation", op, "error", err)
		handlers.RespondErrorDetails(w, h.logger, status, internalMessage, nil)
		return
	}

	var details any
	if len(pe.Details) > 0 {
		details = pe.Details
	}
	handlers.RespondErrorDetails(w, h.logger, status, pe.Message, details)
}

func (h *Handler) rejected(w http.ResponseWriter, r *http.Request, clientID string) {
	if h.metrics != nil {
		h.metrics.ObserveRejection()
	}
	h.logger.InfoContext(r.Context(), "rate limit reached", "client", clientID)
	h.fail(w, r, operationOf(r), &Error{Kind: KindRateLimit, Message: h.limitMsg})
}

func (h *Handler) limiterFailed(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.ErrorContext(r.Context(), "rate limiter failed", "error", err)
	h.fail(w, r, operationOf(r), &Error{Kind: KindInternal, Message: internalMessage, Err: err})
}

func (h *Handler) observe(op Operation, result string) {
	if h.metrics != nil {
		h.metrics.ObserveRequest(string(op), result)
	}
}

func operationOf(r *http.Request) Operation {
	return Operation(path.Base(r.URL.Path))
}

func outcome(err error) string {
	switch KindOf(err) {
	case KindValidation:
		return metrics.OutcomeInvalid
	case KindRateLimit:
		return metrics.OutcomeLimited
	case KindUpstream:
		return metrics.OutcomeUpstream
	case KindLimitExceeded:
		return metrics.OutcomeExhausted
	default:
		return metrics.OutcomeInternal
	}
}
