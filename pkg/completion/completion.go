// Package completion is the boundary to the upstream text-completion service.
// A Client accepts a text prompt and returns a text completion; providers are
// interchangeable behind the interface and every client returned by New is
// bounded by a concurrency limit and a per-call timeout.
package completion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/semaphore"
)

// Sentinel errors for completion calls.
var (
	ErrMissingCredential = errors.New("completion api credential not configured")
	ErrTimeout           = errors.New("completion call timed out")
)

// Client sends a prompt to a completion service.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Observer receives the duration and outcome of each upstream call.
type Observer func(provider string, elapsed time.Duration, err error)

// Option configures the client returned by New.
type Option func(*bounded)

// WithObserver registers fn to be called after every upstream call.
func WithObserver(fn Observer) Option {
	return func(b *bounded) {
		b.observe = fn
	}
}

// New creates the provider client selected by cfg. A missing credential is
// logged and yields a client whose calls fail with ErrMissingCredential.
func New(ctx context.Context, cfg *Config, logger *slog.Logger, opts ...Option) (Client, error) {
	logger = logger.With("system", "completion")

	var (
		client Client
		err    error
	)

	switch {
	case !cfg.HasCredential():
		logger.Warn(
			"completion credential not set; calls will fail",
			"provider", cfg.Provider,
			"env", providerKeyEnv(cfg.Provider),
		)
		client = unavailable{}
	case cfg.Provider == ProviderGemini:
		client, err = NewGemini(ctx, cfg)
	case cfg.Provider == ProviderOpenAI:
		client, err = NewOpenAI(cfg)
	case cfg.Provider == ProviderMock:
		client = Mock{}
	default:
		err = fmt.Errorf("unknown provider: %s", cfg.Provider)
	}

	if err != nil {
		return nil, fmt.Errorf("%s client: %w", cfg.Provider, err)
	}

	logger.Info(
		"completion client ready",
		"provider", cfg.Provider,
		"model", cfg.Model,
		"timeout", cfg.TimeoutDuration(),
		"max_concurrent", cfg.MaxConcurrent,
	)

	return Bound(client, cfg.Provider, cfg.MaxConcurrent, cfg.TimeoutDuration(), opts...), nil
}

type unavailable struct{}

func (unavailable) Complete(context.Context, string) (string, error) {
	return "", ErrMissingCredential
}

type bounded struct {
	next     Client
	provider string
	sem      *semaphore.Weighted
	timeout  time.Duration
	observe  Observer
}

// Bound wraps next so at most maxConcurrent calls are in flight and each
// call, including time spent waiting for a slot, is limited to timeout.
// Expired deadlines surface as ErrTimeout.
func Bound(next Client, provider string, maxConcurrent int, timeout time.Duration, opts ...Option) Client {
	b := &bounded{
		next:     next,
		provider: provider,
		sem:      semaphore.NewWeighted(int64(max(maxConcurrent, 1))),
		timeout:  timeout,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *bounded) Complete(ctx context.Context, prompt string) (string, error) {
	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	if err := b.sem.Acquire(ctx, 1); err != nil {
		return "", b.contextError(ctx, err)
	}
	defer b.sem.Release(1)

	start := time.Now()
	text, err := b.next.Complete(ctx, prompt)
	if err != nil {
		err = b.contextError(ctx, err)
	}

	if b.observe != nil {
		b.observe(b.provider, time.Since(start), err)
	}

	return text, err
}

func (b *bounded) contextError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w after %s: %w", ErrTimeout, b.timeout, err)
	}
	return err
}
