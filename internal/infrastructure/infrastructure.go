// Package infrastructure provides core service initialization for application startup.
// It assembles common dependencies (logging, metrics, completion, rate limiting,
// database) that domain systems require.
package infrastructure

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/JaimeStill/refinery/internal/config"
	"github.com/JaimeStill/refinery/pkg/completion"
	"github.com/JaimeStill/refinery/pkg/database"
	"github.com/JaimeStill/refinery/pkg/lifecycle"
	"github.com/JaimeStill/refinery/pkg/metrics"
	"github.com/JaimeStill/refinery/pkg/ratelimit"
)

// MetricsNamespace prefixes every exported metric.
const MetricsNamespace = "refinery"

// Infrastructure holds the core systems required by all domain modules.
// Database is nil unless a configured component needs PostgreSQL.
type Infrastructure struct {
	Lifecycle  *lifecycle.Coordinator
	Logger     *slog.Logger
	Metrics    *metrics.System
	Completion completion.Client
	Limiter    ratelimit.Limiter
	Database   database.System
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	return NewWithLogger(cfg, slog.New(slog.NewTextHandler(os.Stderr, nil)))
}

// NewWithLogger is New with a caller-supplied logger.
func NewWithLogger(cfg *config.Config, logger *slog.Logger) (*Infrastructure, error) {
	lc := lifecycle.New()
	m := metrics.New(MetricsNamespace)

	var (
		db   database.System
		conn *sql.DB
	)
	if cfg.UsesDatabase() {
		var err error
		db, err = database.New(&cfg.Database, logger)
		if err != nil {
			return nil, fmt.Errorf("database init failed: %w", err)
		}
		conn = db.Connection()
	}

	limiter, err := ratelimit.New(&cfg.RateLimit, conn, logger)
	if err != nil {
		return nil, fmt.Errorf("rate limiter init failed: %w", err)
	}

	client, err := completion.New(
		context.Background(),
		&cfg.Completion,
		logger,
		completion.WithObserver(m.ObserveCompletion),
	)
	if err != nil {
		return nil, fmt.Errorf("completion init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle:  lc,
		Logger:     logger,
		Metrics:    m,
		Completion: client,
		Limiter:    limiter,
		Database:   db,
	}, nil
}

// Start registers all infrastructure systems with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if i.Database != nil {
		if err := i.Database.Start(i.Lifecycle); err != nil {
			return fmt.Errorf("database start failed: %w", err)
		}
	}
	return nil
}
