// Package ratelimit implements a fixed-window call counter keyed by client identity.
//
// A window opens on the first call from an identity and lasts for the configured
// length. Calls within the window are allowed until the ceiling is reached; the
// window is reset lazily by the first call that arrives after it has elapsed.
package ratelimit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// ErrNoDatabase is returned by New when the postgres store is selected without a connection.
var ErrNoDatabase = errors.New("postgres store requires a database connection")

// Limiter decides whether a client may make another call and, if so, counts it.
type Limiter interface {
	// CheckAndConsume reports whether clientID is within its quota and
	// consumes one unit when it is. A rejected call consumes nothing.
	CheckAndConsume(ctx context.Context, clientID string) (bool, error)
}

// Record is the per-identity counter for the current window.
type Record struct {
	ClientID    string    `json:"client_id"`
	WindowStart time.Time `json:"window_start"`
	Count       int       `json:"count"`
}

// expired reports whether the record's window has fully elapsed at now.
func (r *Record) expired(now time.Time, window time.Duration) bool {
	return now.Sub(r.WindowStart) >= window
}

// New builds the Limiter selected by cfg.Store.
func New(cfg *Config, db *sql.DB, logger *slog.Logger) (Limiter, error) {
	switch cfg.Store {
	case StoreMemory, "":
		logger.Info(
			"rate limiter ready",
			"store", StoreMemory,
			"limit", cfg.Limit,
			"window", cfg.WindowDuration(),
		)
		return NewMemory(cfg.Limit, cfg.WindowDuration()), nil
	case StorePostgres:
		if db == nil {
			return nil, ErrNoDatabase
		}
		logger.Info(
			"rate limiter ready",
			"store", StorePostgres,
			"limit", cfg.Limit,
			"window", cfg.WindowDuration(),
		)
		return NewPostgres(db, cfg.Limit, cfg.WindowDuration()), nil
	default:
		return nil, fmt.Errorf("unknown rate limit store: %s", cfg.Store)
	}
}
