package ratelimit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// consumeSQL opens, resets or advances the caller's window in one statement.
// The conflict branch only fires when the window has elapsed or the count is
// under the limit; otherwise no row is returned and the call is rejected.
const consumeSQL = `
	INSERT INTO rate_limits (client_id, window_start, count)
	VALUES ($1, $2, 1)
	ON CONFLICT (client_id) DO UPDATE SET
		window_start = CASE
			WHEN rate_limits.window_start <= $3 THEN EXCLUDED.window_start
			ELSE rate_limits.window_start
		END,
		count = CASE
			WHEN rate_limits.window_start <= $3 THEN 1
			ELSE rate_limits.count + 1
		END
	WHERE rate_limits.window_start <= $3 OR rate_limits.count < $4
	RETURNING count`

const findSQL = `
	SELECT client_id, window_start, count
	FROM rate_limits
	WHERE client_id = $1`

// Postgres is a Limiter backed by the rate_limits table, shared by every
// service instance that points at the same database.
type Postgres struct {
	db     *sql.DB
	limit  int
	window time.Duration
	now    func() time.Time
}

// NewPostgres creates a limiter over db allowing limit calls per window.
func NewPostgres(db *sql.DB, limit int, window time.Duration) *Postgres {
	return &Postgres{
		db:     db,
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

func (p *Postgres) CheckAndConsume(ctx context.Context, clientID string) (bool, error) {
	now := p.now().UTC()
	cutoff := now.Add(-p.window)

	var count int
	err := p.db.QueryRowContext(ctx, consumeSQL, clientID, now, cutoff, p.limit).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("consume rate limit: %w", err)
	}
	return true, nil
}

// Record returns the stored record for clientID.
func (p *Postgres) Record(ctx context.Context, clientID string) (Record, bool, error) {
	var rec Record
	err := p.db.QueryRowContext(ctx, findSQL, clientID).Scan(&rec.ClientID, &rec.WindowStart, &rec.Count)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("find rate limit: %w", err)
	}
	return rec, true, nil
}
