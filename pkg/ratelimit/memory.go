package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Memory is a process-local Limiter. Records live for the life of the
// process and are never evicted.
type Memory struct {
	mu      sync.Mutex
	records map[string]*Record
	limit   int
	window  time.Duration
	now     func() time.Time
}

// MemoryOption configures a Memory limiter.
type MemoryOption func(*Memory)

// WithClock replaces the time source, primarily for tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *Memory) {
		m.now = now
	}
}

// NewMemory creates an in-memory limiter allowing limit calls per window.
func NewMemory(limit int, window time.Duration, opts ...MemoryOption) *Memory {
	m := &Memory{
		records: make(map[string]*Record),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CheckAndConsume never returns an error. The whole read-check-increment
// sequence runs under the lock so concurrent callers cannot both take the
// last unit.
func (m *Memory) CheckAndConsume(_ context.Context, clientID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()

	rec, ok := m.records[clientID]
	if !ok {
		rec = &Record{ClientID: clientID, WindowStart: now}
		m.records[clientID] = rec
	}

	if rec.expired(now, m.window) {
		rec.WindowStart = now
		rec.Count = 0
	}

	if rec.Count >= m.limit {
		return false, nil
	}

	rec.Count++
	return true, nil
}

// Record returns a copy of the stored record for clientID.
func (m *Memory) Record(clientID string) (Record, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[clientID]
	if !ok {
		return Record{}, false
	}
	return *rec, true
}

// Len returns the number of tracked identities.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}
