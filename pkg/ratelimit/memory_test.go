package ratelimit_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/JaimeStill/refinery/pkg/ratelimit"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *clock {
	return &clock{now: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func consume(t *testing.T, l ratelimit.Limiter, id string) bool {
	t.Helper()
	ok, err := l.CheckAndConsume(context.Background(), id)
	if err != nil {
		t.Fatalf("CheckAndConsume(%s): %v", id, err)
	}
	return ok
}

func TestMemoryCeiling(t *testing.T) {
	clk := newClock()
	l := ratelimit.NewMemory(25, 24*time.Hour, ratelimit.WithClock(clk.Now))

	for i := 1; i <= 25; i++ {
		if !consume(t, l, "10.0.0.1") {
			t.Fatalf("call %d: rejected, want allowed", i)
		}
	}

	if consume(t, l, "10.0.0.1") {
		t.Fatal("call 26: allowed, want rejected")
	}

	rec, ok := l.Record("10.0.0.1")
	if !ok {
		t.Fatal("record missing")
	}
	if rec.Count != 25 {
		t.Errorf("count after rejection: got %d, want 25", rec.Count)
	}
}

func TestMemoryWindowReset(t *testing.T) {
	clk := newClock()
	l := ratelimit.NewMemory(25, 24*time.Hour, ratelimit.WithClock(clk.Now))

	for range 25 {
		consume(t, l, "10.0.0.1")
	}

	clk.Advance(23 * time.Hour)
	if consume(t, l, "10.0.0.1") {
		t.Fatal("allowed before the window elapsed")
	}

	clk.Advance(time.Hour)
	if !consume(t, l, "10.0.0.1") {
		t.Fatal("rejected after the window elapsed")
	}

	rec, _ := l.Record("10.0.0.1")
	if rec.Count != 1 {
		t.Errorf("count after reset: got %d, want 1", rec.Count)
	}
	if !rec.WindowStart.Equal(clk.Now()) {
		t.Errorf("window start: got %v, want %v", rec.WindowStart, clk.Now())
	}
}

func TestMemoryFixedWindow(t *testing.T) {
	clk := newClock()
	l := ratelimit.NewMemory(2, time.Hour, ratelimit.WithClock(clk.Now))

	consume(t, l, "a")
	clk.Advance(50 * time.Minute)
	consume(t, l, "a")

	clk.Advance(10 * time.Minute)
	if !consume(t, l, "a") {
		t.Error("window should reset an hour after it opened, not after the last call")
	}
}

func TestMemoryIdentitiesIndependent(t *testing.T) {
	l := ratelimit.NewMemory(1, time.Hour)

	if !consume(t, l, "a") {
		t.Fatal("a: first call rejected")
	}
	if consume(t, l, "a") {
		t.Fatal("a: second call allowed")
	}
	if !consume(t, l, "b") {
		t.Fatal("b: first call rejected")
	}
	if got := l.Len(); got != 2 {
		t.Errorf("tracked identities: got %d, want 2", got)
	}
}

func TestMemoryConcurrentConsumers(t *testing.T) {
	const limit = 25
	l := ratelimit.NewMemory(limit, time.Hour)

	var (
		allowed atomic.Int32
		wg      sync.WaitGroup
	)
	for range 200 {
		wg.Go(func() {
			ok, _ := l.CheckAndConsume(context.Background(), "shared")
			if ok {
				allowed.Add(1)
			}
		})
	}
	wg.Wait()

	if got := allowed.Load(); got != limit {
		t.Errorf("allowed calls: got %d, want %d", got, limit)
	}
}

func TestMemoryRecordUnknown(t *testing.T) {
	l := ratelimit.NewMemory(1, time.Hour)
	if _, ok := l.Record("missing"); ok {
		t.Error("record should not exist before the first call")
	}
}
