package ratelimit_test

import (
	"database/sql"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/JaimeStill/refinery/pkg/ratelimit"
)

var testEnv = &ratelimit.Env{
	Store:      "TEST_RATE_LIMIT_STORE",
	Limit:      "TEST_RATE_LIMIT_LIMIT",
	Window:     "TEST_RATE_LIMIT_WINDOW",
	TrustProxy: "TEST_RATE_LIMIT_TRUST_PROXY",
}

func TestConfigDefaults(t *testing.T) {
	var cfg ratelimit.Config
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	if cfg.Store != ratelimit.StoreMemory {
		t.Errorf("store: got %s, want memory", cfg.Store)
	}
	if cfg.Limit != 25 {
		t.Errorf("limit: got %d, want 25", cfg.Limit)
	}
	if cfg.WindowDuration() != 24*time.Hour {
		t.Errorf("window: got %v, want 24h", cfg.WindowDuration())
	}
	if cfg.TrustProxy {
		t.Error("trust_proxy should default to false")
	}
}

func TestConfigEnvOverrides(t *testing.T) {
	t.Setenv("TEST_RATE_LIMIT_LIMIT", "100")
	t.Setenv("TEST_RATE_LIMIT_WINDOW", "1h")
	t.Setenv("TEST_RATE_LIMIT_TRUST_PROXY", "true")

	var cfg ratelimit.Config
	if err := cfg.Finalize(testEnv); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	if cfg.Limit != 100 {
		t.Errorf("limit: got %d, want 100", cfg.Limit)
	}
	if cfg.WindowDuration() != time.Hour {
		t.Errorf("window: got %v, want 1h", cfg.WindowDuration())
	}
	if !cfg.TrustProxy {
		t.Error("trust_proxy: got false, want true")
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  ratelimit.Config
	}{
		{"unknown store", ratelimit.Config{Store: "redis"}},
		{"negative limit", ratelimit.Config{Limit: -1}},
		{"bad window", ratelimit.Config{Window: "tomorrow"}},
		{"negative window", ratelimit.Config{Window: "-1h"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Finalize(nil); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestConfigMerge(t *testing.T) {
	base := ratelimit.Config{Store: "memory", Limit: 25, Window: "24h"}
	base.Merge(&ratelimit.Config{Limit: 10, TrustProxy: true})

	if base.Limit != 10 {
		t.Errorf("limit: got %d, want 10", base.Limit)
	}
	if base.Window != "24h" {
		t.Errorf("window: got %s, want 24h", base.Window)
	}
	if !base.TrustProxy {
		t.Error("trust_proxy: got false, want true")
	}
}

func TestNewSelectsStore(t *testing.T) {
	cfg := ratelimit.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	l, err := ratelimit.New(&cfg, nil, slog.Default())
	if err != nil {
		t.Fatalf("new memory: %v", err)
	}
	if _, ok := l.(*ratelimit.Memory); !ok {
		t.Errorf("limiter: got %T, want *ratelimit.Memory", l)
	}

	cfg.Store = ratelimit.StorePostgres
	if _, err := ratelimit.New(&cfg, nil, slog.Default()); !errors.Is(err, ratelimit.ErrNoDatabase) {
		t.Errorf("postgres without db: got %v, want ErrNoDatabase", err)
	}

	var db *sql.DB
	cfg.Store = "redis"
	if _, err := ratelimit.New(&cfg, db, slog.Default()); err == nil {
		t.Error("unknown store should fail")
	}
}
