package database_test

import (
	"testing"

	"github.com/JaimeStill/refinery/pkg/database"
)

func TestConfigDefaults(t *testing.T) {
	cfg := database.Config{Name: "refinery", User: "refinery"}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	want := "host=localhost port=5432 dbname=refinery user=refinery password= sslmode=disable"
	if got := cfg.Dsn(); got != want {
		t.Errorf("dsn: got %q, want %q", got, want)
	}
	if cfg.MaxOpenConns != 25 || cfg.MaxIdleConns != 5 {
		t.Errorf("pool: got %d/%d, want 25/5", cfg.MaxOpenConns, cfg.MaxIdleConns)
	}
}

func TestConfigURL(t *testing.T) {
	env := &database.Env{URL: "TEST_DB_URL"}
	t.Setenv("TEST_DB_URL", "postgres://u:p@db:5432/refinery")

	var cfg database.Config
	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if got := cfg.Dsn(); got != "postgres://u:p@db:5432/refinery" {
		t.Errorf("dsn: got %q", got)
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  database.Config
	}{
		{"missing name", database.Config{User: "u"}},
		{"missing user", database.Config{Name: "n"}},
		{"bad lifetime", database.Config{Name: "n", User: "u", ConnMaxLifetime: "soon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			if err := cfg.Finalize(nil); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestConfigMerge(t *testing.T) {
	base := database.Config{Host: "localhost", Name: "base"}
	base.Merge(&database.Config{Name: "overlay", Port: 6543})

	if base.Host != "localhost" || base.Name != "overlay" || base.Port != 6543 {
		t.Errorf("merge: got %+v", base)
	}
}
