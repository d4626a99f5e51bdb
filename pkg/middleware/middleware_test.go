package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/refinery/pkg/middleware"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestSystemAppliesInOrder(t *testing.T) {
	var order []string
	mark := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	sys := middleware.New()
	sys.Use(mark("first"))
	sys.Use(mark("second"))

	h := sys.Apply(http.HandlerFunc(okHandler))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	if got := strings.Join(order, ","); got != "first,second" {
		t.Errorf("order: got %s, want first,second", got)
	}
}

func TestRequestID(t *testing.T) {
	tests := []struct {
		name    string
		inbound string
		reuse   bool
	}{
		{"generated when absent", "", false},
		{"reused when present", "abc-123", true},
		{"replaced when oversized", strings.Repeat("x", 200), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			h := middleware.RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = middleware.RequestIDFrom(r.Context())
			}))

			req := httptest.NewRequest("GET", "/", nil)
			if tt.inbound != "" {
				req.Header.Set(middleware.RequestIDHeader, tt.inbound)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if seen == "" {
				t.Fatal("request id missing from context")
			}
			if rec.Header().Get(middleware.RequestIDHeader) != seen {
				t.Errorf("response header %q does not match context %q", rec.Header().Get(middleware.RequestIDHeader), seen)
			}
			if tt.reuse && seen != tt.inbound {
				t.Errorf("got %s, want inbound %s", seen, tt.inbound)
			}
			if !tt.reuse && seen == tt.inbound {
				t.Errorf("inbound id %q should have been replaced", tt.inbound)
			}
		})
	}
}

func TestLoggerRecordsStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	h := middleware.RequestID()(middleware.Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("POST", "/api/generate", nil))

	out := buf.String()
	for _, want := range []string{"status=429", "method=POST", "uri=/api/generate", "request_id="} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q: %s", want, out)
		}
	}
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name       string
		cfg        middleware.CORSConfig
		origin     string
		wantHeader string
	}{
		{
			name:       "any origin by default",
			origin:     "http://localhost:5173",
			wantHeader: "*",
		},
		{
			name:       "listed origin",
			cfg:        middleware.CORSConfig{Origins: []string{"http://app.example"}},
			origin:     "http://app.example",
			wantHeader: "http://app.example",
		},
		{
			name:   "unlisted origin",
			cfg:    middleware.CORSConfig{Origins: []string{"http://app.example"}},
			origin: "http://evil.example",
		},
		{
			name:   "disabled",
			cfg:    middleware.CORSConfig{Disabled: true},
			origin: "http://localhost:5173",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			if err := cfg.Finalize(nil); err != nil {
				t.Fatalf("finalize: %v", err)
			}

			h := middleware.CORS(&cfg)(http.HandlerFunc(okHandler))
			req := httptest.NewRequest("GET", "/api/health", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantHeader {
				t.Errorf("allow-origin: got %q, want %q", got, tt.wantHeader)
			}
		})
	}
}

func TestCORSConfigEnv(t *testing.T) {
	env := &middleware.CORSEnv{
		Disabled: "TEST_CORS_DISABLED",
		Origins:  "TEST_CORS_ORIGINS",
		MaxAge:   "TEST_CORS_MAX_AGE",
	}
	t.Setenv("TEST_CORS_DISABLED", "true")
	t.Setenv("TEST_CORS_ORIGINS", " http://a.example , ,http://b.example")
	t.Setenv("TEST_CORS_MAX_AGE", "60")

	var cfg middleware.CORSConfig
	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	if !cfg.Disabled {
		t.Error("disabled: got false, want true")
	}
	if len(cfg.Origins) != 2 || cfg.Origins[0] != "http://a.example" || cfg.Origins[1] != "http://b.example" {
		t.Errorf("origins: got %v", cfg.Origins)
	}
	if cfg.MaxAge != 60 {
		t.Errorf("max age: got %d, want 60", cfg.MaxAge)
	}
}
