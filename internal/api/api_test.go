package api_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/refinery/internal/api"
	"github.com/JaimeStill/refinery/internal/config"
	"github.com/JaimeStill/refinery/internal/infrastructure"
	"github.com/JaimeStill/refinery/pkg/completion"
	"github.com/JaimeStill/refinery/pkg/module"
)

func newRouter(t *testing.T) *module.Router {
	t.Helper()

	cfg := &config.Config{}
	cfg.Completion.Provider = completion.ProviderMock
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	infra, err := infrastructure.NewWithLogger(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("infrastructure: %v", err)
	}

	m, err := api.NewModule(cfg, infra)
	if err != nil {
		t.Fatalf("module: %v", err)
	}

	router := module.NewRouter()
	router.Mount(m)
	return router
}

func do(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	router := newRouter(t)

	rec := do(router, "GET", "/api/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("body: got %v", body)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("missing request id header")
	}
	if rec.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("missing cors header")
	}
}

func TestPromptFlow(t *testing.T) {
	router := newRouter(t)

	rec := do(router, "POST", "/api/generate", `{"prompt":"solar panels","template":"research"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("generate: status %d, body %s", rec.Code, rec.Body)
	}
	var gen struct {
		Prompt          string `json:"prompt"`
		RefinementCount int    `json:"refinement_count"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&gen); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(gen.Prompt, "solar panels") || gen.RefinementCount != 0 {
		t.Fatalf("generate: got %+v", gen)
	}

	prompt := gen.Prompt
	for i := range 3 {
		payload, _ := json.Marshal(map[string]any{
			"prompt":           prompt,
			"additional_input": "focus on cost",
			"refinement_count": i,
			"choice":           "add_context",
		})
		rec := do(router, "POST", "/api/refine", string(payload))
		if rec.Code != http.StatusOK {
			t.Fatalf("refine %d: status %d, body %s", i, rec.Code, rec.Body)
		}

		var ref struct {
			RefinedPrompt   string `json:"refined_prompt"`
			RefinementCount int    `json:"refinement_count"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&ref); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if ref.RefinementCount != i+1 {
			t.Errorf("refine %d: count %d", i, ref.RefinementCount)
		}
		prompt = ref.RefinedPrompt
	}

	payload, _ := json.Marshal(map[string]any{
		"prompt":           prompt,
		"additional_input": "one more",
		"refinement_count": 3,
		"choice":           "add_context",
	})
	if rec := do(router, "POST", "/api/refine", string(payload)); rec.Code != http.StatusBadRequest {
		t.Errorf("fourth refine: status %d, want 400", rec.Code)
	}

	payload, _ = json.Marshal(map[string]string{"prompt": prompt})
	if rec := do(router, "POST", "/api/test", string(payload)); rec.Code != http.StatusOK {
		t.Errorf("test: status %d, body %s", rec.Code, rec.Body)
	}
}

func TestHealthIsNotRateLimited(t *testing.T) {
	router := newRouter(t)

	for i := range 25 {
		if rec := do(router, "POST", "/api/test", `{"prompt":"x"}`); rec.Code != http.StatusOK {
			t.Fatalf("call %d: status %d", i+1, rec.Code)
		}
	}
	if rec := do(router, "POST", "/api/test", `{"prompt":"x"}`); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("call 26: status %d, want 429", rec.Code)
	}
	if rec := do(router, "GET", "/api/health", ""); rec.Code != http.StatusOK {
		t.Errorf("health after quota: status %d", rec.Code)
	}
}

func TestMissingCredentialStillServes(t *testing.T) {
	for _, key := range []string{"REFINERY_COMPLETION_API_KEY", completion.EnvGeminiAPIKey} {
		t.Setenv(key, "")
	}

	cfg := &config.Config{}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	infra, err := infrastructure.NewWithLogger(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("infrastructure: %v", err)
	}
	m, err := api.NewModule(cfg, infra)
	if err != nil {
		t.Fatalf("module: %v", err)
	}
	router := module.NewRouter()
	router.Mount(m)

	if rec := do(router, "GET", "/api/health", ""); rec.Code != http.StatusOK {
		t.Errorf("health: status %d", rec.Code)
	}
	if rec := do(router, "POST", "/api/generate", `{"prompt":"x"}`); rec.Code != http.StatusInternalServerError {
		t.Errorf("generate: status %d, want 500", rec.Code)
	}
}
