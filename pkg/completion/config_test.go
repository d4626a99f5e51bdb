package completion_test

import (
	"testing"
	"time"

	"github.com/JaimeStill/refinery/pkg/completion"
)

var testEnv = &completion.Env{
	Provider:      "TEST_COMPLETION_PROVIDER",
	Model:         "TEST_COMPLETION_MODEL",
	APIKey:        "TEST_COMPLETION_API_KEY",
	BaseURL:       "TEST_COMPLETION_BASE_URL",
	Timeout:       "TEST_COMPLETION_TIMEOUT",
	MaxConcurrent: "TEST_COMPLETION_MAX_CONCURRENT",
}

func TestConfigDefaults(t *testing.T) {
	var cfg completion.Config
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	if cfg.Provider != completion.ProviderGemini {
		t.Errorf("provider: got %s, want gemini", cfg.Provider)
	}
	if cfg.Model != "gemini-2.0-flash" {
		t.Errorf("model: got %s, want gemini-2.0-flash", cfg.Model)
	}
	if cfg.TimeoutDuration() != time.Minute {
		t.Errorf("timeout: got %v, want 1m", cfg.TimeoutDuration())
	}
	if cfg.MaxConcurrent != 8 {
		t.Errorf("max_concurrent: got %d, want 8", cfg.MaxConcurrent)
	}
}

func TestConfigProviderModelDefault(t *testing.T) {
	t.Setenv("TEST_COMPLETION_PROVIDER", "openai")

	var cfg completion.Config
	if err := cfg.Finalize(testEnv); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	if cfg.Model != "gpt-4o-mini" {
		t.Errorf("model: got %s, want gpt-4o-mini", cfg.Model)
	}
}

func TestConfigAPIKeySources(t *testing.T) {
	tests := []struct {
		name    string
		service string
		native  string
		want    string
	}{
		{"service variable wins", "svc-key", "native-key", "svc-key"},
		{"native fallback", "", "native-key", "native-key"},
		{"none", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_COMPLETION_API_KEY", tt.service)
			t.Setenv(completion.EnvGeminiAPIKey, tt.native)

			var cfg completion.Config
			if err := cfg.Finalize(testEnv); err != nil {
				t.Fatalf("finalize: %v", err)
			}
			if cfg.APIKey != tt.want {
				t.Errorf("api key: got %q, want %q", cfg.APIKey, tt.want)
			}
			if cfg.HasCredential() != (tt.want != "") {
				t.Errorf("has credential: got %v", cfg.HasCredential())
			}
		})
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  completion.Config
	}{
		{"unknown provider", completion.Config{Provider: "anthropic"}},
		{"bad timeout", completion.Config{Timeout: "soon"}},
		{"zero timeout", completion.Config{Timeout: "0s"}},
		{"negative concurrency", completion.Config{MaxConcurrent: -2}},
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
	base := completion.Config{Provider: "gemini", Model: "gemini-2.0-flash", Timeout: "60s"}
	base.Merge(&completion.Config{Model: "gemini-2.5-pro", MaxConcurrent: 2})

	if base.Model != "gemini-2.5-pro" {
		t.Errorf("model: got %s", base.Model)
	}
	if base.Provider != "gemini" {
		t.Errorf("provider: got %s", base.Provider)
	}
	if base.MaxConcurrent != 2 {
		t.Errorf("max_concurrent: got %d", base.MaxConcurrent)
	}
}
