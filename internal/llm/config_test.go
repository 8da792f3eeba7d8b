// ABOUTME: Tests for LLM configuration loading and validation
// ABOUTME: Covers env overrides, defaults, and fail-fast key checks

package llm

import (
	"testing"
	"time"
)

func TestConfigFromEnv_Defaults(t *testing.T) {
	t.Setenv("BREZCODE_LLM_PROVIDER", "")
	t.Setenv("BREZCODE_ANTHROPIC_MODEL", "")
	t.Setenv("BREZCODE_LLM_TIMEOUT", "")

	cfg := ConfigFromEnv()

	if cfg.Provider != "anthropic" {
		t.Errorf("Provider = %q, want anthropic", cfg.Provider)
	}
	if cfg.Anthropic.Model != "claude-haiku" {
		t.Errorf("Anthropic.Model = %q, want claude-haiku", cfg.Anthropic.Model)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
	if cfg.Retry.MaxAttempts != 3 {
		t.Errorf("Retry.MaxAttempts = %d, want 3", cfg.Retry.MaxAttempts)
	}
}

func TestConfigFromEnv_Overrides(t *testing.T) {
	t.Setenv("BREZCODE_LLM_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("BREZCODE_OPENAI_MODEL", "gpt-4o")
	t.Setenv("BREZCODE_OPENAI_BASE_URL", "http://localhost:8080/v1")
	t.Setenv("BREZCODE_LLM_TIMEOUT", "45s")

	cfg := ConfigFromEnv()

	if cfg.Provider != "openai" {
		t.Errorf("Provider = %q, want openai", cfg.Provider)
	}
	if cfg.OpenAI.APIKey != "sk-test" {
		t.Errorf("OpenAI.APIKey = %q, want sk-test", cfg.OpenAI.APIKey)
	}
	if cfg.OpenAI.Model != "gpt-4o" {
		t.Errorf("OpenAI.Model = %q, want gpt-4o", cfg.OpenAI.Model)
	}
	if cfg.OpenAI.BaseURL != "http://localhost:8080/v1" {
		t.Errorf("OpenAI.BaseURL = %q", cfg.OpenAI.BaseURL)
	}
	if cfg.Timeout != 45*time.Second {
		t.Errorf("Timeout = %v, want 45s", cfg.Timeout)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "anthropic without key",
			mutate:  func(c *Config) { c.Provider = "anthropic" },
			wantErr: true,
		},
		{
			name: "anthropic with key",
			mutate: func(c *Config) {
				c.Provider = "anthropic"
				c.Anthropic.APIKey = "sk-ant"
			},
			wantErr: false,
		},
		{
			name:    "openai without key",
			mutate:  func(c *Config) { c.Provider = "openai" },
			wantErr: true,
		},
		{
			name:    "mock needs no key",
			mutate:  func(c *Config) { c.Provider = "mock" },
			wantErr: false,
		},
		{
			name:    "unknown provider",
			mutate:  func(c *Config) { c.Provider = "gemini" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
