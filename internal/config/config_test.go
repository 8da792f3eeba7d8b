// ABOUTME: Tests for centralized configuration system
// ABOUTME: Verifies environment variable parsing and validation

package config

import (
	"os"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	// Clear environment to test defaults
	os.Clearenv()
	os.Setenv("ANTHROPIC_API_KEY", "test-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.DBPath != "" {
		t.Errorf("DBPath = %s, want empty (XDG default)", cfg.DBPath)
	}
	if cfg.LLM.Provider != "anthropic" {
		t.Errorf("LLM.Provider = %s, want anthropic", cfg.LLM.Provider)
	}
	if cfg.MaxPromptTokens != 3000 {
		t.Errorf("MaxPromptTokens = %d, want 3000", cfg.MaxPromptTokens)
	}
	if cfg.MemorySessions != 5 {
		t.Errorf("MemorySessions = %d, want 5", cfg.MemorySessions)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %s, want info", cfg.LogLevel)
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat = %s, want text", cfg.LogFormat)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Clearenv()
	os.Setenv("BREZCODE_LLM_PROVIDER", "mock")
	os.Setenv("BREZCODE_DB_PATH", "/tmp/coach-test.db")
	os.Setenv("BREZCODE_PERSONA_FILE", "/etc/coach/personas.json")
	os.Setenv("BREZCODE_MAX_PROMPT_TOKENS", "5000")
	os.Setenv("BREZCODE_MEMORY_SESSIONS", "10")
	os.Setenv("BREZCODE_LOG_LEVEL", "debug")
	os.Setenv("BREZCODE_LOG_FORMAT", "json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.LLM.Provider != "mock" {
		t.Errorf("LLM.Provider = %s, want mock", cfg.LLM.Provider)
	}
	if cfg.DBPath != "/tmp/coach-test.db" {
		t.Errorf("DBPath = %s, want /tmp/coach-test.db", cfg.DBPath)
	}
	if cfg.PersonaFile != "/etc/coach/personas.json" {
		t.Errorf("PersonaFile = %s", cfg.PersonaFile)
	}
	if cfg.MaxPromptTokens != 5000 {
		t.Errorf("MaxPromptTokens = %d, want 5000", cfg.MaxPromptTokens)
	}
	if cfg.MemorySessions != 10 {
		t.Errorf("MemorySessions = %d, want 10", cfg.MemorySessions)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %s, want debug", cfg.LogLevel)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %s, want json", cfg.LogFormat)
	}
}

func TestLoad_MissingAPIKey(t *testing.T) {
	os.Clearenv()
	// Default provider is anthropic; without its key Load must fail.
	if _, err := Load(); err == nil {
		t.Error("Load() should fail without ANTHROPIC_API_KEY")
	}
}

func TestValidate_InvalidPromptTokens(t *testing.T) {
	os.Clearenv()
	os.Setenv("BREZCODE_LLM_PROVIDER", "mock")
	os.Setenv("BREZCODE_MAX_PROMPT_TOKENS", "100")

	if _, err := Load(); err == nil {
		t.Error("Load() should fail for prompt budget below 500")
	}
}

func TestValidate_InvalidMemorySessions(t *testing.T) {
	os.Clearenv()
	os.Setenv("BREZCODE_LLM_PROVIDER", "mock")
	os.Setenv("BREZCODE_MEMORY_SESSIONS", "100")

	if _, err := Load(); err == nil {
		t.Error("Load() should fail for MemorySessions > 50")
	}
}

func TestValidate_InvalidLogFormat(t *testing.T) {
	os.Clearenv()
	os.Setenv("BREZCODE_LLM_PROVIDER", "mock")
	os.Setenv("BREZCODE_LOG_FORMAT", "xml")

	if _, err := Load(); err == nil {
		t.Error("Load() should fail for unknown log format")
	}
}
