// ABOUTME: Centralized configuration for the coaching platform
// ABOUTME: Loads from environment variables with validation and defaults

package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/brezcode/coach/internal/llm"
)

// Config holds all configuration for the coaching platform
type Config struct {
	// Database settings
	DBPath string

	// LLM provider settings
	LLM llm.Config

	// Persona settings
	PersonaFile string

	// Prompt assembly settings
	MaxPromptTokens int
	MemorySessions  int

	// Logging settings
	LogLevel  string
	LogFormat string
}

// Load reads configuration from environment variables. A .env file in
// the working directory is applied first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBPath:          getEnv("BREZCODE_DB_PATH", ""),
		LLM:             llm.ConfigFromEnv(),
		PersonaFile:     getEnv("BREZCODE_PERSONA_FILE", ""),
		MaxPromptTokens: getEnvInt("BREZCODE_MAX_PROMPT_TOKENS", 3000),
		MemorySessions:  getEnvInt("BREZCODE_MEMORY_SESSIONS", 5),
		LogLevel:        getEnv("BREZCODE_LOG_LEVEL", "info"),
		LogFormat:       getEnv("BREZCODE_LOG_FORMAT", "text"),
	}

	return cfg, cfg.Validate()
}

// Validate fails fast on configuration the process cannot run with.
func (c *Config) Validate() error {
	if err := c.LLM.Validate(); err != nil {
		return err
	}
	if c.MaxPromptTokens < 500 {
		return fmt.Errorf("BREZCODE_MAX_PROMPT_TOKENS must be at least 500, got %d", c.MaxPromptTokens)
	}
	if c.MemorySessions < 0 || c.MemorySessions > 50 {
		return fmt.Errorf("BREZCODE_MEMORY_SESSIONS must be 0-50, got %d", c.MemorySessions)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("BREZCODE_LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}
