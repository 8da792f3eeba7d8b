// ABOUTME: Shared utility functions for CLI commands
// ABOUTME: Service construction, display formatting, and output helpers

package commands

import (
	"fmt"
	"time"

	"github.com/brezcode/coach/internal/coach"
	"github.com/brezcode/coach/internal/config"
	"github.com/brezcode/coach/internal/llm"
	"github.com/brezcode/coach/internal/logger"
	"github.com/brezcode/coach/internal/models"
	"github.com/brezcode/coach/internal/storage/sqlite"
	"github.com/sirupsen/logrus"
)

// openService builds the coaching service from configuration. The
// returned cleanup closes storage and must be deferred by the caller.
func openService() (*coach.Service, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading configuration: %w", err)
	}

	var log *logrus.Logger
	if verbose {
		log = logger.New("debug", cfg.LogFormat)
	} else {
		log = logger.NewSilent()
	}

	var store *sqlite.Storage
	if cfg.DBPath != "" {
		store, err = sqlite.NewStorageWithPath(cfg.DBPath)
	} else {
		store, err = sqlite.NewStorage()
	}
	if err != nil {
		return nil, nil, fmt.Errorf("initializing storage: %w", err)
	}

	registry, err := models.LoadRegistry(cfg.PersonaFile)
	if err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("loading personas: %w", err)
	}

	provider, err := llm.NewProvider(cfg.LLM, log)
	if err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("initializing LLM provider: %w", err)
	}

	svc := coach.NewService(store, registry, provider, coach.NewKeywordScorer(), cfg.MaxPromptTokens, cfg.MemorySessions, log)
	cleanup := func() { _ = store.Close() }
	return svc, cleanup, nil
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return string(runes[:maxLen-3]) + "..."
}

// formatTime formats a time for display
func formatTime(t time.Time) string {
	now := time.Now()
	diff := now.Sub(t)

	if diff < time.Minute {
		return "just now"
	} else if diff < time.Hour {
		mins := int(diff.Minutes())
		return fmt.Sprintf("%dm ago", mins)
	} else if diff < 24*time.Hour {
		hours := int(diff.Hours())
		return fmt.Sprintf("%dh ago", hours)
	} else if diff < 7*24*time.Hour {
		days := int(diff.Hours() / 24)
		return fmt.Sprintf("%dd ago", days)
	}
	return t.Format("2006-01-02")
}
