// ABOUTME: Main entry point for the coaching MCP server with stdio transport
// ABOUTME: Initializes storage, personas, LLM provider, and all tools

package main

import (
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/brezcode/coach/internal/coach"
	"github.com/brezcode/coach/internal/config"
	"github.com/brezcode/coach/internal/llm"
	"github.com/brezcode/coach/internal/logger"
	"github.com/brezcode/coach/internal/mcp"
	"github.com/brezcode/coach/internal/models"
	"github.com/brezcode/coach/internal/storage/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewForMCP("info").WithError(err).Fatal("invalid configuration")
	}

	// Stdout carries the protocol stream; logs go to stderr.
	log := logger.NewForMCP(cfg.LogLevel)

	var store *sqlite.Storage
	if cfg.DBPath != "" {
		store, err = sqlite.NewStorageWithPath(cfg.DBPath)
	} else {
		store, err = sqlite.NewStorage()
	}
	if err != nil {
		log.WithError(err).Fatal("failed to initialize storage")
	}
	defer func() { _ = store.Close() }()

	registry, err := models.LoadRegistry(cfg.PersonaFile)
	if err != nil {
		log.WithError(err).Fatal("failed to load personas")
	}

	provider, err := llm.NewProvider(cfg.LLM, log)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize LLM provider")
	}

	service := coach.NewService(store, registry, provider, coach.NewKeywordScorer(),
		cfg.MaxPromptTokens, cfg.MemorySessions, log)

	server := mcpserver.NewMCPServer(
		"BrezCode Coach",
		"0.1.0",
	)

	mcp.RegisterTools(server, service, log)

	log.Info("coach MCP server starting on stdio")
	if err := mcpserver.ServeStdio(server); err != nil {
		log.WithError(err).Error("server error")
		os.Exit(1)
	}
}
