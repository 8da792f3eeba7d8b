// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM agents to run coaching sessions via stdio

package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/brezcode/coach/internal/coach"
	"github.com/brezcode/coach/internal/config"
	"github.com/brezcode/coach/internal/llm"
	"github.com/brezcode/coach/internal/logger"
	"github.com/brezcode/coach/internal/mcp"
	"github.com/brezcode/coach/internal/models"
	"github.com/brezcode/coach/internal/storage/sqlite"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs the coaching platform as an MCP (Model Context Protocol) server,
exposing session, feedback, and knowledge tools over stdio.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically launched by an agent host)
  coach mcp

  # Configure in an MCP client config:
  # {
  #   "mcpServers": {
  #     "coach": {
  #       "command": "coach",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
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
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	registry, err := models.LoadRegistry(cfg.PersonaFile)
	if err != nil {
		_ = store.Close()
		return fmt.Errorf("loading personas: %w", err)
	}

	provider, err := llm.NewProvider(cfg.LLM, log)
	if err != nil {
		_ = store.Close()
		return fmt.Errorf("initializing LLM provider: %w", err)
	}

	service := coach.NewService(store, registry, provider, coach.NewKeywordScorer(),
		cfg.MaxPromptTokens, cfg.MemorySessions, log)

	// Create MCP server
	server := mcpserver.NewMCPServer(
		"BrezCode Coach",
		"0.1.0",
	)

	// Register MCP tools
	mcp.RegisterTools(server, service, log)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet {
		log.Info("coach MCP server starting on stdio")
	}

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	// Wait for shutdown signal or server error
	select {
	case <-ctx.Done():
		if !quiet {
			log.Info("shutdown signal received")
		}
		if err := store.Close(); err != nil {
			log.WithError(err).Warn("error closing storage")
		}

	case err := <-serverErr:
		_ = store.Close()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
