// ABOUTME: Structured logger setup shared by the CLI and the MCP server
// ABOUTME: Level and format come from configuration; MCP mode logs to stderr

package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New builds a logrus logger with the given level and format.
// Unknown levels fall back to info.
func New(level, format string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)

	if format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			PadLevelText:  true,
		})
	}

	return log
}

// NewForMCP builds a logger for MCP stdio mode. Stdout carries the
// protocol stream, so log output goes to stderr.
func NewForMCP(level string) *logrus.Logger {
	log := New(level, "text")
	log.SetOutput(os.Stderr)
	return log
}

// NewSilent builds a logger that discards everything. Used by tests and
// by commands whose output must stay machine-readable.
func NewSilent() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
