// ABOUTME: Tests for sessions command group structure
// ABOUTME: Verifies subcommands and required flags

package commands

import (
	"testing"
)

func TestNewSessionsCmd(t *testing.T) {
	cmd := NewSessionsCmd()

	if cmd.Use != "sessions" {
		t.Errorf("Use = %q, want %q", cmd.Use, "sessions")
	}

	expected := []string{"list", "show", "complete", "delete"}
	for _, name := range expected {
		t.Run(name, func(t *testing.T) {
			for _, sub := range cmd.Commands() {
				if sub.Name() == name {
					return
				}
			}
			t.Errorf("subcommand %q not registered", name)
		})
	}
}

func TestSessionsListCmd_Flags(t *testing.T) {
	cmd := newSessionsListCmd()

	for _, name := range []string{"user", "avatar", "limit"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("--%s flag not found", name)
		}
	}

	if flag := cmd.Flags().Lookup("limit"); flag != nil && flag.DefValue != "20" {
		t.Errorf("--limit default = %q, want 20", flag.DefValue)
	}
}

func TestSessionsShowCmd_RequiresArg(t *testing.T) {
	cmd := newSessionsShowCmd()
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err == nil {
		t.Error("expected error when session ID is missing")
	}
}

func TestSessionsCompleteCmd_RequiresArg(t *testing.T) {
	cmd := newSessionsCompleteCmd()
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err == nil {
		t.Error("expected error when session ID is missing")
	}
}

func TestSessionsDeleteCmd_RequiresArg(t *testing.T) {
	cmd := newSessionsDeleteCmd()
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err == nil {
		t.Error("expected error when session ID is missing")
	}
}
