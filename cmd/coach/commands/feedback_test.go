// ABOUTME: Tests for feedback command structure
// ABOUTME: Verifies flags and argument validation

package commands

import (
	"testing"
)

func TestNewFeedbackCmd(t *testing.T) {
	cmd := NewFeedbackCmd()

	if cmd.Use != "feedback <message-id>" {
		t.Errorf("Use = %q, want %q", cmd.Use, "feedback <message-id>")
	}

	for _, name := range []string{"rating", "comment"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("--%s flag not found", name)
		}
	}
}

func TestFeedbackCmd_RequiresArg(t *testing.T) {
	cmd := NewFeedbackCmd()
	cmd.SetArgs([]string{"--rating", "3", "--comment", "x"})

	if err := cmd.Execute(); err == nil {
		t.Error("expected error when message ID is missing")
	}
}

func TestFeedbackCmd_RequiresFlags(t *testing.T) {
	cmd := NewFeedbackCmd()
	cmd.SetArgs([]string{"msg_123"})

	if err := cmd.Execute(); err == nil {
		t.Error("expected error when rating and comment are missing")
	}
}
