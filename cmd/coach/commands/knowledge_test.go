// ABOUTME: Tests for knowledge command group structure
// ABOUTME: Verifies subcommands and flag defaults

package commands

import (
	"testing"
)

func TestNewKnowledgeCmd(t *testing.T) {
	cmd := NewKnowledgeCmd()

	if cmd.Use != "knowledge" {
		t.Errorf("Use = %q, want %q", cmd.Use, "knowledge")
	}

	expected := []string{"upload", "search", "list", "delete"}
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

func TestKnowledgeUploadCmd_Flags(t *testing.T) {
	cmd := newKnowledgeUploadCmd()

	for _, name := range []string{"avatar", "title", "file"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("--%s flag not found", name)
		}
	}
}

func TestKnowledgeSearchCmd_Flags(t *testing.T) {
	cmd := newKnowledgeSearchCmd()

	if cmd.Flags().Lookup("avatar") == nil {
		t.Error("--avatar flag not found")
	}
	if flag := cmd.Flags().Lookup("limit"); flag == nil || flag.DefValue != "5" {
		t.Error("--limit flag missing or wrong default")
	}
}

func TestKnowledgeDeleteCmd_RequiresArg(t *testing.T) {
	cmd := newKnowledgeDeleteCmd()
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err == nil {
		t.Error("expected error when document ID is missing")
	}
}
