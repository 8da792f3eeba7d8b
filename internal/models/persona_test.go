// ABOUTME: Tests for persona Registry construction and lookup
// ABOUTME: Covers built-in defaults, JSON overrides, and validation

package models

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewRegistry_Defaults(t *testing.T) {
	reg, err := NewRegistry(DefaultPersonas())
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	p, ok := reg.Get("dr_sakura")
	if !ok {
		t.Fatal("dr_sakura not found in registry")
	}
	if p.Role != "Breast Health Coach" {
		t.Errorf("Role = %q, want Breast Health Coach", p.Role)
	}
	if len(p.Expertise) == 0 {
		t.Error("dr_sakura should have expertise entries")
	}

	if _, ok := reg.Get("nonexistent"); ok {
		t.Error("Get(nonexistent) should return false")
	}
}

func TestNewRegistry_RejectsDuplicates(t *testing.T) {
	personas := []Persona{
		{ID: "a", Name: "A", SystemPrompt: "x"},
		{ID: "a", Name: "A2", SystemPrompt: "y"},
	}
	if _, err := NewRegistry(personas); err == nil {
		t.Error("expected error for duplicate persona IDs")
	}
}

func TestNewRegistry_RejectsInvalid(t *testing.T) {
	if _, err := NewRegistry([]Persona{{ID: "a", Name: "A"}}); err == nil {
		t.Error("expected error for persona without system prompt")
	}
}

func TestLoadRegistry_FileOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "personas.json")
	content := `[{"id": "dr_sakura", "name": "Dr. Sakura (custom)", "role": "Coach", "system_prompt": "custom prompt"}]`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry() error = %v", err)
	}

	p, ok := reg.Get("dr_sakura")
	if !ok {
		t.Fatal("dr_sakura not found")
	}
	if p.SystemPrompt != "custom prompt" {
		t.Errorf("SystemPrompt = %q, want override from file", p.SystemPrompt)
	}

	// Built-ins not named in the file survive the merge
	if _, ok := reg.Get("kai_wellness"); !ok {
		t.Error("kai_wellness built-in should survive the merge")
	}
}

func TestRegistry_ListSorted(t *testing.T) {
	reg, err := NewRegistry(DefaultPersonas())
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	list := reg.List()
	if len(list) != len(DefaultPersonas()) {
		t.Fatalf("List() returned %d personas, want %d", len(list), len(DefaultPersonas()))
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Errorf("List() not sorted: %q before %q", list[i-1].ID, list[i].ID)
		}
	}
}
