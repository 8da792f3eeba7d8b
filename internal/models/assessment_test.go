// ABOUTME: Tests for health assessment entities and prose rendering
// ABOUTME: Verifies risk categorization and the prompt-facing format

package models

import (
	"strings"
	"testing"
)

func TestCategorizeRisk(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0, "low"},
		{24.9, "low"},
		{25, "moderate"},
		{49, "moderate"},
		{50, "elevated"},
		{75, "high"},
		{100, "high"},
	}

	for _, tt := range tests {
		if got := CategorizeRisk(tt.score); got != tt.want {
			t.Errorf("CategorizeRisk(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestNewHealthAssessment(t *testing.T) {
	a, err := NewHealthAssessment("user_1", 45, 62.5, "", map[string]string{"family_history": "yes"})
	if err != nil {
		t.Fatalf("NewHealthAssessment() error = %v", err)
	}
	if a.RiskCategory != "elevated" {
		t.Errorf("RiskCategory = %q, want elevated (derived from score)", a.RiskCategory)
	}

	if _, err := NewHealthAssessment("", 45, 10, "", nil); err == nil {
		t.Error("expected error for empty user ID")
	}
	if _, err := NewHealthAssessment("user_1", -1, 10, "", nil); err == nil {
		t.Error("expected error for negative age")
	}
}

func TestHealthAssessment_Prose(t *testing.T) {
	a, err := NewHealthAssessment("user_1", 45, 62.5, "", map[string]string{
		"family_history": "yes",
		"exercise":       "rarely",
	})
	if err != nil {
		t.Fatalf("NewHealthAssessment() error = %v", err)
	}

	prose := a.Prose()
	if !strings.Contains(prose, "Age: 45") {
		t.Errorf("Prose() = %q, want Age: 45", prose)
	}
	if !strings.Contains(prose, "Risk: elevated") {
		t.Errorf("Prose() = %q, want Risk: elevated", prose)
	}
	if !strings.Contains(prose, "family history: yes") {
		t.Errorf("Prose() = %q, want answers rendered with spaces", prose)
	}

	// Deterministic output for sorted keys
	if prose != a.Prose() {
		t.Error("Prose() should be deterministic")
	}
}

func TestNewUser(t *testing.T) {
	u, err := NewUser("Jane@Example.com", "Jane")
	if err != nil {
		t.Fatalf("NewUser() error = %v", err)
	}
	if u.Email != "jane@example.com" {
		t.Errorf("Email = %q, want lowercased", u.Email)
	}

	if _, err := NewUser("not-an-email", ""); err == nil {
		t.Error("expected error for invalid email")
	}
}
