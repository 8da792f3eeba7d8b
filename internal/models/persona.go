// ABOUTME: Persona represents a named avatar configuration presented as a coach
// ABOUTME: Loaded once at startup into an immutable Registry
package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Persona is a named avatar configuration: tone, expertise, and the
// system prompt the response generator speaks through.
type Persona struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Role         string   `json:"role"`
	Tone         string   `json:"tone"`
	Expertise    []string `json:"expertise"`
	SystemPrompt string   `json:"system_prompt"`
}

// Validate checks that the persona has the fields the generator depends on
func (p *Persona) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return errors.New("persona ID cannot be empty")
	}
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("persona name cannot be empty")
	}
	if strings.TrimSpace(p.SystemPrompt) == "" {
		return errors.New("persona system prompt cannot be empty")
	}
	return nil
}

// Registry is an immutable set of personas, built once at startup and
// passed explicitly to the components that need it.
type Registry struct {
	personas map[string]Persona
}

// NewRegistry builds a registry from the given personas
func NewRegistry(personas []Persona) (*Registry, error) {
	m := make(map[string]Persona, len(personas))
	for _, p := range personas {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("invalid persona %q: %w", p.ID, err)
		}
		if _, exists := m[p.ID]; exists {
			return nil, fmt.Errorf("duplicate persona ID %q", p.ID)
		}
		m[p.ID] = p
	}
	return &Registry{personas: m}, nil
}

// LoadRegistry builds a registry from the built-in personas, optionally
// merged with personas from a JSON file (file entries override built-ins).
func LoadRegistry(path string) (*Registry, error) {
	personas := DefaultPersonas()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading persona file: %w", err)
		}
		var extra []Persona
		if err := json.Unmarshal(data, &extra); err != nil {
			return nil, fmt.Errorf("parsing persona file: %w", err)
		}
		byID := make(map[string]Persona, len(personas)+len(extra))
		for _, p := range personas {
			byID[p.ID] = p
		}
		for _, p := range extra {
			byID[p.ID] = p
		}
		personas = personas[:0]
		for _, p := range byID {
			personas = append(personas, p)
		}
	}

	return NewRegistry(personas)
}

// Get returns the persona for an avatar ID
func (r *Registry) Get(avatarID string) (Persona, bool) {
	p, ok := r.personas[avatarID]
	return p, ok
}

// List returns all personas sorted by ID
func (r *Registry) List() []Persona {
	out := make([]Persona, 0, len(r.personas))
	for _, p := range r.personas {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// DefaultPersonas returns the built-in avatar configurations
func DefaultPersonas() []Persona {
	return []Persona{
		{
			ID:        "dr_sakura",
			Name:      "Dr. Sakura Wellness",
			Role:      "Breast Health Coach",
			Tone:      "warm, reassuring, and medically grounded",
			Expertise: []string{"breast health", "risk assessment", "preventive care", "patient communication"},
			SystemPrompt: "You are Dr. Sakura Wellness, a compassionate breast health coach. " +
				"You answer health questions with empathy first, then clear, evidence-based guidance. " +
				"You never diagnose; you encourage professional screening when symptoms are described.",
		},
		{
			ID:        "maya_skin",
			Name:      "Maya",
			Role:      "Skincare Coach",
			Tone:      "friendly and practical",
			Expertise: []string{"skincare routines", "ingredient analysis", "skin types"},
			SystemPrompt: "You are Maya, an approachable skincare coach. " +
				"You give practical, routine-oriented advice tailored to the user's skin profile.",
		},
		{
			ID:        "alex_lead",
			Name:      "Alex",
			Role:      "Sales Training Partner",
			Tone:      "direct and encouraging",
			Expertise: []string{"lead qualification", "objection handling", "follow-up strategy"},
			SystemPrompt: "You are Alex, a sales training partner. " +
				"You role-play realistic customer conversations and coach on objection handling.",
		},
		{
			ID:        "kai_wellness",
			Name:      "Kai",
			Role:      "Lifestyle Wellness Coach",
			Tone:      "calm and motivating",
			Expertise: []string{"nutrition", "exercise habits", "stress management", "sleep"},
			SystemPrompt: "You are Kai, a lifestyle wellness coach. " +
				"You help users build sustainable healthy habits one small step at a time.",
		},
	}
}
