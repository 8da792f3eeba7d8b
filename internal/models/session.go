// ABOUTME: TrainingSession represents one coaching conversation between a user and an avatar
// ABOUTME: Core data structure for the avatar training pipeline
package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SessionStatus represents the lifecycle state of a training session.
// The only transition is active → completed.
type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
)

// Scenario describes the coaching situation a session plays out
type Scenario struct {
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	CustomerMood string `json:"customer_mood,omitempty"`
}

// SessionContext is the evolving free-form context carried across turns
type SessionContext struct {
	TopicsCovered []string `json:"topics_covered"`
	CustomerMood  string   `json:"customer_mood,omitempty"`
	Phase         string   `json:"phase,omitempty"`
}

// SessionMetrics holds coarse per-session performance counters
type SessionMetrics struct {
	MessageCount    int     `json:"message_count"`
	AvatarResponses int     `json:"avatar_responses"`
	AvgQualityScore float64 `json:"avg_quality_score"`
	RevisionCount   int     `json:"revision_count"`
}

// TrainingSession identifies a coaching conversation between one user
// and one avatar persona for one scenario
type TrainingSession struct {
	SessionID   string         `json:"session_id"`
	UserID      string         `json:"user_id"`
	AvatarID    string         `json:"avatar_id"`
	Scenario    Scenario       `json:"scenario"`
	Status      SessionStatus  `json:"status"`
	Context     SessionContext `json:"context"`
	Metrics     SessionMetrics `json:"metrics"`
	Summary     string         `json:"summary,omitempty"`
	StartedAt   time.Time      `json:"started_at"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
}

// NewTrainingSession creates an active session with validation
func NewTrainingSession(userID, avatarID string, scenario Scenario) (*TrainingSession, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, errors.New("user ID cannot be empty")
	}
	if strings.TrimSpace(avatarID) == "" {
		return nil, errors.New("avatar ID cannot be empty")
	}
	if strings.TrimSpace(scenario.Name) == "" {
		scenario.Name = "general_coaching"
	}
	return &TrainingSession{
		SessionID: generateSessionID(),
		UserID:    userID,
		AvatarID:  avatarID,
		Scenario:  scenario,
		Status:    SessionActive,
		Context:   SessionContext{TopicsCovered: []string{}, CustomerMood: scenario.CustomerMood, Phase: "opening"},
		StartedAt: time.Now().UTC(),
	}, nil
}

// Validate checks the session invariants
func (s *TrainingSession) Validate() error {
	if s.SessionID == "" {
		return errors.New("session ID cannot be empty")
	}
	if s.Status != SessionActive && s.Status != SessionCompleted {
		return fmt.Errorf("invalid session status %q", s.Status)
	}
	return nil
}

// RecordResponse folds one scored avatar response into the rolling metrics
func (m *SessionMetrics) RecordResponse(qualityScore int) {
	total := m.AvgQualityScore*float64(m.AvatarResponses) + float64(qualityScore)
	m.AvatarResponses++
	m.AvgQualityScore = total / float64(m.AvatarResponses)
}

// generateSessionID generates a unique session identifier
func generateSessionID() string {
	return fmt.Sprintf("sess_%s_%s", time.Now().Format("20060102_150405"), uuid.New().String()[:8])
}
