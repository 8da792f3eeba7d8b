// ABOUTME: TrainingMessage represents one turn in a training session transcript
// ABOUTME: Immutable after insert except for the attached improvement fields
package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MessageRole identifies who produced a transcript turn
type MessageRole string

const (
	RoleCustomer MessageRole = "customer"
	RoleAvatar   MessageRole = "avatar"
	RoleSystem   MessageRole = "system"
)

// TrainingMessage is one turn in a session transcript. SequenceNumber is
// assigned by the store at insert time, dense and 1-based per session.
type TrainingMessage struct {
	MessageID      string      `json:"message_id"`
	SessionID      string      `json:"session_id"`
	Role           MessageRole `json:"role"`
	Content        string      `json:"content"`
	SequenceNumber int         `json:"sequence_number"`

	// Heuristic scores, 0-100. Zero means unscored.
	QualityScore  int `json:"quality_score,omitempty"`
	EmpathyScore  int `json:"empathy_score,omitempty"`
	AccuracyScore int `json:"accuracy_score,omitempty"`

	// Improvement fields, set only by the feedback revision loop.
	// Original Content is never mutated.
	FeedbackRating       int    `json:"feedback_rating,omitempty"`
	FeedbackComment      string `json:"feedback_comment,omitempty"`
	ImprovedResponse     string `json:"improved_response,omitempty"`
	ImprovedQualityScore int    `json:"improved_quality_score,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// NewTrainingMessage creates a message with validation. The sequence
// number is left at zero until the store assigns it.
func NewTrainingMessage(sessionID string, role MessageRole, content string) (*TrainingMessage, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, errors.New("session ID cannot be empty")
	}
	if strings.TrimSpace(content) == "" {
		return nil, errors.New("message content cannot be empty")
	}
	if role != RoleCustomer && role != RoleAvatar && role != RoleSystem {
		return nil, fmt.Errorf("invalid message role %q", role)
	}
	return &TrainingMessage{
		MessageID: generateMessageID(),
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// generateMessageID generates a unique message identifier
func generateMessageID() string {
	return "msg_" + uuid.New().String()
}
