// ABOUTME: User, HealthAssessment, and Subscription relational entities
// ABOUTME: Profile data consumed by the context builder when assembling prompts
package models

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is a platform account
type User struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUser creates a user with validation
func NewUser(email, name string) (*User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid email %q", email)
	}
	return &User{
		UserID:    "user_" + uuid.New().String()[:8],
		Email:     email,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// HealthAssessment is one quiz result with a computed risk score.
// The latest assessment per user is what the context builder consumes.
type HealthAssessment struct {
	AssessmentID string            `json:"assessment_id"`
	UserID       string            `json:"user_id"`
	Age          int               `json:"age"`
	RiskScore    float64           `json:"risk_score"`
	RiskCategory string            `json:"risk_category"`
	Answers      map[string]string `json:"answers,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
}

// NewHealthAssessment creates an assessment with validation
func NewHealthAssessment(userID string, age int, riskScore float64, riskCategory string, answers map[string]string) (*HealthAssessment, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, errors.New("user ID cannot be empty")
	}
	if age < 0 || age > 130 {
		return nil, fmt.Errorf("age out of range: %d", age)
	}
	if riskCategory == "" {
		riskCategory = CategorizeRisk(riskScore)
	}
	return &HealthAssessment{
		AssessmentID: "assess_" + uuid.New().String()[:8],
		UserID:       userID,
		Age:          age,
		RiskScore:    riskScore,
		RiskCategory: riskCategory,
		Answers:      answers,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// CategorizeRisk buckets a 0-100 risk score into a named category
func CategorizeRisk(score float64) string {
	switch {
	case score < 25:
		return "low"
	case score < 50:
		return "moderate"
	case score < 75:
		return "elevated"
	default:
		return "high"
	}
}

// Prose renders the assessment into the natural-language form the
// context builder embeds in prompts.
func (a *HealthAssessment) Prose() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Age: %d, Risk: %s (score %.1f)", a.Age, a.RiskCategory, a.RiskScore))
	if len(a.Answers) > 0 {
		keys := make([]string, 0, len(a.Answers))
		for key := range a.Answers {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		sb.WriteString(". Profile notes:")
		for _, key := range keys {
			sb.WriteString(fmt.Sprintf(" %s: %s;", strings.ReplaceAll(key, "_", " "), a.Answers[key]))
		}
	}
	return sb.String()
}

// Subscription is a plan tier row
type Subscription struct {
	SubscriptionID string    `json:"subscription_id"`
	UserID         string    `json:"user_id"`
	Tier           string    `json:"tier"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}
