// ABOUTME: User, health assessment, and subscription storage operations
// ABOUTME: Latest-assessment lookup feeds the context builder
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/brezcode/coach/internal/models"
)

// ProfileStore handles user, assessment, and subscription persistence
type ProfileStore struct {
	db *DB
}

// NewProfileStore creates a new ProfileStore
func NewProfileStore(db *DB) *ProfileStore {
	return &ProfileStore{db: db}
}

// SaveUser inserts a user. Email uniqueness is enforced by the schema.
func (s *ProfileStore) SaveUser(u *models.User) error {
	_, err := s.db.Exec(`
		INSERT INTO users (id, email, name, created_at) VALUES (?, ?, ?, ?)
	`, u.UserID, u.Email, u.Name, u.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

// GetUserByEmail retrieves a user by email, or nil when absent
func (s *ProfileStore) GetUserByEmail(email string) (*models.User, error) {
	row := s.db.QueryRow("SELECT id, email, name, created_at FROM users WHERE email = ?", email)

	var u models.User
	var name sql.NullString
	err := row.Scan(&u.UserID, &u.Email, &name, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning user: %w", err)
	}
	u.Name = name.String
	return &u, nil
}

// EnsureUser returns the user with the given email, creating one if needed
func (s *ProfileStore) EnsureUser(email, name string) (*models.User, error) {
	existing, err := s.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	u, err := models.NewUser(email, name)
	if err != nil {
		return nil, err
	}
	if err := s.SaveUser(u); err != nil {
		return nil, err
	}
	return u, nil
}

// SaveAssessment inserts a health assessment
func (s *ProfileStore) SaveAssessment(a *models.HealthAssessment) error {
	answersJSON, err := json.Marshal(a.Answers)
	if err != nil {
		return fmt.Errorf("marshaling answers: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO health_assessments (id, user_id, age, risk_score, risk_category, answers, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, a.AssessmentID, a.UserID, a.Age, a.RiskScore, a.RiskCategory, string(answersJSON), a.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting assessment: %w", err)
	}
	return nil
}

// LatestAssessment retrieves the most recent assessment for a user,
// or nil when the user has never been assessed
func (s *ProfileStore) LatestAssessment(userID string) (*models.HealthAssessment, error) {
	row := s.db.QueryRow(`
		SELECT id, user_id, age, risk_score, risk_category, answers, created_at
		FROM health_assessments
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`, userID)

	var (
		a           models.HealthAssessment
		answersJSON sql.NullString
	)
	err := row.Scan(&a.AssessmentID, &a.UserID, &a.Age, &a.RiskScore, &a.RiskCategory, &answersJSON, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning assessment: %w", err)
	}

	if answersJSON.Valid && answersJSON.String != "" {
		if err := json.Unmarshal([]byte(answersJSON.String), &a.Answers); err != nil {
			a.Answers = nil
		}
	}
	return &a, nil
}

// SaveSubscription inserts a subscription row
func (s *ProfileStore) SaveSubscription(sub *models.Subscription) error {
	_, err := s.db.Exec(`
		INSERT INTO subscriptions (id, user_id, tier, status, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, sub.SubscriptionID, sub.UserID, sub.Tier, sub.Status, sub.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting subscription: %w", err)
	}
	return nil
}

// ActiveSubscription retrieves the newest active subscription for a user,
// or nil when none exists
func (s *ProfileStore) ActiveSubscription(userID string) (*models.Subscription, error) {
	row := s.db.QueryRow(`
		SELECT id, user_id, tier, status, created_at
		FROM subscriptions
		WHERE user_id = ? AND status = 'active'
		ORDER BY created_at DESC
		LIMIT 1
	`, userID)

	var sub models.Subscription
	err := row.Scan(&sub.SubscriptionID, &sub.UserID, &sub.Tier, &sub.Status, &sub.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning subscription: %w", err)
	}
	return &sub, nil
}
