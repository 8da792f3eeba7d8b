// ABOUTME: Training session storage operations for SQLite
// ABOUTME: Handles the active → completed transition with an idempotent guard
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/brezcode/coach/internal/models"
)

// SessionStore handles training session persistence
type SessionStore struct {
	db *DB
}

// NewSessionStore creates a new SessionStore
func NewSessionStore(db *DB) *SessionStore {
	return &SessionStore{db: db}
}

// Save inserts a new session
func (s *SessionStore) Save(sess *models.TrainingSession) error {
	if err := sess.Validate(); err != nil {
		return fmt.Errorf("invalid session: %w", err)
	}

	scenarioJSON, err := json.Marshal(sess.Scenario)
	if err != nil {
		return fmt.Errorf("marshaling scenario: %w", err)
	}
	contextJSON, err := json.Marshal(sess.Context)
	if err != nil {
		return fmt.Errorf("marshaling context: %w", err)
	}
	metricsJSON, err := json.Marshal(sess.Metrics)
	if err != nil {
		return fmt.Errorf("marshaling metrics: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO training_sessions (id, user_id, avatar_id, scenario, status, context, metrics, summary, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, sess.SessionID, sess.UserID, sess.AvatarID, string(scenarioJSON), string(sess.Status),
		string(contextJSON), string(metricsJSON), sess.Summary, sess.StartedAt)
	if err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}
	return nil
}

// Get retrieves a session by ID
func (s *SessionStore) Get(sessionID string) (*models.TrainingSession, error) {
	row := s.db.QueryRow(`
		SELECT id, user_id, avatar_id, scenario, status, context, metrics, summary, started_at, completed_at
		FROM training_sessions
		WHERE id = ?
	`, sessionID)

	sess, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("session not found: %s", sessionID)
	}
	return sess, err
}

// ListByUser retrieves sessions for a user, newest first. An empty
// avatarID matches all avatars.
func (s *SessionStore) ListByUser(userID, avatarID string, limit int) ([]*models.TrainingSession, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, user_id, avatar_id, scenario, status, context, metrics, summary, started_at, completed_at
		FROM training_sessions
		WHERE user_id = ?`
	args := []interface{}{userID}
	if avatarID != "" {
		query += " AND avatar_id = ?"
		args = append(args, avatarID)
	}
	query += " ORDER BY started_at DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var sessions []*models.TrainingSession
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// ListCompletedByUserAvatar retrieves completed sessions for a user/avatar
// pair, newest first. Used by the training memory aggregator.
func (s *SessionStore) ListCompletedByUserAvatar(userID, avatarID string, limit int) ([]*models.TrainingSession, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(`
		SELECT id, user_id, avatar_id, scenario, status, context, metrics, summary, started_at, completed_at
		FROM training_sessions
		WHERE user_id = ? AND avatar_id = ? AND status = ?
		ORDER BY started_at DESC
		LIMIT ?
	`, userID, avatarID, string(models.SessionCompleted), limit)
	if err != nil {
		return nil, fmt.Errorf("querying completed sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var sessions []*models.TrainingSession
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// UpdateProgress persists the evolving context and metrics of an active session
func (s *SessionStore) UpdateProgress(sessionID string, sessCtx models.SessionContext, metrics models.SessionMetrics) error {
	contextJSON, err := json.Marshal(sessCtx)
	if err != nil {
		return fmt.Errorf("marshaling context: %w", err)
	}
	metricsJSON, err := json.Marshal(metrics)
	if err != nil {
		return fmt.Errorf("marshaling metrics: %w", err)
	}

	_, err = s.db.Exec(`
		UPDATE training_sessions SET context = ?, metrics = ? WHERE id = ?
	`, string(contextJSON), string(metricsJSON), sessionID)
	if err != nil {
		return fmt.Errorf("updating session progress: %w", err)
	}
	return nil
}

// Complete transitions a session from active to completed exactly once.
// Returns true if this call performed the transition, false if the
// session was already completed (the stored summary is left untouched).
func (s *SessionStore) Complete(sessionID, summary string) (bool, error) {
	res, err := s.db.Exec(`
		UPDATE training_sessions
		SET status = ?, summary = ?, completed_at = ?
		WHERE id = ? AND status = ?
	`, string(models.SessionCompleted), summary, time.Now().UTC(), sessionID, string(models.SessionActive))
	if err != nil {
		return false, fmt.Errorf("completing session: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking completion: %w", err)
	}
	return affected == 1, nil
}

// Delete removes a session and, via cascade, its messages
func (s *SessionStore) Delete(sessionID string) error {
	_, err := s.db.Exec("DELETE FROM training_sessions WHERE id = ?", sessionID)
	return err
}

// rowScanner abstracts sql.Row and sql.Rows for scanSession
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSession(row rowScanner) (*models.TrainingSession, error) {
	var (
		sess         models.TrainingSession
		scenarioJSON string
		statusStr    string
		contextJSON  sql.NullString
		metricsJSON  sql.NullString
		summary      sql.NullString
		completedAt  sql.NullTime
	)

	err := row.Scan(&sess.SessionID, &sess.UserID, &sess.AvatarID, &scenarioJSON, &statusStr,
		&contextJSON, &metricsJSON, &summary, &sess.StartedAt, &completedAt)
	if err != nil {
		return nil, err
	}

	sess.Status = models.SessionStatus(statusStr)
	if err := json.Unmarshal([]byte(scenarioJSON), &sess.Scenario); err != nil {
		return nil, fmt.Errorf("unmarshaling scenario: %w", err)
	}
	if contextJSON.Valid && contextJSON.String != "" {
		if err := json.Unmarshal([]byte(contextJSON.String), &sess.Context); err != nil {
			sess.Context = models.SessionContext{}
		}
	}
	if metricsJSON.Valid && metricsJSON.String != "" {
		if err := json.Unmarshal([]byte(metricsJSON.String), &sess.Metrics); err != nil {
			sess.Metrics = models.SessionMetrics{}
		}
	}
	if summary.Valid {
		sess.Summary = summary.String
	}
	if completedAt.Valid {
		t := completedAt.Time
		sess.CompletedAt = &t
	}

	return &sess, nil
}
