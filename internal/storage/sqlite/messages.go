// ABOUTME: Training message storage operations for SQLite
// ABOUTME: Appends transcript turns with atomically assigned sequence numbers
package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/brezcode/coach/internal/models"
)

// MessageStore handles transcript message persistence
type MessageStore struct {
	db *DB
}

// NewMessageStore creates a new MessageStore
func NewMessageStore(db *DB) *MessageStore {
	return &MessageStore{db: db}
}

// Append inserts a message with the next sequence number for its session.
// The sequence number is computed inside the INSERT itself, so concurrent
// appenders cannot produce duplicate or skipped numbers; the UNIQUE
// constraint on (session_id, sequence_number) backstops the invariant.
// The assigned number is written back into msg.SequenceNumber.
func (s *MessageStore) Append(msg *models.TrainingMessage) error {
	_, err := s.db.Exec(`
		INSERT INTO training_messages (id, session_id, role, content, sequence_number,
			quality_score, empathy_score, accuracy_score, created_at)
		VALUES (?, ?, ?, ?,
			(SELECT COALESCE(MAX(sequence_number), 0) + 1 FROM training_messages WHERE session_id = ?),
			?, ?, ?, ?)
	`, msg.MessageID, msg.SessionID, string(msg.Role), msg.Content, msg.SessionID,
		msg.QualityScore, msg.EmpathyScore, msg.AccuracyScore, msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("appending message: %w", err)
	}

	row := s.db.QueryRow("SELECT sequence_number FROM training_messages WHERE id = ?", msg.MessageID)
	if err := row.Scan(&msg.SequenceNumber); err != nil {
		return fmt.Errorf("reading assigned sequence number: %w", err)
	}
	return nil
}

// Get retrieves a message by ID
func (s *MessageStore) Get(messageID string) (*models.TrainingMessage, error) {
	row := s.db.QueryRow(`
		SELECT id, session_id, role, content, sequence_number,
			quality_score, empathy_score, accuracy_score,
			feedback_rating, feedback_comment, improved_response, improved_quality_score, created_at
		FROM training_messages
		WHERE id = ?
	`, messageID)

	msg, err := scanMessage(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("message not found: %s", messageID)
	}
	return msg, err
}

// GetBySession retrieves the full transcript of a session in sequence order
func (s *MessageStore) GetBySession(sessionID string) ([]*models.TrainingMessage, error) {
	rows, err := s.db.Query(`
		SELECT id, session_id, role, content, sequence_number,
			quality_score, empathy_score, accuracy_score,
			feedback_rating, feedback_comment, improved_response, improved_quality_score, created_at
		FROM training_messages
		WHERE session_id = ?
		ORDER BY sequence_number ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("querying messages: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var messages []*models.TrainingMessage
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

// Count returns the number of messages in a session
func (s *MessageStore) Count(sessionID string) (int, error) {
	var n int
	row := s.db.QueryRow("SELECT COUNT(*) FROM training_messages WHERE session_id = ?", sessionID)
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("counting messages: %w", err)
	}
	return n, nil
}

// AttachImprovement records a feedback revision on an existing message.
// Only the improvement fields change; content is never touched.
func (s *MessageStore) AttachImprovement(messageID string, rating int, comment, improved string, improvedScore int) error {
	res, err := s.db.Exec(`
		UPDATE training_messages
		SET feedback_rating = ?, feedback_comment = ?, improved_response = ?, improved_quality_score = ?
		WHERE id = ?
	`, rating, comment, improved, improvedScore, messageID)
	if err != nil {
		return fmt.Errorf("attaching improvement: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking improvement update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("message not found: %s", messageID)
	}
	return nil
}

func scanMessage(row rowScanner) (*models.TrainingMessage, error) {
	var (
		msg     models.TrainingMessage
		roleStr string
	)

	err := row.Scan(&msg.MessageID, &msg.SessionID, &roleStr, &msg.Content, &msg.SequenceNumber,
		&msg.QualityScore, &msg.EmpathyScore, &msg.AccuracyScore,
		&msg.FeedbackRating, &msg.FeedbackComment, &msg.ImprovedResponse, &msg.ImprovedQualityScore,
		&msg.CreatedAt)
	if err != nil {
		return nil, err
	}

	msg.Role = models.MessageRole(roleStr)
	return &msg, nil
}
