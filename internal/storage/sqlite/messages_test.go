// ABOUTME: Tests for transcript message storage operations
// ABOUTME: Verifies dense sequence numbering and improvement-field isolation

package sqlite

import (
	"testing"

	"github.com/brezcode/coach/internal/models"
)

func appendTestMessage(t *testing.T, store *MessageStore, sessionID string, role models.MessageRole, content string) *models.TrainingMessage {
	t.Helper()
	msg, err := models.NewTrainingMessage(sessionID, role, content)
	if err != nil {
		t.Fatalf("NewTrainingMessage() error = %v", err)
	}
	if err := store.Append(msg); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	return msg
}

func TestMessageStore_SequenceNumbers(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	sess := newTestSession(t, NewSessionStore(db), "user_1", "dr_sakura")
	store := NewMessageStore(db)

	first := appendTestMessage(t, store, sess.SessionID, models.RoleSystem, "session opened")
	second := appendTestMessage(t, store, sess.SessionID, models.RoleCustomer, "I found a lump")
	third := appendTestMessage(t, store, sess.SessionID, models.RoleAvatar, "I hear you, let's talk about it")

	if first.SequenceNumber != 1 || second.SequenceNumber != 2 || third.SequenceNumber != 3 {
		t.Errorf("sequence numbers = %d, %d, %d, want 1, 2, 3",
			first.SequenceNumber, second.SequenceNumber, third.SequenceNumber)
	}

	// Each new message gets count(prior)+1
	count, err := store.Count(sess.SessionID)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 3 {
		t.Errorf("Count() = %d, want 3", count)
	}
}

func TestMessageStore_SequenceIsolatedPerSession(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	sessStore := NewSessionStore(db)
	sessA := newTestSession(t, sessStore, "user_1", "dr_sakura")
	sessB := newTestSession(t, sessStore, "user_2", "dr_sakura")
	store := NewMessageStore(db)

	appendTestMessage(t, store, sessA.SessionID, models.RoleCustomer, "hello A")
	msgB := appendTestMessage(t, store, sessB.SessionID, models.RoleCustomer, "hello B")

	if msgB.SequenceNumber != 1 {
		t.Errorf("sequence in second session = %d, want 1", msgB.SequenceNumber)
	}
}

func TestMessageStore_GetBySessionOrder(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	sess := newTestSession(t, NewSessionStore(db), "user_1", "dr_sakura")
	store := NewMessageStore(db)

	appendTestMessage(t, store, sess.SessionID, models.RoleSystem, "opened")
	appendTestMessage(t, store, sess.SessionID, models.RoleCustomer, "question")
	appendTestMessage(t, store, sess.SessionID, models.RoleAvatar, "answer")

	msgs, err := store.GetBySession(sess.SessionID)
	if err != nil {
		t.Fatalf("GetBySession() error = %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("GetBySession() returned %d messages, want 3", len(msgs))
	}
	for i, msg := range msgs {
		if msg.SequenceNumber != i+1 {
			t.Errorf("message %d has sequence %d, want %d", i, msg.SequenceNumber, i+1)
		}
	}
}

func TestMessageStore_AttachImprovement(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	sess := newTestSession(t, NewSessionStore(db), "user_1", "dr_sakura")
	store := NewMessageStore(db)

	msg := appendTestMessage(t, store, sess.SessionID, models.RoleAvatar, "original answer")

	if err := store.AttachImprovement(msg.MessageID, 2, "too clinical", "warmer answer", 85); err != nil {
		t.Fatalf("AttachImprovement() error = %v", err)
	}

	got, err := store.Get(msg.MessageID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	// Original content is never mutated
	if got.Content != "original answer" {
		t.Errorf("Content = %q, want original answer", got.Content)
	}
	if got.ImprovedResponse != "warmer answer" {
		t.Errorf("ImprovedResponse = %q, want warmer answer", got.ImprovedResponse)
	}
	if got.ImprovedQualityScore != 85 {
		t.Errorf("ImprovedQualityScore = %d, want 85", got.ImprovedQualityScore)
	}
	if got.FeedbackRating != 2 {
		t.Errorf("FeedbackRating = %d, want 2", got.FeedbackRating)
	}
}

func TestMessageStore_AttachImprovementMissing(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewMessageStore(db)
	if err := store.AttachImprovement("msg_missing", 1, "c", "r", 0); err == nil {
		t.Error("AttachImprovement() expected error for missing message")
	}
}

func TestMessageStore_CascadeDelete(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	sessStore := NewSessionStore(db)
	sess := newTestSession(t, sessStore, "user_1", "dr_sakura")
	store := NewMessageStore(db)
	appendTestMessage(t, store, sess.SessionID, models.RoleCustomer, "hello")

	if err := sessStore.Delete(sess.SessionID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	count, err := store.Count(sess.SessionID)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 0 {
		t.Errorf("Count() = %d after session delete, want 0", count)
	}
}
