// ABOUTME: Service orchestrates the full coaching pipeline for one deployment
// ABOUTME: Session lifecycle, message turns, feedback revision, and knowledge management

package coach

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/brezcode/coach/internal/knowledge"
	"github.com/brezcode/coach/internal/llm"
	"github.com/brezcode/coach/internal/models"
	"github.com/brezcode/coach/internal/storage/sqlite"
)

// Turn is the result of posting one customer message: the stored
// customer message and the avatar's scored reply.
type Turn struct {
	Customer *models.TrainingMessage
	Avatar   *models.TrainingMessage
	Fallback bool
}

// Service wires storage, personas, context assembly, and generation into
// the coaching pipeline's entry points.
type Service struct {
	storage   *sqlite.Storage
	registry  *models.Registry
	builder   *ContextBuilder
	generator *Generator
	chunker   *knowledge.Chunker
	log       *logrus.Logger
}

// NewService assembles a Service from its parts.
func NewService(store *sqlite.Storage, registry *models.Registry, provider llm.Provider, scorer Scorer, maxPromptTokens, memorySessions int, log *logrus.Logger) *Service {
	memory := NewMemoryBank(store, memorySessions)
	return &Service{
		storage:   store,
		registry:  registry,
		builder:   NewContextBuilder(store, memory, maxPromptTokens),
		generator: NewGenerator(provider, scorer, log),
		chunker:   knowledge.NewChunker(),
		log:       log,
	}
}

// StartSession opens a new training session and seeds its transcript
// with the persona's system message.
func (s *Service) StartSession(ctx context.Context, userID, avatarID string, scenario models.Scenario) (*models.TrainingSession, error) {
	persona, ok := s.registry.Get(avatarID)
	if !ok {
		return nil, fmt.Errorf("unknown avatar %q", avatarID)
	}

	sess, err := models.NewTrainingSession(userID, avatarID, scenario)
	if err != nil {
		return nil, err
	}
	if err := s.storage.Sessions().Save(sess); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}

	sysMsg, err := models.NewTrainingMessage(sess.SessionID, models.RoleSystem, persona.SystemPrompt)
	if err != nil {
		return nil, err
	}
	if err := s.storage.Messages().Append(sysMsg); err != nil {
		return nil, fmt.Errorf("seeding system message: %w", err)
	}

	sess.Metrics.MessageCount = 1
	if err := s.storage.Sessions().UpdateProgress(sess.SessionID, sess.Context, sess.Metrics); err != nil {
		return nil, fmt.Errorf("updating session progress: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"session_id": sess.SessionID,
		"user_id":    userID,
		"avatar_id":  avatarID,
		"scenario":   sess.Scenario.Name,
	}).Info("training session started")

	return sess, nil
}

// SendMessage appends a customer message to an active session, generates
// the avatar's reply, and stores both.
func (s *Service) SendMessage(ctx context.Context, sessionID, content string) (*Turn, error) {
	sess, err := s.storage.Sessions().Get(sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Status != models.SessionActive {
		return nil, fmt.Errorf("session %s is not active", sessionID)
	}

	persona, ok := s.registry.Get(sess.AvatarID)
	if !ok {
		return nil, fmt.Errorf("unknown avatar %q", sess.AvatarID)
	}

	history, err := s.storage.Messages().GetBySession(sessionID)
	if err != nil {
		return nil, fmt.Errorf("loading transcript: %w", err)
	}

	customerMsg, err := models.NewTrainingMessage(sessionID, models.RoleCustomer, content)
	if err != nil {
		return nil, err
	}
	if err := s.storage.Messages().Append(customerMsg); err != nil {
		return nil, fmt.Errorf("appending customer message: %w", err)
	}

	prompt, err := s.builder.Build(persona, sess, history, content)
	if err != nil {
		return nil, fmt.Errorf("building prompt: %w", err)
	}

	resp := s.generator.Respond(ctx, prompt)

	avatarMsg, err := models.NewTrainingMessage(sessionID, models.RoleAvatar, resp.Content)
	if err != nil {
		return nil, err
	}
	avatarMsg.QualityScore = resp.Scores.Quality
	avatarMsg.EmpathyScore = resp.Scores.Empathy
	avatarMsg.AccuracyScore = resp.Scores.Accuracy
	if err := s.storage.Messages().Append(avatarMsg); err != nil {
		return nil, fmt.Errorf("appending avatar message: %w", err)
	}

	sess.Metrics.MessageCount += 2
	sess.Metrics.RecordResponse(resp.Scores.Quality)
	sess.Context.Phase = "in_progress"
	sess.Context.TopicsCovered = mergeTopics(sess.Context.TopicsCovered, knowledge.TopicsOf(content))
	if err := s.storage.Sessions().UpdateProgress(sessionID, sess.Context, sess.Metrics); err != nil {
		return nil, fmt.Errorf("updating session progress: %w", err)
	}

	return &Turn{Customer: customerMsg, Avatar: avatarMsg, Fallback: resp.Fallback}, nil
}

// CompleteSession transitions an active session to completed with a
// summary of its metrics. Completing twice is a no-op that preserves
// the original summary.
func (s *Service) CompleteSession(ctx context.Context, sessionID string) (*models.TrainingSession, error) {
	sess, err := s.storage.Sessions().Get(sessionID)
	if err != nil {
		return nil, err
	}

	summary := fmt.Sprintf(
		"Session with %s covering %s: %d messages, %d avatar responses, average quality %.0f, %d revisions.",
		sess.AvatarID, sess.Scenario.Name,
		sess.Metrics.MessageCount, sess.Metrics.AvatarResponses,
		sess.Metrics.AvgQualityScore, sess.Metrics.RevisionCount,
	)

	completed, err := s.storage.Sessions().Complete(sessionID, summary)
	if err != nil {
		return nil, fmt.Errorf("completing session: %w", err)
	}
	if completed {
		s.log.WithField("session_id", sessionID).Info("training session completed")
	}

	return s.storage.Sessions().Get(sessionID)
}

// ReviseMessage runs the feedback revision loop for one avatar message.
// The original content is never changed; the improved response and its
// score are attached alongside it.
func (s *Service) ReviseMessage(ctx context.Context, messageID string, rating int, comment string) (*models.TrainingMessage, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5, got %d", rating)
	}

	msg, err := s.storage.Messages().Get(messageID)
	if err != nil {
		return nil, err
	}
	if msg.Role != models.RoleAvatar {
		return nil, fmt.Errorf("message %s is not an avatar response", messageID)
	}

	sess, err := s.storage.Sessions().Get(msg.SessionID)
	if err != nil {
		return nil, err
	}
	persona, ok := s.registry.Get(sess.AvatarID)
	if !ok {
		return nil, fmt.Errorf("unknown avatar %q", sess.AvatarID)
	}

	question, err := s.precedingCustomerMessage(msg)
	if err != nil {
		return nil, err
	}

	revised, err := s.generator.Revise(ctx, persona, question, msg.Content, comment)
	if err != nil {
		return nil, err
	}

	if err := s.storage.Messages().AttachImprovement(messageID, rating, comment, revised.Content, revised.Scores.Quality); err != nil {
		return nil, fmt.Errorf("attaching improvement: %w", err)
	}

	sess.Metrics.RevisionCount++
	if err := s.storage.Sessions().UpdateProgress(sess.SessionID, sess.Context, sess.Metrics); err != nil {
		return nil, fmt.Errorf("updating session progress: %w", err)
	}

	return s.storage.Messages().Get(messageID)
}

// precedingCustomerMessage finds the customer message the given avatar
// response answered.
func (s *Service) precedingCustomerMessage(msg *models.TrainingMessage) (string, error) {
	transcript, err := s.storage.Messages().GetBySession(msg.SessionID)
	if err != nil {
		return "", fmt.Errorf("loading transcript: %w", err)
	}

	question := ""
	for _, m := range transcript {
		if m.SequenceNumber >= msg.SequenceNumber {
			break
		}
		if m.Role == models.RoleCustomer {
			question = m.Content
		}
	}
	if question == "" {
		return "", fmt.Errorf("no customer message precedes %s", msg.MessageID)
	}
	return question, nil
}

// Transcript returns a session's messages in sequence order.
func (s *Service) Transcript(sessionID string) ([]*models.TrainingMessage, error) {
	return s.storage.Messages().GetBySession(sessionID)
}

// GetSession returns one session by ID.
func (s *Service) GetSession(sessionID string) (*models.TrainingSession, error) {
	return s.storage.Sessions().Get(sessionID)
}

// ListSessions returns a user's sessions, optionally filtered by avatar.
func (s *Service) ListSessions(userID, avatarID string, limit int) ([]*models.TrainingSession, error) {
	return s.storage.Sessions().ListByUser(userID, avatarID, limit)
}

// DeleteSession removes a session and its transcript.
func (s *Service) DeleteSession(sessionID string) error {
	if _, err := s.storage.Sessions().Get(sessionID); err != nil {
		return err
	}
	if err := s.storage.Sessions().Delete(sessionID); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}

	s.log.WithField("session_id", sessionID).Info("session deleted")
	return nil
}

// Personas returns all configured avatar personas.
func (s *Service) Personas() []models.Persona {
	return s.registry.List()
}

// UploadDocument chunks document text and stores it for an avatar.
func (s *Service) UploadDocument(avatarID, title, text string) (*models.KnowledgeDocument, error) {
	if _, ok := s.registry.Get(avatarID); !ok {
		return nil, fmt.Errorf("unknown avatar %q", avatarID)
	}

	doc, err := models.NewKnowledgeDocument(avatarID, title)
	if err != nil {
		return nil, err
	}

	chunks, err := s.chunker.ChunkDocument(doc, text)
	if err != nil {
		return nil, fmt.Errorf("chunking document: %w", err)
	}
	doc.ChunkCount = len(chunks)

	if err := s.storage.Knowledge().SaveDocument(doc, chunks); err != nil {
		return nil, fmt.Errorf("saving document: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"document_id": doc.DocumentID,
		"avatar_id":   avatarID,
		"chunks":      doc.ChunkCount,
	}).Info("knowledge document uploaded")

	return doc, nil
}

// SearchKnowledge runs a substring search over an avatar's chunks.
func (s *Service) SearchKnowledge(avatarID, query string, limit int) ([]models.KnowledgeChunk, error) {
	return s.storage.Knowledge().Search(avatarID, query, limit)
}

// ListDocuments returns an avatar's uploaded documents.
func (s *Service) ListDocuments(avatarID string) ([]*models.KnowledgeDocument, error) {
	return s.storage.Knowledge().ListDocuments(avatarID)
}

// DeleteDocument removes a document and its chunks.
func (s *Service) DeleteDocument(documentID string) error {
	return s.storage.Knowledge().DeleteDocument(documentID)
}

// mergeTopics appends topics not already covered, skipping the catch-all
// bucket so the list stays meaningful.
func mergeTopics(covered, found []string) []string {
	seen := make(map[string]bool, len(covered))
	for _, t := range covered {
		seen[t] = true
	}
	for _, t := range found {
		if t == "general" || seen[t] {
			continue
		}
		covered = append(covered, t)
		seen[t] = true
	}
	return covered
}
