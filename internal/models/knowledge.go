// ABOUTME: KnowledgeDocument and KnowledgeChunk represent a document uploaded for one avatar
// ABOUTME: Chunks are independently searchable slices keyed by avatar identity
package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// KnowledgeDocument is a document uploaded for a given avatar. Deleting a
// document cascades to its chunks.
type KnowledgeDocument struct {
	DocumentID string    `json:"document_id"`
	AvatarID   string    `json:"avatar_id"`
	Title      string    `json:"title"`
	ChunkCount int       `json:"chunk_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// KnowledgeChunk is one searchable slice of a document. Index is the
// 0-based position of the chunk within its parent document.
type KnowledgeChunk struct {
	ChunkID    string   `json:"chunk_id"`
	DocumentID string   `json:"document_id"`
	AvatarID   string   `json:"avatar_id"`
	Index      int      `json:"index"`
	Content    string   `json:"content"`
	Keywords   []string `json:"keywords,omitempty"`
	Topics     []string `json:"topics,omitempty"`
}

// NewKnowledgeDocument creates a document record with validation
func NewKnowledgeDocument(avatarID, title string) (*KnowledgeDocument, error) {
	if strings.TrimSpace(avatarID) == "" {
		return nil, errors.New("avatar ID cannot be empty")
	}
	if strings.TrimSpace(title) == "" {
		title = "untitled"
	}
	return &KnowledgeDocument{
		DocumentID: "doc_" + uuid.New().String(),
		AvatarID:   avatarID,
		Title:      title,
		CreatedAt:  time.Now().UTC(),
	}, nil
}

// GenerateChunkID generates a unique chunk identifier
func GenerateChunkID() string {
	return "chunk_" + uuid.New().String()
}
