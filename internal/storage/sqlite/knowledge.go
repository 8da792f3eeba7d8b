// ABOUTME: Knowledge document and chunk storage operations for SQLite
// ABOUTME: Tenant-isolated substring search over per-avatar chunks
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/brezcode/coach/internal/models"
)

// MaxSearchResults caps how many chunks a search returns
const MaxSearchResults = 10

// KnowledgeStore handles knowledge document and chunk persistence
type KnowledgeStore struct {
	db *DB
}

// NewKnowledgeStore creates a new KnowledgeStore
func NewKnowledgeStore(db *DB) *KnowledgeStore {
	return &KnowledgeStore{db: db}
}

// SaveDocument inserts a document together with its chunks
func (s *KnowledgeStore) SaveDocument(doc *models.KnowledgeDocument, chunks []models.KnowledgeChunk) error {
	tx, err := s.db.Conn().Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	doc.ChunkCount = len(chunks)
	_, err = tx.Exec(`
		INSERT INTO knowledge_documents (id, avatar_id, title, chunk_count, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, doc.DocumentID, doc.AvatarID, doc.Title, doc.ChunkCount, doc.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting document: %w", err)
	}

	for _, chunk := range chunks {
		keywordsJSON, err := json.Marshal(chunk.Keywords)
		if err != nil {
			return fmt.Errorf("marshaling keywords: %w", err)
		}
		topicsJSON, err := json.Marshal(chunk.Topics)
		if err != nil {
			return fmt.Errorf("marshaling topics: %w", err)
		}

		_, err = tx.Exec(`
			INSERT INTO knowledge_chunks (id, document_id, avatar_id, chunk_index, content, keywords, topics)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, chunk.ChunkID, doc.DocumentID, chunk.AvatarID, chunk.Index, chunk.Content,
			string(keywordsJSON), string(topicsJSON))
		if err != nil {
			return fmt.Errorf("inserting chunk %d: %w", chunk.Index, err)
		}
	}

	return tx.Commit()
}

// GetDocument retrieves a document by ID
func (s *KnowledgeStore) GetDocument(documentID string) (*models.KnowledgeDocument, error) {
	row := s.db.QueryRow(`
		SELECT id, avatar_id, title, chunk_count, created_at
		FROM knowledge_documents
		WHERE id = ?
	`, documentID)

	var doc models.KnowledgeDocument
	err := row.Scan(&doc.DocumentID, &doc.AvatarID, &doc.Title, &doc.ChunkCount, &doc.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("document not found: %s", documentID)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning document: %w", err)
	}
	return &doc, nil
}

// ListDocuments retrieves all documents for an avatar, newest first
func (s *KnowledgeStore) ListDocuments(avatarID string) ([]*models.KnowledgeDocument, error) {
	rows, err := s.db.Query(`
		SELECT id, avatar_id, title, chunk_count, created_at
		FROM knowledge_documents
		WHERE avatar_id = ?
		ORDER BY created_at DESC
	`, avatarID)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var docs []*models.KnowledgeDocument
	for rows.Next() {
		var doc models.KnowledgeDocument
		if err := rows.Scan(&doc.DocumentID, &doc.AvatarID, &doc.Title, &doc.ChunkCount, &doc.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		docs = append(docs, &doc)
	}
	return docs, rows.Err()
}

// DeleteDocument removes a document; chunks cascade
func (s *KnowledgeStore) DeleteDocument(documentID string) error {
	_, err := s.db.Exec("DELETE FROM knowledge_documents WHERE id = ?", documentID)
	return err
}

// Search returns chunks belonging to the given avatar whose content
// contains the query, case-insensitive, in insertion order, capped at
// MaxSearchResults. Chunks of other avatars are never returned.
func (s *KnowledgeStore) Search(avatarID, query string, limit int) ([]models.KnowledgeChunk, error) {
	if limit <= 0 || limit > MaxSearchResults {
		limit = MaxSearchResults
	}

	pattern := "%" + strings.ToLower(query) + "%"
	rows, err := s.db.Query(`
		SELECT id, document_id, avatar_id, chunk_index, content, keywords, topics
		FROM knowledge_chunks
		WHERE avatar_id = ? AND lower(content) LIKE ?
		ORDER BY rowid ASC
		LIMIT ?
	`, avatarID, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("searching chunks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanChunks(rows)
}

// GetChunksByDocument retrieves all chunks of a document in index order
func (s *KnowledgeStore) GetChunksByDocument(documentID string) ([]models.KnowledgeChunk, error) {
	rows, err := s.db.Query(`
		SELECT id, document_id, avatar_id, chunk_index, content, keywords, topics
		FROM knowledge_chunks
		WHERE document_id = ?
		ORDER BY chunk_index ASC
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanChunks(rows)
}

func scanChunks(rows *sql.Rows) ([]models.KnowledgeChunk, error) {
	var chunks []models.KnowledgeChunk
	for rows.Next() {
		var (
			chunk        models.KnowledgeChunk
			keywordsJSON sql.NullString
			topicsJSON   sql.NullString
		)

		err := rows.Scan(&chunk.ChunkID, &chunk.DocumentID, &chunk.AvatarID, &chunk.Index,
			&chunk.Content, &keywordsJSON, &topicsJSON)
		if err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}

		if keywordsJSON.Valid && keywordsJSON.String != "" {
			if err := json.Unmarshal([]byte(keywordsJSON.String), &chunk.Keywords); err != nil {
				chunk.Keywords = []string{}
			}
		}
		if topicsJSON.Valid && topicsJSON.String != "" {
			if err := json.Unmarshal([]byte(topicsJSON.String), &chunk.Topics); err != nil {
				chunk.Topics = []string{}
			}
		}

		chunks = append(chunks, chunk)
	}
	return chunks, rows.Err()
}
