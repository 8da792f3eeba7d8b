// ABOUTME: Unified Storage layer that wraps all SQLite stores
// ABOUTME: Single handle the services receive for persistence
package sqlite

import (
	"fmt"
)

// Storage manages all persistent data for the coaching platform
type Storage struct {
	db        *DB
	sessions  *SessionStore
	messages  *MessageStore
	knowledge *KnowledgeStore
	profiles  *ProfileStore
}

// NewStorage initializes storage at the default XDG path
func NewStorage() (*Storage, error) {
	return NewStorageWithPath(DefaultDBPath())
}

// NewStorageWithPath initializes storage with a custom database path
func NewStorageWithPath(dbPath string) (*Storage, error) {
	db, err := Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return newStorage(db), nil
}

// NewStorageInMemory creates an in-memory storage (for testing)
func NewStorageInMemory() (*Storage, error) {
	db, err := OpenInMemory()
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}
	return newStorage(db), nil
}

func newStorage(db *DB) *Storage {
	return &Storage{
		db:        db,
		sessions:  NewSessionStore(db),
		messages:  NewMessageStore(db),
		knowledge: NewKnowledgeStore(db),
		profiles:  NewProfileStore(db),
	}
}

// Close closes the database connection
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Sessions returns the training session store
func (s *Storage) Sessions() *SessionStore { return s.sessions }

// Messages returns the transcript message store
func (s *Storage) Messages() *MessageStore { return s.messages }

// Knowledge returns the knowledge document store
func (s *Storage) Knowledge() *KnowledgeStore { return s.knowledge }

// Profiles returns the user profile store
func (s *Storage) Profiles() *ProfileStore { return s.profiles }
