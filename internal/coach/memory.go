// ABOUTME: MemoryBank flattens past session transcripts into few-shot context
// ABOUTME: Collects completed-session exchanges for one user/avatar pair

package coach

import (
	"fmt"

	"github.com/brezcode/coach/internal/models"
	"github.com/brezcode/coach/internal/storage/sqlite"
)

// DefaultMemorySessions is how many recent completed sessions the bank
// draws from when no limit is configured.
const DefaultMemorySessions = 5

// Exchange is one customer question paired with the avatar's answer,
// drawn from a past session.
type Exchange struct {
	SessionID string
	Customer  string
	Avatar    string
}

// MemoryBank retrieves prior coaching exchanges for reuse as context.
type MemoryBank struct {
	storage     *sqlite.Storage
	maxSessions int
}

// NewMemoryBank creates a memory bank over the given storage.
func NewMemoryBank(store *sqlite.Storage, maxSessions int) *MemoryBank {
	if maxSessions <= 0 {
		maxSessions = DefaultMemorySessions
	}
	return &MemoryBank{storage: store, maxSessions: maxSessions}
}

// Recall returns the flattened exchanges from the user's most recent
// completed sessions with the given avatar, oldest session first.
func (mb *MemoryBank) Recall(userID, avatarID string) ([]Exchange, error) {
	sessions, err := mb.storage.Sessions().ListCompletedByUserAvatar(userID, avatarID, mb.maxSessions)
	if err != nil {
		return nil, fmt.Errorf("listing completed sessions: %w", err)
	}

	var exchanges []Exchange
	// ListCompletedByUserAvatar returns newest first; walk backwards so
	// older exchanges come first in the prompt.
	for i := len(sessions) - 1; i >= 0; i-- {
		sess := sessions[i]
		messages, err := mb.storage.Messages().GetBySession(sess.SessionID)
		if err != nil {
			return nil, fmt.Errorf("loading transcript for %s: %w", sess.SessionID, err)
		}
		exchanges = append(exchanges, pairExchanges(sess.SessionID, messages)...)
	}

	return exchanges, nil
}

// pairExchanges walks a transcript in sequence order and pairs each
// customer message with the avatar response that follows it. When a
// revision exists, the improved response is preferred.
func pairExchanges(sessionID string, messages []*models.TrainingMessage) []Exchange {
	var exchanges []Exchange
	var pendingCustomer string

	for _, msg := range messages {
		switch msg.Role {
		case models.RoleCustomer:
			pendingCustomer = msg.Content
		case models.RoleAvatar:
			if pendingCustomer == "" {
				continue
			}
			answer := msg.Content
			if msg.ImprovedResponse != "" {
				answer = msg.ImprovedResponse
			}
			exchanges = append(exchanges, Exchange{
				SessionID: sessionID,
				Customer:  pendingCustomer,
				Avatar:    answer,
			})
			pendingCustomer = ""
		}
	}

	return exchanges
}
