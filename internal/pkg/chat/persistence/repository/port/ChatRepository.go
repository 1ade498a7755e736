package repository

import (
	"context"

	chat "pairchat/internal/pkg/chat/application/domain"
)

// ChatRepository defines persistence operations for the session directory.
// Implementations must enforce pair uniqueness at the store level (see
// InsertSession); the application layer never relies on check-then-act alone.
type ChatRepository interface {
	// FindUserIDsByUsername returns every profile id whose username matches
	// exactly. More than one result is a data-integrity fault the caller must
	// surface, never resolve silently.
	FindUserIDsByUsername(ctx context.Context, username string) ([]string, error)

	// FindSessionByPair returns the session for the unordered pair {userA, userB},
	// or nil when none exists. Callers may pass the ids in either order.
	FindSessionByPair(ctx context.Context, userA, userB string) (*chat.Session, error)

	// InsertSession persists s under the canonical-pair uniqueness constraint.
	// It reports inserted=false (with no error) when a session for the same
	// pair already exists, i.e. this call lost a creation race.
	InsertSession(ctx context.Context, s chat.Session) (inserted bool, err error)

	// ListSessionsWithPreview returns every session containing userID, ordered
	// by UpdatedAt descending, each with its most recent message by CreatedAt
	// (nil when the session has no messages).
	ListSessionsWithPreview(ctx context.Context, userID string) ([]chat.SessionPreview, error)
}
