package chat

import "time"

// Message is an immutable log entry within a session. The directory only ever
// reads the most recent one per session as a listing preview; writing messages
// belongs to the delivery service.
type Message struct {
	ID        string    `db:"id"`
	SessionID string    `db:"session_id"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
}

// SessionPreview pairs a session with its most recent message by CreatedAt.
// Preview is nil for a session that has no messages yet.
type SessionPreview struct {
	Session Session
	Preview *Message
}
