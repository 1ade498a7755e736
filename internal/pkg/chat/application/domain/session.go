package chat

import (
	"errors"
	"fmt"
	"time"
)

// Domain-level errors for the session directory
var (
	ErrSameParticipant = errors.New("chat: a session requires two distinct participants")
	ErrMissingUser     = errors.New("chat: both participant ids are required")
	ErrNotParticipant  = errors.New("chat: user is not a participant in the session")
)

// Session represents a durable 1:1 thread between exactly two users.
// Participants are stored canonicalized (A < B lexicographically) so that the
// unordered pair maps to exactly one row; the store enforces uniqueness on
// (participant_a, participant_b).
type Session struct {
	ID           string    `db:"id"`
	Title        string    `db:"title"`
	ParticipantA string    `db:"participant_a"`
	ParticipantB string    `db:"participant_b"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// NewSession builds a session for the unordered pair {callerID, targetID}.
// The pair is canonicalized before storage; CreatedAt/UpdatedAt start equal.
func NewSession(callerID, targetID, targetUsername string, now time.Time) (*Session, error) {
	if callerID == "" || targetID == "" {
		return nil, ErrMissingUser
	}
	if callerID == targetID {
		return nil, ErrSameParticipant
	}
	a, b := CanonicalPair(callerID, targetID)
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()
	return &Session{
		Title:        fmt.Sprintf("Chat with %s", targetUsername),
		ParticipantA: a,
		ParticipantB: b,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// CanonicalPair orders two user ids so the unordered pair has a single
// representation. Both directions of a lookup must go through this.
func CanonicalPair(x, y string) (string, string) {
	if x > y {
		return y, x
	}
	return x, y
}

// HasParticipant tells whether userID belongs to this session.
func (s *Session) HasParticipant(userID string) bool {
	if s == nil || userID == "" {
		return false
	}
	return s.ParticipantA == userID || s.ParticipantB == userID
}

// Peer returns the other participant's id, or an error when userID is not a member.
func (s *Session) Peer(userID string) (string, error) {
	switch {
	case s == nil || !s.HasParticipant(userID):
		return "", ErrNotParticipant
	case s.ParticipantA == userID:
		return s.ParticipantB, nil
	default:
		return s.ParticipantA, nil
	}
}
