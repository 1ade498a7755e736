package task

import (
	"context"
	"encoding/json"
	"log"
	"time"

	cache "pairchat/internal/infrastructure/cache/port"
	qport "pairchat/internal/infrastructure/queue/port"
	chat "pairchat/internal/pkg/chat/application/domain"
	"pairchat/internal/pkg/chat/application/usecase"
)

// SessionCreatedTaskType is the queue task name emitted after a new session row exists.
const SessionCreatedTaskType = "chat:session_created"

// SessionCreatedTaskPayload is the JSON payload transported via the queue.
// Kept decoupled from domain types to avoid tight coupling with JSON tags.
type SessionCreatedTaskPayload struct {
	SessionID      string   `json:"sessionId"`
	Title          string   `json:"title"`
	ParticipantIDs []string `json:"participantIds"`
}

// NewSessionCreatedTask builds the queue task for a freshly created session.
func NewSessionCreatedTask(s chat.Session) (qport.Task, error) {
	payload, err := json.Marshal(SessionCreatedTaskPayload{
		SessionID:      s.ID,
		Title:          s.Title,
		ParticipantIDs: []string{s.ParticipantA, s.ParticipantB},
	})
	if err != nil {
		return qport.Task{}, err
	}
	return qport.Task{Type: SessionCreatedTaskType, Payload: payload}, nil
}

// RegisterSessionCreatedTask binds the task handler to the provided server.
// The handler drops both participants' cached listings so the new session
// shows up on their next fetch, and leaves an audit line in the worker log.
func RegisterSessionCreatedTask(srv qport.Server, c cache.Cache) {
	srv.Register(SessionCreatedTaskType, func(ctx context.Context, t qport.Task) error {
		var p SessionCreatedTaskPayload
		if err := json.Unmarshal(t.Payload, &p); err != nil {
			// malformed payload: do not retry indefinitely
			return err
		}

		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		keys := make([]string, 0, len(p.ParticipantIDs))
		for _, id := range p.ParticipantIDs {
			if id == "" {
				continue
			}
			keys = append(keys, usecase.ListCacheKey(id))
		}
		if c != nil && len(keys) > 0 {
			if _, err := c.Del(ctx, keys...); err != nil {
				// Returning the error lets the queue retry per adapter policy.
				return err
			}
		}

		log.Printf("chat: session %s created for %v", p.SessionID, p.ParticipantIDs)
		return nil
	})
}
