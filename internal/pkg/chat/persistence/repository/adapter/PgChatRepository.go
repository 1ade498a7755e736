package adapter

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	chat "pairchat/internal/pkg/chat/application/domain"
	repository "pairchat/internal/pkg/chat/persistence/repository/port"
)

type PgChatRepository struct {
	pool *pgxpool.Pool
}

func NewPgChatRepository(pool *pgxpool.Pool) *PgChatRepository {
	return &PgChatRepository{pool: pool}
}

// Ensure interface compliance at compile time
var _ repository.ChatRepository = (*PgChatRepository)(nil)

func (r *PgChatRepository) FindUserIDsByUsername(ctx context.Context, username string) ([]string, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx,
		"SELECT id FROM profiles WHERE username = $1",
		username,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *PgChatRepository) FindSessionByPair(ctx context.Context, userA, userB string) (*chat.Session, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	a, b := chat.CanonicalPair(userA, userB)
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, title, participant_a, participant_b, created_at, updated_at
		FROM chat_sessions
		WHERE participant_a = $1 AND participant_b = $2
	`, a, b)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	var s chat.Session
	if err := rows.Scan(&s.ID, &s.Title, &s.ParticipantA, &s.ParticipantB, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, rows.Err()
}

// InsertSession relies on the unique index over (participant_a, participant_b):
// a concurrent insert for the same pair makes ON CONFLICT skip the row, which
// surfaces here as inserted=false so the caller can re-read the winner.
func (r *PgChatRepository) InsertSession(ctx context.Context, s chat.Session) (bool, error) {
	if r == nil || r.pool == nil {
		return false, errors.New("PgChatRepository: nil pool")
	}
	ct, err := r.pool.Exec(ctx, `
		INSERT INTO chat_sessions (id, title, participant_a, participant_b, created_at, updated_at)
		VALUES ($1::uuid, $2, $3, $4, $5, $6)
		ON CONFLICT (participant_a, participant_b) DO NOTHING
	`, s.ID, s.Title, s.ParticipantA, s.ParticipantB, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() == 1, nil
}

func (r *PgChatRepository) ListSessionsWithPreview(ctx context.Context, userID string) ([]chat.SessionPreview, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	// The lateral join picks the single most recent message per session by
	// created_at; preview columns come back NULL for empty sessions.
	rows, err := r.pool.Query(ctx, `
		SELECT s.id::text, s.title, s.participant_a, s.participant_b, s.created_at, s.updated_at,
		       m.id::text, m.content, m.created_at
		FROM chat_sessions s
		LEFT JOIN LATERAL (
			SELECT id, content, created_at
			FROM messages
			WHERE session_id = s.id
			ORDER BY created_at DESC
			LIMIT 1
		) m ON TRUE
		WHERE $1 IN (s.participant_a, s.participant_b)
		ORDER BY s.updated_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []chat.SessionPreview
	for rows.Next() {
		var (
			p         chat.SessionPreview
			msgID     *string
			content   *string
			createdAt *time.Time
		)
		if err := rows.Scan(
			&p.Session.ID, &p.Session.Title, &p.Session.ParticipantA, &p.Session.ParticipantB,
			&p.Session.CreatedAt, &p.Session.UpdatedAt,
			&msgID, &content, &createdAt,
		); err != nil {
			return nil, err
		}
		if msgID != nil {
			p.Preview = &chat.Message{
				ID:        *msgID,
				SessionID: p.Session.ID,
				Content:   *content,
				CreatedAt: *createdAt,
			}
		}
		out = append(out, p)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}
