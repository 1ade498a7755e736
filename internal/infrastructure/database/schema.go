package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema holds the idempotent DDL for the directory's three collections. The
// unique index over the canonicalized pair is what makes find-or-create safe
// under concurrent callers; the CHECK pins the canonical order itself.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS profiles (
		id         text PRIMARY KEY,
		username   text UNIQUE,
		avatar_url text
	)`,
	`CREATE TABLE IF NOT EXISTS chat_sessions (
		id            uuid PRIMARY KEY,
		title         text NOT NULL,
		participant_a text NOT NULL,
		participant_b text NOT NULL,
		created_at    timestamptz NOT NULL,
		updated_at    timestamptz NOT NULL,
		CHECK (participant_a < participant_b),
		UNIQUE (participant_a, participant_b)
	)`,
	`CREATE TABLE IF NOT EXISTS messages (
		id         uuid PRIMARY KEY,
		session_id uuid NOT NULL REFERENCES chat_sessions(id),
		content    text NOT NULL,
		created_at timestamptz NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_messages_session_created
		ON messages (session_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_chat_sessions_participant_b
		ON chat_sessions (participant_b)`,
}

// EnsureSchema applies the DDL above. Statements are IF NOT EXISTS so running
// at every startup is safe.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("postgres: ensure schema: %w", err)
		}
	}
	return nil
}
