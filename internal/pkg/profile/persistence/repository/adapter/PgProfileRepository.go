package adapter

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	profile "pairchat/internal/pkg/profile/application/domain"
	repository "pairchat/internal/pkg/profile/persistence/repository/port"
)

type PgProfileRepository struct {
	pool *pgxpool.Pool
}

func NewPgProfileRepository(pool *pgxpool.Pool) *PgProfileRepository {
	return &PgProfileRepository{pool: pool}
}

// Ensure interface compliance at compile time
var _ repository.ProfileRepository = (*PgProfileRepository)(nil)

func (r *PgProfileRepository) GetProfile(ctx context.Context, id string) (*profile.Profile, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgProfileRepository: nil pool")
	}
	var p profile.Profile
	err := r.pool.QueryRow(ctx,
		"SELECT id, username, avatar_url FROM profiles WHERE id = $1",
		id,
	).Scan(&p.ID, &p.Username, &p.AvatarURL)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpsertProfile merges in one statement: COALESCE keeps the stored value for
// any field the caller left nil, which makes partial updates and repeats safe.
func (r *PgProfileRepository) UpsertProfile(ctx context.Context, id string, u profile.Update) (*profile.Profile, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgProfileRepository: nil pool")
	}
	var p profile.Profile
	err := r.pool.QueryRow(ctx, `
		INSERT INTO profiles (id, username, avatar_url)
		VALUES ($1, $2, $3)
		ON CONFLICT (id)
		DO UPDATE SET username   = COALESCE(EXCLUDED.username, profiles.username),
		              avatar_url = COALESCE(EXCLUDED.avatar_url, profiles.avatar_url)
		RETURNING id, username, avatar_url
	`, id, u.Username, u.AvatarURL).Scan(&p.ID, &p.Username, &p.AvatarURL)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
