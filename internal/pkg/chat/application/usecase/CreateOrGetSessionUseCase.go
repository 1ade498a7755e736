package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	cache "pairchat/internal/infrastructure/cache/port"
	chat "pairchat/internal/pkg/chat/application/domain"
	repository "pairchat/internal/pkg/chat/persistence/repository/port"
	profile "pairchat/internal/pkg/profile/application/domain"
)

// usernameTTL bounds staleness of cached username lookups; profile upserts
// also invalidate the affected keys.
const usernameTTL = 5 * time.Minute

// CreateOrGetSessionInput carries the caller identity and the human-chosen
// handle of the user to open a session with.
type CreateOrGetSessionInput struct {
	CallerID       string
	TargetUsername string
}

// CreateOrGetSessionOutput reports the session plus whether this call created
// it. Created=false ("already exists") is a normal outcome, not an error.
type CreateOrGetSessionOutput struct {
	Session chat.Session
	Created bool
}

// CreateOrGetSessionUseCase resolves the target username and returns the
// existing session for the pair, or atomically creates one.
// Hexagonal: depends on repository and cache ports only.
// One class per use case (own file)
type CreateOrGetSessionUseCase struct {
	Repo  repository.ChatRepository
	Cache cache.Cache // optional; nil disables username lookup caching
}

func NewCreateOrGetSessionUseCase(repo repository.ChatRepository, c cache.Cache) *CreateOrGetSessionUseCase {
	return &CreateOrGetSessionUseCase{Repo: repo, Cache: c}
}

// Execute runs the find-or-create flow. Uniqueness of the unordered pair is
// enforced by the store's constraint, not by the lookup below: losing the
// insert race re-reads and returns the winner with Created=false.
func (uc *CreateOrGetSessionUseCase) Execute(ctx context.Context, in CreateOrGetSessionInput) (*CreateOrGetSessionOutput, error) {
	if in.CallerID == "" {
		return nil, fmt.Errorf("%w: caller id is required", ErrValidation)
	}
	username := strings.TrimSpace(in.TargetUsername)
	if username == "" {
		return nil, fmt.Errorf("%w: target username is required", ErrValidation)
	}

	targetID, err := uc.resolveTarget(ctx, username)
	if err != nil {
		return nil, err
	}
	if targetID == in.CallerID {
		return nil, fmt.Errorf("%w: cannot open a session with yourself", ErrValidation)
	}

	existing, err := uc.Repo.FindSessionByPair(ctx, in.CallerID, targetID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if existing != nil {
		return &CreateOrGetSessionOutput{Session: *existing, Created: false}, nil
	}

	s, err := chat.NewSession(in.CallerID, targetID, username, time.Now())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	s.ID = uuid.NewString()

	inserted, err := uc.Repo.InsertSession(ctx, *s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if inserted {
		return &CreateOrGetSessionOutput{Session: *s, Created: true}, nil
	}

	// Lost the race: a concurrent caller created the pair first. Return theirs.
	winner, err := uc.Repo.FindSessionByPair(ctx, in.CallerID, targetID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if winner == nil {
		return nil, fmt.Errorf("%w: session vanished after insert conflict", ErrPersistence)
	}
	return &CreateOrGetSessionOutput{Session: *winner, Created: false}, nil
}

// resolveTarget maps a username to exactly one profile id, consulting the
// cache first. Zero matches and multiple matches are distinct failures.
func (uc *CreateOrGetSessionUseCase) resolveTarget(ctx context.Context, username string) (string, error) {
	key := profile.CacheKeyByUsername(username)
	if uc.Cache != nil {
		if id, err := uc.Cache.Get(ctx, key); err == nil && id != "" {
			return id, nil
		}
	}

	ids, err := uc.Repo.FindUserIDsByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if len(ids) == 0 {
		return "", fmt.Errorf("%w: %q", ErrUserNotFound, username)
	}
	if len(ids) > 1 {
		return "", fmt.Errorf("%w: %q matches %d profiles", ErrAmbiguousUser, username, len(ids))
	}

	if uc.Cache != nil {
		// Best effort; a cold cache just means another lookup next time.
		_ = uc.Cache.Set(ctx, key, ids[0], usernameTTL)
	}
	return ids[0], nil
}
