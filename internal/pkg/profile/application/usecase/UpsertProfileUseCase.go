package usecase

import (
	"context"
	"fmt"
	"strings"

	cache "pairchat/internal/infrastructure/cache/port"
	profile "pairchat/internal/pkg/profile/application/domain"
	repository "pairchat/internal/pkg/profile/persistence/repository/port"
)

// UpsertProfileInput carries a partial profile mutation for the owning user.
// Nil fields are left unchanged in the stored record.
type UpsertProfileInput struct {
	UserID    string
	Username  *string
	AvatarURL *string
}

// UpsertProfileUseCase creates or partially updates the caller's profile and
// keeps the username lookup cache coherent.
// Hexagonal: depends on repository and cache ports only.
type UpsertProfileUseCase struct {
	Repo  repository.ProfileRepository
	Cache cache.Cache // optional
}

func NewUpsertProfileUseCase(repo repository.ProfileRepository, c cache.Cache) *UpsertProfileUseCase {
	return &UpsertProfileUseCase{Repo: repo, Cache: c}
}

func (uc *UpsertProfileUseCase) Execute(ctx context.Context, in UpsertProfileInput) (*profile.Profile, error) {
	if in.UserID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrValidation)
	}

	u := profile.Update{AvatarURL: in.AvatarURL}
	if in.Username != nil {
		trimmed := strings.TrimSpace(*in.Username)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: username must not be blank", ErrValidation)
		}
		u.Username = &trimmed
	}

	// The previous username is needed to drop its stale lookup entry.
	var previous *string
	if uc.Cache != nil && u.Username != nil {
		before, err := uc.Repo.GetProfile(ctx, in.UserID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		if before != nil {
			previous = before.Username
		}
	}

	p, err := uc.Repo.UpsertProfile(ctx, in.UserID, u)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if uc.Cache != nil && u.Username != nil {
		keys := []string{profile.CacheKeyByUsername(*u.Username)}
		if previous != nil && *previous != *u.Username {
			keys = append(keys, profile.CacheKeyByUsername(*previous))
		}
		// Best effort; entries also expire on their own TTL.
		_, _ = uc.Cache.Del(ctx, keys...)
	}
	return p, nil
}
