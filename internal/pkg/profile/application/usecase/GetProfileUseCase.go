package usecase

import (
	"context"
	"fmt"

	profile "pairchat/internal/pkg/profile/application/domain"
	repository "pairchat/internal/pkg/profile/persistence/repository/port"
)

// GetProfileInput wraps the identifier of the profile to fetch.
type GetProfileInput struct {
	UserID string
}

// GetProfileUseCase loads a profile record; a nil result means the user never
// created one, which is not an error.
// One class per use case (own file)
type GetProfileUseCase struct {
	Repo repository.ProfileRepository
}

func NewGetProfileUseCase(repo repository.ProfileRepository) *GetProfileUseCase {
	return &GetProfileUseCase{Repo: repo}
}

func (uc *GetProfileUseCase) Execute(ctx context.Context, in GetProfileInput) (*profile.Profile, error) {
	if in.UserID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrValidation)
	}
	p, err := uc.Repo.GetProfile(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return p, nil
}
