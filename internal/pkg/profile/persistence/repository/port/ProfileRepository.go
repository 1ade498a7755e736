package repository

import (
	"context"

	profile "pairchat/internal/pkg/profile/application/domain"
)

// ProfileRepository defines persistence operations for profile records.
type ProfileRepository interface {
	// GetProfile returns the profile for id, or nil when none was ever created.
	GetProfile(ctx context.Context, id string) (*profile.Profile, error)

	// UpsertProfile creates the profile if absent, otherwise applies only the
	// non-nil fields of u. The whole operation happens in one statement so
	// repeated identical calls converge on the same row.
	UpsertProfile(ctx context.Context, id string, u profile.Update) (*profile.Profile, error)
}
