package adapter

import (
	"context"
	"errors"

	cache "pairchat/internal/infrastructure/cache/port"
	port "pairchat/internal/pkg/identity/port"
)

// sessionKeyPrefix matches where the identity provider writes its active
// sessions: auth:session:<token> -> user id.
const sessionKeyPrefix = "auth:session:"

// SessionResolver resolves caller tokens against the identity provider's
// session records in the shared cache backend.
type SessionResolver struct {
	cache cache.Cache
}

func NewSessionResolver(c cache.Cache) *SessionResolver {
	return &SessionResolver{cache: c}
}

// Ensure interface compliance at compile time
var _ port.Resolver = (*SessionResolver)(nil)

// Resolve returns the user id for token. A missing or expired session is
// ErrNotAuthenticated; transport failures pass through so callers can tell
// "no session" from "could not check".
func (r *SessionResolver) Resolve(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", port.ErrNotAuthenticated
	}
	id, err := r.cache.Get(ctx, sessionKeyPrefix+token)
	if errors.Is(err, cache.ErrMiss) {
		return "", port.ErrNotAuthenticated
	}
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", port.ErrNotAuthenticated
	}
	return id, nil
}
