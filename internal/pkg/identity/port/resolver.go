package port

import (
	"context"
	"errors"
)

// ErrNotAuthenticated signals that the presented token maps to no active
// session with the identity provider.
var ErrNotAuthenticated = errors.New("identity: not authenticated")

// Resolver maps an opaque caller token to a stable user identifier. Token
// issuance and validation belong to the external identity provider; this is
// the only contract the rest of the app sees.
//
// Resolve is side-effect free and safe to call repeatedly for the same token.
type Resolver interface {
	Resolve(ctx context.Context, token string) (userID string, err error)
}
