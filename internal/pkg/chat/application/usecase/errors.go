package usecase

import "fmt"

// Sentinel errors for the chat directory use cases. Controllers branch on
// these with errors.Is to pick an HTTP status.
var (
	// ErrPersistence indicates an infrastructure/repository failure inside a use case
	ErrPersistence = fmt.Errorf("chat use case persistence error")

	// ErrValidation indicates malformed caller input (empty username, self-chat)
	ErrValidation = fmt.Errorf("chat use case validation error")

	// ErrUserNotFound indicates the target username resolves to no profile
	ErrUserNotFound = fmt.Errorf("chat use case: user not found")

	// ErrAmbiguousUser indicates an integrity fault: several profiles share the
	// target username. Never silently pick one.
	ErrAmbiguousUser = fmt.Errorf("chat use case: ambiguous username")
)
