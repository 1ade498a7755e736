package usecase

import "fmt"

var (
	// ErrPersistence indicates an infrastructure/repository failure inside a use case
	ErrPersistence = fmt.Errorf("profile use case persistence error")

	// ErrValidation indicates malformed caller input (blank username)
	ErrValidation = fmt.Errorf("profile use case validation error")
)
