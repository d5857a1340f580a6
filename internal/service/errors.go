package service

import (
	"errors"
	"fmt"
)

// Domain error kinds. Handlers match these with errors.Is and decide
// status codes; the service layer never logs or suppresses them.
var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidState       = errors.New("invalid state")
	ErrConflict           = errors.New("conflict")
	ErrUnavailable        = errors.New("storage unavailable")
)

// unavailable wraps a store-layer failure so callers see ErrUnavailable
// instead of a raw driver error.
func unavailable(err error) error {
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
