package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/miniforum/internal/store"
)

// fromStoreError translates storage failures into domain errors. Anything
// not recognised is reported as [ErrStoreUnavailable] with the cause kept for
// logging.
func fromStoreError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNoUserWasFound):
		return ErrUserNotFound
	case errors.Is(err, store.ErrLoginAlreadyExists):
		return ErrDuplicateUser
	case errors.Is(err, store.ErrPostNotFound):
		return ErrPostNotFound
	case errors.Is(err, store.ErrSessionNotFound):
		return ErrUnauthenticated
	default:
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
}
