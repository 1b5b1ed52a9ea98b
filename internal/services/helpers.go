package services

import (
	"errors"
	"fmt"

	"careers-api/internal/storage"
)

// mapRepoError translates storage-layer sentinel errors into their
// service-layer equivalents, wrapping everything else with context.
func mapRepoError(err error, context string) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, storage.ErrDuplicateEmail), errors.Is(err, storage.ErrConflict):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	default:
		return fmt.Errorf("internal error %s: %w", context, err)
	}
}
