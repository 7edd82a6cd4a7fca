package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound         = errors.New("resource not found")
	ErrSnapshotNotFound = fmt.Errorf("%w: snapshot", ErrNotFound)
	ErrColumnNotFound   = fmt.Errorf("%w: column", ErrNotFound)

	// Retrieval errors
	ErrRetrievalFailed = errors.New("inventory retrieval failed")
	ErrNoSource        = errors.New("no inventory source configured")

	// Data errors
	ErrDatasetNotLoaded = errors.New("dataset not loaded yet")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewRetrievalError(source string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrRetrievalFailed, source, err)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsRetrievalError(err error) bool {
	return errors.Is(err, ErrRetrievalFailed)
}
