package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrStorage indicates the persistence layer failed.
	// Matched by every StorageError.
	ErrStorage = errors.New("storage failure")

	// ErrStorageUnavailable indicates the store could not be initialised
	// and the application is running without persistence.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// StorageError wraps an I/O or driver failure during a store operation.
// The in-memory state is not rolled back; the persisted state is unknown.
type StorageError struct {
	// Op names the failed operation (e.g., "save inspection").
	Op string

	// Err is the underlying failure.
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is makes every StorageError match ErrStorage.
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

// UserMessage converts an error into a message suitable for display.
func UserMessage(err error) string {
	var se *StorageError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "Inspection not found."
	case errors.Is(err, ErrStorageUnavailable):
		return "Storage is unavailable; changes cannot be saved."
	case errors.As(err, &se):
		return fmt.Sprintf("Could not %s. Please try again.", se.Op)
	case errors.Is(err, ErrInvalidInput):
		return "Some required information is missing."
	default:
		return "Unexpected error: " + err.Error()
	}
}
