package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a referenced identifier is absent from its store.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateID is returned when an item or order identifier is already taken.
	ErrDuplicateID = errors.New("duplicate identifier")
	// ErrDuplicateCategory is returned when a category with the exact same name exists.
	ErrDuplicateCategory = errors.New("category already exists")
	// ErrCategoryInUse blocks removing a category that menu items still reference.
	ErrCategoryInUse = errors.New("category is still used by menu items")
	// ErrPersistence marks a failed write; the in-memory change has already been applied.
	ErrPersistence = errors.New("persistence failure")
)

// validationError communicates malformed input back to the console.
type validationError struct {
	message string
}

func (e validationError) Error() string { return e.message }

// NewValidationError builds an InvalidInput error with the given message.
func NewValidationError(format string, args ...any) error {
	return validationError{message: fmt.Sprintf(format, args...)}
}

// IsValidation helps callers distinguish bad input from store failures.
func IsValidation(err error) bool {
	var v validationError
	return errors.As(err, &v)
}

// PersistenceError wraps a save failure for the named store.
func PersistenceError(store string, err error) error {
	return fmt.Errorf("%w: save %s: %w", ErrPersistence, store, err)
}
