package types

import (
	"errors"
	"fmt"
)

// Error classes. Every error returned by a Table or the wishlist Store
// matches at most one of these with errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("entity not found")
	ErrStorage    = errors.New("storage failure")
)

// Validation errors.
var (
	ErrInvalidName   = fmt.Errorf("%w: category name must not be empty", ErrValidation)
	ErrInvalidTitle  = fmt.Errorf("%w: item title must not be empty", ErrValidation)
	ErrInvalidLink   = fmt.Errorf("%w: link must be an http, https or ftp URL", ErrValidation)
	ErrInvalidID     = fmt.Errorf("%w: invalid entity ID", ErrValidation)
	ErrInvalidData   = fmt.Errorf("%w: invalid entity data", ErrValidation)
	ErrInvalidFilter = fmt.Errorf("%w: invalid filter value type", ErrValidation)
)

// StorageError reports a failure of the underlying database. The write it
// belongs to has been rolled back.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Is reports ErrStorage so callers can test the class without a type switch.
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

// NewStorageError wraps err as a StorageError for op. A nil err yields nil.
func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}
