package models

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by every layer. Wrap with fmt.Errorf("...: %w") and
// test with errors.Is.
var (
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("not found")
	ErrCollaborator = errors.New("collaborator error")
	ErrPersistence  = errors.New("persistence error")
)

// Validationf builds an ErrValidation with a caller-facing message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFoundf builds an ErrNotFound with a caller-facing message.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// CollaboratorError marks err as a failed Classifier/Generator call.
func CollaboratorError(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrCollaborator, op, err)
}

// PersistenceError marks err as an unreadable or unwritable resource.
func PersistenceError(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
}
