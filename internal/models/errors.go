package models

import (
	"errors"
)

// Validation errors raised locally before any request is sent
var (
	// ErrInvalidStatus is returned when a task status is not one of the fixed values
	ErrInvalidStatus = errors.New("invalid task status")

	// ErrProjectNotFound is returned when a project ID is not in the listed projects
	ErrProjectNotFound = errors.New("project not found")

	// ErrTaskNotFound is returned when a task ID is not in the project's task list
	ErrTaskNotFound = errors.New("task not found")
)

// ValidationError is a local form validation failure. Message is shown
// to the user verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Invalid returns a ValidationError with the given message
func Invalid(message string) error {
	return &ValidationError{Message: message}
}
