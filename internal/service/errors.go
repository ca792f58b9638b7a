package service

import (
	"errors"
	"fmt"
)

// ErrMissingDependency is returned by constructors given a nil collaborator.
var ErrMissingDependency = errors.New("missing dependency")

// LearningServiceError is an unexpected failure in a service operation. It
// wraps the cause, so sentinel checks with errors.Is still work through it.
type LearningServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for LearningServiceError.
func (e *LearningServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("learning service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("learning service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *LearningServiceError) Unwrap() error {
	return e.Err
}

// NewLearningServiceError creates a LearningServiceError.
func NewLearningServiceError(operation, message string, err error) *LearningServiceError {
	return &LearningServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
