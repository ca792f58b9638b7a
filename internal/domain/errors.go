package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// Specific errors below wrap it, so errors.Is(err, ErrValidation) holds
	// for every validation failure.
	ErrValidation = errors.New("validation failed")

	ErrEmptyUserID            = fmt.Errorf("%w: user ID cannot be empty", ErrValidation)
	ErrEmptyUserName          = fmt.Errorf("%w: name cannot be empty", ErrValidation)
	ErrEmptyEmail             = fmt.Errorf("%w: email cannot be empty", ErrValidation)
	ErrInvalidEmail           = fmt.Errorf("%w: invalid email format", ErrValidation)
	ErrInvalidSpecialization  = fmt.Errorf("%w: invalid specialization", ErrValidation)
	ErrInvalidLevel           = fmt.Errorf("%w: invalid level", ErrValidation)
	ErrInvalidLessonCounts    = fmt.Errorf("%w: invalid lesson counters", ErrValidation)
	ErrEmptyLessonID          = fmt.Errorf("%w: lesson ID cannot be empty", ErrValidation)
	ErrEmptyLessonTitle       = fmt.Errorf("%w: lesson title cannot be empty", ErrValidation)
	ErrEmptyLessonContent     = fmt.Errorf("%w: lesson content cannot be empty", ErrValidation)
	ErrInvalidProvenance      = fmt.Errorf("%w: invalid provenance", ErrValidation)
	ErrInvalidCompletionState = fmt.Errorf("%w: completion time does not match completed flag", ErrValidation)
	ErrEmptyFeedbackID        = fmt.Errorf("%w: feedback ID cannot be empty", ErrValidation)
	ErrInvalidFeedbackType    = fmt.Errorf("%w: invalid feedback type", ErrValidation)
	ErrEmptyTopic             = fmt.Errorf("%w: topic cannot be empty", ErrValidation)
	ErrInvalidPercentage      = fmt.Errorf("%w: percentage must be between 0 and 100", ErrValidation)
)
