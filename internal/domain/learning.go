package domain

import "github.com/profeai/profeai-api/internal/lesson"

// Specialization is the learning track a user follows.
type Specialization string

// Supported specializations.
const (
	SpecializationTheory  Specialization = lesson.SpecializationTheory
	SpecializationTooling Specialization = lesson.SpecializationTooling
	SpecializationHybrid  Specialization = lesson.SpecializationHybrid
)

// Valid reports whether s is a supported specialization.
func (s Specialization) Valid() bool {
	switch s {
	case SpecializationTheory, SpecializationTooling, SpecializationHybrid:
		return true
	default:
		return false
	}
}

// Level is a user's declared skill level.
type Level string

// Supported levels.
const (
	LevelBeginner     Level = lesson.LevelBeginner
	LevelIntermediate Level = lesson.LevelIntermediate
	LevelAdvanced     Level = lesson.LevelAdvanced
)

// Valid reports whether l is a supported level.
func (l Level) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	default:
		return false
	}
}

// FeedbackType is a learner's reaction to a lesson.
type FeedbackType string

// Supported feedback types.
const (
	FeedbackConfused   FeedbackType = "confused"
	FeedbackFrustrated FeedbackType = "frustrated"
	FeedbackClear      FeedbackType = "clear"
	FeedbackHelpful    FeedbackType = "helpful"
)

// Valid reports whether f is a supported feedback type.
func (f FeedbackType) Valid() bool {
	switch f {
	case FeedbackConfused, FeedbackFrustrated, FeedbackClear, FeedbackHelpful:
		return true
	default:
		return false
	}
}

// NeedsAlternative reports whether the feedback asks for the lesson to be
// explained again differently.
func (f FeedbackType) NeedsAlternative() bool {
	return f == FeedbackConfused || f == FeedbackFrustrated
}
