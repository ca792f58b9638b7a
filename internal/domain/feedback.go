package domain

import (
	"time"

	"github.com/google/uuid"
)

// Feedback is a learner's reaction to a lesson.
type Feedback struct {
	ID           uuid.UUID    `json:"id"`
	UserID       uuid.UUID    `json:"user_id"`
	LessonID     uuid.UUID    `json:"lesson_id"`
	FeedbackType FeedbackType `json:"feedback_type"`
	CreatedAt    time.Time    `json:"created_at"`
}

// NewFeedback creates a validated Feedback.
func NewFeedback(userID, lessonID uuid.UUID, feedbackType FeedbackType) (*Feedback, error) {
	f := &Feedback{
		ID:           uuid.New(),
		UserID:       userID,
		LessonID:     lessonID,
		FeedbackType: feedbackType,
		CreatedAt:    time.Now().UTC(),
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}

	return f, nil
}

// Validate checks if the Feedback has valid data.
func (f *Feedback) Validate() error {
	if f.ID == uuid.Nil {
		return ErrEmptyFeedbackID
	}
	if f.UserID == uuid.Nil {
		return ErrEmptyUserID
	}
	if f.LessonID == uuid.Nil {
		return ErrEmptyLessonID
	}
	if !f.FeedbackType.Valid() {
		return ErrInvalidFeedbackType
	}
	return nil
}
