package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/profeai/profeai-api/internal/domain"
)

// FeedbackStore defines the interface for feedback persistence.
type FeedbackStore interface {
	Create(ctx context.Context, feedback *domain.Feedback) error

	// ListByLesson returns feedback for a lesson, oldest first.
	ListByLesson(ctx context.Context, lessonID uuid.UUID) ([]*domain.Feedback, error)

	WithTx(tx *sql.Tx) FeedbackStore
}
