package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/profeai/profeai-api/internal/domain"
)

// LessonCounts is the number of lessons of one type a user has and how many
// of them are completed.
type LessonCounts struct {
	Total     int
	Completed int
}

// LessonStore defines the interface for lesson data persistence.
type LessonStore interface {
	Create(ctx context.Context, lesson *domain.Lesson) error

	// GetByID returns ErrLessonNotFound if the lesson does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Lesson, error)

	// ListByUser returns the user's lessons, newest first. A limit of zero or
	// less returns all of them.
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Lesson, error)

	// MarkCompleted sets the completion flag and time unless the lesson is
	// already completed. It reports whether this call completed the lesson and
	// returns ErrLessonNotFound if the lesson does not exist.
	MarkCompleted(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)

	// CountByType returns lesson counts for one user and lesson type.
	CountByType(ctx context.Context, userID uuid.UUID, lessonType domain.Specialization) (LessonCounts, error)

	WithTx(tx *sql.Tx) LessonStore
}
