package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/profeai/profeai-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user. Returns ErrEmailExists if the email is taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail returns ErrUserNotFound if no user has the email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update saves the profile fields (name, specialization, level).
	// Counters are only changed through IncrementLessonCounts.
	Update(ctx context.Context, user *domain.User) error

	// IncrementLessonCounts atomically adds the deltas to the user's total and
	// completed lesson counters.
	IncrementLessonCounts(ctx context.Context, id uuid.UUID, totalDelta, completedDelta int) error

	// WithTx returns a UserStore that runs its statements in tx.
	WithTx(tx *sql.Tx) UserStore
}
