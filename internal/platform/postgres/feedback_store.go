package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/profeai/profeai-api/internal/domain"
	"github.com/profeai/profeai-api/internal/platform/logger"
	"github.com/profeai/profeai-api/internal/store"
)

// PostgresFeedbackStore implements store.FeedbackStore.
type PostgresFeedbackStore struct {
	db     store.DBTX
	logger *slog.Logger
}

var _ store.FeedbackStore = (*PostgresFeedbackStore)(nil)

// NewPostgresFeedbackStore creates a feedback store on db. It panics if db is nil.
func NewPostgresFeedbackStore(db store.DBTX, logger *slog.Logger) *PostgresFeedbackStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresFeedbackStore{
		db:     db,
		logger: logger.With(slog.String("component", "feedback_store")),
	}
}

// WithTx returns a store bound to tx.
func (s *PostgresFeedbackStore) WithTx(tx *sql.Tx) store.FeedbackStore {
	return &PostgresFeedbackStore{db: tx, logger: s.logger}
}

// Create inserts feedback.
func (s *PostgresFeedbackStore) Create(ctx context.Context, f *domain.Feedback) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := f.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO feedback (id, user_id, lesson_id, feedback_type, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		f.ID, f.UserID, f.LessonID, string(f.FeedbackType), f.CreatedAt,
	)
	if err != nil {
		log.Error("failed to insert feedback",
			slog.String("lesson_id", f.LessonID.String()),
			slog.String("error", err.Error()))
		return MapError(err)
	}
	return nil
}

// ListByLesson returns a lesson's feedback, oldest first.
func (s *PostgresFeedbackStore) ListByLesson(ctx context.Context, lessonID uuid.UUID) ([]*domain.Feedback, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, lesson_id, feedback_type, created_at
		FROM feedback
		WHERE lesson_id = $1
		ORDER BY created_at, id`,
		lessonID,
	)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list feedback",
			slog.String("lesson_id", lessonID.String()),
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]*domain.Feedback, 0)
	for rows.Next() {
		var (
			f            domain.Feedback
			feedbackType string
		)
		if err := rows.Scan(&f.ID, &f.UserID, &f.LessonID, &feedbackType, &f.CreatedAt); err != nil {
			return nil, MapError(err)
		}
		f.FeedbackType = domain.FeedbackType(feedbackType)
		out = append(out, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return out, nil
}
