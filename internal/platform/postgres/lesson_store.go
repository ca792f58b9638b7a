package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/profeai/profeai-api/internal/domain"
	"github.com/profeai/profeai-api/internal/lesson"
	"github.com/profeai/profeai-api/internal/platform/logger"
	"github.com/profeai/profeai-api/internal/store"
)

const lessonColumns = `id, user_id, title, content, lesson_type, difficulty, provenance, completed, completion_time, created_at`

// PostgresLessonStore implements store.LessonStore.
type PostgresLessonStore struct {
	db     store.DBTX
	logger *slog.Logger
}

var _ store.LessonStore = (*PostgresLessonStore)(nil)

// NewPostgresLessonStore creates a lesson store on db. It panics if db is nil.
func NewPostgresLessonStore(db store.DBTX, logger *slog.Logger) *PostgresLessonStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresLessonStore{
		db:     db,
		logger: logger.With(slog.String("component", "lesson_store")),
	}
}

// WithTx returns a store bound to tx.
func (s *PostgresLessonStore) WithTx(tx *sql.Tx) store.LessonStore {
	return &PostgresLessonStore{db: tx, logger: s.logger}
}

// Create inserts lesson. An unknown user yields store.ErrInvalidEntity.
func (s *PostgresLessonStore) Create(ctx context.Context, l *domain.Lesson) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := l.Validate(); err != nil {
		log.Warn("lesson validation failed before create", slog.String("error", err.Error()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO lessons (`+lessonColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		l.ID, l.UserID, l.Title, l.Content, string(l.LessonType), string(l.Difficulty),
		string(l.Provenance), l.Completed, l.CompletionTime, l.CreatedAt,
	)
	if err != nil {
		log.Error("failed to insert lesson",
			slog.String("lesson_id", l.ID.String()),
			slog.String("user_id", l.UserID.String()),
			slog.String("error", err.Error()))
		return MapError(err)
	}

	log.Debug("lesson created",
		slog.String("lesson_id", l.ID.String()),
		slog.String("provenance", string(l.Provenance)))
	return nil
}

// GetByID returns store.ErrLessonNotFound when no row matches.
func (s *PostgresLessonStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Lesson, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+lessonColumns+` FROM lessons WHERE id = $1`, id)
	l, err := scanLesson(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrLessonNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get lesson",
			slog.String("lesson_id", id.String()),
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	return l, nil
}

// ListByUser returns the user's lessons, newest first.
func (s *PostgresLessonStore) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE user_id = $1 ORDER BY created_at DESC, id`
	args := []interface{}{userID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list lessons",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	lessons := make([]*domain.Lesson, 0)
	for rows.Next() {
		l, err := scanLesson(rows)
		if err != nil {
			return nil, MapError(err)
		}
		lessons = append(lessons, l)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return lessons, nil
}

// MarkCompleted flips the completion flag only when it is still false, so
// two concurrent completions produce one transition.
func (s *PostgresLessonStore) MarkCompleted(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(slog.String("lesson_id", id.String()))

	result, err := s.db.ExecContext(ctx, `
		UPDATE lessons
		SET completed = TRUE, completion_time = $2
		WHERE id = $1 AND NOT completed`,
		id, at.UTC(),
	)
	if err != nil {
		log.Error("failed to mark lesson completed", slog.String("error", err.Error()))
		return false, MapError(err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n > 0 {
		return true, nil
	}

	var exists bool
	err = s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM lessons WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, MapError(err)
	}
	if !exists {
		return false, store.ErrLessonNotFound
	}
	log.Debug("lesson already completed")
	return false, nil
}

// CountByType counts one user's lessons of lessonType.
func (s *PostgresLessonStore) CountByType(ctx context.Context, userID uuid.UUID, lessonType domain.Specialization) (store.LessonCounts, error) {
	var counts store.LessonCounts
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE completed)
		FROM lessons
		WHERE user_id = $1 AND lesson_type = $2`,
		userID, string(lessonType),
	).Scan(&counts.Total, &counts.Completed)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to count lessons",
			slog.String("user_id", userID.String()),
			slog.String("lesson_type", string(lessonType)),
			slog.String("error", err.Error()))
		return store.LessonCounts{}, MapError(err)
	}
	return counts, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLesson(row rowScanner) (*domain.Lesson, error) {
	var (
		l              domain.Lesson
		lessonType     string
		difficulty     string
		provenance     string
		completionTime sql.NullTime
	)
	err := row.Scan(
		&l.ID, &l.UserID, &l.Title, &l.Content, &lessonType, &difficulty,
		&provenance, &l.Completed, &completionTime, &l.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	l.LessonType = domain.Specialization(lessonType)
	l.Difficulty = domain.Level(difficulty)
	l.Provenance = lesson.Provenance(provenance)
	if completionTime.Valid {
		t := completionTime.Time
		l.CompletionTime = &t
	}
	return &l, nil
}
