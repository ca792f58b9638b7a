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
	"github.com/profeai/profeai-api/internal/platform/logger"
	"github.com/profeai/profeai-api/internal/store"
)

const userColumns = `id, name, email, specialization, level, total_lessons, completed_lessons, created_at, updated_at`

// PostgresUserStore implements store.UserStore.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

var _ store.UserStore = (*PostgresUserStore)(nil)

// NewPostgresUserStore creates a user store on db. It panics if db is nil.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// WithTx returns a store bound to tx.
func (s *PostgresUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &PostgresUserStore{db: tx, logger: s.logger}
}

// Create inserts user. A case-insensitive email collision yields store.ErrEmailExists.
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed before create", slog.String("error", err.Error()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		user.ID, user.Name, user.Email, string(user.Specialization), string(user.Level),
		user.TotalLessons, user.CompletedLessons, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("email already registered", slog.String("user_id", user.ID.String()))
			return MapError(err)
		}
		log.Error("failed to insert user", slog.String("error", err.Error()))
		return MapError(err)
	}

	log.Debug("user created", slog.String("user_id", user.ID.String()))
	return nil
}

// GetByID returns store.ErrUserNotFound when no row matches.
func (s *PostgresUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return s.scan(ctx, row)
}

// GetByEmail matches email case-insensitively.
func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email)
	return s.scan(ctx, row)
}

func (s *PostgresUserStore) scan(ctx context.Context, row *sql.Row) (*domain.User, error) {
	var (
		u              domain.User
		specialization string
		level          string
	)
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &specialization, &level,
		&u.TotalLessons, &u.CompletedLessons, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).
			Error("failed to scan user", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	u.Specialization = domain.Specialization(specialization)
	u.Level = domain.Level(level)
	return &u, nil
}

// Update writes the profile fields of user. Lesson counters are left alone.
func (s *PostgresUserStore) Update(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET name = $2, specialization = $3, level = $4, updated_at = $5
		WHERE id = $1`,
		user.ID, user.Name, string(user.Specialization), string(user.Level), user.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to update user",
			slog.String("user_id", user.ID.String()),
			slog.String("error", err.Error()))
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrUserNotFound)
}

// IncrementLessonCounts adds the deltas in a single statement so concurrent
// callers cannot lose updates.
func (s *PostgresUserStore) IncrementLessonCounts(ctx context.Context, id uuid.UUID, totalDelta, completedDelta int) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET total_lessons = total_lessons + $2,
		    completed_lessons = completed_lessons + $3,
		    updated_at = $4
		WHERE id = $1`,
		id, totalDelta, completedDelta, time.Now().UTC(),
	)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to increment lesson counts",
			slog.String("user_id", id.String()),
			slog.String("error", err.Error()))
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrUserNotFound)
}
