package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/profeai/profeai-api/internal/store"
)

// PostgreSQL error codes
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
	notNullViolationCode    = "23502"
)

// Named constraints from the migrations that map to specific errors.
const (
	constraintUserEmail         = "users_email_key"
	constraintCompletedLeTotal  = "users_completed_le_total"
	constraintLessonCompletion  = "lessons_completion_time_set"
	constraintProgressUserTopic = "progress_user_topic_key"
	constraintLessonUser        = "lessons_user_id_fkey"
	constraintFeedbackLesson    = "feedback_lesson_id_fkey"
)

// constraintErrors gives the error and rule behind a named constraint.
var constraintErrors = map[string]struct {
	err  error
	rule string
}{
	constraintUserEmail:         {store.ErrEmailExists, "email is already registered"},
	constraintProgressUserTopic: {store.ErrDuplicate, "progress already tracked for topic"},
	constraintCompletedLeTotal:  {store.ErrInvalidEntity, "completed lessons would exceed total lessons"},
	constraintLessonCompletion:  {store.ErrInvalidEntity, "completion time must be set exactly when completed"},
	constraintLessonUser:        {store.ErrInvalidEntity, "lesson references an unknown user"},
	constraintFeedbackLesson:    {store.ErrInvalidEntity, "feedback references an unknown lesson"},
}

// MapError translates database errors into store errors. Known constraints
// get their specific error; other constraint violations map by SQLSTATE.
// Errors without a mapping are returned unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	if known, ok := constraintErrors[pgErr.ConstraintName]; ok {
		return fmt.Errorf("%w: %s: %v", known.err, known.rule, err)
	}

	switch pgErr.Code {
	case uniqueViolationCode:
		return fmt.Errorf("%w: unique violation (%s): %v", store.ErrDuplicate, pgErr.ConstraintName, err)
	case foreignKeyViolationCode:
		return fmt.Errorf("%w: foreign key violation (%s): %v", store.ErrInvalidEntity, pgErr.ConstraintName, err)
	case checkViolationCode:
		return fmt.Errorf("%w: check constraint violation (%s): %v", store.ErrInvalidEntity, pgErr.ConstraintName, err)
	case notNullViolationCode:
		return fmt.Errorf("%w: not null violation (%s): %v", store.ErrInvalidEntity, pgErr.ColumnName, err)
	}
	return err
}

// IsUniqueViolation reports whether err is a PostgreSQL unique violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// CheckRowsAffected returns notFound when result changed no rows.
func CheckRowsAffected(result sql.Result, notFound error) error {
	if result == nil {
		return errors.New("nil result provided to CheckRowsAffected")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return notFound
	}
	return nil
}
