package postgres

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/profeai/profeai-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	other := errors.New("connection reset")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no rows", sql.ErrNoRows, store.ErrNotFound},
		{"email taken", &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: constraintUserEmail}, store.ErrEmailExists},
		{"other unique violation", &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "x_key"}, store.ErrDuplicate},
		{"completed exceeds total", &pgconn.PgError{Code: checkViolationCode, ConstraintName: constraintCompletedLeTotal}, store.ErrInvalidEntity},
		{"foreign key violation", &pgconn.PgError{Code: foreignKeyViolationCode}, store.ErrInvalidEntity},
		{"check violation", &pgconn.PgError{Code: checkViolationCode}, store.ErrInvalidEntity},
		{"not null violation", &pgconn.PgError{Code: notNullViolationCode}, store.ErrInvalidEntity},
		{"unmapped", other, other},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.ErrorIs(t, MapError(tc.err), tc.want)
		})
	}

	assert.NoError(t, MapError(nil))
	assert.Contains(t,
		MapError(&pgconn.PgError{Code: checkViolationCode, ConstraintName: constraintCompletedLeTotal}).Error(),
		"completed lessons would exceed total lessons")
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: uniqueViolationCode}))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: checkViolationCode}))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
}

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	assert.NoError(t, CheckRowsAffected(sqlmock.NewResult(0, 1), store.ErrLessonNotFound))
	assert.ErrorIs(t, CheckRowsAffected(sqlmock.NewResult(0, 0), store.ErrLessonNotFound), store.ErrLessonNotFound)
	assert.Error(t, CheckRowsAffected(nil, store.ErrLessonNotFound))
}

func TestMigrationFiles(t *testing.T) {
	t.Parallel()

	files, err := MigrationFiles()
	assert.NoError(t, err)
	assert.Equal(t, []string{
		"00001_create_users.sql",
		"00002_create_lessons.sql",
		"00003_create_feedback.sql",
		"00004_create_progress.sql",
	}, files)
}
