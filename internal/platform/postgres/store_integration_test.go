//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/profeai/profeai-api/internal/domain"
	"github.com/profeai/profeai-api/internal/lesson"
	"github.com/profeai/profeai-api/internal/platform/postgres"
	"github.com/profeai/profeai-api/internal/store"
	"github.com/profeai/profeai-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storesFor(tx *sql.Tx) store.Stores {
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	return store.Stores{
		Users:    postgres.NewPostgresUserStore(tx, quiet),
		Lessons:  postgres.NewPostgresLessonStore(tx, quiet),
		Feedback: postgres.NewPostgresFeedbackStore(tx, quiet),
		Progress: postgres.NewPostgresProgressStore(tx, quiet),
	}
}

func TestStores_LessonLifecycle(t *testing.T) {
	db := testdb.GetTestDBWithT(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx := context.Background()
		s := storesFor(tx)

		user, err := domain.NewUser("Grace", "grace@example.com", domain.SpecializationTooling, domain.LevelBeginner)
		require.NoError(t, err)
		require.NoError(t, s.Users.Create(ctx, user))

		l, err := domain.NewLesson(user.ID, domain.SpecializationTooling, domain.LevelBeginner, lesson.Result{
			Record:     lesson.Record{Title: "Your First AI API Call", Content: "Send a prompt."},
			Provenance: lesson.ProvenanceFallback,
		})
		require.NoError(t, err)
		require.NoError(t, s.Lessons.Create(ctx, l))
		require.NoError(t, s.Users.IncrementLessonCounts(ctx, user.ID, 1, 0))

		changed, err := s.Lessons.MarkCompleted(ctx, l.ID, time.Now())
		require.NoError(t, err)
		assert.True(t, changed)
		changed, err = s.Lessons.MarkCompleted(ctx, l.ID, time.Now())
		require.NoError(t, err)
		assert.False(t, changed)
		require.NoError(t, s.Users.IncrementLessonCounts(ctx, user.ID, 0, 1))

		got, err := s.Users.GetByEmail(ctx, "Grace@Example.com")
		require.NoError(t, err)
		assert.Equal(t, 1, got.TotalLessons)
		assert.Equal(t, 1, got.CompletedLessons)

		counts, err := s.Lessons.CountByType(ctx, user.ID, domain.SpecializationTooling)
		require.NoError(t, err)
		assert.Equal(t, store.LessonCounts{Total: 1, Completed: 1}, counts)

		p, err := domain.NewProgress(user.ID, "Tooling", 100)
		require.NoError(t, err)
		require.NoError(t, s.Progress.Upsert(ctx, p))
		p2, err := domain.NewProgress(user.ID, "Tooling", 50)
		require.NoError(t, err)
		require.NoError(t, s.Progress.Upsert(ctx, p2))
		assert.Equal(t, p.ID, p2.ID)

		progress, err := s.Progress.ListByUser(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, progress, 1)
		assert.InDelta(t, 50.0, progress[0].ProgressPercentage, 0.001)

		f, err := domain.NewFeedback(user.ID, l.ID, domain.FeedbackHelpful)
		require.NoError(t, err)
		require.NoError(t, s.Feedback.Create(ctx, f))
		feedback, err := s.Feedback.ListByLesson(ctx, l.ID)
		require.NoError(t, err)
		assert.Len(t, feedback, 1)
	})
}

func TestStores_CompletedCannotExceedTotal(t *testing.T) {
	db := testdb.GetTestDBWithT(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx := context.Background()
		s := storesFor(tx)

		user, err := domain.NewUser("Alan", "alan@example.com", domain.SpecializationTheory, domain.LevelAdvanced)
		require.NoError(t, err)
		require.NoError(t, s.Users.Create(ctx, user))

		err = s.Users.IncrementLessonCounts(ctx, user.ID, 0, 1)
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
	})
}

func TestUserStore_EmailUniqueIgnoringCase(t *testing.T) {
	db := testdb.GetTestDBWithT(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx := context.Background()
		s := storesFor(tx)

		user, err := domain.NewUser("Grace", "grace@example.com", domain.SpecializationTooling, domain.LevelBeginner)
		require.NoError(t, err)
		require.NoError(t, s.Users.Create(ctx, user))

		// The violation aborts the transaction, so it must be the last statement.
		dup, err := domain.NewUser("Grace H", "GRACE@example.com", domain.SpecializationTheory, "")
		require.NoError(t, err)
		assert.ErrorIs(t, s.Users.Create(ctx, dup), store.ErrEmailExists)
	})
}
