package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/profeai/profeai-api/internal/store"
)

// Repository bundles the PostgreSQL stores over one connection pool.
type Repository struct {
	store.Stores
	db *sql.DB
}

var _ store.Transactor = (*Repository)(nil)

// NewRepository creates all stores on db.
func NewRepository(db *sql.DB, logger *slog.Logger) *Repository {
	return &Repository{
		Stores: store.Stores{
			Users:    NewPostgresUserStore(db, logger),
			Lessons:  NewPostgresLessonStore(db, logger),
			Feedback: NewPostgresFeedbackStore(db, logger),
			Progress: NewPostgresProgressStore(db, logger),
		},
		db: db,
	}
}

// DB returns the underlying pool.
func (r *Repository) DB() *sql.DB {
	return r.db
}

// WithinTx implements store.Transactor.
func (r *Repository) WithinTx(ctx context.Context, fn func(ctx context.Context, tx store.Stores) error) error {
	return store.RunInTransaction(ctx, r.db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, store.Stores{
			Users:    r.Users.WithTx(tx),
			Lessons:  r.Lessons.WithTx(tx),
			Feedback: r.Feedback.WithTx(tx),
			Progress: r.Progress.WithTx(tx),
		})
	})
}
