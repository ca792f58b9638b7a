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

// PostgresProgressStore implements store.ProgressStore.
type PostgresProgressStore struct {
	db     store.DBTX
	logger *slog.Logger
}

var _ store.ProgressStore = (*PostgresProgressStore)(nil)

// NewPostgresProgressStore creates a progress store on db. It panics if db is nil.
func NewPostgresProgressStore(db store.DBTX, logger *slog.Logger) *PostgresProgressStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresProgressStore{
		db:     db,
		logger: logger.With(slog.String("component", "progress_store")),
	}
}

// WithTx returns a store bound to tx.
func (s *PostgresProgressStore) WithTx(tx *sql.Tx) store.ProgressStore {
	return &PostgresProgressStore{db: tx, logger: s.logger}
}

// Upsert inserts progress or replaces the percentage of the existing
// (user, topic) row. The stored row keeps its original ID.
func (s *PostgresProgressStore) Upsert(ctx context.Context, p *domain.Progress) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO progress (id, user_id, topic, progress_percentage, last_updated)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, topic) DO UPDATE
		SET progress_percentage = EXCLUDED.progress_percentage,
		    last_updated = EXCLUDED.last_updated
		RETURNING id`,
		p.ID, p.UserID, p.Topic, p.ProgressPercentage, p.LastUpdated,
	).Scan(&p.ID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to upsert progress",
			slog.String("user_id", p.UserID.String()),
			slog.String("topic", p.Topic),
			slog.String("error", err.Error()))
		return MapError(err)
	}
	return nil
}

// ListByUser returns the user's progress ordered by topic.
func (s *PostgresProgressStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Progress, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, topic, progress_percentage, last_updated
		FROM progress
		WHERE user_id = $1
		ORDER BY topic`,
		userID,
	)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list progress",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]*domain.Progress, 0)
	for rows.Next() {
		var p domain.Progress
		if err := rows.Scan(&p.ID, &p.UserID, &p.Topic, &p.ProgressPercentage, &p.LastUpdated); err != nil {
			return nil, MapError(err)
		}
		out = append(out, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return out, nil
}
