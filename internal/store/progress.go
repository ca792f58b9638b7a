package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/profeai/profeai-api/internal/domain"
)

// ProgressStore defines the interface for per-topic progress persistence.
type ProgressStore interface {
	// Upsert stores progress keyed by (user, topic), replacing the percentage
	// and timestamp of an existing row.
	Upsert(ctx context.Context, progress *domain.Progress) error

	// ListByUser returns the user's progress ordered by topic.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Progress, error)

	WithTx(tx *sql.Tx) ProgressStore
}
