package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/profeai/profeai-api/internal/domain"
	"github.com/profeai/profeai-api/internal/events"
	"github.com/profeai/profeai-api/internal/platform/logger"
	"github.com/profeai/profeai-api/internal/store"
)

// ProgressProjector keeps the progress table in step with lessons. For every
// lesson.generated and lesson.completed event it recomputes the completion
// percentage of the lesson's type for that user.
type ProgressProjector struct {
	lessons  store.LessonStore
	progress store.ProgressStore
	logger   *slog.Logger
}

var _ events.EventHandler = (*ProgressProjector)(nil)

// NewProgressProjector creates a ProgressProjector.
func NewProgressProjector(lessons store.LessonStore, progress store.ProgressStore, log *slog.Logger) (*ProgressProjector, error) {
	if lessons == nil || progress == nil {
		return nil, fmt.Errorf("%w: stores", ErrMissingDependency)
	}
	if log == nil {
		log = slog.Default()
	}
	return &ProgressProjector{
		lessons:  lessons,
		progress: progress,
		logger:   log.With(slog.String("component", "progress_projector")),
	}, nil
}

// HandleEvent implements events.EventHandler.
func (p *ProgressProjector) HandleEvent(ctx context.Context, event *events.Event) error {
	if event.Type != events.TypeLessonGenerated && event.Type != events.TypeLessonCompleted {
		return nil
	}

	var payload events.LessonPayload
	if err := event.UnmarshalPayload(&payload); err != nil {
		return fmt.Errorf("failed to decode %s payload: %w", event.Type, err)
	}

	lessonType := domain.Specialization(payload.LessonType)
	counts, err := p.lessons.CountByType(ctx, payload.UserID, lessonType)
	if err != nil {
		return fmt.Errorf("failed to count %s lessons: %w", lessonType, err)
	}

	pct := domain.Percentage(counts.Completed, counts.Total)
	progress, err := domain.NewProgress(payload.UserID, payload.LessonType, pct)
	if err != nil {
		return err
	}
	if err := p.progress.Upsert(ctx, progress); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}

	logger.FromContextOrDefault(ctx, p.logger).Debug("progress updated",
		slog.String("user_id", payload.UserID.String()),
		slog.String("topic", payload.LessonType),
		slog.Float64("percentage", pct))
	return nil
}
