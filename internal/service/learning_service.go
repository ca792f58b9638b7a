package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/profeai/profeai-api/internal/domain"
	"github.com/profeai/profeai-api/internal/events"
	"github.com/profeai/profeai-api/internal/lesson"
	"github.com/profeai/profeai-api/internal/platform/logger"
	"github.com/profeai/profeai-api/internal/store"
)

// RecentLessonsLimit is how many lessons the dashboard shows.
const RecentLessonsLimit = 5

// Feedback outcomes reported by SubmitFeedback.
const (
	OutcomeAlternative = "alternative"
	OutcomeThanks      = "thanks"
)

// LessonGenerator is the part of lesson.Generator the service needs. Both
// methods are total.
type LessonGenerator interface {
	GenerateLesson(ctx context.Context, req lesson.Request) lesson.Result
	GenerateAlternativeExplanation(ctx context.Context, originalContent, feedbackType string) lesson.Explanation
}

var _ LessonGenerator = (*lesson.Generator)(nil)

// Dashboard summarizes a user's learning.
type Dashboard struct {
	User               *domain.User     `json:"user"`
	RecentLessons      []*domain.Lesson `json:"recent_lessons"`
	TotalLessons       int              `json:"total_lessons"`
	CompletedLessons   int              `json:"completed_lessons"`
	ProgressPercentage float64          `json:"progress_percentage"`
}

// FeedbackResult is the outcome of SubmitFeedback. Alternative is set when
// Outcome is OutcomeAlternative.
type FeedbackResult struct {
	Feedback    *domain.Feedback `json:"feedback"`
	Outcome     string           `json:"outcome"`
	Alternative *domain.Lesson   `json:"alternative,omitempty"`
}

// CompletionResult is the outcome of CompleteLesson.
type CompletionResult struct {
	Lesson *domain.Lesson `json:"lesson"`
	// AlreadyCompleted is true when the call changed nothing.
	AlreadyCompleted bool `json:"already_completed"`
}

// LearningService provides the learner-facing operations.
type LearningService interface {
	// RegisterUser creates a user, or updates the profile of the user already
	// registered with email. The bool reports whether a user was created.
	RegisterUser(ctx context.Context, name, email string, specialization domain.Specialization, level domain.Level) (*domain.User, bool, error)

	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	Dashboard(ctx context.Context, userID uuid.UUID) (*Dashboard, error)

	// GenerateLesson creates and stores a lesson matching the user's profile.
	// The lesson comes from the catalog when the language model cannot be used.
	GenerateLesson(ctx context.Context, userID uuid.UUID, topic string) (*domain.Lesson, error)

	GetLesson(ctx context.Context, lessonID uuid.UUID) (*domain.Lesson, error)

	// ListLessons returns all of the user's lessons, newest first.
	ListLessons(ctx context.Context, userID uuid.UUID) ([]*domain.Lesson, error)

	// SubmitFeedback stores feedback on a lesson. Confused or frustrated
	// feedback also stores an alternative explanation as a new lesson.
	SubmitFeedback(ctx context.Context, lessonID uuid.UUID, feedbackType domain.FeedbackType) (*FeedbackResult, error)

	// CompleteLesson marks a lesson completed. Completing a lesson twice is
	// not an error and counts once.
	CompleteLesson(ctx context.Context, lessonID uuid.UUID) (*CompletionResult, error)

	ListProgress(ctx context.Context, userID uuid.UUID) ([]*domain.Progress, error)
}

type learningServiceImpl struct {
	stores    store.Stores
	tx        store.Transactor
	generator LessonGenerator
	emitter   events.EventEmitter
	logger    *slog.Logger
	now       func() time.Time
}

// NewLearningService creates a LearningService. stores serves reads outside
// transactions; tx runs the writes.
func NewLearningService(
	stores store.Stores,
	tx store.Transactor,
	generator LessonGenerator,
	emitter events.EventEmitter,
	log *slog.Logger,
) (LearningService, error) {
	switch {
	case stores.Users == nil, stores.Lessons == nil, stores.Feedback == nil, stores.Progress == nil:
		return nil, fmt.Errorf("%w: stores", ErrMissingDependency)
	case tx == nil:
		return nil, fmt.Errorf("%w: transactor", ErrMissingDependency)
	case generator == nil:
		return nil, fmt.Errorf("%w: generator", ErrMissingDependency)
	case emitter == nil:
		return nil, fmt.Errorf("%w: emitter", ErrMissingDependency)
	}
	if log == nil {
		log = slog.Default()
	}

	return &learningServiceImpl{
		stores:    stores,
		tx:        tx,
		generator: generator,
		emitter:   emitter,
		logger:    log.With(slog.String("component", "learning_service")),
		now:       time.Now,
	}, nil
}

func (s *learningServiceImpl) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, s.logger)
}

// RegisterUser implements LearningService.
func (s *learningServiceImpl) RegisterUser(
	ctx context.Context,
	name, email string,
	specialization domain.Specialization,
	level domain.Level,
) (*domain.User, bool, error) {
	candidate, err := domain.NewUser(name, email, specialization, level)
	if err != nil {
		return nil, false, err
	}

	var (
		result  *domain.User
		created bool
	)
	register := func(ctx context.Context, tx store.Stores) error {
		existing, err := tx.Users.GetByEmail(ctx, candidate.Email)
		switch {
		case errors.Is(err, store.ErrUserNotFound):
			if err := tx.Users.Create(ctx, candidate); err != nil {
				return err
			}
			result, created = candidate, true
			return nil
		case err != nil:
			return err
		}

		if err := existing.UpdateProfile(candidate.Name, candidate.Specialization, candidate.Level); err != nil {
			return err
		}
		if err := tx.Users.Update(ctx, existing); err != nil {
			return err
		}
		result, created = existing, false
		return nil
	}

	err = s.tx.WithinTx(ctx, register)
	if errors.Is(err, store.ErrEmailExists) {
		// A concurrent registration won the insert; the retry updates its row.
		s.log(ctx).Debug("registration raced, retrying as update")
		err = s.tx.WithinTx(ctx, register)
	}
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return nil, false, err
		}
		s.log(ctx).Error("failed to register user", slog.String("error", err.Error()))
		return nil, false, NewLearningServiceError("register user", "failed to save user", err)
	}

	s.log(ctx).Info("user registered",
		slog.String("user_id", result.ID.String()),
		slog.Bool("created", created))
	return result, created, nil
}

// GetUser implements LearningService.
func (s *learningServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.stores.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, s.wrap(ctx, "get user", "failed to retrieve user", err)
	}
	return user, nil
}

// Dashboard implements LearningService.
func (s *learningServiceImpl) Dashboard(ctx context.Context, userID uuid.UUID) (*Dashboard, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	recent, err := s.stores.Lessons.ListByUser(ctx, userID, RecentLessonsLimit)
	if err != nil {
		return nil, s.wrap(ctx, "dashboard", "failed to list recent lessons", err)
	}

	return &Dashboard{
		User:               user,
		RecentLessons:      recent,
		TotalLessons:       user.TotalLessons,
		CompletedLessons:   user.CompletedLessons,
		ProgressPercentage: user.CompletionPercentage(),
	}, nil
}

// GenerateLesson implements LearningService. The provider call happens
// before the transaction so no database connection is held while waiting.
func (s *learningServiceImpl) GenerateLesson(ctx context.Context, userID uuid.UUID, topic string) (*domain.Lesson, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	res := s.generator.GenerateLesson(ctx, lesson.Request{
		Specialization: string(user.Specialization),
		Level:          string(user.Level),
		Topic:          strings.TrimSpace(topic),
	})

	l, err := domain.NewLesson(user.ID, user.Specialization, user.Level, res)
	if err != nil {
		return nil, s.wrap(ctx, "generate lesson", "generated lesson is invalid", err)
	}

	if err := s.storeNewLesson(ctx, l); err != nil {
		return nil, s.wrap(ctx, "generate lesson", "failed to save lesson", err)
	}

	s.log(ctx).Info("lesson generated",
		slog.String("user_id", user.ID.String()),
		slog.String("lesson_id", l.ID.String()),
		slog.String("provenance", string(l.Provenance)))
	return l, nil
}

// storeNewLesson saves l and counts it toward the user's total, then
// announces it.
func (s *learningServiceImpl) storeNewLesson(ctx context.Context, l *domain.Lesson, extra ...func(context.Context, store.Stores) error) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context, tx store.Stores) error {
		for _, fn := range extra {
			if err := fn(ctx, tx); err != nil {
				return err
			}
		}
		if err := tx.Lessons.Create(ctx, l); err != nil {
			return err
		}
		return tx.Users.IncrementLessonCounts(ctx, l.UserID, 1, 0)
	})
	if err != nil {
		return err
	}

	s.emit(ctx, events.TypeLessonGenerated, events.LessonPayload{
		UserID:     l.UserID,
		LessonID:   l.ID,
		LessonType: string(l.LessonType),
		Provenance: string(l.Provenance),
	})
	return nil
}

// GetLesson implements LearningService.
func (s *learningServiceImpl) GetLesson(ctx context.Context, lessonID uuid.UUID) (*domain.Lesson, error) {
	l, err := s.stores.Lessons.GetByID(ctx, lessonID)
	if err != nil {
		return nil, s.wrap(ctx, "get lesson", "failed to retrieve lesson", err)
	}
	return l, nil
}

// ListLessons implements LearningService.
func (s *learningServiceImpl) ListLessons(ctx context.Context, userID uuid.UUID) ([]*domain.Lesson, error) {
	if _, err := s.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	lessons, err := s.stores.Lessons.ListByUser(ctx, userID, 0)
	if err != nil {
		return nil, s.wrap(ctx, "list lessons", "failed to list lessons", err)
	}
	return lessons, nil
}

// SubmitFeedback implements LearningService.
func (s *learningServiceImpl) SubmitFeedback(
	ctx context.Context,
	lessonID uuid.UUID,
	feedbackType domain.FeedbackType,
) (*FeedbackResult, error) {
	original, err := s.GetLesson(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	fb, err := domain.NewFeedback(original.UserID, original.ID, feedbackType)
	if err != nil {
		return nil, err
	}

	saveFeedback := func(ctx context.Context, tx store.Stores) error {
		return tx.Feedback.Create(ctx, fb)
	}

	if !feedbackType.NeedsAlternative() {
		if err := s.tx.WithinTx(ctx, saveFeedback); err != nil {
			return nil, s.wrap(ctx, "submit feedback", "failed to save feedback", err)
		}
		s.emitFeedback(ctx, fb)
		return &FeedbackResult{Feedback: fb, Outcome: OutcomeThanks}, nil
	}

	explanation := s.generator.GenerateAlternativeExplanation(ctx, original.Content, string(feedbackType))
	alt, err := domain.NewAlternativeLesson(original, explanation)
	if err != nil {
		return nil, s.wrap(ctx, "submit feedback", "alternative lesson is invalid", err)
	}

	if err := s.storeNewLesson(ctx, alt, saveFeedback); err != nil {
		return nil, s.wrap(ctx, "submit feedback", "failed to save feedback", err)
	}
	s.emitFeedback(ctx, fb)

	s.log(ctx).Info("alternative lesson created",
		slog.String("lesson_id", original.ID.String()),
		slog.String("alternative_id", alt.ID.String()),
		slog.String("feedback_type", string(feedbackType)),
		slog.String("provenance", string(alt.Provenance)))
	return &FeedbackResult{Feedback: fb, Outcome: OutcomeAlternative, Alternative: alt}, nil
}

// CompleteLesson implements LearningService.
func (s *learningServiceImpl) CompleteLesson(ctx context.Context, lessonID uuid.UUID) (*CompletionResult, error) {
	var (
		completed *domain.Lesson
		changed   bool
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context, tx store.Stores) error {
		l, err := tx.Lessons.GetByID(ctx, lessonID)
		if err != nil {
			return err
		}

		at := s.now().UTC()
		changed, err = tx.Lessons.MarkCompleted(ctx, lessonID, at)
		if err != nil {
			return err
		}
		if changed {
			l.MarkCompleted(at)
			if err := tx.Users.IncrementLessonCounts(ctx, l.UserID, 0, 1); err != nil {
				return err
			}
		}
		completed = l
		return nil
	})
	if err != nil {
		return nil, s.wrap(ctx, "complete lesson", "failed to complete lesson", err)
	}

	if changed {
		s.emit(ctx, events.TypeLessonCompleted, events.LessonPayload{
			UserID:     completed.UserID,
			LessonID:   completed.ID,
			LessonType: string(completed.LessonType),
		})
		s.log(ctx).Info("lesson completed", slog.String("lesson_id", lessonID.String()))
	}

	return &CompletionResult{Lesson: completed, AlreadyCompleted: !changed}, nil
}

// ListProgress implements LearningService.
func (s *learningServiceImpl) ListProgress(ctx context.Context, userID uuid.UUID) ([]*domain.Progress, error) {
	if _, err := s.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	progress, err := s.stores.Progress.ListByUser(ctx, userID)
	if err != nil {
		return nil, s.wrap(ctx, "list progress", "failed to list progress", err)
	}
	return progress, nil
}

// emit publishes an event after the change it describes has been committed.
// Handler failures are logged; the committed change stands.
func (s *learningServiceImpl) emit(ctx context.Context, eventType string, payload interface{}) {
	event, err := events.NewEvent(eventType, payload)
	if err != nil {
		s.log(ctx).Error("failed to build event",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()))
		return
	}
	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		s.log(ctx).Warn("event handler failed",
			slog.String("event_type", eventType),
			slog.String("event_id", event.ID.String()),
			slog.String("error", err.Error()))
	}
}

func (s *learningServiceImpl) emitFeedback(ctx context.Context, fb *domain.Feedback) {
	s.emit(ctx, events.TypeFeedbackSubmitted, events.FeedbackPayload{
		UserID:       fb.UserID,
		LessonID:     fb.LessonID,
		FeedbackType: string(fb.FeedbackType),
	})
}

// wrap passes not-found errors through unchanged and wraps the rest.
func (s *learningServiceImpl) wrap(ctx context.Context, op, msg string, err error) error {
	if store.IsNotFoundError(err) {
		s.log(ctx).Debug(msg, slog.String("operation", op), slog.String("error", err.Error()))
		return err
	}
	s.log(ctx).Error(msg, slog.String("operation", op), slog.String("error", err.Error()))
	return NewLearningServiceError(op, msg, err)
}
