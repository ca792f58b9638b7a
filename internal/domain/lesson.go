package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/profeai/profeai-api/internal/lesson"
)

// exerciseHeading separates a stored lesson's body from its practice exercise.
const exerciseHeading = "\n\n**Practice Exercise:**\n"

// alternativeTitlePrefix marks lessons created from negative feedback.
const alternativeTitlePrefix = "Alternative: "

// Lesson is a lesson delivered to a user and stored in their history.
type Lesson struct {
	ID             uuid.UUID         `json:"id"`
	UserID         uuid.UUID         `json:"user_id"`
	Title          string            `json:"title"`
	Content        string            `json:"content"`
	LessonType     Specialization    `json:"lesson_type"`
	Difficulty     Level             `json:"difficulty"`
	Provenance     lesson.Provenance `json:"provenance"`
	Completed      bool              `json:"completed"`
	CreatedAt      time.Time         `json:"created_at"`
	CompletionTime *time.Time        `json:"completion_time,omitempty"`
}

// ComposeContent flattens a lesson record into stored content, appending the
// exercise under a heading when there is one.
func ComposeContent(rec lesson.Record) string {
	if strings.TrimSpace(rec.Exercise) == "" {
		return rec.Content
	}
	return rec.Content + exerciseHeading + rec.Exercise
}

// NewLesson creates a validated Lesson for user from a generation result.
func NewLesson(userID uuid.UUID, lessonType Specialization, difficulty Level, res lesson.Result) (*Lesson, error) {
	l := &Lesson{
		ID:         uuid.New(),
		UserID:     userID,
		Title:      res.Record.Title,
		Content:    ComposeContent(res.Record),
		LessonType: lessonType,
		Difficulty: difficulty,
		Provenance: res.Provenance,
		CreatedAt:  time.Now().UTC(),
	}

	if err := l.Validate(); err != nil {
		return nil, err
	}

	return l, nil
}

// NewAlternativeLesson creates the lesson that re-explains original after
// negative feedback. It keeps the original's type and difficulty.
func NewAlternativeLesson(original *Lesson, explanation lesson.Explanation) (*Lesson, error) {
	return NewLesson(original.UserID, original.LessonType, original.Difficulty, lesson.Result{
		Record: lesson.Record{
			Title:   alternativeTitlePrefix + original.Title,
			Content: explanation.Text,
		},
		Provenance: explanation.Provenance,
	})
}

// Validate checks if the Lesson has valid data.
func (l *Lesson) Validate() error {
	if l.ID == uuid.Nil {
		return ErrEmptyLessonID
	}
	if l.UserID == uuid.Nil {
		return ErrEmptyUserID
	}
	if strings.TrimSpace(l.Title) == "" {
		return ErrEmptyLessonTitle
	}
	if strings.TrimSpace(l.Content) == "" {
		return ErrEmptyLessonContent
	}
	if !l.LessonType.Valid() {
		return ErrInvalidSpecialization
	}
	if !l.Difficulty.Valid() {
		return ErrInvalidLevel
	}
	if l.Provenance != lesson.ProvenanceGenerated && l.Provenance != lesson.ProvenanceFallback {
		return ErrInvalidProvenance
	}
	if l.Completed != (l.CompletionTime != nil) {
		return ErrInvalidCompletionState
	}
	return nil
}

// MarkCompleted records completion at now. It returns false, leaving the
// lesson untouched, when the lesson was already completed.
func (l *Lesson) MarkCompleted(now time.Time) bool {
	if l.Completed {
		return false
	}
	t := now.UTC()
	l.Completed = true
	l.CompletionTime = &t
	return true
}
