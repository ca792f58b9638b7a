package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/profeai/profeai-api/internal/lesson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeContent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Body", ComposeContent(lesson.Record{Title: "T", Content: "Body"}))
	assert.Equal(t,
		"Body\n\n**Practice Exercise:**\nDo it",
		ComposeContent(lesson.Record{Title: "T", Content: "Body", Exercise: "Do it"}))
	assert.Equal(t, "Body", ComposeContent(lesson.Record{Content: "Body", Exercise: "  "}))
}

func TestNewLesson(t *testing.T) {
	t.Parallel()
	userID := uuid.New()

	l, err := NewLesson(userID, SpecializationTooling, LevelBeginner, lesson.Result{
		Record:     lesson.Record{Title: "APIs", Content: "Call them.", Exercise: "Call one."},
		Provenance: lesson.ProvenanceGenerated,
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, l.ID)
	assert.Equal(t, userID, l.UserID)
	assert.Equal(t, "APIs", l.Title)
	assert.Equal(t, "Call them.\n\n**Practice Exercise:**\nCall one.", l.Content)
	assert.Equal(t, lesson.ProvenanceGenerated, l.Provenance)
	assert.False(t, l.Completed)
	assert.Nil(t, l.CompletionTime)
}

func TestNewLesson_Validation(t *testing.T) {
	t.Parallel()
	ok := lesson.Result{Record: lesson.Record{Title: "T", Content: "C"}, Provenance: lesson.ProvenanceFallback}

	_, err := NewLesson(uuid.Nil, SpecializationTheory, LevelBeginner, ok)
	assert.ErrorIs(t, err, ErrEmptyUserID)

	_, err = NewLesson(uuid.New(), "Nope", LevelBeginner, ok)
	assert.ErrorIs(t, err, ErrInvalidSpecialization)

	_, err = NewLesson(uuid.New(), SpecializationTheory, "Nope", ok)
	assert.ErrorIs(t, err, ErrInvalidLevel)

	_, err = NewLesson(uuid.New(), SpecializationTheory, LevelBeginner, lesson.Result{
		Record: lesson.Record{Title: "T", Content: "C"}, Provenance: "made-up",
	})
	assert.ErrorIs(t, err, ErrInvalidProvenance)

	_, err = NewLesson(uuid.New(), SpecializationTheory, LevelBeginner, lesson.Result{
		Record: lesson.Record{Title: "", Content: "C"}, Provenance: lesson.ProvenanceFallback,
	})
	assert.ErrorIs(t, err, ErrEmptyLessonTitle)

	_, err = NewLesson(uuid.New(), SpecializationTheory, LevelBeginner, lesson.Result{
		Record: lesson.Record{Title: "T", Content: " "}, Provenance: lesson.ProvenanceFallback,
	})
	assert.ErrorIs(t, err, ErrEmptyLessonContent)
}

func TestNewAlternativeLesson(t *testing.T) {
	t.Parallel()

	original, err := NewLesson(uuid.New(), SpecializationHybrid, LevelAdvanced, lesson.Result{
		Record:     lesson.Record{Title: "Prompting", Content: "C"},
		Provenance: lesson.ProvenanceGenerated,
	})
	require.NoError(t, err)

	alt, err := NewAlternativeLesson(original, lesson.Explanation{Text: "Simpler.", Provenance: lesson.ProvenanceFallback})
	require.NoError(t, err)

	assert.NotEqual(t, original.ID, alt.ID)
	assert.Equal(t, original.UserID, alt.UserID)
	assert.Equal(t, "Alternative: Prompting", alt.Title)
	assert.Equal(t, "Simpler.", alt.Content)
	assert.Equal(t, SpecializationHybrid, alt.LessonType)
	assert.Equal(t, LevelAdvanced, alt.Difficulty)
	assert.Equal(t, lesson.ProvenanceFallback, alt.Provenance)
}

func TestLessonMarkCompleted(t *testing.T) {
	t.Parallel()

	l, err := NewLesson(uuid.New(), SpecializationTheory, LevelBeginner, lesson.Result{
		Record: lesson.Record{Title: "T", Content: "C"}, Provenance: lesson.ProvenanceFallback,
	})
	require.NoError(t, err)

	first := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	assert.True(t, l.MarkCompleted(first))
	require.NotNil(t, l.CompletionTime)
	assert.Equal(t, first, *l.CompletionTime)
	assert.NoError(t, l.Validate())

	assert.False(t, l.MarkCompleted(first.Add(time.Hour)), "second completion is a no-op")
	assert.Equal(t, first, *l.CompletionTime)

	l.CompletionTime = nil
	assert.ErrorIs(t, l.Validate(), ErrInvalidCompletionState)
}

func TestFeedbackAndProgress(t *testing.T) {
	t.Parallel()

	f, err := NewFeedback(uuid.New(), uuid.New(), FeedbackConfused)
	require.NoError(t, err)
	assert.Equal(t, FeedbackConfused, f.FeedbackType)

	_, err = NewFeedback(uuid.New(), uuid.New(), "meh")
	assert.ErrorIs(t, err, ErrInvalidFeedbackType)

	_, err = NewFeedback(uuid.New(), uuid.Nil, FeedbackClear)
	assert.ErrorIs(t, err, ErrEmptyLessonID)

	p, err := NewProgress(uuid.New(), " Theory ", 50)
	require.NoError(t, err)
	assert.Equal(t, "Theory", p.Topic)

	_, err = NewProgress(uuid.New(), "Theory", 100.1)
	assert.ErrorIs(t, err, ErrInvalidPercentage)

	_, err = NewProgress(uuid.New(), "", 10)
	assert.ErrorIs(t, err, ErrEmptyTopic)
}
