package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	payload := FeedbackPayload{
		UserID:       uuid.New(),
		LessonID:     uuid.New(),
		FeedbackType: "confused",
	}

	event, err := NewEvent(TypeFeedbackSubmitted, payload)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, TypeFeedbackSubmitted, event.Type)
	assert.WithinDuration(t, time.Now(), event.CreatedAt, time.Second)

	var decoded FeedbackPayload
	require.NoError(t, event.UnmarshalPayload(&decoded))
	assert.Equal(t, payload, decoded)

	var raw map[string]string
	require.NoError(t, json.Unmarshal(event.Payload, &raw))
	assert.Equal(t, "confused", raw["feedback_type"])
}

func TestNewEvent_UnencodablePayload(t *testing.T) {
	_, err := NewEvent(TypeLessonGenerated, make(chan int))
	assert.Error(t, err)
}

// MockEventHandler implements the EventHandler interface for testing
type MockEventHandler struct {
	// The last event received by this handler
	LastEvent *Event
	// Error to return from HandleEvent
	HandlerError error
	// Count of events handled
	HandledCount int
}

// HandleEvent implements the EventHandler interface
func (h *MockEventHandler) HandleEvent(ctx context.Context, event *Event) error {
	h.LastEvent = event
	h.HandledCount++
	return h.HandlerError
}

func TestHandlerFunc(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	h := HandlerFunc(func(context.Context, *Event) error {
		calls++
		return boom
	})

	event, err := NewEvent(TypeLessonCompleted, LessonPayload{})
	require.NoError(t, err)

	assert.ErrorIs(t, h.HandleEvent(context.Background(), event), boom)
	assert.Equal(t, 1, calls)
}
