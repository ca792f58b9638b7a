package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the service layer.
const (
	TypeLessonGenerated   = "lesson.generated"
	TypeLessonCompleted   = "lesson.completed"
	TypeFeedbackSubmitted = "feedback.submitted"
)

// Event is a fact about the learning domain.
type Event struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is one of the Type* constants
	Type string `json:"type"`

	// Payload contains the type-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`

	CreatedAt time.Time `json:"created_at"`
}

// LessonPayload is the payload of lesson.generated and lesson.completed.
type LessonPayload struct {
	UserID     uuid.UUID `json:"user_id"`
	LessonID   uuid.UUID `json:"lesson_id"`
	LessonType string    `json:"lesson_type"`
	Provenance string    `json:"provenance,omitempty"`
}

// FeedbackPayload is the payload of feedback.submitted.
type FeedbackPayload struct {
	UserID       uuid.UUID `json:"user_id"`
	LessonID     uuid.UUID `json:"lesson_id"`
	FeedbackType string    `json:"feedback_type"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *Event) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewEvent creates an Event with the specified type and payload.
func NewEvent(eventType string, payload interface{}) (*Event, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   payloadBytes,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event. Handlers ignore event types
	// they are not interested in and return nil for them.
	HandleEvent(ctx context.Context, event *Event) error
}

// HandlerFunc adapts a function to EventHandler.
type HandlerFunc func(ctx context.Context, event *Event) error

// HandleEvent calls f.
func (f HandlerFunc) HandleEvent(ctx context.Context, event *Event) error {
	return f(ctx, event)
}

// On returns a handler that calls fn only for events of eventType.
func On(eventType string, fn HandlerFunc) EventHandler {
	return HandlerFunc(func(ctx context.Context, event *Event) error {
		if event.Type != eventType {
			return nil
		}
		return fn(ctx, event)
	})
}

// EventEmitter defines an interface for components that can emit events.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *Event) error
}
