// Package events lets services announce what happened to a learner without
// knowing who reacts. A service emits an Event through an EventEmitter; the
// registered EventHandlers decide whether the event concerns them.
//
// Event types used by the service layer:
//   - lesson.generated: a lesson was stored for a user
//   - lesson.completed: a lesson moved to the completed state
//   - feedback.submitted: a user reacted to a lesson
package events
