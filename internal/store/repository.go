package store

import "context"

// Stores groups the stores that take part in one unit of work.
type Stores struct {
	Users    UserStore
	Lessons  LessonStore
	Feedback FeedbackStore
	Progress ProgressStore
}

// Transactor runs fn with Stores bound to a single transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx Stores) error) error
}
