package service

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/profeai/profeai-api/internal/domain"
	"github.com/profeai/profeai-api/internal/events"
	"github.com/profeai/profeai-api/internal/lesson"
	"github.com/profeai/profeai-api/internal/store"
)

// memoryDB is an in-memory stand-in for the PostgreSQL stores. Transactions
// are not isolated; WithinTx only serializes callers and reports fn's error.
type memoryDB struct {
	mu       sync.Mutex
	users    map[uuid.UUID]domain.User
	lessons  map[uuid.UUID]domain.Lesson
	feedback []domain.Feedback
	progress map[string]domain.Progress

	// failOn makes the named operation fail with failErr.
	failOn  string
	failErr error
	txCount int
}

func newMemoryDB() *memoryDB {
	return &memoryDB{
		users:    make(map[uuid.UUID]domain.User),
		lessons:  make(map[uuid.UUID]domain.Lesson),
		progress: make(map[string]domain.Progress),
	}
}

func (m *memoryDB) fail(op string) error {
	if m.failOn == op {
		return m.failErr
	}
	return nil
}

func (m *memoryDB) stores() store.Stores {
	return store.Stores{
		Users:    &memoryUserStore{m},
		Lessons:  &memoryLessonStore{m},
		Feedback: &memoryFeedbackStore{m},
		Progress: &memoryProgressStore{m},
	}
}

func (m *memoryDB) WithinTx(ctx context.Context, fn func(ctx context.Context, tx store.Stores) error) error {
	m.mu.Lock()
	m.txCount++
	m.mu.Unlock()
	return fn(ctx, m.stores())
}

type memoryUserStore struct{ m *memoryDB }

func (s *memoryUserStore) Create(_ context.Context, u *domain.User) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if err := s.m.fail("users.create"); err != nil {
		return err
	}
	for _, existing := range s.m.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return store.ErrEmailExists
		}
	}
	s.m.users[u.ID] = *u
	return nil
}

func (s *memoryUserStore) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	u, ok := s.m.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return &u, nil
}

func (s *memoryUserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, u := range s.m.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (s *memoryUserStore) Update(_ context.Context, u *domain.User) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	existing, ok := s.m.users[u.ID]
	if !ok {
		return store.ErrUserNotFound
	}
	existing.Name = u.Name
	existing.Specialization = u.Specialization
	existing.Level = u.Level
	existing.UpdatedAt = u.UpdatedAt
	s.m.users[u.ID] = existing
	return nil
}

func (s *memoryUserStore) IncrementLessonCounts(_ context.Context, id uuid.UUID, totalDelta, completedDelta int) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if err := s.m.fail("users.increment"); err != nil {
		return err
	}
	u, ok := s.m.users[id]
	if !ok {
		return store.ErrUserNotFound
	}
	u.TotalLessons += totalDelta
	u.CompletedLessons += completedDelta
	if u.CompletedLessons > u.TotalLessons {
		return store.ErrInvalidEntity
	}
	s.m.users[id] = u
	return nil
}

func (s *memoryUserStore) WithTx(*sql.Tx) store.UserStore { return s }

type memoryLessonStore struct{ m *memoryDB }

func (s *memoryLessonStore) Create(_ context.Context, l *domain.Lesson) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if err := s.m.fail("lessons.create"); err != nil {
		return err
	}
	if _, ok := s.m.users[l.UserID]; !ok {
		return store.ErrInvalidEntity
	}
	s.m.lessons[l.ID] = *l
	return nil
}

func (s *memoryLessonStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Lesson, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	l, ok := s.m.lessons[id]
	if !ok {
		return nil, store.ErrLessonNotFound
	}
	return &l, nil
}

func (s *memoryLessonStore) ListByUser(_ context.Context, userID uuid.UUID, limit int) ([]*domain.Lesson, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	out := make([]*domain.Lesson, 0)
	for _, l := range s.m.lessons {
		if l.UserID == userID {
			l := l
			out = append(out, &l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *memoryLessonStore) MarkCompleted(_ context.Context, id uuid.UUID, at time.Time) (bool, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	l, ok := s.m.lessons[id]
	if !ok {
		return false, store.ErrLessonNotFound
	}
	changed := l.MarkCompleted(at)
	s.m.lessons[id] = l
	return changed, nil
}

func (s *memoryLessonStore) CountByType(_ context.Context, userID uuid.UUID, lessonType domain.Specialization) (store.LessonCounts, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var c store.LessonCounts
	for _, l := range s.m.lessons {
		if l.UserID != userID || l.LessonType != lessonType {
			continue
		}
		c.Total++
		if l.Completed {
			c.Completed++
		}
	}
	return c, nil
}

func (s *memoryLessonStore) WithTx(*sql.Tx) store.LessonStore { return s }

type memoryFeedbackStore struct{ m *memoryDB }

func (s *memoryFeedbackStore) Create(_ context.Context, f *domain.Feedback) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if err := s.m.fail("feedback.create"); err != nil {
		return err
	}
	s.m.feedback = append(s.m.feedback, *f)
	return nil
}

func (s *memoryFeedbackStore) ListByLesson(_ context.Context, lessonID uuid.UUID) ([]*domain.Feedback, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	out := make([]*domain.Feedback, 0)
	for _, f := range s.m.feedback {
		if f.LessonID == lessonID {
			f := f
			out = append(out, &f)
		}
	}
	return out, nil
}

func (s *memoryFeedbackStore) WithTx(*sql.Tx) store.FeedbackStore { return s }

type memoryProgressStore struct{ m *memoryDB }

func progressKey(userID uuid.UUID, topic string) string {
	return userID.String() + "/" + topic
}

func (s *memoryProgressStore) Upsert(_ context.Context, p *domain.Progress) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	key := progressKey(p.UserID, p.Topic)
	if existing, ok := s.m.progress[key]; ok {
		p.ID = existing.ID
	}
	s.m.progress[key] = *p
	return nil
}

func (s *memoryProgressStore) ListByUser(_ context.Context, userID uuid.UUID) ([]*domain.Progress, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	out := make([]*domain.Progress, 0)
	for _, p := range s.m.progress {
		if p.UserID == userID {
			p := p
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Topic < out[j].Topic })
	return out, nil
}

func (s *memoryProgressStore) WithTx(*sql.Tx) store.ProgressStore { return s }

// stubGenerator returns fixed results and records requests.
type stubGenerator struct {
	mu           sync.Mutex
	result       lesson.Result
	explanation  lesson.Explanation
	requests     []lesson.Request
	alternatives []string
}

func (g *stubGenerator) GenerateLesson(_ context.Context, req lesson.Request) lesson.Result {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.requests = append(g.requests, req)
	return g.result
}

func (g *stubGenerator) GenerateAlternativeExplanation(_ context.Context, original, feedbackType string) lesson.Explanation {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.alternatives = append(g.alternatives, feedbackType+":"+original)
	return g.explanation
}

// recordingEmitter keeps emitted events and optionally forwards them.
type recordingEmitter struct {
	mu      sync.Mutex
	events  []*events.Event
	forward events.EventHandler
}

func (e *recordingEmitter) EmitEvent(ctx context.Context, event *events.Event) error {
	e.mu.Lock()
	e.events = append(e.events, event)
	e.mu.Unlock()
	if e.forward != nil {
		return e.forward.HandleEvent(ctx, event)
	}
	return nil
}

func (e *recordingEmitter) types() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, 0, len(e.events))
	for _, ev := range e.events {
		out = append(out, ev.Type)
	}
	return out
}
