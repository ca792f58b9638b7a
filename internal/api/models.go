package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/profeai/profeai-api/internal/domain"
	"github.com/profeai/profeai-api/internal/service"
)

// RegisterUserRequest is the payload of POST /api/users.
type RegisterUserRequest struct {
	Name           string `json:"name"           validate:"required,max=100"`
	Email          string `json:"email"          validate:"required,email,max=254"`
	Specialization string `json:"specialization" validate:"required,oneof=Theory Tooling Hybrid"`
	Level          string `json:"level"          validate:"omitempty,oneof=Beginner Intermediate Advanced"`
}

// GenerateLessonRequest is the optional payload of POST /api/users/{id}/lessons.
type GenerateLessonRequest struct {
	Topic string `json:"topic" validate:"max=500"`
}

// FeedbackRequest is the payload of POST /api/lessons/{id}/feedback.
type FeedbackRequest struct {
	FeedbackType string `json:"feedback_type" validate:"required,oneof=confused frustrated clear helpful"`
}

// UserResponse is a user as returned by the API.
type UserResponse struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Specialization   string    `json:"specialization"`
	Level            string    `json:"level"`
	TotalLessons     int       `json:"total_lessons"`
	CompletedLessons int       `json:"completed_lessons"`
	CreatedAt        time.Time `json:"created_at"`
}

// RegisterUserResponse adds whether the registration created the user.
type RegisterUserResponse struct {
	UserResponse
	Created bool `json:"created"`
}

// LessonResponse is a lesson as returned by the API.
type LessonResponse struct {
	ID             uuid.UUID  `json:"id"`
	UserID         uuid.UUID  `json:"user_id"`
	Title          string     `json:"title"`
	Content        string     `json:"content"`
	LessonType     string     `json:"lesson_type"`
	Difficulty     string     `json:"difficulty"`
	Provenance     string     `json:"provenance"`
	Completed      bool       `json:"completed"`
	CreatedAt      time.Time  `json:"created_at"`
	CompletionTime *time.Time `json:"completion_time,omitempty"`
}

// DashboardResponse is the payload of GET /api/users/{id}/dashboard.
type DashboardResponse struct {
	User               UserResponse     `json:"user"`
	RecentLessons      []LessonResponse `json:"recent_lessons"`
	TotalLessons       int              `json:"total_lessons"`
	CompletedLessons   int              `json:"completed_lessons"`
	ProgressPercentage float64          `json:"progress_percentage"`
}

// FeedbackResponse reports what the service did with feedback.
type FeedbackResponse struct {
	FeedbackID  uuid.UUID       `json:"feedback_id"`
	Outcome     string          `json:"outcome"`
	Alternative *LessonResponse `json:"alternative,omitempty"`
}

// CompletionResponse is the payload of POST /api/lessons/{id}/complete.
type CompletionResponse struct {
	Lesson           LessonResponse `json:"lesson"`
	AlreadyCompleted bool           `json:"already_completed"`
}

// ProgressResponse is one topic's progress.
type ProgressResponse struct {
	Topic              string    `json:"topic"`
	ProgressPercentage float64   `json:"progress_percentage"`
	LastUpdated        time.Time `json:"last_updated"`
}

// HealthResponse is the payload of GET /health.
type HealthResponse struct {
	Status       string `json:"status"`
	ProviderMode string `json:"provider_mode"`
	CatalogSize  int    `json:"catalog_size"`
}

func userToResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:               u.ID,
		Name:             u.Name,
		Email:            u.Email,
		Specialization:   string(u.Specialization),
		Level:            string(u.Level),
		TotalLessons:     u.TotalLessons,
		CompletedLessons: u.CompletedLessons,
		CreatedAt:        u.CreatedAt,
	}
}

func lessonToResponse(l *domain.Lesson) LessonResponse {
	return LessonResponse{
		ID:             l.ID,
		UserID:         l.UserID,
		Title:          l.Title,
		Content:        l.Content,
		LessonType:     string(l.LessonType),
		Difficulty:     string(l.Difficulty),
		Provenance:     string(l.Provenance),
		Completed:      l.Completed,
		CreatedAt:      l.CreatedAt,
		CompletionTime: l.CompletionTime,
	}
}

func lessonsToResponse(lessons []*domain.Lesson) []LessonResponse {
	out := make([]LessonResponse, 0, len(lessons))
	for _, l := range lessons {
		out = append(out, lessonToResponse(l))
	}
	return out
}

func dashboardToResponse(d *service.Dashboard) DashboardResponse {
	return DashboardResponse{
		User:               userToResponse(d.User),
		RecentLessons:      lessonsToResponse(d.RecentLessons),
		TotalLessons:       d.TotalLessons,
		CompletedLessons:   d.CompletedLessons,
		ProgressPercentage: d.ProgressPercentage,
	}
}

func progressToResponse(progress []*domain.Progress) []ProgressResponse {
	out := make([]ProgressResponse, 0, len(progress))
	for _, p := range progress {
		out = append(out, ProgressResponse{
			Topic:              p.Topic,
			ProgressPercentage: p.ProgressPercentage,
			LastUpdated:        p.LastUpdated,
		})
	}
	return out
}
