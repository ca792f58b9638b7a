package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/profeai/profeai-api/internal/api/shared"
	"github.com/profeai/profeai-api/internal/domain"
	"github.com/profeai/profeai-api/internal/platform/logger"
	"github.com/profeai/profeai-api/internal/service"
)

// LearningHandler serves the user, lesson and progress endpoints.
type LearningHandler struct {
	learningService service.LearningService
	logger          *slog.Logger
}

// NewLearningHandler creates a new LearningHandler
func NewLearningHandler(learningService service.LearningService, log *slog.Logger) *LearningHandler {
	if log == nil {
		log = slog.Default()
	}
	return &LearningHandler{
		learningService: learningService,
		logger:          log.With(slog.String("component", "learning_handler")),
	}
}

// RegisterRoutes mounts the handler's endpoints on r.
func (h *LearningHandler) RegisterRoutes(r chi.Router) {
	r.Post("/users", h.RegisterUser)
	r.Route("/users/{id}", func(r chi.Router) {
		r.Get("/", h.GetUser)
		r.Get("/dashboard", h.Dashboard)
		r.Post("/lessons", h.GenerateLesson)
		r.Get("/lessons", h.ListLessons)
		r.Get("/progress", h.ListProgress)
	})
	r.Route("/lessons/{id}", func(r chi.Router) {
		r.Get("/", h.GetLesson)
		r.Post("/feedback", h.SubmitFeedback)
		r.Post("/complete", h.CompleteLesson)
	})
}

// decodeAndValidate reads a JSON body into req and validates it. It writes
// the error response itself and reports whether the handler may continue.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}, optional bool) bool {
	err := shared.DecodeJSON(w, r, req)
	switch {
	case err == nil:
	case errors.Is(err, shared.ErrEmptyBody) && optional:
	case errors.Is(err, shared.ErrEmptyBody):
		HandleAPIError(w, r, err, "")
		return false
	default:
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return false
	}

	if err := shared.ValidateRequest(req); err != nil {
		HandleAPIError(w, r, err, "")
		return false
	}
	return true
}

// RegisterUser handles POST /api/users. A new user answers 201; an existing
// email updates the profile and answers 200.
func (h *LearningHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req RegisterUserRequest
	if !decodeAndValidate(w, r, &req, false) {
		return
	}

	level := domain.Level(req.Level)
	if level == "" {
		level = domain.LevelBeginner
	}

	user, created, err := h.learningService.RegisterUser(
		r.Context(), req.Name, req.Email, domain.Specialization(req.Specialization), level)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to register user")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	shared.RespondWithJSON(w, r, status, RegisterUserResponse{
		UserResponse: userToResponse(user),
		Created:      created,
	})
}

// GetUser handles GET /api/users/{id}.
func (h *LearningHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	user, err := h.learningService.GetUser(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to retrieve user")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// Dashboard handles GET /api/users/{id}/dashboard.
func (h *LearningHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	dashboard, err := h.learningService.Dashboard(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load dashboard")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, dashboardToResponse(dashboard))
}

// GenerateLesson handles POST /api/users/{id}/lessons. The body is optional.
// Generation never fails for provider reasons; the response's provenance
// says where the content came from.
func (h *LearningHandler) GenerateLesson(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req GenerateLessonRequest
	if !decodeAndValidate(w, r, &req, true) {
		return
	}

	l, err := h.learningService.GenerateLesson(r.Context(), userID, req.Topic)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to generate lesson")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Debug("lesson served",
		slog.String("lesson_id", l.ID.String()),
		slog.String("provenance", string(l.Provenance)))
	shared.RespondWithJSON(w, r, http.StatusCreated, lessonToResponse(l))
}

// ListLessons handles GET /api/users/{id}/lessons.
func (h *LearningHandler) ListLessons(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	lessons, err := h.learningService.ListLessons(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list lessons")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, lessonsToResponse(lessons))
}

// ListProgress handles GET /api/users/{id}/progress.
func (h *LearningHandler) ListProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	progress, err := h.learningService.ListProgress(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list progress")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, progressToResponse(progress))
}

// GetLesson handles GET /api/lessons/{id}.
func (h *LearningHandler) GetLesson(w http.ResponseWriter, r *http.Request) {
	lessonID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	l, err := h.learningService.GetLesson(r.Context(), lessonID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to retrieve lesson")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, lessonToResponse(l))
}

// SubmitFeedback handles POST /api/lessons/{id}/feedback.
func (h *LearningHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	lessonID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req FeedbackRequest
	if !decodeAndValidate(w, r, &req, false) {
		return
	}

	result, err := h.learningService.SubmitFeedback(r.Context(), lessonID, domain.FeedbackType(req.FeedbackType))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to submit feedback")
		return
	}

	resp := FeedbackResponse{
		FeedbackID: result.Feedback.ID,
		Outcome:    result.Outcome,
	}
	if result.Alternative != nil {
		alt := lessonToResponse(result.Alternative)
		resp.Alternative = &alt
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// CompleteLesson handles POST /api/lessons/{id}/complete. Completing an
// already completed lesson answers 200 with already_completed set.
func (h *LearningHandler) CompleteLesson(w http.ResponseWriter, r *http.Request) {
	lessonID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	result, err := h.learningService.CompleteLesson(r.Context(), lessonID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to complete lesson")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, CompletionResponse{
		Lesson:           lessonToResponse(result.Lesson),
		AlreadyCompleted: result.AlreadyCompleted,
	})
}
