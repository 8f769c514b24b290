package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	authMiddleware "github.com/israkkayum/lms-server-side/internal/auth/middleware"
	authService "github.com/israkkayum/lms-server-side/internal/auth/service"
	"github.com/israkkayum/lms-server-side/internal/models"
)

// ProgressService is the interface that wraps methods for progress and enrollment operations
type ProgressService interface {
	// GetProgress reports a user's completion state for a course
	GetProgress(ctx context.Context, courseID int, email string) (*models.Progress, error)
	// MarkLessonComplete records an explicit lesson completion
	MarkLessonComplete(ctx context.Context, courseID, lessonID int, email string) error
	// Enroll enrolls a user in a course
	Enroll(ctx context.Context, courseID int, email string) error
	// Unenroll removes a user's enrollment
	Unenroll(ctx context.Context, courseID int, email string) error
	// IsEnrolled checks if a user is enrolled in a course
	IsEnrolled(ctx context.Context, courseID int, email string) (bool, error)
	// GetRoster retrieves all enrollments in a course
	GetRoster(ctx context.Context, courseID int) ([]models.Enrollment, error)
}

// ProgressHandler handles HTTP requests for progress and enrollment operations
type ProgressHandler struct {
	BaseHandler
	service ProgressService
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(svc ProgressService, logger *zap.Logger) *ProgressHandler {
	return &ProgressHandler{
		service:     svc,
		BaseHandler: NewBaseHandler(logger),
	}
}

// RegisterRoutes registers all progress handler routes
func (h *ProgressHandler) RegisterRoutes(r chi.Router, auth, apiKey func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(auth)
		r.Get("/course-progress/{courseId}/{email}", h.GetProgress)
		r.Post("/course-progress/{courseId}/lesson/{lessonId}/complete", h.MarkLessonComplete)

		r.Get("/enrollments/{courseId}", h.GetEnrollment)
		r.Post("/enrollments/{courseId}", h.Enroll)
		r.Delete("/enrollments/{courseId}", h.Unenroll)
	})

	// Roster endpoint for other services, keyed by X-API-Key instead of a user token
	r.Group(func(r chi.Router) {
		r.Use(apiKey)
		r.Get("/service/course-roster/{courseId}", h.GetRoster)
	})
}

// GetProgress handles GET /course-progress/{courseId}/{email}
// @Summary Get course progress
// @Description Get a user's completed lessons and completion percentage for a course
// @Tags progress
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "Course ID"
// @Param email path string true "User email"
// @Success 200 {object} models.Progress "Progress report"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /course-progress/{courseId}/{email} [get]
func (h *ProgressHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	courseID, ok := h.pathInt(w, r, "courseId")
	if !ok {
		return
	}
	email := chi.URLParam(r, "email")
	if email == "" {
		h.RespondError(w, http.StatusBadRequest, "email is required")
		return
	}

	// Students may only see their own progress
	if !h.allowForEmail(w, r, email) {
		return
	}

	progress, err := h.service.GetProgress(r.Context(), courseID, email)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, progress)
}

// MarkLessonComplete handles POST /course-progress/{courseId}/lesson/{lessonId}/complete
// @Summary Mark a lesson complete
// @Description Record a lesson completion for the authenticated user; idempotent
// @Tags progress
// @Security ApiKeyAuth
// @Param courseId path int true "Course ID"
// @Param lessonId path int true "Lesson ID"
// @Success 204 "Marked"
// @Failure 404 {object} map[string]string "Lesson not found in course"
// @Failure 422 {object} map[string]string "Lesson completes through submission"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /course-progress/{courseId}/lesson/{lessonId}/complete [post]
func (h *ProgressHandler) MarkLessonComplete(w http.ResponseWriter, r *http.Request) {
	courseID, ok := h.pathInt(w, r, "courseId")
	if !ok {
		return
	}
	lessonID, ok := h.pathInt(w, r, "lessonId")
	if !ok {
		return
	}
	email, ok := h.userEmail(w, r)
	if !ok {
		return
	}

	if err := h.service.MarkLessonComplete(r.Context(), courseID, lessonID, email); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetEnrollment handles GET /enrollments/{courseId}
// @Summary Check enrollment
// @Description Check if the authenticated user is enrolled in a course
// @Tags progress
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "Course ID"
// @Success 200 {object} map[string]bool "Enrollment status"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /enrollments/{courseId} [get]
func (h *ProgressHandler) GetEnrollment(w http.ResponseWriter, r *http.Request) {
	courseID, ok := h.pathInt(w, r, "courseId")
	if !ok {
		return
	}
	email, ok := h.userEmail(w, r)
	if !ok {
		return
	}

	enrolled, err := h.service.IsEnrolled(r.Context(), courseID, email)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]bool{"enrolled": enrolled})
}

// Enroll handles POST /enrollments/{courseId}
// @Summary Enroll in a course
// @Description Enroll the authenticated user in a course; idempotent
// @Tags progress
// @Security ApiKeyAuth
// @Param courseId path int true "Course ID"
// @Success 204 "Enrolled"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /enrollments/{courseId} [post]
func (h *ProgressHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	courseID, ok := h.pathInt(w, r, "courseId")
	if !ok {
		return
	}
	email, ok := h.userEmail(w, r)
	if !ok {
		return
	}

	if err := h.service.Enroll(r.Context(), courseID, email); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Unenroll handles DELETE /enrollments/{courseId}
// @Summary Leave a course
// @Description Remove the authenticated user's enrollment from a course
// @Tags progress
// @Security ApiKeyAuth
// @Param courseId path int true "Course ID"
// @Success 204 "Unenrolled"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /enrollments/{courseId} [delete]
func (h *ProgressHandler) Unenroll(w http.ResponseWriter, r *http.Request) {
	courseID, ok := h.pathInt(w, r, "courseId")
	if !ok {
		return
	}
	email, ok := h.userEmail(w, r)
	if !ok {
		return
	}

	if err := h.service.Unenroll(r.Context(), courseID, email); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetRoster handles GET /service/course-roster/{courseId}
// @Summary Get a course roster
// @Description Get all enrollments in a course; service-to-service endpoint authenticated by X-API-Key
// @Tags progress
// @Produce json
// @Param courseId path int true "Course ID"
// @Success 200 {array} models.Enrollment "Enrollments"
// @Failure 401 {object} map[string]string "Invalid or missing API key"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /service/course-roster/{courseId} [get]
func (h *ProgressHandler) GetRoster(w http.ResponseWriter, r *http.Request) {
	courseID, ok := h.pathInt(w, r, "courseId")
	if !ok {
		return
	}

	roster, err := h.service.GetRoster(r.Context(), courseID)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, roster)
}

// allowForEmail checks that the authenticated user either is the given user
// or holds the instructor role, responding with 403 otherwise
func (h *ProgressHandler) allowForEmail(w http.ResponseWriter, r *http.Request, email string) bool {
	callerEmail, ok := h.userEmail(w, r)
	if !ok {
		return false
	}
	if callerEmail == email {
		return true
	}

	role, _ := authMiddleware.GetUserRole(r.Context())
	if role >= authService.RoleInstructor {
		return true
	}

	h.RespondError(w, http.StatusForbidden, "cannot view another user's progress")
	return false
}
