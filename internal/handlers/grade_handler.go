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

// GradeService is the interface that wraps methods for grade rollup operations
type GradeService interface {
	// GetCourseGrades builds a user's grade report for a course
	GetCourseGrades(ctx context.Context, courseID int, email string) (*models.CourseGrades, error)
	// GetAllGrades builds grade reports for every course the user is enrolled in
	GetAllGrades(ctx context.Context, email string) ([]models.CourseGrades, error)
}

// GradeHandler handles HTTP requests for grade rollup operations
type GradeHandler struct {
	BaseHandler
	service GradeService
}

// NewGradeHandler creates a new grade handler
func NewGradeHandler(svc GradeService, logger *zap.Logger) *GradeHandler {
	return &GradeHandler{
		service:     svc,
		BaseHandler: NewBaseHandler(logger),
	}
}

// RegisterRoutes registers all grade handler routes
func (h *GradeHandler) RegisterRoutes(r chi.Router, auth func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(auth)
		r.Get("/grades", h.GetAllGrades)
		r.Get("/grades/{courseId}", h.GetCourseGrades)
	})
}

// GetCourseGrades handles GET /grades/{courseId}
// @Summary Get course grades
// @Description Get a user's assignment and quiz grades for a course with the overall grade
// @Tags grades
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "Course ID"
// @Param email query string false "User email (instructors only; defaults to the caller)"
// @Success 200 {object} models.CourseGrades "Grade report"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /grades/{courseId} [get]
func (h *GradeHandler) GetCourseGrades(w http.ResponseWriter, r *http.Request) {
	courseID, ok := h.pathInt(w, r, "courseId")
	if !ok {
		return
	}
	email, ok := h.targetEmail(w, r)
	if !ok {
		return
	}

	grades, err := h.service.GetCourseGrades(r.Context(), courseID, email)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, grades)
}

// GetAllGrades handles GET /grades
// @Summary Get all grades
// @Description Get grade reports for every course the user is enrolled in
// @Tags grades
// @Produce json
// @Security ApiKeyAuth
// @Param email query string false "User email (instructors only; defaults to the caller)"
// @Success 200 {array} models.CourseGrades "Grade reports"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /grades [get]
func (h *GradeHandler) GetAllGrades(w http.ResponseWriter, r *http.Request) {
	email, ok := h.targetEmail(w, r)
	if !ok {
		return
	}

	grades, err := h.service.GetAllGrades(r.Context(), email)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, grades)
}

// targetEmail resolves whose grades to report. The email query parameter is
// honored for instructors; everyone else gets their own.
func (h *GradeHandler) targetEmail(w http.ResponseWriter, r *http.Request) (string, bool) {
	callerEmail, ok := h.userEmail(w, r)
	if !ok {
		return "", false
	}

	email := r.URL.Query().Get("email")
	if email == "" || email == callerEmail {
		return callerEmail, true
	}

	role, _ := authMiddleware.GetUserRole(r.Context())
	if role < authService.RoleInstructor {
		h.RespondError(w, http.StatusForbidden, "cannot view another user's grades")
		return "", false
	}
	return email, true
}
