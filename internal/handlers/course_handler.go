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

// CourseService is the interface that wraps methods for course operations
type CourseService interface {
	// GetCourse retrieves a course with its full section/lesson/content tree.
	// When instructor is false, quiz payloads are stripped of correct answers.
	GetCourse(ctx context.Context, courseID int, instructor bool) (*models.CourseDetail, error)
	// GetCoursesBySite retrieves all courses for a site
	GetCoursesBySite(ctx context.Context, siteID int) ([]models.CourseListItem, error)
	// CreateCourse creates a new course owned by the given user
	CreateCourse(ctx context.Context, req *models.CreateCourseRequest, createdBy string) (*models.Course, error)
	// UpdateCourse updates a course owned by the given user
	UpdateCourse(ctx context.Context, courseID int, req *models.UpdateCourseRequest, email string) error
	// DeleteCourse deletes a course owned by the given user
	DeleteCourse(ctx context.Context, courseID int, email string) error
	// AddSection appends a section to a course
	AddSection(ctx context.Context, courseID int, title string) (*models.Section, error)
	// UpdateSection renames a section
	UpdateSection(ctx context.Context, sectionID int, title string) error
	// DeleteSection removes a section and its lessons
	DeleteSection(ctx context.Context, sectionID int) error
	// AddLesson appends a lesson to a section
	AddLesson(ctx context.Context, sectionID int, name string) (*models.Lesson, error)
	// UpdateLesson renames a lesson
	UpdateLesson(ctx context.Context, lessonID int, name string) error
	// DeleteLesson removes a lesson
	DeleteLesson(ctx context.Context, lessonID int) error
}

// CourseHandler handles HTTP requests for course operations
type CourseHandler struct {
	BaseHandler
	service CourseService
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(svc CourseService, logger *zap.Logger) *CourseHandler {
	return &CourseHandler{
		service:     svc,
		BaseHandler: NewBaseHandler(logger),
	}
}

// RegisterRoutes registers all course handler routes
func (h *CourseHandler) RegisterRoutes(r chi.Router, auth func(http.Handler) http.Handler, instructor func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(auth)
		r.Get("/course/{courseId}", h.GetCourse)
		r.Get("/courses/{siteId}", h.GetCoursesBySite)
	})
	r.Group(func(r chi.Router) {
		r.Use(auth, instructor)
		r.Post("/course", h.CreateCourse)
		r.Patch("/course/{courseId}", h.UpdateCourse)
		r.Delete("/course/{courseId}", h.DeleteCourse)

		r.Post("/course/{courseId}/section", h.AddSection)
		r.Patch("/course/{courseId}/section/{sectionId}", h.UpdateSection)
		r.Delete("/course/{courseId}/section/{sectionId}", h.DeleteSection)

		r.Post("/course/{courseId}/section/{sectionId}/lesson", h.AddLesson)
		r.Patch("/course/{courseId}/section/{sectionId}/lesson/{lessonId}", h.UpdateLesson)
		r.Delete("/course/{courseId}/section/{sectionId}/lesson/{lessonId}", h.DeleteLesson)
	})
}

// GetCourse handles GET /course/{courseId}
// @Summary Get a course
// @Description Get a course with its full section, lesson, and content tree
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "Course ID"
// @Success 200 {object} models.CourseDetail "Course with sections and lessons"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /course/{courseId} [get]
func (h *CourseHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	courseID, ok := h.pathInt(w, r, "courseId")
	if !ok {
		return
	}

	role, _ := authMiddleware.GetUserRole(r.Context())
	instructor := role >= authService.RoleInstructor

	course, err := h.service.GetCourse(r.Context(), courseID, instructor)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, course)
}

// GetCoursesBySite handles GET /courses/{siteId}
// @Summary List courses in a site
// @Description Get all courses of a site with their lesson counts
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Param siteId path int true "Site ID"
// @Success 200 {array} models.CourseListItem "List of courses"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /courses/{siteId} [get]
func (h *CourseHandler) GetCoursesBySite(w http.ResponseWriter, r *http.Request) {
	siteID, ok := h.pathInt(w, r, "siteId")
	if !ok {
		return
	}

	courses, err := h.service.GetCoursesBySite(r.Context(), siteID)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, courses)
}

// CreateCourse handles POST /course
// @Summary Create a course
// @Description Create a new course in a site
// @Tags courses
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.CreateCourseRequest true "Course data"
// @Success 201 {object} models.Course "Created course"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /course [post]
func (h *CourseHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	email, ok := h.userEmail(w, r)
	if !ok {
		return
	}

	var req models.CreateCourseRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	course, err := h.service.CreateCourse(r.Context(), &req, email)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, course)
}

// UpdateCourse handles PATCH /course/{courseId}
// @Summary Update a course
// @Description Update a course's fields; only the owner may update
// @Tags courses
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "Course ID"
// @Param request body models.UpdateCourseRequest true "Fields to update"
// @Success 204 "Updated"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /course/{courseId} [patch]
func (h *CourseHandler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	courseID, ok := h.pathInt(w, r, "courseId")
	if !ok {
		return
	}
	email, ok := h.userEmail(w, r)
	if !ok {
		return
	}

	var req models.UpdateCourseRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.service.UpdateCourse(r.Context(), courseID, &req, email); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteCourse handles DELETE /course/{courseId}
// @Summary Delete a course
// @Description Delete a course and everything under it; only the owner may delete
// @Tags courses
// @Security ApiKeyAuth
// @Param courseId path int true "Course ID"
// @Success 204 "Deleted"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /course/{courseId} [delete]
func (h *CourseHandler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	courseID, ok := h.pathInt(w, r, "courseId")
	if !ok {
		return
	}
	email, ok := h.userEmail(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteCourse(r.Context(), courseID, email); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddSection handles POST /course/{courseId}/section
// @Summary Add a section
// @Description Append a new section to the end of a course
// @Tags courses
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "Course ID"
// @Param request body models.CreateSectionRequest true "Section data"
// @Success 201 {object} models.Section "Created section"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /course/{courseId}/section [post]
func (h *CourseHandler) AddSection(w http.ResponseWriter, r *http.Request) {
	courseID, ok := h.pathInt(w, r, "courseId")
	if !ok {
		return
	}

	var req models.CreateSectionRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	section, err := h.service.AddSection(r.Context(), courseID, req.Title)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, section)
}

// UpdateSection handles PATCH /course/{courseId}/section/{sectionId}
// @Summary Rename a section
// @Tags courses
// @Accept json
// @Security ApiKeyAuth
// @Param courseId path int true "Course ID"
// @Param sectionId path int true "Section ID"
// @Param request body models.CreateSectionRequest true "New title"
// @Success 204 "Updated"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 404 {object} map[string]string "Section not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /course/{courseId}/section/{sectionId} [patch]
func (h *CourseHandler) UpdateSection(w http.ResponseWriter, r *http.Request) {
	sectionID, ok := h.pathInt(w, r, "sectionId")
	if !ok {
		return
	}

	var req models.CreateSectionRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.service.UpdateSection(r.Context(), sectionID, req.Title); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteSection handles DELETE /course/{courseId}/section/{sectionId}
// @Summary Delete a section
// @Description Delete a section and its lessons
// @Tags courses
// @Security ApiKeyAuth
// @Param courseId path int true "Course ID"
// @Param sectionId path int true "Section ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Section not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /course/{courseId}/section/{sectionId} [delete]
func (h *CourseHandler) DeleteSection(w http.ResponseWriter, r *http.Request) {
	sectionID, ok := h.pathInt(w, r, "sectionId")
	if !ok {
		return
	}

	if err := h.service.DeleteSection(r.Context(), sectionID); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddLesson handles POST /course/{courseId}/section/{sectionId}/lesson
// @Summary Add a lesson
// @Description Append a new lesson to the end of a section
// @Tags courses
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "Course ID"
// @Param sectionId path int true "Section ID"
// @Param request body models.CreateLessonRequest true "Lesson data"
// @Success 201 {object} models.Lesson "Created lesson"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 404 {object} map[string]string "Section not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /course/{courseId}/section/{sectionId}/lesson [post]
func (h *CourseHandler) AddLesson(w http.ResponseWriter, r *http.Request) {
	sectionID, ok := h.pathInt(w, r, "sectionId")
	if !ok {
		return
	}

	var req models.CreateLessonRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	lesson, err := h.service.AddLesson(r.Context(), sectionID, req.Name)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, lesson)
}

// UpdateLesson handles PATCH /course/{courseId}/section/{sectionId}/lesson/{lessonId}
// @Summary Rename a lesson
// @Tags courses
// @Accept json
// @Security ApiKeyAuth
// @Param courseId path int true "Course ID"
// @Param sectionId path int true "Section ID"
// @Param lessonId path int true "Lesson ID"
// @Param request body models.CreateLessonRequest true "New name"
// @Success 204 "Updated"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /course/{courseId}/section/{sectionId}/lesson/{lessonId} [patch]
func (h *CourseHandler) UpdateLesson(w http.ResponseWriter, r *http.Request) {
	lessonID, ok := h.pathInt(w, r, "lessonId")
	if !ok {
		return
	}

	var req models.CreateLessonRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.service.UpdateLesson(r.Context(), lessonID, req.Name); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteLesson handles DELETE /course/{courseId}/section/{sectionId}/lesson/{lessonId}
// @Summary Delete a lesson
// @Tags courses
// @Security ApiKeyAuth
// @Param courseId path int true "Course ID"
// @Param sectionId path int true "Section ID"
// @Param lessonId path int true "Lesson ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /course/{courseId}/section/{sectionId}/lesson/{lessonId} [delete]
func (h *CourseHandler) DeleteLesson(w http.ResponseWriter, r *http.Request) {
	lessonID, ok := h.pathInt(w, r, "lessonId")
	if !ok {
		return
	}

	if err := h.service.DeleteLesson(r.Context(), lessonID); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
