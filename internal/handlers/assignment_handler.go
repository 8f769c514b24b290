package handlers

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/israkkayum/lms-server-side/internal/models"
	"github.com/israkkayum/lms-server-side/internal/policy"
)

// AssignmentService is the interface that wraps methods for assignment submission operations
type AssignmentService interface {
	// Submit validates and stores a submission file and records it
	Submit(ctx context.Context, req *models.SubmitAssignmentRequest, file io.Reader) (*models.AssignmentSubmission, error)
	// GetSubmission retrieves a user's submission for an assignment
	GetSubmission(ctx context.Context, assignmentID, email string) (*models.AssignmentSubmission, error)
	// ListSubmissions retrieves all submissions for an assignment
	ListSubmissions(ctx context.Context, assignmentID string, courseID int, email string) ([]models.AssignmentSubmission, error)
	// Mark grades a submission, at most once
	Mark(ctx context.Context, submissionID int, req *models.MarkSubmissionRequest, email string) error
	// Download opens a submission's stored file for reading
	Download(ctx context.Context, submissionID int, email string) (*models.AssignmentSubmission, io.ReadCloser, error)
}

// AssignmentHandler handles HTTP requests for assignment submission operations
type AssignmentHandler struct {
	BaseHandler
	service AssignmentService
}

// NewAssignmentHandler creates a new assignment handler
func NewAssignmentHandler(svc AssignmentService, logger *zap.Logger) *AssignmentHandler {
	return &AssignmentHandler{
		service:     svc,
		BaseHandler: NewBaseHandler(logger),
	}
}

// RegisterRoutes registers all assignment handler routes
func (h *AssignmentHandler) RegisterRoutes(r chi.Router, auth func(http.Handler) http.Handler, instructor func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(auth)
		r.Post("/assignments/submit", h.Submit)
		r.Get("/assignments/{assignmentId}/submission", h.GetSubmission)
		r.Get("/assignments/submissions/{submissionId}/download", h.Download)
	})
	r.Group(func(r chi.Router) {
		r.Use(auth, instructor)
		r.Get("/assignments/{assignmentId}/submissions", h.ListSubmissions)
		r.Post("/assignments/{assignmentId}/submissions/{submissionId}/mark", h.Mark)
	})
}

// Submit handles POST /assignments/submit
// @Summary Submit an assignment
// @Description Upload a submission file for an assignment; an accepted submission completes the lesson
// @Tags assignments
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param assignmentId formData string true "Assignment ID"
// @Param courseId formData int true "Course ID"
// @Param lessonId formData int true "Lesson ID"
// @Param file formData file true "Submission file"
// @Success 201 {object} models.AssignmentSubmission "Recorded submission"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 409 {object} map[string]string "Already submitted"
// @Failure 422 {object} map[string]string "File rejected"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /assignments/submit [post]
func (h *AssignmentHandler) Submit(w http.ResponseWriter, r *http.Request) {
	email, ok := h.userEmail(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(policy.MaxSubmissionSize); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	courseID, err := strconv.Atoi(r.FormValue("courseId"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid courseId")
		return
	}
	lessonID, err := strconv.Atoi(r.FormValue("lessonId"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid lessonId")
		return
	}
	assignmentID := r.FormValue("assignmentId")
	if assignmentID == "" {
		h.RespondError(w, http.StatusBadRequest, "assignmentId is required")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	req := &models.SubmitAssignmentRequest{
		AssignmentID: assignmentID,
		CourseID:     courseID,
		LessonID:     lessonID,
		Email:        email,
		Filename:     header.Filename,
		Size:         header.Size,
	}

	submission, err := h.service.Submit(r.Context(), req, file)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, submission)
}

// GetSubmission handles GET /assignments/{assignmentId}/submission
// @Summary Get own submission
// @Description Get the authenticated user's submission for an assignment
// @Tags assignments
// @Produce json
// @Security ApiKeyAuth
// @Param assignmentId path string true "Assignment ID"
// @Success 200 {object} models.AssignmentSubmission "Submission"
// @Failure 404 {object} map[string]string "No submission"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /assignments/{assignmentId}/submission [get]
func (h *AssignmentHandler) GetSubmission(w http.ResponseWriter, r *http.Request) {
	email, ok := h.userEmail(w, r)
	if !ok {
		return
	}
	assignmentID := chi.URLParam(r, "assignmentId")

	submission, err := h.service.GetSubmission(r.Context(), assignmentID, email)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, submission)
}

// ListSubmissions handles GET /assignments/{assignmentId}/submissions
// @Summary List submissions
// @Description List all submissions for an assignment; restricted to the course owner
// @Tags assignments
// @Produce json
// @Security ApiKeyAuth
// @Param assignmentId path string true "Assignment ID"
// @Param courseId query int true "Course ID"
// @Success 200 {array} models.AssignmentSubmission "Submissions"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /assignments/{assignmentId}/submissions [get]
func (h *AssignmentHandler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	email, ok := h.userEmail(w, r)
	if !ok {
		return
	}
	assignmentID := chi.URLParam(r, "assignmentId")

	courseID, err := strconv.Atoi(r.URL.Query().Get("courseId"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid courseId")
		return
	}

	submissions, err := h.service.ListSubmissions(r.Context(), assignmentID, courseID, email)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, submissions)
}

// Mark handles POST /assignments/{assignmentId}/submissions/{submissionId}/mark
// @Summary Mark a submission
// @Description Grade a submission with a score and optional feedback; a submission is marked at most once
// @Tags assignments
// @Accept json
// @Security ApiKeyAuth
// @Param assignmentId path string true "Assignment ID"
// @Param submissionId path int true "Submission ID"
// @Param request body models.MarkSubmissionRequest true "Score and feedback"
// @Success 204 "Marked"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Submission not found"
// @Failure 409 {object} map[string]string "Already marked"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /assignments/{assignmentId}/submissions/{submissionId}/mark [post]
func (h *AssignmentHandler) Mark(w http.ResponseWriter, r *http.Request) {
	submissionID, ok := h.pathInt(w, r, "submissionId")
	if !ok {
		return
	}
	email, ok := h.userEmail(w, r)
	if !ok {
		return
	}

	var req models.MarkSubmissionRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.service.Mark(r.Context(), submissionID, &req, email); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Download handles GET /assignments/submissions/{submissionId}/download
// @Summary Download a submission file
// @Description Download a submission's stored file; students may only download their own
// @Tags assignments
// @Produce octet-stream
// @Security ApiKeyAuth
// @Param submissionId path int true "Submission ID"
// @Success 200 {file} binary "File content"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Submission not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /assignments/submissions/{submissionId}/download [get]
func (h *AssignmentHandler) Download(w http.ResponseWriter, r *http.Request) {
	submissionID, ok := h.pathInt(w, r, "submissionId")
	if !ok {
		return
	}
	email, ok := h.userEmail(w, r)
	if !ok {
		return
	}

	submission, file, err := h.service.Download(r.Context(), submissionID, email)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", `attachment; filename="`+submission.Filename+`"`)
	if _, err := io.Copy(w, file); err != nil {
		h.Logger.Error("failed to stream submission file", zap.Error(err))
	}
}
