package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/israkkayum/lms-server-side/internal/models"
)

// QuizService is the interface that wraps methods for quiz submission operations
type QuizService interface {
	// GetSubmission retrieves a user's submission for a quiz
	GetSubmission(ctx context.Context, quizID int, email string) (*models.QuizSubmission, error)
	// Submit grades a user's answers and records the submission
	Submit(ctx context.Context, quizID int, email string, answers map[int]int) (*models.QuizResult, error)
	// Retake withdraws a failed submission so the quiz can be taken again
	Retake(ctx context.Context, quizID int, email string) error
}

// QuizHandler handles HTTP requests for quiz submission operations
type QuizHandler struct {
	BaseHandler
	service QuizService
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(svc QuizService, logger *zap.Logger) *QuizHandler {
	return &QuizHandler{
		service:     svc,
		BaseHandler: NewBaseHandler(logger),
	}
}

// RegisterRoutes registers all quiz handler routes
func (h *QuizHandler) RegisterRoutes(r chi.Router, auth func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(auth)
		r.Get("/quiz-submissions/{quizId}/{email}", h.GetSubmission)
		r.Post("/quiz-submissions/{quizId}", h.Submit)
		r.Delete("/quiz-submissions/{quizId}", h.Retake)
	})
}

// GetSubmission handles GET /quiz-submissions/{quizId}/{email}
// @Summary Get a quiz submission
// @Description Get a user's graded submission for a quiz
// @Tags quizzes
// @Produce json
// @Security ApiKeyAuth
// @Param quizId path int true "Quiz content ID"
// @Param email path string true "User email"
// @Success 200 {object} models.QuizSubmission "Submission with score"
// @Failure 404 {object} map[string]string "No submission"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /quiz-submissions/{quizId}/{email} [get]
func (h *QuizHandler) GetSubmission(w http.ResponseWriter, r *http.Request) {
	quizID, ok := h.pathInt(w, r, "quizId")
	if !ok {
		return
	}
	email := chi.URLParam(r, "email")
	if email == "" {
		h.RespondError(w, http.StatusBadRequest, "email is required")
		return
	}

	submission, err := h.service.GetSubmission(r.Context(), quizID, email)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, submission)
}

// Submit handles POST /quiz-submissions/{quizId}
// @Summary Submit a quiz
// @Description Grade the authenticated user's answers and record the submission; a passing score completes the lesson
// @Tags quizzes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param quizId path int true "Quiz content ID"
// @Param request body models.SubmitQuizRequest true "Chosen answers"
// @Success 201 {object} models.QuizResult "Grading result"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 404 {object} map[string]string "Quiz not found"
// @Failure 409 {object} map[string]string "Already submitted"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /quiz-submissions/{quizId} [post]
func (h *QuizHandler) Submit(w http.ResponseWriter, r *http.Request) {
	quizID, ok := h.pathInt(w, r, "quizId")
	if !ok {
		return
	}
	email, ok := h.userEmail(w, r)
	if !ok {
		return
	}

	var req models.SubmitQuizRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.service.Submit(r.Context(), quizID, email, req.Answers)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, result)
}

// Retake handles DELETE /quiz-submissions/{quizId}
// @Summary Retake a quiz
// @Description Withdraw the authenticated user's failed submission; passing submissions are final
// @Tags quizzes
// @Security ApiKeyAuth
// @Param quizId path int true "Quiz content ID"
// @Success 204 "Withdrawn"
// @Failure 404 {object} map[string]string "No submission"
// @Failure 409 {object} map[string]string "Passed quiz cannot be retaken"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /quiz-submissions/{quizId} [delete]
func (h *QuizHandler) Retake(w http.ResponseWriter, r *http.Request) {
	quizID, ok := h.pathInt(w, r, "quizId")
	if !ok {
		return
	}
	email, ok := h.userEmail(w, r)
	if !ok {
		return
	}

	if err := h.service.Retake(r.Context(), quizID, email); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
