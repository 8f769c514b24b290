package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	authMiddleware "github.com/israkkayum/lms-server-side/internal/auth/middleware"
	authService "github.com/israkkayum/lms-server-side/internal/auth/service"
	"github.com/israkkayum/lms-server-side/internal/models"
)

// ContentService is the interface that wraps methods for lesson content operations
type ContentService interface {
	// CreateContent attaches typed content to a lesson
	CreateContent(ctx context.Context, lessonID int, contentType models.ContentType, payload json.RawMessage) (*models.Content, error)
	// GetLessonContent retrieves a lesson's content, stripped for students
	GetLessonContent(ctx context.Context, lessonID int, instructor bool) (*models.Content, error)
	// UpdateContent replaces a lesson content's payload
	UpdateContent(ctx context.Context, lessonID int, payload json.RawMessage) error
	// DeleteContent removes a lesson's content
	DeleteContent(ctx context.Context, lessonID int) error
	// DownloadResourceFile returns a resource file and records the lesson completion
	DownloadResourceFile(ctx context.Context, lessonID, fileIndex int, email string) (*models.ResourceFile, error)
}

// ContentHandler handles HTTP requests for lesson content operations
type ContentHandler struct {
	BaseHandler
	service ContentService
}

// NewContentHandler creates a new content handler
func NewContentHandler(svc ContentService, logger *zap.Logger) *ContentHandler {
	return &ContentHandler{
		service:     svc,
		BaseHandler: NewBaseHandler(logger),
	}
}

const contentPath = "/course/{courseId}/section/{sectionId}/lesson/{lessonId}/content"

// RegisterRoutes registers all content handler routes
func (h *ContentHandler) RegisterRoutes(r chi.Router, auth func(http.Handler) http.Handler, instructor func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(auth)
		r.Get(contentPath, h.GetContent)
		r.Get(contentPath+"/resource/{fileIndex}/download", h.DownloadResourceFile)
	})
	r.Group(func(r chi.Router) {
		r.Use(auth, instructor)
		r.Post(contentPath+"/video", h.createTyped(models.ContentTypeVideo))
		r.Post(contentPath+"/article", h.createTyped(models.ContentTypeArticle))
		r.Post(contentPath+"/quiz", h.createTyped(models.ContentTypeQuiz))
		r.Post(contentPath+"/resource", h.createTyped(models.ContentTypeResource))
		r.Post(contentPath+"/assignment", h.createTyped(models.ContentTypeAssignment))
		r.Patch(contentPath, h.UpdateContent)
		r.Delete(contentPath, h.DeleteContent)
	})
}

// createTyped builds a POST handler that attaches content of a fixed type
// @Summary Attach content to a lesson
// @Description Attach a typed content payload to a lesson; a lesson holds at most one content item
// @Tags content
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "Course ID"
// @Param sectionId path int true "Section ID"
// @Param lessonId path int true "Lesson ID"
// @Param payload body object true "Content payload for the type"
// @Success 201 {object} models.Content "Created content"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Failure 409 {object} map[string]string "Lesson already has content"
// @Failure 422 {object} map[string]string "Invalid payload"
// @Router /course/{courseId}/section/{sectionId}/lesson/{lessonId}/content/{type} [post]
func (h *ContentHandler) createTyped(contentType models.ContentType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lessonID, ok := h.pathInt(w, r, "lessonId")
		if !ok {
			return
		}

		var payload json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			h.RespondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		content, err := h.service.CreateContent(r.Context(), lessonID, contentType, payload)
		if err != nil {
			h.RespondServiceError(w, err)
			return
		}

		h.RespondJSON(w, http.StatusCreated, content)
	}
}

// GetContent handles GET /course/{courseId}/section/{sectionId}/lesson/{lessonId}/content
// @Summary Get a lesson's content
// @Description Get the content attached to a lesson; quiz answers are hidden from students
// @Tags content
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "Course ID"
// @Param sectionId path int true "Section ID"
// @Param lessonId path int true "Lesson ID"
// @Success 200 {object} models.Content "Lesson content"
// @Failure 404 {object} map[string]string "Content not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /course/{courseId}/section/{sectionId}/lesson/{lessonId}/content [get]
func (h *ContentHandler) GetContent(w http.ResponseWriter, r *http.Request) {
	lessonID, ok := h.pathInt(w, r, "lessonId")
	if !ok {
		return
	}

	role, _ := authMiddleware.GetUserRole(r.Context())
	instructor := role >= authService.RoleInstructor

	content, err := h.service.GetLessonContent(r.Context(), lessonID, instructor)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, content)
}

// UpdateContent handles PATCH /course/{courseId}/section/{sectionId}/lesson/{lessonId}/content
// @Summary Update a lesson's content payload
// @Description Replace the payload of a lesson's content; the content type cannot change
// @Tags content
// @Accept json
// @Security ApiKeyAuth
// @Param courseId path int true "Course ID"
// @Param sectionId path int true "Section ID"
// @Param lessonId path int true "Lesson ID"
// @Param payload body object true "New payload"
// @Success 204 "Updated"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 404 {object} map[string]string "Content not found"
// @Failure 422 {object} map[string]string "Invalid payload"
// @Router /course/{courseId}/section/{sectionId}/lesson/{lessonId}/content [patch]
func (h *ContentHandler) UpdateContent(w http.ResponseWriter, r *http.Request) {
	lessonID, ok := h.pathInt(w, r, "lessonId")
	if !ok {
		return
	}

	var payload json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.UpdateContent(r.Context(), lessonID, payload); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteContent handles DELETE /course/{courseId}/section/{sectionId}/lesson/{lessonId}/content
// @Summary Delete a lesson's content
// @Tags content
// @Security ApiKeyAuth
// @Param courseId path int true "Course ID"
// @Param sectionId path int true "Section ID"
// @Param lessonId path int true "Lesson ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Content not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /course/{courseId}/section/{sectionId}/lesson/{lessonId}/content [delete]
func (h *ContentHandler) DeleteContent(w http.ResponseWriter, r *http.Request) {
	lessonID, ok := h.pathInt(w, r, "lessonId")
	if !ok {
		return
	}

	if err := h.service.DeleteContent(r.Context(), lessonID); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DownloadResourceFile handles GET .../content/resource/{fileIndex}/download
// @Summary Download a resource file
// @Description Download one file from a lesson's resource content; the first download completes the lesson
// @Tags content
// @Produce octet-stream
// @Security ApiKeyAuth
// @Param courseId path int true "Course ID"
// @Param sectionId path int true "Section ID"
// @Param lessonId path int true "Lesson ID"
// @Param fileIndex path int true "Index of the file within the resource"
// @Success 200 {file} binary "File content"
// @Failure 404 {object} map[string]string "File not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /course/{courseId}/section/{sectionId}/lesson/{lessonId}/content/resource/{fileIndex}/download [get]
func (h *ContentHandler) DownloadResourceFile(w http.ResponseWriter, r *http.Request) {
	lessonID, ok := h.pathInt(w, r, "lessonId")
	if !ok {
		return
	}
	fileIndex, ok := h.pathInt(w, r, "fileIndex")
	if !ok {
		return
	}
	email, ok := h.userEmail(w, r)
	if !ok {
		return
	}

	file, err := h.service.DownloadResourceFile(r.Context(), lessonID, fileIndex, email)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	data, err := base64.StdEncoding.DecodeString(file.Data)
	if err != nil {
		h.Logger.Error("failed to decode resource file", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to decode resource file")
		return
	}

	w.Header().Set("Content-Type", file.Mimetype)
	w.Header().Set("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	w.Write(data)
}
