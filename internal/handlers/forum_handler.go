package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/israkkayum/lms-server-side/internal/models"
)

// ForumService is the interface that wraps methods for forum operations
type ForumService interface {
	// GetTopics retrieves all topics for a site
	GetTopics(ctx context.Context, siteID int) ([]models.ForumTopic, error)
	// GetTopic retrieves a topic with its replies
	GetTopic(ctx context.Context, id int) (*models.ForumTopic, []models.ForumReply, error)
	// CreateTopic opens a new discussion topic
	CreateTopic(ctx context.Context, req *models.CreateForumTopicRequest, author string) (*models.ForumTopic, error)
	// DeleteTopic deletes a topic authored by the given user
	DeleteTopic(ctx context.Context, id int, email string) error
	// CreateReply adds a reply to a topic
	CreateReply(ctx context.Context, req *models.CreateForumReplyRequest, author string) (*models.ForumReply, error)
	// DeleteReply deletes a reply authored by the given user
	DeleteReply(ctx context.Context, id int, topicID int, email string) error
}

// ForumHandler handles HTTP requests for forum operations
type ForumHandler struct {
	BaseHandler
	service ForumService
}

// NewForumHandler creates a new forum handler
func NewForumHandler(svc ForumService, logger *zap.Logger) *ForumHandler {
	return &ForumHandler{
		service:     svc,
		BaseHandler: NewBaseHandler(logger),
	}
}

// RegisterRoutes registers all forum handler routes
func (h *ForumHandler) RegisterRoutes(r chi.Router, auth func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(auth)
		r.Get("/forum-topics/{siteId}", h.GetTopics)
		r.Get("/forum-topics/topic/{topicId}", h.GetTopic)
		r.Post("/forum-topics", h.CreateTopic)
		r.Delete("/forum-topics/topic/{topicId}", h.DeleteTopic)
		r.Post("/forum-replies", h.CreateReply)
		r.Delete("/forum-topics/topic/{topicId}/replies/{replyId}", h.DeleteReply)
	})
}

// GetTopics handles GET /forum-topics/{siteId}
// @Summary List forum topics in a site
// @Tags forums
// @Produce json
// @Security ApiKeyAuth
// @Param siteId path int true "Site ID"
// @Success 200 {array} models.ForumTopic
// @Router /forum-topics/{siteId} [get]
func (h *ForumHandler) GetTopics(w http.ResponseWriter, r *http.Request) {
	siteID, ok := h.pathInt(w, r, "siteId")
	if !ok {
		return
	}

	topics, err := h.service.GetTopics(r.Context(), siteID)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, topics)
}

// GetTopic handles GET /forum-topics/topic/{topicId}
// @Summary Get a forum topic with replies
// @Tags forums
// @Produce json
// @Security ApiKeyAuth
// @Param topicId path int true "Topic ID"
// @Success 200 {object} map[string]any "Topic with replies"
// @Failure 404 {object} map[string]string "Topic not found"
// @Router /forum-topics/topic/{topicId} [get]
func (h *ForumHandler) GetTopic(w http.ResponseWriter, r *http.Request) {
	topicID, ok := h.pathInt(w, r, "topicId")
	if !ok {
		return
	}

	topic, replies, err := h.service.GetTopic(r.Context(), topicID)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]any{
		"topic":   topic,
		"replies": replies,
	})
}

// CreateTopic handles POST /forum-topics
// @Summary Open a forum topic
// @Tags forums
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.CreateForumTopicRequest true "Topic data"
// @Success 201 {object} models.ForumTopic
// @Router /forum-topics [post]
func (h *ForumHandler) CreateTopic(w http.ResponseWriter, r *http.Request) {
	email, ok := h.userEmail(w, r)
	if !ok {
		return
	}

	var req models.CreateForumTopicRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	topic, err := h.service.CreateTopic(r.Context(), &req, email)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, topic)
}

// DeleteTopic handles DELETE /forum-topics/topic/{topicId}
// @Summary Delete a forum topic
// @Tags forums
// @Security ApiKeyAuth
// @Param topicId path int true "Topic ID"
// @Success 204 "Deleted"
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /forum-topics/topic/{topicId} [delete]
func (h *ForumHandler) DeleteTopic(w http.ResponseWriter, r *http.Request) {
	topicID, ok := h.pathInt(w, r, "topicId")
	if !ok {
		return
	}
	email, ok := h.userEmail(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteTopic(r.Context(), topicID, email); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CreateReply handles POST /forum-replies
// @Summary Reply to a forum topic
// @Tags forums
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.CreateForumReplyRequest true "Reply data"
// @Success 201 {object} models.ForumReply
// @Failure 404 {object} map[string]string "Topic not found"
// @Router /forum-replies [post]
func (h *ForumHandler) CreateReply(w http.ResponseWriter, r *http.Request) {
	email, ok := h.userEmail(w, r)
	if !ok {
		return
	}

	var req models.CreateForumReplyRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	reply, err := h.service.CreateReply(r.Context(), &req, email)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, reply)
}

// DeleteReply handles DELETE /forum-topics/topic/{topicId}/replies/{replyId}
// @Summary Delete a forum reply
// @Tags forums
// @Security ApiKeyAuth
// @Param topicId path int true "Topic ID"
// @Param replyId path int true "Reply ID"
// @Success 204 "Deleted"
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /forum-topics/topic/{topicId}/replies/{replyId} [delete]
func (h *ForumHandler) DeleteReply(w http.ResponseWriter, r *http.Request) {
	topicID, ok := h.pathInt(w, r, "topicId")
	if !ok {
		return
	}
	replyID, ok := h.pathInt(w, r, "replyId")
	if !ok {
		return
	}
	email, ok := h.userEmail(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteReply(r.Context(), replyID, topicID, email); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
