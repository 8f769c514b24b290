package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/israkkayum/lms-server-side/internal/models"
)

// BlogService is the interface that wraps methods for blog operations
type BlogService interface {
	// GetPost retrieves a blog post by ID
	GetPost(ctx context.Context, id int) (*models.BlogPost, error)
	// GetPostsBySite retrieves all blog posts for a site
	GetPostsBySite(ctx context.Context, siteID int) ([]models.BlogPost, error)
	// CreatePost creates a blog post authored by the given user
	CreatePost(ctx context.Context, req *models.CreateBlogPostRequest, author string) (*models.BlogPost, error)
	// UpdatePost updates a blog post authored by the given user
	UpdatePost(ctx context.Context, id int, req *models.UpdateBlogPostRequest, email string) error
	// DeletePost deletes a blog post authored by the given user
	DeletePost(ctx context.Context, id int, email string) error
}

// BlogHandler handles HTTP requests for blog operations
type BlogHandler struct {
	BaseHandler
	service BlogService
}

// NewBlogHandler creates a new blog handler
func NewBlogHandler(svc BlogService, logger *zap.Logger) *BlogHandler {
	return &BlogHandler{
		service:     svc,
		BaseHandler: NewBaseHandler(logger),
	}
}

// RegisterRoutes registers all blog handler routes
func (h *BlogHandler) RegisterRoutes(r chi.Router, auth func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(auth)
		r.Get("/blogs/{siteId}", h.GetPostsBySite)
		r.Get("/blogs/post/{postId}", h.GetPost)
		r.Post("/blogs", h.CreatePost)
		r.Patch("/blogs/post/{postId}", h.UpdatePost)
		r.Delete("/blogs/post/{postId}", h.DeletePost)
	})
}

// GetPostsBySite handles GET /blogs/{siteId}
// @Summary List blog posts in a site
// @Tags blogs
// @Produce json
// @Security ApiKeyAuth
// @Param siteId path int true "Site ID"
// @Success 200 {array} models.BlogPost
// @Router /blogs/{siteId} [get]
func (h *BlogHandler) GetPostsBySite(w http.ResponseWriter, r *http.Request) {
	siteID, ok := h.pathInt(w, r, "siteId")
	if !ok {
		return
	}

	posts, err := h.service.GetPostsBySite(r.Context(), siteID)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, posts)
}

// GetPost handles GET /blogs/post/{postId}
// @Summary Get a blog post
// @Tags blogs
// @Produce json
// @Security ApiKeyAuth
// @Param postId path int true "Post ID"
// @Success 200 {object} models.BlogPost
// @Failure 404 {object} map[string]string "Post not found"
// @Router /blogs/post/{postId} [get]
func (h *BlogHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	postID, ok := h.pathInt(w, r, "postId")
	if !ok {
		return
	}

	post, err := h.service.GetPost(r.Context(), postID)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, post)
}

// CreatePost handles POST /blogs
// @Summary Create a blog post
// @Tags blogs
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.CreateBlogPostRequest true "Post data"
// @Success 201 {object} models.BlogPost
// @Router /blogs [post]
func (h *BlogHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	email, ok := h.userEmail(w, r)
	if !ok {
		return
	}

	var req models.CreateBlogPostRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	post, err := h.service.CreatePost(r.Context(), &req, email)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, post)
}

// UpdatePost handles PATCH /blogs/post/{postId}
// @Summary Update a blog post
// @Tags blogs
// @Accept json
// @Security ApiKeyAuth
// @Param postId path int true "Post ID"
// @Param request body models.UpdateBlogPostRequest true "Fields to update"
// @Success 204 "Updated"
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /blogs/post/{postId} [patch]
func (h *BlogHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	postID, ok := h.pathInt(w, r, "postId")
	if !ok {
		return
	}
	email, ok := h.userEmail(w, r)
	if !ok {
		return
	}

	var req models.UpdateBlogPostRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.service.UpdatePost(r.Context(), postID, &req, email); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeletePost handles DELETE /blogs/post/{postId}
// @Summary Delete a blog post
// @Tags blogs
// @Security ApiKeyAuth
// @Param postId path int true "Post ID"
// @Success 204 "Deleted"
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /blogs/post/{postId} [delete]
func (h *BlogHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	postID, ok := h.pathInt(w, r, "postId")
	if !ok {
		return
	}
	email, ok := h.userEmail(w, r)
	if !ok {
		return
	}

	if err := h.service.DeletePost(r.Context(), postID, email); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
