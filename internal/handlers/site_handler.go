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

// SiteService is the interface that wraps methods for site operations
type SiteService interface {
	// GetSite retrieves a site by ID
	GetSite(ctx context.Context, id int) (*models.Site, error)
	// GetSiteBySlug retrieves a site by its slug
	GetSiteBySlug(ctx context.Context, slug string) (*models.Site, error)
	// CreateSite creates a site and adds the creator as a member
	CreateSite(ctx context.Context, req *models.CreateSiteRequest, createdBy string, role int) (*models.Site, error)
	// UpdateSite renames a site owned by the given user
	UpdateSite(ctx context.Context, id int, name, email string) error
	// DeleteSite deletes a site owned by the given user
	DeleteSite(ctx context.Context, id int, email string) error
	// JoinSite adds a user to a site's members
	JoinSite(ctx context.Context, siteID int, email string, role int) error
	// LeaveSite removes a user from a site's members
	LeaveSite(ctx context.Context, siteID int, email string) error
	// GetMembers retrieves all members of a site
	GetMembers(ctx context.Context, siteID int) ([]models.SiteMember, error)
}

// SiteHandler handles HTTP requests for site operations
type SiteHandler struct {
	BaseHandler
	service SiteService
}

// NewSiteHandler creates a new site handler
func NewSiteHandler(svc SiteService, logger *zap.Logger) *SiteHandler {
	return &SiteHandler{
		service:     svc,
		BaseHandler: NewBaseHandler(logger),
	}
}

// RegisterRoutes registers all site handler routes
func (h *SiteHandler) RegisterRoutes(r chi.Router, auth func(http.Handler) http.Handler, instructor func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(auth)
		r.Get("/sites/{siteId}", h.GetSite)
		r.Get("/sites/slug/{slug}", h.GetSiteBySlug)
		r.Get("/sites/{siteId}/members", h.GetMembers)
		r.Post("/sites/{siteId}/join", h.JoinSite)
		r.Delete("/sites/{siteId}/leave", h.LeaveSite)
	})
	r.Group(func(r chi.Router) {
		r.Use(auth, instructor)
		r.Post("/sites", h.CreateSite)
		r.Patch("/sites/{siteId}", h.UpdateSite)
		r.Delete("/sites/{siteId}", h.DeleteSite)
	})
}

// GetSite handles GET /sites/{siteId}
// @Summary Get a site
// @Tags sites
// @Produce json
// @Security ApiKeyAuth
// @Param siteId path int true "Site ID"
// @Success 200 {object} models.Site
// @Failure 404 {object} map[string]string "Site not found"
// @Router /sites/{siteId} [get]
func (h *SiteHandler) GetSite(w http.ResponseWriter, r *http.Request) {
	siteID, ok := h.pathInt(w, r, "siteId")
	if !ok {
		return
	}

	site, err := h.service.GetSite(r.Context(), siteID)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, site)
}

// GetSiteBySlug handles GET /sites/slug/{slug}
// @Summary Get a site by slug
// @Tags sites
// @Produce json
// @Security ApiKeyAuth
// @Param slug path string true "Site slug"
// @Success 200 {object} models.Site
// @Failure 404 {object} map[string]string "Site not found"
// @Router /sites/slug/{slug} [get]
func (h *SiteHandler) GetSiteBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		h.RespondError(w, http.StatusBadRequest, "slug is required")
		return
	}

	site, err := h.service.GetSiteBySlug(r.Context(), slug)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, site)
}

// CreateSite handles POST /sites
// @Summary Create a site
// @Tags sites
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.CreateSiteRequest true "Site data"
// @Success 201 {object} models.Site
// @Failure 409 {object} map[string]string "Slug already taken"
// @Router /sites [post]
func (h *SiteHandler) CreateSite(w http.ResponseWriter, r *http.Request) {
	email, ok := h.userEmail(w, r)
	if !ok {
		return
	}
	role, _ := authMiddleware.GetUserRole(r.Context())
	if role == 0 {
		role = authService.RoleInstructor
	}

	var req models.CreateSiteRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	site, err := h.service.CreateSite(r.Context(), &req, email, role)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, site)
}

// UpdateSite handles PATCH /sites/{siteId}
// @Summary Rename a site
// @Tags sites
// @Accept json
// @Security ApiKeyAuth
// @Param siteId path int true "Site ID"
// @Param request body models.UpdateSiteRequest true "New name"
// @Success 204 "Updated"
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /sites/{siteId} [patch]
func (h *SiteHandler) UpdateSite(w http.ResponseWriter, r *http.Request) {
	siteID, ok := h.pathInt(w, r, "siteId")
	if !ok {
		return
	}
	email, ok := h.userEmail(w, r)
	if !ok {
		return
	}

	var req models.UpdateSiteRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.service.UpdateSite(r.Context(), siteID, req.Name, email); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteSite handles DELETE /sites/{siteId}
// @Summary Delete a site
// @Tags sites
// @Security ApiKeyAuth
// @Param siteId path int true "Site ID"
// @Success 204 "Deleted"
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /sites/{siteId} [delete]
func (h *SiteHandler) DeleteSite(w http.ResponseWriter, r *http.Request) {
	siteID, ok := h.pathInt(w, r, "siteId")
	if !ok {
		return
	}
	email, ok := h.userEmail(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteSite(r.Context(), siteID, email); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// JoinSite handles POST /sites/{siteId}/join
// @Summary Join a site
// @Tags sites
// @Security ApiKeyAuth
// @Param siteId path int true "Site ID"
// @Success 204 "Joined"
// @Failure 404 {object} map[string]string "Site not found"
// @Router /sites/{siteId}/join [post]
func (h *SiteHandler) JoinSite(w http.ResponseWriter, r *http.Request) {
	siteID, ok := h.pathInt(w, r, "siteId")
	if !ok {
		return
	}
	email, ok := h.userEmail(w, r)
	if !ok {
		return
	}
	role, _ := authMiddleware.GetUserRole(r.Context())

	if err := h.service.JoinSite(r.Context(), siteID, email, role); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// LeaveSite handles DELETE /sites/{siteId}/leave
// @Summary Leave a site
// @Tags sites
// @Security ApiKeyAuth
// @Param siteId path int true "Site ID"
// @Success 204 "Left"
// @Router /sites/{siteId}/leave [delete]
func (h *SiteHandler) LeaveSite(w http.ResponseWriter, r *http.Request) {
	siteID, ok := h.pathInt(w, r, "siteId")
	if !ok {
		return
	}
	email, ok := h.userEmail(w, r)
	if !ok {
		return
	}

	if err := h.service.LeaveSite(r.Context(), siteID, email); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetMembers handles GET /sites/{siteId}/members
// @Summary List site members
// @Tags sites
// @Produce json
// @Security ApiKeyAuth
// @Param siteId path int true "Site ID"
// @Success 200 {array} models.SiteMember
// @Router /sites/{siteId}/members [get]
func (h *SiteHandler) GetMembers(w http.ResponseWriter, r *http.Request) {
	siteID, ok := h.pathInt(w, r, "siteId")
	if !ok {
		return
	}

	members, err := h.service.GetMembers(r.Context(), siteID)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, members)
}
