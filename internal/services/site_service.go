package services

import (
	"context"
	"fmt"

	"github.com/israkkayum/lms-server-side/internal/apperrors"
	"github.com/israkkayum/lms-server-side/internal/models"
)

// SiteRepository defines methods for site data access
type SiteRepository interface {
	// GetByID retrieves a site by its ID
	GetByID(ctx context.Context, id int) (*models.Site, error)
	// GetBySlug retrieves a site by its slug
	GetBySlug(ctx context.Context, slug string) (*models.Site, error)
	// ExistsBySlug checks if a site with the slug exists
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	// Create creates a new site and sets its ID
	Create(ctx context.Context, site *models.Site) error
	// Update renames a site
	Update(ctx context.Context, id int, name string) error
	// Delete deletes a site by ID
	Delete(ctx context.Context, id int) error
	// AddMember adds a user to a site; adding twice is a no-op
	AddMember(ctx context.Context, siteID int, email string, role int) error
	// RemoveMember removes a user from a site
	RemoveMember(ctx context.Context, siteID int, email string) error
	// GetMembers retrieves all members of a site
	GetMembers(ctx context.Context, siteID int) ([]models.SiteMember, error)
}

type siteService struct {
	siteRepo SiteRepository
}

// NewSiteService creates a new site service
func NewSiteService(siteRepo SiteRepository) *siteService {
	return &siteService{siteRepo: siteRepo}
}

// GetSite retrieves a site by ID
func (s *siteService) GetSite(ctx context.Context, id int) (*models.Site, error) {
	return s.siteRepo.GetByID(ctx, id)
}

// GetSiteBySlug retrieves a site by its slug
func (s *siteService) GetSiteBySlug(ctx context.Context, slug string) (*models.Site, error) {
	return s.siteRepo.GetBySlug(ctx, slug)
}

// CreateSite creates a site with a unique slug and adds the creator as a member
func (s *siteService) CreateSite(ctx context.Context, req *models.CreateSiteRequest, createdBy string, role int) (*models.Site, error) {
	exists, err := s.siteRepo.ExistsBySlug(ctx, req.Slug)
	if err != nil {
		return nil, fmt.Errorf("failed to check slug: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("site slug already taken: %w", apperrors.ErrConflict)
	}

	site := &models.Site{
		Name:      req.Name,
		Slug:      req.Slug,
		CreatedBy: createdBy,
	}
	if err := s.siteRepo.Create(ctx, site); err != nil {
		return nil, fmt.Errorf("failed to create site: %w", err)
	}

	if err := s.siteRepo.AddMember(ctx, site.ID, createdBy, role); err != nil {
		return nil, fmt.Errorf("failed to add creator as member: %w", err)
	}

	return site, nil
}

// UpdateSite renames a site; only the site creator may rename it
func (s *siteService) UpdateSite(ctx context.Context, id int, name, email string) error {
	if err := s.checkOwnership(ctx, id, email); err != nil {
		return err
	}
	return s.siteRepo.Update(ctx, id, name)
}

// DeleteSite deletes a site; only the site creator may delete it
func (s *siteService) DeleteSite(ctx context.Context, id int, email string) error {
	if err := s.checkOwnership(ctx, id, email); err != nil {
		return err
	}
	return s.siteRepo.Delete(ctx, id)
}

// JoinSite adds a user to a site's members
func (s *siteService) JoinSite(ctx context.Context, siteID int, email string, role int) error {
	if _, err := s.siteRepo.GetByID(ctx, siteID); err != nil {
		return fmt.Errorf("failed to get site: %w", err)
	}
	return s.siteRepo.AddMember(ctx, siteID, email, role)
}

// LeaveSite removes a user from a site's members
func (s *siteService) LeaveSite(ctx context.Context, siteID int, email string) error {
	return s.siteRepo.RemoveMember(ctx, siteID, email)
}

// GetMembers retrieves all members of a site
func (s *siteService) GetMembers(ctx context.Context, siteID int) ([]models.SiteMember, error) {
	return s.siteRepo.GetMembers(ctx, siteID)
}

func (s *siteService) checkOwnership(ctx context.Context, siteID int, email string) error {
	site, err := s.siteRepo.GetByID(ctx, siteID)
	if err != nil {
		return fmt.Errorf("failed to get site: %w", err)
	}
	if site.CreatedBy != email {
		return fmt.Errorf("site does not belong to user: %w", apperrors.ErrForbidden)
	}
	return nil
}
