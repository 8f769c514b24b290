package services

import (
	"context"
	"fmt"

	"github.com/israkkayum/lms-server-side/internal/apperrors"
	"github.com/israkkayum/lms-server-side/internal/models"
)

// BlogRepository defines methods for blog post data access
type BlogRepository interface {
	// GetByID retrieves a blog post by its ID
	GetByID(ctx context.Context, id int) (*models.BlogPost, error)
	// GetBySiteID retrieves all blog posts for a site, newest first
	GetBySiteID(ctx context.Context, siteID int) ([]models.BlogPost, error)
	// Create creates a new blog post and sets its ID
	Create(ctx context.Context, post *models.BlogPost) error
	// Update updates a blog post (partial update)
	Update(ctx context.Context, post *models.BlogPost) error
	// Delete deletes a blog post by ID
	Delete(ctx context.Context, id int) error
}

type blogService struct {
	blogRepo BlogRepository
}

// NewBlogService creates a new blog service
func NewBlogService(blogRepo BlogRepository) *blogService {
	return &blogService{blogRepo: blogRepo}
}

// GetPost retrieves a blog post by ID
func (s *blogService) GetPost(ctx context.Context, id int) (*models.BlogPost, error) {
	return s.blogRepo.GetByID(ctx, id)
}

// GetPostsBySite retrieves all blog posts for a site
func (s *blogService) GetPostsBySite(ctx context.Context, siteID int) ([]models.BlogPost, error) {
	return s.blogRepo.GetBySiteID(ctx, siteID)
}

// CreatePost creates a blog post authored by the given user
func (s *blogService) CreatePost(ctx context.Context, req *models.CreateBlogPostRequest, author string) (*models.BlogPost, error) {
	post := &models.BlogPost{
		SiteID:      req.SiteID,
		Title:       req.Title,
		Body:        req.Body,
		AuthorEmail: author,
	}
	if err := s.blogRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return post, nil
}

// UpdatePost updates a blog post; only its author may update it
func (s *blogService) UpdatePost(ctx context.Context, id int, req *models.UpdateBlogPostRequest, email string) error {
	if err := s.checkAuthorship(ctx, id, email); err != nil {
		return err
	}

	post := &models.BlogPost{
		ID:    id,
		Title: req.Title,
		Body:  req.Body,
	}
	return s.blogRepo.Update(ctx, post)
}

// DeletePost deletes a blog post; only its author may delete it
func (s *blogService) DeletePost(ctx context.Context, id int, email string) error {
	if err := s.checkAuthorship(ctx, id, email); err != nil {
		return err
	}
	return s.blogRepo.Delete(ctx, id)
}

func (s *blogService) checkAuthorship(ctx context.Context, id int, email string) error {
	post, err := s.blogRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get post: %w", err)
	}
	if post.AuthorEmail != email {
		return fmt.Errorf("post does not belong to user: %w", apperrors.ErrForbidden)
	}
	return nil
}
