package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/israkkayum/lms-server-side/internal/apperrors"
	"github.com/israkkayum/lms-server-side/internal/models"
)

type blogRepository struct {
	db *sql.DB
}

// NewBlogRepository creates a new blog repository
func NewBlogRepository(db *sql.DB) *blogRepository {
	return &blogRepository{
		db: db,
	}
}

// GetByID retrieves a blog post by its ID
func (r *blogRepository) GetByID(ctx context.Context, id int) (*models.BlogPost, error) {
	query := `
		SELECT id, site_id, title, body, author_email, created_at, updated_at
		FROM blog_posts
		WHERE id = ?
		LIMIT 1
	`

	var post models.BlogPost
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&post.ID,
		&post.SiteID,
		&post.Title,
		&post.Body,
		&post.AuthorEmail,
		&post.CreatedAt,
		&post.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("blog post not found: %w", apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get blog post by id: %w", err)
	}

	return &post, nil
}

// GetBySiteID retrieves all blog posts for a site, newest first
func (r *blogRepository) GetBySiteID(ctx context.Context, siteID int) ([]models.BlogPost, error) {
	query := `
		SELECT id, site_id, title, body, author_email, created_at, updated_at
		FROM blog_posts
		WHERE site_id = ?
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, siteID)
	if err != nil {
		return nil, fmt.Errorf("failed to query blog posts: %w", err)
	}
	defer rows.Close()

	var posts []models.BlogPost
	for rows.Next() {
		var post models.BlogPost
		err := rows.Scan(
			&post.ID,
			&post.SiteID,
			&post.Title,
			&post.Body,
			&post.AuthorEmail,
			&post.CreatedAt,
			&post.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan blog post: %w", err)
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return posts, nil
}

// Create creates a new blog post
func (r *blogRepository) Create(ctx context.Context, post *models.BlogPost) error {
	query := `
		INSERT INTO blog_posts (site_id, title, body, author_email)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		post.SiteID,
		post.Title,
		post.Body,
		post.AuthorEmail,
	)
	if err != nil {
		return fmt.Errorf("failed to create blog post: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	post.ID = int(id)
	return nil
}

// Update updates a blog post (partial update)
func (r *blogRepository) Update(ctx context.Context, post *models.BlogPost) error {
	var setParts []string
	var args []any

	if post.Title != "" {
		setParts = append(setParts, "title = ?")
		args = append(args, post.Title)
	}
	if post.Body != "" {
		setParts = append(setParts, "body = ?")
		args = append(args, post.Body)
	}

	if len(setParts) == 0 {
		return fmt.Errorf("no fields to update: %w", apperrors.ErrValidation)
	}

	query := fmt.Sprintf(`
		UPDATE blog_posts
		SET %s
		WHERE id = ?
	`, strings.Join(setParts, ", "))

	args = append(args, post.ID)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update blog post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("blog post not found: %w", apperrors.ErrNotFound)
	}

	return nil
}

// Delete deletes a blog post by ID
func (r *blogRepository) Delete(ctx context.Context, id int) error {
	query := "DELETE FROM blog_posts WHERE id = ?"

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete blog post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("blog post not found: %w", apperrors.ErrNotFound)
	}

	return nil
}
