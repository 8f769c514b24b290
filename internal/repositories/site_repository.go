package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/israkkayum/lms-server-side/internal/apperrors"
	"github.com/israkkayum/lms-server-side/internal/models"
)

type siteRepository struct {
	db *sql.DB
}

// NewSiteRepository creates a new site repository
func NewSiteRepository(db *sql.DB) *siteRepository {
	return &siteRepository{
		db: db,
	}
}

// GetByID retrieves a site by its ID
func (r *siteRepository) GetByID(ctx context.Context, id int) (*models.Site, error) {
	query := `
		SELECT id, name, slug, created_by, created_at
		FROM sites
		WHERE id = ?
		LIMIT 1
	`

	var site models.Site
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&site.ID,
		&site.Name,
		&site.Slug,
		&site.CreatedBy,
		&site.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("site not found: %w", apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get site by id: %w", err)
	}

	return &site, nil
}

// GetBySlug retrieves a site by its slug
func (r *siteRepository) GetBySlug(ctx context.Context, slug string) (*models.Site, error) {
	query := `
		SELECT id, name, slug, created_by, created_at
		FROM sites
		WHERE slug = ?
		LIMIT 1
	`

	var site models.Site
	err := r.db.QueryRowContext(ctx, query, slug).Scan(
		&site.ID,
		&site.Name,
		&site.Slug,
		&site.CreatedBy,
		&site.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("site not found: %w", apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get site by slug: %w", err)
	}

	return &site, nil
}

// ExistsBySlug checks if a site with the given slug exists
func (r *siteRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	query := "SELECT EXISTS(SELECT 1 FROM sites WHERE slug = ?)"
	var exists bool
	err := r.db.QueryRowContext(ctx, query, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check site existence: %w", err)
	}
	return exists, nil
}

// Create creates a new site
func (r *siteRepository) Create(ctx context.Context, site *models.Site) error {
	query := `
		INSERT INTO sites (name, slug, created_by)
		VALUES (?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		site.Name,
		site.Slug,
		site.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to create site: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	site.ID = int(id)
	return nil
}

// Update renames a site
func (r *siteRepository) Update(ctx context.Context, id int, name string) error {
	query := "UPDATE sites SET name = ? WHERE id = ?"

	result, err := r.db.ExecContext(ctx, query, name, id)
	if err != nil {
		return fmt.Errorf("failed to update site: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("site not found: %w", apperrors.ErrNotFound)
	}

	return nil
}

// Delete deletes a site by ID
func (r *siteRepository) Delete(ctx context.Context, id int) error {
	query := "DELETE FROM sites WHERE id = ?"

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete site: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("site not found: %w", apperrors.ErrNotFound)
	}

	return nil
}

// AddMember adds a user to a site with the given role. Re-joining is a no-op.
func (r *siteRepository) AddMember(ctx context.Context, siteID int, email string, role int) error {
	member := &models.SiteMember{
		SiteID: siteID,
		Email:  email,
		Role:   role,
	}

	query := `
		INSERT IGNORE INTO site_members (site_id, email, role)
		VALUES (?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		member.SiteID,
		member.Email,
		member.Role,
	)
	if err != nil {
		return fmt.Errorf("failed to add site member: %w", err)
	}

	return nil
}

// RemoveMember removes a user from a site
func (r *siteRepository) RemoveMember(ctx context.Context, siteID int, email string) error {
	query := "DELETE FROM site_members WHERE site_id = ? AND email = ?"

	result, err := r.db.ExecContext(ctx, query, siteID, email)
	if err != nil {
		return fmt.Errorf("failed to remove site member: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("site member not found: %w", apperrors.ErrNotFound)
	}

	return nil
}

// GetMembers retrieves all members of a site
func (r *siteRepository) GetMembers(ctx context.Context, siteID int) ([]models.SiteMember, error) {
	query := `
		SELECT id, site_id, email, role, joined_at
		FROM site_members
		WHERE site_id = ?
		ORDER BY joined_at
	`

	rows, err := r.db.QueryContext(ctx, query, siteID)
	if err != nil {
		return nil, fmt.Errorf("failed to query site members: %w", err)
	}
	defer rows.Close()

	var members []models.SiteMember
	for rows.Next() {
		var member models.SiteMember
		err := rows.Scan(
			&member.ID,
			&member.SiteID,
			&member.Email,
			&member.Role,
			&member.JoinedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan site member: %w", err)
		}
		members = append(members, member)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return members, nil
}
