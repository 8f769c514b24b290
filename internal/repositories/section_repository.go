package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/israkkayum/lms-server-side/internal/apperrors"
	"github.com/israkkayum/lms-server-side/internal/models"
)

type sectionRepository struct {
	db *sql.DB
}

// NewSectionRepository creates a new section repository
func NewSectionRepository(db *sql.DB) *sectionRepository {
	return &sectionRepository{
		db: db,
	}
}

// GetByCourseID retrieves all sections for a course, sorted by position
func (r *sectionRepository) GetByCourseID(ctx context.Context, courseID int) ([]models.Section, error) {
	query := `
		SELECT id, course_id, title, position
		FROM sections
		WHERE course_id = ?
		ORDER BY position
	`

	rows, err := r.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sections: %w", err)
	}
	defer rows.Close()

	var sections []models.Section
	for rows.Next() {
		var section models.Section
		err := rows.Scan(
			&section.ID,
			&section.CourseID,
			&section.Title,
			&section.Position,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan section: %w", err)
		}
		sections = append(sections, section)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return sections, nil
}

// GetByID retrieves a section by its ID
func (r *sectionRepository) GetByID(ctx context.Context, id int) (*models.Section, error) {
	query := `
		SELECT id, course_id, title, position
		FROM sections
		WHERE id = ?
		LIMIT 1
	`

	var section models.Section
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&section.ID,
		&section.CourseID,
		&section.Title,
		&section.Position,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("section not found: %w", apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get section by id: %w", err)
	}

	return &section, nil
}

// Create appends a new section to a course
func (r *sectionRepository) Create(ctx context.Context, section *models.Section) error {
	query := `
		INSERT INTO sections (course_id, title, position)
		SELECT ?, ?, COALESCE(MAX(position), 0) + 1
		FROM sections
		WHERE course_id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		section.CourseID,
		section.Title,
		section.CourseID,
	)
	if err != nil {
		return fmt.Errorf("failed to create section: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	section.ID = int(id)
	return nil
}

// Update renames a section
func (r *sectionRepository) Update(ctx context.Context, id int, title string) error {
	query := "UPDATE sections SET title = ? WHERE id = ?"

	result, err := r.db.ExecContext(ctx, query, title, id)
	if err != nil {
		return fmt.Errorf("failed to update section: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("section not found: %w", apperrors.ErrNotFound)
	}

	return nil
}

// Delete deletes a section by ID
func (r *sectionRepository) Delete(ctx context.Context, id int) error {
	query := "DELETE FROM sections WHERE id = ?"

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete section: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("section not found: %w", apperrors.ErrNotFound)
	}

	return nil
}
