package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/israkkayum/lms-server-side/internal/apperrors"
	"github.com/israkkayum/lms-server-side/internal/models"
)

type lessonRepository struct {
	db *sql.DB
}

// NewLessonRepository creates a new lesson repository
func NewLessonRepository(db *sql.DB) *lessonRepository {
	return &lessonRepository{
		db: db,
	}
}

// GetByID retrieves a lesson by its ID
func (r *lessonRepository) GetByID(ctx context.Context, id int) (*models.Lesson, error) {
	query := `
		SELECT id, section_id, name, position
		FROM lessons
		WHERE id = ?
		LIMIT 1
	`

	var lesson models.Lesson
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&lesson.ID,
		&lesson.SectionID,
		&lesson.Name,
		&lesson.Position,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("lesson not found: %w", apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lesson by id: %w", err)
	}

	return &lesson, nil
}

// GetBySectionID retrieves all lessons for a section, sorted by position
func (r *lessonRepository) GetBySectionID(ctx context.Context, sectionID int) ([]models.Lesson, error) {
	query := `
		SELECT id, section_id, name, position
		FROM lessons
		WHERE section_id = ?
		ORDER BY position
	`

	rows, err := r.db.QueryContext(ctx, query, sectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lessons: %w", err)
	}
	defer rows.Close()

	var lessons []models.Lesson
	for rows.Next() {
		var lesson models.Lesson
		err := rows.Scan(
			&lesson.ID,
			&lesson.SectionID,
			&lesson.Name,
			&lesson.Position,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lesson: %w", err)
		}
		lessons = append(lessons, lesson)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return lessons, nil
}

// GetCourseID resolves the course a lesson belongs to
func (r *lessonRepository) GetCourseID(ctx context.Context, lessonID int) (int, error) {
	query := `
		SELECT s.course_id
		FROM lessons l
		JOIN sections s ON l.section_id = s.id
		WHERE l.id = ?
		LIMIT 1
	`

	var courseID int
	err := r.db.QueryRowContext(ctx, query, lessonID).Scan(&courseID)

	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("lesson not found: %w", apperrors.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get lesson course: %w", err)
	}

	return courseID, nil
}

// ExistsInCourse checks if a lesson belongs to the given course
func (r *lessonRepository) ExistsInCourse(ctx context.Context, courseID, lessonID int) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1
			FROM lessons l
			JOIN sections s ON l.section_id = s.id
			WHERE l.id = ? AND s.course_id = ?
		)
	`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, lessonID, courseID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check lesson membership: %w", err)
	}

	return exists, nil
}

// Create appends a new lesson to a section
func (r *lessonRepository) Create(ctx context.Context, lesson *models.Lesson) error {
	query := `
		INSERT INTO lessons (section_id, name, position)
		SELECT ?, ?, COALESCE(MAX(position), 0) + 1
		FROM lessons
		WHERE section_id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		lesson.SectionID,
		lesson.Name,
		lesson.SectionID,
	)
	if err != nil {
		return fmt.Errorf("failed to create lesson: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	lesson.ID = int(id)
	return nil
}

// Update renames a lesson
func (r *lessonRepository) Update(ctx context.Context, id int, name string) error {
	query := "UPDATE lessons SET name = ? WHERE id = ?"

	result, err := r.db.ExecContext(ctx, query, name, id)
	if err != nil {
		return fmt.Errorf("failed to update lesson: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("lesson not found: %w", apperrors.ErrNotFound)
	}

	return nil
}

// Delete deletes a lesson by ID
func (r *lessonRepository) Delete(ctx context.Context, id int) error {
	query := "DELETE FROM lessons WHERE id = ?"

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete lesson: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("lesson not found: %w", apperrors.ErrNotFound)
	}

	return nil
}
