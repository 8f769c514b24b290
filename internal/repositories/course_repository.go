package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/israkkayum/lms-server-side/internal/apperrors"
	"github.com/israkkayum/lms-server-side/internal/models"
)

type courseRepository struct {
	db *sql.DB
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *sql.DB) *courseRepository {
	return &courseRepository{
		db: db,
	}
}

// GetByID retrieves a course by its ID
func (r *courseRepository) GetByID(ctx context.Context, id int) (*models.Course, error) {
	query := `
		SELECT id, site_id, name, description, category, tags, thumbnail, created_by
		FROM courses
		WHERE id = ?
		LIMIT 1
	`

	var course models.Course
	var tags string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&course.ID,
		&course.SiteID,
		&course.Name,
		&course.Description,
		&course.Category,
		&tags,
		&course.Thumbnail,
		&course.CreatedBy,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("course not found: %w", apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get course by id: %w", err)
	}

	if err := unmarshalTags(tags, &course.Tags); err != nil {
		return nil, err
	}

	return &course, nil
}

// GetBySiteID retrieves all courses for a site with their lesson counts
func (r *courseRepository) GetBySiteID(ctx context.Context, siteID int) ([]models.CourseListItem, error) {
	query := `
		SELECT
			c.id,
			c.name,
			c.category,
			c.thumbnail,
			COUNT(l.id) as total_lessons
		FROM courses c
		LEFT JOIN sections s ON s.course_id = c.id
		LEFT JOIN lessons l ON l.section_id = s.id
		WHERE c.site_id = ?
		GROUP BY c.id, c.name, c.category, c.thumbnail
		ORDER BY c.id
	`

	rows, err := r.db.QueryContext(ctx, query, siteID)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	var courses []models.CourseListItem
	for rows.Next() {
		var course models.CourseListItem
		err := rows.Scan(
			&course.ID,
			&course.Name,
			&course.Category,
			&course.Thumbnail,
			&course.TotalLessons,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return courses, nil
}

// Create creates a new course
func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	tags, err := marshalTags(course.Tags)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO courses (site_id, name, description, category, tags, thumbnail, created_by)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		course.SiteID,
		course.Name,
		course.Description,
		course.Category,
		tags,
		course.Thumbnail,
		course.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	course.ID = int(id)
	return nil
}

// Update updates a course (partial update)
func (r *courseRepository) Update(ctx context.Context, course *models.Course) error {
	var setParts []string
	var args []any

	if course.Name != "" {
		setParts = append(setParts, "name = ?")
		args = append(args, course.Name)
	}
	if course.Description != "" {
		setParts = append(setParts, "description = ?")
		args = append(args, course.Description)
	}
	if course.Category != "" {
		setParts = append(setParts, "category = ?")
		args = append(args, course.Category)
	}
	if course.Tags != nil {
		tags, err := marshalTags(course.Tags)
		if err != nil {
			return err
		}
		setParts = append(setParts, "tags = ?")
		args = append(args, tags)
	}
	if course.Thumbnail != "" {
		setParts = append(setParts, "thumbnail = ?")
		args = append(args, course.Thumbnail)
	}

	if len(setParts) == 0 {
		return fmt.Errorf("no fields to update: %w", apperrors.ErrValidation)
	}

	query := fmt.Sprintf(`
		UPDATE courses
		SET %s
		WHERE id = ?
	`, strings.Join(setParts, ", "))

	args = append(args, course.ID)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update course: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("course not found: %w", apperrors.ErrNotFound)
	}

	return nil
}

// Delete deletes a course by ID
func (r *courseRepository) Delete(ctx context.Context, id int) error {
	query := "DELETE FROM courses WHERE id = ?"

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("course not found: %w", apperrors.ErrNotFound)
	}

	return nil
}

// CountLessons counts all lessons in a course across its sections
func (r *courseRepository) CountLessons(ctx context.Context, courseID int) (int, error) {
	query := `
		SELECT COUNT(l.id)
		FROM lessons l
		JOIN sections s ON l.section_id = s.id
		WHERE s.course_id = ?
	`

	var count int
	err := r.db.QueryRowContext(ctx, query, courseID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count lessons: %w", err)
	}

	return count, nil
}

// CheckOwnership checks if a course was created by the given user
func (r *courseRepository) CheckOwnership(ctx context.Context, id int, email string) (bool, error) {
	query := "SELECT EXISTS(SELECT 1 FROM courses WHERE id = ? AND created_by = ?)"
	var exists bool
	err := r.db.QueryRowContext(ctx, query, id, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check course ownership: %w", err)
	}
	return exists, nil
}

// marshalTags encodes course tags as a JSON array for storage
func marshalTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("failed to marshal tags: %w", err)
	}
	return string(data), nil
}

// unmarshalTags decodes stored course tags
func unmarshalTags(data string, tags *[]string) error {
	if data == "" {
		*tags = []string{}
		return nil
	}
	if err := json.Unmarshal([]byte(data), tags); err != nil {
		return fmt.Errorf("failed to unmarshal tags: %w", err)
	}
	return nil
}
