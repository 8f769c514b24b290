package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/israkkayum/lms-server-side/internal/apperrors"
	"github.com/israkkayum/lms-server-side/internal/models"
)

type contentRepository struct {
	db *sql.DB
}

// NewContentRepository creates a new lesson content repository
func NewContentRepository(db *sql.DB) *contentRepository {
	return &contentRepository{
		db: db,
	}
}

// GetByID retrieves a content item by its ID
func (r *contentRepository) GetByID(ctx context.Context, id int) (*models.Content, error) {
	query := `
		SELECT id, lesson_id, content_type, payload, created_at
		FROM lesson_contents
		WHERE id = ?
		LIMIT 1
	`

	var content models.Content
	var payload []byte
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&content.ID,
		&content.LessonID,
		&content.Type,
		&payload,
		&content.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("content not found: %w", apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get content by id: %w", err)
	}

	content.Payload = payload
	return &content, nil
}

// GetByLessonID retrieves the content item attached to a lesson, if any
func (r *contentRepository) GetByLessonID(ctx context.Context, lessonID int) (*models.Content, error) {
	query := `
		SELECT id, lesson_id, content_type, payload, created_at
		FROM lesson_contents
		WHERE lesson_id = ?
		LIMIT 1
	`

	var content models.Content
	var payload []byte
	err := r.db.QueryRowContext(ctx, query, lessonID).Scan(
		&content.ID,
		&content.LessonID,
		&content.Type,
		&payload,
		&content.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("content not found: %w", apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get content by lesson id: %w", err)
	}

	content.Payload = payload
	return &content, nil
}

// ExistsForLesson checks if a lesson already has a content item
func (r *contentRepository) ExistsForLesson(ctx context.Context, lessonID int) (bool, error) {
	query := "SELECT EXISTS(SELECT 1 FROM lesson_contents WHERE lesson_id = ?)"

	var exists bool
	err := r.db.QueryRowContext(ctx, query, lessonID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check content existence: %w", err)
	}

	return exists, nil
}

// Create attaches a content item to a lesson
func (r *contentRepository) Create(ctx context.Context, content *models.Content) error {
	query := `
		INSERT INTO lesson_contents (lesson_id, content_type, payload)
		VALUES (?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		content.LessonID,
		content.Type,
		[]byte(content.Payload),
	)
	if err != nil {
		return fmt.Errorf("failed to create content: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	content.ID = int(id)
	return nil
}

// UpdatePayload replaces the payload of a lesson's content item
func (r *contentRepository) UpdatePayload(ctx context.Context, lessonID int, payload json.RawMessage) error {
	query := "UPDATE lesson_contents SET payload = ? WHERE lesson_id = ?"

	result, err := r.db.ExecContext(ctx, query, payload, lessonID)
	if err != nil {
		return fmt.Errorf("failed to update content: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("content not found: %w", apperrors.ErrNotFound)
	}

	return nil
}

// DeleteByLessonID removes the content item attached to a lesson
func (r *contentRepository) DeleteByLessonID(ctx context.Context, lessonID int) error {
	query := "DELETE FROM lesson_contents WHERE lesson_id = ?"

	result, err := r.db.ExecContext(ctx, query, lessonID)
	if err != nil {
		return fmt.Errorf("failed to delete content: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("content not found: %w", apperrors.ErrNotFound)
	}

	return nil
}

// GetByCourseAndType retrieves all content items of a type in a course,
// together with the owning lesson names, ordered by section and lesson position
func (r *contentRepository) GetByCourseAndType(ctx context.Context, courseID int, contentType models.ContentType) ([]models.Content, []string, error) {
	query := `
		SELECT lc.id, lc.lesson_id, lc.content_type, lc.payload, lc.created_at, l.name
		FROM lesson_contents lc
		JOIN lessons l ON lc.lesson_id = l.id
		JOIN sections s ON l.section_id = s.id
		WHERE s.course_id = ? AND lc.content_type = ?
		ORDER BY s.position, l.position
	`

	rows, err := r.db.QueryContext(ctx, query, courseID, contentType)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query contents: %w", err)
	}
	defer rows.Close()

	var contents []models.Content
	var lessonNames []string
	for rows.Next() {
		var content models.Content
		var payload []byte
		var lessonName string
		err := rows.Scan(
			&content.ID,
			&content.LessonID,
			&content.Type,
			&payload,
			&content.CreatedAt,
			&lessonName,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan content: %w", err)
		}
		content.Payload = payload
		contents = append(contents, content)
		lessonNames = append(lessonNames, lessonName)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return contents, lessonNames, nil
}
