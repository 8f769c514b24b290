package repositories

import (
	"context"
	"database/sql"
	"fmt"
)

type progressRepository struct {
	db *sql.DB
}

// NewProgressRepository creates a new progress repository
func NewProgressRepository(db *sql.DB) *progressRepository {
	return &progressRepository{
		db: db,
	}
}

// Exists checks if a completion record exists
func (r *progressRepository) Exists(ctx context.Context, courseID, lessonID int, email string) (bool, error) {
	query := "SELECT EXISTS(SELECT 1 FROM lesson_completions WHERE course_id = ? AND lesson_id = ? AND email = ?)"

	var exists bool
	err := r.db.QueryRowContext(ctx, query, courseID, lessonID, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check completion existence: %w", err)
	}

	return exists, nil
}

// Create records a completed lesson. Creating an already-existing record is a
// no-op so marking complete stays idempotent.
func (r *progressRepository) Create(ctx context.Context, courseID, lessonID int, email string) error {
	query := `
		INSERT IGNORE INTO lesson_completions (course_id, lesson_id, email)
		VALUES (?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query, courseID, lessonID, email)
	if err != nil {
		return fmt.Errorf("failed to create completion: %w", err)
	}

	return nil
}

// Delete removes a completion record; used only by quiz retake
func (r *progressRepository) Delete(ctx context.Context, courseID, lessonID int, email string) error {
	query := "DELETE FROM lesson_completions WHERE course_id = ? AND lesson_id = ? AND email = ?"

	_, err := r.db.ExecContext(ctx, query, courseID, lessonID, email)
	if err != nil {
		return fmt.Errorf("failed to delete completion: %w", err)
	}

	return nil
}

// GetCompletedLessonIDs retrieves the IDs of all lessons a user completed in a course
func (r *progressRepository) GetCompletedLessonIDs(ctx context.Context, courseID int, email string) ([]int, error) {
	query := `
		SELECT lesson_id
		FROM lesson_completions
		WHERE course_id = ? AND email = ?
		ORDER BY lesson_id
	`

	rows, err := r.db.QueryContext(ctx, query, courseID, email)
	if err != nil {
		return nil, fmt.Errorf("failed to query completions: %w", err)
	}
	defer rows.Close()

	var lessonIDs []int
	for rows.Next() {
		var lessonID int
		if err := rows.Scan(&lessonID); err != nil {
			return nil, fmt.Errorf("failed to scan completion: %w", err)
		}
		lessonIDs = append(lessonIDs, lessonID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return lessonIDs, nil
}
