package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/israkkayum/lms-server-side/internal/models"
)

type enrollmentRepository struct {
	db *sql.DB
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(db *sql.DB) *enrollmentRepository {
	return &enrollmentRepository{
		db: db,
	}
}

// Create enrolls a user in a course. Enrolling twice is a no-op.
func (r *enrollmentRepository) Create(ctx context.Context, courseID int, email string) error {
	query := `
		INSERT IGNORE INTO enrollments (course_id, email)
		VALUES (?, ?)
	`

	_, err := r.db.ExecContext(ctx, query, courseID, email)
	if err != nil {
		return fmt.Errorf("failed to create enrollment: %w", err)
	}

	return nil
}

// Delete removes a user's enrollment in a course
func (r *enrollmentRepository) Delete(ctx context.Context, courseID int, email string) error {
	query := "DELETE FROM enrollments WHERE course_id = ? AND email = ?"

	_, err := r.db.ExecContext(ctx, query, courseID, email)
	if err != nil {
		return fmt.Errorf("failed to delete enrollment: %w", err)
	}

	return nil
}

// Exists checks if a user is enrolled in a course
func (r *enrollmentRepository) Exists(ctx context.Context, courseID int, email string) (bool, error) {
	query := "SELECT EXISTS(SELECT 1 FROM enrollments WHERE course_id = ? AND email = ?)"

	var exists bool
	err := r.db.QueryRowContext(ctx, query, courseID, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check enrollment: %w", err)
	}

	return exists, nil
}

// GetByCourse retrieves all enrollments in a course, oldest first
func (r *enrollmentRepository) GetByCourse(ctx context.Context, courseID int) ([]models.Enrollment, error) {
	query := `
		SELECT id, course_id, email, enrolled_at
		FROM enrollments
		WHERE course_id = ?
		ORDER BY enrolled_at
	`

	rows, err := r.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query enrollments: %w", err)
	}
	defer rows.Close()

	var enrollments []models.Enrollment
	for rows.Next() {
		var e models.Enrollment
		if err := rows.Scan(&e.ID, &e.CourseID, &e.Email, &e.EnrolledAt); err != nil {
			return nil, fmt.Errorf("failed to scan enrollment: %w", err)
		}
		enrollments = append(enrollments, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return enrollments, nil
}

// GetCourseIDsByEmail retrieves the IDs of all courses a user is enrolled in
func (r *enrollmentRepository) GetCourseIDsByEmail(ctx context.Context, email string) ([]int, error) {
	query := `
		SELECT course_id
		FROM enrollments
		WHERE email = ?
		ORDER BY course_id
	`

	rows, err := r.db.QueryContext(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("failed to query enrollments: %w", err)
	}
	defer rows.Close()

	var courseIDs []int
	for rows.Next() {
		var courseID int
		if err := rows.Scan(&courseID); err != nil {
			return nil, fmt.Errorf("failed to scan enrollment: %w", err)
		}
		courseIDs = append(courseIDs, courseID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return courseIDs, nil
}
