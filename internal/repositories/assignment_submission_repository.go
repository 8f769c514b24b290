package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/israkkayum/lms-server-side/internal/apperrors"
	"github.com/israkkayum/lms-server-side/internal/models"
)

type assignmentSubmissionRepository struct {
	db *sql.DB
}

// NewAssignmentSubmissionRepository creates a new assignment submission repository
func NewAssignmentSubmissionRepository(db *sql.DB) *assignmentSubmissionRepository {
	return &assignmentSubmissionRepository{
		db: db,
	}
}

const submissionColumns = "id, assignment_id, course_id, email, filename, stored_name, size, submitted_at, score, feedback, marked_at"

// scanSubmission reads one submission row
func scanSubmission(row interface{ Scan(...any) error }) (*models.AssignmentSubmission, error) {
	var submission models.AssignmentSubmission
	var score sql.NullInt64
	var feedback sql.NullString
	var markedAt sql.NullTime

	err := row.Scan(
		&submission.ID,
		&submission.AssignmentID,
		&submission.CourseID,
		&submission.Email,
		&submission.Filename,
		&submission.StoredName,
		&submission.Size,
		&submission.SubmittedAt,
		&score,
		&feedback,
		&markedAt,
	)
	if err != nil {
		return nil, err
	}

	if score.Valid {
		s := int(score.Int64)
		submission.Score = &s
	}
	if feedback.Valid {
		submission.Feedback = feedback.String
	}
	if markedAt.Valid {
		t := markedAt.Time
		submission.MarkedAt = &t
	}

	return &submission, nil
}

// GetByID retrieves a submission by its ID
func (r *assignmentSubmissionRepository) GetByID(ctx context.Context, id int) (*models.AssignmentSubmission, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM assignment_submissions
		WHERE id = ?
		LIMIT 1
	`, submissionColumns)

	submission, err := scanSubmission(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("submission not found: %w", apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get submission by id: %w", err)
	}

	return submission, nil
}

// GetByAssignmentAndEmail retrieves a user's submission for an assignment
func (r *assignmentSubmissionRepository) GetByAssignmentAndEmail(ctx context.Context, assignmentID, email string) (*models.AssignmentSubmission, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM assignment_submissions
		WHERE assignment_id = ? AND email = ?
		LIMIT 1
	`, submissionColumns)

	submission, err := scanSubmission(r.db.QueryRowContext(ctx, query, assignmentID, email))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("submission not found: %w", apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}

	return submission, nil
}

// GetByAssignment retrieves all submissions for an assignment
func (r *assignmentSubmissionRepository) GetByAssignment(ctx context.Context, assignmentID string) ([]models.AssignmentSubmission, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM assignment_submissions
		WHERE assignment_id = ?
		ORDER BY submitted_at
	`, submissionColumns)

	rows, err := r.db.QueryContext(ctx, query, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer rows.Close()

	var submissions []models.AssignmentSubmission
	for rows.Next() {
		submission, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		submissions = append(submissions, *submission)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return submissions, nil
}

// GetByCourseAndEmail retrieves a user's submissions in a course keyed by assignment ID
func (r *assignmentSubmissionRepository) GetByCourseAndEmail(ctx context.Context, courseID int, email string) (map[string]*models.AssignmentSubmission, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM assignment_submissions
		WHERE course_id = ? AND email = ?
	`, submissionColumns)

	rows, err := r.db.QueryContext(ctx, query, courseID, email)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer rows.Close()

	submissions := make(map[string]*models.AssignmentSubmission)
	for rows.Next() {
		submission, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		submissions[submission.AssignmentID] = submission
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return submissions, nil
}

// Exists checks if a user already submitted for an assignment
func (r *assignmentSubmissionRepository) Exists(ctx context.Context, assignmentID, email string) (bool, error) {
	query := "SELECT EXISTS(SELECT 1 FROM assignment_submissions WHERE assignment_id = ? AND email = ?)"

	var exists bool
	err := r.db.QueryRowContext(ctx, query, assignmentID, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check submission existence: %w", err)
	}

	return exists, nil
}

// Create stores a new assignment submission
func (r *assignmentSubmissionRepository) Create(ctx context.Context, submission *models.AssignmentSubmission) error {
	query := `
		INSERT INTO assignment_submissions (assignment_id, course_id, email, filename, stored_name, size)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		submission.AssignmentID,
		submission.CourseID,
		submission.Email,
		submission.Filename,
		submission.StoredName,
		submission.Size,
	)
	if err != nil {
		return fmt.Errorf("failed to create submission: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	submission.ID = int(id)
	return nil
}

// Mark records an instructor's score and feedback on an ungraded submission.
// A submission can be marked only once; marking a graded submission affects
// no rows and reports a conflict.
func (r *assignmentSubmissionRepository) Mark(ctx context.Context, id, score int, feedback string) error {
	query := `
		UPDATE assignment_submissions
		SET score = ?, feedback = ?, marked_at = NOW()
		WHERE id = ? AND score IS NULL
	`

	result, err := r.db.ExecContext(ctx, query, score, feedback, id)
	if err != nil {
		return fmt.Errorf("failed to mark submission: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("submission already marked or not found: %w", apperrors.ErrConflict)
	}

	return nil
}
