package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/israkkayum/lms-server-side/internal/apperrors"
	"github.com/israkkayum/lms-server-side/internal/models"
)

type quizSubmissionRepository struct {
	db *sql.DB
}

// NewQuizSubmissionRepository creates a new quiz submission repository
func NewQuizSubmissionRepository(db *sql.DB) *quizSubmissionRepository {
	return &quizSubmissionRepository{
		db: db,
	}
}

// GetByQuizAndEmail retrieves a user's submission for a quiz
func (r *quizSubmissionRepository) GetByQuizAndEmail(ctx context.Context, quizID int, email string) (*models.QuizSubmission, error) {
	query := `
		SELECT id, quiz_id, email, answers, score, submitted_at
		FROM quiz_submissions
		WHERE quiz_id = ? AND email = ?
		LIMIT 1
	`

	var submission models.QuizSubmission
	var answers []byte
	err := r.db.QueryRowContext(ctx, query, quizID, email).Scan(
		&submission.ID,
		&submission.QuizID,
		&submission.Email,
		&answers,
		&submission.Score,
		&submission.SubmittedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("quiz submission not found: %w", apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz submission: %w", err)
	}

	if err := json.Unmarshal(answers, &submission.Answers); err != nil {
		return nil, fmt.Errorf("failed to unmarshal answers: %w", err)
	}

	return &submission, nil
}

// Exists checks if a user already has a submission for a quiz
func (r *quizSubmissionRepository) Exists(ctx context.Context, quizID int, email string) (bool, error) {
	query := "SELECT EXISTS(SELECT 1 FROM quiz_submissions WHERE quiz_id = ? AND email = ?)"

	var exists bool
	err := r.db.QueryRowContext(ctx, query, quizID, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check quiz submission existence: %w", err)
	}

	return exists, nil
}

// Create stores a graded quiz submission
func (r *quizSubmissionRepository) Create(ctx context.Context, submission *models.QuizSubmission) error {
	answers, err := json.Marshal(submission.Answers)
	if err != nil {
		return fmt.Errorf("failed to marshal answers: %w", err)
	}

	query := `
		INSERT INTO quiz_submissions (quiz_id, email, answers, score)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		submission.QuizID,
		submission.Email,
		answers,
		submission.Score,
	)
	if err != nil {
		return fmt.Errorf("failed to create quiz submission: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	submission.ID = int(id)
	return nil
}

// Delete removes a user's submission for a quiz (retake)
func (r *quizSubmissionRepository) Delete(ctx context.Context, quizID int, email string) error {
	query := "DELETE FROM quiz_submissions WHERE quiz_id = ? AND email = ?"

	result, err := r.db.ExecContext(ctx, query, quizID, email)
	if err != nil {
		return fmt.Errorf("failed to delete quiz submission: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("quiz submission not found: %w", apperrors.ErrNotFound)
	}

	return nil
}

// GetByQuizIDsAndEmail retrieves a user's submissions for a set of quizzes
func (r *quizSubmissionRepository) GetByQuizIDsAndEmail(ctx context.Context, quizIDs []int, email string) (map[int]*models.QuizSubmission, error) {
	submissions := make(map[int]*models.QuizSubmission)
	if len(quizIDs) == 0 {
		return submissions, nil
	}

	query := `
		SELECT id, quiz_id, email, answers, score, submitted_at
		FROM quiz_submissions
		WHERE email = ? AND quiz_id IN (`
	args := []any{email}
	for i, id := range quizIDs {
		if i > 0 {
			query += ", "
		}
		query += "?"
		args = append(args, id)
	}
	query += ")"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query quiz submissions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var submission models.QuizSubmission
		var answers []byte
		err := rows.Scan(
			&submission.ID,
			&submission.QuizID,
			&submission.Email,
			&answers,
			&submission.Score,
			&submission.SubmittedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quiz submission: %w", err)
		}
		if err := json.Unmarshal(answers, &submission.Answers); err != nil {
			return nil, fmt.Errorf("failed to unmarshal answers: %w", err)
		}
		submissions[submission.QuizID] = &submission
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return submissions, nil
}
