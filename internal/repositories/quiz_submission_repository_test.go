package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/israkkayum/lms-server-side/internal/models"
)

// setupQuizSubmissionTestRepository creates a quiz submission repository with a mock database
func setupQuizSubmissionTestRepository(t *testing.T) (*quizSubmissionRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewQuizSubmissionRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestQuizSubmissionRepository_GetByQuizAndEmail(t *testing.T) {
	columns := []string{"id", "quiz_id", "email", "answers", "score", "submitted_at"}
	submittedAt := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		errorContains string
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(columns).
					AddRow(1, 10, "student@example.com", `{"0":1,"1":3}`, 100.0, submittedAt)
				mock.ExpectQuery(`SELECT id, quiz_id, email, answers, score, submitted_at.*FROM quiz_submissions.*WHERE quiz_id = \? AND email = \?`).
					WithArgs(10, "student@example.com").
					WillReturnRows(rows)
			},
			expectedError: false,
		},
		{
			name: "submission not found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, quiz_id, email, answers, score, submitted_at.*FROM quiz_submissions.*WHERE quiz_id = \? AND email = \?`).
					WithArgs(10, "student@example.com").
					WillReturnError(sql.ErrNoRows)
			},
			expectedError: true,
			errorContains: "quiz submission not found",
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, quiz_id, email, answers, score, submitted_at.*FROM quiz_submissions.*WHERE quiz_id = \? AND email = \?`).
					WithArgs(10, "student@example.com").
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
			errorContains: "failed to get quiz submission",
		},
		{
			name: "invalid answers json",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(columns).
					AddRow(1, 10, "student@example.com", "{broken", 100.0, submittedAt)
				mock.ExpectQuery(`SELECT id, quiz_id, email, answers, score, submitted_at.*FROM quiz_submissions.*WHERE quiz_id = \? AND email = \?`).
					WithArgs(10, "student@example.com").
					WillReturnRows(rows)
			},
			expectedError: true,
			errorContains: "failed to unmarshal answers",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupQuizSubmissionTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			result, err := repo.GetByQuizAndEmail(context.Background(), 10, "student@example.com")

			if tt.expectedError {
				assert.Error(t, err)
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, result)
				assert.Equal(t, 10, result.QuizID)
				assert.Equal(t, float64(100), result.Score)
				assert.Equal(t, map[int]int{0: 1, 1: 3}, result.Answers)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestQuizSubmissionRepository_Exists(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedValue bool
	}{
		{
			name: "submission exists",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"exists"}).AddRow(true)
				mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM quiz_submissions WHERE quiz_id = \? AND email = \?\)`).
					WithArgs(10, "student@example.com").
					WillReturnRows(rows)
			},
			expectedError: false,
			expectedValue: true,
		},
		{
			name: "submission does not exist",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"exists"}).AddRow(false)
				mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM quiz_submissions WHERE quiz_id = \? AND email = \?\)`).
					WithArgs(10, "student@example.com").
					WillReturnRows(rows)
			},
			expectedError: false,
			expectedValue: false,
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM quiz_submissions WHERE quiz_id = \? AND email = \?\)`).
					WithArgs(10, "student@example.com").
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
			expectedValue: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupQuizSubmissionTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			result, err := repo.Exists(context.Background(), 10, "student@example.com")

			if tt.expectedError {
				assert.Error(t, err)
				assert.False(t, result)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedValue, result)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestQuizSubmissionRepository_Create(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedID    int
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO quiz_submissions \(quiz_id, email, answers, score\)`).
					WithArgs(10, "student@example.com", []byte(`{"0":1,"1":3}`), 100.0).
					WillReturnResult(sqlmock.NewResult(7, 1))
			},
			expectedError: false,
			expectedID:    7,
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO quiz_submissions \(quiz_id, email, answers, score\)`).
					WithArgs(10, "student@example.com", []byte(`{"0":1,"1":3}`), 100.0).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
		{
			name: "last insert id error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO quiz_submissions \(quiz_id, email, answers, score\)`).
					WithArgs(10, "student@example.com", []byte(`{"0":1,"1":3}`), 100.0).
					WillReturnResult(sqlmock.NewErrorResult(errors.New("last insert id error")))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupQuizSubmissionTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			submission := &models.QuizSubmission{
				QuizID:  10,
				Email:   "student@example.com",
				Answers: map[int]int{0: 1, 1: 3},
				Score:   100,
			}
			err := repo.Create(context.Background(), submission)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedID, submission.ID)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestQuizSubmissionRepository_Delete(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		errorContains string
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM quiz_submissions WHERE quiz_id = \? AND email = \?`).
					WithArgs(10, "student@example.com").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			expectedError: false,
		},
		{
			name: "submission not found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM quiz_submissions WHERE quiz_id = \? AND email = \?`).
					WithArgs(10, "student@example.com").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			expectedError: true,
			errorContains: "quiz submission not found",
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM quiz_submissions WHERE quiz_id = \? AND email = \?`).
					WithArgs(10, "student@example.com").
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
			errorContains: "failed to delete quiz submission",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupQuizSubmissionTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Delete(context.Background(), 10, "student@example.com")

			if tt.expectedError {
				assert.Error(t, err)
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestQuizSubmissionRepository_GetByQuizIDsAndEmail(t *testing.T) {
	columns := []string{"id", "quiz_id", "email", "answers", "score", "submitted_at"}
	submittedAt := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		quizIDs       []int
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedKeys  []int
	}{
		{
			name:    "success",
			quizIDs: []int{10, 11},
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(columns).
					AddRow(1, 10, "student@example.com", `{"0":1}`, 100.0, submittedAt).
					AddRow(2, 11, "student@example.com", `{"0":2}`, 50.0, submittedAt)
				mock.ExpectQuery(`SELECT id, quiz_id, email, answers, score, submitted_at.*FROM quiz_submissions.*WHERE email = \? AND quiz_id IN \(\?, \?\)`).
					WithArgs("student@example.com", 10, 11).
					WillReturnRows(rows)
			},
			expectedError: false,
			expectedKeys:  []int{10, 11},
		},
		{
			name:    "partial submissions",
			quizIDs: []int{10, 11},
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(columns).
					AddRow(1, 10, "student@example.com", `{"0":1}`, 100.0, submittedAt)
				mock.ExpectQuery(`SELECT id, quiz_id, email, answers, score, submitted_at.*FROM quiz_submissions.*WHERE email = \? AND quiz_id IN \(\?, \?\)`).
					WithArgs("student@example.com", 10, 11).
					WillReturnRows(rows)
			},
			expectedError: false,
			expectedKeys:  []int{10},
		},
		{
			name:          "no quiz ids skips the query",
			quizIDs:       nil,
			setupMock:     func(mock sqlmock.Sqlmock) {},
			expectedError: false,
			expectedKeys:  nil,
		},
		{
			name:    "database error",
			quizIDs: []int{10},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, quiz_id, email, answers, score, submitted_at.*FROM quiz_submissions.*WHERE email = \? AND quiz_id IN \(\?\)`).
					WithArgs("student@example.com", 10).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupQuizSubmissionTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			result, err := repo.GetByQuizIDsAndEmail(context.Background(), tt.quizIDs, "student@example.com")

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Len(t, result, len(tt.expectedKeys))
				for _, key := range tt.expectedKeys {
					assert.Contains(t, result, key)
				}
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
