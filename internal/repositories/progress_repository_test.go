package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupProgressTestRepository creates a progress repository with a mock database
func setupProgressTestRepository(t *testing.T) (*progressRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewProgressRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestProgressRepository_Exists(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedValue bool
	}{
		{
			name: "completion exists",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"exists"}).AddRow(true)
				mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM lesson_completions WHERE course_id = \? AND lesson_id = \? AND email = \?\)`).
					WithArgs(1, 5, "student@example.com").
					WillReturnRows(rows)
			},
			expectedError: false,
			expectedValue: true,
		},
		{
			name: "completion does not exist",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"exists"}).AddRow(false)
				mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM lesson_completions WHERE course_id = \? AND lesson_id = \? AND email = \?\)`).
					WithArgs(1, 5, "student@example.com").
					WillReturnRows(rows)
			},
			expectedError: false,
			expectedValue: false,
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM lesson_completions WHERE course_id = \? AND lesson_id = \? AND email = \?\)`).
					WithArgs(1, 5, "student@example.com").
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
			expectedValue: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupProgressTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			result, err := repo.Exists(context.Background(), 1, 5, "student@example.com")

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

func TestProgressRepository_Create(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT IGNORE INTO lesson_completions \(course_id, lesson_id, email\)`).
					WithArgs(1, 5, "student@example.com").
					WillReturnResult(sqlmock.NewResult(1, 1))
			},
			expectedError: false,
		},
		{
			name: "duplicate completion is a no-op",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT IGNORE INTO lesson_completions \(course_id, lesson_id, email\)`).
					WithArgs(1, 5, "student@example.com").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			expectedError: false,
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT IGNORE INTO lesson_completions \(course_id, lesson_id, email\)`).
					WithArgs(1, 5, "student@example.com").
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupProgressTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Create(context.Background(), 1, 5, "student@example.com")

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestProgressRepository_Delete(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM lesson_completions WHERE course_id = \? AND lesson_id = \? AND email = \?`).
					WithArgs(1, 5, "student@example.com").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			expectedError: false,
		},
		{
			name: "nothing to delete",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM lesson_completions WHERE course_id = \? AND lesson_id = \? AND email = \?`).
					WithArgs(1, 5, "student@example.com").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			expectedError: false,
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM lesson_completions WHERE course_id = \? AND lesson_id = \? AND email = \?`).
					WithArgs(1, 5, "student@example.com").
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupProgressTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Delete(context.Background(), 1, 5, "student@example.com")

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestProgressRepository_GetCompletedLessonIDs(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedIDs   []int
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"lesson_id"}).
					AddRow(3).
					AddRow(5).
					AddRow(8)
				mock.ExpectQuery(`SELECT lesson_id.*FROM lesson_completions.*WHERE course_id = \? AND email = \?.*ORDER BY lesson_id`).
					WithArgs(1, "student@example.com").
					WillReturnRows(rows)
			},
			expectedError: false,
			expectedIDs:   []int{3, 5, 8},
		},
		{
			name: "no completions",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"lesson_id"})
				mock.ExpectQuery(`SELECT lesson_id.*FROM lesson_completions.*WHERE course_id = \? AND email = \?.*ORDER BY lesson_id`).
					WithArgs(1, "student@example.com").
					WillReturnRows(rows)
			},
			expectedError: false,
			expectedIDs:   nil,
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT lesson_id.*FROM lesson_completions.*WHERE course_id = \? AND email = \?.*ORDER BY lesson_id`).
					WithArgs(1, "student@example.com").
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
		{
			name: "scan error",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"lesson_id"}).AddRow("invalid")
				mock.ExpectQuery(`SELECT lesson_id.*FROM lesson_completions.*WHERE course_id = \? AND email = \?.*ORDER BY lesson_id`).
					WithArgs(1, "student@example.com").
					WillReturnRows(rows)
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupProgressTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			result, err := repo.GetCompletedLessonIDs(context.Background(), 1, "student@example.com")

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedIDs, result)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
