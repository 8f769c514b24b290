package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupEnrollmentTestRepository creates an enrollment repository with a mock database
func setupEnrollmentTestRepository(t *testing.T) (*enrollmentRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewEnrollmentRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestEnrollmentRepository_Create(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT IGNORE INTO enrollments \(course_id, email\)`).
					WithArgs(1, "student@example.com").
					WillReturnResult(sqlmock.NewResult(1, 1))
			},
			expectedError: false,
		},
		{
			name: "duplicate enrollment is a no-op",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT IGNORE INTO enrollments \(course_id, email\)`).
					WithArgs(1, "student@example.com").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			expectedError: false,
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT IGNORE INTO enrollments \(course_id, email\)`).
					WithArgs(1, "student@example.com").
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupEnrollmentTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Create(context.Background(), 1, "student@example.com")

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEnrollmentRepository_GetByCourse(t *testing.T) {
	enrolledAt := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)

	t.Run("returns enrollments oldest first", func(t *testing.T) {
		repo, mock, cleanup := setupEnrollmentTestRepository(t)
		defer cleanup()

		rows := sqlmock.NewRows([]string{"id", "course_id", "email", "enrolled_at"}).
			AddRow(1, 1, "student@example.com", enrolledAt).
			AddRow(2, 1, "another@example.com", enrolledAt.Add(time.Hour))
		mock.ExpectQuery(`SELECT id, course_id, email, enrolled_at.*FROM enrollments.*WHERE course_id = \?.*ORDER BY enrolled_at`).
			WithArgs(1).
			WillReturnRows(rows)

		result, err := repo.GetByCourse(context.Background(), 1)

		assert.NoError(t, err)
		require.Len(t, result, 2)
		assert.Equal(t, "student@example.com", result[0].Email)
		assert.Equal(t, "another@example.com", result[1].Email)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no enrollments", func(t *testing.T) {
		repo, mock, cleanup := setupEnrollmentTestRepository(t)
		defer cleanup()

		mock.ExpectQuery(`SELECT id, course_id, email, enrolled_at.*FROM enrollments`).
			WithArgs(99).
			WillReturnRows(sqlmock.NewRows([]string{"id", "course_id", "email", "enrolled_at"}))

		result, err := repo.GetByCourse(context.Background(), 99)

		assert.NoError(t, err)
		assert.Empty(t, result)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		repo, mock, cleanup := setupEnrollmentTestRepository(t)
		defer cleanup()

		mock.ExpectQuery(`SELECT id, course_id, email, enrolled_at.*FROM enrollments`).
			WithArgs(1).
			WillReturnError(errors.New("database error"))

		result, err := repo.GetByCourse(context.Background(), 1)

		assert.Error(t, err)
		assert.Nil(t, result)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
