package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/israkkayum/lms-server-side/internal/models"
)

// setupCourseTestRepository creates a course repository with a mock database
func setupCourseTestRepository(t *testing.T) (*courseRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewCourseRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestNewCourseRepository(t *testing.T) {
	db := &sql.DB{}

	repo := NewCourseRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestCourseRepository_GetByID(t *testing.T) {
	columns := []string{"id", "site_id", "name", "description", "category", "tags", "thumbnail", "created_by"}

	tests := []struct {
		name          string
		id            int
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		errorContains string
	}{
		{
			name: "success",
			id:   1,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(columns).
					AddRow(1, 2, "Algebra", "Intro course", "math", `["algebra","basics"]`, "", "tutor@example.com")
				mock.ExpectQuery(`SELECT id, site_id, name, description, category, tags, thumbnail, created_by.*FROM courses.*WHERE id = \?`).
					WithArgs(1).
					WillReturnRows(rows)
			},
			expectedError: false,
		},
		{
			name: "empty tags column",
			id:   1,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(columns).
					AddRow(1, 2, "Algebra", "Intro course", "math", "", "", "tutor@example.com")
				mock.ExpectQuery(`SELECT id, site_id, name, description, category, tags, thumbnail, created_by.*FROM courses.*WHERE id = \?`).
					WithArgs(1).
					WillReturnRows(rows)
			},
			expectedError: false,
		},
		{
			name: "course not found",
			id:   999,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, site_id, name, description, category, tags, thumbnail, created_by.*FROM courses.*WHERE id = \?`).
					WithArgs(999).
					WillReturnError(sql.ErrNoRows)
			},
			expectedError: true,
			errorContains: "course not found",
		},
		{
			name: "database error",
			id:   1,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, site_id, name, description, category, tags, thumbnail, created_by.*FROM courses.*WHERE id = \?`).
					WithArgs(1).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
			errorContains: "failed to get course by id",
		},
		{
			name: "invalid tags json",
			id:   1,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(columns).
					AddRow(1, 2, "Algebra", "Intro course", "math", "{broken", "", "tutor@example.com")
				mock.ExpectQuery(`SELECT id, site_id, name, description, category, tags, thumbnail, created_by.*FROM courses.*WHERE id = \?`).
					WithArgs(1).
					WillReturnRows(rows)
			},
			expectedError: true,
			errorContains: "failed to unmarshal tags",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupCourseTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			result, err := repo.GetByID(context.Background(), tt.id)

			if tt.expectedError {
				assert.Error(t, err)
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, result)
				assert.Equal(t, 1, result.ID)
				assert.Equal(t, "Algebra", result.Name)
				assert.NotNil(t, result.Tags)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCourseRepository_GetBySiteID(t *testing.T) {
	columns := []string{"id", "name", "category", "thumbnail", "total_lessons"}

	tests := []struct {
		name          string
		siteID        int
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedCount int
	}{
		{
			name:   "success",
			siteID: 2,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(columns).
					AddRow(1, "Algebra", "math", "", 12).
					AddRow(2, "Geometry", "math", "", 8)
				mock.ExpectQuery(`SELECT.*FROM courses c.*WHERE c.site_id = \?.*GROUP BY`).
					WithArgs(2).
					WillReturnRows(rows)
			},
			expectedError: false,
			expectedCount: 2,
		},
		{
			name:   "empty results",
			siteID: 2,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(columns)
				mock.ExpectQuery(`SELECT.*FROM courses c.*WHERE c.site_id = \?.*GROUP BY`).
					WithArgs(2).
					WillReturnRows(rows)
			},
			expectedError: false,
			expectedCount: 0,
		},
		{
			name:   "database error",
			siteID: 2,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT.*FROM courses c.*WHERE c.site_id = \?.*GROUP BY`).
					WithArgs(2).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
		{
			name:   "scan error",
			siteID: 2,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(columns).
					AddRow("invalid", "Algebra", "math", "", 12)
				mock.ExpectQuery(`SELECT.*FROM courses c.*WHERE c.site_id = \?.*GROUP BY`).
					WithArgs(2).
					WillReturnRows(rows)
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupCourseTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			result, err := repo.GetBySiteID(context.Background(), tt.siteID)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Len(t, result, tt.expectedCount)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCourseRepository_Create(t *testing.T) {
	tests := []struct {
		name          string
		course        *models.Course
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedID    int
	}{
		{
			name: "success",
			course: &models.Course{
				SiteID:      2,
				Name:        "Algebra",
				Description: "Intro course",
				Category:    "math",
				Tags:        []string{"algebra"},
				CreatedBy:   "tutor@example.com",
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO courses \(site_id, name, description, category, tags, thumbnail, created_by\)`).
					WithArgs(2, "Algebra", "Intro course", "math", `["algebra"]`, "", "tutor@example.com").
					WillReturnResult(sqlmock.NewResult(1, 1))
			},
			expectedError: false,
			expectedID:    1,
		},
		{
			name: "nil tags stored as empty array",
			course: &models.Course{
				SiteID:      2,
				Name:        "Algebra",
				Description: "Intro course",
				Category:    "math",
				CreatedBy:   "tutor@example.com",
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO courses \(site_id, name, description, category, tags, thumbnail, created_by\)`).
					WithArgs(2, "Algebra", "Intro course", "math", "[]", "", "tutor@example.com").
					WillReturnResult(sqlmock.NewResult(5, 1))
			},
			expectedError: false,
			expectedID:    5,
		},
		{
			name: "database error",
			course: &models.Course{
				SiteID:    2,
				Name:      "Algebra",
				CreatedBy: "tutor@example.com",
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO courses`).
					WithArgs(2, "Algebra", "", "", "[]", "", "tutor@example.com").
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
		{
			name: "last insert id error",
			course: &models.Course{
				SiteID:    2,
				Name:      "Algebra",
				CreatedBy: "tutor@example.com",
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO courses`).
					WithArgs(2, "Algebra", "", "", "[]", "", "tutor@example.com").
					WillReturnResult(sqlmock.NewErrorResult(errors.New("last insert id error")))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupCourseTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Create(context.Background(), tt.course)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedID, tt.course.ID)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCourseRepository_Update(t *testing.T) {
	tests := []struct {
		name          string
		course        *models.Course
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		errorContains string
	}{
		{
			name: "success partial update - name and category",
			course: &models.Course{
				ID:       1,
				Name:     "Updated Name",
				Category: "science",
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE courses.*SET name = \?, category = \?.*WHERE id = \?`).
					WithArgs("Updated Name", "science", 1).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			expectedError: false,
		},
		{
			name: "success partial update - tags only",
			course: &models.Course{
				ID:   1,
				Tags: []string{"updated"},
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE courses.*SET tags = \?.*WHERE id = \?`).
					WithArgs(`["updated"]`, 1).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			expectedError: false,
		},
		{
			name: "no fields to update",
			course: &models.Course{
				ID: 1,
			},
			setupMock:     func(mock sqlmock.Sqlmock) {},
			expectedError: true,
			errorContains: "no fields to update",
		},
		{
			name: "course not found",
			course: &models.Course{
				ID:   999,
				Name: "Updated Name",
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE courses.*SET name = \?.*WHERE id = \?`).
					WithArgs("Updated Name", 999).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			expectedError: true,
			errorContains: "course not found",
		},
		{
			name: "database error",
			course: &models.Course{
				ID:   1,
				Name: "Updated Name",
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE courses.*SET name = \?.*WHERE id = \?`).
					WithArgs("Updated Name", 1).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
			errorContains: "failed to update course",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupCourseTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Update(context.Background(), tt.course)

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

func TestCourseRepository_Delete(t *testing.T) {
	tests := []struct {
		name          string
		id            int
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		errorContains string
	}{
		{
			name: "success",
			id:   1,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM courses WHERE id = \?`).
					WithArgs(1).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			expectedError: false,
		},
		{
			name: "course not found",
			id:   999,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM courses WHERE id = \?`).
					WithArgs(999).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			expectedError: true,
			errorContains: "course not found",
		},
		{
			name: "database error",
			id:   1,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM courses WHERE id = \?`).
					WithArgs(1).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
			errorContains: "failed to delete course",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupCourseTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Delete(context.Background(), tt.id)

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

func TestCourseRepository_CountLessons(t *testing.T) {
	tests := []struct {
		name          string
		courseID      int
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedCount int
	}{
		{
			name:     "success",
			courseID: 1,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"COUNT(l.id)"}).AddRow(12)
				mock.ExpectQuery(`SELECT COUNT\(l.id\).*FROM lessons l.*WHERE s.course_id = \?`).
					WithArgs(1).
					WillReturnRows(rows)
			},
			expectedError: false,
			expectedCount: 12,
		},
		{
			name:     "no lessons",
			courseID: 1,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"COUNT(l.id)"}).AddRow(0)
				mock.ExpectQuery(`SELECT COUNT\(l.id\).*FROM lessons l.*WHERE s.course_id = \?`).
					WithArgs(1).
					WillReturnRows(rows)
			},
			expectedError: false,
			expectedCount: 0,
		},
		{
			name:     "database error",
			courseID: 1,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT COUNT\(l.id\).*FROM lessons l.*WHERE s.course_id = \?`).
					WithArgs(1).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupCourseTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			count, err := repo.CountLessons(context.Background(), tt.courseID)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Zero(t, count)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedCount, count)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCourseRepository_CheckOwnership(t *testing.T) {
	tests := []struct {
		name          string
		id            int
		email         string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedValue bool
	}{
		{
			name:  "success - course belongs to user",
			id:    1,
			email: "tutor@example.com",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"EXISTS(SELECT 1 FROM courses WHERE id = ? AND created_by = ?)"}).
					AddRow(true)
				mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM courses WHERE id = \? AND created_by = \?\)`).
					WithArgs(1, "tutor@example.com").
					WillReturnRows(rows)
			},
			expectedError: false,
			expectedValue: true,
		},
		{
			name:  "success - course does not belong to user",
			id:    1,
			email: "other@example.com",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"EXISTS(SELECT 1 FROM courses WHERE id = ? AND created_by = ?)"}).
					AddRow(false)
				mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM courses WHERE id = \? AND created_by = \?\)`).
					WithArgs(1, "other@example.com").
					WillReturnRows(rows)
			},
			expectedError: false,
			expectedValue: false,
		},
		{
			name:  "database error",
			id:    1,
			email: "tutor@example.com",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM courses WHERE id = \? AND created_by = \?\)`).
					WithArgs(1, "tutor@example.com").
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
			expectedValue: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupCourseTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			result, err := repo.CheckOwnership(context.Background(), tt.id, tt.email)

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
