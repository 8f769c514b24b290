package services

import (
	"context"
	"fmt"
	"math"

	"github.com/israkkayum/lms-server-side/internal/apperrors"
	"github.com/israkkayum/lms-server-side/internal/models"
)

// ProgressRepository defines methods for lesson completion data access
type ProgressRepository interface {
	// Exists checks if a completion is recorded for the lesson and user
	Exists(ctx context.Context, courseID, lessonID int, email string) (bool, error)
	// Create records a lesson completion; recording twice is a no-op
	Create(ctx context.Context, courseID, lessonID int, email string) error
	// Delete removes a recorded completion
	Delete(ctx context.Context, courseID, lessonID int, email string) error
	// GetCompletedLessonIDs retrieves the IDs of completed lessons in a course
	GetCompletedLessonIDs(ctx context.Context, courseID int, email string) ([]int, error)
}

// EnrollmentRepository defines methods for enrollment data access
type EnrollmentRepository interface {
	// Create enrolls a user in a course; enrolling twice is a no-op
	Create(ctx context.Context, courseID int, email string) error
	// Delete removes a user's enrollment
	Delete(ctx context.Context, courseID int, email string) error
	// Exists checks if a user is enrolled in a course
	Exists(ctx context.Context, courseID int, email string) (bool, error)
	// GetByCourse retrieves all enrollments in a course
	GetByCourse(ctx context.Context, courseID int) ([]models.Enrollment, error)
	// GetCourseIDsByEmail retrieves the IDs of courses a user is enrolled in
	GetCourseIDsByEmail(ctx context.Context, email string) ([]int, error)
}

type progressService struct {
	progressRepo   ProgressRepository
	enrollmentRepo EnrollmentRepository
	courseRepo     CourseRepository
	lessonRepo     LessonRepository
	contentRepo    ContentRepository
}

// NewProgressService creates a new progress service
func NewProgressService(
	progressRepo ProgressRepository,
	enrollmentRepo EnrollmentRepository,
	courseRepo CourseRepository,
	lessonRepo LessonRepository,
	contentRepo ContentRepository,
) *progressService {
	return &progressService{
		progressRepo:   progressRepo,
		enrollmentRepo: enrollmentRepo,
		courseRepo:     courseRepo,
		lessonRepo:     lessonRepo,
		contentRepo:    contentRepo,
	}
}

// GetProgress reports a user's completion state for a course. The percentage
// is the completed share of all lessons, rounded to the nearest whole number;
// a course with no lessons reports zero percent.
func (s *progressService) GetProgress(ctx context.Context, courseID int, email string) (*models.Progress, error) {
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	completed, err := s.progressRepo.GetCompletedLessonIDs(ctx, courseID, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get completed lessons: %w", err)
	}

	total, err := s.courseRepo.CountLessons(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to count lessons: %w", err)
	}

	progress := &models.Progress{
		CourseID:         courseID,
		CompletedLessons: completed,
		TotalLessons:     total,
	}
	if total > 0 {
		progress.Percentage = int(math.Round(float64(len(completed)) / float64(total) * 100))
	}

	return progress, nil
}

// MarkLessonComplete records an explicit lesson completion. Lessons with quiz
// or assignment content complete through submissions and cannot be marked
// directly. Marking an already completed lesson is a no-op.
func (s *progressService) MarkLessonComplete(ctx context.Context, courseID, lessonID int, email string) error {
	ok, err := s.lessonRepo.ExistsInCourse(ctx, courseID, lessonID)
	if err != nil {
		return fmt.Errorf("failed to check lesson: %w", err)
	}
	if !ok {
		return fmt.Errorf("lesson not found in course: %w", apperrors.ErrNotFound)
	}

	content, err := s.contentRepo.GetByLessonID(ctx, lessonID)
	if err != nil && !isNotFound(err) {
		return fmt.Errorf("failed to get lesson content: %w", err)
	}
	if content != nil {
		switch content.Type {
		case models.ContentTypeQuiz, models.ContentTypeAssignment:
			return fmt.Errorf("lesson completes through submission: %w", apperrors.ErrValidation)
		}
	}

	return s.progressRepo.Create(ctx, courseID, lessonID, email)
}

// CompleteLessonForContent records a completion triggered by a content event
// such as a passing quiz score, an accepted assignment submission, or a
// resource download. The completion is recorded at most once.
func (s *progressService) CompleteLessonForContent(ctx context.Context, courseID, lessonID int, email string) error {
	exists, err := s.progressRepo.Exists(ctx, courseID, lessonID, email)
	if err != nil {
		return fmt.Errorf("failed to check completion: %w", err)
	}
	if exists {
		return nil
	}

	return s.progressRepo.Create(ctx, courseID, lessonID, email)
}

// ResetLessonCompletion removes a recorded completion, used when a quiz
// submission is withdrawn for a retake
func (s *progressService) ResetLessonCompletion(ctx context.Context, courseID, lessonID int, email string) error {
	return s.progressRepo.Delete(ctx, courseID, lessonID, email)
}

// Enroll enrolls a user in a course. Enrolling twice is a no-op.
func (s *progressService) Enroll(ctx context.Context, courseID int, email string) error {
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return fmt.Errorf("failed to get course: %w", err)
	}

	return s.enrollmentRepo.Create(ctx, courseID, email)
}

// Unenroll removes a user's enrollment from a course
func (s *progressService) Unenroll(ctx context.Context, courseID int, email string) error {
	return s.enrollmentRepo.Delete(ctx, courseID, email)
}

// IsEnrolled checks if a user is enrolled in a course
func (s *progressService) IsEnrolled(ctx context.Context, courseID int, email string) (bool, error) {
	return s.enrollmentRepo.Exists(ctx, courseID, email)
}

// GetRoster retrieves all enrollments in a course; consumed by other services
// over the API-key channel
func (s *progressService) GetRoster(ctx context.Context, courseID int) ([]models.Enrollment, error) {
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	enrollments, err := s.enrollmentRepo.GetByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get enrollments: %w", err)
	}

	return enrollments, nil
}
