package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/israkkayum/lms-server-side/internal/apperrors"
	"github.com/israkkayum/lms-server-side/internal/models"
	"github.com/israkkayum/lms-server-side/internal/policy"
)

// AssignmentSubmissionRepository defines methods for assignment submission data access
type AssignmentSubmissionRepository interface {
	// GetByID retrieves a submission by its ID
	GetByID(ctx context.Context, id int) (*models.AssignmentSubmission, error)
	// GetByAssignmentAndEmail retrieves a user's submission for an assignment
	GetByAssignmentAndEmail(ctx context.Context, assignmentID, email string) (*models.AssignmentSubmission, error)
	// GetByAssignment retrieves all submissions for an assignment
	GetByAssignment(ctx context.Context, assignmentID string) ([]models.AssignmentSubmission, error)
	// GetByCourseAndEmail retrieves a user's submissions in a course, keyed by assignment ID
	GetByCourseAndEmail(ctx context.Context, courseID int, email string) (map[string]*models.AssignmentSubmission, error)
	// Exists checks if a user has submitted an assignment
	Exists(ctx context.Context, assignmentID, email string) (bool, error)
	// Create records an assignment submission and sets its ID
	Create(ctx context.Context, submission *models.AssignmentSubmission) error
	// Mark grades an unmarked submission; marking twice fails
	Mark(ctx context.Context, id, score int, feedback string) error
}

// FileStorage stores submission files grouped per assignment
type FileStorage interface {
	Create(assignmentID, storedName string) (io.WriteCloser, error)
	Open(assignmentID, storedName string) (io.ReadCloser, error)
	Delete(assignmentID, storedName string) error
}

type assignmentService struct {
	submissionRepo AssignmentSubmissionRepository
	contentRepo    ContentRepository
	lessonRepo     LessonRepository
	courseRepo     CourseRepository
	storage        FileStorage
	completer      LessonCompleter
	storedName     func(extension string) string
}

// NewAssignmentService creates a new assignment service
func NewAssignmentService(
	submissionRepo AssignmentSubmissionRepository,
	contentRepo ContentRepository,
	lessonRepo LessonRepository,
	courseRepo CourseRepository,
	storage FileStorage,
	completer LessonCompleter,
	storedName func(extension string) string,
) *assignmentService {
	return &assignmentService{
		submissionRepo: submissionRepo,
		contentRepo:    contentRepo,
		lessonRepo:     lessonRepo,
		courseRepo:     courseRepo,
		storage:        storage,
		completer:      completer,
		storedName:     storedName,
	}
}

// Submit validates and stores an assignment submission file and records it.
// The file is rejected before anything is written when it exceeds the size
// limit or carries a disallowed extension. An accepted submission completes
// the lesson; an assignment holds at most one submission per user.
func (s *assignmentService) Submit(ctx context.Context, req *models.SubmitAssignmentRequest, file io.Reader) (*models.AssignmentSubmission, error) {
	if err := policy.ValidateSubmissionFile(req.Filename, req.Size); err != nil {
		return nil, fmt.Errorf("%v: %w", err, apperrors.ErrValidation)
	}

	ok, err := s.lessonRepo.ExistsInCourse(ctx, req.CourseID, req.LessonID)
	if err != nil {
		return nil, fmt.Errorf("failed to check lesson: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("lesson not found in course: %w", apperrors.ErrNotFound)
	}

	exists, err := s.submissionRepo.Exists(ctx, req.AssignmentID, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check submission: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("assignment already submitted: %w", apperrors.ErrConflict)
	}

	storedName := s.storedName(filepath.Ext(req.Filename))
	dst, err := s.storage.Create(req.AssignmentID, storedName)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}

	written, err := io.Copy(dst, io.LimitReader(file, policy.MaxSubmissionSize+1))
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err == nil && written > policy.MaxSubmissionSize {
		err = fmt.Errorf("file exceeds size limit: %w", apperrors.ErrValidation)
	}
	if err != nil {
		s.storage.Delete(req.AssignmentID, storedName)
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	submission := &models.AssignmentSubmission{
		AssignmentID: req.AssignmentID,
		CourseID:     req.CourseID,
		Email:        req.Email,
		Filename:     req.Filename,
		StoredName:   storedName,
		Size:         written,
	}
	if err := s.submissionRepo.Create(ctx, submission); err != nil {
		s.storage.Delete(req.AssignmentID, storedName)
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}

	if err := s.completer.CompleteLessonForContent(ctx, req.CourseID, req.LessonID, req.Email); err != nil {
		return nil, fmt.Errorf("failed to complete lesson: %w", err)
	}

	return submission, nil
}

// GetSubmission retrieves a user's submission for an assignment
func (s *assignmentService) GetSubmission(ctx context.Context, assignmentID, email string) (*models.AssignmentSubmission, error) {
	return s.submissionRepo.GetByAssignmentAndEmail(ctx, assignmentID, email)
}

// ListSubmissions retrieves all submissions for an assignment; restricted to
// the course owner
func (s *assignmentService) ListSubmissions(ctx context.Context, assignmentID string, courseID int, email string) ([]models.AssignmentSubmission, error) {
	if err := s.checkCourseOwnership(ctx, courseID, email); err != nil {
		return nil, err
	}
	return s.submissionRepo.GetByAssignment(ctx, assignmentID)
}

// Mark grades a submission. A submission is marked at most once; the score
// must be within the allowed range.
func (s *assignmentService) Mark(ctx context.Context, submissionID int, req *models.MarkSubmissionRequest, email string) error {
	if err := policy.ValidateMark(req.Score); err != nil {
		return fmt.Errorf("%v: %w", err, apperrors.ErrValidation)
	}

	submission, err := s.submissionRepo.GetByID(ctx, submissionID)
	if err != nil {
		return fmt.Errorf("failed to get submission: %w", err)
	}

	if err := s.checkCourseOwnership(ctx, submission.CourseID, email); err != nil {
		return err
	}

	return s.submissionRepo.Mark(ctx, submissionID, req.Score, req.Feedback)
}

// Download opens a submission's stored file for reading. Students may only
// download their own submission; the course owner may download any.
func (s *assignmentService) Download(ctx context.Context, submissionID int, email string) (*models.AssignmentSubmission, io.ReadCloser, error) {
	submission, err := s.submissionRepo.GetByID(ctx, submissionID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get submission: %w", err)
	}

	if submission.Email != email {
		if err := s.checkCourseOwnership(ctx, submission.CourseID, email); err != nil {
			return nil, nil, err
		}
	}

	file, err := s.storage.Open(submission.AssignmentID, submission.StoredName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}

	return submission, file, nil
}

// checkCourseOwnership verifies the course belongs to the user
func (s *assignmentService) checkCourseOwnership(ctx context.Context, courseID int, email string) error {
	owner, err := s.courseRepo.CheckOwnership(ctx, courseID, email)
	if err != nil {
		return fmt.Errorf("failed to check ownership: %w", err)
	}
	if !owner {
		return fmt.Errorf("course does not belong to user: %w", apperrors.ErrForbidden)
	}
	return nil
}
