package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/israkkayum/lms-server-side/internal/apperrors"
	"github.com/israkkayum/lms-server-side/internal/models"
	"github.com/israkkayum/lms-server-side/internal/policy"
)

// QuizSubmissionRepository defines methods for quiz submission data access
type QuizSubmissionRepository interface {
	// GetByQuizAndEmail retrieves a user's submission for a quiz
	GetByQuizAndEmail(ctx context.Context, quizID int, email string) (*models.QuizSubmission, error)
	// Exists checks if a user has submitted a quiz
	Exists(ctx context.Context, quizID int, email string) (bool, error)
	// Create records a quiz submission and sets its ID
	Create(ctx context.Context, submission *models.QuizSubmission) error
	// Delete removes a user's submission for a quiz
	Delete(ctx context.Context, quizID int, email string) error
	// GetByQuizIDsAndEmail retrieves a user's submissions for a set of quizzes
	GetByQuizIDsAndEmail(ctx context.Context, quizIDs []int, email string) (map[int]*models.QuizSubmission, error)
}

// LessonCompleter records and withdraws content-triggered lesson completions
type LessonCompleter interface {
	CompleteLessonForContent(ctx context.Context, courseID, lessonID int, email string) error
	ResetLessonCompletion(ctx context.Context, courseID, lessonID int, email string) error
}

type quizService struct {
	submissionRepo QuizSubmissionRepository
	contentRepo    ContentRepository
	lessonRepo     LessonRepository
	completer      LessonCompleter
}

// NewQuizService creates a new quiz service
func NewQuizService(
	submissionRepo QuizSubmissionRepository,
	contentRepo ContentRepository,
	lessonRepo LessonRepository,
	completer LessonCompleter,
) *quizService {
	return &quizService{
		submissionRepo: submissionRepo,
		contentRepo:    contentRepo,
		lessonRepo:     lessonRepo,
		completer:      completer,
	}
}

// GetSubmission retrieves a user's submission for a quiz
func (s *quizService) GetSubmission(ctx context.Context, quizID int, email string) (*models.QuizSubmission, error) {
	return s.submissionRepo.GetByQuizAndEmail(ctx, quizID, email)
}

// Submit grades a user's answers against the quiz and records the submission.
// A quiz can hold at most one submission per user; a passing score completes
// the lesson.
func (s *quizService) Submit(ctx context.Context, quizID int, email string, answers map[int]int) (*models.QuizResult, error) {
	quiz, payload, err := s.getQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}

	exists, err := s.submissionRepo.Exists(ctx, quizID, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check submission: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("quiz already submitted: %w", apperrors.ErrConflict)
	}

	correct := 0
	for i, question := range payload.Questions {
		if answer, ok := answers[i]; ok && answer == question.CorrectOptionIndex {
			correct++
		}
	}
	total := len(payload.Questions)
	score := float64(correct*100) / float64(total)

	submission := &models.QuizSubmission{
		QuizID:  quizID,
		Email:   email,
		Answers: answers,
		Score:   score,
	}
	if err := s.submissionRepo.Create(ctx, submission); err != nil {
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}

	if policy.IsPassingScore(score) {
		courseID, err := s.lessonRepo.GetCourseID(ctx, quiz.LessonID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve course: %w", err)
		}
		if err := s.completer.CompleteLessonForContent(ctx, courseID, quiz.LessonID, email); err != nil {
			return nil, fmt.Errorf("failed to complete lesson: %w", err)
		}
	}

	return &models.QuizResult{
		Score:          score,
		CorrectAnswers: correct,
		TotalQuestions: total,
		Passed:         policy.IsPassingScore(score),
	}, nil
}

// Retake withdraws a failed submission so the quiz can be taken again.
// Passing submissions are final and cannot be withdrawn.
func (s *quizService) Retake(ctx context.Context, quizID int, email string) error {
	submission, err := s.submissionRepo.GetByQuizAndEmail(ctx, quizID, email)
	if err != nil {
		return fmt.Errorf("failed to get submission: %w", err)
	}

	if policy.IsPassingScore(submission.Score) {
		return fmt.Errorf("passed quiz cannot be retaken: %w", apperrors.ErrConflict)
	}

	quiz, _, err := s.getQuiz(ctx, quizID)
	if err != nil {
		return err
	}
	courseID, err := s.lessonRepo.GetCourseID(ctx, quiz.LessonID)
	if err != nil {
		return fmt.Errorf("failed to resolve course: %w", err)
	}

	if err := s.submissionRepo.Delete(ctx, quizID, email); err != nil {
		return fmt.Errorf("failed to delete submission: %w", err)
	}

	return s.completer.ResetLessonCompletion(ctx, courseID, quiz.LessonID, email)
}

// getQuiz retrieves quiz content by ID and decodes its payload
func (s *quizService) getQuiz(ctx context.Context, quizID int) (*models.Content, *models.QuizPayload, error) {
	content, err := s.contentRepo.GetByID(ctx, quizID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get quiz: %w", err)
	}
	if content.Type != models.ContentTypeQuiz {
		return nil, nil, fmt.Errorf("content is not a quiz: %w", apperrors.ErrValidation)
	}

	var payload models.QuizPayload
	if err := json.Unmarshal(content.Payload, &payload); err != nil {
		return nil, nil, fmt.Errorf("failed to decode quiz payload: %w", err)
	}

	return content, &payload, nil
}
