package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/israkkayum/lms-server-side/internal/apperrors"
	"github.com/israkkayum/lms-server-side/internal/models"
)

// ContentRepository defines methods for lesson content data access
type ContentRepository interface {
	// GetByID retrieves content by its ID
	GetByID(ctx context.Context, id int) (*models.Content, error)
	// GetByLessonID retrieves the content attached to a lesson
	GetByLessonID(ctx context.Context, lessonID int) (*models.Content, error)
	// ExistsForLesson checks if a lesson already has content
	ExistsForLesson(ctx context.Context, lessonID int) (bool, error)
	// Create attaches content to a lesson and sets its ID
	Create(ctx context.Context, content *models.Content) error
	// UpdatePayload replaces the payload of a lesson's content
	UpdatePayload(ctx context.Context, lessonID int, payload json.RawMessage) error
	// DeleteByLessonID removes the content attached to a lesson
	DeleteByLessonID(ctx context.Context, lessonID int) error
	// GetByCourseAndType retrieves all content of a type in a course,
	// ordered by section and lesson position, with the lesson names
	GetByCourseAndType(ctx context.Context, courseID int, contentType models.ContentType) ([]models.Content, []string, error)
}

type contentService struct {
	contentRepo ContentRepository
	lessonRepo  LessonRepository
	completer   LessonCompleter
	validate    *validator.Validate
}

// NewContentService creates a new content service
func NewContentService(contentRepo ContentRepository, lessonRepo LessonRepository, completer LessonCompleter) *contentService {
	return &contentService{
		contentRepo: contentRepo,
		lessonRepo:  lessonRepo,
		completer:   completer,
		validate:    validator.New(),
	}
}

// CreateContent attaches typed content to a lesson. A lesson holds at most
// one content item; attaching to an occupied lesson fails with a conflict.
func (s *contentService) CreateContent(ctx context.Context, lessonID int, contentType models.ContentType, payload json.RawMessage) (*models.Content, error) {
	if !contentType.Valid() {
		return nil, fmt.Errorf("unsupported content type %q: %w", contentType, apperrors.ErrValidation)
	}

	if _, err := s.lessonRepo.GetByID(ctx, lessonID); err != nil {
		return nil, fmt.Errorf("failed to get lesson: %w", err)
	}

	exists, err := s.contentRepo.ExistsForLesson(ctx, lessonID)
	if err != nil {
		return nil, fmt.Errorf("failed to check lesson content: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("lesson already has content: %w", apperrors.ErrConflict)
	}

	payload, err = s.preparePayload(contentType, payload)
	if err != nil {
		return nil, err
	}

	content := &models.Content{
		LessonID: lessonID,
		Type:     contentType,
		Payload:  payload,
	}

	if err := s.contentRepo.Create(ctx, content); err != nil {
		return nil, fmt.Errorf("failed to create content: %w", err)
	}

	return content, nil
}

// GetLessonContent retrieves the content attached to a lesson. Quiz payloads
// are stripped of correct answers unless the caller is an instructor.
func (s *contentService) GetLessonContent(ctx context.Context, lessonID int, instructor bool) (*models.Content, error) {
	content, err := s.contentRepo.GetByLessonID(ctx, lessonID)
	if err != nil {
		return nil, fmt.Errorf("failed to get content: %w", err)
	}

	if !instructor {
		return prepareStudentContent(content)
	}
	return content, nil
}

// UpdateContent replaces the payload of a lesson's content. The content type
// is fixed at creation and cannot change.
func (s *contentService) UpdateContent(ctx context.Context, lessonID int, payload json.RawMessage) error {
	content, err := s.contentRepo.GetByLessonID(ctx, lessonID)
	if err != nil {
		return fmt.Errorf("failed to get content: %w", err)
	}

	payload, err = s.preparePayload(content.Type, payload)
	if err != nil {
		return err
	}

	return s.contentRepo.UpdatePayload(ctx, lessonID, payload)
}

// DeleteContent removes the content attached to a lesson
func (s *contentService) DeleteContent(ctx context.Context, lessonID int) error {
	return s.contentRepo.DeleteByLessonID(ctx, lessonID)
}

// GetResourceFile returns a single file from a lesson's resource content
func (s *contentService) GetResourceFile(ctx context.Context, lessonID, fileIndex int) (*models.ResourceFile, error) {
	content, err := s.contentRepo.GetByLessonID(ctx, lessonID)
	if err != nil {
		return nil, fmt.Errorf("failed to get content: %w", err)
	}

	if content.Type != models.ContentTypeResource {
		return nil, fmt.Errorf("lesson content is not a resource: %w", apperrors.ErrValidation)
	}

	var payload models.ResourcePayload
	if err := json.Unmarshal(content.Payload, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode resource payload: %w", err)
	}

	if fileIndex < 0 || fileIndex >= len(payload.Files) {
		return nil, fmt.Errorf("resource file not found: %w", apperrors.ErrNotFound)
	}

	return &payload.Files[fileIndex], nil
}

// DownloadResourceFile returns a file from a lesson's resource content and
// records the lesson completion. The completion is recorded on the first
// download only; later downloads just return the file.
func (s *contentService) DownloadResourceFile(ctx context.Context, lessonID, fileIndex int, email string) (*models.ResourceFile, error) {
	file, err := s.GetResourceFile(ctx, lessonID, fileIndex)
	if err != nil {
		return nil, err
	}

	courseID, err := s.lessonRepo.GetCourseID(ctx, lessonID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve course: %w", err)
	}

	if err := s.completer.CompleteLessonForContent(ctx, courseID, lessonID, email); err != nil {
		return nil, fmt.Errorf("failed to complete lesson: %w", err)
	}

	return file, nil
}

// preparePayload validates a typed payload and normalizes it for storage.
// Assignment payloads get a generated assignment ID when they lack one.
func (s *contentService) preparePayload(contentType models.ContentType, payload json.RawMessage) (json.RawMessage, error) {
	decoded, err := decodePayload(contentType, payload)
	if err != nil {
		return nil, fmt.Errorf("invalid payload: %v: %w", err, apperrors.ErrValidation)
	}

	if err := s.validate.Struct(decoded); err != nil {
		return nil, fmt.Errorf("invalid payload: %v: %w", err, apperrors.ErrValidation)
	}

	if assignment, ok := decoded.(*models.AssignmentPayload); ok {
		if assignment.AssignmentID == "" {
			assignment.AssignmentID = uuid.NewString()
		}
		normalized, err := json.Marshal(assignment)
		if err != nil {
			return nil, fmt.Errorf("failed to encode payload: %w", err)
		}
		return normalized, nil
	}

	return payload, nil
}

// decodePayload unmarshals a raw payload into its typed form
func decodePayload(contentType models.ContentType, payload json.RawMessage) (any, error) {
	content := &models.Content{Type: contentType, Payload: payload}
	return content.DecodePayload()
}

// prepareStudentContent returns a copy of quiz content with the correct
// answers removed. Other content types pass through unchanged. Content with
// an unrecognized type yields an error instead of leaking the raw payload.
func prepareStudentContent(content *models.Content) (*models.Content, error) {
	if !content.Type.Valid() {
		return nil, fmt.Errorf("unsupported content type %q: %w", content.Type, apperrors.ErrValidation)
	}

	if content.Type != models.ContentTypeQuiz {
		return content, nil
	}

	var payload models.QuizPayload
	if err := json.Unmarshal(content.Payload, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode quiz payload: %w", err)
	}

	view := models.QuizPayloadView{
		Title:     payload.Title,
		Questions: make([]models.QuizQuestionView, 0, len(payload.Questions)),
	}
	for _, q := range payload.Questions {
		view.Questions = append(view.Questions, models.QuizQuestionView{
			Text:    q.Text,
			Options: q.Options,
		})
	}

	stripped, err := json.Marshal(view)
	if err != nil {
		return nil, fmt.Errorf("failed to encode quiz payload: %w", err)
	}

	result := *content
	result.Payload = stripped
	return &result, nil
}

// isNotFound reports whether err wraps the not-found sentinel
func isNotFound(err error) bool {
	return errors.Is(err, apperrors.ErrNotFound)
}
