package services

import (
	"context"
	"fmt"

	"github.com/israkkayum/lms-server-side/internal/apperrors"
	"github.com/israkkayum/lms-server-side/internal/models"
)

// CourseRepository defines methods for course data access
type CourseRepository interface {
	// GetByID retrieves a course by its ID
	GetByID(ctx context.Context, id int) (*models.Course, error)
	// GetBySiteID retrieves all courses for a site with lesson counts
	GetBySiteID(ctx context.Context, siteID int) ([]models.CourseListItem, error)
	// Create creates a new course and sets its ID
	Create(ctx context.Context, course *models.Course) error
	// Update updates a course (partial update)
	Update(ctx context.Context, course *models.Course) error
	// Delete deletes a course by ID
	Delete(ctx context.Context, id int) error
	// CountLessons counts all lessons in a course
	CountLessons(ctx context.Context, courseID int) (int, error)
	// CheckOwnership checks if a course was created by the given user
	CheckOwnership(ctx context.Context, id int, email string) (bool, error)
}

// SectionRepository defines methods for section data access
type SectionRepository interface {
	// GetByCourseID retrieves all sections for a course, sorted by position
	GetByCourseID(ctx context.Context, courseID int) ([]models.Section, error)
	// GetByID retrieves a section by its ID
	GetByID(ctx context.Context, id int) (*models.Section, error)
	// Create appends a new section to a course and sets its ID
	Create(ctx context.Context, section *models.Section) error
	// Update renames a section
	Update(ctx context.Context, id int, title string) error
	// Delete deletes a section by ID
	Delete(ctx context.Context, id int) error
}

// LessonRepository defines methods for lesson data access
type LessonRepository interface {
	// GetByID retrieves a lesson by its ID
	GetByID(ctx context.Context, id int) (*models.Lesson, error)
	// GetBySectionID retrieves all lessons for a section, sorted by position
	GetBySectionID(ctx context.Context, sectionID int) ([]models.Lesson, error)
	// GetCourseID resolves the course a lesson belongs to
	GetCourseID(ctx context.Context, lessonID int) (int, error)
	// ExistsInCourse checks if a lesson belongs to the given course
	ExistsInCourse(ctx context.Context, courseID, lessonID int) (bool, error)
	// Create appends a new lesson to a section and sets its ID
	Create(ctx context.Context, lesson *models.Lesson) error
	// Update renames a lesson
	Update(ctx context.Context, id int, name string) error
	// Delete deletes a lesson by ID
	Delete(ctx context.Context, id int) error
}

type courseService struct {
	courseRepo  CourseRepository
	sectionRepo SectionRepository
	lessonRepo  LessonRepository
	contentRepo ContentRepository
}

// NewCourseService creates a new course service
func NewCourseService(
	courseRepo CourseRepository,
	sectionRepo SectionRepository,
	lessonRepo LessonRepository,
	contentRepo ContentRepository,
) *courseService {
	return &courseService{
		courseRepo:  courseRepo,
		sectionRepo: sectionRepo,
		lessonRepo:  lessonRepo,
		contentRepo: contentRepo,
	}
}

// GetCourse assembles a course with its full section/lesson/content tree.
// Quiz payloads are stripped of correct answers unless the caller is an instructor.
func (s *courseService) GetCourse(ctx context.Context, courseID int, instructor bool) (*models.CourseDetail, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	sections, err := s.sectionRepo.GetByCourseID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sections: %w", err)
	}

	detail := &models.CourseDetail{
		Course:   *course,
		Sections: make([]models.SectionDetail, 0, len(sections)),
	}

	for _, section := range sections {
		lessons, err := s.lessonRepo.GetBySectionID(ctx, section.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get lessons: %w", err)
		}

		sectionDetail := models.SectionDetail{
			Section: section,
			Lessons: make([]models.LessonDetail, 0, len(lessons)),
		}

		for _, lesson := range lessons {
			lessonDetail := models.LessonDetail{Lesson: lesson}

			content, err := s.contentRepo.GetByLessonID(ctx, lesson.ID)
			if err == nil {
				if !instructor {
					content, err = prepareStudentContent(content)
					if err != nil {
						return nil, err
					}
				}
				lessonDetail.Content = content
			} else if !isNotFound(err) {
				return nil, fmt.Errorf("failed to get lesson content: %w", err)
			}

			sectionDetail.Lessons = append(sectionDetail.Lessons, lessonDetail)
		}

		detail.Sections = append(detail.Sections, sectionDetail)
	}

	return detail, nil
}

// GetCoursesBySite retrieves all courses for a site
func (s *courseService) GetCoursesBySite(ctx context.Context, siteID int) ([]models.CourseListItem, error) {
	return s.courseRepo.GetBySiteID(ctx, siteID)
}

// CreateCourse creates a new course
func (s *courseService) CreateCourse(ctx context.Context, req *models.CreateCourseRequest, createdBy string) (*models.Course, error) {
	course := &models.Course{
		SiteID:      req.SiteID,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Tags:        req.Tags,
		Thumbnail:   req.Thumbnail,
		CreatedBy:   createdBy,
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	return course, nil
}

// UpdateCourse updates a course; only the course owner may update it
func (s *courseService) UpdateCourse(ctx context.Context, courseID int, req *models.UpdateCourseRequest, email string) error {
	if err := s.checkOwnership(ctx, courseID, email); err != nil {
		return err
	}

	course := &models.Course{
		ID:          courseID,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Tags:        req.Tags,
		Thumbnail:   req.Thumbnail,
	}

	return s.courseRepo.Update(ctx, course)
}

// DeleteCourse deletes a course; only the course owner may delete it
func (s *courseService) DeleteCourse(ctx context.Context, courseID int, email string) error {
	if err := s.checkOwnership(ctx, courseID, email); err != nil {
		return err
	}

	return s.courseRepo.Delete(ctx, courseID)
}

// AddSection appends a section to a course
func (s *courseService) AddSection(ctx context.Context, courseID int, title string) (*models.Section, error) {
	// Verify the course exists before appending
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	section := &models.Section{
		CourseID: courseID,
		Title:    title,
	}

	if err := s.sectionRepo.Create(ctx, section); err != nil {
		return nil, fmt.Errorf("failed to create section: %w", err)
	}

	return section, nil
}

// UpdateSection renames a section
func (s *courseService) UpdateSection(ctx context.Context, sectionID int, title string) error {
	return s.sectionRepo.Update(ctx, sectionID, title)
}

// DeleteSection removes a section and its lessons
func (s *courseService) DeleteSection(ctx context.Context, sectionID int) error {
	return s.sectionRepo.Delete(ctx, sectionID)
}

// AddLesson appends a lesson to a section
func (s *courseService) AddLesson(ctx context.Context, sectionID int, name string) (*models.Lesson, error) {
	// Verify the section exists before appending
	if _, err := s.sectionRepo.GetByID(ctx, sectionID); err != nil {
		return nil, fmt.Errorf("failed to get section: %w", err)
	}

	lesson := &models.Lesson{
		SectionID: sectionID,
		Name:      name,
	}

	if err := s.lessonRepo.Create(ctx, lesson); err != nil {
		return nil, fmt.Errorf("failed to create lesson: %w", err)
	}

	return lesson, nil
}

// UpdateLesson renames a lesson
func (s *courseService) UpdateLesson(ctx context.Context, lessonID int, name string) error {
	return s.lessonRepo.Update(ctx, lessonID, name)
}

// DeleteLesson removes a lesson
func (s *courseService) DeleteLesson(ctx context.Context, lessonID int) error {
	return s.lessonRepo.Delete(ctx, lessonID)
}

// checkOwnership verifies the course exists and belongs to the user
func (s *courseService) checkOwnership(ctx context.Context, courseID int, email string) error {
	owner, err := s.courseRepo.CheckOwnership(ctx, courseID, email)
	if err != nil {
		return fmt.Errorf("failed to check ownership: %w", err)
	}
	if !owner {
		return fmt.Errorf("course does not belong to user: %w", apperrors.ErrForbidden)
	}
	return nil
}
