package services

import (
	"bytes"
	"context"
	"encoding/json"
	"io"

	"github.com/israkkayum/lms-server-side/internal/models"
)

// mockCourseRepository is a mock implementation of CourseRepository
type mockCourseRepository struct {
	course      *models.Course
	courses     []models.CourseListItem
	lessonCount int
	owner       bool
	err         error
	getErr      error
	countErr    error
	created     *models.Course
	deletedID   int
}

func (m *mockCourseRepository) GetByID(ctx context.Context, id int) (*models.Course, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.course, nil
}

func (m *mockCourseRepository) GetBySiteID(ctx context.Context, siteID int) ([]models.CourseListItem, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.courses, nil
}

func (m *mockCourseRepository) Create(ctx context.Context, course *models.Course) error {
	if m.err != nil {
		return m.err
	}
	course.ID = 1
	m.created = course
	return nil
}

func (m *mockCourseRepository) Update(ctx context.Context, course *models.Course) error {
	return m.err
}

func (m *mockCourseRepository) Delete(ctx context.Context, id int) error {
	m.deletedID = id
	return m.err
}

func (m *mockCourseRepository) CountLessons(ctx context.Context, courseID int) (int, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	return m.lessonCount, nil
}

func (m *mockCourseRepository) CheckOwnership(ctx context.Context, id int, email string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.owner, nil
}

// mockSectionRepository is a mock implementation of SectionRepository
type mockSectionRepository struct {
	section  *models.Section
	sections []models.Section
	err      error
}

func (m *mockSectionRepository) GetByCourseID(ctx context.Context, courseID int) ([]models.Section, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.sections, nil
}

func (m *mockSectionRepository) GetByID(ctx context.Context, id int) (*models.Section, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.section, nil
}

func (m *mockSectionRepository) Create(ctx context.Context, section *models.Section) error {
	if m.err != nil {
		return m.err
	}
	section.ID = 1
	section.Position = 1
	return nil
}

func (m *mockSectionRepository) Update(ctx context.Context, id int, title string) error {
	return m.err
}

func (m *mockSectionRepository) Delete(ctx context.Context, id int) error {
	return m.err
}

// mockLessonRepository is a mock implementation of LessonRepository
type mockLessonRepository struct {
	lesson    *models.Lesson
	lessons   []models.Lesson
	courseID  int
	inCourse  bool
	err       error
	existsErr error
}

func (m *mockLessonRepository) GetByID(ctx context.Context, id int) (*models.Lesson, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.lesson, nil
}

func (m *mockLessonRepository) GetBySectionID(ctx context.Context, sectionID int) ([]models.Lesson, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.lessons, nil
}

func (m *mockLessonRepository) GetCourseID(ctx context.Context, lessonID int) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.courseID, nil
}

func (m *mockLessonRepository) ExistsInCourse(ctx context.Context, courseID, lessonID int) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	return m.inCourse, nil
}

func (m *mockLessonRepository) Create(ctx context.Context, lesson *models.Lesson) error {
	if m.err != nil {
		return m.err
	}
	lesson.ID = 1
	lesson.Position = 1
	return nil
}

func (m *mockLessonRepository) Update(ctx context.Context, id int, name string) error {
	return m.err
}

func (m *mockLessonRepository) Delete(ctx context.Context, id int) error {
	return m.err
}

// mockContentRepository is a mock implementation of ContentRepository
type mockContentRepository struct {
	content        *models.Content
	byCourseType   map[models.ContentType][]models.Content
	lessonNames    map[models.ContentType][]string
	exists         bool
	err            error
	getErr         error
	createdContent *models.Content
	updatedPayload json.RawMessage
	deletedLesson  int
}

func (m *mockContentRepository) GetByID(ctx context.Context, id int) (*models.Content, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.content, nil
}

func (m *mockContentRepository) GetByLessonID(ctx context.Context, lessonID int) (*models.Content, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.content, nil
}

func (m *mockContentRepository) ExistsForLesson(ctx context.Context, lessonID int) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.exists, nil
}

func (m *mockContentRepository) Create(ctx context.Context, content *models.Content) error {
	if m.err != nil {
		return m.err
	}
	content.ID = 1
	m.createdContent = content
	return nil
}

func (m *mockContentRepository) UpdatePayload(ctx context.Context, lessonID int, payload json.RawMessage) error {
	if m.err != nil {
		return m.err
	}
	m.updatedPayload = payload
	return nil
}

func (m *mockContentRepository) DeleteByLessonID(ctx context.Context, lessonID int) error {
	m.deletedLesson = lessonID
	return m.err
}

func (m *mockContentRepository) GetByCourseAndType(ctx context.Context, courseID int, contentType models.ContentType) ([]models.Content, []string, error) {
	if m.err != nil {
		return nil, nil, m.err
	}
	return m.byCourseType[contentType], m.lessonNames[contentType], nil
}

// mockProgressRepository is a mock implementation of ProgressRepository
type mockProgressRepository struct {
	exists       bool
	completedIDs []int
	err          error
	existsErr    error
	createCalled bool
	deleteCalled bool
}

func (m *mockProgressRepository) Exists(ctx context.Context, courseID, lessonID int, email string) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	return m.exists, nil
}

func (m *mockProgressRepository) Create(ctx context.Context, courseID, lessonID int, email string) error {
	m.createCalled = true
	return m.err
}

func (m *mockProgressRepository) Delete(ctx context.Context, courseID, lessonID int, email string) error {
	m.deleteCalled = true
	return m.err
}

func (m *mockProgressRepository) GetCompletedLessonIDs(ctx context.Context, courseID int, email string) ([]int, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.completedIDs, nil
}

// mockEnrollmentRepository is a mock implementation of EnrollmentRepository
type mockEnrollmentRepository struct {
	enrolled     bool
	courseIDs    []int
	enrollments  []models.Enrollment
	err          error
	createCalled bool
	deleteCalled bool
}

func (m *mockEnrollmentRepository) Create(ctx context.Context, courseID int, email string) error {
	m.createCalled = true
	return m.err
}

func (m *mockEnrollmentRepository) Delete(ctx context.Context, courseID int, email string) error {
	m.deleteCalled = true
	return m.err
}

func (m *mockEnrollmentRepository) Exists(ctx context.Context, courseID int, email string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.enrolled, nil
}

func (m *mockEnrollmentRepository) GetByCourse(ctx context.Context, courseID int) ([]models.Enrollment, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.enrollments, nil
}

func (m *mockEnrollmentRepository) GetCourseIDsByEmail(ctx context.Context, email string) ([]int, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.courseIDs, nil
}

// mockQuizSubmissionRepository is a mock implementation of QuizSubmissionRepository
type mockQuizSubmissionRepository struct {
	submission   *models.QuizSubmission
	byQuizID     map[int]*models.QuizSubmission
	exists       bool
	err          error
	getErr       error
	created      *models.QuizSubmission
	deleteCalled bool
}

func (m *mockQuizSubmissionRepository) GetByQuizAndEmail(ctx context.Context, quizID int, email string) (*models.QuizSubmission, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.submission, nil
}

func (m *mockQuizSubmissionRepository) Exists(ctx context.Context, quizID int, email string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.exists, nil
}

func (m *mockQuizSubmissionRepository) Create(ctx context.Context, submission *models.QuizSubmission) error {
	if m.err != nil {
		return m.err
	}
	submission.ID = 1
	m.created = submission
	return nil
}

func (m *mockQuizSubmissionRepository) Delete(ctx context.Context, quizID int, email string) error {
	m.deleteCalled = true
	return m.err
}

func (m *mockQuizSubmissionRepository) GetByQuizIDsAndEmail(ctx context.Context, quizIDs []int, email string) (map[int]*models.QuizSubmission, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.byQuizID, nil
}

// mockAssignmentSubmissionRepository is a mock implementation of AssignmentSubmissionRepository
type mockAssignmentSubmissionRepository struct {
	submission  *models.AssignmentSubmission
	submissions []models.AssignmentSubmission
	byCourse    map[string]*models.AssignmentSubmission
	exists      bool
	err         error
	getErr      error
	markErr     error
	created     *models.AssignmentSubmission
	markedID    int
	markedScore int
}

func (m *mockAssignmentSubmissionRepository) GetByID(ctx context.Context, id int) (*models.AssignmentSubmission, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.submission, nil
}

func (m *mockAssignmentSubmissionRepository) GetByAssignmentAndEmail(ctx context.Context, assignmentID, email string) (*models.AssignmentSubmission, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.submission, nil
}

func (m *mockAssignmentSubmissionRepository) GetByAssignment(ctx context.Context, assignmentID string) ([]models.AssignmentSubmission, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.submissions, nil
}

func (m *mockAssignmentSubmissionRepository) GetByCourseAndEmail(ctx context.Context, courseID int, email string) (map[string]*models.AssignmentSubmission, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.byCourse, nil
}

func (m *mockAssignmentSubmissionRepository) Exists(ctx context.Context, assignmentID, email string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.exists, nil
}

func (m *mockAssignmentSubmissionRepository) Create(ctx context.Context, submission *models.AssignmentSubmission) error {
	if m.err != nil {
		return m.err
	}
	submission.ID = 1
	m.created = submission
	return nil
}

func (m *mockAssignmentSubmissionRepository) Mark(ctx context.Context, id, score int, feedback string) error {
	if m.markErr != nil {
		return m.markErr
	}
	m.markedID = id
	m.markedScore = score
	return nil
}

// mockFileStorage is a mock implementation of FileStorage
type mockFileStorage struct {
	files        map[string]*bytes.Buffer
	createErr    error
	openErr      error
	deleteCalled bool
	createCalled bool
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func (m *mockFileStorage) Create(assignmentID, storedName string) (io.WriteCloser, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.createCalled = true
	if m.files == nil {
		m.files = make(map[string]*bytes.Buffer)
	}
	buf := &bytes.Buffer{}
	m.files[assignmentID+"/"+storedName] = buf
	return nopWriteCloser{buf}, nil
}

func (m *mockFileStorage) Open(assignmentID, storedName string) (io.ReadCloser, error) {
	if m.openErr != nil {
		return nil, m.openErr
	}
	buf, ok := m.files[assignmentID+"/"+storedName]
	if !ok {
		return nil, io.ErrUnexpectedEOF
	}
	return io.NopCloser(bytes.NewReader(buf.Bytes())), nil
}

func (m *mockFileStorage) Delete(assignmentID, storedName string) error {
	m.deleteCalled = true
	delete(m.files, assignmentID+"/"+storedName)
	return nil
}

// mockLessonCompleter is a mock implementation of LessonCompleter
type mockLessonCompleter struct {
	completeErr     error
	resetErr        error
	completeCalled  int
	resetCalled     int
	completedLesson int
}

func (m *mockLessonCompleter) CompleteLessonForContent(ctx context.Context, courseID, lessonID int, email string) error {
	if m.completeErr != nil {
		return m.completeErr
	}
	m.completeCalled++
	m.completedLesson = lessonID
	return nil
}

func (m *mockLessonCompleter) ResetLessonCompletion(ctx context.Context, courseID, lessonID int, email string) error {
	if m.resetErr != nil {
		return m.resetErr
	}
	m.resetCalled++
	return nil
}
