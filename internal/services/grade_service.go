package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/israkkayum/lms-server-side/internal/models"
	"github.com/israkkayum/lms-server-side/internal/policy"
)

type gradeService struct {
	courseRepo        CourseRepository
	contentRepo       ContentRepository
	enrollmentRepo    EnrollmentRepository
	quizSubRepo       QuizSubmissionRepository
	assignmentSubRepo AssignmentSubmissionRepository
}

// NewGradeService creates a new grade service
func NewGradeService(
	courseRepo CourseRepository,
	contentRepo ContentRepository,
	enrollmentRepo EnrollmentRepository,
	quizSubRepo QuizSubmissionRepository,
	assignmentSubRepo AssignmentSubmissionRepository,
) *gradeService {
	return &gradeService{
		courseRepo:        courseRepo,
		contentRepo:       contentRepo,
		enrollmentRepo:    enrollmentRepo,
		quizSubRepo:       quizSubRepo,
		assignmentSubRepo: assignmentSubRepo,
	}
}

// GetCourseGrades builds a user's grade report for a course by joining the
// course's assignments and quizzes with the user's submissions. Items without
// a graded submission appear ungraded; the overall grade is the mean of the
// graded items' normalized percentages, rounded for display.
func (s *gradeService) GetCourseGrades(ctx context.Context, courseID int, email string) (*models.CourseGrades, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	assignments, err := s.buildAssignmentEntries(ctx, courseID, email)
	if err != nil {
		return nil, err
	}

	quizzes, err := s.buildQuizEntries(ctx, courseID, email)
	if err != nil {
		return nil, err
	}

	return &models.CourseGrades{
		CourseID:     courseID,
		CourseName:   course.Name,
		Assignments:  assignments,
		Quizzes:      quizzes,
		OverallGrade: overallGrade(assignments, quizzes),
	}, nil
}

// GetAllGrades builds grade reports for every course the user is enrolled in.
// The per-course reports are fetched concurrently; any failure fails the
// whole request.
func (s *gradeService) GetAllGrades(ctx context.Context, email string) ([]models.CourseGrades, error) {
	courseIDs, err := s.enrollmentRepo.GetCourseIDsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get enrollments: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	results := make([]*models.CourseGrades, len(courseIDs))

	for i, courseID := range courseIDs {
		i, courseID := i, courseID
		g.Go(func() error {
			grades, err := s.GetCourseGrades(ctx, courseID, email)
			if err != nil {
				return err
			}
			results[i] = grades
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	grades := make([]models.CourseGrades, 0, len(results))
	for _, r := range results {
		grades = append(grades, *r)
	}
	sort.Slice(grades, func(i, j int) bool { return grades[i].CourseID < grades[j].CourseID })

	return grades, nil
}

func (s *gradeService) buildAssignmentEntries(ctx context.Context, courseID int, email string) ([]models.GradeEntry, error) {
	contents, lessonNames, err := s.contentRepo.GetByCourseAndType(ctx, courseID, models.ContentTypeAssignment)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignments: %w", err)
	}

	submissions, err := s.assignmentSubRepo.GetByCourseAndEmail(ctx, courseID, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignment submissions: %w", err)
	}

	entries := make([]models.GradeEntry, 0, len(contents))
	for i, content := range contents {
		var payload models.AssignmentPayload
		if err := json.Unmarshal(content.Payload, &payload); err != nil {
			return nil, fmt.Errorf("failed to decode assignment payload: %w", err)
		}

		title := payload.Title
		if title == "" {
			title = lessonNames[i]
		}

		entry := models.GradeEntry{Title: title, MaxScore: policy.AssignmentMaxScore}
		if sub, ok := submissions[payload.AssignmentID]; ok && sub.Score != nil {
			entry.Score = float64(*sub.Score)
			entry.Feedback = sub.Feedback
			entry.Graded = true
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func (s *gradeService) buildQuizEntries(ctx context.Context, courseID int, email string) ([]models.GradeEntry, error) {
	contents, lessonNames, err := s.contentRepo.GetByCourseAndType(ctx, courseID, models.ContentTypeQuiz)
	if err != nil {
		return nil, fmt.Errorf("failed to get quizzes: %w", err)
	}

	quizIDs := make([]int, 0, len(contents))
	for _, content := range contents {
		quizIDs = append(quizIDs, content.ID)
	}

	submissions, err := s.quizSubRepo.GetByQuizIDsAndEmail(ctx, quizIDs, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz submissions: %w", err)
	}

	entries := make([]models.GradeEntry, 0, len(contents))
	for i, content := range contents {
		var payload models.QuizPayload
		if err := json.Unmarshal(content.Payload, &payload); err != nil {
			return nil, fmt.Errorf("failed to decode quiz payload: %w", err)
		}

		title := payload.Title
		if title == "" {
			title = lessonNames[i]
		}

		entry := models.GradeEntry{Title: title, MaxScore: 100}
		if sub, ok := submissions[content.ID]; ok {
			entry.Score = sub.Score
			entry.Graded = true
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// overallGrade averages the normalized percentages of all graded entries
func overallGrade(groups ...[]models.GradeEntry) int {
	var sum float64
	var count int
	for _, entries := range groups {
		for _, e := range entries {
			if !e.Graded || e.MaxScore == 0 {
				continue
			}
			sum += e.Score / e.MaxScore * 100
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return int(math.Round(sum / float64(count)))
}
