package models

import "time"

// AssignmentSubmission represents a student's uploaded artifact for an assignment.
// Set once by the student, scored once by an instructor.
type AssignmentSubmission struct {
	ID           int        `json:"id"`
	AssignmentID string     `json:"assignmentId"`
	CourseID     int        `json:"courseId"`
	Email        string     `json:"email"`
	Filename     string     `json:"filename"`   // original upload name
	StoredName   string     `json:"storedName"` // uuid-based name in storage
	Size         int64      `json:"size"`
	SubmittedAt  time.Time  `json:"submittedAt"`
	Score        *int       `json:"score,omitempty"` // 0-10, set by instructor
	Feedback     string     `json:"feedback,omitempty"`
	MarkedAt     *time.Time `json:"markedAt,omitempty"`
}

// SubmitAssignmentRequest carries the multipart form fields of a submission upload
type SubmitAssignmentRequest struct {
	AssignmentID string `json:"assignmentId" validate:"required"`
	CourseID     int    `json:"courseId" validate:"required"`
	LessonID     int    `json:"lessonId" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Filename     string `json:"filename" validate:"required"`
	Size         int64  `json:"size" validate:"gte=0"`
}

// MarkSubmissionRequest represents an instructor's grading of a submission
type MarkSubmissionRequest struct {
	Score    int    `json:"score" validate:"gte=0,lte=10"`
	Feedback string `json:"feedback" validate:"max=2000"`
}
