package models

import "time"

// Progress represents a user's aggregated progress in a course
type Progress struct {
	CourseID         int   `json:"courseId"`
	CompletedLessons []int `json:"completedLessons"`
	TotalLessons     int   `json:"totalLessons"`
	Percentage       int   `json:"percentage"`
}

// Enrollment represents a user's membership in a course
type Enrollment struct {
	ID         int       `json:"id"`
	CourseID   int       `json:"courseId"`
	Email      string    `json:"email"`
	EnrolledAt time.Time `json:"enrolledAt"`
}
