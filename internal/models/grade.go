package models

// GradeEntry is one graded item (assignment or quiz) in a course grade report
type GradeEntry struct {
	Title    string  `json:"title"`
	Score    float64 `json:"score"`
	MaxScore float64 `json:"maxScore"`
	Feedback string  `json:"feedback,omitempty"`
	Graded   bool    `json:"graded"`
}

// CourseGrades is the per-course grade rollup for a user.
// It is a read-side aggregation over submissions, never persisted.
type CourseGrades struct {
	CourseID     int          `json:"courseId"`
	CourseName   string       `json:"courseName"`
	Assignments  []GradeEntry `json:"assignments"`
	Quizzes      []GradeEntry `json:"quizzes"`
	OverallGrade int          `json:"overallGrade"` // percent, rounded for display
}
