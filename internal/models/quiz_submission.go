package models

import "time"

// QuizSubmission represents a user's graded quiz attempt.
// A user holds at most one submission per quiz; retake deletes it.
type QuizSubmission struct {
	ID          int         `json:"id"`
	QuizID      int         `json:"quizId"` // content ID of the quiz
	Email       string      `json:"email"`
	Answers     map[int]int `json:"answers"` // question index -> chosen option index
	Score       float64     `json:"score"`   // 0-100, unrounded
	SubmittedAt time.Time   `json:"submittedAt"`
}

// SubmitQuizRequest represents a quiz submission from a student
type SubmitQuizRequest struct {
	Answers map[int]int `json:"answers" validate:"required,min=1"`
}

// QuizResult is returned after grading a submission
type QuizResult struct {
	Score          float64 `json:"score"`
	CorrectAnswers int     `json:"correctAnswers"`
	TotalQuestions int     `json:"totalQuestions"`
	Passed         bool    `json:"passed"`
}
