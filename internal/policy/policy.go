// Package policy holds the grading and submission rules shared by the student
// and instructor code paths, so no limit is duplicated across components.
package policy

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// QuizPassingScore is the minimum quiz score (percent) that counts as a pass
// and completes the lesson.
const QuizPassingScore = 70.0

// MaxSubmissionSize is the maximum accepted assignment upload size in bytes.
const MaxSubmissionSize = 10 * 1024 * 1024 // 10MB

// AssignmentMaxScore is the maximum score an instructor can award a submission.
const AssignmentMaxScore = 10

// AllowedSubmissionExtensions lists the file extensions accepted for
// assignment submissions.
var AllowedSubmissionExtensions = []string{".pdf", ".doc", ".docx", ".zip"}

// IsPassingScore reports whether a quiz score meets the passing threshold
func IsPassingScore(score float64) bool {
	return score >= QuizPassingScore
}

// ValidateSubmissionFile checks an assignment upload's name and size against
// the shared limits. It must be called before any storage write.
func ValidateSubmissionFile(filename string, size int64) error {
	if size > MaxSubmissionSize {
		return fmt.Errorf("file exceeds maximum size of %d bytes", MaxSubmissionSize)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !slices.Contains(AllowedSubmissionExtensions, ext) {
		return fmt.Errorf("file type %q is not allowed, must be one of %s",
			ext, strings.Join(AllowedSubmissionExtensions, ", "))
	}

	return nil
}

// ValidateMark checks an instructor's score for a submission
func ValidateMark(score int) error {
	if score < 0 || score > AssignmentMaxScore {
		return fmt.Errorf("score must be between 0 and %d", AssignmentMaxScore)
	}
	return nil
}
