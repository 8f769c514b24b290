package models

// Section represents an ordered group of lessons inside a course
type Section struct {
	ID       int    `json:"id"`
	CourseID int    `json:"courseId,omitempty"`
	Title    string `json:"title"`
	Position int    `json:"position"`
}

// SectionDetail represents a section with its ordered lessons
type SectionDetail struct {
	Section
	Lessons []LessonDetail `json:"lessons"`
}

// CreateSectionRequest represents a request to add a section to a course
type CreateSectionRequest struct {
	Title string `json:"title" validate:"required,max=255"`
}

// UpdateSectionRequest represents a request to rename a section
type UpdateSectionRequest struct {
	Title string `json:"title" validate:"required,max=255"`
}
