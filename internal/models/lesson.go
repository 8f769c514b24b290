package models

// Lesson represents a lesson within a section
type Lesson struct {
	ID        int    `json:"id"`
	SectionID int    `json:"sectionId,omitempty"`
	Name      string `json:"name"`
	Position  int    `json:"position"`
}

// LessonDetail represents a lesson with its optional content item
type LessonDetail struct {
	Lesson
	Content *Content `json:"content,omitempty"`
}

// CreateLessonRequest represents a request to add a lesson to a section
type CreateLessonRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

// UpdateLessonRequest represents a request to rename a lesson
type UpdateLessonRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}
