package models

// Course represents a course owned by a site
type Course struct {
	ID          int      `json:"id"`
	SiteID      int      `json:"siteId"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Thumbnail   string   `json:"thumbnail,omitempty"` // base64-encoded image
	CreatedBy   string   `json:"createdBy,omitempty"`
}

// CourseDetail represents a course with its full section/lesson tree
type CourseDetail struct {
	Course
	Sections []SectionDetail `json:"sections"`
}

// CourseListItem represents a course in list responses
type CourseListItem struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	Thumbnail    string `json:"thumbnail,omitempty"`
	TotalLessons int    `json:"totalLessons"`
}

// CreateCourseRequest represents a request to create a course
type CreateCourseRequest struct {
	SiteID      int      `json:"siteId" validate:"required"`
	Name        string   `json:"name" validate:"required,max=255"`
	Description string   `json:"description" validate:"required"`
	Category    string   `json:"category" validate:"required,max=100"`
	Tags        []string `json:"tags"`
	Thumbnail   string   `json:"thumbnail"`
}

// UpdateCourseRequest represents a request to update a course (partial update)
type UpdateCourseRequest struct {
	Name        string   `json:"name,omitempty" validate:"omitempty,max=255"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty" validate:"omitempty,max=100"`
	Tags        []string `json:"tags,omitempty"`
	Thumbnail   string   `json:"thumbnail,omitempty"`
}
