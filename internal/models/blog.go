package models

import "time"

// BlogPost represents a blog post within a site
type BlogPost struct {
	ID          int       `json:"id"`
	SiteID      int       `json:"siteId"`
	Title       string    `json:"title"`
	Body        string    `json:"body"` // HTML
	AuthorEmail string    `json:"authorEmail"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateBlogPostRequest represents a request to create a blog post
type CreateBlogPostRequest struct {
	SiteID int    `json:"siteId" validate:"required"`
	Title  string `json:"title" validate:"required,max=255"`
	Body   string `json:"body" validate:"required"`
}

// UpdateBlogPostRequest represents a request to update a blog post (partial update)
type UpdateBlogPostRequest struct {
	Title string `json:"title,omitempty" validate:"omitempty,max=255"`
	Body  string `json:"body,omitempty"`
}
