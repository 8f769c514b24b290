package models

import "time"

// Site represents a tenant/institution grouping courses
type Site struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}

// SiteMember represents a user's membership in a site
type SiteMember struct {
	ID       int       `json:"id"`
	SiteID   int       `json:"siteId"`
	Email    string    `json:"email"`
	Role     int       `json:"role"`
	JoinedAt time.Time `json:"joinedAt"`
}

// CreateSiteRequest represents a request to create a site
type CreateSiteRequest struct {
	Name string `json:"name" validate:"required,max=255"`
	Slug string `json:"slug" validate:"required,max=100,lowercase"`
}

// UpdateSiteRequest represents a request to rename a site
type UpdateSiteRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}
