package models

import "time"

// ForumTopic represents a discussion topic within a site
type ForumTopic struct {
	ID          int       `json:"id"`
	SiteID      int       `json:"siteId"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	AuthorEmail string    `json:"authorEmail"`
	ReplyCount  int       `json:"replyCount,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ForumReply represents a reply to a forum topic
type ForumReply struct {
	ID          int       `json:"id"`
	TopicID     int       `json:"topicId"`
	Body        string    `json:"body"`
	AuthorEmail string    `json:"authorEmail"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateForumTopicRequest represents a request to open a forum topic
type CreateForumTopicRequest struct {
	SiteID int    `json:"siteId" validate:"required"`
	Title  string `json:"title" validate:"required,max=255"`
	Body   string `json:"body" validate:"required"`
}

// CreateForumReplyRequest represents a request to reply to a topic
type CreateForumReplyRequest struct {
	TopicID int    `json:"topicId" validate:"required"`
	Body    string `json:"body" validate:"required"`
}
