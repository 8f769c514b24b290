package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// ContentType represents the type of a lesson's content payload
type ContentType string

const (
	ContentTypeVideo      ContentType = "video"
	ContentTypeArticle    ContentType = "article"
	ContentTypeQuiz       ContentType = "quiz"
	ContentTypeResource   ContentType = "resource"
	ContentTypeAssignment ContentType = "assignment"
)

// Valid reports whether the content type is one of the known variants
func (t ContentType) Valid() bool {
	switch t {
	case ContentTypeVideo, ContentTypeArticle, ContentTypeQuiz, ContentTypeResource, ContentTypeAssignment:
		return true
	}
	return false
}

// Content represents a lesson's single typed content item.
// The payload shape is determined by Type; a lesson holds at most one content item.
type Content struct {
	ID        int             `json:"id"`
	LessonID  int             `json:"lessonId,omitempty"`
	Type      ContentType     `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"createdAt,omitempty"`
}

// VideoPayload is the payload for video content
type VideoPayload struct {
	Title string `json:"title" validate:"required"`
	Video string `json:"video" validate:"required"` // base64-encoded
}

// ArticlePayload is the payload for article content
type ArticlePayload struct {
	Title string `json:"title" validate:"required"`
	Body  string `json:"body" validate:"required"` // HTML
}

// QuizQuestion is a single question within a quiz payload
type QuizQuestion struct {
	Text               string   `json:"text" validate:"required"`
	Options            []string `json:"options" validate:"required,len=4,dive,required"`
	CorrectOptionIndex int      `json:"correctOptionIndex" validate:"gte=0,lte=3"`
}

// QuizPayload is the payload for quiz content
type QuizPayload struct {
	Title     string         `json:"title" validate:"required"`
	Questions []QuizQuestion `json:"questions" validate:"required,min=1,dive"`
}

// QuizQuestionView is a quiz question as shown to students, without the answer
type QuizQuestionView struct {
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

// QuizPayloadView is a quiz payload as shown to students
type QuizPayloadView struct {
	Title     string             `json:"title"`
	Questions []QuizQuestionView `json:"questions"`
}

// ResourceFile is a single downloadable file within a resource payload
type ResourceFile struct {
	Filename string `json:"filename" validate:"required"`
	Mimetype string `json:"mimetype" validate:"required"`
	Data     string `json:"data" validate:"required"` // base64-encoded
	Size     int64  `json:"size" validate:"gte=0"`
}

// ResourcePayload is the payload for resource content
type ResourcePayload struct {
	Title string         `json:"title" validate:"required"`
	Files []ResourceFile `json:"files" validate:"required,min=1,dive"`
}

// AssignmentPayload is the payload for assignment content.
// AssignmentID is generated server-side when the content is created.
type AssignmentPayload struct {
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description" validate:"required"` // HTML
	AssignmentID string `json:"assignmentId,omitempty"`
}

// DecodePayload decodes a content payload into its typed form.
// The switch is exhaustive over the closed set of content types; an unknown
// tag is reported as an error, never a panic.
func (c *Content) DecodePayload() (any, error) {
	switch c.Type {
	case ContentTypeVideo:
		var p VideoPayload
		if err := json.Unmarshal(c.Payload, &p); err != nil {
			return nil, fmt.Errorf("failed to decode video payload: %w", err)
		}
		return &p, nil
	case ContentTypeArticle:
		var p ArticlePayload
		if err := json.Unmarshal(c.Payload, &p); err != nil {
			return nil, fmt.Errorf("failed to decode article payload: %w", err)
		}
		return &p, nil
	case ContentTypeQuiz:
		var p QuizPayload
		if err := json.Unmarshal(c.Payload, &p); err != nil {
			return nil, fmt.Errorf("failed to decode quiz payload: %w", err)
		}
		return &p, nil
	case ContentTypeResource:
		var p ResourcePayload
		if err := json.Unmarshal(c.Payload, &p); err != nil {
			return nil, fmt.Errorf("failed to decode resource payload: %w", err)
		}
		return &p, nil
	case ContentTypeAssignment:
		var p AssignmentPayload
		if err := json.Unmarshal(c.Payload, &p); err != nil {
			return nil, fmt.Errorf("failed to decode assignment payload: %w", err)
		}
		return &p, nil
	default:
		return nil, fmt.Errorf("unsupported content type: %s", c.Type)
	}
}

// UpdateContentRequest represents a partial update of a lesson's content payload
type UpdateContentRequest struct {
	Payload json.RawMessage `json:"payload" validate:"required"`
}
