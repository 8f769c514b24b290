package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentType_Valid(t *testing.T) {
	tests := []struct {
		name        string
		contentType ContentType
		expected    bool
	}{
		{name: "video", contentType: ContentTypeVideo, expected: true},
		{name: "article", contentType: ContentTypeArticle, expected: true},
		{name: "quiz", contentType: ContentTypeQuiz, expected: true},
		{name: "resource", contentType: ContentTypeResource, expected: true},
		{name: "assignment", contentType: ContentTypeAssignment, expected: true},
		{name: "unknown", contentType: ContentType("podcast"), expected: false},
		{name: "empty", contentType: ContentType(""), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.contentType.Valid())
		})
	}
}

func TestContent_DecodePayload(t *testing.T) {
	tests := []struct {
		name        string
		contentType ContentType
		payload     string
		check       func(t *testing.T, decoded any)
	}{
		{
			name:        "video",
			contentType: ContentTypeVideo,
			payload:     `{"title":"Intro","video":"dmlkZW8="}`,
			check: func(t *testing.T, decoded any) {
				payload, ok := decoded.(*VideoPayload)
				require.True(t, ok)
				assert.Equal(t, "Intro", payload.Title)
			},
		},
		{
			name:        "article",
			contentType: ContentTypeArticle,
			payload:     `{"title":"Reading","body":"<p>text</p>"}`,
			check: func(t *testing.T, decoded any) {
				payload, ok := decoded.(*ArticlePayload)
				require.True(t, ok)
				assert.Equal(t, "<p>text</p>", payload.Body)
			},
		},
		{
			name:        "quiz",
			contentType: ContentTypeQuiz,
			payload:     `{"title":"Checkpoint","questions":[{"text":"q","options":["a","b","c","d"],"correctOptionIndex":2}]}`,
			check: func(t *testing.T, decoded any) {
				payload, ok := decoded.(*QuizPayload)
				require.True(t, ok)
				require.Len(t, payload.Questions, 1)
				assert.Equal(t, 2, payload.Questions[0].CorrectOptionIndex)
			},
		},
		{
			name:        "resource",
			contentType: ContentTypeResource,
			payload:     `{"title":"Materials","files":[{"filename":"notes.pdf","mimetype":"application/pdf","data":"ZGF0YQ==","size":4}]}`,
			check: func(t *testing.T, decoded any) {
				payload, ok := decoded.(*ResourcePayload)
				require.True(t, ok)
				require.Len(t, payload.Files, 1)
				assert.Equal(t, "notes.pdf", payload.Files[0].Filename)
			},
		},
		{
			name:        "assignment",
			contentType: ContentTypeAssignment,
			payload:     `{"title":"Essay","description":"write","assignmentId":"a1b2c3"}`,
			check: func(t *testing.T, decoded any) {
				payload, ok := decoded.(*AssignmentPayload)
				require.True(t, ok)
				assert.Equal(t, "a1b2c3", payload.AssignmentID)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := &Content{Type: tt.contentType, Payload: json.RawMessage(tt.payload)}

			decoded, err := content.DecodePayload()

			require.NoError(t, err)
			tt.check(t, decoded)
		})
	}
}

func TestContent_DecodePayload_UnknownType(t *testing.T) {
	content := &Content{Type: ContentType("podcast"), Payload: json.RawMessage(`{}`)}

	decoded, err := content.DecodePayload()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported content type")
	assert.Nil(t, decoded)
}

func TestContent_DecodePayload_InvalidJSON(t *testing.T) {
	content := &Content{Type: ContentTypeVideo, Payload: json.RawMessage(`{broken`)}

	decoded, err := content.DecodePayload()

	assert.Error(t, err)
	assert.Nil(t, decoded)
}
