package services

import (
	"context"
	"fmt"

	"github.com/israkkayum/lms-server-side/internal/apperrors"
	"github.com/israkkayum/lms-server-side/internal/models"
)

// ForumRepository defines methods for forum data access
type ForumRepository interface {
	// GetTopicByID retrieves a topic by its ID
	GetTopicByID(ctx context.Context, id int) (*models.ForumTopic, error)
	// GetTopicsBySiteID retrieves all topics for a site with reply counts, newest first
	GetTopicsBySiteID(ctx context.Context, siteID int) ([]models.ForumTopic, error)
	// CreateTopic creates a new topic and sets its ID
	CreateTopic(ctx context.Context, topic *models.ForumTopic) error
	// DeleteTopic deletes a topic and its replies
	DeleteTopic(ctx context.Context, id int) error
	// GetRepliesByTopicID retrieves all replies to a topic, oldest first
	GetRepliesByTopicID(ctx context.Context, topicID int) ([]models.ForumReply, error)
	// CreateReply creates a new reply and sets its ID
	CreateReply(ctx context.Context, reply *models.ForumReply) error
	// DeleteReply deletes a reply by ID
	DeleteReply(ctx context.Context, id int) error
}

type forumService struct {
	forumRepo ForumRepository
}

// NewForumService creates a new forum service
func NewForumService(forumRepo ForumRepository) *forumService {
	return &forumService{forumRepo: forumRepo}
}

// GetTopics retrieves all topics for a site
func (s *forumService) GetTopics(ctx context.Context, siteID int) ([]models.ForumTopic, error) {
	return s.forumRepo.GetTopicsBySiteID(ctx, siteID)
}

// GetTopic retrieves a topic with its replies
func (s *forumService) GetTopic(ctx context.Context, id int) (*models.ForumTopic, []models.ForumReply, error) {
	topic, err := s.forumRepo.GetTopicByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get topic: %w", err)
	}

	replies, err := s.forumRepo.GetRepliesByTopicID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get replies: %w", err)
	}

	return topic, replies, nil
}

// CreateTopic opens a new discussion topic authored by the given user
func (s *forumService) CreateTopic(ctx context.Context, req *models.CreateForumTopicRequest, author string) (*models.ForumTopic, error) {
	topic := &models.ForumTopic{
		SiteID:      req.SiteID,
		Title:       req.Title,
		Body:        req.Body,
		AuthorEmail: author,
	}
	if err := s.forumRepo.CreateTopic(ctx, topic); err != nil {
		return nil, fmt.Errorf("failed to create topic: %w", err)
	}
	return topic, nil
}

// DeleteTopic deletes a topic; only its author may delete it
func (s *forumService) DeleteTopic(ctx context.Context, id int, email string) error {
	topic, err := s.forumRepo.GetTopicByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get topic: %w", err)
	}
	if topic.AuthorEmail != email {
		return fmt.Errorf("topic does not belong to user: %w", apperrors.ErrForbidden)
	}
	return s.forumRepo.DeleteTopic(ctx, id)
}

// CreateReply adds a reply to an existing topic
func (s *forumService) CreateReply(ctx context.Context, req *models.CreateForumReplyRequest, author string) (*models.ForumReply, error) {
	if _, err := s.forumRepo.GetTopicByID(ctx, req.TopicID); err != nil {
		return nil, fmt.Errorf("failed to get topic: %w", err)
	}

	reply := &models.ForumReply{
		TopicID:     req.TopicID,
		Body:        req.Body,
		AuthorEmail: author,
	}
	if err := s.forumRepo.CreateReply(ctx, reply); err != nil {
		return nil, fmt.Errorf("failed to create reply: %w", err)
	}
	return reply, nil
}

// DeleteReply deletes a reply; only its author may delete it
func (s *forumService) DeleteReply(ctx context.Context, id int, topicID int, email string) error {
	replies, err := s.forumRepo.GetRepliesByTopicID(ctx, topicID)
	if err != nil {
		return fmt.Errorf("failed to get replies: %w", err)
	}
	for _, reply := range replies {
		if reply.ID == id {
			if reply.AuthorEmail != email {
				return fmt.Errorf("reply does not belong to user: %w", apperrors.ErrForbidden)
			}
			return s.forumRepo.DeleteReply(ctx, id)
		}
	}
	return fmt.Errorf("reply not found: %w", apperrors.ErrNotFound)
}
