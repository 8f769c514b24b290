package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/israkkayum/lms-server-side/internal/apperrors"
	"github.com/israkkayum/lms-server-side/internal/models"
)

type forumRepository struct {
	db *sql.DB
}

// NewForumRepository creates a new forum repository
func NewForumRepository(db *sql.DB) *forumRepository {
	return &forumRepository{
		db: db,
	}
}

// GetTopicByID retrieves a forum topic by its ID
func (r *forumRepository) GetTopicByID(ctx context.Context, id int) (*models.ForumTopic, error) {
	query := `
		SELECT id, site_id, title, body, author_email, created_at
		FROM forum_topics
		WHERE id = ?
		LIMIT 1
	`

	var topic models.ForumTopic
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&topic.ID,
		&topic.SiteID,
		&topic.Title,
		&topic.Body,
		&topic.AuthorEmail,
		&topic.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("forum topic not found: %w", apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get forum topic by id: %w", err)
	}

	return &topic, nil
}

// GetTopicsBySiteID retrieves all forum topics for a site with reply counts, newest first
func (r *forumRepository) GetTopicsBySiteID(ctx context.Context, siteID int) ([]models.ForumTopic, error) {
	query := `
		SELECT
			t.id,
			t.site_id,
			t.title,
			t.body,
			t.author_email,
			t.created_at,
			COUNT(fr.id) as reply_count
		FROM forum_topics t
		LEFT JOIN forum_replies fr ON fr.topic_id = t.id
		WHERE t.site_id = ?
		GROUP BY t.id, t.site_id, t.title, t.body, t.author_email, t.created_at
		ORDER BY t.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, siteID)
	if err != nil {
		return nil, fmt.Errorf("failed to query forum topics: %w", err)
	}
	defer rows.Close()

	var topics []models.ForumTopic
	for rows.Next() {
		var topic models.ForumTopic
		err := rows.Scan(
			&topic.ID,
			&topic.SiteID,
			&topic.Title,
			&topic.Body,
			&topic.AuthorEmail,
			&topic.CreatedAt,
			&topic.ReplyCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan forum topic: %w", err)
		}
		topics = append(topics, topic)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return topics, nil
}

// CreateTopic creates a new forum topic
func (r *forumRepository) CreateTopic(ctx context.Context, topic *models.ForumTopic) error {
	query := `
		INSERT INTO forum_topics (site_id, title, body, author_email)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		topic.SiteID,
		topic.Title,
		topic.Body,
		topic.AuthorEmail,
	)
	if err != nil {
		return fmt.Errorf("failed to create forum topic: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	topic.ID = int(id)
	return nil
}

// DeleteTopic deletes a forum topic; replies cascade at the schema level
func (r *forumRepository) DeleteTopic(ctx context.Context, id int) error {
	query := "DELETE FROM forum_topics WHERE id = ?"

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete forum topic: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("forum topic not found: %w", apperrors.ErrNotFound)
	}

	return nil
}

// GetRepliesByTopicID retrieves all replies for a topic, oldest first
func (r *forumRepository) GetRepliesByTopicID(ctx context.Context, topicID int) ([]models.ForumReply, error) {
	query := `
		SELECT id, topic_id, body, author_email, created_at
		FROM forum_replies
		WHERE topic_id = ?
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query, topicID)
	if err != nil {
		return nil, fmt.Errorf("failed to query forum replies: %w", err)
	}
	defer rows.Close()

	var replies []models.ForumReply
	for rows.Next() {
		var reply models.ForumReply
		err := rows.Scan(
			&reply.ID,
			&reply.TopicID,
			&reply.Body,
			&reply.AuthorEmail,
			&reply.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan forum reply: %w", err)
		}
		replies = append(replies, reply)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return replies, nil
}

// CreateReply creates a new reply on a topic
func (r *forumRepository) CreateReply(ctx context.Context, reply *models.ForumReply) error {
	query := `
		INSERT INTO forum_replies (topic_id, body, author_email)
		VALUES (?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		reply.TopicID,
		reply.Body,
		reply.AuthorEmail,
	)
	if err != nil {
		return fmt.Errorf("failed to create forum reply: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	reply.ID = int(id)
	return nil
}

// DeleteReply deletes a reply by ID
func (r *forumRepository) DeleteReply(ctx context.Context, id int) error {
	query := "DELETE FROM forum_replies WHERE id = ?"

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete forum reply: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("forum reply not found: %w", apperrors.ErrNotFound)
	}

	return nil
}
