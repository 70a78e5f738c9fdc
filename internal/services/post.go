package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/linkup-social/linkup/internal/models"
	"github.com/linkup-social/linkup/pkg/logger"
	"github.com/linkup-social/linkup/pkg/queue"
)

type PostService struct {
	postRepo PostStore
	userRepo UserStore
	producer EventProducer
	logger   *logger.Logger
}

func NewPostService(postRepo PostStore, userRepo UserStore, producer EventProducer, logger *logger.Logger) *PostService {
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
		producer: producer,
		logger:   logger,
	}
}

type PostMediaRef struct {
	URL  string `json:"url" binding:"required"`
	Type string `json:"type" binding:"required,oneof=image video"`
}

type CreatePostRequest struct {
	Content  string         `json:"content" binding:"max=5000"`
	Media    []PostMediaRef `json:"media" binding:"max=10,dive"`
	Feeling  string         `json:"feeling" binding:"max=50"`
	Activity string         `json:"activity" binding:"max=100"`
}

// CreatePost applies the content policy, inserts the post, then inserts the
// media rows best-effort: a media failure does not roll the post back, the
// row just ends up with fewer media than requested.
func (s *PostService) CreatePost(ctx context.Context, userID string, req *CreatePostRequest) (*models.Post, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID", ErrValidation)
	}

	content := strings.TrimSpace(req.Content)
	hasContent := content != ""
	hasMedia := len(req.Media) > 0
	hasMood := req.Feeling != "" || req.Activity != ""

	if !hasContent && !hasMedia && !hasMood {
		return nil, fmt.Errorf("%w: post must have content, media, or a feeling/activity", ErrValidation)
	}
	if hasMood && !hasContent && !hasMedia {
		return nil, fmt.Errorf("%w: a feeling or activity requires content or media", ErrValidation)
	}

	post := &models.Post{
		UserID:   userUUID,
		Content:  content,
		Feeling:  req.Feeling,
		Activity: req.Activity,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	stored := 0
	for _, ref := range req.Media {
		media := &models.PostMedia{
			PostID:    post.ID,
			MediaURL:  ref.URL,
			MediaType: ref.Type,
		}
		if err := s.postRepo.CreateMedia(ctx, media); err != nil {
			s.logger.WithError(err).WithFields(map[string]interface{}{
				"post_id":   post.ID,
				"media_url": ref.URL,
			}).Error("Failed to attach media to post")
			continue
		}
		stored++
	}

	if stored > 0 {
		if err := s.postRepo.SetMediaCount(ctx, post.ID, stored); err != nil {
			s.logger.WithError(err).Error("Failed to set post media count")
		}
	}

	event := queue.Event{
		Type:      queue.EventPostCreated,
		Timestamp: time.Now(),
		Data: queue.EngagementEvent{
			ActorID: userID,
			PostID:  post.ID.String(),
		},
	}
	if err := s.producer.Publish(ctx, userID, event); err != nil {
		s.logger.WithError(err).Error("Failed to publish post created event")
	}

	s.logger.WithFields(map[string]interface{}{
		"post_id": post.ID,
		"user_id": userID,
		"media":   stored,
	}).Info("Post created successfully")

	// Re-fetch so the response carries the author and the media that made it.
	composed, err := s.postRepo.GetByID(ctx, post.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get created post: %w", err)
	}
	return composed, nil
}

func (s *PostService) GetPostByID(ctx context.Context, postID string) (*models.Post, error) {
	id, err := uuid.Parse(postID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid post ID", ErrValidation)
	}

	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	if post == nil {
		return nil, fmt.Errorf("%w: post not found", ErrNotFound)
	}

	return post, nil
}

func (s *PostService) ListPosts(ctx context.Context, offset, limit int) ([]*models.Post, error) {
	posts, err := s.postRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

func (s *PostService) GetUserPosts(ctx context.Context, userID string, offset, limit int) ([]*models.Post, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID", ErrValidation)
	}

	posts, err := s.postRepo.GetByUserID(ctx, id, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get user posts: %w", err)
	}
	return posts, nil
}

func (s *PostService) DeletePost(ctx context.Context, userID, postID string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("%w: invalid user ID", ErrValidation)
	}

	postUUID, err := uuid.Parse(postID)
	if err != nil {
		return fmt.Errorf("%w: invalid post ID", ErrValidation)
	}

	affected, err := s.postRepo.DeleteOwned(ctx, postUUID, userUUID)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if affected == 0 {
		exists, err := s.postRepo.Exists(ctx, postUUID)
		if err != nil {
			return fmt.Errorf("failed to check post: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: post not found", ErrNotFound)
		}
		return fmt.Errorf("%w: post belongs to another user", ErrForbidden)
	}

	s.logger.WithFields(map[string]interface{}{
		"post_id": postID,
		"user_id": userID,
	}).Info("Post deleted successfully")

	return nil
}
