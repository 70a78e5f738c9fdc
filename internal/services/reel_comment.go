package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/linkup-social/linkup/internal/models"
	"github.com/linkup-social/linkup/pkg/logger"
	"github.com/linkup-social/linkup/pkg/queue"
)

// commentEditWindow is how long after creation a comment stays mutable.
const commentEditWindow = 30 * time.Minute

type ReelCommentService struct {
	reelRepo    ReelStore
	commentRepo ReelCommentStore
	producer    EventProducer
	logger      *logger.Logger
	now         func() time.Time
}

func NewReelCommentService(reelRepo ReelStore, commentRepo ReelCommentStore, producer EventProducer, logger *logger.Logger) *ReelCommentService {
	return &ReelCommentService{
		reelRepo:    reelRepo,
		commentRepo: commentRepo,
		producer:    producer,
		logger:      logger,
		now:         time.Now,
	}
}

type CreateCommentRequest struct {
	Content         string  `json:"content" binding:"required,max=1000"`
	ParentCommentID *string `json:"parent_comment_id" binding:"omitempty,uuid"`
}

type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required,max=1000"`
}

func (s *ReelCommentService) Create(ctx context.Context, userID, reelID string, req *CreateCommentRequest) (*models.ReelComment, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID", ErrValidation)
	}

	reelUUID, err := uuid.Parse(reelID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid reel ID", ErrValidation)
	}

	reel, err := s.reelRepo.GetByID(ctx, reelUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reel: %w", err)
	}
	if reel == nil {
		return nil, fmt.Errorf("%w: reel not found", ErrNotFound)
	}

	var parentID *uuid.UUID
	if req.ParentCommentID != nil {
		parsed, err := uuid.Parse(*req.ParentCommentID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid parent comment ID", ErrValidation)
		}
		parent, err := s.commentRepo.GetByID(ctx, parsed)
		if err != nil {
			return nil, fmt.Errorf("failed to get parent comment: %w", err)
		}
		if parent == nil || parent.ReelID != reelUUID {
			return nil, fmt.Errorf("%w: parent comment not found on this reel", ErrValidation)
		}
		parentID = &parsed
	}

	comment := &models.ReelComment{
		ReelID:          reelUUID,
		UserID:          userUUID,
		Content:         req.Content,
		ParentCommentID: parentID,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	event := queue.Event{
		Type:      queue.EventReelCommented,
		Timestamp: s.now(),
		Data: queue.EngagementEvent{
			ActorID:     userID,
			RecipientID: reel.UserID.String(),
			ReelID:      reelID,
			CommentID:   comment.ID.String(),
		},
	}
	if err := s.producer.Publish(ctx, userID, event); err != nil {
		s.logger.WithError(err).Error("Failed to publish comment event")
	}

	// Re-fetch so the response carries the commenter.
	composed, err := s.commentRepo.GetByID(ctx, comment.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get created comment: %w", err)
	}
	return composed, nil
}

func (s *ReelCommentService) List(ctx context.Context, reelID string, offset, limit int) ([]*models.ReelComment, error) {
	reelUUID, err := uuid.Parse(reelID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid reel ID", ErrValidation)
	}

	exists, err := s.reelRepo.Exists(ctx, reelUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to check reel: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: reel not found", ErrNotFound)
	}

	comments, err := s.commentRepo.GetByReelID(ctx, reelUUID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

func (s *ReelCommentService) Update(ctx context.Context, userID, commentID string, req *UpdateCommentRequest) (*models.ReelComment, error) {
	comment, err := s.mutable(ctx, userID, commentID)
	if err != nil {
		return nil, err
	}

	if err := s.commentRepo.UpdateContent(ctx, comment.ID, req.Content); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	updated, err := s.commentRepo.GetByID(ctx, comment.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get updated comment: %w", err)
	}
	return updated, nil
}

func (s *ReelCommentService) Delete(ctx context.Context, userID, commentID string) error {
	comment, err := s.mutable(ctx, userID, commentID)
	if err != nil {
		return err
	}

	if err := s.commentRepo.Delete(ctx, comment.ID); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}

// mutable loads the comment and enforces the mutation rules. The edit window
// is checked before ownership, so an expired comment reads as immutable to
// everyone including its author.
func (s *ReelCommentService) mutable(ctx context.Context, userID, commentID string) (*models.ReelComment, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID", ErrValidation)
	}

	commentUUID, err := uuid.Parse(commentID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid comment ID", ErrValidation)
	}

	comment, err := s.commentRepo.GetByID(ctx, commentUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	if comment == nil {
		return nil, fmt.Errorf("%w: comment not found", ErrNotFound)
	}

	if s.now().Sub(comment.CreatedAt) >= commentEditWindow {
		return nil, fmt.Errorf("%w: comment can no longer be modified", ErrValidation)
	}
	if comment.UserID != userUUID {
		return nil, fmt.Errorf("%w: comment belongs to another user", ErrForbidden)
	}

	return comment, nil
}
