package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/linkup-social/linkup/internal/models"
	"github.com/linkup-social/linkup/pkg/logger"
)

const maxReelDuration = 30.0 // seconds

type ReelService struct {
	reelRepo       ReelStore
	engagementRepo ReelEngagementStore
	commentRepo    ReelCommentStore
	logger         *logger.Logger
}

func NewReelService(reelRepo ReelStore, engagementRepo ReelEngagementStore, commentRepo ReelCommentStore, logger *logger.Logger) *ReelService {
	return &ReelService{
		reelRepo:       reelRepo,
		engagementRepo: engagementRepo,
		commentRepo:    commentRepo,
		logger:         logger,
	}
}

type CreateReelRequest struct {
	VideoURL     string  `json:"video_url" binding:"required"`
	ThumbnailURL string  `json:"thumbnail_url"`
	Caption      string  `json:"caption" binding:"max=2000"`
	Duration     float64 `json:"duration" binding:"required,gt=0"`
	Privacy      string  `json:"privacy" binding:"omitempty,oneof=public followers private"`
}

type UpdateReelRequest struct {
	Caption *string `json:"caption" binding:"omitempty,max=2000"`
	Privacy *string `json:"privacy" binding:"omitempty,oneof=public followers private"`
}

// ReelResponse composes the engagement counts onto the reel row. Counts are
// computed per read; only the view counter is stored on the row itself.
type ReelResponse struct {
	*models.Reel
	LikeCount    int64 `json:"like_count"`
	CommentCount int64 `json:"comment_count"`
	ShareCount   int64 `json:"share_count"`
	SaveCount    int64 `json:"save_count"`
}

func (s *ReelService) CreateReel(ctx context.Context, userID string, req *CreateReelRequest) (*models.Reel, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID", ErrValidation)
	}

	if req.Duration > maxReelDuration {
		return nil, fmt.Errorf("%w: reel duration cannot exceed %.0f seconds", ErrValidation, maxReelDuration)
	}

	privacy := req.Privacy
	if privacy == "" {
		privacy = models.ReelPrivacyPublic
	}

	reel := &models.Reel{
		UserID:       userUUID,
		VideoURL:     req.VideoURL,
		ThumbnailURL: req.ThumbnailURL,
		Caption:      req.Caption,
		Duration:     req.Duration,
		Privacy:      privacy,
		IsActive:     true,
	}

	if err := s.reelRepo.Create(ctx, reel); err != nil {
		return nil, fmt.Errorf("failed to create reel: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"reel_id": reel.ID,
		"user_id": userID,
	}).Info("Reel created successfully")

	return reel, nil
}

func (s *ReelService) GetReel(ctx context.Context, reelID string) (*ReelResponse, error) {
	id, err := uuid.Parse(reelID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid reel ID", ErrValidation)
	}

	reel, err := s.reelRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get reel: %w", err)
	}
	if reel == nil {
		return nil, fmt.Errorf("%w: reel not found", ErrNotFound)
	}

	return s.compose(ctx, reel)
}

func (s *ReelService) ListReels(ctx context.Context, offset, limit int) ([]*ReelResponse, error) {
	reels, err := s.reelRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reels: %w", err)
	}
	return s.composeAll(ctx, reels)
}

func (s *ReelService) GetUserReels(ctx context.Context, userID string, offset, limit int) ([]*ReelResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID", ErrValidation)
	}

	reels, err := s.reelRepo.GetByUserID(ctx, id, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get user reels: %w", err)
	}
	return s.composeAll(ctx, reels)
}

func (s *ReelService) UpdateReel(ctx context.Context, userID, reelID string, req *UpdateReelRequest) (*ReelResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID", ErrValidation)
	}

	reelUUID, err := uuid.Parse(reelID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid reel ID", ErrValidation)
	}

	fields := map[string]interface{}{}
	if req.Caption != nil {
		fields["caption"] = *req.Caption
	}
	if req.Privacy != nil {
		fields["privacy"] = *req.Privacy
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", ErrValidation)
	}

	affected, err := s.reelRepo.UpdateOwned(ctx, reelUUID, userUUID, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to update reel: %w", err)
	}
	if affected == 0 {
		if err := s.classifyMiss(ctx, reelUUID); err != nil {
			return nil, err
		}
	}

	return s.GetReel(ctx, reelID)
}

func (s *ReelService) DeleteReel(ctx context.Context, userID, reelID string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("%w: invalid user ID", ErrValidation)
	}

	reelUUID, err := uuid.Parse(reelID)
	if err != nil {
		return fmt.Errorf("%w: invalid reel ID", ErrValidation)
	}

	affected, err := s.reelRepo.DeleteOwned(ctx, reelUUID, userUUID)
	if err != nil {
		return fmt.Errorf("failed to delete reel: %w", err)
	}
	if affected == 0 {
		return s.classifyMiss(ctx, reelUUID)
	}

	s.logger.WithFields(map[string]interface{}{
		"reel_id": reelID,
		"user_id": userID,
	}).Info("Reel deleted successfully")

	return nil
}

func (s *ReelService) classifyMiss(ctx context.Context, id uuid.UUID) error {
	exists, err := s.reelRepo.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check reel: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: reel not found", ErrNotFound)
	}
	return fmt.Errorf("%w: reel belongs to another user", ErrForbidden)
}

func (s *ReelService) compose(ctx context.Context, reel *models.Reel) (*ReelResponse, error) {
	likeCount, err := s.engagementRepo.CountLikes(ctx, reel.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count likes: %w", err)
	}
	commentCount, err := s.commentRepo.CountByReelID(ctx, reel.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count comments: %w", err)
	}
	shareCount, err := s.engagementRepo.CountShares(ctx, reel.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count shares: %w", err)
	}
	saveCount, err := s.engagementRepo.CountSaves(ctx, reel.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count saves: %w", err)
	}

	return &ReelResponse{
		Reel:         reel,
		LikeCount:    likeCount,
		CommentCount: commentCount,
		ShareCount:   shareCount,
		SaveCount:    saveCount,
	}, nil
}

func (s *ReelService) composeAll(ctx context.Context, reels []*models.Reel) ([]*ReelResponse, error) {
	responses := make([]*ReelResponse, 0, len(reels))
	for _, reel := range reels {
		composed, err := s.compose(ctx, reel)
		if err != nil {
			return nil, err
		}
		responses = append(responses, composed)
	}
	return responses, nil
}
