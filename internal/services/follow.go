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

type FollowService struct {
	userRepo   UserStore
	followRepo FollowStore
	producer   EventProducer
	logger     *logger.Logger
}

func NewFollowService(userRepo UserStore, followRepo FollowStore, producer EventProducer, logger *logger.Logger) *FollowService {
	return &FollowService{
		userRepo:   userRepo,
		followRepo: followRepo,
		producer:   producer,
		logger:     logger,
	}
}

func (s *FollowService) Follow(ctx context.Context, followerID, followingID string) error {
	followerUUID, err := uuid.Parse(followerID)
	if err != nil {
		return fmt.Errorf("%w: invalid follower ID", ErrValidation)
	}

	followingUUID, err := uuid.Parse(followingID)
	if err != nil {
		return fmt.Errorf("%w: invalid following ID", ErrValidation)
	}

	if followerUUID == followingUUID {
		return fmt.Errorf("%w: users cannot follow themselves", ErrValidation)
	}

	following, err := s.userRepo.GetByID(ctx, followingUUID)
	if err != nil {
		return fmt.Errorf("failed to get following user: %w", err)
	}
	if following == nil {
		return fmt.Errorf("%w: user not found", ErrNotFound)
	}

	existingFollow, err := s.followRepo.Get(ctx, followerUUID, followingUUID)
	if err != nil {
		return fmt.Errorf("failed to check follow status: %w", err)
	}
	if existingFollow != nil {
		return fmt.Errorf("%w: already following", ErrValidation)
	}

	follow := &models.Follow{
		FollowerID:  followerUUID,
		FollowingID: followingUUID,
	}

	if err := s.followRepo.Create(ctx, follow); err != nil {
		return fmt.Errorf("failed to create follow: %w", err)
	}

	// A follow in the opposite direction makes the pair mutual.
	mutual, err := s.followRepo.IsFollowing(ctx, followingUUID, followerUUID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to check mutual follow")
	} else if mutual {
		if err := s.followRepo.CreateFriendship(ctx, followerUUID, followingUUID); err != nil {
			s.logger.WithError(err).Error("Failed to create friendship")
		}
	}

	event := queue.Event{
		Type:      queue.EventFollowCreated,
		Timestamp: time.Now(),
		Data: queue.EngagementEvent{
			ActorID:     followerID,
			RecipientID: followingID,
		},
	}
	if err := s.producer.Publish(ctx, followerID, event); err != nil {
		s.logger.WithError(err).Error("Failed to publish follow created event")
	}

	s.logger.WithFields(map[string]interface{}{
		"follower_id":  followerID,
		"following_id": followingID,
	}).Info("User followed successfully")

	return nil
}

func (s *FollowService) Unfollow(ctx context.Context, followerID, followingID string) error {
	followerUUID, err := uuid.Parse(followerID)
	if err != nil {
		return fmt.Errorf("%w: invalid follower ID", ErrValidation)
	}

	followingUUID, err := uuid.Parse(followingID)
	if err != nil {
		return fmt.Errorf("%w: invalid following ID", ErrValidation)
	}

	existingFollow, err := s.followRepo.Get(ctx, followerUUID, followingUUID)
	if err != nil {
		return fmt.Errorf("failed to check follow status: %w", err)
	}
	if existingFollow == nil {
		return fmt.Errorf("%w: not following", ErrValidation)
	}

	if err := s.followRepo.Delete(ctx, followerUUID, followingUUID); err != nil {
		return fmt.Errorf("failed to delete follow: %w", err)
	}

	// The pair is no longer mutual either way.
	if err := s.followRepo.DeleteFriendship(ctx, followerUUID, followingUUID); err != nil {
		s.logger.WithError(err).Error("Failed to delete friendship")
	}

	event := queue.Event{
		Type:      queue.EventFollowDeleted,
		Timestamp: time.Now(),
		Data: queue.EngagementEvent{
			ActorID:     followerID,
			RecipientID: followingID,
		},
	}
	if err := s.producer.Publish(ctx, followerID, event); err != nil {
		s.logger.WithError(err).Error("Failed to publish follow deleted event")
	}

	s.logger.WithFields(map[string]interface{}{
		"follower_id":  followerID,
		"following_id": followingID,
	}).Info("User unfollowed successfully")

	return nil
}

func (s *FollowService) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	followerUUID, err := uuid.Parse(followerID)
	if err != nil {
		return false, fmt.Errorf("%w: invalid follower ID", ErrValidation)
	}

	followingUUID, err := uuid.Parse(followingID)
	if err != nil {
		return false, fmt.Errorf("%w: invalid following ID", ErrValidation)
	}

	return s.followRepo.IsFollowing(ctx, followerUUID, followingUUID)
}

func (s *FollowService) GetFollowers(ctx context.Context, userID string, offset, limit int) ([]*models.User, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID", ErrValidation)
	}

	followers, err := s.followRepo.GetFollowers(ctx, id, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get followers: %w", err)
	}

	return followers, nil
}

func (s *FollowService) GetFollowing(ctx context.Context, userID string, offset, limit int) ([]*models.User, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID", ErrValidation)
	}

	following, err := s.followRepo.GetFollowing(ctx, id, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get following: %w", err)
	}

	return following, nil
}
