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

// completeViewThreshold is the watch duration, in seconds, at which a view
// counts toward the reel's view counter.
const completeViewThreshold = 3.0

type ReelEngagementService struct {
	reelRepo       ReelStore
	engagementRepo ReelEngagementStore
	producer       EventProducer
	logger         *logger.Logger
}

func NewReelEngagementService(reelRepo ReelStore, engagementRepo ReelEngagementStore, producer EventProducer, logger *logger.Logger) *ReelEngagementService {
	return &ReelEngagementService{
		reelRepo:       reelRepo,
		engagementRepo: engagementRepo,
		producer:       producer,
		logger:         logger,
	}
}

type LikeReelRequest struct {
	LikeType string `json:"like_type" binding:"omitempty,oneof=like love haha wow sad angry"`
}

type LikeResult struct {
	Liked    bool   `json:"liked"`
	LikeType string `json:"like_type,omitempty"`
}

type TrackViewRequest struct {
	WatchDuration float64 `json:"watch_duration" binding:"min=0"`
}

type ViewResult struct {
	WatchDuration  float64 `json:"watch_duration"`
	IsCompleteView bool    `json:"is_complete_view"`
}

type SaveResult struct {
	Saved bool `json:"saved"`
}

// ToggleLike applies the three-way like semantics: no existing like creates
// one, an existing like of the same type removes it, a different type updates
// the row in place.
func (s *ReelEngagementService) ToggleLike(ctx context.Context, userID, reelID string, req *LikeReelRequest) (*LikeResult, error) {
	userUUID, reelUUID, reel, err := s.resolve(ctx, userID, reelID)
	if err != nil {
		return nil, err
	}

	likeType := req.LikeType
	if likeType == "" {
		likeType = models.ReelLikeDefault
	}

	existing, err := s.engagementRepo.GetLike(ctx, reelUUID, userUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to get like: %w", err)
	}

	if existing != nil {
		if existing.LikeType == likeType {
			if err := s.engagementRepo.DeleteLike(ctx, reelUUID, userUUID); err != nil {
				return nil, fmt.Errorf("failed to remove like: %w", err)
			}
			return &LikeResult{Liked: false}, nil
		}

		if err := s.engagementRepo.UpdateLikeType(ctx, existing.ID, likeType); err != nil {
			return nil, fmt.Errorf("failed to update like: %w", err)
		}
		return &LikeResult{Liked: true, LikeType: likeType}, nil
	}

	like := &models.ReelLike{
		ReelID:   reelUUID,
		UserID:   userUUID,
		LikeType: likeType,
	}
	if err := s.engagementRepo.CreateLike(ctx, like); err != nil {
		return nil, fmt.Errorf("failed to create like: %w", err)
	}

	s.publish(ctx, queue.EventReelLiked, queue.EngagementEvent{
		ActorID:     userID,
		RecipientID: reel.UserID.String(),
		ReelID:      reelID,
		LikeType:    likeType,
	})

	return &LikeResult{Liked: true, LikeType: likeType}, nil
}

// TrackView keeps one view row per viewer and reel. The stored watch duration
// only ever grows, and the reel's view counter is incremented exactly once,
// on the call where the duration first reaches the completion threshold.
func (s *ReelEngagementService) TrackView(ctx context.Context, userID, reelID string, req *TrackViewRequest) (*ViewResult, error) {
	userUUID, reelUUID, _, err := s.resolve(ctx, userID, reelID)
	if err != nil {
		return nil, err
	}

	complete := req.WatchDuration >= completeViewThreshold

	existing, err := s.engagementRepo.GetView(ctx, reelUUID, userUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to get view: %w", err)
	}

	if existing == nil {
		view := &models.ReelView{
			ReelID:         reelUUID,
			ViewerID:       userUUID,
			WatchDuration:  req.WatchDuration,
			IsCompleteView: complete,
		}
		if err := s.engagementRepo.CreateView(ctx, view); err != nil {
			return nil, fmt.Errorf("failed to create view: %w", err)
		}
		if complete {
			if err := s.reelRepo.IncrementViewCount(ctx, reelUUID); err != nil {
				s.logger.WithError(err).WithField("reel_id", reelID).Error("Failed to increment view count")
			}
		}
		return &ViewResult{WatchDuration: view.WatchDuration, IsCompleteView: view.IsCompleteView}, nil
	}

	if req.WatchDuration > existing.WatchDuration {
		existing.WatchDuration = req.WatchDuration
	}
	crossed := complete && !existing.IsCompleteView
	if crossed {
		existing.IsCompleteView = true
	}

	if err := s.engagementRepo.UpdateView(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update view: %w", err)
	}
	if crossed {
		if err := s.reelRepo.IncrementViewCount(ctx, reelUUID); err != nil {
			s.logger.WithError(err).WithField("reel_id", reelID).Error("Failed to increment view count")
		}
	}

	return &ViewResult{WatchDuration: existing.WatchDuration, IsCompleteView: existing.IsCompleteView}, nil
}

func (s *ReelEngagementService) Share(ctx context.Context, userID, reelID string) error {
	userUUID, reelUUID, reel, err := s.resolve(ctx, userID, reelID)
	if err != nil {
		return err
	}

	share := &models.ReelShare{
		ReelID: reelUUID,
		UserID: userUUID,
	}
	if err := s.engagementRepo.CreateShare(ctx, share); err != nil {
		return fmt.Errorf("failed to create share: %w", err)
	}

	s.publish(ctx, queue.EventReelShared, queue.EngagementEvent{
		ActorID:     userID,
		RecipientID: reel.UserID.String(),
		ReelID:      reelID,
	})

	return nil
}

func (s *ReelEngagementService) ToggleSave(ctx context.Context, userID, reelID string) (*SaveResult, error) {
	userUUID, reelUUID, _, err := s.resolve(ctx, userID, reelID)
	if err != nil {
		return nil, err
	}

	existing, err := s.engagementRepo.GetSave(ctx, reelUUID, userUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to get save: %w", err)
	}

	if existing != nil {
		if err := s.engagementRepo.DeleteSave(ctx, reelUUID, userUUID); err != nil {
			return nil, fmt.Errorf("failed to remove save: %w", err)
		}
		return &SaveResult{Saved: false}, nil
	}

	save := &models.ReelSave{
		ReelID: reelUUID,
		UserID: userUUID,
	}
	if err := s.engagementRepo.CreateSave(ctx, save); err != nil {
		return nil, fmt.Errorf("failed to create save: %w", err)
	}

	return &SaveResult{Saved: true}, nil
}

func (s *ReelEngagementService) GetSavedReels(ctx context.Context, userID string, offset, limit int) ([]*models.ReelSave, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID", ErrValidation)
	}

	saves, err := s.engagementRepo.GetSavedByUser(ctx, id, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get saved reels: %w", err)
	}
	return saves, nil
}

// resolve parses the IDs and loads the reel, so every engagement call 404s
// on a missing or inactive reel before it writes anything.
func (s *ReelEngagementService) resolve(ctx context.Context, userID, reelID string) (uuid.UUID, uuid.UUID, *models.Reel, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, uuid.Nil, nil, fmt.Errorf("%w: invalid user ID", ErrValidation)
	}

	reelUUID, err := uuid.Parse(reelID)
	if err != nil {
		return uuid.Nil, uuid.Nil, nil, fmt.Errorf("%w: invalid reel ID", ErrValidation)
	}

	reel, err := s.reelRepo.GetByID(ctx, reelUUID)
	if err != nil {
		return uuid.Nil, uuid.Nil, nil, fmt.Errorf("failed to get reel: %w", err)
	}
	if reel == nil {
		return uuid.Nil, uuid.Nil, nil, fmt.Errorf("%w: reel not found", ErrNotFound)
	}

	return userUUID, reelUUID, reel, nil
}

func (s *ReelEngagementService) publish(ctx context.Context, eventType queue.EventType, data queue.EngagementEvent) {
	event := queue.Event{
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}
	if err := s.producer.Publish(ctx, data.ActorID, event); err != nil {
		s.logger.WithError(err).WithField("event_type", string(eventType)).Error("Failed to publish engagement event")
	}
}
