package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/linkup-social/linkup/internal/models"
	"gorm.io/gorm"
)

// ReelEngagementRepository covers likes, views, shares and saves. Each of
// likes, views and saves is keyed unique per (reel, user); shares are
// append-only.
type ReelEngagementRepository struct {
	db *gorm.DB
}

func NewReelEngagementRepository(db *gorm.DB) *ReelEngagementRepository {
	return &ReelEngagementRepository{db: db}
}

func (r *ReelEngagementRepository) GetLike(ctx context.Context, reelID, userID uuid.UUID) (*models.ReelLike, error) {
	var like models.ReelLike
	if err := r.db.WithContext(ctx).
		Where("reel_id = ? AND user_id = ?", reelID, userID).
		First(&like).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get reel like: %w", err)
	}
	return &like, nil
}

func (r *ReelEngagementRepository) CreateLike(ctx context.Context, like *models.ReelLike) error {
	if err := r.db.WithContext(ctx).Create(like).Error; err != nil {
		return fmt.Errorf("failed to create reel like: %w", err)
	}
	return nil
}

func (r *ReelEngagementRepository) UpdateLikeType(ctx context.Context, id uuid.UUID, likeType string) error {
	if err := r.db.WithContext(ctx).Model(&models.ReelLike{}).
		Where("id = ?", id).
		UpdateColumn("like_type", likeType).Error; err != nil {
		return fmt.Errorf("failed to update reel like: %w", err)
	}
	return nil
}

func (r *ReelEngagementRepository) DeleteLike(ctx context.Context, reelID, userID uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("reel_id = ? AND user_id = ?", reelID, userID).
		Delete(&models.ReelLike{}).Error; err != nil {
		return fmt.Errorf("failed to delete reel like: %w", err)
	}
	return nil
}

func (r *ReelEngagementRepository) CountLikes(ctx context.Context, reelID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ReelLike{}).
		Where("reel_id = ?", reelID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count reel likes: %w", err)
	}
	return count, nil
}

func (r *ReelEngagementRepository) GetView(ctx context.Context, reelID, viewerID uuid.UUID) (*models.ReelView, error) {
	var view models.ReelView
	if err := r.db.WithContext(ctx).
		Where("reel_id = ? AND viewer_id = ?", reelID, viewerID).
		First(&view).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get reel view: %w", err)
	}
	return &view, nil
}

func (r *ReelEngagementRepository) CreateView(ctx context.Context, view *models.ReelView) error {
	if err := r.db.WithContext(ctx).Create(view).Error; err != nil {
		return fmt.Errorf("failed to create reel view: %w", err)
	}
	return nil
}

func (r *ReelEngagementRepository) UpdateView(ctx context.Context, view *models.ReelView) error {
	if err := r.db.WithContext(ctx).Save(view).Error; err != nil {
		return fmt.Errorf("failed to update reel view: %w", err)
	}
	return nil
}

func (r *ReelEngagementRepository) CreateShare(ctx context.Context, share *models.ReelShare) error {
	if err := r.db.WithContext(ctx).Create(share).Error; err != nil {
		return fmt.Errorf("failed to create reel share: %w", err)
	}
	return nil
}

func (r *ReelEngagementRepository) CountShares(ctx context.Context, reelID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ReelShare{}).
		Where("reel_id = ?", reelID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count reel shares: %w", err)
	}
	return count, nil
}

func (r *ReelEngagementRepository) GetSave(ctx context.Context, reelID, userID uuid.UUID) (*models.ReelSave, error) {
	var save models.ReelSave
	if err := r.db.WithContext(ctx).
		Where("reel_id = ? AND user_id = ?", reelID, userID).
		First(&save).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get reel save: %w", err)
	}
	return &save, nil
}

func (r *ReelEngagementRepository) CreateSave(ctx context.Context, save *models.ReelSave) error {
	if err := r.db.WithContext(ctx).Create(save).Error; err != nil {
		return fmt.Errorf("failed to create reel save: %w", err)
	}
	return nil
}

func (r *ReelEngagementRepository) DeleteSave(ctx context.Context, reelID, userID uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("reel_id = ? AND user_id = ?", reelID, userID).
		Delete(&models.ReelSave{}).Error; err != nil {
		return fmt.Errorf("failed to delete reel save: %w", err)
	}
	return nil
}

func (r *ReelEngagementRepository) CountSaves(ctx context.Context, reelID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ReelSave{}).
		Where("reel_id = ?", reelID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count reel saves: %w", err)
	}
	return count, nil
}

func (r *ReelEngagementRepository) GetSavedByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*models.ReelSave, error) {
	var saves []*models.ReelSave
	if err := r.db.WithContext(ctx).
		Preload("Reel").
		Preload("Reel.User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&saves).Error; err != nil {
		return nil, fmt.Errorf("failed to get saved reels: %w", err)
	}
	return saves, nil
}
