package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/linkup-social/linkup/internal/models"
	"gorm.io/gorm"
)

type ReelRepository struct {
	db *gorm.DB
}

func NewReelRepository(db *gorm.DB) *ReelRepository {
	return &ReelRepository{db: db}
}

func (r *ReelRepository) Create(ctx context.Context, reel *models.Reel) error {
	if err := r.db.WithContext(ctx).Create(reel).Error; err != nil {
		return fmt.Errorf("failed to create reel: %w", err)
	}
	return nil
}

func (r *ReelRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Reel, error) {
	var reel models.Reel
	if err := r.db.WithContext(ctx).
		Preload("User").
		First(&reel, "id = ? AND is_active = ?", id, true).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get reel: %w", err)
	}
	return &reel, nil
}

func (r *ReelRepository) List(ctx context.Context, offset, limit int) ([]*models.Reel, error) {
	var reels []*models.Reel
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("is_active = ?", true).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&reels).Error; err != nil {
		return nil, fmt.Errorf("failed to list reels: %w", err)
	}
	return reels, nil
}

func (r *ReelRepository) GetByUserID(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*models.Reel, error) {
	var reels []*models.Reel
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&reels).Error; err != nil {
		return nil, fmt.Errorf("failed to get reels by user: %w", err)
	}
	return reels, nil
}

func (r *ReelRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Reel{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check reel: %w", err)
	}
	return count > 0, nil
}

func (r *ReelRepository) UpdateOwned(ctx context.Context, id, userID uuid.UUID, fields map[string]interface{}) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Reel{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(fields)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to update reel: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// DeleteOwned is the explicit hard delete: the reel and every engagement row
// hanging off it go in one transaction.
func (r *ReelRepository) DeleteOwned(ctx context.Context, id, userID uuid.UUID) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Unscoped().Where("id = ? AND user_id = ?", id, userID).Delete(&models.Reel{})
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		if affected == 0 {
			return nil
		}
		for _, model := range []interface{}{
			&models.ReelComment{},
			&models.ReelLike{},
			&models.ReelView{},
			&models.ReelShare{},
			&models.ReelSave{},
		} {
			if err := tx.Where("reel_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete reel: %w", err)
	}
	return affected, nil
}

func (r *ReelRepository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Model(&models.Reel{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error; err != nil {
		return fmt.Errorf("failed to increment view count: %w", err)
	}
	return nil
}
