package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/linkup-social/linkup/internal/models"
	"gorm.io/gorm"
)

type ReelCommentRepository struct {
	db *gorm.DB
}

func NewReelCommentRepository(db *gorm.DB) *ReelCommentRepository {
	return &ReelCommentRepository{db: db}
}

func (r *ReelCommentRepository) Create(ctx context.Context, comment *models.ReelComment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return fmt.Errorf("failed to create reel comment: %w", err)
	}
	return nil
}

func (r *ReelCommentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ReelComment, error) {
	var comment models.ReelComment
	if err := r.db.WithContext(ctx).
		Preload("User").
		First(&comment, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get reel comment: %w", err)
	}
	return &comment, nil
}

func (r *ReelCommentRepository) GetByReelID(ctx context.Context, reelID uuid.UUID, offset, limit int) ([]*models.ReelComment, error) {
	var comments []*models.ReelComment
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("reel_id = ?", reelID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("failed to get reel comments: %w", err)
	}
	return comments, nil
}

func (r *ReelCommentRepository) UpdateContent(ctx context.Context, id uuid.UUID, content string) error {
	if err := r.db.WithContext(ctx).Model(&models.ReelComment{}).
		Where("id = ?", id).
		Update("content", content).Error; err != nil {
		return fmt.Errorf("failed to update reel comment: %w", err)
	}
	return nil
}

func (r *ReelCommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Delete(&models.ReelComment{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete reel comment: %w", err)
	}
	return nil
}

func (r *ReelCommentRepository) CountByReelID(ctx context.Context, reelID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ReelComment{}).
		Where("reel_id = ?", reelID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count reel comments: %w", err)
	}
	return count, nil
}
