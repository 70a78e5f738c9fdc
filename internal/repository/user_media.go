package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/linkup-social/linkup/internal/models"
	"gorm.io/gorm"
)

type UserMediaRepository struct {
	db *gorm.DB
}

func NewUserMediaRepository(db *gorm.DB) *UserMediaRepository {
	return &UserMediaRepository{db: db}
}

// Create appends an archive row. The table is insert-only; nothing in the
// codebase updates or deletes these rows.
func (r *UserMediaRepository) Create(ctx context.Context, media *models.UserMedia) error {
	if err := r.db.WithContext(ctx).Create(media).Error; err != nil {
		return fmt.Errorf("failed to create user media: %w", err)
	}
	return nil
}

func (r *UserMediaRepository) GetByUserID(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*models.UserMedia, error) {
	var rows []*models.UserMedia
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get user media: %w", err)
	}
	return rows, nil
}
