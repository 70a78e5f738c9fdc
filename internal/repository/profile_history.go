package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/linkup-social/linkup/internal/models"
	"gorm.io/gorm"
)

// EducationRepository and WorkRepository back the profile history sections.
// Mutations are conditional on the owning user id so the ownership check and
// the write are a single statement.

type EducationRepository struct {
	db *gorm.DB
}

func NewEducationRepository(db *gorm.DB) *EducationRepository {
	return &EducationRepository{db: db}
}

func (r *EducationRepository) Create(ctx context.Context, education *models.Education) error {
	if err := r.db.WithContext(ctx).Create(education).Error; err != nil {
		return fmt.Errorf("failed to create education: %w", err)
	}
	return nil
}

func (r *EducationRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Education, error) {
	var rows []*models.Education
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_date DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get education history: %w", err)
	}
	return rows, nil
}

func (r *EducationRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Education{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check education: %w", err)
	}
	return count > 0, nil
}

func (r *EducationRepository) UpdateOwned(ctx context.Context, id, userID uuid.UUID, fields map[string]interface{}) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Education{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(fields)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to update education: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *EducationRepository) DeleteOwned(ctx context.Context, id, userID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Education{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete education: %w", res.Error)
	}
	return res.RowsAffected, nil
}

type WorkRepository struct {
	db *gorm.DB
}

func NewWorkRepository(db *gorm.DB) *WorkRepository {
	return &WorkRepository{db: db}
}

func (r *WorkRepository) Create(ctx context.Context, work *models.Work) error {
	if err := r.db.WithContext(ctx).Create(work).Error; err != nil {
		return fmt.Errorf("failed to create work: %w", err)
	}
	return nil
}

func (r *WorkRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Work, error) {
	var rows []*models.Work
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_date DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get work history: %w", err)
	}
	return rows, nil
}

func (r *WorkRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Work{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check work: %w", err)
	}
	return count > 0, nil
}

func (r *WorkRepository) UpdateOwned(ctx context.Context, id, userID uuid.UUID, fields map[string]interface{}) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Work{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(fields)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to update work: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *WorkRepository) DeleteOwned(ctx context.Context, id, userID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Work{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete work: %w", res.Error)
	}
	return res.RowsAffected, nil
}
