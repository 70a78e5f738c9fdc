package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/linkup-social/linkup/internal/models"
	"github.com/linkup-social/linkup/pkg/logger"
)

type WorkService struct {
	workRepo WorkStore
	logger   *logger.Logger
}

func NewWorkService(workRepo WorkStore, logger *logger.Logger) *WorkService {
	return &WorkService{
		workRepo: workRepo,
		logger:   logger,
	}
}

type WorkRequest struct {
	Company     string  `json:"company" binding:"required,max=200"`
	Position    string  `json:"position" binding:"required,max=200"`
	StartDate   string  `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate     *string `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
	Description string  `json:"description" binding:"max=1000"`
}

func (s *WorkService) Create(ctx context.Context, userID string, req *WorkRequest) (*models.Work, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID", ErrValidation)
	}

	startDate, endDate, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	work := &models.Work{
		UserID:      id,
		Company:     req.Company,
		Position:    req.Position,
		StartDate:   startDate,
		EndDate:     endDate,
		Description: req.Description,
	}

	if err := s.workRepo.Create(ctx, work); err != nil {
		return nil, fmt.Errorf("failed to create work: %w", err)
	}

	s.logger.WithField("user_id", userID).Info("Work entry created")
	return work, nil
}

func (s *WorkService) Update(ctx context.Context, userID, workID string, req *WorkRequest) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("%w: invalid user ID", ErrValidation)
	}

	workUUID, err := uuid.Parse(workID)
	if err != nil {
		return fmt.Errorf("%w: invalid work ID", ErrValidation)
	}

	startDate, endDate, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return err
	}

	fields := map[string]interface{}{
		"company":     req.Company,
		"position":    req.Position,
		"start_date":  startDate,
		"end_date":    endDate,
		"description": req.Description,
	}

	affected, err := s.workRepo.UpdateOwned(ctx, workUUID, userUUID, fields)
	if err != nil {
		return fmt.Errorf("failed to update work: %w", err)
	}
	if affected == 0 {
		return s.classifyMiss(ctx, workUUID)
	}

	return nil
}

func (s *WorkService) Delete(ctx context.Context, userID, workID string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("%w: invalid user ID", ErrValidation)
	}

	workUUID, err := uuid.Parse(workID)
	if err != nil {
		return fmt.Errorf("%w: invalid work ID", ErrValidation)
	}

	affected, err := s.workRepo.DeleteOwned(ctx, workUUID, userUUID)
	if err != nil {
		return fmt.Errorf("failed to delete work: %w", err)
	}
	if affected == 0 {
		return s.classifyMiss(ctx, workUUID)
	}

	return nil
}

func (s *WorkService) classifyMiss(ctx context.Context, id uuid.UUID) error {
	exists, err := s.workRepo.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check work: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: work entry not found", ErrNotFound)
	}
	return fmt.Errorf("%w: work entry belongs to another user", ErrForbidden)
}
