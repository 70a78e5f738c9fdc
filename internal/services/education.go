package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/linkup-social/linkup/internal/models"
	"github.com/linkup-social/linkup/pkg/logger"
)

type EducationService struct {
	educationRepo EducationStore
	logger        *logger.Logger
}

func NewEducationService(educationRepo EducationStore, logger *logger.Logger) *EducationService {
	return &EducationService{
		educationRepo: educationRepo,
		logger:        logger,
	}
}

type EducationRequest struct {
	School       string  `json:"school" binding:"required,max=200"`
	Degree       string  `json:"degree" binding:"max=200"`
	FieldOfStudy string  `json:"field_of_study" binding:"max=200"`
	StartDate    string  `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate      *string `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
	Description  string  `json:"description" binding:"max=1000"`
}

func (s *EducationService) Create(ctx context.Context, userID string, req *EducationRequest) (*models.Education, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID", ErrValidation)
	}

	startDate, endDate, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	education := &models.Education{
		UserID:       id,
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		StartDate:    startDate,
		EndDate:      endDate,
		Description:  req.Description,
	}

	if err := s.educationRepo.Create(ctx, education); err != nil {
		return nil, fmt.Errorf("failed to create education: %w", err)
	}

	s.logger.WithField("user_id", userID).Info("Education entry created")
	return education, nil
}

func (s *EducationService) Update(ctx context.Context, userID, educationID string, req *EducationRequest) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("%w: invalid user ID", ErrValidation)
	}

	educationUUID, err := uuid.Parse(educationID)
	if err != nil {
		return fmt.Errorf("%w: invalid education ID", ErrValidation)
	}

	startDate, endDate, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return err
	}

	fields := map[string]interface{}{
		"school":         req.School,
		"degree":         req.Degree,
		"field_of_study": req.FieldOfStudy,
		"start_date":     startDate,
		"end_date":       endDate,
		"description":    req.Description,
	}

	affected, err := s.educationRepo.UpdateOwned(ctx, educationUUID, userUUID, fields)
	if err != nil {
		return fmt.Errorf("failed to update education: %w", err)
	}
	if affected == 0 {
		return s.classifyMiss(ctx, educationUUID)
	}

	return nil
}

func (s *EducationService) Delete(ctx context.Context, userID, educationID string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("%w: invalid user ID", ErrValidation)
	}

	educationUUID, err := uuid.Parse(educationID)
	if err != nil {
		return fmt.Errorf("%w: invalid education ID", ErrValidation)
	}

	affected, err := s.educationRepo.DeleteOwned(ctx, educationUUID, userUUID)
	if err != nil {
		return fmt.Errorf("failed to delete education: %w", err)
	}
	if affected == 0 {
		return s.classifyMiss(ctx, educationUUID)
	}

	return nil
}

// classifyMiss turns a zero-rows-affected conditional mutation into 404 or
// 403 depending on whether the row exists at all.
func (s *EducationService) classifyMiss(ctx context.Context, id uuid.UUID) error {
	exists, err := s.educationRepo.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check education: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: education entry not found", ErrNotFound)
	}
	return fmt.Errorf("%w: education entry belongs to another user", ErrForbidden)
}

func parseDateRange(start string, end *string) (time.Time, *time.Time, error) {
	startDate, err := time.Parse("2006-01-02", start)
	if err != nil {
		return time.Time{}, nil, fmt.Errorf("%w: start_date must be YYYY-MM-DD", ErrValidation)
	}

	var endDate *time.Time
	if end != nil {
		parsed, err := time.Parse("2006-01-02", *end)
		if err != nil {
			return time.Time{}, nil, fmt.Errorf("%w: end_date must be YYYY-MM-DD", ErrValidation)
		}
		if parsed.Before(startDate) {
			return time.Time{}, nil, fmt.Errorf("%w: end_date cannot be before start_date", ErrValidation)
		}
		endDate = &parsed
	}

	return startDate, endDate, nil
}
