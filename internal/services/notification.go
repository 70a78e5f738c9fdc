package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/linkup-social/linkup/internal/models"
	"github.com/linkup-social/linkup/pkg/logger"
)

const unreadCounterTTL = 24 * time.Hour

// UnreadCounterKey is the per-user redis key holding the unread notification
// count. The worker increments it as it stores notifications.
func UnreadCounterKey(userID string) string {
	return "notifications:unread:" + userID
}

type NotificationService struct {
	notificationRepo NotificationStore
	cache            UnreadCache
	logger           *logger.Logger
}

func NewNotificationService(notificationRepo NotificationStore, cache UnreadCache, logger *logger.Logger) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		cache:            cache,
		logger:           logger,
	}
}

func (s *NotificationService) List(ctx context.Context, userID string, offset, limit int) ([]*models.Notification, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID", ErrValidation)
	}

	notifications, err := s.notificationRepo.GetByUserID(ctx, id, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	id, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("%w: invalid user ID", ErrValidation)
	}

	if err := s.notificationRepo.MarkAllRead(ctx, id); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}

	if err := s.cache.Delete(ctx, UnreadCounterKey(userID)); err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Error("Failed to reset unread counter")
	}
	return nil
}

// UnreadCount reads the redis counter and falls back to a database count on
// a miss, re-seeding the counter for the next read.
func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid user ID", ErrValidation)
	}

	key := UnreadCounterKey(userID)
	if cached, err := s.cache.Get(ctx, key); err == nil && cached != "" {
		if count, err := strconv.ParseInt(cached, 10, 64); err == nil {
			return count, nil
		}
	}

	count, err := s.notificationRepo.CountUnread(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	if err := s.cache.Set(ctx, key, count, unreadCounterTTL); err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Error("Failed to seed unread counter")
	}

	return count, nil
}
