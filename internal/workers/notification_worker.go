package workers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/linkup-social/linkup/internal/models"
	"github.com/linkup-social/linkup/internal/repository"
	"github.com/linkup-social/linkup/internal/services"
	"github.com/linkup-social/linkup/pkg/cache"
	"github.com/linkup-social/linkup/pkg/logger"
	"github.com/linkup-social/linkup/pkg/queue"
)

// NotificationWorker turns engagement events into stored notifications and
// bumps the recipient's unread counter. Events it cannot address (self
// engagement, unfollows, plain post creates) are acknowledged and dropped.
type NotificationWorker struct {
	consumer         *queue.KafkaConsumer
	notificationRepo *repository.NotificationRepository
	cache            *cache.RedisClient
	logger           *logger.Logger
	cancel           context.CancelFunc
	done             chan struct{}
}

func NewNotificationWorker(
	consumer *queue.KafkaConsumer,
	notificationRepo *repository.NotificationRepository,
	cache *cache.RedisClient,
	logger *logger.Logger,
) *NotificationWorker {
	return &NotificationWorker{
		consumer:         consumer,
		notificationRepo: notificationRepo,
		cache:            cache,
		logger:           logger,
		done:             make(chan struct{}),
	}
}

func (w *NotificationWorker) Start(ctx context.Context) {
	ctx, w.cancel = context.WithCancel(ctx)

	go func() {
		defer close(w.done)

		w.logger.Info("Notification worker started")
		if err := w.consumer.Subscribe(ctx, w.handleMessage); err != nil && ctx.Err() == nil {
			w.logger.WithError(err).Error("Notification worker subscription ended")
		}
	}()
}

func (w *NotificationWorker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	<-w.done
	w.logger.Info("Notification worker stopped")
}

func (w *NotificationWorker) handleMessage(msg queue.Message) error {
	var event queue.Event
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		w.logger.WithError(err).Error("Failed to decode engagement event")
		// Malformed payloads are not retryable.
		return nil
	}

	notification, err := w.toNotification(&event)
	if err != nil {
		w.logger.WithError(err).WithField("event_type", string(event.Type)).Error("Failed to map engagement event")
		return nil
	}
	if notification == nil {
		return nil
	}

	ctx := context.Background()

	if err := w.notificationRepo.Create(ctx, notification); err != nil {
		return fmt.Errorf("failed to store notification: %w", err)
	}

	key := services.UnreadCounterKey(notification.UserID.String())
	if _, err := w.cache.Incr(ctx, key); err != nil {
		w.logger.WithError(err).WithField("user_id", notification.UserID).Error("Failed to bump unread counter")
	}

	w.logger.WithFields(map[string]interface{}{
		"type":    notification.Type,
		"user_id": notification.UserID,
	}).Info("Notification stored")

	return nil
}

// toNotification maps an event onto a notification row, or nil when the
// event kind produces none.
func (w *NotificationWorker) toNotification(event *queue.Event) (*models.Notification, error) {
	var notificationType string
	switch event.Type {
	case queue.EventFollowCreated:
		notificationType = models.NotificationFollow
	case queue.EventReelLiked:
		notificationType = models.NotificationReelLike
	case queue.EventReelCommented:
		notificationType = models.NotificationReelComment
	case queue.EventReelShared:
		notificationType = models.NotificationReelShare
	default:
		return nil, nil
	}

	if event.Data.RecipientID == "" || event.Data.ActorID == event.Data.RecipientID {
		return nil, nil
	}

	actorID, err := uuid.Parse(event.Data.ActorID)
	if err != nil {
		return nil, fmt.Errorf("invalid actor ID %q: %w", event.Data.ActorID, err)
	}
	recipientID, err := uuid.Parse(event.Data.RecipientID)
	if err != nil {
		return nil, fmt.Errorf("invalid recipient ID %q: %w", event.Data.RecipientID, err)
	}

	notification := &models.Notification{
		UserID:  recipientID,
		ActorID: actorID,
		Type:    notificationType,
	}

	if event.Data.ReelID != "" {
		reelID, err := uuid.Parse(event.Data.ReelID)
		if err != nil {
			return nil, fmt.Errorf("invalid reel ID %q: %w", event.Data.ReelID, err)
		}
		notification.ReelID = &reelID
	}

	return notification, nil
}
