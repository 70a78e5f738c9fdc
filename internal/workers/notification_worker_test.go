package workers

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/linkup-social/linkup/internal/models"
	"github.com/linkup-social/linkup/pkg/queue"
	"github.com/stretchr/testify/require"
)

func TestToNotification_Mapping(t *testing.T) {
	worker := &NotificationWorker{}

	actor := uuid.New()
	recipient := uuid.New()
	reel := uuid.New()

	tests := []struct {
		name     string
		event    queue.Event
		wantType string
		wantNil  bool
	}{
		{
			name: "follow created",
			event: queue.Event{
				Type: queue.EventFollowCreated,
				Data: queue.EngagementEvent{ActorID: actor.String(), RecipientID: recipient.String()},
			},
			wantType: models.NotificationFollow,
		},
		{
			name: "reel liked carries reel id",
			event: queue.Event{
				Type: queue.EventReelLiked,
				Data: queue.EngagementEvent{ActorID: actor.String(), RecipientID: recipient.String(), ReelID: reel.String()},
			},
			wantType: models.NotificationReelLike,
		},
		{
			name: "reel commented",
			event: queue.Event{
				Type: queue.EventReelCommented,
				Data: queue.EngagementEvent{ActorID: actor.String(), RecipientID: recipient.String(), ReelID: reel.String()},
			},
			wantType: models.NotificationReelComment,
		},
		{
			name: "self engagement dropped",
			event: queue.Event{
				Type: queue.EventReelLiked,
				Data: queue.EngagementEvent{ActorID: actor.String(), RecipientID: actor.String(), ReelID: reel.String()},
			},
			wantNil: true,
		},
		{
			name: "unfollow produces nothing",
			event: queue.Event{
				Type: queue.EventFollowDeleted,
				Data: queue.EngagementEvent{ActorID: actor.String(), RecipientID: recipient.String()},
			},
			wantNil: true,
		},
		{
			name: "post created produces nothing",
			event: queue.Event{
				Type: queue.EventPostCreated,
				Data: queue.EngagementEvent{ActorID: actor.String()},
			},
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.event.Timestamp = time.Now()
			notification, err := worker.toNotification(&tt.event)
			require.NoError(t, err)

			if tt.wantNil {
				require.Nil(t, notification)
				return
			}

			require.NotNil(t, notification)
			require.Equal(t, tt.wantType, notification.Type)
			require.Equal(t, recipient, notification.UserID)
			require.Equal(t, actor, notification.ActorID)
			if tt.event.Data.ReelID != "" {
				require.NotNil(t, notification.ReelID)
				require.Equal(t, reel, *notification.ReelID)
			}
		})
	}
}

func TestToNotification_MalformedIDs(t *testing.T) {
	worker := &NotificationWorker{}

	_, err := worker.toNotification(&queue.Event{
		Type: queue.EventFollowCreated,
		Data: queue.EngagementEvent{ActorID: "garbage", RecipientID: uuid.New().String()},
	})
	require.Error(t, err)
}
