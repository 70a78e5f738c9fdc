package queue

import "time"

// Engagement events published by the API on best-effort basis and consumed
// by the notification worker.

type EventType string

const (
	EventFollowCreated EventType = "follow_created"
	EventFollowDeleted EventType = "follow_deleted"
	EventPostCreated   EventType = "post_created"
	EventReelLiked     EventType = "reel_liked"
	EventReelCommented EventType = "reel_commented"
	EventReelShared    EventType = "reel_shared"
)

type Event struct {
	Type      EventType       `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Data      EngagementEvent `json:"data"`
}

// EngagementEvent carries enough context for the worker to address a
// notification: ActorID acted on an entity owned by RecipientID.
type EngagementEvent struct {
	ActorID     string `json:"actor_id"`
	RecipientID string `json:"recipient_id"`
	ReelID      string `json:"reel_id,omitempty"`
	PostID      string `json:"post_id,omitempty"`
	CommentID   string `json:"comment_id,omitempty"`
	LikeType    string `json:"like_type,omitempty"`
}
