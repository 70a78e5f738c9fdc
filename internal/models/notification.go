package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	NotificationFollow      = "follow"
	NotificationReelLike    = "reel_like"
	NotificationReelComment = "reel_comment"
	NotificationReelShare   = "reel_share"
)

type Notification struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;index"`
	ActorID   uuid.UUID  `json:"actor_id" gorm:"type:uuid;not null"`
	Type      string     `json:"type" gorm:"not null"`
	ReelID    *uuid.UUID `json:"reel_id" gorm:"type:uuid"`
	IsRead    bool       `json:"is_read" gorm:"default:false"`
	CreatedAt time.Time  `json:"created_at"`

	Actor User `json:"actor" gorm:"foreignKey:ActorID"`
}

func (Notification) TableName() string {
	return "notifications"
}
