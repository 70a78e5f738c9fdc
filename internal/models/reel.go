package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ReelPrivacyPublic    = "public"
	ReelPrivacyFollowers = "followers"
	ReelPrivacyPrivate   = "private"

	ReelLikeDefault = "like"
)

// Reel reads go through the is_active flag; an explicit delete is a hard
// cascade over comments, likes, views, shares and saves.
type Reel struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID       uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	VideoURL     string    `json:"video_url" gorm:"not null"`
	ThumbnailURL string    `json:"thumbnail_url"`
	Caption      string    `json:"caption" gorm:"type:text"`
	Duration     float64   `json:"duration" gorm:"not null"`
	Privacy      string    `json:"privacy" gorm:"default:'public'"`
	ViewCount    int64     `json:"view_count" gorm:"default:0"`
	IsActive     bool      `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	User User `json:"user" gorm:"foreignKey:UserID"`
}

type ReelComment struct {
	ID              uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ReelID          uuid.UUID  `json:"reel_id" gorm:"type:uuid;not null;index"`
	UserID          uuid.UUID  `json:"user_id" gorm:"type:uuid;not null"`
	Content         string     `json:"content" gorm:"type:text;not null"`
	ParentCommentID *uuid.UUID `json:"parent_comment_id" gorm:"type:uuid"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	User User `json:"user" gorm:"foreignKey:UserID"`
}

type ReelLike struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ReelID    uuid.UUID `json:"reel_id" gorm:"type:uuid;not null;uniqueIndex:idx_reel_like_user"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_reel_like_user"`
	LikeType  string    `json:"like_type" gorm:"default:'like'"`
	CreatedAt time.Time `json:"created_at"`
}

type ReelView struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ReelID         uuid.UUID `json:"reel_id" gorm:"type:uuid;not null;uniqueIndex:idx_reel_view_viewer"`
	ViewerID       uuid.UUID `json:"viewer_id" gorm:"type:uuid;not null;uniqueIndex:idx_reel_view_viewer"`
	WatchDuration  float64   `json:"watch_duration" gorm:"default:0"`
	IsCompleteView bool      `json:"is_complete_view" gorm:"default:false"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type ReelShare struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ReelID    uuid.UUID `json:"reel_id" gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null"`
	ShareType string    `json:"share_type" gorm:"default:'link'"`
	CreatedAt time.Time `json:"created_at"`
}

type ReelSave struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ReelID    uuid.UUID `json:"reel_id" gorm:"type:uuid;not null;uniqueIndex:idx_reel_save_user"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_reel_save_user"`
	CreatedAt time.Time `json:"created_at"`

	Reel Reel `json:"reel" gorm:"foreignKey:ReelID"`
}

func (Reel) TableName() string {
	return "reels"
}

func (ReelComment) TableName() string {
	return "reel_comments"
}

func (ReelLike) TableName() string {
	return "reel_likes"
}

func (ReelView) TableName() string {
	return "reel_views"
}

func (ReelShare) TableName() string {
	return "reel_shares"
}

func (ReelSave) TableName() string {
	return "reel_saves"
}
