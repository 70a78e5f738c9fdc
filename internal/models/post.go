package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Post struct {
	ID         uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID     uuid.UUID      `json:"user_id" gorm:"type:uuid;not null;index"`
	Content    string         `json:"content" gorm:"type:text"`
	Feeling    string         `json:"feeling"`
	Activity   string         `json:"activity"`
	MediaCount int            `json:"media_count" gorm:"default:0"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`

	User  User        `json:"user" gorm:"foreignKey:UserID"`
	Media []PostMedia `json:"media" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

type PostMedia struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	PostID    uuid.UUID `json:"post_id" gorm:"type:uuid;not null;index"`
	MediaURL  string    `json:"media_url" gorm:"not null"`
	MediaType string    `json:"media_type" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (Post) TableName() string {
	return "posts"
}

func (PostMedia) TableName() string {
	return "post_media"
}
