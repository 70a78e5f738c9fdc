package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Username  string         `json:"username" gorm:"uniqueIndex;not null"`
	Email     string         `json:"email" gorm:"uniqueIndex;not null"`
	Password  string         `json:"-" gorm:"not null"`
	FullName  string         `json:"full_name"`
	Bio       string         `json:"bio"`
	AvatarURL string         `json:"avatar_url"`
	CoverURL  string         `json:"cover_url"`
	Birthday  *time.Time     `json:"birthday"`
	Location  string         `json:"location"`
	Website   string         `json:"website"`
	IsActive  bool           `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

type Education struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID       uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;index"`
	School       string     `json:"school" gorm:"not null"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"field_of_study"`
	StartDate    time.Time  `json:"start_date" gorm:"not null"`
	EndDate      *time.Time `json:"end_date"`
	Description  string     `json:"description"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type Work struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID      uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;index"`
	Company     string     `json:"company" gorm:"not null"`
	Position    string     `json:"position" gorm:"not null"`
	StartDate   time.Time  `json:"start_date" gorm:"not null"`
	EndDate     *time.Time `json:"end_date"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Follow rows are hard-deleted on unfollow so the unique
// (follower_id, following_id) pair frees up for a later re-follow.
type Follow struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	FollowerID  uuid.UUID `json:"follower_id" gorm:"type:uuid;not null;uniqueIndex:idx_follower_following"`
	FollowingID uuid.UUID `json:"following_id" gorm:"type:uuid;not null;uniqueIndex:idx_follower_following"`
	CreatedAt   time.Time `json:"created_at"`

	Follower  User `json:"follower" gorm:"foreignKey:FollowerID"`
	Following User `json:"following" gorm:"foreignKey:FollowingID"`
}

// Friendship holds one row per mutual-follow pair. UserAID always sorts
// below UserBID so the pair is unique regardless of direction.
type Friendship struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserAID   uuid.UUID `json:"user_a_id" gorm:"type:uuid;not null;uniqueIndex:idx_friend_pair"`
	UserBID   uuid.UUID `json:"user_b_id" gorm:"type:uuid;not null;uniqueIndex:idx_friend_pair"`
	CreatedAt time.Time `json:"created_at"`
}

// UserMedia is the insert-only photo archive. Rows are written by the
// profile photo workflow before the live URL is overwritten.
type UserMedia struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	MediaURL  string    `json:"media_url" gorm:"not null"`
	MediaType string    `json:"media_type"`
	Title     string    `json:"title"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

func (Education) TableName() string {
	return "educations"
}

func (Work) TableName() string {
	return "works"
}

func (Follow) TableName() string {
	return "follows"
}

func (Friendship) TableName() string {
	return "friendships"
}

func (UserMedia) TableName() string {
	return "user_media"
}
