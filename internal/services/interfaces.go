package services

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/linkup-social/linkup/internal/models"
)

// Store interfaces mirror the repository layer so services take explicit,
// substitutable dependencies instead of ambient clients. The gorm
// repositories are the production implementations.

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (int64, error)
	UpdatePhotoURL(ctx context.Context, id uuid.UUID, column, url string) (int64, error)
}

type FollowStore interface {
	Create(ctx context.Context, follow *models.Follow) error
	Delete(ctx context.Context, followerID, followingID uuid.UUID) error
	Get(ctx context.Context, followerID, followingID uuid.UUID) (*models.Follow, error)
	GetFollowers(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*models.User, error)
	GetFollowing(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*models.User, error)
	CountFollowers(ctx context.Context, userID uuid.UUID) (int64, error)
	CountFollowing(ctx context.Context, userID uuid.UUID) (int64, error)
	IsFollowing(ctx context.Context, followerID, followingID uuid.UUID) (bool, error)
	CreateFriendship(ctx context.Context, userA, userB uuid.UUID) error
	DeleteFriendship(ctx context.Context, userA, userB uuid.UUID) error
	CountFriends(ctx context.Context, userID uuid.UUID) (int64, error)
}

type EducationStore interface {
	Create(ctx context.Context, education *models.Education) error
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Education, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	UpdateOwned(ctx context.Context, id, userID uuid.UUID, fields map[string]interface{}) (int64, error)
	DeleteOwned(ctx context.Context, id, userID uuid.UUID) (int64, error)
}

type WorkStore interface {
	Create(ctx context.Context, work *models.Work) error
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Work, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	UpdateOwned(ctx context.Context, id, userID uuid.UUID, fields map[string]interface{}) (int64, error)
	DeleteOwned(ctx context.Context, id, userID uuid.UUID) (int64, error)
}

type UserMediaStore interface {
	Create(ctx context.Context, media *models.UserMedia) error
	GetByUserID(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*models.UserMedia, error)
}

type PostStore interface {
	Create(ctx context.Context, post *models.Post) error
	CreateMedia(ctx context.Context, media *models.PostMedia) error
	SetMediaCount(ctx context.Context, postID uuid.UUID, count int) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Post, error)
	List(ctx context.Context, offset, limit int) ([]*models.Post, error)
	GetByUserID(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*models.Post, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	DeleteOwned(ctx context.Context, id, userID uuid.UUID) (int64, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	CountMediaByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
}

type ReelStore interface {
	Create(ctx context.Context, reel *models.Reel) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Reel, error)
	List(ctx context.Context, offset, limit int) ([]*models.Reel, error)
	GetByUserID(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*models.Reel, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	UpdateOwned(ctx context.Context, id, userID uuid.UUID, fields map[string]interface{}) (int64, error)
	DeleteOwned(ctx context.Context, id, userID uuid.UUID) (int64, error)
	IncrementViewCount(ctx context.Context, id uuid.UUID) error
}

type ReelEngagementStore interface {
	GetLike(ctx context.Context, reelID, userID uuid.UUID) (*models.ReelLike, error)
	CreateLike(ctx context.Context, like *models.ReelLike) error
	UpdateLikeType(ctx context.Context, id uuid.UUID, likeType string) error
	DeleteLike(ctx context.Context, reelID, userID uuid.UUID) error
	CountLikes(ctx context.Context, reelID uuid.UUID) (int64, error)
	GetView(ctx context.Context, reelID, viewerID uuid.UUID) (*models.ReelView, error)
	CreateView(ctx context.Context, view *models.ReelView) error
	UpdateView(ctx context.Context, view *models.ReelView) error
	CreateShare(ctx context.Context, share *models.ReelShare) error
	CountShares(ctx context.Context, reelID uuid.UUID) (int64, error)
	GetSave(ctx context.Context, reelID, userID uuid.UUID) (*models.ReelSave, error)
	CreateSave(ctx context.Context, save *models.ReelSave) error
	DeleteSave(ctx context.Context, reelID, userID uuid.UUID) error
	CountSaves(ctx context.Context, reelID uuid.UUID) (int64, error)
	GetSavedByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*models.ReelSave, error)
}

type ReelCommentStore interface {
	Create(ctx context.Context, comment *models.ReelComment) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.ReelComment, error)
	GetByReelID(ctx context.Context, reelID uuid.UUID, offset, limit int) ([]*models.ReelComment, error)
	UpdateContent(ctx context.Context, id uuid.UUID, content string) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByReelID(ctx context.Context, reelID uuid.UUID) (int64, error)
}

type NotificationStore interface {
	GetByUserID(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*models.Notification, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
}

// ObjectStorage is the external object store boundary (S3 in production).
type ObjectStorage interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
	KeyFromURL(url string) string
}

// EventProducer is the engagement event bus boundary (kafka in production);
// publishes are always best-effort at call sites.
type EventProducer interface {
	Publish(ctx context.Context, key string, value interface{}) error
}

// UnreadCache keeps the per-user unread notification counter (redis in
// production).
type UnreadCache interface {
	Get(ctx context.Context, key string) (string, error)
	Incr(ctx context.Context, key string) (int64, error)
	Delete(ctx context.Context, keys ...string) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
}
