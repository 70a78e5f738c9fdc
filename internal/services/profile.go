package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/linkup-social/linkup/internal/config"
	"github.com/linkup-social/linkup/internal/models"
	"github.com/linkup-social/linkup/pkg/logger"
	"golang.org/x/sync/errgroup"
)

const (
	PhotoKindAvatar = "avatar"
	PhotoKindCover  = "cover"

	archiveSource = "profile_photo_archive"
)

type ProfileService struct {
	userRepo      UserStore
	educationRepo EducationStore
	workRepo      WorkStore
	followRepo    FollowStore
	postRepo      PostStore
	userMediaRepo UserMediaStore
	storage       ObjectStorage
	storageCfg    *config.StorageConfig
	mediaCfg      *config.MediaConfig
	logger        *logger.Logger
}

func NewProfileService(
	userRepo UserStore,
	educationRepo EducationStore,
	workRepo WorkStore,
	followRepo FollowStore,
	postRepo PostStore,
	userMediaRepo UserMediaStore,
	storage ObjectStorage,
	storageCfg *config.StorageConfig,
	mediaCfg *config.MediaConfig,
	logger *logger.Logger,
) *ProfileService {
	return &ProfileService{
		userRepo:      userRepo,
		educationRepo: educationRepo,
		workRepo:      workRepo,
		followRepo:    followRepo,
		postRepo:      postRepo,
		userMediaRepo: userMediaRepo,
		storage:       storage,
		storageCfg:    storageCfg,
		mediaCfg:      mediaCfg,
		logger:        logger,
	}
}

type UpdateProfileRequest struct {
	FullName *string `json:"full_name" binding:"omitempty,max=100"`
	Bio      *string `json:"bio" binding:"omitempty,max=500"`
	Location *string `json:"location" binding:"omitempty,max=100"`
	Website  *string `json:"website" binding:"omitempty,max=200"`
	Birthday *string `json:"birthday" binding:"omitempty,datetime=2006-01-02"`
}

// ProfileAggregate is the composed profile read: base row, history sections
// and counts, all computed per request.
type ProfileAggregate struct {
	User           *models.User        `json:"user"`
	Education      []*models.Education `json:"education"`
	Work           []*models.Work      `json:"work"`
	PostCount      int64               `json:"post_count"`
	FriendCount    int64               `json:"friend_count"`
	FollowerCount  int64               `json:"follower_count"`
	FollowingCount int64               `json:"following_count"`
	PhotoCount     int64               `json:"photo_count"`
}

// GetProfile composes the profile read. Child rows and counts are fetched in
// parallel; nothing is cached or denormalized, so cost scales with the
// user's data.
func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*ProfileAggregate, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID", ErrValidation)
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user not found", ErrNotFound)
	}

	agg := &ProfileAggregate{User: user}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := s.educationRepo.GetByUserID(gctx, id)
		if err != nil {
			return err
		}
		agg.Education = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.workRepo.GetByUserID(gctx, id)
		if err != nil {
			return err
		}
		agg.Work = rows
		return nil
	})
	g.Go(func() error {
		count, err := s.postRepo.CountByUserID(gctx, id)
		if err != nil {
			return err
		}
		agg.PostCount = count
		return nil
	})
	g.Go(func() error {
		count, err := s.followRepo.CountFriends(gctx, id)
		if err != nil {
			return err
		}
		agg.FriendCount = count
		return nil
	})
	g.Go(func() error {
		count, err := s.followRepo.CountFollowers(gctx, id)
		if err != nil {
			return err
		}
		agg.FollowerCount = count
		return nil
	})
	g.Go(func() error {
		count, err := s.followRepo.CountFollowing(gctx, id)
		if err != nil {
			return err
		}
		agg.FollowingCount = count
		return nil
	})
	g.Go(func() error {
		count, err := s.postRepo.CountMediaByUserID(gctx, id)
		if err != nil {
			return err
		}
		agg.PhotoCount = count
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to aggregate profile: %w", err)
	}

	// The active avatar and cover count as photos too.
	if user.AvatarURL != "" {
		agg.PhotoCount++
	}
	if user.CoverURL != "" {
		agg.PhotoCount++
	}

	return agg, nil
}

func (s *ProfileService) UpdateProfile(ctx context.Context, callerID, targetID string, req *UpdateProfileRequest) (*models.User, error) {
	if callerID != targetID {
		return nil, fmt.Errorf("%w: cannot update another user's profile", ErrForbidden)
	}

	id, err := uuid.Parse(targetID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID", ErrValidation)
	}

	fields := map[string]interface{}{}
	if req.FullName != nil {
		fields["full_name"] = *req.FullName
	}
	if req.Bio != nil {
		fields["bio"] = *req.Bio
	}
	if req.Location != nil {
		fields["location"] = *req.Location
	}
	if req.Website != nil {
		fields["website"] = *req.Website
	}
	if req.Birthday != nil {
		birthday, err := time.Parse("2006-01-02", *req.Birthday)
		if err != nil {
			return nil, fmt.Errorf("%w: birthday must be YYYY-MM-DD", ErrValidation)
		}
		fields["birthday"] = birthday
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", ErrValidation)
	}

	affected, err := s.userRepo.UpdateFields(ctx, id, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("%w: user not found", ErrNotFound)
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get updated user: %w", err)
	}

	s.logger.WithField("user_id", targetID).Info("Profile updated successfully")
	return user, nil
}

// ReplacePhoto runs the avatar/cover replacement saga. Step policies:
// archive failure is logged and the replacement proceeds (photo history loss
// is acceptable); an upload failure aborts before the profile row is
// touched; a commit failure after upload leaves the new object orphaned in
// storage; old-object cleanup after a successful commit is best-effort.
// The ordering means the visible photo never points at a deleted object.
func (s *ProfileService) ReplacePhoto(ctx context.Context, userID, kind string, file *FileUpload) (*models.User, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID", ErrValidation)
	}

	var column, prefix, title string
	switch kind {
	case PhotoKindAvatar:
		column, prefix, title = "avatar_url", s.storageCfg.AvatarPrefix, "Previous profile photo"
	case PhotoKindCover:
		column, prefix, title = "cover_url", s.storageCfg.CoverPrefix, "Previous cover photo"
	default:
		return nil, fmt.Errorf("%w: type must be avatar or cover", ErrValidation)
	}

	if err := validateMediaFile(file, s.mediaCfg.ProfileFileLimitMB<<20, true); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user not found", ErrNotFound)
	}

	oldURL := user.AvatarURL
	if kind == PhotoKindCover {
		oldURL = user.CoverURL
	}

	// Step 1: archive the outgoing URL before anything overwrites it.
	if oldURL != "" {
		archive := &models.UserMedia{
			UserID:    id,
			MediaURL:  oldURL,
			MediaType: "image",
			Title:     title,
			Source:    archiveSource,
		}
		if err := s.userMediaRepo.Create(ctx, archive); err != nil {
			s.logger.WithError(err).WithField("user_id", userID).Error("Failed to archive previous photo, continuing with upload")
		}
	}

	// Step 2: upload, then commit the new URL to the profile row.
	key := newObjectKey(prefix, userID, file.Name)
	newURL, err := s.storage.Upload(ctx, key, file.ContentType, file.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to upload %s: %w", kind, err)
	}

	affected, err := s.userRepo.UpdatePhotoURL(ctx, id, column, newURL)
	if err != nil {
		s.logger.WithFields(map[string]interface{}{
			"user_id":      userID,
			"orphaned_key": key,
		}).Error("Profile commit failed after upload, object left orphaned")
		return nil, fmt.Errorf("failed to commit %s: %w", kind, err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("%w: user not found", ErrNotFound)
	}

	// Step 3: the old object is unreferenced now, delete it best-effort.
	if oldURL != "" {
		if oldKey := s.storage.KeyFromURL(oldURL); oldKey != "" {
			if err := s.storage.Delete(ctx, oldKey); err != nil {
				s.logger.WithError(err).WithField("key", oldKey).Error("Failed to delete previous photo object")
			}
		}
	}

	updated, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get updated user: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": userID,
		"kind":    kind,
	}).Info("Profile photo replaced successfully")

	return updated, nil
}

func (s *ProfileService) GetPhotoArchive(ctx context.Context, userID string, offset, limit int) ([]*models.UserMedia, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID", ErrValidation)
	}

	rows, err := s.userMediaRepo.GetByUserID(ctx, id, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get photo archive: %w", err)
	}
	return rows, nil
}
