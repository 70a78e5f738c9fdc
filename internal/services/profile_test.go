package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/linkup-social/linkup/internal/config"
	"github.com/linkup-social/linkup/internal/models"
	"github.com/stretchr/testify/require"
)

func testStorageConfig() *config.StorageConfig {
	return &config.StorageConfig{
		Region:       "us-east-1",
		Bucket:       "test",
		PostPrefix:   "posts",
		AvatarPrefix: "avatars",
		CoverPrefix:  "covers",
		ReelPrefix:   "reels",
	}
}

func testMediaConfig() *config.MediaConfig {
	return &config.MediaConfig{
		MaxFilesPerUpload:  10,
		PostFileLimitMB:    50,
		ProfileFileLimitMB: 10,
		ReelFileLimitMB:    100,
	}
}

type profileFixture struct {
	svc       *ProfileService
	users     *fakeUserStore
	education *fakeEducationStore
	work      *fakeWorkStore
	follows   *fakeFollowStore
	posts     *fakePostStore
	userMedia *fakeUserMediaStore
	storage   *fakeStorage
}

func newProfileFixture() *profileFixture {
	f := &profileFixture{
		users:     newFakeUserStore(),
		education: newFakeEducationStore(),
		work:      newFakeWorkStore(),
		follows:   newFakeFollowStore(),
		posts:     newFakePostStore(),
		userMedia: &fakeUserMediaStore{},
		storage:   newFakeStorage(),
	}
	f.svc = NewProfileService(
		f.users, f.education, f.work, f.follows, f.posts, f.userMedia,
		f.storage, testStorageConfig(), testMediaConfig(), testLogger(),
	)
	return f
}

func TestGetProfile_Aggregates(t *testing.T) {
	f := newProfileFixture()
	ctx := context.Background()

	user := f.users.add(&models.User{Username: "ana", AvatarURL: "https://media.test/avatars/a.jpg"})

	require.NoError(t, f.education.Create(ctx, &models.Education{UserID: user.ID, School: "MIT", StartDate: time.Now()}))
	require.NoError(t, f.work.Create(ctx, &models.Work{UserID: user.ID, Company: "Acme", StartDate: time.Now()}))
	require.NoError(t, f.posts.Create(ctx, &models.Post{UserID: user.ID, Content: "one"}))
	require.NoError(t, f.posts.Create(ctx, &models.Post{UserID: user.ID, Content: "two"}))

	follower := uuid.New()
	require.NoError(t, f.follows.Create(ctx, &models.Follow{FollowerID: follower, FollowingID: user.ID}))
	require.NoError(t, f.follows.Create(ctx, &models.Follow{FollowerID: user.ID, FollowingID: follower}))
	require.NoError(t, f.follows.CreateFriendship(ctx, user.ID, follower))

	agg, err := f.svc.GetProfile(ctx, user.ID.String())
	require.NoError(t, err)
	require.Equal(t, user.ID, agg.User.ID)
	require.Len(t, agg.Education, 1)
	require.Len(t, agg.Work, 1)
	require.Equal(t, int64(2), agg.PostCount)
	require.Equal(t, int64(1), agg.FriendCount)
	require.Equal(t, int64(1), agg.FollowerCount)
	require.Equal(t, int64(1), agg.FollowingCount)
	// No post media, but the active avatar counts as a photo.
	require.Equal(t, int64(1), agg.PhotoCount)
}

func TestGetProfile_MissingUser(t *testing.T) {
	f := newProfileFixture()

	_, err := f.svc.GetProfile(context.Background(), uuid.New().String())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateProfile_OwnerOnly(t *testing.T) {
	f := newProfileFixture()
	user := f.users.add(&models.User{Username: "ana"})

	name := "Ana"
	_, err := f.svc.UpdateProfile(context.Background(), uuid.New().String(), user.ID.String(), &UpdateProfileRequest{FullName: &name})
	require.ErrorIs(t, err, ErrForbidden)

	updated, err := f.svc.UpdateProfile(context.Background(), user.ID.String(), user.ID.String(), &UpdateProfileRequest{FullName: &name})
	require.NoError(t, err)
	require.Equal(t, "Ana", updated.FullName)
}

func TestReplacePhoto_ArchivesUploadsCommitsDeletes(t *testing.T) {
	f := newProfileFixture()
	ctx := context.Background()

	user := f.users.add(&models.User{Username: "ana", AvatarURL: "https://media.test/avatars/old.jpg"})

	updated, err := f.svc.ReplacePhoto(ctx, user.ID.String(), PhotoKindAvatar, uploadOf("new.jpg", "image/jpeg", 1<<20))
	require.NoError(t, err)

	// Old URL archived before the swap.
	require.Len(t, f.userMedia.rows, 1)
	require.Equal(t, "https://media.test/avatars/old.jpg", f.userMedia.rows[0].MediaURL)

	// New object uploaded and committed.
	require.Len(t, f.storage.uploads, 1)
	require.Contains(t, updated.AvatarURL, "avatars/"+user.ID.String())

	// Old object cleaned up afterward.
	require.Equal(t, []string{"avatars/old.jpg"}, f.storage.deletes)
}

func TestReplacePhoto_FirstPhotoSkipsArchiveAndDelete(t *testing.T) {
	f := newProfileFixture()
	user := f.users.add(&models.User{Username: "ana"})

	_, err := f.svc.ReplacePhoto(context.Background(), user.ID.String(), PhotoKindCover, uploadOf("cover.png", "image/png", 1<<20))
	require.NoError(t, err)
	require.Empty(t, f.userMedia.rows)
	require.Empty(t, f.storage.deletes)
}

func TestReplacePhoto_ArchiveFailureContinues(t *testing.T) {
	f := newProfileFixture()
	f.userMedia.createErr = errors.New("archive table down")

	user := f.users.add(&models.User{Username: "ana", AvatarURL: "https://media.test/avatars/old.jpg"})

	updated, err := f.svc.ReplacePhoto(context.Background(), user.ID.String(), PhotoKindAvatar, uploadOf("new.jpg", "image/jpeg", 1<<20))
	require.NoError(t, err)
	require.NotEqual(t, "https://media.test/avatars/old.jpg", updated.AvatarURL)
}

func TestReplacePhoto_UploadFailureAbortsBeforeCommit(t *testing.T) {
	f := newProfileFixture()
	f.storage.failFrom = 0

	user := f.users.add(&models.User{Username: "ana", AvatarURL: "https://media.test/avatars/old.jpg"})

	_, err := f.svc.ReplacePhoto(context.Background(), user.ID.String(), PhotoKindAvatar, uploadOf("new.jpg", "image/jpeg", 1<<20))
	require.Error(t, err)

	// Profile row untouched, old object not deleted.
	require.Equal(t, "https://media.test/avatars/old.jpg", f.users.users[user.ID].AvatarURL)
	require.Empty(t, f.storage.deletes)
}

func TestReplacePhoto_RejectsVideosAndOversize(t *testing.T) {
	f := newProfileFixture()
	user := f.users.add(&models.User{Username: "ana"})

	_, err := f.svc.ReplacePhoto(context.Background(), user.ID.String(), PhotoKindAvatar, uploadOf("clip.mp4", "video/mp4", 1<<20))
	require.ErrorIs(t, err, ErrValidation)

	_, err = f.svc.ReplacePhoto(context.Background(), user.ID.String(), PhotoKindAvatar, uploadOf("huge.jpg", "image/jpeg", 11<<20))
	require.ErrorIs(t, err, ErrValidation)

	_, err = f.svc.ReplacePhoto(context.Background(), user.ID.String(), "banner", uploadOf("a.jpg", "image/jpeg", 1<<20))
	require.ErrorIs(t, err, ErrValidation)
}

func TestGetProfile_PhotoCountIncludesPostMedia(t *testing.T) {
	f := newProfileFixture()
	ctx := context.Background()

	user := f.users.add(&models.User{Username: "ana"})

	post := &models.Post{UserID: user.ID, Content: "with media"}
	require.NoError(t, f.posts.Create(ctx, post))
	require.NoError(t, f.posts.CreateMedia(ctx, &models.PostMedia{PostID: post.ID, MediaURL: "u1", MediaType: "image"}))
	require.NoError(t, f.posts.CreateMedia(ctx, &models.PostMedia{PostID: post.ID, MediaURL: "u2", MediaType: "image"}))

	agg, err := f.svc.GetProfile(ctx, user.ID.String())
	require.NoError(t, err)
	require.Equal(t, int64(2), agg.PhotoCount)
}
