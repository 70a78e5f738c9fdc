package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/linkup-social/linkup/internal/models"
	"github.com/linkup-social/linkup/pkg/logger"
	"github.com/linkup-social/linkup/pkg/queue"
)

func testLogger() *logger.Logger {
	l := logger.NewLogger()
	l.SetOutput(io.Discard)
	return l
}

// In-memory store fakes. Each keeps just enough state for the behavior under
// test; error injection goes through the exported err fields.

type fakeUserStore struct {
	users     map[uuid.UUID]*models.User
	updateErr error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[uuid.UUID]*models.User{}}
}

func (f *fakeUserStore) add(user *models.User) *models.User {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.users[user.ID] = user
	return user
}

func (f *fakeUserStore) Create(ctx context.Context, user *models.User) error {
	f.add(user)
	return nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return f.users[id], nil
}

func (f *fakeUserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (int64, error) {
	if f.updateErr != nil {
		return 0, f.updateErr
	}
	user, ok := f.users[id]
	if !ok {
		return 0, nil
	}
	if v, ok := fields["full_name"]; ok {
		user.FullName = v.(string)
	}
	if v, ok := fields["bio"]; ok {
		user.Bio = v.(string)
	}
	if v, ok := fields["location"]; ok {
		user.Location = v.(string)
	}
	if v, ok := fields["website"]; ok {
		user.Website = v.(string)
	}
	return 1, nil
}

func (f *fakeUserStore) UpdatePhotoURL(ctx context.Context, id uuid.UUID, column, url string) (int64, error) {
	if f.updateErr != nil {
		return 0, f.updateErr
	}
	user, ok := f.users[id]
	if !ok {
		return 0, nil
	}
	switch column {
	case "avatar_url":
		user.AvatarURL = url
	case "cover_url":
		user.CoverURL = url
	}
	return 1, nil
}

type followPair struct {
	follower  uuid.UUID
	following uuid.UUID
}

type fakeFollowStore struct {
	follows     map[followPair]*models.Follow
	friendships map[followPair]bool
}

func newFakeFollowStore() *fakeFollowStore {
	return &fakeFollowStore{
		follows:     map[followPair]*models.Follow{},
		friendships: map[followPair]bool{},
	}
}

func (f *fakeFollowStore) pairKey(a, b uuid.UUID) followPair {
	if a.String() > b.String() {
		a, b = b, a
	}
	return followPair{follower: a, following: b}
}

func (f *fakeFollowStore) Create(ctx context.Context, follow *models.Follow) error {
	f.follows[followPair{follow.FollowerID, follow.FollowingID}] = follow
	return nil
}

func (f *fakeFollowStore) Delete(ctx context.Context, followerID, followingID uuid.UUID) error {
	delete(f.follows, followPair{followerID, followingID})
	return nil
}

func (f *fakeFollowStore) Get(ctx context.Context, followerID, followingID uuid.UUID) (*models.Follow, error) {
	return f.follows[followPair{followerID, followingID}], nil
}

func (f *fakeFollowStore) GetFollowers(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*models.User, error) {
	return nil, nil
}

func (f *fakeFollowStore) GetFollowing(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*models.User, error) {
	return nil, nil
}

func (f *fakeFollowStore) CountFollowers(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	for pair := range f.follows {
		if pair.following == userID {
			n++
		}
	}
	return n, nil
}

func (f *fakeFollowStore) CountFollowing(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	for pair := range f.follows {
		if pair.follower == userID {
			n++
		}
	}
	return n, nil
}

func (f *fakeFollowStore) IsFollowing(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	_, ok := f.follows[followPair{followerID, followingID}]
	return ok, nil
}

func (f *fakeFollowStore) CreateFriendship(ctx context.Context, userA, userB uuid.UUID) error {
	f.friendships[f.pairKey(userA, userB)] = true
	return nil
}

func (f *fakeFollowStore) DeleteFriendship(ctx context.Context, userA, userB uuid.UUID) error {
	delete(f.friendships, f.pairKey(userA, userB))
	return nil
}

func (f *fakeFollowStore) CountFriends(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	for pair := range f.friendships {
		if pair.follower == userID || pair.following == userID {
			n++
		}
	}
	return n, nil
}

type fakeEducationStore struct {
	rows map[uuid.UUID]*models.Education
}

func newFakeEducationStore() *fakeEducationStore {
	return &fakeEducationStore{rows: map[uuid.UUID]*models.Education{}}
}

func (f *fakeEducationStore) Create(ctx context.Context, education *models.Education) error {
	if education.ID == uuid.Nil {
		education.ID = uuid.New()
	}
	f.rows[education.ID] = education
	return nil
}

func (f *fakeEducationStore) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Education, error) {
	var out []*models.Education
	for _, row := range f.rows {
		if row.UserID == userID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeEducationStore) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, ok := f.rows[id]
	return ok, nil
}

func (f *fakeEducationStore) UpdateOwned(ctx context.Context, id, userID uuid.UUID, fields map[string]interface{}) (int64, error) {
	row, ok := f.rows[id]
	if !ok || row.UserID != userID {
		return 0, nil
	}
	if v, ok := fields["school"]; ok {
		row.School = v.(string)
	}
	return 1, nil
}

func (f *fakeEducationStore) DeleteOwned(ctx context.Context, id, userID uuid.UUID) (int64, error) {
	row, ok := f.rows[id]
	if !ok || row.UserID != userID {
		return 0, nil
	}
	delete(f.rows, id)
	return 1, nil
}

type fakeWorkStore struct {
	rows map[uuid.UUID]*models.Work
}

func newFakeWorkStore() *fakeWorkStore {
	return &fakeWorkStore{rows: map[uuid.UUID]*models.Work{}}
}

func (f *fakeWorkStore) Create(ctx context.Context, work *models.Work) error {
	if work.ID == uuid.Nil {
		work.ID = uuid.New()
	}
	f.rows[work.ID] = work
	return nil
}

func (f *fakeWorkStore) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Work, error) {
	var out []*models.Work
	for _, row := range f.rows {
		if row.UserID == userID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeWorkStore) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, ok := f.rows[id]
	return ok, nil
}

func (f *fakeWorkStore) UpdateOwned(ctx context.Context, id, userID uuid.UUID, fields map[string]interface{}) (int64, error) {
	row, ok := f.rows[id]
	if !ok || row.UserID != userID {
		return 0, nil
	}
	if v, ok := fields["company"]; ok {
		row.Company = v.(string)
	}
	return 1, nil
}

func (f *fakeWorkStore) DeleteOwned(ctx context.Context, id, userID uuid.UUID) (int64, error) {
	row, ok := f.rows[id]
	if !ok || row.UserID != userID {
		return 0, nil
	}
	delete(f.rows, id)
	return 1, nil
}

type fakeUserMediaStore struct {
	rows      []*models.UserMedia
	createErr error
}

func (f *fakeUserMediaStore) Create(ctx context.Context, media *models.UserMedia) error {
	if f.createErr != nil {
		return f.createErr
	}
	if media.ID == uuid.Nil {
		media.ID = uuid.New()
	}
	f.rows = append(f.rows, media)
	return nil
}

func (f *fakeUserMediaStore) GetByUserID(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*models.UserMedia, error) {
	var out []*models.UserMedia
	for _, row := range f.rows {
		if row.UserID == userID {
			out = append(out, row)
		}
	}
	return out, nil
}

type fakePostStore struct {
	posts      map[uuid.UUID]*models.Post
	media      map[uuid.UUID][]*models.PostMedia
	mediaErr   error
	mediaCount map[uuid.UUID]int
}

func newFakePostStore() *fakePostStore {
	return &fakePostStore{
		posts:      map[uuid.UUID]*models.Post{},
		media:      map[uuid.UUID][]*models.PostMedia{},
		mediaCount: map[uuid.UUID]int{},
	}
}

func (f *fakePostStore) Create(ctx context.Context, post *models.Post) error {
	if post.ID == uuid.Nil {
		post.ID = uuid.New()
	}
	f.posts[post.ID] = post
	return nil
}

func (f *fakePostStore) CreateMedia(ctx context.Context, media *models.PostMedia) error {
	if f.mediaErr != nil {
		return f.mediaErr
	}
	f.media[media.PostID] = append(f.media[media.PostID], media)
	return nil
}

func (f *fakePostStore) SetMediaCount(ctx context.Context, postID uuid.UUID, count int) error {
	f.mediaCount[postID] = count
	if post, ok := f.posts[postID]; ok {
		post.MediaCount = count
	}
	return nil
}

func (f *fakePostStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	return f.posts[id], nil
}

func (f *fakePostStore) List(ctx context.Context, offset, limit int) ([]*models.Post, error) {
	var out []*models.Post
	for _, post := range f.posts {
		out = append(out, post)
	}
	return out, nil
}

func (f *fakePostStore) GetByUserID(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*models.Post, error) {
	var out []*models.Post
	for _, post := range f.posts {
		if post.UserID == userID {
			out = append(out, post)
		}
	}
	return out, nil
}

func (f *fakePostStore) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, ok := f.posts[id]
	return ok, nil
}

func (f *fakePostStore) DeleteOwned(ctx context.Context, id, userID uuid.UUID) (int64, error) {
	post, ok := f.posts[id]
	if !ok || post.UserID != userID {
		return 0, nil
	}
	delete(f.posts, id)
	return 1, nil
}

func (f *fakePostStore) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	for _, post := range f.posts {
		if post.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (f *fakePostStore) CountMediaByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	for postID, media := range f.media {
		if post, ok := f.posts[postID]; ok && post.UserID == userID {
			n += int64(len(media))
		}
	}
	return n, nil
}

type fakeReelStore struct {
	reels      map[uuid.UUID]*models.Reel
	increments map[uuid.UUID]int
}

func newFakeReelStore() *fakeReelStore {
	return &fakeReelStore{
		reels:      map[uuid.UUID]*models.Reel{},
		increments: map[uuid.UUID]int{},
	}
}

func (f *fakeReelStore) add(reel *models.Reel) *models.Reel {
	if reel.ID == uuid.Nil {
		reel.ID = uuid.New()
	}
	f.reels[reel.ID] = reel
	return reel
}

func (f *fakeReelStore) Create(ctx context.Context, reel *models.Reel) error {
	f.add(reel)
	return nil
}

func (f *fakeReelStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Reel, error) {
	reel, ok := f.reels[id]
	if !ok || !reel.IsActive {
		return nil, nil
	}
	return reel, nil
}

func (f *fakeReelStore) List(ctx context.Context, offset, limit int) ([]*models.Reel, error) {
	var out []*models.Reel
	for _, reel := range f.reels {
		if reel.IsActive {
			out = append(out, reel)
		}
	}
	return out, nil
}

func (f *fakeReelStore) GetByUserID(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*models.Reel, error) {
	var out []*models.Reel
	for _, reel := range f.reels {
		if reel.IsActive && reel.UserID == userID {
			out = append(out, reel)
		}
	}
	return out, nil
}

func (f *fakeReelStore) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, ok := f.reels[id]
	return ok, nil
}

func (f *fakeReelStore) UpdateOwned(ctx context.Context, id, userID uuid.UUID, fields map[string]interface{}) (int64, error) {
	reel, ok := f.reels[id]
	if !ok || reel.UserID != userID {
		return 0, nil
	}
	if v, ok := fields["caption"]; ok {
		reel.Caption = v.(string)
	}
	if v, ok := fields["privacy"]; ok {
		reel.Privacy = v.(string)
	}
	return 1, nil
}

func (f *fakeReelStore) DeleteOwned(ctx context.Context, id, userID uuid.UUID) (int64, error) {
	reel, ok := f.reels[id]
	if !ok || reel.UserID != userID {
		return 0, nil
	}
	delete(f.reels, id)
	return 1, nil
}

func (f *fakeReelStore) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	f.increments[id]++
	if reel, ok := f.reels[id]; ok {
		reel.ViewCount++
	}
	return nil
}

type likeKey struct {
	reelID uuid.UUID
	userID uuid.UUID
}

type fakeReelEngagementStore struct {
	likes  map[likeKey]*models.ReelLike
	views  map[likeKey]*models.ReelView
	shares []*models.ReelShare
	saves  map[likeKey]*models.ReelSave
}

func newFakeReelEngagementStore() *fakeReelEngagementStore {
	return &fakeReelEngagementStore{
		likes: map[likeKey]*models.ReelLike{},
		views: map[likeKey]*models.ReelView{},
		saves: map[likeKey]*models.ReelSave{},
	}
}

func (f *fakeReelEngagementStore) GetLike(ctx context.Context, reelID, userID uuid.UUID) (*models.ReelLike, error) {
	return f.likes[likeKey{reelID, userID}], nil
}

func (f *fakeReelEngagementStore) CreateLike(ctx context.Context, like *models.ReelLike) error {
	if like.ID == uuid.Nil {
		like.ID = uuid.New()
	}
	f.likes[likeKey{like.ReelID, like.UserID}] = like
	return nil
}

func (f *fakeReelEngagementStore) UpdateLikeType(ctx context.Context, id uuid.UUID, likeType string) error {
	for _, like := range f.likes {
		if like.ID == id {
			like.LikeType = likeType
			return nil
		}
	}
	return errors.New("like not found")
}

func (f *fakeReelEngagementStore) DeleteLike(ctx context.Context, reelID, userID uuid.UUID) error {
	delete(f.likes, likeKey{reelID, userID})
	return nil
}

func (f *fakeReelEngagementStore) CountLikes(ctx context.Context, reelID uuid.UUID) (int64, error) {
	var n int64
	for key := range f.likes {
		if key.reelID == reelID {
			n++
		}
	}
	return n, nil
}

func (f *fakeReelEngagementStore) GetView(ctx context.Context, reelID, viewerID uuid.UUID) (*models.ReelView, error) {
	return f.views[likeKey{reelID, viewerID}], nil
}

func (f *fakeReelEngagementStore) CreateView(ctx context.Context, view *models.ReelView) error {
	if view.ID == uuid.Nil {
		view.ID = uuid.New()
	}
	f.views[likeKey{view.ReelID, view.ViewerID}] = view
	return nil
}

func (f *fakeReelEngagementStore) UpdateView(ctx context.Context, view *models.ReelView) error {
	f.views[likeKey{view.ReelID, view.ViewerID}] = view
	return nil
}

func (f *fakeReelEngagementStore) CreateShare(ctx context.Context, share *models.ReelShare) error {
	if share.ID == uuid.Nil {
		share.ID = uuid.New()
	}
	f.shares = append(f.shares, share)
	return nil
}

func (f *fakeReelEngagementStore) CountShares(ctx context.Context, reelID uuid.UUID) (int64, error) {
	var n int64
	for _, share := range f.shares {
		if share.ReelID == reelID {
			n++
		}
	}
	return n, nil
}

func (f *fakeReelEngagementStore) GetSave(ctx context.Context, reelID, userID uuid.UUID) (*models.ReelSave, error) {
	return f.saves[likeKey{reelID, userID}], nil
}

func (f *fakeReelEngagementStore) CreateSave(ctx context.Context, save *models.ReelSave) error {
	if save.ID == uuid.Nil {
		save.ID = uuid.New()
	}
	f.saves[likeKey{save.ReelID, save.UserID}] = save
	return nil
}

func (f *fakeReelEngagementStore) DeleteSave(ctx context.Context, reelID, userID uuid.UUID) error {
	delete(f.saves, likeKey{reelID, userID})
	return nil
}

func (f *fakeReelEngagementStore) CountSaves(ctx context.Context, reelID uuid.UUID) (int64, error) {
	var n int64
	for key := range f.saves {
		if key.reelID == reelID {
			n++
		}
	}
	return n, nil
}

func (f *fakeReelEngagementStore) GetSavedByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*models.ReelSave, error) {
	var out []*models.ReelSave
	for key, save := range f.saves {
		if key.userID == userID {
			out = append(out, save)
		}
	}
	return out, nil
}

type fakeReelCommentStore struct {
	comments map[uuid.UUID]*models.ReelComment
}

func newFakeReelCommentStore() *fakeReelCommentStore {
	return &fakeReelCommentStore{comments: map[uuid.UUID]*models.ReelComment{}}
}

func (f *fakeReelCommentStore) add(comment *models.ReelComment) *models.ReelComment {
	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}
	f.comments[comment.ID] = comment
	return comment
}

func (f *fakeReelCommentStore) Create(ctx context.Context, comment *models.ReelComment) error {
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	f.add(comment)
	return nil
}

func (f *fakeReelCommentStore) GetByID(ctx context.Context, id uuid.UUID) (*models.ReelComment, error) {
	return f.comments[id], nil
}

func (f *fakeReelCommentStore) GetByReelID(ctx context.Context, reelID uuid.UUID, offset, limit int) ([]*models.ReelComment, error) {
	var out []*models.ReelComment
	for _, comment := range f.comments {
		if comment.ReelID == reelID {
			out = append(out, comment)
		}
	}
	return out, nil
}

func (f *fakeReelCommentStore) UpdateContent(ctx context.Context, id uuid.UUID, content string) error {
	comment, ok := f.comments[id]
	if !ok {
		return errors.New("comment not found")
	}
	comment.Content = content
	return nil
}

func (f *fakeReelCommentStore) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.comments, id)
	return nil
}

func (f *fakeReelCommentStore) CountByReelID(ctx context.Context, reelID uuid.UUID) (int64, error) {
	var n int64
	for _, comment := range f.comments {
		if comment.ReelID == reelID {
			n++
		}
	}
	return n, nil
}

type fakeNotificationStore struct {
	rows    []*models.Notification
	allRead bool
	unread  int64
}

func (f *fakeNotificationStore) GetByUserID(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*models.Notification, error) {
	return f.rows, nil
}

func (f *fakeNotificationStore) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	f.allRead = true
	f.unread = 0
	return nil
}

func (f *fakeNotificationStore) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	return f.unread, nil
}

// fakeStorage records uploads and deletes in order, and can be told to fail
// from the n-th upload onward.
type fakeStorage struct {
	uploads    []string
	deletes    []string
	failFrom   int
	publicBase string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{failFrom: -1, publicBase: "https://media.test"}
}

func (f *fakeStorage) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	if f.failFrom >= 0 && len(f.uploads) >= f.failFrom {
		return "", errors.New("upload failed")
	}
	f.uploads = append(f.uploads, key)
	return f.publicBase + "/" + key, nil
}

func (f *fakeStorage) Delete(ctx context.Context, key string) error {
	f.deletes = append(f.deletes, key)
	return nil
}

func (f *fakeStorage) KeyFromURL(url string) string {
	prefix := f.publicBase + "/"
	if len(url) <= len(prefix) || url[:len(prefix)] != prefix {
		return ""
	}
	return url[len(prefix):]
}

type fakeProducer struct {
	events []queue.Event
	err    error
}

func (f *fakeProducer) Publish(ctx context.Context, key string, value interface{}) error {
	if f.err != nil {
		return f.err
	}
	if event, ok := value.(queue.Event); ok {
		f.events = append(f.events, event)
	}
	return nil
}

type fakeUnreadCache struct {
	values map[string]string
	getErr error
}

func newFakeUnreadCache() *fakeUnreadCache {
	return &fakeUnreadCache{values: map[string]string{}}
}

func (f *fakeUnreadCache) Get(ctx context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	value, ok := f.values[key]
	if !ok {
		return "", errors.New("key not found")
	}
	return value, nil
}

func (f *fakeUnreadCache) Incr(ctx context.Context, key string) (int64, error) {
	n, _ := strconv.ParseInt(f.values[key], 10, 64)
	n++
	f.values[key] = strconv.FormatInt(n, 10)
	return n, nil
}

func (f *fakeUnreadCache) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.values, key)
	}
	return nil
}

func (f *fakeUnreadCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	f.values[key] = fmt.Sprintf("%v", value)
	return nil
}

func uploadOf(name, contentType string, size int64) *FileUpload {
	return &FileUpload{
		Name:        name,
		ContentType: contentType,
		Size:        size,
		Body:        bytes.NewReader([]byte("data")),
	}
}
