package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestUnreadCount_PrefersCachedCounter(t *testing.T) {
	cache := newFakeUnreadCache()
	svc := NewNotificationService(&fakeNotificationStore{unread: 9}, cache, testLogger())

	userID := uuid.New().String()
	cache.values[UnreadCounterKey(userID)] = "3"

	count, err := svc.UnreadCount(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, int64(3), count)
}

func TestUnreadCount_FallsBackToDatabaseAndReseeds(t *testing.T) {
	cache := newFakeUnreadCache()
	svc := NewNotificationService(&fakeNotificationStore{unread: 7}, cache, testLogger())

	userID := uuid.New().String()

	count, err := svc.UnreadCount(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, int64(7), count)
	require.Equal(t, "7", cache.values[UnreadCounterKey(userID)])
}

func TestMarkAllRead_ResetsCounter(t *testing.T) {
	cache := newFakeUnreadCache()
	store := &fakeNotificationStore{unread: 4}
	svc := NewNotificationService(store, cache, testLogger())

	userID := uuid.New().String()
	cache.values[UnreadCounterKey(userID)] = "4"

	require.NoError(t, svc.MarkAllRead(context.Background(), userID))
	require.True(t, store.allRead)
	require.NotContains(t, cache.values, UnreadCounterKey(userID))
}
