package services

import (
	"context"
	"testing"

	"github.com/anonto42/microblog/backend/internal/apperr"
	"github.com/anonto42/microblog/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifications(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	notes := NewNotificationService(f.deps)
	author := f.user(t, "ytaisei")
	fan := f.user(t, "fan")
	post := f.post(t, author, "hello")

	require.NoError(t, f.follows.Follow(ctx, fan, "ytaisei"))
	_, err := f.likes.Like(ctx, post.ID, fan)
	require.NoError(t, err)

	list, total, err := notes.List(ctx, author, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, list, 2)
	assert.Equal(t, models.NotificationLike, list[0].Type)
	require.NotNil(t, list[0].PostID)
	assert.Equal(t, post.ID, *list[0].PostID)
	assert.Equal(t, models.NotificationFollow, list[1].Type)
	require.NotNil(t, list[1].Actor)
	assert.Equal(t, "fan", list[1].Actor.Username)

	unread, err := notes.UnreadCount(ctx, author)
	require.NoError(t, err)
	assert.EqualValues(t, 2, unread)

	// only the recipient can acknowledge a notification
	assert.ErrorIs(t, notes.MarkAsRead(ctx, fan, list[0].ID), apperr.ErrNotFound)
	require.NoError(t, notes.MarkAsRead(ctx, author, list[0].ID))
	require.NoError(t, notes.MarkAsRead(ctx, author, list[0].ID))
	unread, err = notes.UnreadCount(ctx, author)
	require.NoError(t, err)
	assert.EqualValues(t, 1, unread)

	require.NoError(t, notes.MarkAllAsRead(ctx, author))
	unread, err = notes.UnreadCount(ctx, author)
	require.NoError(t, err)
	assert.Zero(t, unread)

	empty, total, err := notes.List(ctx, fan, 1, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, empty)
}
