package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/drinklog/pkg/apperr"
)

func TestFollow_IdempotentAndSelfRejected(t *testing.T) {
	stepClock(t)
	f := newFixture(t, nil)
	ctx := context.Background()
	a := f.register(t, "anna")
	b := f.register(t, "bertil")

	require.NoError(t, f.rel.Follow(ctx, a.ID, b.ID))
	require.NoError(t, f.rel.Follow(ctx, a.ID, b.ID))

	following, err := f.rel.ListFollowing(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, b.ID, following[0].ID)

	followers, err := f.rel.ListFollowers(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, followers, 1)
	assert.Equal(t, a.ID, followers[0].ID)

	assert.ErrorIs(t, f.rel.Follow(ctx, a.ID, a.ID), ErrFollowSelf)
	assert.ErrorIs(t, f.rel.Unfollow(ctx, a.ID, a.ID), ErrFollowSelf)

	// 自关注边不受影响
	self, err := f.rel.IsFollowing(ctx, a.ID, a.ID)
	require.NoError(t, err)
	assert.True(t, self)
}

func TestUnfollow(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	a := f.register(t, "anna")
	b := f.register(t, "bertil")

	// 不存在的边：无操作
	require.NoError(t, f.rel.Unfollow(ctx, a.ID, b.ID))

	require.NoError(t, f.rel.Follow(ctx, a.ID, b.ID))
	require.NoError(t, f.rel.Unfollow(ctx, a.ID, b.ID))

	ok, err := f.rel.IsFollowing(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFollow_UnknownUser(t *testing.T) {
	f := newFixture(t, nil)
	a := f.register(t, "anna")

	err := f.rel.Follow(context.Background(), a.ID, "nosuchuser00000")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
