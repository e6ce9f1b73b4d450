package service

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/drinklog/pkg/apperr"
)

func TestCreatePost_Validation(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	a := f.register(t, "anna")

	cases := []struct {
		name string
		in   CreatePostInput
	}{
		{"zero volume", CreatePostInput{DrinkName: "Öl", Volume: 0, AlcoholPercentage: 5}},
		{"nan volume", CreatePostInput{DrinkName: "Öl", Volume: math.NaN(), AlcoholPercentage: 5}},
		{"too strong", CreatePostInput{DrinkName: "Öl", Volume: 33, AlcoholPercentage: 101}},
		{"long name", CreatePostInput{DrinkName: "Gränges Gränges Gränges Gränges!!", Volume: 33, AlcoholPercentage: 5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.posts.Create(ctx, a.ID, tc.in)
			assert.ErrorIs(t, err, apperr.ErrInvalidInput)
		})
	}

	_, err := f.posts.Create(ctx, "nosuchuser00000", CreatePostInput{DrinkName: "Öl", Volume: 33})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestFeed_OwnAndFollowedNewestFirst(t *testing.T) {
	stepClock(t)
	f := newFixture(t, nil)
	ctx := context.Background()
	a := f.register(t, "anna")
	b := f.register(t, "bertil")
	c := f.register(t, "cecilia")

	p1 := f.post(t, a, "Gränges")
	p2 := f.post(t, b, "Norrlands")
	f.post(t, c, "Mariestads")
	p4 := f.post(t, a, "Sofiero")

	feed, err := f.posts.Feed(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{p4.ID, p1.ID}, postIDs(feed))

	require.NoError(t, f.rel.Follow(ctx, a.ID, b.ID))
	feed, err = f.posts.Feed(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{p4.ID, p2.ID, p1.ID}, postIDs(feed))

	require.NoError(t, f.rel.Unfollow(ctx, a.ID, b.ID))
	feed, err = f.posts.Feed(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{p4.ID, p1.ID}, postIDs(feed))

	own, err := f.posts.ListByAuthor(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{p4.ID, p1.ID}, postIDs(own))
}

func TestLikeUnlike(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	a := f.register(t, "anna")
	b := f.register(t, "bertil")
	p := f.post(t, b, "Gränges")

	got, err := f.posts.Like(ctx, a.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	_, err = f.posts.Like(ctx, a.ID, p.ID)
	require.NoError(t, err)

	liked, err := f.posts.HasLiked(ctx, a.ID, p.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	posts, err := f.posts.LikedPosts(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{p.ID}, postIDs(posts))

	_, err = f.posts.Unlike(ctx, a.ID, p.ID)
	require.NoError(t, err)
	_, err = f.posts.Unlike(ctx, a.ID, p.ID)
	require.NoError(t, err)

	liked, err = f.posts.HasLiked(ctx, a.ID, p.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	_, err = f.posts.Like(ctx, a.ID, "nosuchpost00000")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
