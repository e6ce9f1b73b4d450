package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/drinklog/internal/idgen"
	"github.com/d60-Lab/drinklog/internal/model"
	"github.com/d60-Lab/drinklog/pkg/apperr"
)

func TestRegister_CreatesUserAndSelfEdge(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	u := f.register(t, "bertil")
	assert.True(t, idgen.Valid(u.ID))
	assert.NotEqual(t, "ABCdef123", u.PasswordHash)

	var users, edges int64
	require.NoError(t, f.store.DB().Model(&model.User{}).Count(&users).Error)
	require.NoError(t, f.store.DB().Model(&model.Follow{}).Count(&edges).Error)
	assert.EqualValues(t, 1, users)
	assert.EqualValues(t, 1, edges)

	self, err := f.rel.IsFollowing(ctx, u.ID, u.ID)
	require.NoError(t, err)
	assert.True(t, self)
}

func TestRegister_Rejections(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.register(t, "bertil")

	cases := []struct {
		name string
		in   RegisterInput
		kind apperr.Kind
	}{
		{"duplicate username", RegisterInput{Username: "bertil", Password: "ABCdef123", Email: "other@student.liu.se", Weight: 60, Gender: "male"}, apperr.KindConflict},
		{"duplicate email", RegisterInput{Username: "klas", Password: "ABCdef123", Email: "bertil@student.liu.se", Weight: 60, Gender: "male"}, apperr.KindConflict},
		{"weak password", RegisterInput{Username: "klas", Password: "abc", Email: "klas@student.liu.se", Weight: 60, Gender: "male"}, apperr.KindInvalidInput},
		{"foreign domain", RegisterInput{Username: "klas", Password: "ABCdef123", Email: "klas@gmail.com", Weight: 60, Gender: "male"}, apperr.KindInvalidInput},
		{"no weight", RegisterInput{Username: "klas", Password: "ABCdef123", Email: "klas@student.liu.se", Gender: "male"}, apperr.KindInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.users.Register(ctx, tc.in)
			require.Error(t, err)
			assert.Equal(t, tc.kind, apperr.KindOf(err))
		})
	}

	var users int64
	require.NoError(t, f.store.DB().Model(&model.User{}).Count(&users).Error)
	assert.EqualValues(t, 1, users, "failed registrations must not write")
}

func TestSetBioAndWeight(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	u := f.register(t, "bertil")

	bio := "Skål!"
	got, err := f.users.SetBio(ctx, u.ID, &bio)
	require.NoError(t, err)
	require.NotNil(t, got.Bio)
	assert.Equal(t, bio, *got.Bio)

	got, err = f.users.SetWeight(ctx, u.ID, 82)
	require.NoError(t, err)
	assert.Equal(t, 82, got.Weight)

	_, err = f.users.SetWeight(ctx, u.ID, -1)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestGetByEmail_Trims(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	a := f.register(t, "anna")

	u, err := f.users.GetByEmail(ctx, " anna@student.liu.se ")
	require.NoError(t, err)
	assert.Equal(t, a.ID, u.ID)

	_, err = f.users.GetByEmail(ctx, "nobody@student.liu.se")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestSearch(t *testing.T) {
	stepClock(t)
	f := newFixture(t, nil)
	ctx := context.Background()
	f.register(t, "bertil")
	f.register(t, "Bertila")
	f.register(t, "klas")

	res, err := f.users.Search(ctx, "ertil")
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "bertil", res[0].Username)
	assert.Equal(t, "Bertila", res[1].Username)

	res, err = f.users.Search(ctx, "bert")
	require.NoError(t, err)
	assert.Len(t, res, 1)
}

func TestDelete_Cascades(t *testing.T) {
	stepClock(t)
	f := newFixture(t, nil)
	ctx := context.Background()

	a := f.register(t, "anna")
	b := f.register(t, "bertil")
	pa := f.post(t, a, "Gränges")
	pb := f.post(t, b, "Norrlands")

	require.NoError(t, f.rel.Follow(ctx, a.ID, b.ID))
	require.NoError(t, f.rel.Follow(ctx, b.ID, a.ID))
	_, err := f.posts.Like(ctx, a.ID, pb.ID)
	require.NoError(t, err)
	_, err = f.posts.Like(ctx, b.ID, pa.ID)
	require.NoError(t, err)
	_, err = f.comments.Create(ctx, "nice", a.ID, pb.ID)
	require.NoError(t, err)
	_, err = f.comments.Create(ctx, "cheers", b.ID, pa.ID)
	require.NoError(t, err)

	require.NoError(t, f.users.Delete(ctx, a.ID))

	_, err = f.users.Get(ctx, a.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	_, err = f.posts.Get(ctx, pa.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	db := f.store.DB()
	var n int64
	require.NoError(t, db.Model(&model.Follow{}).Where("follower_id = ? OR followee_id = ?", a.ID, a.ID).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, db.Model(&model.Like{}).Where("user_id = ? OR post_id = ?", a.ID, pa.ID).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, db.Model(&model.Comment{}).Where("author_id = ? OR post_id = ?", a.ID, pa.ID).Count(&n).Error)
	assert.Zero(t, n)

	// b 的数据保持完整
	self, err := f.rel.IsFollowing(ctx, b.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, self)
	feed, err := f.posts.Feed(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{pb.ID}, postIDs(feed))

	assert.ErrorIs(t, f.users.Delete(ctx, a.ID), apperr.ErrNotFound)
}
