package repository_test

import (
	"context"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/d60-Lab/drinklog/internal/model"
	"github.com/d60-Lab/drinklog/internal/repository"
	"github.com/d60-Lab/drinklog/internal/testutil"
)

func seedUsers(b *testing.B, st *repository.Store, n int) []model.User {
	b.Helper()
	users := make([]model.User, n)
	for i := range users {
		id := fmt.Sprintf("u%015d", i)
		users[i] = model.User{ID: id, Username: id, Email: id + "@student.liu.se", PasswordHash: "p", Gender: "x"}
	}
	if err := st.DB().CreateInBatches(&users, 500).Error; err != nil {
		b.Fatalf("seed users: %v", err)
	}
	return users
}

func BenchmarkFollowWrite(b *testing.B) {
	st := testutil.NewStore(b)
	users := seedUsers(b, st, 1000)
	ctx := context.Background()
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		from := users[rnd.Intn(len(users))].ID
		to := users[rnd.Intn(len(users))].ID
		_, _ = st.Follows.Create(ctx, from, to)
	}
}

func BenchmarkQueryFollowersAndFeed(b *testing.B) {
	st := testutil.NewStore(b)
	ctx := context.Background()

	// u0 被 N 个用户关注，同时关注这 N 个用户；每人一条帖子
	const N = 2000
	users := seedUsers(b, st, N+1)
	u0 := users[0].ID
	now := time.Now().UTC()
	posts := make([]model.Post, 0, N)
	for i, u := range users[1:] {
		_, _ = st.Follows.Create(ctx, u.ID, u0)
		_, _ = st.Follows.Create(ctx, u0, u.ID)
		posts = append(posts, model.Post{
			ID: fmt.Sprintf("p%015d", i), AuthorID: u.ID, DrinkName: "beer",
			Volume: 33, AlcoholPercentage: 5.3, Timestamp: now.Add(time.Duration(i) * time.Second),
		})
	}
	if err := st.DB().CreateInBatches(&posts, 500).Error; err != nil {
		b.Fatalf("seed posts: %v", err)
	}

	b.ResetTimer()
	b.Run("ListFollowers", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = st.Follows.ListFollowers(ctx, u0)
		}
	})

	b.Run("ListFeed", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = st.Posts.ListFeed(ctx, u0)
		}
	})
}
