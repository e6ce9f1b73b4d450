package service

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/d60-Lab/drinklog/internal/auth"
	"github.com/d60-Lab/drinklog/internal/credential"
	"github.com/d60-Lab/drinklog/internal/model"
	"github.com/d60-Lab/drinklog/internal/policy"
	"github.com/d60-Lab/drinklog/internal/repository"
	"github.com/d60-Lab/drinklog/internal/testutil"
)

type fixture struct {
	store    *repository.Store
	tokens   *auth.TokenManager
	ledger   *TokenLedger
	users    UserService
	auth     AuthService
	rel      RelationshipService
	posts    PostService
	comments CommentService
}

func newFixture(t *testing.T, cache *redis.Client) *fixture {
	t.Helper()
	st := testutil.NewStore(t)
	hasher := credential.NewHasher(bcrypt.MinCost)
	tokens := auth.NewTokenManager("test-secret", time.Hour, "drinklog")
	ledger := NewTokenLedger(st.RevokedTokens, cache, time.Hour)
	return &fixture{
		store:    st,
		tokens:   tokens,
		ledger:   ledger,
		users:    NewUserService(st, hasher, policy.NewDomainSuffixPolicy("@student.liu.se")),
		auth:     NewAuthService(st, hasher, tokens, ledger),
		rel:      NewRelationshipService(st),
		posts:    NewPostService(st),
		comments: NewCommentService(st),
	}
}

// stepClock makes every write one second later than the previous one.
func stepClock(t *testing.T) {
	t.Helper()
	orig := now
	cur := time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC)
	now = func() time.Time {
		cur = cur.Add(time.Second)
		return cur
	}
	t.Cleanup(func() { now = orig })
}

func (f *fixture) register(t *testing.T, username string) *model.User {
	t.Helper()
	u, err := f.users.Register(context.Background(), RegisterInput{
		Username: username,
		Password: "ABCdef123",
		Email:    username + "@student.liu.se",
		Weight:   70,
		Gender:   "male",
	})
	require.NoError(t, err)
	return u
}

func (f *fixture) post(t *testing.T, author *model.User, drink string) *model.Post {
	t.Helper()
	p, err := f.posts.Create(context.Background(), author.ID, CreatePostInput{
		DrinkName: drink, Volume: 33, AlcoholPercentage: 5.3,
	})
	require.NoError(t, err)
	return p
}

func postIDs(posts []*model.Post) []string {
	ids := make([]string, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	return ids
}
