// Package projection turns stored entities into the JSON views served by the
// HTTP layer.
package projection

import (
	"context"
	"crypto/md5"
	"fmt"
	"strings"
	"time"

	"github.com/d60-Lab/drinklog/internal/model"
	"github.com/d60-Lab/drinklog/internal/repository"
	"github.com/d60-Lab/drinklog/internal/service"
)

const DefaultAvatarSize = 80

type UserView struct {
	UserID        string     `json:"user_id"`
	Username      string     `json:"username"`
	Weight        int        `json:"weight"`
	Gender        string     `json:"gender"`
	Email         string     `json:"email"`
	Bio           *string    `json:"bio"`
	Posts         []PostView `json:"posts"`
	FollowedPosts []PostView `json:"followed_posts"`
	LikedPosts    []PostView `json:"liked_posts"`
	Avatar        string     `json:"avatar"`
	Followed      []string   `json:"followed"`
}

type PostView struct {
	PostID            string   `json:"post_id"`
	Timestamp         string   `json:"timestamp"`
	DrinkName         string   `json:"drink_name"`
	Volume            float64  `json:"volume"`
	AlcoholPercentage float64  `json:"alcohol_percentage"`
	Likes             []string `json:"likes"`
	Author            string   `json:"author"`
}

type CommentView struct {
	CommentID string `json:"comment_id"`
	Body      string `json:"body"`
	Timestamp string `json:"timestamp"`
	AuthorID  string `json:"author_id"`
	PostID    string `json:"post_id"`
}

// Projector 读模型组装，点赞与作者按批加载；帖子列表走 PostService
type Projector struct {
	store *repository.Store
	posts service.PostService
}

func NewProjector(store *repository.Store, posts service.PostService) *Projector {
	return &Projector{store: store, posts: posts}
}

// User 组装完整用户视图：自己的帖子、时间线、点赞过的帖子和关注列表
func (p *Projector) User(ctx context.Context, u *model.User) (UserView, error) {
	own, err := p.posts.ListByAuthor(ctx, u.ID)
	if err != nil {
		return UserView{}, fmt.Errorf("load posts of %s: %w", u.ID, err)
	}
	feed, err := p.posts.Feed(ctx, u.ID)
	if err != nil {
		return UserView{}, fmt.Errorf("load feed of %s: %w", u.ID, err)
	}
	liked, err := p.posts.LikedPosts(ctx, u.ID)
	if err != nil {
		return UserView{}, fmt.Errorf("load likes of %s: %w", u.ID, err)
	}
	followed, err := p.followedUsernames(ctx, u.ID)
	if err != nil {
		return UserView{}, err
	}

	// 三组帖子一次性加载点赞和作者
	all := make([]*model.Post, 0, len(own)+len(feed)+len(liked))
	all = append(append(append(all, own...), feed...), liked...)
	ps, err := p.loadPostSupport(ctx, all)
	if err != nil {
		return UserView{}, err
	}

	return UserView{
		UserID:        u.ID,
		Username:      u.Username,
		Weight:        u.Weight,
		Gender:        u.Gender,
		Email:         u.Email,
		Bio:           u.Bio,
		Posts:         ps.views(own),
		FollowedPosts: ps.views(feed),
		LikedPosts:    ps.views(liked),
		Avatar:        AvatarURL(u.Email, DefaultAvatarSize),
		Followed:      followed,
	}, nil
}

func (p *Projector) Users(ctx context.Context, users []*model.User) ([]UserView, error) {
	out := make([]UserView, 0, len(users))
	for _, u := range users {
		v, err := p.User(ctx, u)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (p *Projector) Post(ctx context.Context, post *model.Post) (PostView, error) {
	views, err := p.Posts(ctx, []*model.Post{post})
	if err != nil {
		return PostView{}, err
	}
	return views[0], nil
}

func (p *Projector) Posts(ctx context.Context, posts []*model.Post) ([]PostView, error) {
	ps, err := p.loadPostSupport(ctx, posts)
	if err != nil {
		return nil, err
	}
	return ps.views(posts), nil
}

func Comment(c *model.Comment) CommentView {
	return CommentView{
		CommentID: c.ID,
		Body:      c.Body,
		Timestamp: formatTime(c.Timestamp),
		AuthorID:  c.AuthorID,
		PostID:    c.PostID,
	}
}

func Comments(cs []*model.Comment) []CommentView {
	out := make([]CommentView, 0, len(cs))
	for _, c := range cs {
		out = append(out, Comment(c))
	}
	return out
}

// AvatarURL returns the gravatar URL for email.
func AvatarURL(email string, size int) string {
	if size <= 0 {
		size = DefaultAvatarSize
	}
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?d=mp&s=%d", sum, size)
}

func (p *Projector) followedUsernames(ctx context.Context, userID string) ([]string, error) {
	edges, err := p.store.Follows.ListFollowings(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load followings of %s: %w", userID, err)
	}
	ids := make([]string, 0, len(edges))
	for _, e := range edges {
		if e.FolloweeID != userID {
			ids = append(ids, e.FolloweeID)
		}
	}
	names, err := p.usernames(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if n, ok := names[id]; ok {
			out = append(out, n)
		}
	}
	return out, nil
}

func (p *Projector) usernames(ctx context.Context, ids []string) (map[string]string, error) {
	users, err := p.store.Users.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	m := make(map[string]string, len(users))
	for _, u := range users {
		m[u.ID] = u.Username
	}
	return m, nil
}

type postSupport struct {
	likers  map[string][]string
	authors map[string]string
}

func (p *Projector) loadPostSupport(ctx context.Context, posts []*model.Post) (*postSupport, error) {
	postIDs := make([]string, 0, len(posts))
	authorIDs := make([]string, 0, len(posts))
	seenPost := make(map[string]struct{}, len(posts))
	seenAuthor := make(map[string]struct{}, len(posts))
	for _, post := range posts {
		if _, ok := seenPost[post.ID]; !ok {
			seenPost[post.ID] = struct{}{}
			postIDs = append(postIDs, post.ID)
		}
		if _, ok := seenAuthor[post.AuthorID]; !ok {
			seenAuthor[post.AuthorID] = struct{}{}
			authorIDs = append(authorIDs, post.AuthorID)
		}
	}

	likers, err := p.store.Likes.ListLikersByPosts(ctx, postIDs)
	if err != nil {
		return nil, fmt.Errorf("load likes: %w", err)
	}
	authors, err := p.usernames(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	return &postSupport{likers: likers, authors: authors}, nil
}

func (s *postSupport) views(posts []*model.Post) []PostView {
	out := make([]PostView, 0, len(posts))
	for _, post := range posts {
		likes := s.likers[post.ID]
		if likes == nil {
			likes = []string{}
		}
		out = append(out, PostView{
			PostID:            post.ID,
			Timestamp:         formatTime(post.Timestamp),
			DrinkName:         post.DrinkName,
			Volume:            post.Volume,
			AlcoholPercentage: post.AlcoholPercentage,
			Likes:             likes,
			Author:            s.authors[post.AuthorID],
		})
	}
	return out
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
