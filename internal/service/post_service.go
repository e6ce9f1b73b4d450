package service

import (
	"context"
	"math"
	"strings"

	"github.com/d60-Lab/drinklog/internal/idgen"
	"github.com/d60-Lab/drinklog/internal/model"
	"github.com/d60-Lab/drinklog/internal/policy"
	"github.com/d60-Lab/drinklog/internal/repository"
	"github.com/d60-Lab/drinklog/pkg/apperr"
)

type CreatePostInput struct {
	DrinkName         string
	Volume            float64
	AlcoholPercentage float64
}

// PostService 帖子、时间线与点赞
type PostService interface {
	Create(ctx context.Context, authorID string, in CreatePostInput) (*model.Post, error)
	Get(ctx context.Context, id string) (*model.Post, error)
	ListByAuthor(ctx context.Context, authorID string) ([]*model.Post, error)
	// Feed 拉模式时间线：每次调用都重新查询，按时间倒序
	Feed(ctx context.Context, userID string) ([]*model.Post, error)
	LikedPosts(ctx context.Context, userID string) ([]*model.Post, error)
	Like(ctx context.Context, userID, postID string) (*model.Post, error)
	Unlike(ctx context.Context, userID, postID string) (*model.Post, error)
	HasLiked(ctx context.Context, userID, postID string) (bool, error)
}

type postService struct {
	store *repository.Store
}

func NewPostService(store *repository.Store) PostService {
	return &postService{store: store}
}

func (s *postService) Create(ctx context.Context, authorID string, in CreatePostInput) (*model.Post, error) {
	in.DrinkName = strings.TrimSpace(in.DrinkName)
	switch {
	case !policy.WithinLimit(in.DrinkName, policy.MaxDrinkName):
		return nil, apperr.InvalidInput("drink name is limited to 32 characters")
	case !(in.Volume > 0) || math.IsInf(in.Volume, 0):
		return nil, apperr.InvalidInput("volume must be a positive number")
	case !(in.AlcoholPercentage >= 0 && in.AlcoholPercentage <= 100):
		return nil, apperr.InvalidInput("alcohol percentage must be between 0 and 100")
	}

	var post *model.Post
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := requireUsers(ctx, tx, authorID); err != nil {
			return err
		}
		id, err := idgen.Generate(ctx, tx.Posts.Exists)
		if err != nil {
			return err
		}
		p := &model.Post{
			ID:                id,
			Timestamp:         now(),
			DrinkName:         in.DrinkName,
			Volume:            in.Volume,
			AlcoholPercentage: in.AlcoholPercentage,
			AuthorID:          authorID,
		}
		if err := tx.Posts.Create(ctx, p); err != nil {
			return err
		}
		post = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) Get(ctx context.Context, id string) (*model.Post, error) {
	return s.store.Posts.Get(ctx, id)
}

func (s *postService) ListByAuthor(ctx context.Context, authorID string) ([]*model.Post, error) {
	return s.store.Posts.ListByAuthor(ctx, authorID)
}

func (s *postService) Feed(ctx context.Context, userID string) ([]*model.Post, error) {
	return s.store.Posts.ListFeed(ctx, userID)
}

func (s *postService) LikedPosts(ctx context.Context, userID string) ([]*model.Post, error) {
	ids, err := s.store.Likes.ListPostIDsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.store.Posts.ListByIDs(ctx, ids)
}

func (s *postService) Like(ctx context.Context, userID, postID string) (*model.Post, error) {
	return s.toggleLike(ctx, userID, postID, true)
}

func (s *postService) Unlike(ctx context.Context, userID, postID string) (*model.Post, error) {
	return s.toggleLike(ctx, userID, postID, false)
}

func (s *postService) toggleLike(ctx context.Context, userID, postID string, like bool) (*model.Post, error) {
	var post *model.Post
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := requireUsers(ctx, tx, userID); err != nil {
			return err
		}
		p, err := tx.Posts.Get(ctx, postID)
		if err != nil {
			return err
		}
		if like {
			_, err = tx.Likes.Create(ctx, userID, postID)
		} else {
			_, err = tx.Likes.Delete(ctx, userID, postID)
		}
		if err != nil {
			return err
		}
		post = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) HasLiked(ctx context.Context, userID, postID string) (bool, error) {
	return s.store.Likes.Exists(ctx, userID, postID)
}
