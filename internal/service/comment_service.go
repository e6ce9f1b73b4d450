package service

import (
	"context"
	"strings"

	"github.com/d60-Lab/drinklog/internal/idgen"
	"github.com/d60-Lab/drinklog/internal/model"
	"github.com/d60-Lab/drinklog/internal/policy"
	"github.com/d60-Lab/drinklog/internal/repository"
	"github.com/d60-Lab/drinklog/pkg/apperr"
)

type CommentService interface {
	Create(ctx context.Context, body, authorID, postID string) (*model.Comment, error)
	// List 按时间倒序返回帖子下的评论
	List(ctx context.Context, postID string) ([]*model.Comment, error)
}

type commentService struct {
	store *repository.Store
}

func NewCommentService(store *repository.Store) CommentService {
	return &commentService{store: store}
}

func (s *commentService) Create(ctx context.Context, body, authorID, postID string) (*model.Comment, error) {
	body = strings.TrimSpace(body)
	if body == "" || !policy.WithinLimit(body, policy.MaxCommentBody) {
		return nil, apperr.InvalidInput("comment body must be 1-140 characters")
	}

	var comment *model.Comment
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := requireUsers(ctx, tx, authorID); err != nil {
			return err
		}
		ok, err := tx.Posts.Exists(ctx, postID)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.NotFound("post not found")
		}
		id, err := idgen.Generate(ctx, tx.Comments.Exists)
		if err != nil {
			return err
		}
		c := &model.Comment{ID: id, Body: body, Timestamp: now(), AuthorID: authorID, PostID: postID}
		if err := tx.Comments.Create(ctx, c); err != nil {
			return err
		}
		comment = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) List(ctx context.Context, postID string) ([]*model.Comment, error) {
	ok, err := s.store.Posts.Exists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("post not found")
	}
	return s.store.Comments.ListByPost(ctx, postID)
}
