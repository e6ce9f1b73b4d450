package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/drinklog/internal/model"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	Exists(ctx context.Context, id string) (bool, error)
	ListByPost(ctx context.Context, postID string) ([]*model.Comment, error)
	// DeleteByAuthorOrPosts 删除 authorID 写的评论以及 postIDs 下的全部评论
	DeleteByAuthorOrPosts(ctx context.Context, authorID string, postIDs []string) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository { return &commentRepository{db: db} }

func (r *commentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) Exists(ctx context.Context, id string) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).Model(&model.Comment{}).Where("comment_id = ?", id).Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *commentRepository) ListByPost(ctx context.Context, postID string) ([]*model.Comment, error) {
	var res []*model.Comment
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("timestamp DESC").
		Find(&res).Error
	return res, err
}

func (r *commentRepository) DeleteByAuthorOrPosts(ctx context.Context, authorID string, postIDs []string) error {
	q := r.db.WithContext(ctx).Where("author_id = ?", authorID)
	if len(postIDs) > 0 {
		q = q.Or("post_id IN ?", postIDs)
	}
	return q.Delete(&model.Comment{}).Error
}
