package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/drinklog/internal/model"
)

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	Get(ctx context.Context, id string) (*model.Post, error)
	Exists(ctx context.Context, id string) (bool, error)
	ListByAuthor(ctx context.Context, authorID string) ([]*model.Post, error)
	// ListFeed 返回 userID 关注的所有人（含自关注边对应的自己）的帖子，按时间倒序
	ListFeed(ctx context.Context, userID string) ([]*model.Post, error)
	ListByIDs(ctx context.Context, ids []string) ([]*model.Post, error)
	ListIDsByAuthor(ctx context.Context, authorID string) ([]string, error)
	DeleteByAuthor(ctx context.Context, authorID string) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository { return &postRepository{db: db} }

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) Get(ctx context.Context, id string) (*model.Post, error) {
	var p model.Post
	if err := r.db.WithContext(ctx).Where("post_id = ?", id).First(&p).Error; err != nil {
		return nil, notFound(err, "post")
	}
	return &p, nil
}

func (r *postRepository) Exists(ctx context.Context, id string) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).Model(&model.Post{}).Where("post_id = ?", id).Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID string) ([]*model.Post, error) {
	var res []*model.Post
	err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("timestamp DESC").
		Find(&res).Error
	return res, err
}

func (r *postRepository) ListFeed(ctx context.Context, userID string) ([]*model.Post, error) {
	var res []*model.Post
	err := r.db.WithContext(ctx).
		Table("posts").
		Select("posts.*").
		Joins("JOIN follows ON follows.followee_id = posts.author_id").
		Where("follows.follower_id = ?", userID).
		Order("posts.timestamp DESC").
		Find(&res).Error
	return res, err
}

func (r *postRepository) ListByIDs(ctx context.Context, ids []string) ([]*model.Post, error) {
	if len(ids) == 0 {
		return []*model.Post{}, nil
	}
	var res []*model.Post
	err := r.db.WithContext(ctx).Where("post_id IN ?", ids).Order("timestamp DESC").Find(&res).Error
	return res, err
}

func (r *postRepository) ListIDsByAuthor(ctx context.Context, authorID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&model.Post{}).Where("author_id = ?", authorID).Pluck("post_id", &ids).Error
	return ids, err
}

func (r *postRepository) DeleteByAuthor(ctx context.Context, authorID string) error {
	return r.db.WithContext(ctx).Where("author_id = ?", authorID).Delete(&model.Post{}).Error
}
