package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/drinklog/internal/model"
)

type LikeRepository interface {
	Create(ctx context.Context, userID, postID string) (created bool, err error)
	Delete(ctx context.Context, userID, postID string) (removed bool, err error)
	Exists(ctx context.Context, userID, postID string) (bool, error)
	ListPostIDsByUser(ctx context.Context, userID string) ([]string, error)
	// ListLikersByPosts 批量查询点赞者用户名，按 post_id 分组
	ListLikersByPosts(ctx context.Context, postIDs []string) (map[string][]string, error)
	DeleteByUserOrPosts(ctx context.Context, userID string, postIDs []string) error
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository { return &likeRepository{db: db} }

func (r *likeRepository) Create(ctx context.Context, userID, postID string) (bool, error) {
	l := &model.Like{UserID: userID, PostID: postID}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(l)
	return res.RowsAffected > 0, res.Error
}

func (r *likeRepository) Delete(ctx context.Context, userID, postID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&model.Like{})
	return res.RowsAffected > 0, res.Error
}

func (r *likeRepository) Exists(ctx context.Context, userID, postID string) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *likeRepository) ListPostIDsByUser(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.Like{}).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Pluck("post_id", &ids).Error
	return ids, err
}

func (r *likeRepository) ListLikersByPosts(ctx context.Context, postIDs []string) (map[string][]string, error) {
	out := make(map[string][]string, len(postIDs))
	if len(postIDs) == 0 {
		return out, nil
	}
	type row struct {
		PostID   string
		Username string
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Table("likes").
		Select("likes.post_id", "users.username").
		Joins("JOIN users ON users.user_id = likes.user_id").
		Where("likes.post_id IN ?", postIDs).
		Order("likes.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, rw := range rows {
		out[rw.PostID] = append(out[rw.PostID], rw.Username)
	}
	return out, nil
}

func (r *likeRepository) DeleteByUserOrPosts(ctx context.Context, userID string, postIDs []string) error {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if len(postIDs) > 0 {
		q = q.Or("post_id IN ?", postIDs)
	}
	return q.Delete(&model.Like{}).Error
}
