package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/d60-Lab/drinklog/internal/model"
	"github.com/d60-Lab/drinklog/pkg/apperr"
)

// Store 聚合所有仓储；事务内通过 Transaction 拿到绑定同一 tx 的 Store
type Store struct {
	db *gorm.DB

	Users         UserRepository
	Posts         PostRepository
	Comments      CommentRepository
	Follows       FollowRepository
	Likes         LikeRepository
	RevokedTokens RevokedTokenRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:            db,
		Users:         NewUserRepository(db),
		Posts:         NewPostRepository(db),
		Comments:      NewCommentRepository(db),
		Follows:       NewFollowRepository(db),
		Likes:         NewLikeRepository(db),
		RevokedTokens: NewRevokedTokenRepository(db),
	}
}

// DB exposes the underlying handle.
func (s *Store) DB() *gorm.DB { return s.db }

// Transaction runs fn atomically. Everything fn does must go through tx.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

// AutoMigrate 初始化表结构
func (s *Store) AutoMigrate() error {
	return s.db.AutoMigrate(
		&model.User{},
		&model.Post{},
		&model.Comment{},
		&model.Follow{},
		&model.Like{},
		&model.RevokedToken{},
	)
}

// duplicate maps a unique-constraint violation to Conflict. It needs
// gorm.Config.TranslateError.
func duplicate(err error, msg string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Wrap(apperr.KindConflict, err, msg)
	}
	return err
}

func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(what + " not found")
	}
	return err
}
