package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/d60-Lab/drinklog/internal/model"
	"github.com/d60-Lab/drinklog/pkg/apperr"
)

type RevokedTokenRepository interface {
	// Create 追加一条注销记录；jti 已存在时返回 Conflict
	Create(ctx context.Context, jti string) error
	Exists(ctx context.Context, jti string) (bool, error)
}

type revokedTokenRepository struct {
	db *gorm.DB
}

func NewRevokedTokenRepository(db *gorm.DB) RevokedTokenRepository {
	return &revokedTokenRepository{db: db}
}

func (r *revokedTokenRepository) Create(ctx context.Context, jti string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cnt int64
		if err := tx.Model(&model.RevokedToken{}).Where("jti = ?", jti).Count(&cnt).Error; err != nil {
			return err
		}
		if cnt > 0 {
			return apperr.Conflict("token already revoked")
		}
		err := tx.Create(&model.RevokedToken{JTI: jti, RevokedAt: time.Now().UTC()}).Error
		return duplicate(err, "token already revoked")
	})
}

func (r *revokedTokenRepository) Exists(ctx context.Context, jti string) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).Model(&model.RevokedToken{}).Where("jti = ?", jti).Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}
