package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/drinklog/internal/repository"
	"github.com/d60-Lab/drinklog/pkg/apperr"
	"github.com/d60-Lab/drinklog/pkg/logger"
)

const revokedKeyPrefix = "revoked:"

// TokenLedger 注销令牌台账：数据库为准，redis 只缓存"已注销"的正结果
type TokenLedger struct {
	repo  repository.RevokedTokenRepository
	cache *redis.Client
	ttl   time.Duration
}

// NewTokenLedger builds a ledger. cache may be nil; ttl should be the access
// token lifetime, after which a cached entry is no longer needed.
func NewTokenLedger(repo repository.RevokedTokenRepository, cache *redis.Client, ttl time.Duration) *TokenLedger {
	return &TokenLedger{repo: repo, cache: cache, ttl: ttl}
}

// Revoke records jti. A second revocation of the same jti is a Conflict.
func (l *TokenLedger) Revoke(ctx context.Context, jti string) error {
	if jti == "" {
		return apperr.InvalidInput("token has no jti")
	}
	if err := l.repo.Create(ctx, jti); err != nil {
		return err
	}
	l.remember(ctx, jti)
	return nil
}

// IsRevoked reports whether jti is in the ledger.
func (l *TokenLedger) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if l.cache != nil {
		n, err := l.cache.Exists(ctx, revokedKeyPrefix+jti).Result()
		if err == nil && n > 0 {
			return true, nil
		}
		if err != nil {
			logger.Warn("revocation cache read failed", zap.String("jti", jti), zap.Error(err))
		}
	}

	revoked, err := l.repo.Exists(ctx, jti)
	if err != nil {
		return false, err
	}
	if revoked {
		l.remember(ctx, jti)
	}
	return revoked, nil
}

func (l *TokenLedger) remember(ctx context.Context, jti string) {
	if l.cache == nil {
		return
	}
	if err := l.cache.Set(ctx, revokedKeyPrefix+jti, 1, l.ttl).Err(); err != nil {
		logger.Warn("revocation cache write failed", zap.String("jti", jti), zap.Error(err))
	}
}
