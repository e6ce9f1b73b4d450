package service

import (
	"context"
	"strings"

	"github.com/d60-Lab/drinklog/internal/auth"
	"github.com/d60-Lab/drinklog/internal/credential"
	"github.com/d60-Lab/drinklog/internal/repository"
	"github.com/d60-Lab/drinklog/pkg/apperr"
)

var (
	ErrBadCredentials = apperr.Unauthorized("invalid email or password")
	ErrTokenRevoked   = apperr.Unauthorized("token has been revoked")
	ErrUnknownSubject = apperr.Unauthorized("token identity is not a user")
)

// AuthService 登录、令牌校验、注销与刷新
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, error)
	// Authenticate 校验签名与有效期，查询注销台账，并确认用户仍然存在
	Authenticate(ctx context.Context, rawToken string) (*auth.Claims, error)
	Logout(ctx context.Context, claims *auth.Claims) error
	Refresh(ctx context.Context, claims *auth.Claims) (string, error)
}

type authService struct {
	store  *repository.Store
	hasher *credential.Hasher
	tokens *auth.TokenManager
	ledger *TokenLedger
}

func NewAuthService(store *repository.Store, hasher *credential.Hasher, tokens *auth.TokenManager, ledger *TokenLedger) AuthService {
	return &authService{store: store, hasher: hasher, tokens: tokens, ledger: ledger}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.store.Users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return "", ErrBadCredentials
		}
		return "", err
	}
	if !s.hasher.Verify(user.PasswordHash, password) {
		return "", ErrBadCredentials
	}
	token, _, err := s.tokens.Issue(user.ID)
	return token, err
}

func (s *authService) Authenticate(ctx context.Context, rawToken string) (*auth.Claims, error) {
	claims, err := s.tokens.Parse(rawToken)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUnauthorized, err, "invalid token")
	}
	revoked, err := s.ledger.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrTokenRevoked
	}
	ok, err := s.store.Users.Exists(ctx, claims.UserID())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUnknownSubject
	}
	return claims, nil
}

func (s *authService) Logout(ctx context.Context, claims *auth.Claims) error {
	return s.ledger.Revoke(ctx, claims.ID)
}

func (s *authService) Refresh(ctx context.Context, claims *auth.Claims) (string, error) {
	ok, err := s.store.Users.Exists(ctx, claims.UserID())
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrUnknownSubject
	}
	if err := s.ledger.Revoke(ctx, claims.ID); err != nil {
		return "", err
	}
	token, _, err := s.tokens.Issue(claims.UserID())
	return token, err
}
