package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/drinklog/internal/auth"
	"github.com/d60-Lab/drinklog/pkg/response"
)

const (
	ClaimsKey = "claims"
	UserIDKey = "user_id"
)

// Authenticator 校验原始令牌（含注销台账检查）
type Authenticator interface {
	Authenticate(ctx context.Context, rawToken string) (*auth.Claims, error)
}

// Auth 要求 Authorization: Bearer <token>
func Auth(a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			response.Unauthorized(c, "authorization header missing")
			return
		}

		claims, err := a.Authenticate(c.Request.Context(), strings.TrimSpace(raw))
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Set(ClaimsKey, claims)
		c.Set(UserIDKey, claims.UserID())
		c.Next()
	}
}

// Claims returns the claims stored by Auth.
func Claims(c *gin.Context) *auth.Claims {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*auth.Claims)
	return claims
}

// UserID returns the authenticated user's id, or "" outside Auth.
func UserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
