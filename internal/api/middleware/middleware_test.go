package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"github.com/d60-Lab/drinklog/internal/auth"
	"github.com/d60-Lab/drinklog/pkg/apperr"
)

func init() { gin.SetMode(gin.TestMode) }

type fakeAuth struct{}

func (fakeAuth) Authenticate(_ context.Context, raw string) (*auth.Claims, error) {
	if raw != "good" {
		return nil, apperr.Unauthorized("invalid token")
	}
	return &auth.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "u1", ID: "j1"}}, nil
}

func newEngine() *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), Logger(), Recovery())
	r.GET("/me", Auth(fakeAuth{}), func(c *gin.Context) {
		c.String(http.StatusOK, UserID(c)+"/"+Claims(c).ID)
	})
	r.GET("/panic", func(c *gin.Context) { panic("kaboom") })
	return r
}

func TestAuth(t *testing.T) {
	r := newEngine()

	cases := []struct {
		header string
		status int
	}{
		{"", http.StatusUnauthorized},
		{"Bearer", http.StatusUnauthorized},
		{"Basic good", http.StatusUnauthorized},
		{"Bearer bad", http.StatusUnauthorized},
		{"Bearer good", http.StatusOK},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		r.ServeHTTP(w, req)
		assert.Equal(t, tc.status, w.Code, tc.header)
		if tc.status == http.StatusOK {
			assert.Equal(t, "u1/j1", w.Body.String())
		}
	}
}

func TestRequestIDAndRecovery(t *testing.T) {
	r := newEngine()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "req-42", w.Header().Get(RequestIDHeader))
	assert.Contains(t, w.Body.String(), "req-42")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}
