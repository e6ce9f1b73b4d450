package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/drinklog/pkg/logger"
	"github.com/d60-Lab/drinklog/pkg/response"
)

// Recovery 捕获 panic，写日志并上报 sentry。每个请求使用克隆的 hub，
// 下游通过 sentry.GetHubFromContext 取到同一个 hub。
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		hub := sentry.CurrentHub().Clone()
		hub.Scope().SetRequest(c.Request)
		hub.Scope().SetTag("request_id", c.GetString(RequestIDKey))
		c.Request = c.Request.WithContext(sentry.SetHubOnContext(c.Request.Context(), hub))

		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered",
					zap.Any("panic", r),
					zap.String("request_id", c.GetString(RequestIDKey)),
					zap.ByteString("stack", debug.Stack()),
				)
				hub.RecoverWithContext(c.Request.Context(), r)
				hub.Flush(2 * time.Second)
				c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
					Code:    http.StatusInternalServerError,
					Message: fmt.Sprintf("unexpected server error (request %s)", c.GetString(RequestIDKey)),
				})
			}
		}()

		c.Next()
	}
}
