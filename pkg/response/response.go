// Package response writes the JSON envelope shared by every endpoint.
package response

import (
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/drinklog/pkg/apperr"
	"github.com/d60-Lab/drinklog/pkg/logger"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: 0, Message: "success", Data: data})
}

func BadRequest(c *gin.Context, msg string) {
	abort(c, http.StatusBadRequest, msg)
}

func Unauthorized(c *gin.Context, msg string) {
	abort(c, http.StatusUnauthorized, msg)
}

func NotFound(c *gin.Context, msg string) {
	abort(c, http.StatusNotFound, msg)
}

func Conflict(c *gin.Context, msg string) {
	abort(c, http.StatusConflict, msg)
}

// InternalError 记录并上报错误，响应中不暴露细节
func InternalError(c *gin.Context, err error) {
	logger.Error("internal error",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.String("request_id", c.GetString("request_id")),
		zap.Error(err),
	)
	if hub := sentry.GetHubFromContext(c.Request.Context()); hub != nil {
		hub.CaptureException(err)
	} else {
		sentry.CaptureException(err)
	}
	abort(c, http.StatusInternalServerError, "internal server error")
}

// Error maps err to a status by its apperr kind.
func Error(c *gin.Context, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		NotFound(c, err.Error())
	case apperr.KindConflict:
		Conflict(c, err.Error())
	case apperr.KindInvalidInput:
		BadRequest(c, err.Error())
	case apperr.KindUnauthorized:
		Unauthorized(c, err.Error())
	default:
		InternalError(c, err)
	}
}

func abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, Response{Code: status, Message: msg})
}
