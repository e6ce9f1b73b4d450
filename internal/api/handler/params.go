package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/drinklog/internal/idgen"
	"github.com/d60-Lab/drinklog/pkg/response"
)

// idParam 读取路径中的 ID；格式不对直接 400，不访问存储
func idParam(c *gin.Context, name string) (string, bool) {
	id := c.Param(name)
	if !idgen.Valid(id) {
		response.BadRequest(c, "malformed "+name)
		return "", false
	}
	return id, true
}
