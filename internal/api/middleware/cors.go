package middleware

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS 允许配置中的前端来源；为空时放开所有来源
func CORS(origins []string) gin.HandlerFunc {
	config := cors.DefaultConfig()
	config.AddAllowHeaders("Authorization", RequestIDHeader)
	config.AddExposeHeaders(RequestIDHeader)
	if len(origins) == 0 {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = origins
		config.AllowCredentials = true
	}
	return cors.New(config)
}
