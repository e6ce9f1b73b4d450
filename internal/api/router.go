// Package api wires the gin engine: middleware chain, routes and docs.
package api

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	_ "github.com/d60-Lab/drinklog/docs"
	"github.com/d60-Lab/drinklog/internal/api/handler"
	"github.com/d60-Lab/drinklog/internal/api/middleware"
	"github.com/d60-Lab/drinklog/pkg/response"
)

type Options struct {
	Mode        string
	ServiceName string
	CORSOrigins []string
}

// NewRouter 构建路由
func NewRouter(opts Options, h *handler.Handler, authn middleware.Authenticator) (*gin.Engine, error) {
	if opts.Mode != "" {
		gin.SetMode(opts.Mode)
	}
	if err := handler.RegisterValidators(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		otelgin.Middleware(opts.ServiceName),
		middleware.CORS(opts.CORSOrigins),
		gzip.Gzip(gzip.DefaultCompression),
	)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, gin.H{"status": "ok"})
	})

	requireAuth := middleware.Auth(authn)

	user := v1.Group("/user")
	{
		user.POST("/register", h.Register)
		user.POST("/login", h.Login)
		user.POST("/logout", requireAuth, h.Logout)
		user.GET("/login/refresh", requireAuth, h.Refresh)
		user.POST("/delete", requireAuth, h.DeleteAccount)
		user.GET("/search/:query", requireAuth, h.SearchUsers)
		user.GET("/following", requireAuth, h.ListFollowing)
		user.GET("/followers", requireAuth, h.ListFollowers)
		user.PUT("/bio", requireAuth, h.SetBio)
		user.PUT("/weight", requireAuth, h.SetWeight)
		user.POST("/follow/:user_id", requireAuth, h.Follow)
		user.POST("/unfollow/:user_id", requireAuth, h.Unfollow)
		user.GET("/:email", requireAuth, h.GetUser)
	}

	v1.GET("/feed", requireAuth, h.Feed)

	post := v1.Group("/post")
	{
		post.POST("", requireAuth, h.CreatePost)
		post.GET("/:post_id", h.GetPost)
		post.POST("/:post_id/comment", requireAuth, h.CreateComment)
		post.GET("/:post_id/comment", requireAuth, h.ListComments)
		post.POST("/:post_id/:action", requireAuth, h.PostAction)
	}

	return r, nil
}
