package handler

import (
	"github.com/d60-Lab/drinklog/internal/projection"
	"github.com/d60-Lab/drinklog/internal/service"
)

// Handler HTTP 处理器，持有各业务服务
type Handler struct {
	userService    service.UserService
	authService    service.AuthService
	relService     service.RelationshipService
	postService    service.PostService
	commentService service.CommentService
	projector      *projection.Projector
}

func NewHandler(
	userService service.UserService,
	authService service.AuthService,
	relService service.RelationshipService,
	postService service.PostService,
	commentService service.CommentService,
	projector *projection.Projector,
) *Handler {
	return &Handler{
		userService:    userService,
		authService:    authService,
		relService:     relService,
		postService:    postService,
		commentService: commentService,
		projector:      projector,
	}
}
