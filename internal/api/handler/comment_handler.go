package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/drinklog/internal/api/middleware"
	"github.com/d60-Lab/drinklog/internal/projection"
	"github.com/d60-Lab/drinklog/pkg/response"
)

type commentRequest struct {
	Body string `json:"body" binding:"required,max=140"`
}

// CreateComment 评论
// @Summary 发表评论
// @Tags 评论
// @Security BearerAuth
// @Accept json
// @Param post_id path string true "帖子ID"
// @Param request body commentRequest true "评论内容"
// @Success 200 {object} response.Response{data=projection.CommentView}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/post/{post_id}/comment [post]
func (h *Handler) CreateComment(c *gin.Context) {
	postID, ok := idParam(c, "post_id")
	if !ok {
		return
	}
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	comment, err := h.commentService.Create(c.Request.Context(), req.Body, middleware.UserID(c), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, projection.Comment(comment))
}

// ListComments 帖子评论，新的在前
// @Summary 查询评论
// @Tags 评论
// @Security BearerAuth
// @Param post_id path string true "帖子ID"
// @Success 200 {object} response.Response{data=[]projection.CommentView}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/post/{post_id}/comment [get]
func (h *Handler) ListComments(c *gin.Context) {
	postID, ok := idParam(c, "post_id")
	if !ok {
		return
	}
	comments, err := h.commentService.List(c.Request.Context(), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, projection.Comments(comments))
}
