package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/drinklog/internal/api/middleware"
	"github.com/d60-Lab/drinklog/pkg/response"
)

// Follow 关注
// @Summary 关注用户
// @Tags 关系链
// @Security BearerAuth
// @Produce json
// @Param user_id path string true "被关注用户ID"
// @Success 200 {object} response.Response{data=projection.UserView}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/user/follow/{user_id} [post]
func (h *Handler) Follow(c *gin.Context) {
	target, ok := idParam(c, "user_id")
	if !ok {
		return
	}
	if err := h.relService.Follow(c.Request.Context(), middleware.UserID(c), target); err != nil {
		response.Error(c, err)
		return
	}
	h.renderTarget(c, target)
}

// Unfollow 取消关注
// @Summary 取消关注
// @Tags 关系链
// @Security BearerAuth
// @Produce json
// @Param user_id path string true "被关注用户ID"
// @Success 200 {object} response.Response{data=projection.UserView}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/user/unfollow/{user_id} [post]
func (h *Handler) Unfollow(c *gin.Context) {
	target, ok := idParam(c, "user_id")
	if !ok {
		return
	}
	if err := h.relService.Unfollow(c.Request.Context(), middleware.UserID(c), target); err != nil {
		response.Error(c, err)
		return
	}
	h.renderTarget(c, target)
}

// ListFollowing 当前用户关注的人（不含自己）
// @Summary 查询关注列表
// @Tags 关系链
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]projection.UserView}
// @Router /api/v1/user/following [get]
func (h *Handler) ListFollowing(c *gin.Context) {
	users, err := h.relService.ListFollowing(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.renderUsers(c, users)
}

// ListFollowers 当前用户的粉丝（不含自己）
// @Summary 查询粉丝列表
// @Tags 关系链
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]projection.UserView}
// @Router /api/v1/user/followers [get]
func (h *Handler) ListFollowers(c *gin.Context) {
	users, err := h.relService.ListFollowers(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.renderUsers(c, users)
}

func (h *Handler) renderTarget(c *gin.Context, userID string) {
	user, err := h.userService.Get(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.renderUser(c, user)
}
