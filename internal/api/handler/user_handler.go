package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/drinklog/internal/api/middleware"
	"github.com/d60-Lab/drinklog/internal/model"
	"github.com/d60-Lab/drinklog/internal/service"
	"github.com/d60-Lab/drinklog/pkg/response"
)

type registerRequest struct {
	Username string  `json:"username" binding:"required,max=80"`
	Password string  `json:"password" binding:"required,password_policy"`
	Email    string  `json:"email" binding:"required,email,max=128"`
	Weight   int     `json:"weight" binding:"required,gt=0"`
	Gender   string  `json:"gender" binding:"required,max=16"`
	Bio      *string `json:"bio" binding:"omitempty,max=280"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type bioRequest struct {
	Bio *string `json:"bio"`
}

type weightRequest struct {
	Weight int `json:"weight" binding:"required,gt=0"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Register 注册
// @Summary 注册用户
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body registerRequest true "注册信息"
// @Success 200 {object} response.Response{data=projection.UserView}
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/user/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	user, err := h.userService.Register(c.Request.Context(), service.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Weight:   req.Weight,
		Gender:   req.Gender,
		Bio:      req.Bio,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	h.renderUser(c, user)
}

// Login 登录
// @Summary 登录，返回访问令牌
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body loginRequest true "登录信息"
// @Success 200 {object} response.Response{data=tokenResponse}
// @Failure 401 {object} response.Response
// @Router /api/v1/user/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, tokenResponse{Token: token})
}

// Logout 注销当前令牌
// @Summary 注销
// @Tags 用户
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/v1/user/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context(), middleware.Claims(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// Refresh 注销当前令牌并签发新令牌
// @Summary 刷新令牌
// @Tags 用户
// @Security BearerAuth
// @Success 200 {object} response.Response{data=tokenResponse}
// @Failure 401 {object} response.Response
// @Router /api/v1/user/login/refresh [get]
func (h *Handler) Refresh(c *gin.Context) {
	token, err := h.authService.Refresh(c.Request.Context(), middleware.Claims(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, tokenResponse{Token: token})
}

// DeleteAccount 删除当前用户及其全部数据
// @Summary 注销账号
// @Tags 用户
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/user/delete [post]
func (h *Handler) DeleteAccount(c *gin.Context) {
	if err := h.userService.Delete(c.Request.Context(), middleware.UserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// GetUser 按邮箱查询用户
// @Summary 查询用户
// @Tags 用户
// @Security BearerAuth
// @Param email path string true "邮箱"
// @Success 200 {object} response.Response{data=projection.UserView}
// @Failure 404 {object} response.Response
// @Router /api/v1/user/{email} [get]
func (h *Handler) GetUser(c *gin.Context) {
	user, err := h.userService.GetByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.renderUser(c, user)
}

// SearchUsers 用户名子串搜索（区分大小写）
// @Summary 搜索用户
// @Tags 用户
// @Security BearerAuth
// @Param query path string true "用户名子串"
// @Success 200 {object} response.Response{data=[]projection.UserView}
// @Router /api/v1/user/search/{query} [get]
func (h *Handler) SearchUsers(c *gin.Context) {
	users, err := h.userService.Search(c.Request.Context(), c.Param("query"))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.renderUsers(c, users)
}

// SetBio 修改简介
// @Summary 修改简介
// @Tags 用户
// @Security BearerAuth
// @Accept json
// @Param request body bioRequest true "简介，null 表示清空"
// @Success 200 {object} response.Response{data=projection.UserView}
// @Failure 400 {object} response.Response
// @Router /api/v1/user/bio [put]
func (h *Handler) SetBio(c *gin.Context) {
	var req bioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	user, err := h.userService.SetBio(c.Request.Context(), middleware.UserID(c), req.Bio)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.renderUser(c, user)
}

// SetWeight 修改体重
// @Summary 修改体重
// @Tags 用户
// @Security BearerAuth
// @Accept json
// @Param request body weightRequest true "体重"
// @Success 200 {object} response.Response{data=projection.UserView}
// @Failure 400 {object} response.Response
// @Router /api/v1/user/weight [put]
func (h *Handler) SetWeight(c *gin.Context) {
	var req weightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	user, err := h.userService.SetWeight(c.Request.Context(), middleware.UserID(c), req.Weight)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.renderUser(c, user)
}

func (h *Handler) renderUser(c *gin.Context, user *model.User) {
	view, err := h.projector.User(c.Request.Context(), user)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, view)
}

func (h *Handler) renderUsers(c *gin.Context, users []*model.User) {
	views, err := h.projector.Users(c.Request.Context(), users)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, views)
}
