package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/drinklog/internal/api/middleware"
	"github.com/d60-Lab/drinklog/internal/model"
	"github.com/d60-Lab/drinklog/internal/service"
	"github.com/d60-Lab/drinklog/pkg/response"
)

type createPostRequest struct {
	DrinkName         string  `json:"drink_name" binding:"max=32"`
	Volume            float64 `json:"volume" binding:"required,gt=0"`
	AlcoholPercentage float64 `json:"alcohol_percentage" binding:"min=0,max=100"`
}

// CreatePost 发帖
// @Summary 记录一杯饮品
// @Tags 帖子
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body createPostRequest true "饮品信息"
// @Success 200 {object} response.Response{data=projection.PostView}
// @Failure 400 {object} response.Response
// @Router /api/v1/post [post]
func (h *Handler) CreatePost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	post, err := h.postService.Create(c.Request.Context(), middleware.UserID(c), service.CreatePostInput{
		DrinkName:         req.DrinkName,
		Volume:            req.Volume,
		AlcoholPercentage: req.AlcoholPercentage,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	h.renderPost(c, post)
}

// GetPost 查询帖子（无需登录）
// @Summary 查询帖子
// @Tags 帖子
// @Param post_id path string true "帖子ID"
// @Success 200 {object} response.Response{data=projection.PostView}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/post/{post_id} [get]
func (h *Handler) GetPost(c *gin.Context) {
	postID, ok := idParam(c, "post_id")
	if !ok {
		return
	}
	post, err := h.postService.Get(c.Request.Context(), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.renderPost(c, post)
}

// PostAction 点赞 / 取消点赞
// @Summary 点赞或取消点赞
// @Tags 帖子
// @Security BearerAuth
// @Param post_id path string true "帖子ID"
// @Param action path string true "like 或 unlike"
// @Success 200 {object} response.Response{data=projection.PostView}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/post/{post_id}/{action} [post]
func (h *Handler) PostAction(c *gin.Context) {
	ctx := c.Request.Context()
	postID, ok := idParam(c, "post_id")
	if !ok {
		return
	}
	userID := middleware.UserID(c)

	var (
		post *model.Post
		err  error
	)
	switch c.Param("action") {
	case "like":
		post, err = h.postService.Like(ctx, userID, postID)
	case "unlike":
		post, err = h.postService.Unlike(ctx, userID, postID)
	default:
		response.BadRequest(c, "action must be like or unlike")
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	h.renderPost(c, post)
}

// Feed 时间线：自己和关注的人的帖子，新的在前
// @Summary 时间线
// @Tags 帖子
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]projection.PostView}
// @Router /api/v1/feed [get]
func (h *Handler) Feed(c *gin.Context) {
	posts, err := h.postService.Feed(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	views, err := h.projector.Posts(c.Request.Context(), posts)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, views)
}

func (h *Handler) renderPost(c *gin.Context, post *model.Post) {
	view, err := h.projector.Post(c.Request.Context(), post)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, view)
}
