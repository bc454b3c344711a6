package controller

import (
	"errors"

	"word_duel_backend/internal/service"
	"word_duel_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService       *service.UserService
	FriendshipService *service.FriendshipService
}

func NewUserController(userService *service.UserService, friendshipService *service.FriendshipService) *UserController {
	return &UserController{
		UserService:       userService,
		FriendshipService: friendshipService,
	}
}

// Me godoc
// @Summary 当前用户信息
// @Tags 用户
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.User}
// @Failure 401 {object} util.Response "未登录"
// @Router /api/users/me [get]
func (c *UserController) Me(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	user, err := c.UserService.GetByID(claims.UserID)
	if err != nil {
		util.NotFound(ctx, "用户不存在")
		return
	}
	util.Success(ctx, user)
}

type AddFriendRequest struct {
	Username string `json:"username" binding:"required"`
}

// AddFriend godoc
// @Summary 添加好友
// @Description 按用户名添加好友，重复添加直接返回成功
// @Tags 用户
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body AddFriendRequest true "好友用户名"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response "不能添加自己"
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/friends/add [post]
func (c *UserController) AddFriend(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req AddFriendRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	friend, err := c.FriendshipService.AddFriend(claims.UserID, req.Username)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrFriendNotFound):
			util.NotFound(ctx, "用户不存在")
		case errors.Is(err, util.ErrCannotFriendSelf):
			util.BadRequest(ctx, "不能添加自己为好友")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"id": friend.ID, "username": friend.Username})
}

// ListFriends godoc
// @Summary 好友列表
// @Tags 用户
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.User}
// @Router /api/friends [get]
func (c *UserController) ListFriends(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	friends, err := c.FriendshipService.ListFriends(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, friends)
}
