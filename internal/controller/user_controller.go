package controller

import (
	"errors"
	"fmt"
	"time"

	"lifeos_backend/internal/service"
	"lifeos_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService    *service.UserService
	StorageService *service.StorageService
}

func NewUserController(userService *service.UserService, storageService *service.StorageService) *UserController {
	return &UserController{
		UserService:    userService,
		StorageService: storageService,
	}
}

// GetProfile godoc
// @Summary 获取个人资料
// @Tags 用户
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.User} "成功"
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/user/profile [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	user, err := c.UserService.GetProfile(claims.UserID)
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, user)
}

// UpdateProfile godoc
// @Summary 更新个人资料
// @Description 更新昵称、偏好时段、学习风格、偏好维度等
// @Tags 用户
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.UpdateProfileInput true "资料字段"
// @Success 200 {object} util.Response{data=model.User} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/user/profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var input service.UpdateProfileInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.UpdateProfile(claims.UserID, input)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// UploadAvatar godoc
// @Summary 上传头像
// @Tags 用户
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param   avatar formData file true "头像图片"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 400 {object} util.Response "文件类型不支持"
// @Router /api/user/avatar [post]
func (c *UserController) UploadAvatar(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	file, err := ctx.FormFile("avatar")
	if err != nil {
		util.BadRequest(ctx, "缺少头像文件")
		return
	}

	// 按文件内容嗅探类型，不信任客户端 header
	sniff, err := file.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	contentType, err := util.ValidateMimeType(sniff, []string{util.MimeImage})
	sniff.Close()
	if err != nil || !util.IsImage(contentType) {
		util.BadRequest(ctx, "仅支持图片格式")
		return
	}

	src, err := file.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer src.Close()

	filename := fmt.Sprintf("avatars/%d_%d%s", claims.UserID, time.Now().Unix(), util.ExtByMime(contentType))
	url, err := c.StorageService.Upload(ctx.Request.Context(), filename, src, file.Size, contentType)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	if err := c.UserService.UpdateAvatar(claims.UserID, url); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"avatar": url})
}

// Checkin godoc
// @Summary 每日打卡
// @Description 记录今日打卡并更新连续天数
// @Tags 用户
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.Checkin} "成功"
// @Failure 409 {object} util.Response "今日已打卡"
// @Router /api/user/checkin [post]
func (c *UserController) Checkin(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	checkin, err := c.UserService.Checkin(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrAlreadyCheckedIn) {
			util.Error(ctx, 409, "今日已完成打卡")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, checkin)
}

// CheckinStatus godoc
// @Summary 获取打卡状态
// @Tags 用户
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/user/checkin/status [get]
func (c *UserController) CheckinStatus(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	checkedIn, streak, err := c.UserService.CheckinStatus(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{
		"checkedInToday": checkedIn,
		"streakDays":     streak,
	})
}
