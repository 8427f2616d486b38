package controller

import (
	"lifeos_backend/internal/service"
	"lifeos_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type MotivationController struct {
	MotivationService *service.MotivationService
}

func NewMotivationController(motivationService *service.MotivationService) *MotivationController {
	return &MotivationController{MotivationService: motivationService}
}

// @Summary 获取当前显示的激励短句
// @Description 获取当前显示的每日激励短句
// @Tags 激励短句
// @Accept json
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/motivation [get]
func (c *MotivationController) GetCurrentMotivation(ctx *gin.Context) {
	motivation, err := c.MotivationService.GetCurrentMotivation()
	if err != nil {
		util.InternalServerError(ctx)
		return
	}

	util.Success(ctx, gin.H{"content": motivation})
}

// @Summary 获取所有激励短句
// @Description 获取系统中所有的激励短句（管理员权限）
// @Tags 激励短句
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/admin/motivations [get]
func (c *MotivationController) GetAllMotivations(ctx *gin.Context) {
	motivations, err := c.MotivationService.GetAllMotivations()
	if err != nil {
		util.InternalServerError(ctx)
		return
	}

	util.Success(ctx, motivations)
}

// @Summary 创建新的激励短句
// @Description 创建新的激励短句（管理员权限）
// @Tags 激励短句
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param content body string true "激励短句内容"
// @Success 200 {object} util.Response
// @Router /api/admin/motivations [post]
func (c *MotivationController) CreateMotivation(ctx *gin.Context) {
	var req struct {
		Content string `json:"content" binding:"required,min=10,max=200"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.MotivationService.CreateMotivation(req.Content); err != nil {
		util.InternalServerError(ctx)
		return
	}

	util.Success(ctx, nil)
}

// @Summary 更新激励短句
// @Description 更新激励短句内容或启用状态（管理员权限）
// @Tags 激励短句
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "短句ID"
// @Success 200 {object} util.Response
// @Router /api/admin/motivations/{id} [put]
func (c *MotivationController) UpdateMotivation(ctx *gin.Context) {
	var req struct {
		Content   string `json:"content" binding:"required,min=10,max=200"`
		IsEnabled bool   `json:"is_enabled"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	id := util.MustParseUint(ctx.Param("id"))
	if err := c.MotivationService.UpdateMotivation(id, req.Content, req.IsEnabled); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Success(ctx, nil)
}

// @Summary 删除激励短句
// @Description 删除激励短句（管理员权限）
// @Tags 激励短句
// @Produce json
// @Security BearerAuth
// @Param id path int true "短句ID"
// @Success 200 {object} util.Response
// @Router /api/admin/motivations/{id} [delete]
func (c *MotivationController) DeleteMotivation(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if err := c.MotivationService.DeleteMotivation(id); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Success(ctx, nil)
}

// @Summary 切换激励短句
// @Description 立即切换到指定的激励短句（管理员权限）
// @Tags 激励短句
// @Produce json
// @Security BearerAuth
// @Param id path int true "短句ID"
// @Success 200 {object} util.Response
// @Router /api/admin/motivations/{id}/switch [post]
func (c *MotivationController) SwitchMotivation(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if err := c.MotivationService.SwitchToMotivation(id); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Success(ctx, nil)
}
