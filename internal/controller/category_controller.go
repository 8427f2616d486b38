package controller

import (
	"errors"

	"lifeos_backend/internal/model"
	"lifeos_backend/internal/service"
	"lifeos_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CategoryController struct {
	CategoryService *service.CategoryService
}

func NewCategoryController(categoryService *service.CategoryService) *CategoryController {
	return &CategoryController{CategoryService: categoryService}
}

// ListCategories godoc
// @Summary 获取启用的维度列表
// @Tags 维度
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.Category} "成功"
// @Router /api/categories [get]
func (c *CategoryController) ListCategories(ctx *gin.Context) {
	categories, err := c.CategoryService.ListEnabled()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, categories)
}

// ListAllCategories godoc
// @Summary 获取全部维度（含停用）
// @Tags 管理
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Category} "成功"
// @Router /api/admin/categories [get]
func (c *CategoryController) ListAllCategories(ctx *gin.Context) {
	categories, err := c.CategoryService.ListAll()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, categories)
}

// CategoryRequest 维度创建/更新请求
// swagger:model CategoryRequest
type CategoryRequest struct {
	Code        string `json:"code" binding:"required,alphanum,lowercase"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Order       int    `json:"order"`
	Enabled     bool   `json:"enabled"`
}

// CreateCategory godoc
// @Summary 创建维度
// @Tags 管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body CategoryRequest true "维度信息"
// @Success 201 {object} util.Response{data=model.Category} "创建成功"
// @Failure 409 {object} util.Response "code 已存在"
// @Router /api/admin/categories [post]
func (c *CategoryController) CreateCategory(ctx *gin.Context) {
	var req CategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	category := &model.Category{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		Order:       req.Order,
		Enabled:     req.Enabled,
	}

	if err := c.CategoryService.Create(category); err != nil {
		if errors.Is(err, util.ErrCategoryCodeTaken) {
			util.Error(ctx, 409, "该维度 code 已存在")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, category)
}

// UpdateCategory godoc
// @Summary 更新维度
// @Tags 管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "维度ID"
// @Param   body body CategoryRequest true "维度信息"
// @Success 200 {object} util.Response{data=model.Category} "成功"
// @Failure 404 {object} util.Response "维度不存在"
// @Router /api/admin/categories/{id} [put]
func (c *CategoryController) UpdateCategory(ctx *gin.Context) {
	var req CategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	input := &model.Category{
		Name:        req.Name,
		Description: req.Description,
		Order:       req.Order,
		Enabled:     req.Enabled,
	}

	category, err := c.CategoryService.Update(util.MustParseUint(ctx.Param("id")), input)
	if err != nil {
		if errors.Is(err, util.ErrCategoryNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, category)
}

// DeleteCategory godoc
// @Summary 删除维度
// @Tags 管理
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "维度ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "维度不存在"
// @Router /api/admin/categories/{id} [delete]
func (c *CategoryController) DeleteCategory(ctx *gin.Context) {
	if err := c.CategoryService.Delete(util.MustParseUint(ctx.Param("id"))); err != nil {
		if errors.Is(err, util.ErrCategoryNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}
