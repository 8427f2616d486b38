package controller

import (
	"errors"
	"strconv"

	"lifeos_backend/internal/model"
	"lifeos_backend/internal/service"
	"lifeos_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	AnalyticsService *service.AnalyticsService
}

func NewAnalyticsController(analyticsService *service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{AnalyticsService: analyticsService}
}

// SessionRequest 自评会话提交
// swagger:model SessionRequest
type SessionRequest struct {
	Scores   map[string]float64 `json:"scores" binding:"required"`
	Note     string             `json:"note"`
	Duration int                `json:"duration" binding:"omitempty,min=0"`
}

// RecordSession godoc
// @Summary 提交自评会话
// @Description 每个维度一个 0-100 分值，维度 code 必须已启用
// @Tags 分析
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body SessionRequest true "会话数据"
// @Success 201 {object} util.Response{data=model.WellnessSession} "创建成功"
// @Failure 400 {object} util.Response "分值越界或维度不存在"
// @Router /api/sessions [post]
func (c *AnalyticsController) RecordSession(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.AnalyticsService.RecordSession(claims.UserID, req.Scores, req.Note, req.Duration)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidScore):
			util.BadRequest(ctx, "分值必须在 0-100 之间")
		case errors.Is(err, util.ErrCategoryNotFound):
			util.BadRequest(ctx, "维度不存在或未启用")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, session)
}

// ListSessions godoc
// @Summary 获取最近自评会话
// @Tags 分析
// @Produce  json
// @Security BearerAuth
// @Param   limit query int false "返回条数，默认 60"
// @Success 200 {object} util.Response{data=[]model.WellnessSession} "成功"
// @Router /api/sessions [get]
func (c *AnalyticsController) ListSessions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "0"))
	sessions, err := c.AnalyticsService.GetRecentSessions(claims.UserID, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, sessions)
}

// Analyze godoc
// @Summary 执行行为分析
// @Description 返回各维度模式快照和个性化建议，结果缓存10分钟
// @Tags 分析
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.AnalysisResult} "成功"
// @Router /api/analysis [get]
func (c *AnalyticsController) Analyze(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.AnalyticsService.Analyze(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// GetPatterns godoc
// @Summary 获取维度模式快照
// @Tags 分析
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Pattern} "成功"
// @Router /api/analysis/patterns [get]
func (c *AnalyticsController) GetPatterns(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	patterns, err := c.AnalyticsService.GetPatterns(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, patterns)
}

// GetRecommendations godoc
// @Summary 获取待执行建议
// @Description 按 confidence × successProbability 降序排列
// @Tags 分析
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.StoredRecommendation} "成功"
// @Router /api/recommendations [get]
func (c *AnalyticsController) GetRecommendations(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	recs, err := c.AnalyticsService.GetRecommendations(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, recs)
}

// OutcomeRequest 建议反馈
// swagger:model OutcomeRequest
type OutcomeRequest struct {
	Outcome string `json:"outcome" binding:"required,oneof=completed dismissed"`
}

// RecordOutcome godoc
// @Summary 反馈建议执行结果
// @Description completed/dismissed 会回流到后续分析的成功率上下文
// @Tags 分析
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "建议ID"
// @Param   body body OutcomeRequest true "反馈"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "建议不存在"
// @Router /api/recommendations/{id}/outcome [post]
func (c *AnalyticsController) RecordOutcome(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req OutcomeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	err := c.AnalyticsService.RecordOutcome(claims.UserID, ctx.Param("id"), model.OutcomeStatus(req.Outcome))
	if err != nil {
		if errors.Is(err, util.ErrRecommendationNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// GetInsights godoc
// @Summary 获取行为洞察
// @Description 基于用户行为上下文生成，最多两条
// @Tags 分析
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]string} "成功"
// @Router /api/analysis/insights [get]
func (c *AnalyticsController) GetInsights(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	insights, err := c.AnalyticsService.GetInsights(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, insights)
}

// GetOverview godoc
// @Summary 获取维度概览
// @Tags 分析
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.WellnessOverview} "成功"
// @Router /api/analysis/overview [get]
func (c *AnalyticsController) GetOverview(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	overview, err := c.AnalyticsService.GetOverview(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, overview)
}

// GetCategoryTrend godoc
// @Summary 获取维度历史曲线
// @Tags 分析
// @Produce  json
// @Security BearerAuth
// @Param   code path string true "维度 code"
// @Success 200 {object} util.Response{data=model.CategoryTrendResponse} "成功"
// @Failure 404 {object} util.Response "维度不存在"
// @Router /api/analysis/trend/{code} [get]
func (c *AnalyticsController) GetCategoryTrend(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	trend, err := c.AnalyticsService.GetCategoryTrend(claims.UserID, ctx.Param("code"))
	if err != nil {
		if errors.Is(err, util.ErrCategoryNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, trend)
}

// EngineHistoryStats godoc
// @Summary 引擎学习历史统计
// @Description 管理端查看引擎历史缓冲区的规模和成熟度
// @Tags 管理
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.HistoryStats} "成功"
// @Router /api/admin/engine/history [get]
func (c *AnalyticsController) EngineHistoryStats(ctx *gin.Context) {
	util.Success(ctx, c.AnalyticsService.EngineHistoryStats())
}
