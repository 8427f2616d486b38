package app

import (
	"lifeos_backend/docs"
	"lifeos_backend/internal/config"
	"lifeos_backend/internal/middleware"
	"lifeos_backend/internal/model"
	"lifeos_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c, repos)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerMemberRoutes(authGroup, c)
	}

	// 3. 管理员相关接口
	a.registerAdminRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers, repos *repositories) {
	public := router.Group("/api")
	public.Use(middleware.TryAuthMiddleware(a.Config), middleware.ActivityMiddleware(repos.user))
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.GET("/motivation", c.motivation.GetCurrentMotivation)
		public.GET("/categories", c.category.ListCategories)
	}
}

func (a *App) registerMemberRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/me", c.auth.Me)

	// 用户
	rg.GET("/user/profile", c.user.GetProfile)
	rg.PUT("/user/profile", c.user.UpdateProfile)
	rg.POST("/user/avatar", c.user.UploadAvatar)
	rg.POST("/user/checkin", c.user.Checkin)
	rg.GET("/user/checkin/status", c.user.CheckinStatus)

	// 自评会话与分析
	rg.POST("/sessions", c.analytics.RecordSession)
	rg.GET("/sessions", c.analytics.ListSessions)
	rg.GET("/analysis", c.analytics.Analyze)
	rg.GET("/analysis/patterns", c.analytics.GetPatterns)
	rg.GET("/analysis/insights", c.analytics.GetInsights)
	rg.GET("/analysis/overview", c.analytics.GetOverview)
	rg.GET("/analysis/trend/:code", c.analytics.GetCategoryTrend)

	// 建议
	rg.GET("/recommendations", c.analytics.GetRecommendations)
	rg.POST("/recommendations/:id/outcome", c.analytics.RecordOutcome)
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		// 维度管理
		admin.GET("/categories", c.category.ListAllCategories)
		admin.POST("/categories", c.category.CreateCategory)
		admin.PUT("/categories/:id", c.category.UpdateCategory)
		admin.DELETE("/categories/:id", c.category.DeleteCategory)

		// 激励短句管理
		admin.GET("/motivations", c.motivation.GetAllMotivations)
		admin.POST("/motivations", c.motivation.CreateMotivation)
		admin.PUT("/motivations/:id", c.motivation.UpdateMotivation)
		admin.DELETE("/motivations/:id", c.motivation.DeleteMotivation)
		admin.POST("/motivations/:id/switch", c.motivation.SwitchMotivation)

		// 引擎
		admin.GET("/engine/history", c.analytics.EngineHistoryStats)
	}
}
