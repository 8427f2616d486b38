package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lifeos_backend/internal/config"
	"lifeos_backend/internal/controller"
	"lifeos_backend/internal/engine"
	"lifeos_backend/internal/repository"
	"lifeos_backend/internal/service"
	"lifeos_backend/internal/util"
	"lifeos_backend/pkg/database"
	"lifeos_backend/pkg/logger"
	"lifeos_backend/pkg/monitoring"
	"lifeos_backend/pkg/security"
	"lifeos_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	Engine          *engine.Engine
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user           *repository.UserRepository
	checkin        *repository.CheckinRepository
	session        *repository.SessionRepository
	category       *repository.CategoryRepository
	recommendation *repository.RecommendationRepository
	motivation     *repository.MotivationRepository
}

type services struct {
	auth       *service.AuthService
	user       *service.UserService
	analytics  *service.AnalyticsService
	category   *service.CategoryService
	motivation *service.MotivationService
	storage    *service.StorageService
}

type controllers struct {
	auth       *controller.AuthController
	user       *controller.UserController
	analytics  *controller.AnalyticsController
	category   *controller.CategoryController
	motivation *controller.MotivationController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig 配置热更新入口，由配置文件监听器触发
func (a *App) ApplyConfig(cfg *config.Config) {
	a.Config = cfg
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:           repository.NewUserRepository(db),
		checkin:        repository.NewCheckinRepository(db),
		session:        repository.NewSessionRepository(db),
		category:       repository.NewCategoryRepository(db),
		recommendation: repository.NewRecommendationRepository(db),
		motivation:     repository.NewMotivationRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user, repos.checkin)
	s.analytics = service.NewAnalyticsService(
		repos.session,
		repos.checkin,
		repos.user,
		repos.recommendation,
		repos.category,
		a.Engine,
		rdb,
	)
	s.category = service.NewCategoryService(repos.category)
	s.motivation = service.NewMotivationService(repos.motivation)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth, s.user),
		user:       controller.NewUserController(s.user, s.storage),
		analytics:  controller.NewAnalyticsController(s.analytics),
		category:   controller.NewCategoryController(s.category),
		motivation: controller.NewMotivationController(s.motivation),
		health:     controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 100000
	}
	router.Use(security.RateLimiter(maxRequests, window))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func newEngine(cfg *config.Config) *engine.Engine {
	ec := engine.DefaultConfig()
	if cfg.Engine.PatternWindow > 0 {
		ec.PatternWindow = cfg.Engine.PatternWindow
	}
	if cfg.Engine.VelocityWindow > 0 {
		ec.VelocityWindow = cfg.Engine.VelocityWindow
	}
	if cfg.Engine.StabilityWindow > 0 {
		ec.StabilityWindow = cfg.Engine.StabilityWindow
	}
	if cfg.Engine.MaxRecommendations > 0 {
		ec.MaxRecommendations = cfg.Engine.MaxRecommendations
	}
	if cfg.Engine.MinConfidence > 0 {
		ec.MinConfidence = cfg.Engine.MinConfidence
	}
	if cfg.Engine.HistoryCap > 0 {
		ec.HistoryCap = cfg.Engine.HistoryCap
	}
	if cfg.Engine.HistoryTrim > 0 {
		ec.HistoryTrim = cfg.Engine.HistoryTrim
	}
	return engine.New(ec)
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// Redis 不可用时降级为无缓存运行
		logger.Log.Warn("Redis unavailable, running without cache", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
		Engine: newEngine(cfg),
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db)

	// 监控初始化
	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		_, err := tracing.InitTracer("lifeos-platform", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
