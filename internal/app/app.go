package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"word_duel_backend/internal/config"
	"word_duel_backend/internal/controller"
	"word_duel_backend/internal/repository"
	"word_duel_backend/internal/service"
	"word_duel_backend/pkg/database"
	"word_duel_backend/pkg/logger"
	"word_duel_backend/pkg/monitoring"
	"word_duel_backend/pkg/security"
	"word_duel_backend/pkg/tracing"

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
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user        *repository.UserRepository
	friendship  *repository.FriendshipRepository
	wordlist    *repository.WordlistRepository
	session     *repository.SessionRepository
	extractTask *repository.ExtractTaskRepository
}

type services struct {
	auth       *service.AuthService
	user       *service.UserService
	friendship *service.FriendshipService
	wordlist   *service.WordlistService
	quiz       *service.QuizService
	report     *service.ReportService
	storage    *service.StorageService
	vision     *service.VisionService
	extract    *service.ExtractTaskService
}

type controllers struct {
	auth     *controller.AuthController
	user     *controller.UserController
	wordlist *controller.WordlistController
	session  *controller.SessionController
	report   *controller.ReportController
	extract  *controller.ExtractController
	health   *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig 配置热更新回调入口，由配置监视器触发
func (a *App) ApplyConfig(cfg *config.Config) {
	a.Config = cfg
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(db),
		friendship:  repository.NewFriendshipRepository(db, rdb),
		wordlist:    repository.NewWordlistRepository(db),
		session:     repository.NewSessionRepository(db),
		extractTask: repository.NewExtractTaskRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.friendship = service.NewFriendshipService(repos.friendship, repos.user)
	s.wordlist = service.NewWordlistService(repos.wordlist)

	ai := service.NewAIClient(cfg.AI)
	judge := service.NewJudgeService(ai)
	grader := service.NewGrader(judge, cfg.Judge.Enabled, cfg.Judge.Strictness, cfg.Judge.TreatPartialAsCorrect)

	s.quiz = service.NewQuizService(repos.session, repos.wordlist, repos.user, grader)
	s.report = service.NewReportService(repos.session, repos.wordlist, repos.user, repos.friendship)

	s.vision = service.NewVisionService(ai, cfg.AI.VisionModel)
	s.extract = service.NewExtractTaskService(repos.extractTask, s.vision)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:     controller.NewAuthController(s.auth),
		user:     controller.NewUserController(s.user, s.friendship),
		wordlist: controller.NewWordlistController(s.wordlist),
		session:  controller.NewSessionController(s.quiz, s.report),
		report:   controller.NewReportController(s.report),
		extract:  controller.NewExtractController(s.vision, s.extract, s.storage),
		health:   controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 10000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db, rdb)
	services := app.initServices(repos, cfg)
	controllers := app.initControllers(services, db, rdb)

	// 监控初始化
	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("word-duel", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.RegisterConfigCallback(func(c *config.Config) {
			if !c.Tracing.Enabled {
				if err := tp.Shutdown(context.Background()); err != nil {
					logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
				}
			}
		})
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == config.StorageLocal {
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
