package app

import (
	"aws_quiz_backend/internal/config"
	"aws_quiz_backend/internal/controller"
	"aws_quiz_backend/internal/repository"
	"aws_quiz_backend/internal/service"
	"aws_quiz_backend/pkg/database"
	"aws_quiz_backend/pkg/logger"
	"aws_quiz_backend/pkg/monitoring"
	"aws_quiz_backend/pkg/security"
	"aws_quiz_backend/pkg/tracing"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client

	tracerProvider  *sdktrace.TracerProvider
	memorySessions  *repository.MemorySessionRepository
	configCallbacks []func(*config.Config)
}

type repositories struct {
	questions *repository.QuestionRepository
	sessions  repository.SessionRepository
	results   *repository.ResultRepository
}

type services struct {
	quiz *service.QuizService
}

type controllers struct {
	quiz   *controller.QuizController
	health *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig hands a reloaded config to the registered callbacks.
func (a *App) ApplyConfig(cfg *config.Config) {
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

func (a *App) initRepositories(cfg *config.Config, rdb *redis.Client, db *gorm.DB) *repositories {
	questions, err := repository.LoadQuestionRepository(cfg.Questions.File)
	if err != nil {
		logger.Log.Fatal("Failed to load question bank", zap.Error(err))
	}
	logger.Log.Info("Question bank loaded",
		zap.String("file", cfg.Questions.File),
		zap.Int("questions", questions.Count()))

	repos := &repositories{questions: questions}

	if cfg.Session.Store == "redis" {
		repos.sessions = repository.NewRedisSessionRepository(rdb, cfg.Session.TTL)
	} else {
		a.memorySessions = repository.NewMemorySessionRepository(cfg.Session.TTL)
		repos.sessions = a.memorySessions
	}

	if db != nil {
		repos.results = repository.NewResultRepository(db)
	}
	return repos
}

func (a *App) initServices(repos *repositories) *services {
	return &services{
		quiz: service.NewQuizService(repos.questions, repos.sessions, repos.results),
	}
}

func (a *App) initControllers(s *services, repos *repositories, db *gorm.DB) *controllers {
	return &controllers{
		quiz:   controller.NewQuizController(s.quiz),
		health: controller.NewHealthController(db, repos.questions),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func (a *App) startBackgroundTasks() {
	if a.memorySessions == nil {
		return
	}
	go func() {
		ticker := time.NewTicker(time.Minute)
		for range ticker.C {
			if removed := a.memorySessions.Cleanup(); removed > 0 {
				logger.Log.Debug("expired quiz sessions removed", zap.Int("count", removed))
			}
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	app := &App{Config: cfg}

	var rdb *redis.Client
	if cfg.Session.Store == "redis" {
		var err error
		rdb, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		}
		app.Redis = rdb
	}

	var db *gorm.DB
	if cfg.Database.Enabled {
		var err error
		db, err = database.InitDB(&cfg.Database)
		if err != nil {
			logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		}
		app.DB = db
	}

	repos := app.initRepositories(cfg, rdb, db)
	services := app.initServices(repos)
	controllers := app.initControllers(services, repos, db)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("aws-quiz", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracerProvider = tp
	}

	app.registerRoutes(router, controllers)
	app.startBackgroundTasks()

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	log.Println("Server exiting")
}
