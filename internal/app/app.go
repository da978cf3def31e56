package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lms_backend/internal/config"
	"lms_backend/internal/controller"
	"lms_backend/internal/repository"
	"lms_backend/internal/service"
	"lms_backend/pkg/configwatcher"
	"lms_backend/pkg/database"
	"lms_backend/pkg/logger"
	"lms_backend/pkg/monitoring"
	"lms_backend/pkg/security"
	"lms_backend/pkg/tracing"

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
	user       *repository.UserRepository
	course     *repository.CourseRepository
	program    *repository.ProgramRepository
	enrollment *repository.EnrollmentRepository
	programEnr *repository.ProgramEnrollmentRepository
	session    *repository.SessionRepository
	attendance *repository.AttendanceRepository
	exam       *repository.ExamRepository
	attempt    *repository.AttemptRepository
	grade      *repository.GradeRepository
	cert       *repository.CertificateRepository
	activity   *repository.ActivityRepository
	analytics  *repository.AnalyticsRepository
}

type services struct {
	auth        *service.AuthService
	user        *service.UserService
	course      *service.CourseService
	exam        *service.ExamService
	attempt     *service.ExamAttemptService
	grade       *service.GradeService
	attendance  *service.AttendanceService
	analytics   *service.AnalyticsService
	enrollment  *service.EnrollmentService
	certificate *service.CertificateService
}

type controllers struct {
	auth        *controller.AuthController
	user        *controller.UserController
	course      *controller.CourseController
	exam        *controller.ExamController
	attempt     *controller.ExamAttemptController
	grade       *controller.GradeController
	attendance  *controller.AttendanceController
	analytics   *controller.AnalyticsController
	enrollment  *controller.EnrollmentController
	certificate *controller.CertificateController
	health      *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		course:     repository.NewCourseRepository(db),
		program:    repository.NewProgramRepository(db),
		enrollment: repository.NewEnrollmentRepository(db),
		programEnr: repository.NewProgramEnrollmentRepository(db),
		session:    repository.NewSessionRepository(db),
		attendance: repository.NewAttendanceRepository(db),
		exam:       repository.NewExamRepository(db),
		attempt:    repository.NewAttemptRepository(db),
		grade:      repository.NewGradeRepository(db),
		cert:       repository.NewCertificateRepository(db),
		activity:   repository.NewActivityRepository(db),
		analytics:  repository.NewAnalyticsRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.auth = service.NewAuthService(repos.user, repos.activity, cfg)
	s.user = service.NewUserService(repos.user)
	s.course = service.NewCourseService(repos.course, repos.program, repos.session)
	s.exam = service.NewExamService(repos.exam, repos.course, repos.program)
	s.attempt = service.NewExamAttemptService(repos.exam, repos.attempt, repos.activity, db, cfg.Grading.PassPercent)

	gradeCfg := service.GradeConfigFromSettings(cfg.Grading)
	s.grade = service.NewGradeService(
		repos.grade,
		repos.exam,
		repos.attempt,
		repos.session,
		repos.attendance,
		repos.enrollment,
		repos.programEnr,
		gradeCfg,
	)

	s.attendance = service.NewAttendanceService(repos.session, repos.attendance, repos.activity)
	s.analytics = service.NewAnalyticsService(
		repos.analytics,
		repos.user,
		repos.enrollment,
		repos.session,
		repos.attendance,
		repos.grade,
		repos.cert,
		repos.activity,
		repos.course,
		repos.program,
		rdb,
	)
	s.enrollment = service.NewEnrollmentService(repos.enrollment, repos.programEnr, repos.course, repos.program, repos.activity)
	s.certificate = service.NewCertificateService(repos.cert, repos.user, repos.course, repos.program)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth),
		user:        controller.NewUserController(s.user),
		course:      controller.NewCourseController(s.course),
		exam:        controller.NewExamController(s.exam),
		attempt:     controller.NewExamAttemptController(s.attempt, s.grade),
		grade:       controller.NewGradeController(s.grade),
		attendance:  controller.NewAttendanceController(s.attendance),
		analytics:   controller.NewAnalyticsController(s.analytics),
		enrollment:  controller.NewEnrollmentController(s.enrollment),
		certificate: controller.NewCertificateController(s.certificate),
		health:      controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 100000
	}
	windowMinutes := cfg.RateLimit.WindowMinutes
	if windowMinutes <= 0 {
		windowMinutes = 1
	}
	router.Use(security.RateLimiter(maxRequests, time.Duration(windowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func (a *App) watchConfig() {
	go configwatcher.WatchConfig("configs/config.yaml", a.Config, func(raw interface{}) {
		newCfg, ok := raw.(*config.Config)
		if !ok {
			return
		}
		logger.Log.Info("config reloaded")
		for _, callback := range a.configCallbacks {
			callback(newCfg)
		}
	})
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, database.ShouldMigrate(cfg.Server.Mode, cfg.ForceMigrate))
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// 缓存不可用时降级为直查数据库
		logger.Log.Warn("Failed to initialize redis, caching disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("lms-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	app.watchConfig()

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
