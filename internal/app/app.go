package app

import (
	"context"
	"log"
	"mcquiz_backend/internal/config"
	"mcquiz_backend/internal/controller"
	"mcquiz_backend/internal/repository"
	"mcquiz_backend/internal/service"
	"mcquiz_backend/pkg/database"
	"mcquiz_backend/pkg/logger"
	"mcquiz_backend/pkg/monitoring"
	"mcquiz_backend/pkg/security"
	"mcquiz_backend/pkg/tracing"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	services        *services
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user         *repository.UserRepository
	admin        *repository.AdminRepository
	subject      *repository.SubjectRepository
	quiz         *repository.QuizRepository
	attempt      *repository.AttemptRepository
	feedback     *repository.FeedbackRepository
	otp          *repository.OTPRepository
	subscription *repository.SubscriptionRepository
}

type services struct {
	auth          *service.AuthService
	google        *service.GoogleAuthService
	storage       *service.StorageService
	user          *service.UserService
	subject       *service.SubjectService
	quiz          *service.QuizService
	attempt       *service.AttemptService
	subscription  *service.SubscriptionService
	payment       *service.PaymentService
	sentiment     *service.SentimentService
	feedback      *service.FeedbackService
	email         *service.EmailService
	passwordReset *service.PasswordResetService
	dashboard     *service.DashboardService
}

type controllers struct {
	health        *controller.HealthController
	auth          *controller.AuthController
	user          *controller.UserController
	subject       *controller.SubjectController
	quiz          *controller.QuizController
	userQuiz      *controller.UserQuizController
	attempt       *controller.AttemptController
	payment       *controller.PaymentController
	feedback      *controller.FeedbackController
	passwordReset *controller.PasswordResetController
	dashboard     *controller.DashboardController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig hands a freshly reloaded config to the registered callbacks.
// Components constructed at startup keep their original settings.
func (a *App) ApplyConfig(cfg *config.Config) {
	logger.Log.Info("Applying reloaded configuration")
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:         repository.NewUserRepository(db),
		admin:        repository.NewAdminRepository(db),
		subject:      repository.NewSubjectRepository(db),
		quiz:         repository.NewQuizRepository(db),
		attempt:      repository.NewAttemptRepository(db),
		feedback:     repository.NewFeedbackRepository(db),
		otp:          repository.NewOTPRepository(db),
		subscription: repository.NewSubscriptionRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, repos.admin, cfg)
	s.google = service.NewGoogleAuthService(&cfg.Google)
	s.user = service.NewUserService(repos.user, s.storage)
	s.subject = service.NewSubjectService(repos.subject)
	s.quiz = service.NewQuizService(repos.quiz, repos.subject, db)
	s.attempt = service.NewAttemptService(repos.attempt, repos.quiz, cfg)
	s.subscription = service.NewSubscriptionService(repos.user, repos.subscription)
	s.payment = service.NewPaymentService(repos.subscription, repos.user, cfg)
	s.sentiment = service.NewSentimentService(&cfg.Sentiment)
	s.feedback = service.NewFeedbackService(repos.feedback, s.sentiment)
	s.email = service.NewEmailService(&cfg.SMTP)
	s.passwordReset = service.NewPasswordResetService(repos.user, repos.admin, repos.otp, s.email)
	s.dashboard = service.NewDashboardService(
		repos.attempt,
		repos.subject,
		repos.quiz,
		repos.user,
		repos.feedback,
		repos.subscription,
		s.subscription,
	)

	return s
}

func (a *App) initControllers(s *services, repos *repositories, db *gorm.DB) *controllers {
	return &controllers{
		health:        controller.NewHealthController(db),
		auth:          controller.NewAuthController(s.auth, s.google, a.Config),
		user:          controller.NewUserController(s.user),
		subject:       controller.NewSubjectController(s.subject),
		quiz:          controller.NewQuizController(s.quiz),
		userQuiz:      controller.NewUserQuizController(s.quiz, s.attempt, repos.attempt),
		attempt:       controller.NewAttemptController(s.attempt),
		payment:       controller.NewPaymentController(s.payment, s.subscription),
		feedback:      controller.NewFeedbackController(s.feedback),
		passwordReset: controller.NewPasswordResetController(s.passwordReset),
		dashboard:     controller.NewDashboardController(s.dashboard, repos.admin),
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
		maxRequests = 1000
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	gin.SetMode(cfg.Server.Mode)

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db)
	app.services = services
	controllers := app.initControllers(services, repos, db)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		_, err := tracing.InitTracer("mcquiz-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, services, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

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

	log.Println("Server exiting")
}
