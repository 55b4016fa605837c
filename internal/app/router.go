package app

import (
	"mcquiz_backend/docs"
	"mcquiz_backend/internal/config"
	"mcquiz_backend/internal/middleware"
	"mcquiz_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, s *services, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)
	a.registerUserRoutes(router, c, s, cfg)
	a.registerAdminRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.POST("/admin/login", c.auth.AdminLogin)

		reset := public.Group("/password-reset")
		{
			reset.POST("/request-reset", c.passwordReset.RequestReset)
			reset.POST("/verify-otp", c.passwordReset.VerifyOTP)
			reset.POST("/reset-password", c.passwordReset.ResetPassword)
		}

		// Public catalog: active subjects only, no answer material.
		public.GET("/subjects", c.subject.ListPublic)
		public.GET("/subjects/level/:level", c.subject.ListByLevel)
		public.GET("/subjects/:id", c.subject.Get)

		// The gateway authenticates by signature, not session.
		public.POST("/payment/notify", c.payment.Notify)

		public.GET("/feedback/public-stats", c.feedback.Stats)
	}

	oauth := router.Group("/auth")
	{
		oauth.GET("/google", c.auth.GoogleLogin)
		oauth.GET("/google/callback", c.auth.GoogleCallback)
		oauth.GET("/logout", c.auth.Logout)
	}
}

func (a *App) registerUserRoutes(router *gin.Engine, c *controllers, s *services, cfg *config.Config) {
	router.GET("/auth/user", middleware.AuthMiddleware(cfg), c.auth.CurrentUser)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profile", c.user.GetProfile)
		authGroup.PUT("/profile", c.user.UpdateProfile)
		authGroup.POST("/profile/picture", c.user.UploadProfilePicture)

		quizzes := authGroup.Group("/user-quizzes")
		quizzes.Use(middleware.AttachSubscriptions(s.subscription))
		{
			quizzes.GET("", c.userQuiz.List)
			quizzes.GET("/subject/:subjectId", c.userQuiz.ListBySubject)
			quizzes.GET("/:id/attempt", c.userQuiz.GetForAttempt)
			quizzes.POST("/:id/submit", c.userQuiz.Submit)
		}

		attempts := authGroup.Group("/user-attempts")
		{
			attempts.GET("/history", c.attempt.History)
			attempts.GET("/quiz/:quizId/attempts", c.attempt.QuizAttempts)
			attempts.GET("/quiz/:quizId/check", c.attempt.Check)
			attempts.GET("/attempt/:attemptId", c.attempt.Detail)
			attempts.GET("/stats", c.attempt.Stats)
		}

		dashboard := authGroup.Group("/dashboard")
		{
			dashboard.GET("/stats", c.dashboard.UserStats)
			dashboard.GET("/recent-quizzes", c.dashboard.RecentQuizzes)
			dashboard.GET("/recommendations", c.dashboard.Recommendations)
			dashboard.GET("/enrolled-courses", c.dashboard.EnrolledCourses)
		}

		payment := authGroup.Group("/payment")
		{
			payment.POST("/initialize", c.payment.Initialize)
			payment.GET("/subscription", c.payment.Subscription)
		}

		feedback := authGroup.Group("/feedback")
		{
			feedback.POST("/submit", c.feedback.Submit)
			feedback.GET("/user", c.feedback.ListMine)
			feedback.DELETE("/:id", c.feedback.Delete)
			feedback.GET("/all", middleware.AdminMiddleware(), c.feedback.ListAll)
			feedback.GET("/stats", middleware.AdminMiddleware(), c.feedback.Stats)
		}
	}
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.AdminMiddleware())
	{
		admin.GET("/profile", c.dashboard.AdminProfile)
		admin.GET("/dashboard", c.dashboard.AdminStats)

		subjects := admin.Group("/subjects")
		{
			subjects.POST("", c.subject.Create)
			subjects.GET("", c.subject.List)
			subjects.GET("/stats", c.subject.Stats)
			subjects.GET("/level/:level", c.subject.ListByLevel)
			subjects.GET("/:id", c.subject.Get)
			subjects.PUT("/:id", c.subject.Update)
			subjects.DELETE("/:id", c.subject.Delete)
		}

		quizzes := admin.Group("/quizzes")
		{
			quizzes.POST("", c.quiz.Create)
			quizzes.GET("", c.quiz.List)
			quizzes.GET("/stats", c.quiz.Stats)
			quizzes.GET("/subject/:subjectId", c.quiz.ListBySubject)
			quizzes.GET("/:id", c.quiz.Get)
			quizzes.PUT("/:id", c.quiz.Update)
			quizzes.DELETE("/:id", c.quiz.Delete)
		}
	}
}
