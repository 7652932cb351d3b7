package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/acadex/acadex-backend/internal/config"
	"github.com/acadex/acadex-backend/internal/handler"
	"github.com/acadex/acadex-backend/internal/middleware"
	"github.com/acadex/acadex-backend/internal/response"
	"github.com/acadex/acadex-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth     *handler.AuthHandler
	User     *handler.UserHandler
	Major    *handler.MajorHandler
	Course   *handler.CourseHandler
	Question *handler.QuestionHandler
	Exam     *handler.ExamHandler
	Grading  *handler.GradingHandler
	Student  *handler.StudentHandler
	Stats    *handler.StatsHandler
	Monitor  *handler.MonitorHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// If AllowedOrigins is set in config, restrict to that list; otherwise
	// allow all so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Request ID first so every response carries metadata.
	router.Use(response.RequestIDMiddleware())

	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Auth routes, rate limited per IP against credential stuffing.
	authLimiter := middleware.NewRateLimiter(30, time.Minute)
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/login", handlers.Auth.Login)
		auth.POST("/logout", middleware.RequireAuth(authService), handlers.Auth.Logout)
		auth.GET("/me", middleware.RequireAuth(authService), handlers.Auth.Me)
	}

	// Admin: accounts, majors, courses, assignments, dashboard.
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(middleware.RequireAdmin(authService))
	{
		adminAPI.GET("/dashboard", handlers.Stats.Dashboard)

		adminAPI.GET("/users", handlers.User.List)
		adminAPI.POST("/users", handlers.User.Create)
		adminAPI.GET("/users/:id", handlers.User.Get)
		adminAPI.PUT("/users/:id", handlers.User.Update)
		adminAPI.DELETE("/users/:id", handlers.User.Delete)
		adminAPI.POST("/users/:id/reset-session", handlers.User.ResetSession)

		// Majors change rarely; let intermediaries cache the listing briefly.
		adminAPI.GET("/majors", middleware.CacheControl(60), handlers.Major.List)
		adminAPI.POST("/majors", handlers.Major.Create)
		adminAPI.GET("/majors/:id", handlers.Major.Get)
		adminAPI.PUT("/majors/:id", handlers.Major.Update)
		adminAPI.DELETE("/majors/:id", handlers.Major.Delete)

		adminAPI.GET("/courses", handlers.Course.List)
		adminAPI.POST("/courses", handlers.Course.Create)
		adminAPI.GET("/courses/:id", handlers.Course.Get)
		adminAPI.PUT("/courses/:id", handlers.Course.Update)
		adminAPI.DELETE("/courses/:id", handlers.Course.Delete)

		adminAPI.POST("/courses/:id/doctors/:user_id", handlers.Course.AssignDoctor)
		adminAPI.DELETE("/courses/:id/doctors/:user_id", handlers.Course.UnassignDoctor)
		adminAPI.POST("/courses/:id/students/:user_id", handlers.Course.EnrollStudent)
		adminAPI.DELETE("/courses/:id/students/:user_id", handlers.Course.UnenrollStudent)
	}

	// Doctor: question bank, exams, grading.
	doctorAPI := router.Group("/api/v1/doctor")
	doctorAPI.Use(middleware.RequireDoctor(authService))
	{
		doctorAPI.GET("/courses", handlers.Exam.ListCourses)

		doctorAPI.GET("/questions", handlers.Question.List)
		doctorAPI.POST("/questions", handlers.Question.Create)
		doctorAPI.GET("/questions/:id", handlers.Question.Get)
		doctorAPI.PUT("/questions/:id", handlers.Question.Update)
		doctorAPI.DELETE("/questions/:id", handlers.Question.Delete)
		doctorAPI.POST("/questions/:id/choices", handlers.Question.AddChoice)
		doctorAPI.PUT("/questions/:id/choices/:choice_id", handlers.Question.UpdateChoice)
		doctorAPI.DELETE("/questions/:id/choices/:choice_id", handlers.Question.DeleteChoice)

		doctorAPI.GET("/exams", handlers.Exam.List)
		doctorAPI.POST("/exams", handlers.Exam.Create)
		doctorAPI.GET("/exams/:id", handlers.Exam.Get)
		doctorAPI.PUT("/exams/:id", handlers.Exam.Update)
		doctorAPI.DELETE("/exams/:id", handlers.Exam.Delete)
		doctorAPI.GET("/exams/:id/questions", handlers.Exam.ListQuestions)
		doctorAPI.POST("/exams/:id/questions", handlers.Exam.AttachQuestion)
		doctorAPI.DELETE("/exams/:id/questions/:eq_id", handlers.Exam.DetachQuestion)

		doctorAPI.GET("/exams/:id/results", handlers.Grading.ExamResults)
		doctorAPI.GET("/attempts/:attempt_id", handlers.Grading.AttemptDetail)
		doctorAPI.PUT("/attempts/:attempt_id/answers/:answer_id/grade", handlers.Grading.GradeAnswer)
		doctorAPI.PUT("/attempts/:attempt_id/grade", handlers.Grading.FinalizeGrade)
	}

	// Student: courses, exam taking, results. Single device per student.
	studentAPI := router.Group("/api/v1/student")
	studentAPI.Use(
		middleware.RequireStudent(authService),
		middleware.CheckSingleDeviceSession(authService),
	)
	{
		studentAPI.GET("/courses", handlers.Student.ListCourses)
		studentAPI.GET("/exams/available", handlers.Student.AvailableExams)
		studentAPI.GET("/exams/upcoming", handlers.Student.UpcomingExams)
		studentAPI.POST("/exams/:exam_id/start", handlers.Student.StartAttempt)
		studentAPI.GET("/exams/:exam_id/paper", handlers.Student.Paper)
		studentAPI.PUT("/exams/:exam_id/questions/:question_id/answer", handlers.Student.SaveAnswer)
		studentAPI.POST("/exams/:exam_id/submit", handlers.Student.SubmitAttempt)
		studentAPI.GET("/results", handlers.Student.Results)
		studentAPI.GET("/results/:attempt_id", handlers.Student.ResultDetail)
	}

	// WebSocket: doctors watch attempt progress live.
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireDoctor(authService))
	{
		ws.GET("/doctor/exams/:id/monitor", handlers.Monitor.Stream)
	}

	return router
}
