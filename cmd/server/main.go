package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/acadex/acadex-backend/internal/config"
	"github.com/acadex/acadex-backend/internal/database"
	"github.com/acadex/acadex-backend/internal/handler"
	"github.com/acadex/acadex-backend/internal/logger"
	"github.com/acadex/acadex-backend/internal/repository"
	"github.com/acadex/acadex-backend/internal/router"
	"github.com/acadex/acadex-backend/internal/service"
	"github.com/acadex/acadex-backend/internal/validator"
	"github.com/acadex/acadex-backend/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Acadex Backend")

	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	userRepo := repository.NewUserRepository(pool)
	majorRepo := repository.NewMajorRepository(pool)
	courseRepo := repository.NewCourseRepository(pool)
	questionRepo := repository.NewQuestionRepository(pool)
	examRepo := repository.NewExamRepository(pool)
	attemptRepo := repository.NewAttemptRepository(pool)
	statsRepo := repository.NewStatsRepository(pool)

	authService := service.NewAuthService(cfg, userRepo, rdb, log)
	userService := service.NewUserService(userRepo, majorRepo, authService, log)
	majorService := service.NewMajorService(majorRepo)
	courseService := service.NewCourseService(courseRepo, userRepo, log)
	questionService := service.NewQuestionService(questionRepo, log)
	examService := service.NewExamService(examRepo, courseRepo, questionRepo, rdb, log)
	attemptService := service.NewAttemptService(attemptRepo, examRepo, courseRepo, questionRepo, examService, rdb, cfg.AttemptReentry, log)
	gradingService := service.NewGradingService(attemptRepo, examRepo, questionRepo, log)
	statsService := service.NewStatsService(statsRepo)

	handlers := &router.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		User:     handler.NewUserHandler(userService, authService),
		Major:    handler.NewMajorHandler(majorService),
		Course:   handler.NewCourseHandler(courseService),
		Question: handler.NewQuestionHandler(questionService),
		Exam:     handler.NewExamHandler(examService, courseService),
		Grading:  handler.NewGradingHandler(gradingService),
		Student:  handler.NewStudentHandler(attemptService, courseService),
		Stats:    handler.NewStatsHandler(statsService),
		Monitor:  handler.NewMonitorHandler(rdb, examService, log, cfg.AllowedOrigins),
	}

	// Under the unlimited re-entry policy attempts never expire, so the
	// sweeper only runs when the window closes attempts.
	if cfg.AttemptReentry == config.ReentryWindow {
		expiryWorker := worker.NewExpiryWorker(attemptRepo, rdb, log)
		go expiryWorker.Start(ctx)
	}

	r := router.SetupRouter(authService, handlers, cfg)

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
