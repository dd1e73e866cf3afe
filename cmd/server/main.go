package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/alcolens/alcolens-api/internal/config"
	"github.com/alcolens/alcolens-api/internal/database"
	"github.com/alcolens/alcolens-api/internal/handler"
	"github.com/alcolens/alcolens-api/internal/queue"
	"github.com/alcolens/alcolens-api/internal/repository"
	"github.com/alcolens/alcolens-api/internal/router"
	"github.com/alcolens/alcolens-api/internal/service"
	"github.com/alcolens/alcolens-api/internal/sms"
)

func main() {
	// .env is optional; in containers everything comes from the real env.
	_ = godotenv.Load()
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal("migrate database", zap.Error(err))
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		logger.Warn("redis unavailable, rate limiting and caching disabled")
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	patients := repository.NewPatientRepo(db)
	invites := repository.NewInviteRepo(db)
	responses := repository.NewResponseRepo(db)

	assessments := service.NewAssessmentService(invites, responses)

	authHandler := handler.NewAuthHandler(cfg, users, tokens)
	publicHandler := handler.NewPublicHandler(assessments)
	doctorHandler := handler.NewDoctorHandler(cfg, patients, invites, responses, logger)

	// Background consumer delivers invite SMS; the server does not depend
	// on it being up.
	smsClient := sms.NewClient(config.LoadSMSConfig(), logger)
	go func() {
		if err := queue.StartInviteConsumer(smsClient, logger); err != nil {
			logger.Error("invite consumer stopped", zap.Error(err))
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterPublic(e, publicHandler, config.LoadRateLimitConfig(), rdb)
	router.RegisterDoctor(e, doctorHandler, cfg.JWTSecret)

	addr := ":" + cfg.Port
	logger.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := e.Start(addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
