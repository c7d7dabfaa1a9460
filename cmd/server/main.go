package main

import (
	"log"
	"net/http"

	_ "civictrack/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"civictrack/internal/auth"
	"civictrack/internal/cache"
	"civictrack/internal/config"
	"civictrack/internal/db"
	"civictrack/internal/handler"
	"civictrack/internal/model"
	"civictrack/internal/repository"
	"civictrack/internal/router"
	"civictrack/internal/service"
)

// @title CivicTrack API
// @version 1.0
// @description Civic issue reporting API with local and Google authentication, issue status tracking and moderation.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Issue{},
		&model.IssuePhoto{},
		&model.StatusLog{},
		&model.Flag{},
		&model.BannedUser{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	issueRepo := repository.NewIssueRepository(gormDB)
	flagRepo := repository.NewFlagRepository(gormDB)
	bannedRepo := repository.NewBannedUserRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.SecretKey, cfg.AccessTokenExpiry())
	stateStore := auth.NewStateStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService)
	oauthService := service.NewOAuthService(cfg, userRepo, jwtService, stateStore)
	issueService := service.NewIssueService(issueRepo, userRepo, bannedRepo)
	moderationService := service.NewModerationService(issueRepo, userRepo, flagRepo, bannedRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, oauthService)
	issueHandler := handler.NewIssueHandler(issueService)
	moderationHandler := handler.NewModerationHandler(moderationService, authService)

	// Register routes
	router.Register(e, cfg, authHandler, issueHandler, moderationHandler)

	log.Printf("%s listening on :%s (prefix %s)", cfg.ProjectName, cfg.ServerPort, cfg.APIPrefix)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
