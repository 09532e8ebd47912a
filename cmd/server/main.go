package main

import (
	"net/http"
	"os"
	"strings"

	_ "inkwell/docs" // swagger docs

	"github.com/labstack/echo/v4"

	"inkwell/internal/auth"
	"inkwell/internal/cache"
	"inkwell/internal/config"
	"inkwell/internal/db"
	"inkwell/internal/handler"
	"inkwell/internal/logger"
	"inkwell/internal/model"
	"inkwell/internal/repository"
	"inkwell/internal/router"
	"inkwell/internal/service"
)

// @title Inkwell Blog API
// @version 1.0
// @description Blog backend with JWT authentication, role-gated content management, and a public reading surface.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)

	e := echo.New()
	e.HideBanner = true

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database init")
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Warn().Msg("RESET_DB=true detected, dropping all tables")
		tables := []interface{}{
			&model.Article{},
			&model.Category{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Warn().Err(err).Msg("failed to drop table (may not exist)")
			}
		}
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Article{},
	); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)
	articleRepo := repository.NewArticleRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)
	gate := auth.NewGate(userRepo)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore, log)
	adminService := service.NewAdminService(userRepo, articleRepo, categoryRepo, cacheClient, log)
	categoryService := service.NewCategoryService(categoryRepo, log)
	articleService := service.NewArticleService(articleRepo, categoryRepo, log)
	blogService := service.NewBlogService(articleRepo, categoryRepo, log)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	adminHandler := handler.NewAdminHandler(adminService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	articleHandler := handler.NewArticleHandler(articleService)
	blogHandler := handler.NewBlogHandler(blogService)

	// Register routes
	router.Register(
		e,
		cfg,
		gate,
		authHandler,
		adminHandler,
		categoryHandler,
		articleHandler,
		blogHandler,
	)

	// SwaggerHost may already include a scheme; default to the local port.
	swaggerHost := cfg.SwaggerHost
	if swaggerHost == "" {
		swaggerHost = "localhost:" + cfg.ServerPort
	}
	if !strings.HasPrefix(swaggerHost, "http://") && !strings.HasPrefix(swaggerHost, "https://") {
		swaggerHost = "http://" + swaggerHost
	}
	log.Info().Str("url", swaggerHost+"/swagger/index.html").Msg("swagger documentation available")

	log.Info().Str("port", cfg.ServerPort).Msg("starting server")
	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server start")
	}
}
