package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "blogapi/docs" // swagger docs

	"github.com/labstack/echo/v4"

	"blogapi/internal/auth"
	"blogapi/internal/cache"
	"blogapi/internal/config"
	"blogapi/internal/db"
	"blogapi/internal/handler"
	"blogapi/internal/logging"
	"blogapi/internal/repository"
	"blogapi/internal/router"
	"blogapi/internal/service"
)

const shutdownTimeout = 10 * time.Second

// @title Blog API
// @version 1.0
// @description Blogging backend with cookie sessions, profiles and owned posts.
// @host localhost:5000
// @BasePath /
// @schemes http
// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name token
// @description Session token issued by /register and /login.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(os.Stdout, cfg.IsProduction())
	ctx := context.Background()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN, cfg.DBLogLevel)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}
	if err := db.Migrate(gormDB, cfg.ResetDB); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cache.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
	defer cacheClient.Close()
	if err := cacheClient.Ping(ctx); err != nil {
		logger.Warn(ctx, "redis unavailable, profile cache disabled until it recovers", "addr", cfg.RedisAddr, "error", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL)
	hasher := auth.NewBcryptHasher()

	// Initialize services
	authService := service.NewAuthService(userRepo, hasher, jwtService)
	userService := service.NewUserService(userRepo, cacheClient, cfg.ProfileCacheTTL)
	postService := service.NewPostService(userRepo, postRepo, userService)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, logger)
	userHandler := handler.NewUserHandler(userService, logger)
	postHandler := handler.NewPostHandler(postService, logger)

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, jwtService, authHandler, userHandler, postHandler)

	logger.Info(ctx, "swagger documentation available", "url", swaggerURL(cfg))

	go func() {
		addr := ":" + cfg.ServerPort
		logger.Info(ctx, "server listening", "addr", addr, "env", cfg.AppEnv)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "server shutdown", "error", err)
	}
	logger.Info(ctx, "server stopped")
}

// swaggerURL builds the browsable docs URL. SwaggerHost may already include a scheme.
func swaggerURL(cfg *config.Config) string {
	host := cfg.SwaggerHost
	if host == "" {
		host = "localhost:" + cfg.ServerPort
	}
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}
	return strings.TrimRight(host, "/") + "/swagger/index.html"
}
