package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"blogapi/internal/auth"
	"blogapi/internal/cache"
	"blogapi/internal/config"
	"blogapi/internal/db"
	apperrors "blogapi/internal/errors"
	"blogapi/internal/repository"
	"blogapi/internal/service"
)

const (
	demoName     = "Demo User"
	demoEmail    = "demo@example.com"
	demoPassword = "demo1234"
)

var demoPosts = []service.PostInput{
	{
		Title:       "Hello, world",
		Description: "The first post on this blog.",
		Img:         "https://picsum.photos/seed/hello/800/400",
	},
	{
		Title:       "Cookies and sessions",
		Description: "Logging in sets an http-only cookie that expires with its token.",
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN, cfg.DBLogLevel)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := db.Migrate(gormDB, false); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	cacheClient := cache.New(cache.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
	defer cacheClient.Close()

	userRepo := repository.NewUserRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, auth.NewBcryptHasher(), jwtService)
	// Shares the server's profile cache so a running server sees the seeded posts.
	userService := service.NewUserService(userRepo, cacheClient, cfg.ProfileCacheTTL)
	postService := service.NewPostService(userRepo, postRepo, userService)

	created, err := seed(context.Background(), authService, postService)
	if err != nil {
		log.Fatalf("Failed to seed: %v", err)
	}
	if created == 0 {
		log.Printf("User %s already exists, nothing to seed", demoEmail)
		return
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - User: %s / %s", demoEmail, demoPassword)
	log.Printf("  - Posts created: %d", created)
}

// seed registers the demo user and its posts, returning how many posts were
// created. An existing demo user is left untouched.
func seed(ctx context.Context, authService service.AuthService, postService service.PostService) (int, error) {
	created, err := seedUser(ctx, authService)
	if err != nil {
		return 0, fmt.Errorf("seed user: %w", err)
	}
	if !created {
		return 0, nil
	}

	for i, input := range demoPosts {
		if _, err := postService.Create(ctx, demoEmail, input); err != nil {
			return i, fmt.Errorf("seed post %q: %w", input.Title, err)
		}
	}
	return len(demoPosts), nil
}

// seedUser registers the demo user and reports whether it was new.
func seedUser(ctx context.Context, authService service.AuthService) (bool, error) {
	_, _, err := authService.Register(ctx, demoName, demoEmail, demoPassword)
	if errors.Is(err, apperrors.ErrUserAlreadyExists) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("register %s: %w", demoEmail, err)
	}
	return true, nil
}
