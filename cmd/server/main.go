package main

import (
	"context"
	"log"
	"log/slog"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"codesage_backend/internal/app/router"
	"codesage_backend/internal/config"
	authadapters "codesage_backend/internal/feature/auth/adapters"
	authhandler "codesage_backend/internal/feature/auth/transport/handler"
	authusecase "codesage_backend/internal/feature/auth/usecase"
	"codesage_backend/internal/feature/realtime"
	realtimehandler "codesage_backend/internal/feature/realtime/transport/handler"
	reviewadapters "codesage_backend/internal/feature/review/adapters"
	reviewcache "codesage_backend/internal/feature/review/adapters/cache"
	"codesage_backend/internal/feature/review/adapters/gemini"
	reviewhandler "codesage_backend/internal/feature/review/transport/handler"
	reviewusecase "codesage_backend/internal/feature/review/usecase"
	snippetadapters "codesage_backend/internal/feature/snippets/adapters"
	snippethandler "codesage_backend/internal/feature/snippets/transport/handler"
	snippetusecase "codesage_backend/internal/feature/snippets/usecase"
	"codesage_backend/internal/platform/db"
	jwtmw "codesage_backend/internal/platform/jwt"
	platformredis "codesage_backend/internal/platform/redis"
	"codesage_backend/internal/shared/ratelimiter"
)

func main() {
	// Config: a missing required key fails here, never mid-request.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// DB
	conn, err := db.Open(cfg.Database)
	if err != nil {
		log.Fatalf("db: %v", err)
	}

	// Redis (optional)
	var rdb *redisv9.Client
	if cfg.Redis.Addr != "" {
		if tmp, err := platformredis.NewClient(cfg.Redis); err != nil {
			slog.Warn("Redis unavailable, running without review cache", "error", err)
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
		}
	}

	// External review model
	reviewer, err := gemini.NewGeminiReviewer(context.Background(), cfg.Gemini)
	if err != nil {
		log.Fatalf("gemini: %v", err)
	}
	cachedReviewer := reviewcache.NewCachingReviewer(rdb, time.Hour, reviewer, "reviews")

	// Repositories
	userRepo := authadapters.NewUserRepository(conn)
	reviewRepo := reviewadapters.NewReviewRepository(conn)
	snippetRepo := snippetadapters.NewSnippetRepository(conn)

	// Usecases
	tokens := jwtmw.NewGenerator(cfg.Auth.SecretKey, cfg.Auth.TokenExpiry)
	authUC := authusecase.NewAuthUsecase(userRepo, tokens)
	reviewUC := reviewusecase.NewReviewUsecase(cachedReviewer, reviewRepo)
	snippetUC := snippetusecase.NewSnippetUsecase(snippetRepo)

	// Handlers
	authH := authhandler.NewAuthHandler(authUC)
	reviewH := reviewhandler.NewReviewHandler(reviewUC)
	snippetH := snippethandler.NewSnippetHandler(snippetUC)
	wsH := realtimehandler.NewWSHandler(realtime.NewHub())

	limiter := ratelimiter.NewRateLimiter(cfg.RateLimit.PerMinute, time.Minute)

	engine := router.New(router.Deps{
		Config:   cfg,
		Limiter:  limiter,
		Users:    authUC,
		Auth:     authH,
		Review:   reviewH,
		Snippets: snippetH,
		WS:       wsH,
	})

	if err := engine.Run(":" + cfg.App.Port); err != nil {
		log.Fatal(err)
	}
}
