package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	"github.com/zizouhuweidi/trivia/internal/cache"
	"github.com/zizouhuweidi/trivia/internal/config"
	"github.com/zizouhuweidi/trivia/internal/database"
	"github.com/zizouhuweidi/trivia/internal/domain"
	"github.com/zizouhuweidi/trivia/internal/handler"
	"github.com/zizouhuweidi/trivia/internal/repository/postgres"
	"github.com/zizouhuweidi/trivia/internal/service"
	"github.com/zizouhuweidi/trivia/internal/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := log.New("trivia")
	logger.SetLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database connection
	pool, err := database.ConnectPostgres(ctx, cfg.Postgres)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := database.EnsureSchema(ctx, pool, cfg.SeedCategories); err != nil {
		logger.Fatalf("Failed to prepare database: %v", err)
	}

	// Initialize Redis client, optional
	var redisClient *redis.Client
	if cfg.RedisEnabled {
		redisClient, err = database.ConnectRedis(ctx, cfg.Redis)
		if err != nil {
			logger.Warnf("Running without Redis: %v", err)
		} else {
			defer redisClient.Close()
		}
	}

	// Initialize repositories
	questionRepo := postgres.NewQuestionRepository(pool)
	var categoryRepo domain.CategoryRepository = postgres.NewCategoryRepository(pool)
	var limiter handler.Limiter
	if redisClient != nil {
		cached := cache.NewCategoryRepository(categoryRepo, redisClient, cfg.CategoryCacheTTL, logger)
		if err := cached.Invalidate(ctx); err != nil {
			logger.Warnf("Failed to reset category cache: %v", err)
		}
		categoryRepo = cached
		if cfg.RateLimit > 0 {
			limiter = cache.NewRateLimiter(redisClient, cfg.RateLimit, time.Minute)
		}
	}

	// Initialize websocket hub
	hub := websocket.NewHub(logger)
	go hub.Run(ctx)

	// Initialize services
	triviaService := service.NewTriviaService(questionRepo, categoryRepo, hub)
	quizService := service.NewQuizService(questionRepo)

	// Health checks
	deps := map[string]handler.Pinger{"postgres": handler.PingFunc(pool.Ping)}
	if redisClient != nil {
		deps["redis"] = handler.PingFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	}

	e := handler.NewServer(handler.ServerOptions{
		CORSOrigins: cfg.CORSOrigins,
		Limiter:     limiter,
		Logger:      logger,
	},
		handler.NewCategoryHandler(triviaService),
		handler.NewQuestionHandler(triviaService),
		handler.NewQuizHandler(quizService),
		handler.NewWebSocketHandler(hub),
		handler.NewHealthHandler(deps),
	)

	// Start server
	go func() {
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		e.Logger.Fatal(err)
	}
}
