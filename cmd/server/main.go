package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"

	"github.com/SxxMWolf/ReMadeBE/internal/config"
	"github.com/SxxMWolf/ReMadeBE/internal/handler"
	"github.com/SxxMWolf/ReMadeBE/internal/messaging"
	"github.com/SxxMWolf/ReMadeBE/internal/prompt"
	"github.com/SxxMWolf/ReMadeBE/internal/repository"
	"github.com/SxxMWolf/ReMadeBE/internal/service"
	"github.com/SxxMWolf/ReMadeBE/pkg/ai"
	"github.com/SxxMWolf/ReMadeBE/pkg/cache"
	"github.com/SxxMWolf/ReMadeBE/pkg/database"
	sharedLogger "github.com/SxxMWolf/ReMadeBE/shared/logger"
	sharedMiddleware "github.com/SxxMWolf/ReMadeBE/shared/middleware"
	"github.com/SxxMWolf/ReMadeBE/shared/models"
)

const (
	connectAttempts = 10
	connectDelay    = 3 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := sharedLogger.New(cfg.Logger)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)
	cfg.LogSummary(logger)

	// --- Внешние подключения ---
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	dbPool, err := database.Connect(ctx, cfg.Database, logger, connectAttempts, connectDelay)
	if err != nil {
		logger.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer dbPool.Close()

	redisClient, err := cache.Connect(ctx, cache.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB}, logger, connectAttempts, connectDelay)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	mqConn, err := messaging.Connect(ctx, cfg.RabbitMQURL, logger, connectAttempts, connectDelay)
	if err != nil {
		logger.Fatal("Failed to connect to RabbitMQ", zap.Error(err))
	}
	defer mqConn.Close()

	taskPublisher, err := messaging.NewQueuePublisher(mqConn, messaging.ImageTaskQueueName, logger)
	if err != nil {
		logger.Fatal("Failed to create task publisher", zap.Error(err))
	}
	defer taskPublisher.Close()

	// --- Зависимости ---
	aiClient, err := ai.NewClient(cfg.AI.ClientConfig(), logger)
	if err != nil {
		logger.Fatal("Failed to create AI client", zap.Error(err))
	}

	works := repository.NewCachedWorkRepository(
		repository.NewPgWorkRepository(dbPool, logger),
		redisClient, cfg.Redis.KBCacheTTL, logger,
	)
	tasks := repository.NewRedisTaskResultStore(redisClient, cfg.Redis.TaskResultTTL, logger)

	resolver := service.NewResolver(works, logger)
	extractor := service.NewExtractor(aiClient, logger)
	prompts := service.NewPromptService(
		resolver,
		extractor,
		service.NewCompressor(aiClient, logger),
		prompt.DefaultVocabulary(),
		cfg.PromptMaxChars,
		logger,
	)
	organizer := service.NewOrganizer(resolver, extractor, logger)
	summarizer := service.NewSummarizer(aiClient, logger)

	h := handler.NewHandler(prompts, organizer, summarizer, tasks, taskPublisher, logger)

	// --- HTTP ---
	gin.SetMode(gin.ReleaseMode)
	if cfg.Env == "development" {
		gin.SetMode(gin.DebugMode)
	}

	router := newRouter(cfg, h, ginprometheus.NewPrometheus("gin"), logger,
		newRateLimiter(redisClient, cfg.RateLimitPerMinute, logger))

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting HTTP server", zap.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP Server listen error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP Server forced to shutdown", zap.Error(err))
	}
	logger.Info("Server exiting")
}

type routeRegistrar interface {
	RegisterRoutes(router *gin.Engine, llm ...gin.HandlerFunc)
}

// newRouter собирает gin. Prometheus подключается до маршрутов,
// иначе его middleware не попадает в их цепочки.
func newRouter(cfg *config.Config, routes routeRegistrar, p *ginprometheus.Prometheus, logger *zap.Logger, llm ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(sharedMiddleware.RequestID())
	router.Use(sharedMiddleware.GinZapLogger(logger))
	router.Use(gin.Recovery())
	router.Use(cors.New(corsConfig(cfg.CORSAllowedOrigins)))
	p.Use(router)
	routes.RegisterRoutes(router, llm...)
	return router
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
		c.AllowCredentials = true
	}
	c.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	c.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", sharedMiddleware.RequestIDHeader}
	c.ExposeHeaders = []string{sharedMiddleware.RequestIDHeader}
	c.MaxAge = 12 * time.Hour
	return c
}

// newRateLimiter ограничивает эндпоинты, вызывающие модель, по IP клиента.
func newRateLimiter(client *redis.Client, perMinute uint, logger *zap.Logger) gin.HandlerFunc {
	if perMinute == 0 {
		perMinute = 30
	}
	store := ratelimit.RedisStore(&ratelimit.RedisOptions{
		RedisClient: client,
		Rate:        time.Minute,
		Limit:       perMinute,
	})
	return ratelimit.RateLimiter(store, &ratelimit.Options{
		ErrorHandler: func(c *gin.Context, info ratelimit.Info) {
			logger.Warn("Rate limit exceeded",
				zap.String("clientIP", c.ClientIP()),
				zap.Time("resetTime", info.ResetTime),
				zap.String("path", c.Request.URL.Path),
			)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ErrorResponse{
				Code:      models.CodeRateLimited,
				Message:   "Too many requests. Try again in " + time.Until(info.ResetTime).Round(time.Second).String(),
				Retryable: true,
			})
		},
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	})
}
