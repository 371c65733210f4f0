package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/SxxMWolf/ReMadeBE/internal/config"
	"github.com/SxxMWolf/ReMadeBE/internal/messaging"
	"github.com/SxxMWolf/ReMadeBE/internal/prompt"
	"github.com/SxxMWolf/ReMadeBE/internal/repository"
	"github.com/SxxMWolf/ReMadeBE/internal/service"
	"github.com/SxxMWolf/ReMadeBE/internal/worker"
	"github.com/SxxMWolf/ReMadeBE/pkg/ai"
	"github.com/SxxMWolf/ReMadeBE/pkg/cache"
	"github.com/SxxMWolf/ReMadeBE/pkg/database"
	sharedLogger "github.com/SxxMWolf/ReMadeBE/shared/logger"
)

const (
	connectAttempts = 10
	connectDelay    = 3 * time.Second
	// reconnectDelay - пауза перед повторным запуском консьюмера после разрыва.
	reconnectDelay = 5 * time.Second
)

func main() {
	cfg, err := config.LoadWorker()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := sharedLogger.New(cfg.Logger())
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	cfg.LogSummary(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.Connect(ctx, cfg.Database(), logger, connectAttempts, connectDelay)
	if err != nil {
		logger.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer dbPool.Close()

	redisClient, err := cache.Connect(ctx, cache.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB}, logger, connectAttempts, connectDelay)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	aiClient, err := ai.NewClient(cfg.ClientConfig(), logger)
	if err != nil {
		logger.Fatal("Failed to create AI client", zap.Error(err))
	}
	imageClient, err := ai.NewImageClient(cfg.ClientConfig())
	if err != nil {
		logger.Fatal("Failed to create image client", zap.Error(err))
	}

	works := repository.NewCachedWorkRepository(
		repository.NewPgWorkRepository(dbPool, logger),
		redisClient, cfg.KBCacheTTL, logger,
	)
	prompts := service.NewPromptService(
		service.NewResolver(works, logger),
		service.NewExtractor(aiClient, logger),
		service.NewCompressor(aiClient, logger),
		prompt.DefaultVocabulary(),
		cfg.PromptMaxChars,
		logger,
	)
	images := service.NewImageService(imageClient, cfg.ImageConfig().ServiceConfig(), logger)
	results := repository.NewRedisTaskResultStore(redisClient, cfg.TaskResultTTL, logger)

	metricsSrv := &http.Server{Addr: ":" + cfg.MetricsPort, Handler: metricsMux()}
	go func() {
		logger.Info("Starting metrics server", zap.String("port", cfg.MetricsPort))
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server error", zap.Error(err))
		}
	}()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		consumeLoop(ctx, cfg.RabbitMQURL, prompts, images, results, logger)
	}()

	logger.Info("Image worker started")
	<-ctx.Done()
	logger.Info("Shutting down image worker...")

	wg.Wait()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Metrics server forced to shutdown", zap.Error(err))
	}
	logger.Info("Image worker shut down gracefully")
}

func metricsMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

// consumeLoop держит соединение с RabbitMQ и перезапускает консьюмера после разрыва.
func consumeLoop(
	ctx context.Context,
	url string,
	prompts worker.PromptGenerator,
	images worker.ImageGenerator,
	results repository.TaskResultStore,
	logger *zap.Logger,
) {
	for {
		if err := consumeOnce(ctx, url, prompts, images, results, logger); err != nil {
			logger.Error("Consumer stopped", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectDelay):
			logger.Info("Restarting RabbitMQ consumer")
		}
	}
}

func consumeOnce(
	ctx context.Context,
	url string,
	prompts worker.PromptGenerator,
	images worker.ImageGenerator,
	results repository.TaskResultStore,
	logger *zap.Logger,
) error {
	conn, err := messaging.Connect(ctx, url, logger, connectAttempts, connectDelay)
	if err != nil {
		return err
	}
	defer conn.Close()

	publisher, err := messaging.NewQueuePublisher(conn, messaging.ImageResultQueueName, logger)
	if err != nil {
		return err
	}
	defer publisher.Close()

	handler := worker.NewHandler(prompts, images, results, publisher, logger)
	return messaging.NewConsumer(conn, messaging.ImageTaskQueueName, handler, logger).Run(ctx)
}
