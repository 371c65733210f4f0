package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Options - адрес и учетные данные Redis.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// Connect создает клиента и ждет успешного PING, повторяя попытки с паузой delay.
func Connect(ctx context.Context, opts Options, logger *zap.Logger, attempts int, delay time.Duration) (*redis.Client, error) {
	if attempts < 1 {
		attempts = 1
	}
	logger.Info("Attempting to connect and ping Redis",
		zap.String("address", opts.Addr),
		zap.Int("db", opts.DB),
		zap.Int("max_retries", attempts),
	)

	var lastErr error
	for i := 1; i <= attempts; i++ {
		client := redis.NewClient(&redis.Options{Addr: opts.Addr, Password: opts.Password, DB: opts.DB})

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := client.Ping(pingCtx).Err()
		cancel()
		if err == nil {
			logger.Info("Successfully connected and pinged Redis", zap.Int("attempt", i))
			return client, nil
		}

		_ = client.Close()
		lastErr = err
		logger.Warn("Redis ping failed, retrying...", zap.Int("attempt", i), zap.Error(err))
		if i == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
	return nil, fmt.Errorf("failed to connect to redis after %d attempts: %w", attempts, lastErr)
}
