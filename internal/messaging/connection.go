package messaging

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Connect подключается к RabbitMQ, повторяя попытки с паузой delay.
func Connect(ctx context.Context, url string, logger *zap.Logger, attempts int, delay time.Duration) (*amqp.Connection, error) {
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for i := 1; i <= attempts; i++ {
		conn, err := amqp.Dial(url)
		if err == nil {
			logger.Info("RabbitMQ connected", zap.Int("attempt", i))
			return conn, nil
		}
		lastErr = err
		logger.Warn("Не удалось подключиться к RabbitMQ",
			zap.Int("attempt", i),
			zap.Int("max_attempts", attempts),
			zap.Duration("retry_delay", delay),
			zap.Error(err),
		)
		if i == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
	return nil, fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w", attempts, lastErr)
}

// declareQueue объявляет durable очередь с ленивым хранением.
func declareQueue(ch *amqp.Channel, name string) error {
	_, err := ch.QueueDeclare(
		name,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		amqp.Table{"x-queue-mode": "lazy"},
	)
	if err != nil {
		return fmt.Errorf("ошибка объявления очереди '%s': %w", name, err)
	}
	return nil
}
