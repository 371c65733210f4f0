package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Publisher отправляет JSON-сообщения в одну очередь.
type Publisher interface {
	Publish(ctx context.Context, payload any, correlationID string) error
	Close() error
}

var _ Publisher = (*QueuePublisher)(nil)

// QueuePublisher публикует в очередь через default exchange.
type QueuePublisher struct {
	ch     *amqp.Channel
	queue  string
	logger *zap.Logger
	mu     sync.Mutex
}

// NewQueuePublisher открывает канал и объявляет очередь.
func NewQueuePublisher(conn *amqp.Connection, queue string, logger *zap.Logger) (*QueuePublisher, error) {
	if conn == nil {
		return nil, errors.New("rabbitmq connection is nil")
	}
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open channel for publisher: %w", err)
	}
	if err := declareQueue(ch, queue); err != nil {
		_ = ch.Close()
		return nil, err
	}
	return &QueuePublisher{
		ch:     ch,
		queue:  queue,
		logger: logger.Named("QueuePublisher").With(zap.String("queue", queue)),
	}, nil
}

func (p *QueuePublisher) Publish(ctx context.Context, payload any, correlationID string) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch == nil {
		return errors.New("publisher channel is closed")
	}

	err = p.ch.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key = имя очереди
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:   "application/json",
			CorrelationId: correlationID,
			DeliveryMode:  amqp.Persistent,
			Timestamp:     time.Now(),
			Body:          body,
		},
	)
	if err != nil {
		p.logger.Error("Failed to publish message", zap.String("correlation_id", correlationID), zap.Error(err))
		return fmt.Errorf("failed to publish message: %w", err)
	}
	p.logger.Debug("Message published", zap.String("correlation_id", correlationID))
	return nil
}

func (p *QueuePublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch == nil {
		return nil
	}
	err := p.ch.Close()
	p.ch = nil
	return err
}
