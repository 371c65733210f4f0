package messaging

import (
	"context"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Decision - что сделать с сообщением после обработки.
type Decision int

const (
	// Ack - сообщение обработано, повтор не нужен.
	Ack Decision = iota
	// Requeue - временная ошибка, сообщение вернется в очередь.
	Requeue
	// Discard - битое сообщение, в очередь не возвращается.
	Discard
)

func (d Decision) String() string {
	switch d {
	case Ack:
		return "ack"
	case Requeue:
		return "requeue"
	case Discard:
		return "discard"
	default:
		return fmt.Sprintf("decision(%d)", int(d))
	}
}

// DeliveryHandler обрабатывает тело одного сообщения.
type DeliveryHandler interface {
	Handle(ctx context.Context, body []byte, redelivered bool) Decision
}

// ErrDeliveriesClosed - брокер закрыл канал доставки.
var ErrDeliveriesClosed = errors.New("rabbitmq deliveries channel closed")

// Consumer читает очередь по одному сообщению (QoS 1) и передает их обработчику.
type Consumer struct {
	conn    *amqp.Connection
	queue   string
	tag     string
	handler DeliveryHandler
	logger  *zap.Logger
}

func NewConsumer(conn *amqp.Connection, queue string, handler DeliveryHandler, logger *zap.Logger) *Consumer {
	return &Consumer{
		conn:    conn,
		queue:   queue,
		tag:     fmt.Sprintf("%s-consumer-%d", queue, time.Now().UnixNano()),
		handler: handler,
		logger:  logger.Named("Consumer").With(zap.String("queue", queue)),
	}
}

// Run блокируется до отмены ctx или закрытия канала доставки.
func (c *Consumer) Run(ctx context.Context) error {
	ch, err := c.conn.Channel()
	if err != nil {
		return fmt.Errorf("ошибка открытия канала для консьюмера: %w", err)
	}
	defer ch.Close()

	if err := declareQueue(ch, c.queue); err != nil {
		return err
	}
	if err := ch.Qos(1, 0, false); err != nil {
		return fmt.Errorf("ошибка установки QoS: %w", err)
	}

	msgs, err := ch.Consume(
		c.queue,
		c.tag,
		false, // autoAck
		false, // exclusive
		false, // noLocal
		false, // noWait
		nil,
	)
	if err != nil {
		return fmt.Errorf("ошибка регистрации консьюмера '%s': %w", c.queue, err)
	}

	c.logger.Info("Consumer started, waiting for messages")
	for {
		select {
		case <-ctx.Done():
			c.logger.Info("Context cancelled, stopping consumer")
			return nil
		case msg, ok := <-msgs:
			if !ok {
				c.logger.Warn("Канал сообщений RabbitMQ закрыт")
				return ErrDeliveriesClosed
			}
			decision := c.handler.Handle(ctx, msg.Body, msg.Redelivered)
			if err := Settle(msg, decision); err != nil {
				c.logger.Error("Failed to settle message",
					zap.Uint64("delivery_tag", msg.DeliveryTag),
					zap.Stringer("decision", decision),
					zap.Error(err),
				)
			}
		}
	}
}

// Settle подтверждает или отклоняет доставку согласно решению.
func Settle(msg amqp.Delivery, decision Decision) error {
	switch decision {
	case Requeue:
		return msg.Nack(false, true)
	case Discard:
		return msg.Nack(false, false)
	default:
		return msg.Ack(false)
	}
}
