//go:build integration

package messaging_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/rabbitmq"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/SxxMWolf/ReMadeBE/internal/domain"
	"github.com/SxxMWolf/ReMadeBE/internal/messaging"
)

type delivery struct {
	body        []byte
	redelivered bool
}

// scriptedHandler записывает доставки и отвечает решением от decide.
type scriptedHandler struct {
	calls  chan delivery
	decide func(redelivered bool) messaging.Decision
}

func (h *scriptedHandler) Handle(_ context.Context, body []byte, redelivered bool) messaging.Decision {
	h.calls <- delivery{body: body, redelivered: redelivered}
	return h.decide(redelivered)
}

// MessagingSuite гоняет публикацию и потребление через живой RabbitMQ.
type MessagingSuite struct {
	suite.Suite
	rmqContainer *rabbitmq.RabbitMQContainer
	conn         *amqp.Connection
}

func (s *MessagingSuite) SetupSuite() {
	ctx := context.Background()

	rmqContainer, err := rabbitmq.Run(ctx,
		"rabbitmq:3-management-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Server startup complete").WithStartupTimeout(3*time.Minute),
		),
	)
	s.Require().NoError(err)
	s.rmqContainer = rmqContainer

	url, err := rmqContainer.AmqpURL(ctx)
	s.Require().NoError(err)
	s.conn, err = messaging.Connect(ctx, url, zap.NewNop(), 5, time.Second)
	s.Require().NoError(err)
}

func (s *MessagingSuite) TearDownSuite() {
	if s.conn != nil {
		_ = s.conn.Close()
	}
	if s.rmqContainer != nil {
		s.NoError(s.rmqContainer.Terminate(context.Background()))
	}
}

func (s *MessagingSuite) newQueue() string {
	return "test_image_tasks_" + uuid.NewString()
}

func (s *MessagingSuite) publishTask(queue, taskID string) {
	publisher, err := messaging.NewQueuePublisher(s.conn, queue, zap.NewNop())
	s.Require().NoError(err)
	defer publisher.Close()

	payload := messaging.ImageTaskPayload{
		TaskID:     taskID,
		Request:    domain.PromptRequest{Title: "Cats", Genre: "musical"},
		BasePrompt: "A stage under blue light.",
	}
	s.Require().NoError(publisher.Publish(context.Background(), payload, taskID))
}

func (s *MessagingSuite) queueDepth(queue string) int {
	ch, err := s.conn.Channel()
	s.Require().NoError(err)
	defer ch.Close()
	q, err := ch.QueueDeclarePassive(queue, true, false, false, false, amqp.Table{"x-queue-mode": "lazy"})
	s.Require().NoError(err)
	return q.Messages
}

// runConsumer запускает Consumer и возвращает функцию остановки, которая ждет завершения Run.
func (s *MessagingSuite) runConsumer(queue string, h messaging.DeliveryHandler) func() {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- messaging.NewConsumer(s.conn, queue, h, zap.NewNop()).Run(ctx)
	}()
	return func() {
		cancel()
		select {
		case err := <-done:
			s.NoError(err)
		case <-time.After(10 * time.Second):
			s.Fail("consumer did not stop")
		}
	}
}

func (s *MessagingSuite) nextDelivery(h *scriptedHandler) delivery {
	select {
	case d := <-h.calls:
		return d
	case <-time.After(15 * time.Second):
		s.FailNow("no delivery received")
		return delivery{}
	}
}

func (s *MessagingSuite) TestPublish_PersistentJSON() {
	queue := s.newQueue()
	s.publishTask(queue, "task-1")

	ch, err := s.conn.Channel()
	s.Require().NoError(err)
	defer ch.Close()

	msg, ok, err := ch.Get(queue, true)
	s.Require().NoError(err)
	s.Require().True(ok)
	s.Equal(uint8(amqp.Persistent), msg.DeliveryMode)
	s.Equal("application/json", msg.ContentType)
	s.Equal("task-1", msg.CorrelationId)

	var payload messaging.ImageTaskPayload
	s.Require().NoError(json.Unmarshal(msg.Body, &payload))
	s.Equal("task-1", payload.TaskID)
	s.Equal("Cats", payload.Request.Title)
	s.Equal("A stage under blue light.", payload.BasePrompt)
}

func (s *MessagingSuite) TestConsume_RequeueOnceThenAck() {
	queue := s.newQueue()
	s.publishTask(queue, "task-2")

	h := &scriptedHandler{
		calls: make(chan delivery, 4),
		decide: func(redelivered bool) messaging.Decision {
			if redelivered {
				return messaging.Ack
			}
			return messaging.Requeue
		},
	}
	stop := s.runConsumer(queue, h)

	first := s.nextDelivery(h)
	s.False(first.redelivered)
	second := s.nextDelivery(h)
	s.True(second.redelivered)
	s.JSONEq(string(first.body), string(second.body))

	stop()
	s.Empty(h.calls)
	s.Eventually(func() bool { return s.queueDepth(queue) == 0 }, 5*time.Second, 100*time.Millisecond)
}

func (s *MessagingSuite) TestConsume_DiscardDropsMessage() {
	queue := s.newQueue()
	s.publishTask(queue, "task-3")

	h := &scriptedHandler{
		calls:  make(chan delivery, 4),
		decide: func(bool) messaging.Decision { return messaging.Discard },
	}
	stop := s.runConsumer(queue, h)

	d := s.nextDelivery(h)
	s.False(d.redelivered)

	// повторной доставки быть не должно
	select {
	case extra := <-h.calls:
		s.Failf("unexpected redelivery", "redelivered=%t", extra.redelivered)
	case <-time.After(time.Second):
	}
	stop()
	s.Eventually(func() bool { return s.queueDepth(queue) == 0 }, 5*time.Second, 100*time.Millisecond)
}

func TestMessagingSuite(t *testing.T) {
	suite.Run(t, new(MessagingSuite))
}
