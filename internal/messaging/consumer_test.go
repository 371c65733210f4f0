package messaging_test

import (
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SxxMWolf/ReMadeBE/internal/messaging"
)

type recordingAcknowledger struct {
	acked   []uint64
	nacked  []uint64
	requeue []bool
}

func (a *recordingAcknowledger) Ack(tag uint64, _ bool) error {
	a.acked = append(a.acked, tag)
	return nil
}

func (a *recordingAcknowledger) Nack(tag uint64, _ bool, requeue bool) error {
	a.nacked = append(a.nacked, tag)
	a.requeue = append(a.requeue, requeue)
	return nil
}

func (a *recordingAcknowledger) Reject(tag uint64, requeue bool) error {
	return a.Nack(tag, false, requeue)
}

func TestSettle(t *testing.T) {
	ack := &recordingAcknowledger{}
	delivery := func(tag uint64) amqp.Delivery {
		return amqp.Delivery{Acknowledger: ack, DeliveryTag: tag}
	}

	require.NoError(t, messaging.Settle(delivery(1), messaging.Ack))
	require.NoError(t, messaging.Settle(delivery(2), messaging.Requeue))
	require.NoError(t, messaging.Settle(delivery(3), messaging.Discard))

	assert.Equal(t, []uint64{1}, ack.acked)
	assert.Equal(t, []uint64{2, 3}, ack.nacked)
	assert.Equal(t, []bool{true, false}, ack.requeue)
}

func TestDecisionString(t *testing.T) {
	assert.Equal(t, "ack", messaging.Ack.String())
	assert.Equal(t, "requeue", messaging.Requeue.String())
	assert.Equal(t, "discard", messaging.Discard.String())
	assert.Equal(t, "decision(7)", messaging.Decision(7).String())
}
