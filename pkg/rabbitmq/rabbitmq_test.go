package rabbitmq

import (
	"fmt"
	"testing"

	amqp "github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
)

// fakeAcknowledger records the acknowledgement decision for a delivery.
type fakeAcknowledger struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (a *fakeAcknowledger) Ack(tag uint64, multiple bool) error {
	a.acked = true
	return nil
}

func (a *fakeAcknowledger) Nack(tag uint64, multiple bool, requeue bool) error {
	a.nacked = true
	a.requeue = requeue
	return nil
}

func (a *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	a.nacked = true
	a.requeue = requeue
	return nil
}

func TestDispatchAcksOnSuccess(t *testing.T) {
	ack := &fakeAcknowledger{}
	dispatch(func(msg amqp.Delivery) error { return nil }, amqp.Delivery{Acknowledger: ack})

	assert.True(t, ack.acked)
	assert.False(t, ack.nacked)
}

func TestDispatchRequeuesFirstFailure(t *testing.T) {
	ack := &fakeAcknowledger{}
	handler := func(msg amqp.Delivery) error { return fmt.Errorf("handler failed") }
	dispatch(handler, amqp.Delivery{Acknowledger: ack})

	assert.True(t, ack.nacked)
	assert.True(t, ack.requeue)
}

func TestDispatchDropsRedeliveredFailure(t *testing.T) {
	ack := &fakeAcknowledger{}
	handler := func(msg amqp.Delivery) error { return fmt.Errorf("handler failed") }
	dispatch(handler, amqp.Delivery{Acknowledger: ack, Redelivered: true})

	assert.True(t, ack.nacked)
	assert.False(t, ack.requeue, "a redelivered failure must not requeue")
}
