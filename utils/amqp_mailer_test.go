package utils

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type settled struct {
	acked    bool
	nacked   bool
	requeued bool
}

func (s *settled) Ack(uint64, bool) error { s.acked = true; return nil }
func (s *settled) Nack(_ uint64, _ bool, requeue bool) error {
	s.nacked, s.requeued = true, requeue
	return nil
}
func (s *settled) Reject(_ uint64, requeue bool) error { return s.Nack(0, false, requeue) }

type recordingSender struct {
	sent []Email
	err  error
}

func (r *recordingSender) Send(_ context.Context, msg Email) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, msg)
	return nil
}

func delivery(t *testing.T, ack amqp.Acknowledger, msg any, redelivered bool) amqp.Delivery {
	t.Helper()
	body, err := json.Marshal(msg)
	require.NoError(t, err)
	return amqp.Delivery{Acknowledger: ack, DeliveryTag: 7, Body: body, Redelivered: redelivered}
}

func TestHandleMailDelivery_SendsAndAcks(t *testing.T) {
	ack := &settled{}
	out := &recordingSender{}
	msg := Email{To: "nimal@example.com", Subject: "Booking Confirmation #HP-1A2B3C4D", HTML: "<p>hi</p>"}

	require.NoError(t, HandleMailDelivery(context.Background(), delivery(t, ack, msg, false), out))

	assert.True(t, ack.acked)
	assert.False(t, ack.nacked)
	require.Len(t, out.sent, 1)
	assert.Equal(t, msg, out.sent[0])
}

func TestHandleMailDelivery_RequeuesFirstFailureOnly(t *testing.T) {
	out := &recordingSender{err: errors.New("smtp: 421 try later")}
	msg := Email{To: "nimal@example.com", Subject: "s", HTML: "b"}

	first := &settled{}
	require.NoError(t, HandleMailDelivery(context.Background(), delivery(t, first, msg, false), out))
	assert.True(t, first.nacked)
	assert.True(t, first.requeued)

	again := &settled{}
	require.NoError(t, HandleMailDelivery(context.Background(), delivery(t, again, msg, true), out))
	assert.True(t, again.nacked)
	assert.False(t, again.requeued)
	assert.False(t, again.acked)
}

func TestHandleMailDelivery_DropsGarbage(t *testing.T) {
	ack := &settled{}
	out := &recordingSender{}
	d := amqp.Delivery{Acknowledger: ack, DeliveryTag: 9, Body: []byte("not json")}

	require.NoError(t, HandleMailDelivery(context.Background(), d, out))
	assert.True(t, ack.nacked)
	assert.False(t, ack.requeued)
	assert.Empty(t, out.sent)
}
