package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/streadway/amqp"
)

const mailQueue = "heaven-palace.mail"

// AMQPMailer hands emails to a worker through a durable queue instead of
// sending them inline.
type AMQPMailer struct {
	mu    sync.Mutex
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
}

func NewAMQPMailer(url string) (*AMQPMailer, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}
	if _, err := ch.QueueDeclare(mailQueue, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue %s: %w", mailQueue, err)
	}
	log.Printf("AMQP mail queue '%s' declared", mailQueue)
	return &AMQPMailer{conn: conn, ch: ch, queue: mailQueue}, nil
}

func (m *AMQPMailer) Send(ctx context.Context, msg Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode email: %w", err)
	}

	// amqp channels are not safe for concurrent publishing
	m.mu.Lock()
	defer m.mu.Unlock()
	err = m.ch.Publish("", m.queue, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish email to %s: %w", m.queue, err)
	}
	return nil
}

// Sender is the downstream driver a mail worker delivers through.
type Sender interface {
	Send(ctx context.Context, msg Email) error
}

// HandleMailDelivery sends one queued email and settles the delivery.
// Undecodable messages are dropped. A failed send is requeued once, then
// dropped so a bad address cannot loop forever.
func HandleMailDelivery(ctx context.Context, d amqp.Delivery, out Sender) error {
	var msg Email
	if err := json.Unmarshal(d.Body, &msg); err != nil {
		log.Printf("mail worker: undecodable message %d dropped: %v", d.DeliveryTag, err)
		return d.Nack(false, false)
	}
	if err := out.Send(ctx, msg); err != nil {
		requeue := !d.Redelivered
		log.Printf("mail worker: send to %s failed (requeue=%t): %v", msg.To, requeue, err)
		return d.Nack(false, requeue)
	}
	return d.Ack(false)
}

// Consume drains the mail queue into out until ctx is cancelled or the
// channel closes. It runs on its own channel so publishing is unaffected.
func (m *AMQPMailer) Consume(ctx context.Context, out Sender) error {
	ch, err := m.conn.Channel()
	if err != nil {
		return fmt.Errorf("amqp consumer channel: %w", err)
	}
	defer ch.Close()

	if err := ch.Qos(1, 0, false); err != nil {
		return fmt.Errorf("set qos on %s: %w", m.queue, err)
	}
	consumerTag := fmt.Sprintf("mail-worker-%d", time.Now().UnixNano())
	msgs, err := ch.Consume(m.queue, consumerTag, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", m.queue, err)
	}
	log.Printf("Mail worker '%s' consuming '%s'", consumerTag, m.queue)

	closed := ch.NotifyClose(make(chan *amqp.Error, 1))
	for {
		select {
		case <-ctx.Done():
			if err := ch.Cancel(consumerTag, false); err != nil {
				log.Printf("cancel mail worker %s: %v", consumerTag, err)
			}
			return nil
		case cerr, ok := <-closed:
			if ok && cerr != nil {
				return fmt.Errorf("mail worker channel closed: %w", cerr)
			}
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			if err := HandleMailDelivery(ctx, d, out); err != nil {
				log.Printf("mail worker: settle delivery %d: %v", d.DeliveryTag, err)
			}
		}
	}
}

func (m *AMQPMailer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ch != nil {
		m.ch.Close()
	}
	return m.conn.Close()
}
