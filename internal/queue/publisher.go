package queue

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/Tufan17/timhoty-backend-sub004/pkg/config"
)

// Queue names. Durable, so messages survive broker restarts.
const (
	QueueReservationConfirmed = "reservation.confirmed"
	QueueNotificationCreated  = "notification.created"
)

// Publisher publishes domain events to RabbitMQ. A nil Publisher (queue
// disabled or broker unreachable at startup) is safe to call; publishes
// become no-ops so the request flow is never interrupted by the broker.
type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *zap.Logger
}

// NewPublisher dials the broker and declares the queues. Returns nil when
// the queue is disabled or the broker cannot be reached; callers degrade
// gracefully.
func NewPublisher(cfg *config.QueueConfig, logger *zap.Logger) *Publisher {
	if cfg == nil || !cfg.Enabled {
		return nil
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		logger.Warn("rabbitmq: dial failed, events disabled", zap.Error(err))
		return nil
	}

	ch, err := conn.Channel()
	if err != nil {
		logger.Warn("rabbitmq: channel open failed, events disabled", zap.Error(err))
		_ = conn.Close()
		return nil
	}

	for _, name := range []string{QueueReservationConfirmed, QueueNotificationCreated} {
		if _, err := ch.QueueDeclare(
			name,
			true,  // durable
			false, // autoDelete
			false, // exclusive
			false, // noWait
			nil,   // args
		); err != nil {
			logger.Warn("rabbitmq: queue declare failed, events disabled",
				zap.String("queue", name), zap.Error(err))
			_ = ch.Close()
			_ = conn.Close()
			return nil
		}
	}

	return &Publisher{conn: conn, channel: ch, logger: logger}
}

// Close releases the channel and connection.
func (p *Publisher) Close() {
	if p == nil {
		return
	}
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

// PublishReservationConfirmed publishes a ReservationConfirmedEvent.
// Errors are logged and returned so the caller can ignore them without
// interrupting the main request flow.
func (p *Publisher) PublishReservationConfirmed(ctx context.Context, event ReservationConfirmedEvent) error {
	return p.publish(ctx, QueueReservationConfirmed, event)
}

// PublishNotificationCreated publishes a NotificationCreatedEvent.
func (p *Publisher) PublishNotificationCreated(ctx context.Context, event NotificationCreatedEvent) error {
	return p.publish(ctx, QueueNotificationCreated, event)
}

func (p *Publisher) publish(ctx context.Context, queueName string, event interface{}) error {
	if p == nil {
		return nil
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("rabbitmq: marshal event failed",
			zap.String("queue", queueName), zap.Error(err))
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // store on disk
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := p.channel.PublishWithContext(ctx,
		"",        // default exchange
		queueName, // routing key = queue name
		false,     // mandatory
		false,     // immediate
		pub,
	); err != nil {
		p.logger.Error("rabbitmq: publish failed",
			zap.String("queue", queueName), zap.Error(err))
		return err
	}

	return nil
}
