package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// EventPublisher publishes sighting events.  Implementations must be safe
// for concurrent use.
type EventPublisher interface {
	PublishSightingReported(ctx context.Context, ev SightingReportedEvent) error
}

// NopPublisher drops every event.  It is used when events are disabled.
type NopPublisher struct{}

// PublishSightingReported does nothing.
func (NopPublisher) PublishSightingReported(context.Context, SightingReportedEvent) error { return nil }

// Publisher sends events to RabbitMQ.  Each publish opens its own
// connection, so a broker outage never leaves a broken channel behind.
type Publisher struct {
	url         string
	dialTimeout time.Duration
	log         *zap.Logger
}

// NewPublisher returns a Publisher for the broker at url.
func NewPublisher(url string, log *zap.Logger) *Publisher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Publisher{url: url, dialTimeout: 2 * time.Second, log: log}
}

// PublishSightingReported publishes ev as a persistent JSON message to the
// sighting.reported queue.  Failures are returned, not logged; the caller
// decides how loudly to report them.
func (p *Publisher) PublishSightingReported(ctx context.Context, ev SightingReportedEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal sighting event: %w", err)
	}
	if err := p.publish(ctx, SightingReportedQueue, body); err != nil {
		return fmt.Errorf("publish sighting event %d: %w", ev.SightingID, err)
	}
	p.log.Debug("sighting event published", zap.Int64("sighting_id", ev.SightingID))
	return nil
}

func (p *Publisher) publish(ctx context.Context, queue string, body []byte) error {
	conn, err := amqp.DialConfig(p.url, amqp.Config{Dial: amqp.DefaultDial(p.dialTimeout)})
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer func() { _ = ch.Close() }()

	// durable so messages survive broker restarts
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return err
	}

	return ch.PublishWithContext(ctx, "", queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
}
