package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	announcementsdomain "swipe-go/internal/domain/announcements"
	"swipe-go/pkg/logger"
)

const (
	RoutingKeyModerated = "announcement.moderated"
	publishTimeout      = 10 * time.Second
)

// Publisher sends announcement events to a durable topic exchange.
type Publisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	log      logger.Logger
}

func NewPublisher(url, exchange string, log logger.Logger) (*Publisher, error) {
	if exchange == "" {
		return nil, fmt.Errorf("rabbitmq: exchange name is required")
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq: failed to dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq: failed to open a channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq: failed to declare exchange %q: %w", exchange, err)
	}

	log.Info("rabbitmq: publisher ready", "exchange", exchange)
	return &Publisher{conn: conn, channel: ch, exchange: exchange, log: log}, nil
}

func (p *Publisher) PublishModerated(ctx context.Context, event announcementsdomain.ModeratedEvent) error {
	msg, err := moderatedMessage(event)
	if err != nil {
		return err
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.channel == nil || p.conn.IsClosed() {
		return fmt.Errorf("rabbitmq: publisher is not connected")
	}
	if err := p.channel.PublishWithContext(publishCtx, p.exchange, RoutingKeyModerated, false, false, msg); err != nil {
		return fmt.Errorf("rabbitmq: failed to publish announcement %d: %w", event.AnnouncementID, err)
	}

	p.log.Debug("rabbitmq: moderation event published", "announcement_id", event.AnnouncementID, "moder_status", event.ModerStatus)
	return nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			firstErr = err
		}
		p.channel = nil
	}
	if p.conn != nil && !p.conn.IsClosed() {
		if err := p.conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func moderatedMessage(event announcementsdomain.ModeratedEvent) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("rabbitmq: failed to marshal event for announcement %d: %w", event.AnnouncementID, err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.OccurredAt,
		Type:         RoutingKeyModerated,
		Headers: amqp.Table{
			"announcement_id": strconv.FormatInt(event.AnnouncementID, 10),
		},
	}, nil
}
