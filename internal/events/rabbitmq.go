package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/timmy/dailyreel/internal/logger"
)

// RabbitMQConfig holds broker settings.
type RabbitMQConfig struct {
	URL        string
	Exchange   string
	RoutingKey string
}

// RabbitMQPublisher publishes run events as JSON to a durable topic exchange.
type RabbitMQPublisher struct {
	conn       *amqp.Connection
	exchange   string
	routingKey string
	mu         sync.Mutex
}

// NewRabbitMQPublisher dials the broker and declares the exchange.
// Parameters:
//   - cfg: broker URL, exchange and routing key.
//
// Returns:
//   - *RabbitMQPublisher: connected publisher.
//   - error: non-nil if the connection or declaration fails.
func NewRabbitMQPublisher(cfg RabbitMQConfig) (*RabbitMQPublisher, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(
		cfg.Exchange,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", cfg.Exchange, err)
	}

	logger.Info("Connected to RabbitMQ exchange %s", cfg.Exchange)
	return &RabbitMQPublisher{
		conn:       conn,
		exchange:   cfg.Exchange,
		routingKey: cfg.RoutingKey,
	}, nil
}

// PublishRun publishes one event on a short-lived channel.
func (p *RabbitMQPublisher) PublishRun(ctx context.Context, event RunEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal run event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	err = ch.PublishWithContext(ctx,
		p.exchange,
		p.routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    event.RunID,
			Timestamp:    time.Now(),
			Body:         body,
		})
	if err != nil {
		return fmt.Errorf("failed to publish run event: %w", err)
	}
	return nil
}

// Close closes the broker connection.
func (p *RabbitMQPublisher) Close() error {
	return p.conn.Close()
}
