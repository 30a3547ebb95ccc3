package rabbitmq

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/streadway/amqp"
)

// ErrClosed is returned when publishing on a client without a channel.
var ErrClosed = errors.New("rabbitmq client is closed")

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
	mu      sync.Mutex // guards channel
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL   string
	Queue string
}

// Event is the JSON message published for every domain event.
type Event struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

// NewEvent stamps payload with a fresh id and the current time.
func NewEvent(eventType string, payload interface{}) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

// Publishing builds the AMQP message for e.
func (e Event) Publishing() (amqp.Publishing, error) {
	body, err := json.Marshal(e)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("failed to marshal %s event: %w", e.Type, err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		MessageId:    e.ID,
		Type:         e.Type,
		Timestamp:    e.OccurredAt,
		DeliveryMode: amqp.Persistent,
		Body:         body,
	}, nil
}

// NewClient connects to RabbitMQ, opens a channel and declares the durable
// event queue.
func NewClient(cfg Config) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if _, err := declareQueue(ch, cfg.Queue); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare %s: %w", cfg.Queue, err)
	}

	log.Printf("RabbitMQ client connected and %s declared.", cfg.Queue)

	return &Client{
		conn:    conn,
		channel: ch,
		queue:   cfg.Queue,
	}, nil
}

func declareQueue(ch *amqp.Channel, name string) (amqp.Queue, error) {
	return ch.QueueDeclare(
		name,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
}

// Close closes the channel and then the connection. Later publishes fail
// with ErrClosed.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var chErr, connErr error
	if c.channel != nil {
		chErr = c.channel.Close()
		c.channel = nil
	}
	if c.conn != nil {
		connErr = c.conn.Close()
		c.conn = nil
	}
	if err := errors.Join(chErr, connErr); err != nil {
		return fmt.Errorf("close rabbitmq client: %w", err)
	}
	return nil
}

// PublishEvent publishes a domain event to the event queue through the
// default exchange.
func (c *Client) PublishEvent(eventType string, payload interface{}) error {
	msg, err := NewEvent(eventType, payload).Publishing()
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.channel == nil {
		return ErrClosed
	}
	if err := c.channel.Publish("", c.queue, false, false, msg); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", eventType, err)
	}
	return nil
}

// ConsumeEvents registers a consumer on the event queue and processes
// deliveries in a goroutine. Messages are acked when handler succeeds and
// nacked without requeue otherwise.
func (c *Client) ConsumeEvents(handler func(msg amqp.Delivery) error) error {
	c.mu.Lock()
	ch := c.channel
	c.mu.Unlock()
	if ch == nil {
		return ErrClosed
	}

	msgs, err := ch.Consume(
		c.queue,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	go func() {
		for msg := range msgs {
			if err := handler(msg); err != nil {
				log.Printf("Error processing message %d: %v", msg.DeliveryTag, err)
				if nackErr := msg.Nack(false, false); nackErr != nil {
					log.Printf("Error nacking message %d: %v", msg.DeliveryTag, nackErr)
				}
				continue
			}
			if ackErr := msg.Ack(false); ackErr != nil {
				log.Printf("Error acking message %d: %v", msg.DeliveryTag, ackErr)
			}
		}
	}()

	return nil
}

// AuditLogHandler logs every received event. Undecodable messages are
// rejected.
func AuditLogHandler(msg amqp.Delivery) error {
	var event Event
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		return fmt.Errorf("failed to decode event: %w", err)
	}
	log.Printf("audit: %s id=%s at=%s payload=%v", event.Type, event.ID, event.OccurredAt.Format(time.RFC3339), event.Payload)
	return nil
}
